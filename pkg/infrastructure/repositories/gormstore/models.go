package gormstore

import (
	"time"

	"github.com/shopspring/decimal"
)

// SiteModel represents the sites table
type SiteModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Floors    int       `gorm:"column:floors;not null;default:0"`
	Towers    int       `gorm:"column:towers;not null;default:0"`
	OwnerID   string    `gorm:"column:owner_id;index"`
	Status    string    `gorm:"column:status;not null;default:'active'"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (SiteModel) TableName() string {
	return "sites"
}

// StockEntryModel represents the stock_entries table
type StockEntryModel struct {
	ID                string          `gorm:"column:id;primaryKey"`
	SiteID            string          `gorm:"column:site_id;not null;index"`
	Name              string          `gorm:"column:name;not null"`
	Unit              string          `gorm:"column:unit;not null"`
	QuantityAvailable decimal.Decimal `gorm:"column:quantity_available;type:text;not null"`
	CreatedAt         time.Time       `gorm:"column:created_at;not null"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;not null"`
}

func (StockEntryModel) TableName() string {
	return "stock_entries"
}

// KitModel represents the kits table
type KitModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	SiteID        string    `gorm:"column:site_id;not null;index"`
	UnitID        string    `gorm:"column:unit_id"`
	UnitNumber    int       `gorm:"column:unit_number;not null;default:0"`
	Name          string    `gorm:"column:name;not null"`
	LaborJSON     string    `gorm:"column:labor;type:text"`     // JSON array as text
	MaterialsJSON string    `gorm:"column:materials;type:text"` // JSON array as text
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null"`
}

func (KitModel) TableName() string {
	return "kits"
}

// RemainingProductionModel represents the remaining_production table
type RemainingProductionModel struct {
	SiteID    string `gorm:"column:site_id;primaryKey"`
	KitID     string `gorm:"column:kit_id;primaryKey"`
	Remaining int    `gorm:"column:remaining;not null;default:0"`
}

func (RemainingProductionModel) TableName() string {
	return "remaining_production"
}

// UnitModel represents the production_units table
type UnitModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	SiteID         string    `gorm:"column:site_id;not null;index"`
	Number         int       `gorm:"column:number;not null"`
	PredecessorID  string    `gorm:"column:predecessor_id"`
	StartDate      time.Time `gorm:"column:start_date;not null"`
	EndDate        time.Time `gorm:"column:end_date;not null"`
	ApartmentsJSON string    `gorm:"column:apartments;type:text"` // JSON array as text
	CreatedAt      time.Time `gorm:"column:created_at;not null"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null"`
}

func (UnitModel) TableName() string {
	return "production_units"
}

// BudgetModel represents the unit_budgets table
type BudgetModel struct {
	ID           string          `gorm:"column:id;primaryKey"`
	SiteID       string          `gorm:"column:site_id;not null;index"`
	UnitID       string          `gorm:"column:unit_id;not null"`
	UnitNumber   int             `gorm:"column:unit_number;not null;default:0"`
	MaterialCost decimal.Decimal `gorm:"column:material_cost;type:text;not null"`
	LaborCost    decimal.Decimal `gorm:"column:labor_cost;type:text;not null"`
	Weight       decimal.Decimal `gorm:"column:weight;type:text;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;not null"`
}

func (BudgetModel) TableName() string {
	return "unit_budgets"
}

// UnitItemModel represents the unit_items table
type UnitItemModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	SiteID      string    `gorm:"column:site_id;not null;index"`
	UnitID      string    `gorm:"column:unit_id;not null;index"`
	UnitNumber  int       `gorm:"column:unit_number;not null"`
	Company     string    `gorm:"column:company;not null"`
	Service     string    `gorm:"column:service;not null"`
	Quantity    int       `gorm:"column:quantity;not null"`
	MaxQuantity int       `gorm:"column:max_quantity;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
}

func (UnitItemModel) TableName() string {
	return "unit_items"
}

// ProductionModel represents the productions table
type ProductionModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	SiteID         string    `gorm:"column:site_id;not null;index"`
	UnitID         string    `gorm:"column:unit_id;not null"`
	ApartmentsJSON string    `gorm:"column:apartments;type:text"`
	CreatedAt      time.Time `gorm:"column:created_at;not null"`
}

func (ProductionModel) TableName() string {
	return "productions"
}

// MeasurementModel represents the measurements table
type MeasurementModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	SiteID           string    `gorm:"column:site_id;not null;index"`
	Number           string    `gorm:"column:number;not null"`
	Date             time.Time `gorm:"column:date"`
	Supplier         string    `gorm:"column:supplier"`
	ContractID       string    `gorm:"column:contract_id"`
	AmendmentIDsJSON string    `gorm:"column:amendment_ids;type:text"`
	UnitID           string    `gorm:"column:unit_id;not null"`
	ItemIDsJSON      string    `gorm:"column:item_ids;type:text"`
	ApartmentsJSON   string    `gorm:"column:apartments;type:text"`
	CreatedAt        time.Time `gorm:"column:created_at;not null"`
}

func (MeasurementModel) TableName() string {
	return "measurements"
}

// ContractModel represents the contracts table; approval state is flattened into it
type ContractModel struct {
	ID                 string          `gorm:"column:id;primaryKey"`
	SiteID             string          `gorm:"column:site_id;not null;index"`
	Supplier           string          `gorm:"column:supplier;not null"`
	Kind               string          `gorm:"column:kind;not null"`
	OriginalContractID string          `gorm:"column:original_contract_id"`
	Number             string          `gorm:"column:number;not null"`
	ItemsJSON          string          `gorm:"column:items;type:text"`
	TotalValue         decimal.Decimal `gorm:"column:total_value;type:text;not null"`
	Status             string          `gorm:"column:status;not null"`
	ApproverID         string          `gorm:"column:approver_id"`
	ApproverName       string          `gorm:"column:approver_name"`
	ApproverEmail      string          `gorm:"column:approver_email"`
	ApprovalToken      string          `gorm:"column:approval_token"`
	DecidedAt          *time.Time      `gorm:"column:decided_at"`
	DecisionNotes      string          `gorm:"column:decision_notes;type:text"`
	CreatedAt          time.Time       `gorm:"column:created_at;not null"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;not null"`
}

func (ContractModel) TableName() string {
	return "contracts"
}

// ChecklistModel represents the monthly_checklists table
type ChecklistModel struct {
	ID            string     `gorm:"column:id;primaryKey"`
	SiteID        string     `gorm:"column:site_id;not null;index"`
	Month         int        `gorm:"column:month;not null"`
	Year          int        `gorm:"column:year;not null"`
	Notes         string     `gorm:"column:notes;type:text"`
	DocumentKey   string     `gorm:"column:document_key"`
	DocumentName  string     `gorm:"column:document_name"`
	Status        string     `gorm:"column:status;not null"`
	ApproverID    string     `gorm:"column:approver_id"`
	ApproverName  string     `gorm:"column:approver_name"`
	ApproverEmail string     `gorm:"column:approver_email"`
	ApprovalToken string     `gorm:"column:approval_token"`
	DecidedAt     *time.Time `gorm:"column:decided_at"`
	DecisionNotes string     `gorm:"column:decision_notes;type:text"`
	CreatedAt     time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;not null"`
}

func (ChecklistModel) TableName() string {
	return "monthly_checklists"
}

// AllModels lists every model for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&SiteModel{},
		&StockEntryModel{},
		&KitModel{},
		&RemainingProductionModel{},
		&UnitModel{},
		&BudgetModel{},
		&UnitItemModel{},
		&ProductionModel{},
		&MeasurementModel{},
		&ContractModel{},
		&ChecklistModel{},
	}
}
