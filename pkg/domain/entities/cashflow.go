package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthName returns the Portuguese display name of a month
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// YearMonth identifies a calendar month
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the calendar month containing t
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Before reports whether ym is an earlier month than other
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// Next returns the following calendar month
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// String renders the month as YYYY-MM
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// MonthsBetween enumerates every calendar month touched by [start, end],
// anchored on the first day of the start month. When end falls before the
// start month the result is the single start month.
func MonthsBetween(start, end time.Time) []YearMonth {
	first := YearMonthOf(start)
	last := YearMonthOf(end)

	months := []YearMonth{first}
	for cur := first.Next(); !last.Before(cur); cur = cur.Next() {
		months = append(months, cur)
	}
	return months
}

// UnitCashShare is one unit's contribution to a month of the cash flow
type UnitCashShare struct {
	UnitNumber   int             `json:"unitNumber"`
	MaterialCost decimal.Decimal `json:"materialCost"`
	LaborCost    decimal.Decimal `json:"laborCost"`
	TotalCost    decimal.Decimal `json:"totalCost"`
}

// MonthlyCashFlow aggregates the planned costs of all units in a calendar month
type MonthlyCashFlow struct {
	MonthName    string          `json:"monthName"`
	Month        time.Month      `json:"month"`
	Year         int             `json:"year"`
	MaterialCost decimal.Decimal `json:"materialCost"`
	LaborCost    decimal.Decimal `json:"laborCost"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	Units        []UnitCashShare `json:"units"`
}

// NewMonthlyCashFlow creates an empty bucket for a calendar month
func NewMonthlyCashFlow(ym YearMonth) *MonthlyCashFlow {
	return &MonthlyCashFlow{
		MonthName:    MonthName(ym.Month),
		Month:        ym.Month,
		Year:         ym.Year,
		MaterialCost: decimal.Zero,
		LaborCost:    decimal.Zero,
		TotalCost:    decimal.Zero,
		Units:        []UnitCashShare{},
	}
}

// Add accumulates a unit share into the bucket
func (m *MonthlyCashFlow) Add(share UnitCashShare) {
	m.MaterialCost = m.MaterialCost.Add(share.MaterialCost)
	m.LaborCost = m.LaborCost.Add(share.LaborCost)
	m.TotalCost = m.TotalCost.Add(share.TotalCost)
	m.Units = append(m.Units, share)
}

// YearMonth returns the calendar month of the bucket
func (m MonthlyCashFlow) YearMonth() YearMonth {
	return YearMonth{Year: m.Year, Month: m.Month}
}

// UnbudgetedUnit reports a unit left out of a projection because it has no budget
type UnbudgetedUnit struct {
	UnitID     string `json:"unitId"`
	UnitNumber int    `json:"unitNumber"`
}
