package commands

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/borderlesspc7/281-carlos/pkg/application/services/approval"
	"github.com/borderlesspc7/281-carlos/pkg/application/services/inventory"
	"github.com/borderlesspc7/281-carlos/pkg/application/services/orchestration"
	"github.com/borderlesspc7/281-carlos/pkg/application/services/site"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/config"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/database"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/events"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/notify"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/repositories/gormstore"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/storage"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/totvs"
	apihttp "github.com/borderlesspc7/281-carlos/pkg/interfaces/http"
)

// ServeConfig holds configuration for the API server command
type ServeConfig struct {
	ConfigFile string
	Address    string
	Migrate    bool
	Verbose    bool
}

// ServeCommand runs the HTTP API until the context is cancelled
type ServeCommand struct {
	config ServeConfig
}

func NewServeCommand(config ServeConfig) *ServeCommand {
	return &ServeCommand{config: config}
}

func (c *ServeCommand) Execute(ctx context.Context) error {
	cfg, err := config.LoadConfig(c.config.ConfigFile)
	if err != nil {
		return err
	}
	if c.config.Address != "" {
		cfg.Server.Address = c.config.Address
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if c.config.Migrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	documents, err := newDocumentStore(cfg.Storage)
	if err != nil {
		return err
	}

	eventStore := events.NewInMemoryEventStore()
	notifier := notify.NewWebhookNotifier(notify.Config{
		ContractApprovalURL: cfg.Notifications.ContractApprovalURL,
		ChecklistWebhookURL: cfg.Notifications.ChecklistWebhookURL,
		ApprovalBaseURL:     cfg.Notifications.ApprovalBaseURL,
		Timeout:             cfg.Notifications.Timeout,
	})
	if err := eventStore.Subscribe(notifier.EventTypes(), notifier); err != nil {
		return err
	}
	defer eventStore.Wait()

	server := apihttp.NewServer(cfg.Server, cfg.Auth, newServices(db, documents, eventStore, cfg.TOTVS))

	errCh := make(chan error, 1)
	go func() {
		if c.config.Verbose {
			fmt.Printf("🌐 Listening on %s\n", cfg.Server.Address)
		}
		errCh <- server.Listen()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Printf("shutting down API server")
		return server.Shutdown()
	}
}

func newServices(db *gorm.DB, documents storage.DocumentStore, publisher events.Publisher, erp config.TOTVSConfig) apihttp.Services {
	siteRepos := site.Repositories{
		Sites:       gormstore.NewGormSiteRepository(db),
		Stock:       gormstore.NewGormStockRepository(db),
		Kits:        gormstore.NewGormKitRepository(db),
		Remaining:   gormstore.NewGormRemainingProductionRepository(db),
		Units:       gormstore.NewGormUnitRepository(db),
		Budgets:     gormstore.NewGormBudgetRepository(db),
		UnitItems:   gormstore.NewGormUnitItemRepository(db),
		Productions: gormstore.NewGormProductionRepository(db),
	}
	planningRepos := orchestration.Repositories{
		Kits:        siteRepos.Kits,
		Stock:       siteRepos.Stock,
		Remaining:   siteRepos.Remaining,
		Units:       siteRepos.Units,
		Budgets:     siteRepos.Budgets,
		Productions: siteRepos.Productions,
	}

	return apihttp.Services{
		Sites: site.NewService(siteRepos, publisher),
		Approvals: approval.NewService(
			gormstore.NewGormContractRepository(db),
			gormstore.NewGormChecklistRepository(db),
			documents,
			publisher,
		),
		Planning: orchestration.NewPlanningOrchestrator(planningRepos, inventory.NewAnalyzer(inventory.InputOrder{}), publisher),
		TOTVS: totvs.NewClient(totvs.Config{
			BaseURL:           erp.BaseURL,
			AuthToken:         erp.AuthToken,
			Timeout:           erp.Timeout,
			RequestsPerSecond: erp.RateLimit.Requests,
			Burst:             erp.RateLimit.Burst,
			CacheSize:         erp.Cache.Size,
			CacheTTL:          erp.Cache.TTL,
		}),
	}
}

// newDocumentStore uses the S3 bucket when enabled and keeps documents in memory otherwise
func newDocumentStore(cfg config.StorageConfig) (storage.DocumentStore, error) {
	if !cfg.Enabled {
		log.Printf("object storage disabled, checklist documents are kept in memory")
		return storage.NewMemoryStore(""), nil
	}
	store, err := storage.NewS3Store(storage.S3Config{
		Endpoint:   cfg.Endpoint,
		Region:     cfg.Region,
		AccessKey:  cfg.AccessKey,
		SecretKey:  cfg.SecretKey,
		Bucket:     cfg.Bucket,
		UseSSL:     cfg.UseSSL,
		LinkExpiry: cfg.LinkExpiry,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create document store: %w", err)
	}
	return store, nil
}
