// File: cmd/components.go
package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/xkilldash9x/exposcan/api/schemas"
	"github.com/xkilldash9x/exposcan/internal/config"
	"github.com/xkilldash9x/exposcan/internal/orchestrator"
	"github.com/xkilldash9x/exposcan/internal/providers/github"
	"github.com/xkilldash9x/exposcan/internal/providers/leakcheck"
	"github.com/xkilldash9x/exposcan/internal/store"
)

// components holds the initialized services shared by the scan and serve
// commands.
type components struct {
	Orchestrator *orchestrator.Orchestrator
	Store        schemas.AssessmentStore
	DBPool       *pgxpool.Pool
}

// Shutdown releases held resources.
func (c *components) Shutdown() {
	if c.DBPool != nil {
		c.DBPool.Close()
	}
}

// initializeComponents handles dependency injection for the scan pipeline.
// Persistence is optional: withStore=false or an empty database URL leaves
// the store nil and scans simply are not recorded.
func initializeComponents(ctx context.Context, cfg *config.Config, withStore bool, logger *zap.Logger) (*components, error) {
	c := &components{}

	if withStore && cfg.Database.URL != "" {
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.DBPool = pool

		dbStore, err := store.New(ctx, pool, logger)
		if err != nil {
			c.Shutdown()
			return nil, fmt.Errorf("failed to initialize assessment store: %w", err)
		}
		c.Store = dbStore
	}

	breachProvider := leakcheck.New(cfg.Providers.LeakCheck, nil, logger)
	profileProvider, err := github.New(cfg.Providers.GitHub, nil, logger)
	if err != nil {
		c.Shutdown()
		return nil, fmt.Errorf("failed to initialize profile provider: %w", err)
	}

	orch, err := orchestrator.New(breachProvider, profileProvider, c.Store, logger)
	if err != nil {
		c.Shutdown()
		return nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}
	c.Orchestrator = orch

	return c, nil
}
