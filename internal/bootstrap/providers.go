package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/config"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/provider"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/storage/postgres"
)

type Providers struct {
	Datasets   provider.DatasetProvider
	Executions provider.ExecutionProvider
	// DB is set for the postgres source only.
	DB *sql.DB
}

func (p *Providers) Close() error {
	if p.DB != nil {
		return p.DB.Close()
	}
	return nil
}

// OpenProviders selects the dataset source from GENEALOGY_SOURCE. The
// postgres source keeps execution records on disk under DataDir.
func OpenProviders(ctx context.Context, cfg *config.Config) (*Providers, error) {
	switch cfg.Genealogy.Source {
	case "", "mock":
		m := provider.NewMock()
		return &Providers{Datasets: m, Executions: m}, nil
	case "file":
		f := provider.NewFile(cfg.Genealogy.DataDir)
		return &Providers{Datasets: f, Executions: f}, nil
	case "postgres":
		db, err := postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		return &Providers{
			Datasets:   provider.NewPostgres(db),
			Executions: provider.NewFile(cfg.Genealogy.DataDir),
			DB:         db,
		}, nil
	default:
		return nil, fmt.Errorf("unknown genealogy source %q", cfg.Genealogy.Source)
	}
}
