package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/config"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/catalog"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/composition"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/service"
)

// App is the storage, catalog and project store shared by the API server and
// the worker commands.
type App struct {
	Storage *Storage
	Catalog *catalog.MemoryCatalog
	Store   *service.Store
}

// OpenApp opens storage, seeds the catalog and loads all projects into memory.
func OpenApp(ctx context.Context, cfg *config.Config) (*App, error) {
	st, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cat, err := LoadCatalog(ctx, cfg.Catalog.File, st.Adapter)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("catalog: %w", err)
	}

	store := service.NewStore(st.Adapter, composition.New(cat, nil, nil), service.Options{
		QueueSize:    cfg.Storage.QueueSize,
		WriteTimeout: cfg.Storage.WriteTimeout,
		Catalog:      cat,
		Thumbnails:   defaultThumbnails,
		OnPersistenceFailure: func(e *domain.PersistenceError) {
			log.Printf("[store] persistence failure: op=%s project=%s", e.Op, e.ProjectID)
		},
	})
	if err := store.Load(ctx); err != nil {
		_ = store.Close(ctx)
		st.Close()
		return nil, err
	}

	return &App{Storage: st, Catalog: cat, Store: store}, nil
}

// Close drains pending writes, then releases storage.
func (a *App) Close(ctx context.Context) error {
	err := a.Store.Close(ctx)
	a.Storage.Close()
	return err
}

var defaultThumbnails = []string{
	"/thumbnails/project-1.png",
	"/thumbnails/project-2.png",
	"/thumbnails/project-3.png",
	"/thumbnails/project-4.png",
}
