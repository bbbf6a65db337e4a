package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/config"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/repository"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/storage/postgres"
)

// Storage is the persistence adapter selected by STORAGE_DRIVER plus what is
// needed to check and release it.
type Storage struct {
	Driver  string
	Adapter repository.Adapter
	// Pinger is nil for local drivers.
	Pinger repository.Pinger
	close  func()
}

func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return &Storage{Driver: config.DriverMemory, Adapter: repository.NewMemoryAdapter()}, nil

	case config.DriverFile:
		a, err := repository.NewFileAdapter(cfg.Storage.File)
		if err != nil {
			return nil, err
		}
		log.Printf("[storage] file %s", cfg.Storage.File)
		return &Storage{Driver: config.DriverFile, Adapter: a}, nil

	case config.DriverRedis:
		client, err := OpenRedis(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		a := repository.NewRedisAdapter(client)
		log.Printf("[storage] redis %s db=%d", cfg.Redis.Addr, cfg.Redis.DB)
		return &Storage{
			Driver:  config.DriverRedis,
			Adapter: a,
			Pinger:  a,
			close:   func() { _ = client.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := OpenDB(ctx, DBOptions{
			DSN:      postgres.DSN(&cfg.Database),
			MaxConns: int32(cfg.Database.MaxConns),
			MinConns: int32(cfg.Database.MinConns),
		})
		if err != nil {
			return nil, err
		}
		a := repository.NewPostgresAdapter(pool)
		if err := a.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		log.Printf("[storage] postgres %s/%s", cfg.Database.Host, cfg.Database.Name)
		return &Storage{
			Driver:  config.DriverPostgres,
			Adapter: a,
			Pinger:  a,
			close:   pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
