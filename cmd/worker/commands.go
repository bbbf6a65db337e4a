package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/config"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/backup"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/bootstrap"
)

const commandTimeout = 2 * time.Minute

func withApp(fn func(ctx context.Context, cfg *config.Config, app *bootstrap.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	app, err := bootstrap.OpenApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(ctx); cerr != nil {
			log.Printf("close: %v", cerr)
		}
	}()

	return fn(ctx, cfg, app)
}

// RunExport writes the snapshot to the given file, or stdout.
func RunExport(args []string) error {
	return withApp(func(ctx context.Context, _ *config.Config, app *bootstrap.App) error {
		data, err := app.Store.Export(ctx)
		if err != nil {
			return err
		}
		if len(args) == 0 || args[0] == "-" {
			_, err = io.WriteString(os.Stdout, data+"\n")
			return err
		}
		return os.WriteFile(args[0], []byte(data), 0o644)
	})
}

// RunImport replaces all data with a snapshot read from a file ("-" for stdin).
func RunImport(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: worker import <file|->")
	}

	var (
		b   []byte
		err error
	)
	if args[0] == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(args[0])
	}
	if err != nil {
		return err
	}

	return withApp(func(ctx context.Context, _ *config.Config, app *bootstrap.App) error {
		ok, err := app.Store.Import(ctx, string(b))
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("malformed import data, nothing changed")
		}
		log.Printf("imported %d projects", len(app.Store.List()))
		return nil
	})
}

func RunClear(args []string) error {
	if len(args) == 0 || args[0] != "--yes" {
		return errors.New("refusing to clear all projects without --yes")
	}
	return withApp(func(ctx context.Context, _ *config.Config, app *bootstrap.App) error {
		n := len(app.Store.List())
		if err := app.Store.ClearAll(ctx); err != nil {
			return err
		}
		log.Printf("cleared %d projects", n)
		return nil
	})
}

// RunBackup writes one snapshot into BACKUP_DIR and applies BACKUP_KEEP.
func RunBackup(_ []string) error {
	return withApp(func(ctx context.Context, cfg *config.Config, app *bootstrap.App) error {
		s := backup.NewScheduler(app.Store, backup.Options{Dir: cfg.Backup.Dir, Keep: cfg.Backup.Keep})
		_, err := s.RunOnce(ctx)
		return err
	})
}

func RunListTemplates(args []string) error {
	return withApp(func(_ context.Context, _ *config.Config, app *bootstrap.App) error {
		templates := app.Catalog.List()
		if len(args) > 0 {
			templates = app.Catalog.ListByCategory(args[0])
		}
		for _, t := range templates {
			fmt.Printf("%-20s %-14s %s\n", t.ID, t.Category, t.Name)
		}
		return nil
	})
}
