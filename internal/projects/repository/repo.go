package repository

import (
	"context"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/domain"
)

// Adapter is the durable key-value boundary the project store persists through.
// Implementations must be safe for use from multiple goroutines.
type Adapter interface {
	GetAllProjects(ctx context.Context) ([]domain.Project, error)
	// SaveProject upserts a project keyed by its id.
	SaveProject(ctx context.Context, p domain.Project) error
	DeleteProject(ctx context.Context, id string) error

	GetSectionTemplates(ctx context.Context) ([]domain.SectionTemplate, error)
	SaveSectionTemplate(ctx context.Context, t domain.SectionTemplate) error

	// ExportAllData serializes the entire persisted state as a JSON snapshot.
	ExportAllData(ctx context.Context) (string, error)
	// ImportAllData replaces the persisted projects, and the templates when the
	// snapshot carries any. It returns false, nil for malformed input without
	// touching stored data.
	ImportAllData(ctx context.Context, data string) (bool, error)
	// ClearAll wipes all projects. Section templates are kept.
	ClearAll(ctx context.Context) error
}

// Pinger is implemented by adapters backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}
