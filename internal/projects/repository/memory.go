package repository

import (
	"context"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/domain"
)

// MemoryAdapter keeps everything in process memory. Used for tests and
// STORAGE_DRIVER=memory.
type MemoryAdapter struct {
	mu        sync.RWMutex
	projects  map[string]domain.Project
	templates map[string]domain.SectionTemplate
	now       func() time.Time
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		projects:  make(map[string]domain.Project),
		templates: make(map[string]domain.SectionTemplate),
		now:       time.Now,
	}
}

func (m *MemoryAdapter) GetAllProjects(ctx context.Context) ([]domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p.Clone())
	}
	SortProjects(out)
	return out, nil
}

func (m *MemoryAdapter) SaveProject(ctx context.Context, p domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[p.ID] = p.Clone()
	return nil
}

func (m *MemoryAdapter) DeleteProject(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.projects, id)
	return nil
}

func (m *MemoryAdapter) GetSectionTemplates(ctx context.Context) ([]domain.SectionTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.SectionTemplate, 0, len(m.templates))
	for _, t := range m.templates {
		out = append(out, t.Clone())
	}
	SortTemplates(out)
	return out, nil
}

func (m *MemoryAdapter) SaveSectionTemplate(ctx context.Context, t domain.SectionTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[t.ID] = t.Clone()
	return nil
}

func (m *MemoryAdapter) ExportAllData(ctx context.Context) (string, error) {
	projects, _ := m.GetAllProjects(ctx)
	templates, _ := m.GetSectionTemplates(ctx)
	return EncodeSnapshot(projects, templates, m.now())
}

func (m *MemoryAdapter) ImportAllData(ctx context.Context, data string) (bool, error) {
	s, err := DecodeSnapshot(data)
	if err != nil {
		return false, nil
	}

	projects := make(map[string]domain.Project, len(s.Projects))
	for _, p := range s.Projects {
		projects[p.ID] = p.Clone()
	}
	templates := make(map[string]domain.SectionTemplate, len(s.Templates))
	for _, t := range s.Templates {
		templates[t.ID] = t.Clone()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects = projects
	if len(templates) > 0 {
		m.templates = templates
	}
	return true, nil
}

func (m *MemoryAdapter) ClearAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects = make(map[string]domain.Project)
	return nil
}
