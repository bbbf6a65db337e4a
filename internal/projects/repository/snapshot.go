package repository

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/domain"
)

// SnapshotVersion is written into every export.
const SnapshotVersion = 1

// Snapshot is the export/import document.
type Snapshot struct {
	Version    int                      `json:"version"`
	ExportedAt time.Time                `json:"exported_at"`
	Projects   []domain.Project         `json:"projects"`
	Templates  []domain.SectionTemplate `json:"templates"`
}

// EncodeSnapshot builds the export document with projects in creation order
// and templates sorted by id.
func EncodeSnapshot(projects []domain.Project, templates []domain.SectionTemplate, now time.Time) (string, error) {
	s := Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: now.UTC(),
		Projects:   append([]domain.Project(nil), projects...),
		Templates:  append([]domain.SectionTemplate(nil), templates...),
	}
	if s.Projects == nil {
		s.Projects = []domain.Project{}
	}
	if s.Templates == nil {
		s.Templates = []domain.SectionTemplate{}
	}
	SortProjects(s.Projects)
	SortTemplates(s.Templates)

	// MarshalIndent would re-indent the raw section data
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(b), nil
}

// DecodeSnapshot parses and validates an export document. Any error means the
// input is malformed and must not be applied.
func DecodeSnapshot(data string) (*Snapshot, error) {
	s, err := parseSnapshot(data)
	if err != nil {
		return nil, err
	}
	if err := validateSnapshot(s); err != nil {
		return nil, err
	}
	return s, nil
}

// parseSnapshot only checks the document shape and version.
func parseSnapshot(data string) (*Snapshot, error) {
	var s Snapshot
	dec := json.NewDecoder(strings.NewReader(data))
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	return &s, nil
}

func validateSnapshot(s *Snapshot) error {
	ids := make(map[string]struct{}, len(s.Projects))
	slugs := make(map[string]string, len(s.Projects))
	for i, p := range s.Projects {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("project #%d: id required", i)
		}
		if _, dup := ids[p.ID]; dup {
			return fmt.Errorf("project %s: duplicate id", p.ID)
		}
		ids[p.ID] = struct{}{}

		if p.WebsiteURL != "" {
			if other, dup := slugs[p.WebsiteURL]; dup {
				return fmt.Errorf("project %s: website url %q also used by %s: %w", p.ID, p.WebsiteURL, other, domain.ErrDuplicateSlug)
			}
			slugs[p.WebsiteURL] = p.ID
		}
		if err := domain.CheckDenseOrder(p.Sections); err != nil {
			return fmt.Errorf("project %s: %w", p.ID, err)
		}
	}

	tids := make(map[string]struct{}, len(s.Templates))
	for i, t := range s.Templates {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("template #%d: id required", i)
		}
		if _, dup := tids[t.ID]; dup {
			return fmt.Errorf("template %s: duplicate id", t.ID)
		}
		tids[t.ID] = struct{}{}
	}
	return nil
}

// SortProjects orders projects by creation time, then id.
func SortProjects(ps []domain.Project) {
	sort.SliceStable(ps, func(i, j int) bool {
		if !ps[i].CreatedAt.Equal(ps[j].CreatedAt) {
			return ps[i].CreatedAt.Before(ps[j].CreatedAt)
		}
		return ps[i].ID < ps[j].ID
	})
}

// SortTemplates orders templates by id.
func SortTemplates(ts []domain.SectionTemplate) {
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].ID < ts[j].ID })
}
