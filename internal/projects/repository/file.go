package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/fsutil"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/domain"
)

// FileAdapter persists the whole state as one JSON snapshot file. Every write
// goes to a temp file in the same directory and is renamed over the target.
type FileAdapter struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewFileAdapter creates the parent directory of path if needed.
func NewFileAdapter(path string) (*FileAdapter, error) {
	if path == "" {
		return nil, fmt.Errorf("storage file path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileAdapter{path: path, now: time.Now}, nil
}

func (f *FileAdapter) GetAllProjects(ctx context.Context) ([]domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.read()
	if err != nil {
		return nil, err
	}
	return s.Projects, nil
}

func (f *FileAdapter) SaveProject(ctx context.Context, p domain.Project) error {
	return f.update(func(s *Snapshot) {
		for i := range s.Projects {
			if s.Projects[i].ID == p.ID {
				s.Projects[i] = p.Clone()
				return
			}
		}
		s.Projects = append(s.Projects, p.Clone())
	})
}

func (f *FileAdapter) DeleteProject(ctx context.Context, id string) error {
	return f.update(func(s *Snapshot) {
		out := s.Projects[:0]
		for _, p := range s.Projects {
			if p.ID != id {
				out = append(out, p)
			}
		}
		s.Projects = out
	})
}

func (f *FileAdapter) GetSectionTemplates(ctx context.Context) ([]domain.SectionTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.read()
	if err != nil {
		return nil, err
	}
	return s.Templates, nil
}

func (f *FileAdapter) SaveSectionTemplate(ctx context.Context, t domain.SectionTemplate) error {
	return f.update(func(s *Snapshot) {
		for i := range s.Templates {
			if s.Templates[i].ID == t.ID {
				s.Templates[i] = t.Clone()
				return
			}
		}
		s.Templates = append(s.Templates, t.Clone())
	})
}

func (f *FileAdapter) ExportAllData(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.read()
	if err != nil {
		return "", err
	}
	return EncodeSnapshot(s.Projects, s.Templates, f.now())
}

func (f *FileAdapter) ImportAllData(ctx context.Context, data string) (bool, error) {
	incoming, err := DecodeSnapshot(data)
	if err != nil {
		return false, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.read()
	if err != nil {
		return false, err
	}
	current.Projects = incoming.Projects
	if len(incoming.Templates) > 0 {
		current.Templates = incoming.Templates
	}
	if err := f.write(current); err != nil {
		return false, err
	}
	return true, nil
}

func (f *FileAdapter) ClearAll(ctx context.Context) error {
	return f.update(func(s *Snapshot) { s.Projects = nil })
}

func (f *FileAdapter) update(fn func(s *Snapshot)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.read()
	if err != nil {
		return err
	}
	fn(s)
	return f.write(s)
}

// read returns an empty snapshot when the file does not exist yet. Stored
// section orders are not validated here; the store repairs them on load.
func (f *FileAdapter) read() (*Snapshot, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return &Snapshot{Version: SnapshotVersion}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read storage file: %w", err)
	}
	s, err := parseSnapshot(string(b))
	if err != nil {
		return nil, fmt.Errorf("storage file %s: %w", f.path, err)
	}
	return s, nil
}

func (f *FileAdapter) write(s *Snapshot) error {
	data, err := EncodeSnapshot(s.Projects, s.Templates, f.now())
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(f.path, []byte(data)); err != nil {
		return fmt.Errorf("storage file: %w", err)
	}
	return nil
}
