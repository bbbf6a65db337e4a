package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/domain"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Catalog is the read-only section template lookup used by the composition engine.
type Catalog interface {
	GetTemplateByID(id string) (domain.SectionTemplate, bool)
	ListByCategory(category string) []domain.SectionTemplate
}

// TemplateStore is the part of the persistence adapter the catalog is seeded from.
type TemplateStore interface {
	GetSectionTemplates(ctx context.Context) ([]domain.SectionTemplate, error)
	SaveSectionTemplate(ctx context.Context, t domain.SectionTemplate) error
}

// MemoryCatalog is an in-memory Catalog. Its contents only change through Reload.
type MemoryCatalog struct {
	mu    sync.RWMutex
	byID  map[string]domain.SectionTemplate
	order []string
}

// New builds a catalog from templates. Later duplicates of an id replace earlier ones.
func New(templates []domain.SectionTemplate) *MemoryCatalog {
	c := &MemoryCatalog{}
	c.Reload(templates)
	return c
}

// Reload swaps the whole template set, e.g. after an import replaced the stored templates.
func (c *MemoryCatalog) Reload(templates []domain.SectionTemplate) {
	byID := make(map[string]domain.SectionTemplate, len(templates))
	var order []string
	for _, t := range templates {
		if _, exists := byID[t.ID]; !exists {
			order = append(order, t.ID)
		}
		byID[t.ID] = t.Clone()
	}

	c.mu.Lock()
	c.byID, c.order = byID, order
	c.mu.Unlock()
}

func (c *MemoryCatalog) GetTemplateByID(id string) (domain.SectionTemplate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.byID[id]
	if !ok {
		return domain.SectionTemplate{}, false
	}
	return t.Clone(), true
}

func (c *MemoryCatalog) ListByCategory(category string) []domain.SectionTemplate {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.SectionTemplate, 0)
	for _, id := range c.order {
		t := c.byID[id]
		if strings.EqualFold(t.Category, category) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// List returns every template in insertion order.
func (c *MemoryCatalog) List() []domain.SectionTemplate {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.SectionTemplate, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id].Clone())
	}
	return out
}

// Categories returns the distinct categories, sorted.
func (c *MemoryCatalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, t := range c.byID {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	sort.Strings(out)
	return out
}

type yamlFile struct {
	Templates []yamlTemplate `yaml:"templates"`
}

type yamlTemplate struct {
	domain.SectionTemplate `yaml:",inline"`
	Content                map[string]any `yaml:"content"`
}

// LoadYAML parses the catalog seed format.
func LoadYAML(b []byte) ([]domain.SectionTemplate, error) {
	var f yamlFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}

	out := make([]domain.SectionTemplate, 0, len(f.Templates))
	seen := make(map[string]struct{}, len(f.Templates))
	for i, yt := range f.Templates {
		t := yt.SectionTemplate
		t.ID = strings.TrimSpace(t.ID)
		if t.ID == "" {
			return nil, fmt.Errorf("catalog template #%d: id required", i)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("catalog template %q: duplicate id", t.ID)
		}
		seen[t.ID] = struct{}{}

		if yt.Content != nil {
			raw, err := json.Marshal(yt.Content)
			if err != nil {
				return nil, fmt.Errorf("catalog template %q: encode content: %w", t.ID, err)
			}
			t.DefaultContent = raw
		} else {
			t.DefaultContent = json.RawMessage(`{}`)
		}
		out = append(out, t)
	}
	return out, nil
}

// Defaults returns the templates embedded in the binary.
func Defaults() ([]domain.SectionTemplate, error) {
	return LoadYAML(defaultsYAML)
}

// Seed saves defaults into store when it holds no templates yet, then builds
// the catalog from whatever the store holds.
func Seed(ctx context.Context, store TemplateStore, defaults []domain.SectionTemplate) (*MemoryCatalog, error) {
	existing, err := store.GetSectionTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load section templates: %w", err)
	}
	if len(existing) > 0 {
		return New(existing), nil
	}

	for _, t := range defaults {
		if err := store.SaveSectionTemplate(ctx, t); err != nil {
			return nil, fmt.Errorf("seed section template %q: %w", t.ID, err)
		}
	}
	log.Printf("[catalog] seeded %d section templates", len(defaults))
	return New(defaults), nil
}
