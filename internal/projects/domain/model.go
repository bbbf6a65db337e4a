package domain

import (
	"encoding/json"
	"time"
)

// Project represents a single website being built.
// It is intentionally storage-agnostic and used across repository, service and HTTP layers.
type Project struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	WebsiteURL  string            `json:"website_url"`
	Category    string            `json:"category"`
	SEOKeywords []string          `json:"seo_keywords"`
	Logo        string            `json:"logo,omitempty"`
	Favicon     string            `json:"favicon,omitempty"`
	Sections    []SectionInstance `json:"sections"`
	ThemeID     string            `json:"theme_id"`
	Published   bool              `json:"is_published"`
	Thumbnail   string            `json:"thumbnail,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// SectionInstance is one content block placed on a project's page.
type SectionInstance struct {
	ID         string          `json:"id"`
	TemplateID string          `json:"template_id"`
	Data       json.RawMessage `json:"data,omitempty"`
	Order      int             `json:"order"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// SectionTemplate is a reusable blueprint a SectionInstance is created from.
type SectionTemplate struct {
	ID             string          `json:"id" yaml:"id"`
	Category       string          `json:"category" yaml:"category"`
	Name           string          `json:"name" yaml:"name"`
	Description    string          `json:"description,omitempty" yaml:"description"`
	Tags           []string        `json:"tags,omitempty" yaml:"tags"`
	Icon           string          `json:"icon,omitempty" yaml:"icon"`
	Thumbnail      string          `json:"thumbnail,omitempty" yaml:"thumbnail"`
	DefaultContent json.RawMessage `json:"default_content,omitempty" yaml:"-"`
}

// Position says on which side of an anchor section a new one goes.
type Position string

const (
	PositionAbove Position = "above"
	PositionBelow Position = "below"
)

// InsertAnchor places an inserted section relative to the section at Index.
type InsertAnchor struct {
	Index    int      `json:"index"`
	Position Position `json:"position"`
}

// CreateProjectInput holds the data needed to create a new project.
type CreateProjectInput struct {
	Name        string
	WebsiteURL  string
	Category    string
	SEOKeywords []string
	Logo        string
	Favicon     string
	ThemeID     string
}

// ProjectPatch represents a partial update; nil fields are left unchanged.
type ProjectPatch struct {
	Name        *string
	WebsiteURL  *string
	Category    *string
	SEOKeywords []string
	Logo        *string
	Favicon     *string
	ThemeID     *string
	Published   *bool
	Thumbnail   *string
}

// Clone returns a deep copy of the project, including its sections.
func (p Project) Clone() Project {
	out := p
	if p.SEOKeywords != nil {
		out.SEOKeywords = append([]string(nil), p.SEOKeywords...)
	}
	out.Sections = CloneSections(p.Sections)
	return out
}

// Clone returns a copy of the section whose data does not alias the original.
func (s SectionInstance) Clone() SectionInstance {
	out := s
	out.Data = CloneData(s.Data)
	return out
}

// Clone returns a deep copy of the template.
func (t SectionTemplate) Clone() SectionTemplate {
	out := t
	if t.Tags != nil {
		out.Tags = append([]string(nil), t.Tags...)
	}
	out.DefaultContent = CloneData(t.DefaultContent)
	return out
}

// CloneSections copies a section list element by element.
func CloneSections(in []SectionInstance) []SectionInstance {
	out := make([]SectionInstance, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}

// CloneData copies raw JSON content; nil stays nil.
func CloneData(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}
