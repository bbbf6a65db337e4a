package http

import (
	"encoding/json"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/service"
)

// Templates is what the handlers need from the section template catalog.
type Templates interface {
	GetTemplateByID(id string) (domain.SectionTemplate, bool)
	ListByCategory(category string) []domain.SectionTemplate
	List() []domain.SectionTemplate
}

// Handler bundles the dependencies for project, section and data endpoints.
type Handler struct {
	store     *service.Store
	templates Templates
}

func New(store *service.Store, templates Templates) *Handler {
	return &Handler{store: store, templates: templates}
}

type createReq struct {
	Name        string   `json:"name"`
	WebsiteURL  string   `json:"website_url"`
	Category    string   `json:"category"`
	SEOKeywords []string `json:"seo_keywords"`
	Logo        string   `json:"logo"`
	Favicon     string   `json:"favicon"`
	ThemeID     string   `json:"theme_id"`
}

func (r createReq) input() domain.CreateProjectInput {
	return domain.CreateProjectInput{
		Name:        r.Name,
		WebsiteURL:  r.WebsiteURL,
		Category:    r.Category,
		SEOKeywords: r.SEOKeywords,
		Logo:        r.Logo,
		Favicon:     r.Favicon,
		ThemeID:     r.ThemeID,
	}
}

type updateReq struct {
	Name        *string  `json:"name"`
	WebsiteURL  *string  `json:"website_url"`
	Category    *string  `json:"category"`
	SEOKeywords []string `json:"seo_keywords"`
	Logo        *string  `json:"logo"`
	Favicon     *string  `json:"favicon"`
	ThemeID     *string  `json:"theme_id"`
	Published   *bool    `json:"is_published"`
	Thumbnail   *string  `json:"thumbnail"`
}

func (r updateReq) patch() domain.ProjectPatch {
	return domain.ProjectPatch{
		Name:        r.Name,
		WebsiteURL:  r.WebsiteURL,
		Category:    r.Category,
		SEOKeywords: r.SEOKeywords,
		Logo:        r.Logo,
		Favicon:     r.Favicon,
		ThemeID:     r.ThemeID,
		Published:   r.Published,
		Thumbnail:   r.Thumbnail,
	}
}

type insertReq struct {
	TemplateID string               `json:"template_id"`
	Data       json.RawMessage      `json:"data"`
	Anchor     *domain.InsertAnchor `json:"anchor"`
}

type reorderReq struct {
	SectionIDs []string `json:"section_ids"`
}

type editReq struct {
	Data json.RawMessage `json:"data"`
}

type failureDTO struct {
	Op        string `json:"op"`
	ProjectID string `json:"project_id,omitempty"`
	Error     string `json:"error"`
}
