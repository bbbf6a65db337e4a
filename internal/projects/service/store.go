package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/composition"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/repository"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/utils"
)

const (
	defaultQueueSize   = 256
	defaultTheme       = "default"
	maxRecentFailures  = 50
	fallbackSlugPrefix = "site"
	fallbackSlugTries  = 5
)

// ErrClosed is returned by every operation after Close.
var ErrClosed = errors.New("project store closed")

// TemplateReloader is the template catalog the composition engine reads from.
// Import refreshes it when the stored templates change.
type TemplateReloader interface {
	Reload(templates []domain.SectionTemplate)
}

// Options configures a Store. Zero values pick sensible defaults.
type Options struct {
	IDs          utils.IDGenerator
	Now          func() time.Time
	Thumbnails   []string
	Pick         utils.Picker
	DefaultTheme string
	QueueSize    int
	// WriteTimeout bounds each background persistence call. Zero means no timeout.
	WriteTimeout time.Duration
	Catalog      TemplateReloader
	// OnPersistenceFailure is called for every failed write. It must not call
	// back into the Store.
	OnPersistenceFailure func(*domain.PersistenceError)
}

// Store owns the authoritative in-memory projects. Mutations are applied one
// at a time, committed to memory immediately and then handed to the
// persistence writer in the same order.
type Store struct {
	mu        sync.Mutex
	projects  map[string]domain.Project
	order     []string
	currentID string
	closed    bool

	adapter repository.Adapter
	engine  *composition.Engine
	writer  *writer
	catalog TemplateReloader

	ids          utils.IDGenerator
	now          func() time.Time
	thumbnails   []string
	pick         utils.Picker
	defaultTheme string
	onFailure    func(*domain.PersistenceError)

	failMu   sync.Mutex
	failures []*domain.PersistenceError
}

// NewStore creates an empty store and starts its persistence writer. Call Load
// to hydrate it from the adapter and Close to stop the writer.
func NewStore(adapter repository.Adapter, engine *composition.Engine, opts Options) *Store {
	s := &Store{
		projects:     make(map[string]domain.Project),
		adapter:      adapter,
		engine:       engine,
		catalog:      opts.Catalog,
		ids:          opts.IDs,
		now:          opts.Now,
		thumbnails:   append([]string(nil), opts.Thumbnails...),
		pick:         opts.Pick,
		defaultTheme: opts.DefaultTheme,
		onFailure:    opts.OnPersistenceFailure,
	}
	if s.ids == nil {
		s.ids = utils.UUIDs{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.pick == nil {
		s.pick = utils.RandomPicker
	}
	if s.defaultTheme == "" {
		s.defaultTheme = defaultTheme
	}
	s.writer = newWriter(adapter, opts.QueueSize, opts.WriteTimeout, s.recordFailure)
	return s
}

// Load replaces the in-memory projects with what the adapter holds.
func (s *Store) Load(ctx context.Context) error {
	projects, err := s.adapter.GetAllProjects(ctx)
	if err != nil {
		return &domain.PersistenceError{Op: "load", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.replaceLocked(projects)
	log.Printf("[store] loaded %d projects", len(projects))
	return nil
}

// List returns every project in creation order.
func (s *Store) List() []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Project, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.projects[id].Clone())
	}
	return out
}

// Get returns one project.
func (s *Store) Get(id string) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return domain.Project{}, fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
	}
	return p.Clone(), nil
}

// Sections returns a project's sections sorted top to bottom.
func (s *Store) Sections(id string) ([]domain.SectionInstance, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return composition.Sorted(p.Sections), nil
}

// CreateProject validates the name and website url, then adds a project with no sections.
func (s *Store) CreateProject(in domain.CreateProjectInput) (domain.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Project{}, domain.ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.Project{}, ErrClosed
	}

	slug, err := s.resolveSlugLocked(in.WebsiteURL, name, "")
	if err != nil {
		return domain.Project{}, err
	}
	id, err := s.ids.NewID("")
	if err != nil {
		return domain.Project{}, fmt.Errorf("generate project id: %w", err)
	}

	theme := strings.TrimSpace(in.ThemeID)
	if theme == "" {
		theme = s.defaultTheme
	}
	keywords := append([]string{}, in.SEOKeywords...)

	now := s.now()
	p := domain.Project{
		ID:          id,
		Name:        name,
		WebsiteURL:  slug,
		Category:    strings.TrimSpace(in.Category),
		SEOKeywords: keywords,
		Logo:        in.Logo,
		Favicon:     in.Favicon,
		Sections:    []domain.SectionInstance{},
		ThemeID:     theme,
		Thumbnail:   s.pickThumbnail(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.projects[id] = p
	s.order = append(s.order, id)
	s.persistLocked(p)
	return p.Clone(), nil
}

// UpdateProject merges patch into the project and always refreshes UpdatedAt.
func (s *Store) UpdateProject(id string, patch domain.ProjectPatch) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.Project{}, ErrClosed
	}

	current, ok := s.projects[id]
	if !ok {
		return domain.Project{}, fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
	}
	p := current.Clone()

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return domain.Project{}, domain.ErrNameRequired
		}
		p.Name = name
	}
	if patch.WebsiteURL != nil {
		if strings.TrimSpace(*patch.WebsiteURL) == "" {
			return domain.Project{}, domain.ErrInvalidSlug
		}
		slug, err := s.resolveSlugLocked(*patch.WebsiteURL, p.Name, id)
		if err != nil {
			return domain.Project{}, err
		}
		p.WebsiteURL = slug
	}
	if patch.Category != nil {
		p.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.SEOKeywords != nil {
		p.SEOKeywords = append([]string{}, patch.SEOKeywords...)
	}
	if patch.Logo != nil {
		p.Logo = *patch.Logo
	}
	if patch.Favicon != nil {
		p.Favicon = *patch.Favicon
	}
	if patch.ThemeID != nil {
		p.ThemeID = *patch.ThemeID
	}
	if patch.Published != nil {
		p.Published = *patch.Published
	}
	if patch.Thumbnail != nil {
		p.Thumbnail = *patch.Thumbnail
	}
	p.UpdatedAt = s.now()

	s.projects[id] = p
	s.persistLocked(p)
	return p.Clone(), nil
}

// DeleteProject removes a project from memory and persistence and clears the
// current selection if it pointed at it.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if _, ok := s.projects[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
	}
	delete(s.projects, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.currentID == id {
		s.currentID = ""
	}
	s.writer.enqueue(persistJob{kind: jobDelete, id: id})
	return nil
}

// SelectProject makes id the current project of the editing session.
func (s *Store) SelectProject(id string) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return domain.Project{}, fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
	}
	s.currentID = id
	return p.Clone(), nil
}

// CurrentProject returns the selected project, if any.
func (s *Store) CurrentProject() (domain.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentID == "" {
		return domain.Project{}, false
	}
	p, ok := s.projects[s.currentID]
	if !ok {
		return domain.Project{}, false
	}
	return p.Clone(), true
}

func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = ""
}

// AddSection inserts a section built from templateID into the project.
func (s *Store) AddSection(projectID, templateID string, content json.RawMessage, anchor *domain.InsertAnchor) (domain.Project, domain.SectionInstance, error) {
	var created domain.SectionInstance
	p, err := s.mutateSections(projectID, func(sections []domain.SectionInstance) ([]domain.SectionInstance, bool, error) {
		out, sec, err := s.engine.Insert(sections, templateID, content, anchor)
		created = sec
		return out, err == nil, err
	})
	return p, created, err
}

// ReorderSections applies a full new top-to-bottom sequence of section ids.
func (s *Store) ReorderSections(projectID string, sequence []string) (domain.Project, error) {
	return s.mutateSections(projectID, func(sections []domain.SectionInstance) ([]domain.SectionInstance, bool, error) {
		out, err := s.engine.Reorder(sections, sequence)
		return out, err == nil, err
	})
}

// DuplicateSection places a copy of the section directly below it.
func (s *Store) DuplicateSection(projectID, sectionID string) (domain.Project, domain.SectionInstance, error) {
	var clone domain.SectionInstance
	p, err := s.mutateSections(projectID, func(sections []domain.SectionInstance) ([]domain.SectionInstance, bool, error) {
		out, sec, err := s.engine.Duplicate(sections, sectionID)
		clone = sec
		return out, err == nil, err
	})
	return p, clone, err
}

// UpdateSection replaces the content of one section.
func (s *Store) UpdateSection(projectID, sectionID string, data json.RawMessage) (domain.Project, error) {
	return s.mutateSections(projectID, func(sections []domain.SectionInstance) ([]domain.SectionInstance, bool, error) {
		out, err := s.engine.Edit(sections, sectionID, data)
		return out, err == nil, err
	})
}

// DeleteSection removes a section. Deleting a section that does not exist is
// a no-op and is not persisted.
func (s *Store) DeleteSection(projectID, sectionID string) (domain.Project, error) {
	return s.mutateSections(projectID, func(sections []domain.SectionInstance) ([]domain.SectionInstance, bool, error) {
		return s.engine.Delete(sections, sectionID)
	})
}

// Flush waits until every mutation made so far has been handed to the adapter.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.writer.flush(ctx)
}

// Resave synchronously persists the current in-memory state of a project,
// after any queued writes. Use it to retry after a persistence failure.
func (s *Store) Resave(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	p, ok := s.projects[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
	}
	if err := s.writer.flush(ctx); err != nil {
		return err
	}
	if err := s.adapter.SaveProject(ctx, p.Clone()); err != nil {
		perr := &domain.PersistenceError{Op: "save", ProjectID: id, Err: err}
		s.recordFailure(perr)
		return perr
	}
	return nil
}

// Export returns the adapter's JSON snapshot once pending writes have landed.
func (s *Store) Export(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrClosed
	}

	if err := s.writer.flush(ctx); err != nil {
		return "", err
	}
	data, err := s.adapter.ExportAllData(ctx)
	if err != nil {
		return "", &domain.PersistenceError{Op: "export", Err: err}
	}
	return data, nil
}

// Import replaces all persisted data and reloads memory, and the template
// catalog, from it. It returns false for malformed input, in which case
// nothing changes.
func (s *Store) Import(ctx context.Context, data string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}

	if err := s.writer.flush(ctx); err != nil {
		return false, err
	}
	ok, err := s.adapter.ImportAllData(ctx, data)
	if err != nil {
		return false, &domain.PersistenceError{Op: "import", Err: err}
	}
	if !ok {
		return false, nil
	}

	projects, err := s.adapter.GetAllProjects(ctx)
	if err != nil {
		return true, &domain.PersistenceError{Op: "load", Err: err}
	}
	s.replaceLocked(projects)
	s.currentID = ""
	log.Printf("[store] imported %d projects", len(projects))

	if s.catalog == nil {
		return true, nil
	}
	templates, err := s.adapter.GetSectionTemplates(ctx)
	if err != nil {
		return true, &domain.PersistenceError{Op: "load templates", Err: err}
	}
	// an adapter with no templates keeps whatever the catalog was built from
	if len(templates) > 0 {
		s.catalog.Reload(templates)
		log.Printf("[store] reloaded %d section templates", len(templates))
	}
	return true, nil
}

// ClearAll deletes every project from memory and persistence.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if err := s.writer.flush(ctx); err != nil {
		return err
	}
	if err := s.adapter.ClearAll(ctx); err != nil {
		return &domain.PersistenceError{Op: "clear", Err: err}
	}
	s.projects = make(map[string]domain.Project)
	s.order = nil
	s.currentID = ""
	return nil
}

// Failures returns the most recent persistence failures, oldest first.
func (s *Store) Failures() []*domain.PersistenceError {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	return append([]*domain.PersistenceError(nil), s.failures...)
}

func (s *Store) ClearFailures() {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.failures = nil
}

// PersistenceStats reports how many background writes succeeded, failed and
// are still queued.
func (s *Store) PersistenceStats() Stats {
	return s.writer.stats()
}

// Close drains pending writes and stops the writer.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	return s.writer.close(ctx)
}

func (s *Store) mutateSections(projectID string, fn func([]domain.SectionInstance) ([]domain.SectionInstance, bool, error)) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.Project{}, ErrClosed
	}

	p, ok := s.projects[projectID]
	if !ok {
		return domain.Project{}, fmt.Errorf("%w: %s", domain.ErrProjectNotFound, projectID)
	}

	next, changed, err := fn(p.Sections)
	if err != nil {
		return domain.Project{}, err
	}
	if !changed {
		return p.Clone(), nil
	}

	p.Sections = next
	p.UpdatedAt = s.now()
	s.projects[projectID] = p
	s.persistLocked(p)
	return p.Clone(), nil
}

func (s *Store) persistLocked(p domain.Project) {
	s.writer.enqueue(persistJob{kind: jobSave, project: p.Clone()})
}

// resolveSlugLocked normalizes an explicit website url, or derives one from
// name, and checks it is not used by any project other than selfID.
func (s *Store) resolveSlugLocked(raw, name, selfID string) (string, error) {
	if strings.TrimSpace(raw) != "" {
		slug := domain.Slugify(raw)
		if slug == "" {
			return "", domain.ErrInvalidSlug
		}
		if s.slugTakenLocked(slug, selfID) {
			return "", fmt.Errorf("%w: %s", domain.ErrDuplicateSlug, slug)
		}
		return slug, nil
	}

	slug := domain.Slugify(name)
	if slug != "" {
		if s.slugTakenLocked(slug, selfID) {
			return "", fmt.Errorf("%w: %s", domain.ErrDuplicateSlug, slug)
		}
		return slug, nil
	}

	// nothing usable in the name → generated url, retry on collision
	for i := 0; i < fallbackSlugTries; i++ {
		slug, err := utils.NewTextID(fallbackSlugPrefix)
		if err != nil {
			return "", err
		}
		if !s.slugTakenLocked(slug, selfID) {
			return slug, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique website url")
}

func (s *Store) slugTakenLocked(slug, selfID string) bool {
	for id, p := range s.projects {
		if id != selfID && p.WebsiteURL == slug {
			return true
		}
	}
	return false
}

func (s *Store) pickThumbnail() string {
	if len(s.thumbnails) == 0 {
		return ""
	}
	i := s.pick(len(s.thumbnails))
	if i < 0 || i >= len(s.thumbnails) {
		i = 0
	}
	return s.thumbnails[i]
}

// replaceLocked swaps in a freshly loaded project set, repairing any section
// list whose orders are not dense.
func (s *Store) replaceLocked(projects []domain.Project) {
	s.projects = make(map[string]domain.Project, len(projects))
	s.order = s.order[:0]
	for _, p := range projects {
		p = p.Clone()
		if p.Sections == nil {
			p.Sections = []domain.SectionInstance{}
		}
		if err := domain.CheckDenseOrder(p.Sections); err != nil {
			log.Printf("[store] project %s: %v, renumbering", p.ID, err)
			p.Sections = composition.Renumber(p.Sections)
		} else {
			p.Sections = composition.Sorted(p.Sections)
		}
		s.projects[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	if _, ok := s.projects[s.currentID]; !ok {
		s.currentID = ""
	}
}

func (s *Store) recordFailure(perr *domain.PersistenceError) {
	s.failMu.Lock()
	s.failures = append(s.failures, perr)
	if len(s.failures) > maxRecentFailures {
		s.failures = s.failures[len(s.failures)-maxRecentFailures:]
	}
	s.failMu.Unlock()

	if s.onFailure != nil {
		s.onFailure(perr)
	}
}
