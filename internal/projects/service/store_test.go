package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/catalog"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/composition"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/repository"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/utils"
)

// recordingAdapter wraps a MemoryAdapter, records every save/delete in call
// order and can be told to fail or stall.
type recordingAdapter struct {
	*repository.MemoryAdapter

	mu      sync.Mutex
	calls   []string
	saved   []domain.Project
	failErr error
	delay   time.Duration
}

func newRecordingAdapter() *recordingAdapter {
	return &recordingAdapter{MemoryAdapter: repository.NewMemoryAdapter()}
}

func (r *recordingAdapter) SaveProject(ctx context.Context, p domain.Project) error {
	r.mu.Lock()
	delay, failErr := r.delay, r.failErr
	r.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	r.mu.Lock()
	r.calls = append(r.calls, "save:"+p.ID)
	r.saved = append(r.saved, p.Clone())
	r.mu.Unlock()
	if failErr != nil {
		return failErr
	}
	return r.MemoryAdapter.SaveProject(ctx, p)
}

func (r *recordingAdapter) DeleteProject(ctx context.Context, id string) error {
	r.mu.Lock()
	r.calls = append(r.calls, "delete:"+id)
	failErr := r.failErr
	r.mu.Unlock()
	if failErr != nil {
		return failErr
	}
	return r.MemoryAdapter.DeleteProject(ctx, id)
}

func (r *recordingAdapter) setFailure(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failErr = err
}

func (r *recordingAdapter) snapshot() ([]string, []domain.Project) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...), append([]domain.Project(nil), r.saved...)
}

type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestStore(t *testing.T, adapter repository.Adapter, opts Options) *Store {
	t.Helper()
	cat := catalog.New([]domain.SectionTemplate{
		{ID: "hero", Category: "hero", DefaultContent: json.RawMessage(`{"title":"Welcome"}`)},
		{ID: "text", Category: "content", DefaultContent: json.RawMessage(`{"body":""}`)},
	})
	clock := &fixedClock{t: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	if opts.IDs == nil {
		opts.IDs = utils.NewSequentialIDs()
	}
	if opts.Now == nil {
		opts.Now = clock.Now
	}
	engine := composition.New(cat, utils.NewSequentialIDs(), clock.Now)
	s := NewStore(adapter, engine, opts)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func sectionIDs(p domain.Project) []string {
	out := make([]string, len(p.Sections))
	for _, sec := range p.Sections {
		out[sec.Order] = sec.ID
	}
	return out
}

func TestStore_CreateProject(t *testing.T) {
	t.Run("derives website url from name", func(t *testing.T) {
		s := newTestStore(t, repository.NewMemoryAdapter(), Options{})
		p, err := s.CreateProject(domain.CreateProjectInput{Name: "  Café Rouge  ", Category: "food"})
		require.NoError(t, err)

		assert.Equal(t, "Café Rouge", p.Name)
		assert.Equal(t, "caferouge", p.WebsiteURL)
		assert.Equal(t, "default", p.ThemeID)
		assert.Empty(t, p.Sections)
		assert.NotNil(t, p.Sections)
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	})

	t.Run("explicit website url is normalized", func(t *testing.T) {
		s := newTestStore(t, repository.NewMemoryAdapter(), Options{})
		p, err := s.CreateProject(domain.CreateProjectInput{Name: "Shop", WebsiteURL: "My-Shop!"})
		require.NoError(t, err)
		assert.Equal(t, "my-shop", p.WebsiteURL)
	})

	t.Run("duplicate website url is rejected without mutation", func(t *testing.T) {
		adapter := newRecordingAdapter()
		s := newTestStore(t, adapter, Options{})
		_, err := s.CreateProject(domain.CreateProjectInput{Name: "Bakery"})
		require.NoError(t, err)

		_, err = s.CreateProject(domain.CreateProjectInput{Name: "Other", WebsiteURL: "bakery"})
		assert.ErrorIs(t, err, domain.ErrDuplicateSlug)
		assert.Len(t, s.List(), 1)

		require.NoError(t, s.Flush(context.Background()))
		calls, _ := adapter.snapshot()
		assert.Len(t, calls, 1)
	})

	t.Run("name required", func(t *testing.T) {
		s := newTestStore(t, repository.NewMemoryAdapter(), Options{})
		_, err := s.CreateProject(domain.CreateProjectInput{Name: "   "})
		assert.ErrorIs(t, err, domain.ErrNameRequired)
	})

	t.Run("explicit url with no usable characters", func(t *testing.T) {
		s := newTestStore(t, repository.NewMemoryAdapter(), Options{})
		_, err := s.CreateProject(domain.CreateProjectInput{Name: "Shop", WebsiteURL: "!!!"})
		assert.ErrorIs(t, err, domain.ErrInvalidSlug)
	})

	t.Run("name with no usable characters gets a generated url", func(t *testing.T) {
		s := newTestStore(t, repository.NewMemoryAdapter(), Options{})
		p, err := s.CreateProject(domain.CreateProjectInput{Name: "!!!"})
		require.NoError(t, err)
		assert.Regexp(t, `^site-\d{5}-\d{4}$`, p.WebsiteURL)
	})

	t.Run("thumbnail comes from the injected picker", func(t *testing.T) {
		s := newTestStore(t, repository.NewMemoryAdapter(), Options{
			Thumbnails: []string{"a.png", "b.png", "c.png"},
			Pick:       func(n int) int { return n - 1 },
		})
		p, err := s.CreateProject(domain.CreateProjectInput{Name: "Gallery"})
		require.NoError(t, err)
		assert.Equal(t, "c.png", p.Thumbnail)
	})
}

func TestStore_UpdateProject(t *testing.T) {
	s := newTestStore(t, repository.NewMemoryAdapter(), Options{})
	a, err := s.CreateProject(domain.CreateProjectInput{Name: "Alpha"})
	require.NoError(t, err)
	_, err = s.CreateProject(domain.CreateProjectInput{Name: "Beta"})
	require.NoError(t, err)

	t.Run("merges and refreshes updated_at", func(t *testing.T) {
		name, published := "Alpha Two", true
		p, err := s.UpdateProject(a.ID, domain.ProjectPatch{Name: &name, Published: &published, SEOKeywords: []string{"x"}})
		require.NoError(t, err)
		assert.Equal(t, "Alpha Two", p.Name)
		assert.True(t, p.Published)
		assert.Equal(t, []string{"x"}, p.SEOKeywords)
		assert.Equal(t, "alpha", p.WebsiteURL, "renaming does not change the url")
		assert.True(t, p.UpdatedAt.After(a.UpdatedAt))
	})

	t.Run("empty patch still touches updated_at", func(t *testing.T) {
		before, _ := s.Get(a.ID)
		p, err := s.UpdateProject(a.ID, domain.ProjectPatch{})
		require.NoError(t, err)
		assert.True(t, p.UpdatedAt.After(before.UpdatedAt))
	})

	t.Run("url of another project is rejected", func(t *testing.T) {
		url := "beta"
		_, err := s.UpdateProject(a.ID, domain.ProjectPatch{WebsiteURL: &url})
		assert.ErrorIs(t, err, domain.ErrDuplicateSlug)
		p, _ := s.Get(a.ID)
		assert.Equal(t, "alpha", p.WebsiteURL)
	})

	t.Run("keeping its own url is fine", func(t *testing.T) {
		url := "alpha"
		_, err := s.UpdateProject(a.ID, domain.ProjectPatch{WebsiteURL: &url})
		assert.NoError(t, err)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := s.UpdateProject("nope", domain.ProjectPatch{})
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})
}

func TestStore_DeleteProjectClearsSelection(t *testing.T) {
	adapter := newRecordingAdapter()
	s := newTestStore(t, adapter, Options{})
	p, err := s.CreateProject(domain.CreateProjectInput{Name: "Temp"})
	require.NoError(t, err)

	_, err = s.SelectProject(p.ID)
	require.NoError(t, err)
	current, ok := s.CurrentProject()
	require.True(t, ok)
	assert.Equal(t, p.ID, current.ID)

	require.NoError(t, s.DeleteProject(p.ID))
	_, ok = s.CurrentProject()
	assert.False(t, ok)
	assert.ErrorIs(t, s.DeleteProject(p.ID), domain.ErrProjectNotFound)

	require.NoError(t, s.Flush(context.Background()))
	calls, _ := adapter.snapshot()
	assert.Equal(t, []string{"save:" + p.ID, "delete:" + p.ID}, calls)

	stored, err := adapter.GetAllProjects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestStore_SectionOperations(t *testing.T) {
	s := newTestStore(t, repository.NewMemoryAdapter(), Options{})
	p, err := s.CreateProject(domain.CreateProjectInput{Name: "Landing"})
	require.NoError(t, err)

	_, a, err := s.AddSection(p.ID, "text", nil, nil)
	require.NoError(t, err)
	_, b, err := s.AddSection(p.ID, "text", nil, nil)
	require.NoError(t, err)
	_, c, err := s.AddSection(p.ID, "text", nil, nil)
	require.NoError(t, err)

	got, x, err := s.AddSection(p.ID, "hero", nil, &domain.InsertAnchor{Index: 1, Position: domain.PositionAbove})
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, x.ID, b.ID, c.ID}, sectionIDs(got))
	assert.JSONEq(t, `{"title":"Welcome"}`, string(x.Data))

	got, bCopy, err := s.DuplicateSection(p.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, x.ID, b.ID, bCopy.ID, c.ID}, sectionIDs(got))

	got, err = s.ReorderSections(p.ID, []string{c.ID, bCopy.ID, b.ID, x.ID, a.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID, bCopy.ID, b.ID, x.ID, a.ID}, sectionIDs(got))

	got, err = s.UpdateSection(p.ID, x.ID, json.RawMessage(`{"title":"Edited"}`))
	require.NoError(t, err)
	for _, sec := range got.Sections {
		if sec.ID == x.ID {
			assert.JSONEq(t, `{"title":"Edited"}`, string(sec.Data))
		}
	}

	got, err = s.DeleteSection(p.ID, x.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID, bCopy.ID, b.ID, a.ID}, sectionIDs(got))

	sections, err := s.Sections(p.ID)
	require.NoError(t, err)
	for i, sec := range sections {
		assert.Equal(t, i, sec.Order)
	}
}

func TestStore_FailedSectionOperationsDoNotMutate(t *testing.T) {
	adapter := newRecordingAdapter()
	s := newTestStore(t, adapter, Options{})
	p, err := s.CreateProject(domain.CreateProjectInput{Name: "Stable"})
	require.NoError(t, err)
	p, _, err = s.AddSection(p.ID, "text", nil, nil)
	require.NoError(t, err)

	_, _, err = s.AddSection(p.ID, "missing-template", nil, nil)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
	_, err = s.ReorderSections(p.ID, []string{"foreign"})
	assert.ErrorIs(t, err, domain.ErrInvalidSequence)
	_, _, err = s.DuplicateSection(p.ID, "missing")
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)
	_, err = s.UpdateSection(p.ID, "missing", nil)
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)
	_, _, err = s.AddSection("no-project", "text", nil, nil)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	after, err := s.DeleteSection(p.ID, "missing")
	require.NoError(t, err)
	assert.Equal(t, p.UpdatedAt, after.UpdatedAt)

	current, err := s.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, current)

	require.NoError(t, s.Flush(context.Background()))
	calls, _ := adapter.snapshot()
	assert.Len(t, calls, 2, "only the create and the first insert are persisted")
}

func TestStore_PersistsInMutationOrder(t *testing.T) {
	adapter := newRecordingAdapter()
	adapter.delay = 2 * time.Millisecond
	s := newTestStore(t, adapter, Options{QueueSize: 16})

	p, err := s.CreateProject(domain.CreateProjectInput{Name: "Ordered"})
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		_, _, err := s.AddSection(p.ID, "text", nil, nil)
		require.NoError(t, err)
	}
	final, err := s.Get(p.ID)
	require.NoError(t, err)

	require.NoError(t, s.Flush(context.Background()))
	_, saved := adapter.snapshot()
	require.Len(t, saved, 11)
	for i, sp := range saved {
		assert.Len(t, sp.Sections, i, "write %d out of order", i)
	}

	stored, err := adapter.MemoryAdapter.GetAllProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, sectionIDs(final), sectionIDs(stored[0]), "last write wins")
}

func TestStore_SurfacesPersistenceFailures(t *testing.T) {
	adapter := newRecordingAdapter()
	adapter.setFailure(errors.New("disk full"))

	var (
		mu       sync.Mutex
		reported []*domain.PersistenceError
	)
	s := newTestStore(t, adapter, Options{OnPersistenceFailure: func(e *domain.PersistenceError) {
		mu.Lock()
		defer mu.Unlock()
		reported = append(reported, e)
	}})

	p, err := s.CreateProject(domain.CreateProjectInput{Name: "Fragile"})
	require.NoError(t, err, "memory commit succeeds even if storage fails")
	require.NoError(t, s.Flush(context.Background()))

	assert.Equal(t, Stats{Applied: 0, Failed: 1, Pending: 0}, s.PersistenceStats())

	failures := s.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, p.ID, failures[0].ProjectID)
	assert.Equal(t, "save", failures[0].Op)
	assert.ErrorIs(t, failures[0], domain.ErrPersistence)

	mu.Lock()
	assert.Len(t, reported, 1)
	mu.Unlock()

	_, err = s.Get(p.ID)
	assert.NoError(t, err, "in-memory state is kept")

	err = s.Resave(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrPersistence)

	adapter.setFailure(nil)
	s.ClearFailures()
	require.NoError(t, s.Resave(context.Background(), p.ID))
	assert.Empty(t, s.Failures())

	stored, err := adapter.MemoryAdapter.GetAllProjects(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestStore_LoadExportImportClear(t *testing.T) {
	ctx := context.Background()
	adapter := repository.NewMemoryAdapter()
	s := newTestStore(t, adapter, Options{})

	p, err := s.CreateProject(domain.CreateProjectInput{Name: "Exported"})
	require.NoError(t, err)
	p, _, err = s.AddSection(p.ID, "hero", nil, nil)
	require.NoError(t, err)
	p, _, err = s.AddSection(p.ID, "text", nil, &domain.InsertAnchor{Index: 0, Position: domain.PositionAbove})
	require.NoError(t, err)

	dump, err := s.Export(ctx)
	require.NoError(t, err)

	_, err = s.SelectProject(p.ID)
	require.NoError(t, err)
	require.NoError(t, s.ClearAll(ctx))
	assert.Empty(t, s.List())
	_, ok := s.CurrentProject()
	assert.False(t, ok)

	ok, err = s.Import(ctx, "{broken")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, s.List())

	ok, err = s.Import(ctx, dump)
	require.NoError(t, err)
	require.True(t, ok)

	restored, err := s.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, sectionIDs(p), sectionIDs(restored))
	assert.Equal(t, p.WebsiteURL, restored.WebsiteURL)

	fresh := newTestStore(t, adapter, Options{})
	require.NoError(t, fresh.Load(ctx))
	loaded, err := fresh.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, sectionIDs(p), sectionIDs(loaded))
}

func TestStore_LoadRepairsOrder(t *testing.T) {
	ctx := context.Background()
	adapter := repository.NewMemoryAdapter()
	require.NoError(t, adapter.SaveProject(ctx, domain.Project{
		ID:         "legacy",
		Name:       "Legacy",
		WebsiteURL: "legacy",
		Sections: []domain.SectionInstance{
			{ID: "b", Order: 7},
			{ID: "a", Order: 2},
		},
	}))

	s := newTestStore(t, adapter, Options{})
	require.NoError(t, s.Load(ctx))

	p, err := s.Get("legacy")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, sectionIDs(p))
}

func TestStore_LoadRepairsOrderFromFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "site.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":1,"projects":[{"id":"legacy","name":"Legacy","website_url":"legacy","sections":[
	  {"id":"b","template_id":"text","order":7},
	  {"id":"a","template_id":"text","order":2}
	]}],"templates":[]}`), 0o644))

	adapter, err := repository.NewFileAdapter(path)
	require.NoError(t, err)
	s := newTestStore(t, adapter, Options{})
	require.NoError(t, s.Load(ctx))

	p, err := s.Get("legacy")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, sectionIDs(p))
	assert.Equal(t, 1, p.Sections[1].Order)
}

func TestStore_Closed(t *testing.T) {
	s := newTestStore(t, repository.NewMemoryAdapter(), Options{})
	require.NoError(t, s.Close(context.Background()))
	require.NoError(t, s.Close(context.Background()))

	_, err := s.CreateProject(domain.CreateProjectInput{Name: "Late"})
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Flush(context.Background()), ErrClosed)
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := newTestStore(t, repository.NewMemoryAdapter(), Options{})
	p, err := s.CreateProject(domain.CreateProjectInput{Name: "Copies", SEOKeywords: []string{"a"}})
	require.NoError(t, err)
	p, _, err = s.AddSection(p.ID, "text", nil, nil)
	require.NoError(t, err)

	p.Sections[0].Order = 42
	p.SEOKeywords[0] = "mutated"

	again, err := s.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Sections[0].Order)
	assert.Equal(t, "a", again.SEOKeywords[0])
}

const importWithCustomTemplate = `{
  "version": 1,
  "exported_at": "2026-05-01T00:00:00Z",
  "projects": [{"id": "p1", "name": "Imported", "website_url": "imported", "sections": []}],
  "templates": [{"id": "custom", "category": "content", "name": "Custom", "default_content": {"quote": "hi"}}]
}`

func TestStore_ImportReloadsTemplateCatalog(t *testing.T) {
	ctx := context.Background()
	cat := catalog.New([]domain.SectionTemplate{
		{ID: "hero", Category: "hero", DefaultContent: json.RawMessage(`{"title":"Welcome"}`)},
	})
	s := NewStore(repository.NewMemoryAdapter(), composition.New(cat, nil, nil), Options{Catalog: cat})
	t.Cleanup(func() { _ = s.Close(ctx) })

	ok, err := s.Import(ctx, importWithCustomTemplate)
	require.NoError(t, err)
	require.True(t, ok)

	_, sec, err := s.AddSection("p1", "custom", nil, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"quote":"hi"}`, string(sec.Data))

	_, _, err = s.AddSection("p1", "hero", nil, nil)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound, "templates replaced by the import are gone")
	assert.Len(t, cat.List(), 1)
}

func TestStore_ImportWithoutTemplatesKeepsCatalog(t *testing.T) {
	ctx := context.Background()
	cat := catalog.New([]domain.SectionTemplate{
		{ID: "hero", Category: "hero", DefaultContent: json.RawMessage(`{"title":"Welcome"}`)},
	})
	s := NewStore(repository.NewMemoryAdapter(), composition.New(cat, nil, nil), Options{Catalog: cat})
	t.Cleanup(func() { _ = s.Close(ctx) })

	ok, err := s.Import(ctx, `{"version":1,"projects":[{"id":"p1","name":"Plain","website_url":"plain","sections":[]}],"templates":[]}`)
	require.NoError(t, err)
	require.True(t, ok)

	_, _, err = s.AddSection("p1", "hero", nil, nil)
	assert.NoError(t, err)
}

// stallingAdapter holds every save until the write context ends or release is closed.
type stallingAdapter struct {
	*repository.MemoryAdapter
	release chan struct{}
}

func newStallingAdapter() *stallingAdapter {
	return &stallingAdapter{MemoryAdapter: repository.NewMemoryAdapter(), release: make(chan struct{})}
}

func (a *stallingAdapter) SaveProject(ctx context.Context, p domain.Project) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-a.release:
		return a.MemoryAdapter.SaveProject(ctx, p)
	}
}

func TestStore_StalledBackend(t *testing.T) {
	t.Run("write timeout fails the stuck save", func(t *testing.T) {
		adapter := newStallingAdapter()
		s := newTestStore(t, adapter, Options{WriteTimeout: 20 * time.Millisecond})

		p, err := s.CreateProject(domain.CreateProjectInput{Name: "Slow"})
		require.NoError(t, err)
		require.NoError(t, s.Flush(context.Background()))

		failures := s.Failures()
		require.Len(t, failures, 1)
		assert.Equal(t, p.ID, failures[0].ProjectID)
		assert.ErrorIs(t, failures[0], context.DeadlineExceeded)
	})

	t.Run("full queue drops writes instead of blocking", func(t *testing.T) {
		adapter := newStallingAdapter()
		s := newTestStore(t, adapter, Options{QueueSize: 2})
		t.Cleanup(func() { close(adapter.release) })

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 6; i++ {
				_, _ = s.CreateProject(domain.CreateProjectInput{Name: fmt.Sprintf("Stalled %d", i)})
			}
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("mutations blocked behind a stalled backend")
		}

		listed := make(chan int, 1)
		go func() { listed <- len(s.List()) }()
		select {
		case n := <-listed:
			assert.Equal(t, 6, n)
		case <-time.After(time.Second):
			t.Fatal("List blocked behind a stalled backend")
		}

		failures := s.Failures()
		require.NotEmpty(t, failures)
		for _, f := range failures {
			assert.ErrorIs(t, f, ErrQueueFull)
			assert.Equal(t, "save", f.Op)
		}
		assert.Equal(t, int64(len(failures)), s.PersistenceStats().Failed)
	})
}
