// Package composition holds the pure operations over a project's ordered
// section list. Every operation returns a fresh slice sorted by order whose
// orders are exactly 0..N-1; inputs are never modified.
package composition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/utils"
)

const sectionIDPrefix = "sec"

// TemplateLookup is the slice of the template catalog the engine needs.
type TemplateLookup interface {
	GetTemplateByID(id string) (domain.SectionTemplate, bool)
}

// Engine carries the collaborators of the composition operations. It holds no
// section state between calls.
type Engine struct {
	templates TemplateLookup
	ids       utils.IDGenerator
	now       func() time.Time
}

// New creates an Engine. A nil ids or now falls back to random ids and time.Now.
func New(templates TemplateLookup, ids utils.IDGenerator, now func() time.Time) *Engine {
	if ids == nil {
		ids = utils.RandomIDs{}
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{templates: templates, ids: ids, now: now}
}

// Insert adds a section built from templateID. content overrides the
// template's default content unless it is empty or JSON null. With no anchor the section is
// appended; otherwise it lands at anchor.Index (above) or anchor.Index+1 (below).
func (e *Engine) Insert(sections []domain.SectionInstance, templateID string, content json.RawMessage, anchor *domain.InsertAnchor) ([]domain.SectionInstance, domain.SectionInstance, error) {
	tpl, ok := e.templates.GetTemplateByID(templateID)
	if !ok {
		return nil, domain.SectionInstance{}, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, templateID)
	}

	target, err := targetIndex(len(sections), anchor)
	if err != nil {
		return nil, domain.SectionInstance{}, err
	}

	data, err := compactData(content)
	if err != nil {
		return nil, domain.SectionInstance{}, err
	}
	if data == nil {
		data = tpl.DefaultContent
	}

	id, err := e.ids.NewID(sectionIDPrefix)
	if err != nil {
		return nil, domain.SectionInstance{}, fmt.Errorf("generate section id: %w", err)
	}
	now := e.now()
	created := domain.SectionInstance{
		ID:         id,
		TemplateID: tpl.ID,
		Data:       domain.CloneData(data),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	out, err := insertAt(sections, created, target)
	if err != nil {
		return nil, domain.SectionInstance{}, err
	}
	return out, created.Clone(), nil
}

// Reorder assigns each section the position of its id in sequence. sequence
// must be a permutation of the current section ids.
func (e *Engine) Reorder(sections []domain.SectionInstance, sequence []string) ([]domain.SectionInstance, error) {
	if len(sequence) != len(sections) {
		return nil, fmt.Errorf("%w: got %d ids for %d sections", domain.ErrInvalidSequence, len(sequence), len(sections))
	}

	byID := make(map[string]int, len(sections))
	for i, s := range sections {
		byID[s.ID] = i
	}

	position := make(map[string]int, len(sequence))
	for i, id := range sequence {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("%w: unknown section %q", domain.ErrInvalidSequence, id)
		}
		if _, dup := position[id]; dup {
			return nil, fmt.Errorf("%w: section %q repeated", domain.ErrInvalidSequence, id)
		}
		position[id] = i
	}

	now := e.now()
	out := domain.CloneSections(sections)
	for i := range out {
		out[i].Order = position[out[i].ID]
		out[i].UpdatedAt = now
	}
	return finalize(out)
}

// Duplicate clones the section with sectionID and places the copy directly
// below the original.
func (e *Engine) Duplicate(sections []domain.SectionInstance, sectionID string) ([]domain.SectionInstance, domain.SectionInstance, error) {
	ordered := Renumber(sections)
	idx := indexOf(ordered, sectionID)
	if idx < 0 {
		return nil, domain.SectionInstance{}, fmt.Errorf("%w: %s", domain.ErrSectionNotFound, sectionID)
	}
	original := ordered[idx]

	if _, ok := e.templates.GetTemplateByID(original.TemplateID); !ok {
		return nil, domain.SectionInstance{}, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, original.TemplateID)
	}

	id, err := e.ids.NewID(sectionIDPrefix)
	if err != nil {
		return nil, domain.SectionInstance{}, fmt.Errorf("generate section id: %w", err)
	}
	now := e.now()
	clone := domain.SectionInstance{
		ID:         id,
		TemplateID: original.TemplateID,
		Data:       domain.CloneData(original.Data),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	out, err := insertAt(ordered, clone, original.Order+1)
	if err != nil {
		return nil, domain.SectionInstance{}, err
	}
	return out, clone.Clone(), nil
}

// Delete removes the section with sectionID and compacts the remaining
// orders. A missing id is not an error; removed reports whether anything changed.
func (e *Engine) Delete(sections []domain.SectionInstance, sectionID string) (out []domain.SectionInstance, removed bool, err error) {
	out = make([]domain.SectionInstance, 0, len(sections))
	for _, s := range sections {
		if s.ID == sectionID {
			removed = true
			continue
		}
		out = append(out, s.Clone())
	}
	out, err = finalize(out)
	return out, removed, err
}

// Edit replaces the data of one section. Empty or null data is rejected.
func (e *Engine) Edit(sections []domain.SectionInstance, sectionID string, data json.RawMessage) ([]domain.SectionInstance, error) {
	idx := indexOf(sections, sectionID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrSectionNotFound, sectionID)
	}
	compact, err := compactData(data)
	if err != nil {
		return nil, err
	}
	if compact == nil {
		return nil, fmt.Errorf("%w: section data required", domain.ErrInvalidData)
	}

	out := domain.CloneSections(sections)
	out[idx].Data = compact
	out[idx].UpdatedAt = e.now()
	return finalize(out)
}

// Renumber returns a copy of sections sorted by their current order, with
// orders reassigned to 0..N-1. Ties keep their slice order.
func Renumber(sections []domain.SectionInstance) []domain.SectionInstance {
	out := Sorted(sections)
	for i := range out {
		out[i].Order = i
	}
	return out
}

// Sorted returns a copy of sections sorted by order.
func Sorted(sections []domain.SectionInstance) []domain.SectionInstance {
	out := domain.CloneSections(sections)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func finalize(sections []domain.SectionInstance) ([]domain.SectionInstance, error) {
	out := Renumber(sections)
	if err := domain.CheckDenseOrder(out); err != nil {
		return nil, err
	}
	return out, nil
}

// insertAt shifts every section at or after target down by one and gives the
// new section the freed slot.
func insertAt(sections []domain.SectionInstance, s domain.SectionInstance, target int) ([]domain.SectionInstance, error) {
	out := make([]domain.SectionInstance, 0, len(sections)+1)
	for _, existing := range Renumber(sections) {
		if existing.Order >= target {
			existing.Order++
		}
		out = append(out, existing)
	}
	s.Order = target
	out = append(out, s)
	return finalize(out)
}

func targetIndex(n int, anchor *domain.InsertAnchor) (int, error) {
	if anchor == nil {
		return n, nil
	}

	var target int
	switch anchor.Position {
	case domain.PositionAbove:
		target = anchor.Index
	case domain.PositionBelow:
		target = anchor.Index + 1
	default:
		return 0, fmt.Errorf("%w: position %q", domain.ErrInvalidAnchor, anchor.Position)
	}

	if target < 0 {
		target = 0
	}
	if target > n {
		target = n
	}
	return target, nil
}

// compactData returns data without insignificant whitespace, or nil when it is
// empty or JSON null, so stored bytes survive every adapter unchanged.
func compactData(data json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidData, err)
	}
	return buf.Bytes(), nil
}

func indexOf(sections []domain.SectionInstance, id string) int {
	for i, s := range sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}
