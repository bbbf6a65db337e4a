package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/domain"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS site_projects (
  id         text PRIMARY KEY,
  doc        jsonb NOT NULL,
  updated_at timestamptz NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS site_projects_website_url
  ON site_projects ((doc->>'website_url'))
  WHERE doc->>'website_url' <> '';
CREATE TABLE IF NOT EXISTS site_section_templates (
  id  text PRIMARY KEY,
  doc jsonb NOT NULL
);
`

// PostgresAdapter stores one JSONB document per project and per template.
type PostgresAdapter struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// NewPostgresAdapter creates a new PostgresAdapter
func NewPostgresAdapter(db *pgxpool.Pool) *PostgresAdapter {
	return &PostgresAdapter{db: db, now: time.Now}
}

// EnsureSchema creates the tables if they do not exist.
func (r *PostgresAdapter) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (r *PostgresAdapter) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *PostgresAdapter) GetAllProjects(ctx context.Context) ([]domain.Project, error) {
	const q = `
SELECT doc
FROM site_projects
ORDER BY (doc->>'created_at') ASC, id ASC;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var p domain.Project
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	SortProjects(out)
	return out, nil
}

func (r *PostgresAdapter) SaveProject(ctx context.Context, p domain.Project) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}

	const q = `
INSERT INTO site_projects (id, doc, updated_at)
VALUES ($1, $2::jsonb, now())
ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now();
`
	_, err = r.db.Exec(ctx, q, p.ID, string(doc))
	if err != nil {
		// unique violation on website_url
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("save project %s: %w", p.ID, domain.ErrDuplicateSlug)
		}
		return err
	}
	return nil
}

func (r *PostgresAdapter) DeleteProject(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM site_projects WHERE id = $1;`, id)
	return err
}

func (r *PostgresAdapter) GetSectionTemplates(ctx context.Context) ([]domain.SectionTemplate, error) {
	rows, err := r.db.Query(ctx, `SELECT doc FROM site_section_templates ORDER BY id ASC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.SectionTemplate, 0, 16)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var t domain.SectionTemplate
		if err := json.Unmarshal(doc, &t); err != nil {
			return nil, fmt.Errorf("decode section template: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAdapter) SaveSectionTemplate(ctx context.Context, t domain.SectionTemplate) error {
	doc, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode section template: %w", err)
	}

	const q = `
INSERT INTO site_section_templates (id, doc)
VALUES ($1, $2::jsonb)
ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc;
`
	_, err = r.db.Exec(ctx, q, t.ID, string(doc))
	return err
}

func (r *PostgresAdapter) ExportAllData(ctx context.Context) (string, error) {
	projects, err := r.GetAllProjects(ctx)
	if err != nil {
		return "", err
	}
	templates, err := r.GetSectionTemplates(ctx)
	if err != nil {
		return "", err
	}
	return EncodeSnapshot(projects, templates, r.now())
}

func (r *PostgresAdapter) ImportAllData(ctx context.Context, data string) (bool, error) {
	s, err := DecodeSnapshot(data)
	if err != nil {
		return false, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM site_projects;`); err != nil {
		return false, err
	}
	for _, p := range s.Projects {
		if err := insertDoc(ctx, tx, `INSERT INTO site_projects (id, doc) VALUES ($1, $2::jsonb);`, p.ID, p); err != nil {
			return false, err
		}
	}

	if len(s.Templates) > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM site_section_templates;`); err != nil {
			return false, err
		}
		for _, t := range s.Templates {
			if err := insertDoc(ctx, tx, `INSERT INTO site_section_templates (id, doc) VALUES ($1, $2::jsonb);`, t.ID, t); err != nil {
				return false, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (r *PostgresAdapter) ClearAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM site_projects;`)
	return err
}

func insertDoc(ctx context.Context, tx pgx.Tx, q, id string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", id, err)
	}
	if _, err := tx.Exec(ctx, q, id, string(doc)); err != nil {
		return fmt.Errorf("insert %s: %w", id, err)
	}
	return nil
}
