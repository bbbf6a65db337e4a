package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/domain"
)

const (
	projectKeyPrefix  = "site:project:"  // JSON document per project: site:project:{id}
	projectSetKey     = "site:projects"  // Set of all project ids
	templateKeyPrefix = "site:template:" // JSON document per template: site:template:{id}
	templateSetKey    = "site:templates" // Set of all template ids
)

// RedisAdapter stores projects and templates as JSON strings in Redis.
type RedisAdapter struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisAdapter creates a new RedisAdapter
func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client, now: time.Now}
}

func (r *RedisAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisAdapter) GetAllProjects(ctx context.Context) ([]domain.Project, error) {
	ids, err := r.client.SMembers(ctx, projectSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	out := make([]domain.Project, 0, len(ids))
	if err := r.loadAll(ctx, projectKeyPrefix, ids, func(raw []byte) error {
		var p domain.Project
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("failed to unmarshal project: %w", err)
		}
		out = append(out, p)
		return nil
	}); err != nil {
		return nil, err
	}

	SortProjects(out)
	return out, nil
}

func (r *RedisAdapter) SaveProject(ctx context.Context, p domain.Project) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, projectKeyPrefix+p.ID, data, 0)
		pipe.SAdd(ctx, projectSetKey, p.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

func (r *RedisAdapter) DeleteProject(ctx context.Context, id string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, projectKeyPrefix+id)
		pipe.SRem(ctx, projectSetKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (r *RedisAdapter) GetSectionTemplates(ctx context.Context) ([]domain.SectionTemplate, error) {
	ids, err := r.client.SMembers(ctx, templateSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list section templates: %w", err)
	}

	out := make([]domain.SectionTemplate, 0, len(ids))
	if err := r.loadAll(ctx, templateKeyPrefix, ids, func(raw []byte) error {
		var t domain.SectionTemplate
		if err := json.Unmarshal(raw, &t); err != nil {
			return fmt.Errorf("failed to unmarshal section template: %w", err)
		}
		out = append(out, t)
		return nil
	}); err != nil {
		return nil, err
	}

	SortTemplates(out)
	return out, nil
}

func (r *RedisAdapter) SaveSectionTemplate(ctx context.Context, t domain.SectionTemplate) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal section template: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, templateKeyPrefix+t.ID, data, 0)
		pipe.SAdd(ctx, templateSetKey, t.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save section template: %w", err)
	}
	return nil
}

func (r *RedisAdapter) ExportAllData(ctx context.Context) (string, error) {
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

func (r *RedisAdapter) ImportAllData(ctx context.Context, data string) (bool, error) {
	s, err := DecodeSnapshot(data)
	if err != nil {
		return false, nil
	}

	projectDocs := make(map[string][]byte, len(s.Projects))
	for _, p := range s.Projects {
		b, err := json.Marshal(p)
		if err != nil {
			return false, nil
		}
		projectDocs[p.ID] = b
	}
	templateDocs := make(map[string][]byte, len(s.Templates))
	for _, t := range s.Templates {
		b, err := json.Marshal(t)
		if err != nil {
			return false, nil
		}
		templateDocs[t.ID] = b
	}

	oldProjects, err := r.client.SMembers(ctx, projectSetKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to list projects: %w", err)
	}
	var oldTemplates []string
	if len(templateDocs) > 0 {
		oldTemplates, err = r.client.SMembers(ctx, templateSetKey).Result()
		if err != nil {
			return false, fmt.Errorf("failed to list section templates: %w", err)
		}
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		replace(ctx, pipe, projectKeyPrefix, projectSetKey, oldProjects, projectDocs)
		if len(templateDocs) > 0 {
			replace(ctx, pipe, templateKeyPrefix, templateSetKey, oldTemplates, templateDocs)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to import data: %w", err)
	}
	return true, nil
}

func (r *RedisAdapter) ClearAll(ctx context.Context) error {
	ids, err := r.client.SMembers(ctx, projectSetKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		replace(ctx, pipe, projectKeyPrefix, projectSetKey, ids, nil)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to clear projects: %w", err)
	}
	return nil
}

// loadAll fetches the documents for ids with one MGET. Ids whose document is
// gone are skipped.
func (r *RedisAdapter) loadAll(ctx context.Context, prefix string, ids []string, fn func(raw []byte) error) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = prefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return fmt.Errorf("failed to load %s documents: %w", prefix, err)
	}
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if err := fn([]byte(s)); err != nil {
			return err
		}
	}
	return nil
}

// replace queues commands that drop every old document under prefix and write docs in their place.
func replace(ctx context.Context, pipe redis.Pipeliner, prefix, setKey string, oldIDs []string, docs map[string][]byte) {
	for _, id := range oldIDs {
		pipe.Del(ctx, prefix+id)
	}
	pipe.Del(ctx, setKey)
	for id, doc := range docs {
		pipe.Set(ctx, prefix+id, doc, 0)
		pipe.SAdd(ctx, setKey, id)
	}
}
