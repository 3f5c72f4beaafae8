package crud

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/georgemunganga/autek-admin/internal/apiclient"
	"github.com/georgemunganga/autek-admin/internal/apperr"
)

// Service defines the remote operations behind a resource page.
type Service interface {
	List(ctx context.Context, res *Resource, scope string) ([]apiclient.Record, error)
	Options(ctx context.Context, res *Resource, editingID string) (map[string][]Option, error)
	Save(ctx context.Context, res *Resource, id string, sub Submission) error
	Delete(ctx context.Context, res *Resource, id string) error
}

type service struct {
	clients apiclient.Registry
	logger  *slog.Logger
}

func NewService(clients apiclient.Registry, logger *slog.Logger) Service {
	return &service{clients: clients, logger: logger}
}

// List reads the whole collection. A scoped resource with no parent
// selected has nothing to list.
func (s *service) List(ctx context.Context, res *Resource, scope string) ([]apiclient.Record, error) {
	var query url.Values
	if res.Scope != nil {
		if scope == "" {
			return []apiclient.Record{}, nil
		}
		query = url.Values{res.Scope.Param: {scope}}
	}
	records, err := s.clients.For(res.API).List(ctx, res.Endpoint, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", res.Slug, err)
	}
	return records, nil
}

// Options loads the choices of every related select field. A related
// collection that fails to load leaves that select empty, unless the
// credential was rejected.
func (s *service) Options(ctx context.Context, res *Resource, editingID string) (map[string][]Option, error) {
	out := make(map[string][]Option)
	for _, f := range res.Fields {
		if f.Kind != Select || f.Related == nil {
			continue
		}
		rel := f.Related
		api := rel.API
		if api == "" {
			api = res.API
		}
		records, err := s.clients.For(api).List(ctx, rel.Endpoint, nil)
		if err != nil {
			if apperr.IsUnauthorized(err) {
				return nil, err
			}
			s.logger.WarnContext(ctx, "load related options",
				slog.String("resource", res.Slug), slog.String("endpoint", rel.Endpoint), slog.Any("error", err))
			out[f.Key] = nil
			continue
		}
		opts := make([]Option, 0, len(records))
		for _, rec := range records {
			value := apiclient.Text(rec.Lookup(orDefault(rel.ValueKey, "id")))
			if rel.ExcludeSelf && editingID != "" && value == editingID {
				continue
			}
			label := apiclient.Text(rec.Lookup(orDefault(rel.LabelKey, "title")))
			opts = append(opts, Option{Value: value, Label: label + rel.LabelSuffix})
		}
		out[f.Key] = opts
	}
	return out, nil
}

// Save creates the record when id is empty and patches it otherwise.
func (s *service) Save(ctx context.Context, res *Resource, id string, sub Submission) error {
	creating := id == ""
	if res.Validate != nil {
		if err := res.Validate(sub, creating); err != nil {
			return err
		}
	}
	p, err := BuildPayload(res, sub, creating)
	if err != nil {
		return err
	}
	if res.Derive != nil {
		if err := res.Derive(p); err != nil {
			return err
		}
	}

	client := s.clients.For(res.API)
	body := Encode(res, p, sub)
	if creating {
		err = client.Create(ctx, res.Endpoint, body)
	} else {
		err = client.Update(ctx, res.Endpoint, id, body)
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", res.Slug, err)
	}
	s.logger.InfoContext(ctx, "record saved",
		slog.String("resource", res.Slug), slog.String("id", id), slog.Bool("created", creating))
	return nil
}

func (s *service) Delete(ctx context.Context, res *Resource, id string) error {
	if err := s.clients.For(res.API).Delete(ctx, res.Endpoint, id); err != nil {
		return fmt.Errorf("delete %s %s: %w", res.Slug, id, err)
	}
	s.logger.InfoContext(ctx, "record deleted", slog.String("resource", res.Slug), slog.String("id", id))
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
