// Package search mirrors users into Elasticsearch for free-text lookup.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"

	"github.com/oksasatya/user-service/internal/application"
)

const requestTimeout = 3 * time.Second

type UserIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewUserIndex(es *elasticsearch.Client, index string) *UserIndex {
	return &UserIndex{es: es, index: index}
}

type userDoc struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	IsActive    bool   `json:"is_active"`
	CreatedDate string `json:"created_date"`
}

func toDoc(u application.UserResponse) userDoc {
	return userDoc{
		ID:          u.ID.String(),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		IsActive:    u.IsActive,
		CreatedDate: u.CreatedDate.Format(time.RFC3339Nano),
	}
}

func (d userDoc) toResponse() (application.UserResponse, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return application.UserResponse{}, err
	}
	created, err := time.Parse(time.RFC3339Nano, d.CreatedDate)
	if err != nil {
		return application.UserResponse{}, err
	}
	return application.UserResponse{
		ID:          id,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Email:       d.Email,
		IsActive:    d.IsActive,
		CreatedDate: created,
	}, nil
}

func (x *UserIndex) Index(ctx context.Context, u application.UserResponse) error {
	b, err := json.Marshal(toDoc(u))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: u.ID.String(), Body: bytes.NewReader(b), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", u.ID, res.Status())
	}
	return nil
}

// Remove deletes the document. A missing document is not an error.
func (x *UserIndex) Remove(ctx context.Context, id uuid.UUID) error {
	req := esapi.DeleteRequest{Index: x.index, DocumentID: id.String()}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete %s: %s", id, res.Status())
	}
	return nil
}

// Search runs a multi_match over names and email, email boosted.
func (x *UserIndex) Search(ctx context.Context, q string, size int) ([]application.UserResponse, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "first_name", "last_name"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.es.Search(x.es.Search.WithContext(c), x.es.Search.WithIndex(x.index), x.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string  `json:"_id"`
				Source userDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]application.UserResponse, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		u, err := h.Source.toResponse()
		if err != nil {
			// documents written by an older mapping are skipped
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

var _ application.UserIndex = (*UserIndex)(nil)
