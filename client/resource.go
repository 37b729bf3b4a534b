package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// ImportReport mirrors the server's bulk import summary.
type ImportReport struct {
	Imported int        `json:"imported"`
	Failed   int        `json:"failed"`
	Errors   []RowError `json:"errors,omitempty"`
}

// RowError describes one failed spreadsheet row.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ResourceClient maps CRUD intents for one resource to HTTP calls and
// normalizes responses and errors. It holds no state beyond its configuration
// and never mutates anything shared.
type ResourceClient[T any] struct {
	c    *Client
	path string
}

// NewResource creates a ResourceClient for the resource rooted at path,
// e.g. NewResource[Brand](c, "/api/v1/brands").
func NewResource[T any](c *Client, path string) *ResourceClient[T] {
	return &ResourceClient[T]{c: c, path: path}
}

// List fetches one page of the resource described by q.
func (r *ResourceClient[T]) List(ctx context.Context, q *QueryState) (*PagedResult[T], error) {
	return r.listWith(ctx, q.Params(), q.Page(), q.PageSize())
}

// listWith fetches a page from already-serialized parameters. Used by
// ListController, which snapshots parameters under its own lock.
func (r *ResourceClient[T]) listWith(ctx context.Context, params url.Values, page, pageSize int) (*PagedResult[T], error) {
	resp, err := r.c.do(ctx, http.MethodGet, r.path, params, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read list response: %w", err)
	}
	return normalizeList[T](raw, page, pageSize)
}

// Get fetches a single entity by ID.
func (r *ResourceClient[T]) Get(ctx context.Context, id uint) (*T, error) {
	resp, err := r.c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", r.path, id), nil, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read entity response: %w", err)
	}
	return normalizeEntity[T](raw)
}

// Create posts a new entity and returns it as created by the server.
func (r *ResourceClient[T]) Create(ctx context.Context, payload any) (*T, error) {
	return r.send(ctx, http.MethodPost, r.path, payload)
}

// Update puts changed fields for an existing entity and returns the result.
func (r *ResourceClient[T]) Update(ctx context.Context, id uint, payload any) (*T, error) {
	return r.send(ctx, http.MethodPut, fmt.Sprintf("%s/%d", r.path, id), payload)
}

// Remove deletes one entity. Success is a nil error.
func (r *ResourceClient[T]) Remove(ctx context.Context, id uint) error {
	resp, err := r.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", r.path, id), nil, nil, "")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// BulkRemove deletes the given entities one by one and stops at the first
// failure, returning which ID failed.
func (r *ResourceClient[T]) BulkRemove(ctx context.Context, ids []uint) error {
	for _, id := range ids {
		if err := r.Remove(ctx, id); err != nil {
			return fmt.Errorf("delete id %d: %w", id, err)
		}
	}
	return nil
}

// Import uploads a spreadsheet as multipart form data and returns the
// server's per-row report.
func (r *ResourceClient[T]) Import(ctx context.Context, filename string, f io.Reader) (*ImportReport, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("copy upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	resp, err := r.c.do(ctx, http.MethodPost, r.path+"/import", nil, &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var env struct {
		Data *ImportReport `json:"data"`
	}
	if err := decodeJSON(resp, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return &ImportReport{}, nil
	}
	return env.Data, nil
}

// Export streams the filtered resource as a spreadsheet into w. Search and
// filter parameters from q apply; pagination does not.
func (r *ResourceClient[T]) Export(ctx context.Context, q *QueryState, w io.Writer) error {
	params := url.Values{}
	if q != nil {
		params = q.Params()
		params.Del("page")
		params.Del("page_size")
	}

	resp, err := r.c.do(ctx, http.MethodGet, r.path+"/export", params, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("stream export: %w", err)
	}
	return nil
}

func (r *ResourceClient[T]) send(ctx context.Context, method, path string, payload any) (*T, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	resp, err := r.c.do(ctx, method, path, nil, bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read entity response: %w", err)
	}
	return normalizeEntity[T](raw)
}
