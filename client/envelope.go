package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PagedResult is the single shape every list response is normalized to,
// regardless of which envelope the server used.
type PagedResult[T any] struct {
	Items     []T
	Total     int
	Page      int
	PageCount int
}

// listEnvelope probes the fields of every known list envelope shape:
//
//	[ ... ]                                       bare array
//	{data: [...], total, totalPages}              flat wrapper
//	{items: [...], metadata: {total, total_pages}} metadata wrapper
//	{code, message, data: {items, total, page, page_size, total_pages}}
//
// Only the fields present in the actual response are set.
type listEnvelope struct {
	Data     json.RawMessage `json:"data"`
	Total    *int            `json:"total"`
	Pages    *int            `json:"totalPages"`
	Items    json.RawMessage `json:"items"`
	Metadata *struct {
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	} `json:"metadata"`
}

// pagedData is the data payload of the server's own envelope.
type pagedData[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// normalizeList converts any supported list envelope into a PagedResult.
// page and pageSize describe the request and are used to fill in fields the
// envelope does not carry.
func normalizeList[T any](raw []byte, page, pageSize int) (*PagedResult[T], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty list response")
	}

	// Bare array.
	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode list items: %w", err)
		}
		return buildResult(items, len(items), page, 0, pageSize), nil
	}

	var env listEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}

	// Metadata wrapper: {items, metadata:{total, total_pages}}.
	if env.Metadata != nil && env.Items != nil {
		var items []T
		if err := json.Unmarshal(env.Items, &items); err != nil {
			return nil, fmt.Errorf("decode list items: %w", err)
		}
		return buildResult(items, env.Metadata.Total, page, env.Metadata.TotalPages, pageSize), nil
	}

	if len(env.Data) > 0 {
		data := bytes.TrimSpace(env.Data)

		// Flat wrapper: {data:[...], total, totalPages}.
		if len(data) > 0 && data[0] == '[' {
			var items []T
			if err := json.Unmarshal(data, &items); err != nil {
				return nil, fmt.Errorf("decode list items: %w", err)
			}
			total := len(items)
			if env.Total != nil {
				total = *env.Total
			}
			pages := 0
			if env.Pages != nil {
				pages = *env.Pages
			}
			return buildResult(items, total, page, pages, pageSize), nil
		}

		// Server envelope: {code, message, data:{items, total, page, ...}}.
		var pd pagedData[T]
		if err := json.Unmarshal(data, &pd); err != nil {
			return nil, fmt.Errorf("decode paged data: %w", err)
		}
		if pd.Page > 0 {
			page = pd.Page
		}
		return buildResult(pd.Items, pd.Total, page, pd.TotalPages, pageSize), nil
	}

	return nil, fmt.Errorf("unrecognized list envelope")
}

// buildResult assembles a PagedResult, deriving the page count from the total
// when the envelope did not carry one. PageCount is always at least 1 so an
// empty result still reports one page.
func buildResult[T any](items []T, total, page, pageCount, pageSize int) *PagedResult[T] {
	if items == nil {
		items = []T{}
	}
	if pageCount < 1 {
		if pageSize > 0 {
			pageCount = (total + pageSize - 1) / pageSize
		}
		if pageCount < 1 {
			pageCount = 1
		}
	}
	if page < 1 {
		page = 1
	}
	return &PagedResult[T]{
		Items:     items,
		Total:     total,
		Page:      page,
		PageCount: pageCount,
	}
}

// normalizeEntity unwraps a single-entity response, which is either the bare
// entity or the server's {code, message, data} envelope.
func normalizeEntity[T any](raw []byte) (*T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty entity response")
	}

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &env); err == nil && len(bytes.TrimSpace(env.Data)) > 0 && !bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
			trimmed = env.Data
		}
	}

	var entity T
	if err := json.Unmarshal(trimmed, &entity); err != nil {
		return nil, fmt.Errorf("decode entity: %w", err)
	}
	return &entity, nil
}
