package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// --- session store mock ---

type mockSession struct {
	token        string
	unauthorized atomic.Int32
}

func (m *mockSession) Token() string   { return m.token }
func (m *mockSession) OnUnauthorized() { m.unauthorized.Add(1) }

func TestListSendsBearerAndParams(t *testing.T) {
	var gotAuth string
	var gotQuery string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	session := &mockSession{token: "tok123"}
	c := New(srv.URL, WithSession(session))
	res := NewResource[testItem](c, "/api/v1/brands")

	q := NewQueryState()
	q.SetSearch("apple")
	q.SetFilter("active", "true")
	if _, err := res.List(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q; want Bearer tok123", gotAuth)
	}
	for _, part := range []string{"search=apple", "active=true", "page=1", "page_size=20"} {
		if !strings.Contains(gotQuery, part) {
			t.Errorf("query %q missing %q", gotQuery, part)
		}
	}
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantUnauth  bool
	}{
		{"message field", 400, `{"code":400,"message":"name is required"}`, "name is required", false},
		{"error field", 422, `{"error":"bad input"}`, "bad input", false},
		{"no body", 500, ``, "request failed", false},
		{"non-json body", 502, `gateway exploded`, "request failed", false},
		{"unauthorized", 401, `{"message":"missing bearer token"}`, "missing bearer token", true},
		{"forbidden", 403, `{"message":"admins only"}`, "admins only", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			session := &mockSession{token: "t"}
			c := New(srv.URL, WithSession(session))
			res := NewResource[testItem](c, "/api/v1/brands")

			_, err := res.List(context.Background(), NewQueryState())
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T: %v", err, err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("status = %d; want %d", apiErr.Status, tt.status)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("message = %q; want %q", apiErr.Message, tt.wantMessage)
			}
			if apiErr.Unauthorized() != tt.wantUnauth {
				t.Errorf("Unauthorized() = %v; want %v", apiErr.Unauthorized(), tt.wantUnauth)
			}

			wantHookCalls := int32(0)
			if tt.wantUnauth {
				wantHookCalls = 1
			}
			if session.unauthorized.Load() != wantHookCalls {
				t.Errorf("OnUnauthorized calls = %d; want %d", session.unauthorized.Load(), wantHookCalls)
			}
		})
	}
}

func TestCreateAndUpdateUnwrap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodPost:
			io.WriteString(w, `{"code":201,"message":"created","data":{"id":11,"name":"new"}}`)
		case http.MethodPut:
			io.WriteString(w, `{"id":11,"name":"renamed"}`)
		}
	}))
	defer srv.Close()

	res := NewResource[testItem](New(srv.URL), "/api/v1/brands")

	created, err := res.Create(context.Background(), map[string]string{"name": "new"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 11 || created.Name != "new" {
		t.Errorf("created = %+v", created)
	}

	updated, err := res.Update(context.Background(), 11, map[string]string{"name": "renamed"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "renamed" {
		t.Errorf("updated = %+v", updated)
	}
}

func TestBulkRemove(t *testing.T) {
	t.Run("issues one delete per id", func(t *testing.T) {
		var paths []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				t.Errorf("method = %s; want DELETE", r.Method)
			}
			paths = append(paths, r.URL.Path)
			io.WriteString(w, `{"code":200,"message":"success"}`)
		}))
		defer srv.Close()

		res := NewResource[testItem](New(srv.URL), "/api/v1/brands")
		if err := res.BulkRemove(context.Background(), []uint{1, 2, 3}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"/api/v1/brands/1", "/api/v1/brands/2", "/api/v1/brands/3"}
		if len(paths) != len(want) {
			t.Fatalf("delete calls = %v; want %v", paths, want)
		}
		for i := range want {
			if paths[i] != want[i] {
				t.Errorf("call %d = %q; want %q", i, paths[i], want[i])
			}
		}
	})

	t.Run("stops at first failure", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 2 {
				w.WriteHeader(http.StatusNotFound)
				io.WriteString(w, `{"message":"resource not found"}`)
				return
			}
			io.WriteString(w, `{"code":200,"message":"success"}`)
		}))
		defer srv.Close()

		res := NewResource[testItem](New(srv.URL), "/api/v1/brands")
		err := res.BulkRemove(context.Background(), []uint{1, 2, 3})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "id 2") {
			t.Errorf("error %q should name the failed id", err)
		}
		if calls.Load() != 2 {
			t.Errorf("calls = %d; want 2", calls.Load())
		}
	})
}

func TestImportUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		if header.Filename != "devices.xlsx" {
			t.Errorf("filename = %q; want devices.xlsx", header.Filename)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"code":    200,
			"message": "success",
			"data": map[string]any{
				"imported": 2,
				"failed":   1,
				"errors":   []map[string]any{{"row": 3, "message": "invalid price"}},
			},
		})
	}))
	defer srv.Close()

	res := NewResource[testItem](New(srv.URL), "/api/v1/devices")
	report, err := res.Import(context.Background(), "devices.xlsx", strings.NewReader("not a real workbook"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Imported != 2 || report.Failed != 1 {
		t.Errorf("report = %+v", report)
	}
	if len(report.Errors) != 1 || report.Errors[0].Row != 3 {
		t.Errorf("errors = %+v", report.Errors)
	}
}

func TestExportStripsPagination(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		io.WriteString(w, "binary-bytes")
	}))
	defer srv.Close()

	res := NewResource[testItem](New(srv.URL), "/api/v1/devices")
	q := NewQueryState()
	q.SetSearch("iphone")

	var out strings.Builder
	if err := res.Export(context.Background(), q, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.String() != "binary-bytes" {
		t.Errorf("body = %q", out.String())
	}
	if strings.Contains(gotQuery, "page") {
		t.Errorf("query %q should not carry pagination", gotQuery)
	}
	if !strings.Contains(gotQuery, "search=iphone") {
		t.Errorf("query %q should carry search", gotQuery)
	}
}
