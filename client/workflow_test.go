package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// TestBulkDeleteWorkflow exercises the components the way a list page wires
// them together: select three rows, bulk delete, clear the selection, and
// refresh the list.
func TestBulkDeleteWorkflow(t *testing.T) {
	var mu sync.Mutex
	deleted := map[string]bool{}
	listCalls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch r.Method {
		case http.MethodDelete:
			deleted[r.URL.Path] = true
			io.WriteString(w, `{"code":200,"message":"success"}`)
		case http.MethodGet:
			listCalls++
			if len(deleted) == 3 {
				io.WriteString(w, `[{"id":4,"name":"survivor"}]`)
				return
			}
			io.WriteString(w, `[{"id":1,"name":"a"},{"id":2,"name":"b"},{"id":3,"name":"c"},{"id":4,"name":"survivor"}]`)
		}
	}))
	defer srv.Close()

	res := NewResource[testItem](New(srv.URL), "/api/v1/brands")
	ctrl := NewListController(res)
	defer ctrl.Close()
	sel := NewSelectionTracker()

	ctrl.Load(context.Background())
	waitFor(t, time.Second, func() bool { return ctrl.State() == StateSuccess })

	rows := ctrl.Rows()
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	sel.SetVisible(ids)
	sel.Toggle(1)
	sel.Toggle(2)
	sel.Toggle(3)
	if sel.Count() != 3 {
		t.Fatalf("selected = %d; want 3", sel.Count())
	}

	if err := res.BulkRemove(context.Background(), sel.Selected()); err != nil {
		t.Fatalf("bulk remove: %v", err)
	}
	sel.Clear()
	ctrl.Reload(context.Background())

	waitFor(t, time.Second, func() bool { return len(ctrl.Rows()) == 1 })

	mu.Lock()
	deleteCount := len(deleted)
	mu.Unlock()
	if deleteCount != 3 {
		t.Errorf("delete calls = %d; want 3", deleteCount)
	}
	for _, path := range []string{"/api/v1/brands/1", "/api/v1/brands/2", "/api/v1/brands/3"} {
		mu.Lock()
		ok := deleted[path]
		mu.Unlock()
		if !ok {
			t.Errorf("missing delete for %s", path)
		}
	}
	if sel.Count() != 0 {
		t.Errorf("selection = %d after bulk delete; want 0", sel.Count())
	}
	if got := ctrl.Rows(); len(got) != 1 || got[0].Name != "survivor" {
		t.Errorf("rows after refresh = %+v", got)
	}

	// The refreshed page drives a new visible set, which clears any
	// selection that might have been re-made meanwhile.
	sel.SetVisible([]uint{4})
	if sel.AllSelected() {
		t.Error("AllSelected should be false with nothing selected")
	}
}

// TestUnauthorizedListWorkflow verifies a 401 during a list fetch surfaces
// distinctly and fires the session hook instead of being folded into a
// generic error.
func TestUnauthorizedListWorkflow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"code":401,"message":"invalid or expired token"}`)
	}))
	defer srv.Close()

	session := &mockSession{token: "expired"}
	res := NewResource[testItem](New(srv.URL, WithSession(session)), "/api/v1/brands")
	ctrl := NewListController(res)
	defer ctrl.Close()

	ctrl.Load(context.Background())
	waitFor(t, time.Second, func() bool { return ctrl.State() == StateError })

	var apiErr *APIError
	if err := ctrl.Err(); err == nil || !errors.As(err, &apiErr) || !apiErr.Unauthorized() {
		t.Errorf("err = %v; want unauthorized APIError", ctrl.Err())
	}
	if session.unauthorized.Load() != 1 {
		t.Errorf("OnUnauthorized calls = %d; want 1", session.unauthorized.Load())
	}
	if !strings.Contains(ctrl.Err().Error(), "invalid or expired token") {
		t.Errorf("error %q should carry the server message", ctrl.Err())
	}
}
