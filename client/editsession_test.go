package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
)

type testPlan struct {
	ID           uint     `json:"id,omitempty"`
	Name         string   `json:"name"`
	MonthlyPrice float64  `json:"monthly_price"`
	Features     []string `json:"features"`
}

func planSchema() Schema[testPlan] {
	return Schema[testPlan]{
		Defaults: func() testPlan {
			return testPlan{Features: []string{}}
		},
		ID: func(p *testPlan) uint { return p.ID },
		Fields: []Field[testPlan]{
			{
				Name:     "name",
				Required: true,
				Get:      func(p *testPlan) any { return p.Name },
				Set:      func(p *testPlan, v any) { p.Name, _ = v.(string) },
			},
			{
				Name:        "monthly_price",
				NonNegative: true,
				Get:         func(p *testPlan) any { return p.MonthlyPrice },
				Set:         func(p *testPlan, v any) { p.MonthlyPrice, _ = v.(float64) },
			},
			{
				Name:     "features",
				MinItems: 1,
				Get:      func(p *testPlan) any { return p.Features },
				Set:      func(p *testPlan, v any) { p.Features, _ = v.([]string) },
			},
		},
	}
}

func planSession(srvURL string) *EditSession[testPlan] {
	res := NewResource[testPlan](New(srvURL), "/api/v1/plans")
	return NewEditSession(res, planSchema())
}

func TestOpenDecidesMode(t *testing.T) {
	s := planSession("http://unused")

	t.Run("nil opens create with defaults", func(t *testing.T) {
		s.Open(nil)
		if s.Mode() != ModeCreate {
			t.Errorf("mode = %v; want create", s.Mode())
		}
		if s.Draft().Name != "" {
			t.Errorf("draft = %+v; want defaults", s.Draft())
		}
	})

	t.Run("entity with id opens edit", func(t *testing.T) {
		s.Open(&testPlan{ID: 9, Name: "Pro", MonthlyPrice: 20, Features: []string{"chat"}})
		if s.Mode() != ModeEdit {
			t.Errorf("mode = %v; want edit", s.Mode())
		}
		if s.Draft().Name != "Pro" {
			t.Errorf("draft not pre-populated: %+v", s.Draft())
		}
	})

	t.Run("entity without id opens create", func(t *testing.T) {
		s.Open(&testPlan{Name: "Draft plan", Features: []string{"x"}})
		if s.Mode() != ModeCreate {
			t.Errorf("mode = %v; want create", s.Mode())
		}
	})
}

func TestValidateRules(t *testing.T) {
	s := planSession("http://unused")

	tests := []struct {
		name       string
		draft      testPlan
		wantFields []string
	}{
		{"valid", testPlan{Name: "Basic", MonthlyPrice: 5, Features: []string{"chat"}}, nil},
		{"missing name", testPlan{MonthlyPrice: 5, Features: []string{"chat"}}, []string{"name"}},
		{"whitespace name", testPlan{Name: "   ", MonthlyPrice: 5, Features: []string{"chat"}}, []string{"name"}},
		{"negative price", testPlan{Name: "B", MonthlyPrice: -1, Features: []string{"chat"}}, []string{"monthly_price"}},
		{"zero price ok", testPlan{Name: "Free", MonthlyPrice: 0, Features: []string{"chat"}}, nil},
		{"no features", testPlan{Name: "B", MonthlyPrice: 5, Features: []string{}}, []string{"features"}},
		{"everything wrong", testPlan{MonthlyPrice: -3}, []string{"name", "monthly_price", "features"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.Open(&tt.draft)
			ok := s.Validate()
			if wantOK := len(tt.wantFields) == 0; ok != wantOK {
				t.Errorf("Validate() = %v; want %v (errors %v)", ok, wantOK, s.Errors())
			}
			for _, f := range tt.wantFields {
				if s.FieldError(f) == "" {
					t.Errorf("expected an error on %q, got none", f)
				}
			}
			if len(s.Errors()) != len(tt.wantFields) {
				t.Errorf("errors = %v; want exactly %v", s.Errors(), tt.wantFields)
			}
		})
	}
}

func TestSetFieldClearsErrorEagerly(t *testing.T) {
	s := planSession("http://unused")
	s.Open(nil)

	if s.Validate() {
		t.Fatal("empty draft should fail validation")
	}
	if s.FieldError("name") == "" {
		t.Fatal("expected name error")
	}

	s.SetField("name", "Basic")
	if s.FieldError("name") != "" {
		t.Error("name error should clear as soon as the field is edited")
	}
	// Other errors stay until their fields change or validation reruns.
	if s.FieldError("features") == "" {
		t.Error("features error should remain")
	}
}

func TestValidationBlocksSave(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		io.WriteString(w, `{"id":1,"name":"x"}`)
	}))
	defer srv.Close()

	s := planSession(srv.URL)
	s.Open(nil)
	s.SetField("name", "")

	_, err := s.Save(context.Background())
	if !errors.Is(err, ErrInvalidDraft) {
		t.Fatalf("err = %v; want ErrInvalidDraft", err)
	}
	if requests.Load() != 0 {
		t.Errorf("network calls = %d; want 0 for an invalid draft", requests.Load())
	}
	if s.FieldError("name") == "" {
		t.Error("expected populated name error")
	}
	if !s.IsOpen() {
		t.Error("session should stay open after blocked save")
	}
}

func TestSaveDispatchAndPayload(t *testing.T) {
	entity := testPlan{ID: 7, Name: "Pro", MonthlyPrice: 29, Features: []string{"chat", "export"}}

	var gotMethod, gotPath string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"code":200,"message":"success","data":{"id":7,"name":"Pro","monthly_price":29,"features":["chat","export"]}}`)
	}))
	defer srv.Close()

	s := planSession(srv.URL)

	// Open-then-save with no edits: the PUT payload must reproduce the
	// loaded entity with no field mutation.
	s.Open(&entity)
	saved, err := s.Save(context.Background())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if gotMethod != http.MethodPut || gotPath != "/api/v1/plans/7" {
		t.Errorf("request = %s %s; want PUT /api/v1/plans/7", gotMethod, gotPath)
	}

	var sent testPlan
	if err := json.Unmarshal(gotBody, &sent); err != nil {
		t.Fatalf("decode sent payload: %v", err)
	}
	if !reflect.DeepEqual(sent, entity) {
		t.Errorf("payload = %+v; want unmodified %+v", sent, entity)
	}

	if saved.ID != 7 {
		t.Errorf("saved = %+v", saved)
	}
	if s.IsOpen() {
		t.Error("session should close after successful save")
	}

	// Create mode dispatches to POST on the collection.
	s.Open(nil)
	s.SetField("name", "Starter")
	s.SetField("features", []string{"chat"})
	if _, err := s.Save(context.Background()); err != nil {
		t.Fatalf("create save: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/v1/plans" {
		t.Errorf("request = %s %s; want POST /api/v1/plans", gotMethod, gotPath)
	}
}

func TestSaveFailureKeepsDraft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"message":"plan already exists"}`)
	}))
	defer srv.Close()

	s := planSession(srv.URL)
	s.Open(nil)
	s.SetField("name", "Duplicate")
	s.SetField("features", []string{"chat"})

	_, err := s.Save(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "plan already exists" {
		t.Errorf("err = %v; want APIError with server message", err)
	}
	if !s.IsOpen() {
		t.Error("session should stay open after failed save")
	}
	if s.Draft().Name != "Duplicate" {
		t.Errorf("draft = %+v; user input must survive a failed save", s.Draft())
	}
}
