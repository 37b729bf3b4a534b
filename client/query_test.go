package client

import (
	"testing"
)

func TestSetPageSizeResetsPage(t *testing.T) {
	q := NewQueryState()
	q.UpdatePageCount(10)
	q.SetPage(5)
	if q.Page() != 5 {
		t.Fatalf("setup: page = %d; want 5", q.Page())
	}

	q.SetPageSize(50)
	if q.Page() != 1 {
		t.Errorf("page = %d after SetPageSize; want 1", q.Page())
	}
	if q.PageSize() != 50 {
		t.Errorf("pageSize = %d; want 50", q.PageSize())
	}
}

func TestEmptyScalarFilterEqualsDeleted(t *testing.T) {
	withEmpty := NewQueryState()
	withEmpty.SetFilter("brand_id", "3")
	withEmpty.SetFilter("brand_id", "")

	deleted := NewQueryState()
	deleted.SetFilter("brand_id", "3")
	deleted.SetFilter("brand_id", "x")
	deleted.SetFilter("brand_id", "")

	never := NewQueryState()

	if got, want := withEmpty.Params().Encode(), never.Params().Encode(); got != want {
		t.Errorf("params after empty-set = %q; want %q", got, want)
	}
	if got, want := deleted.Params().Encode(), never.Params().Encode(); got != want {
		t.Errorf("params after delete = %q; want %q", got, want)
	}
}

func TestRangeFilterSides(t *testing.T) {
	t.Run("only min set", func(t *testing.T) {
		q := NewQueryState()
		q.SetRangeMin("price", "10")
		params := q.Params()
		if params.Get("price_min") != "10" {
			t.Errorf("price_min = %q; want 10", params.Get("price_min"))
		}
		if params.Has("price_max") {
			t.Error("price_max should be absent")
		}
	})

	t.Run("only max set", func(t *testing.T) {
		q := NewQueryState()
		q.SetRangeMax("price", "99")
		params := q.Params()
		if params.Get("price_max") != "99" {
			t.Errorf("price_max = %q; want 99", params.Get("price_max"))
		}
		if params.Has("price_min") {
			t.Error("price_min should be absent")
		}
	})

	t.Run("both cleared removes key", func(t *testing.T) {
		q := NewQueryState()
		q.SetRangeMin("price", "10")
		q.SetRangeMax("price", "99")
		q.SetRangeMin("price", "")
		q.SetRangeMax("price", "")

		params := q.Params()
		if params.Has("price_min") || params.Has("price_max") {
			t.Errorf("range params should be absent, got %q", params.Encode())
		}
		if got, want := params.Encode(), NewQueryState().Params().Encode(); got != want {
			t.Errorf("params = %q; want %q", got, want)
		}
	})
}

func TestSetPageBounds(t *testing.T) {
	q := NewQueryState()
	q.UpdatePageCount(3)

	tests := []struct {
		name string
		page int
		want int
	}{
		{"valid", 2, 2},
		{"zero is no-op", 0, 2},
		{"negative is no-op", -1, 2},
		{"beyond page count is no-op", 4, 2},
		{"last page ok", 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q.SetPage(tt.page)
			if q.Page() != tt.want {
				t.Errorf("page = %d; want %d", q.Page(), tt.want)
			}
		})
	}
}

func TestSearchAndFilterResetPage(t *testing.T) {
	q := NewQueryState()
	q.UpdatePageCount(10)

	q.SetPage(4)
	q.SetSearch("iphone")
	if q.Page() != 1 {
		t.Errorf("page = %d after search change; want 1", q.Page())
	}

	q.SetPage(4)
	q.SetFilter("active", "true")
	if q.Page() != 1 {
		t.Errorf("page = %d after filter change; want 1", q.Page())
	}

	q.SetPage(4)
	q.SetRangeMin("price", "5")
	if q.Page() != 1 {
		t.Errorf("page = %d after range change; want 1", q.Page())
	}

	// Setting the same search again is not a change and must not reset.
	q.SetPage(4)
	q.SetSearch("iphone")
	if q.Page() != 4 {
		t.Errorf("page = %d after no-op search; want 4", q.Page())
	}
}

func TestParamsOmitsEmptySearch(t *testing.T) {
	q := NewQueryState()
	if q.Params().Has("search") {
		t.Error("search should be absent when empty")
	}

	q.SetSearch("  ")
	if q.Params().Has("search") {
		t.Error("whitespace-only search should be absent")
	}
}
