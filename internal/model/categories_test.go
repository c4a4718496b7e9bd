package model

import "testing"

func TestCategoryLabel_Known(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{1, "other services or none of the list"},
		{3, "physiotherapy (capped annual amount)"},
		{8, "prevention"},
		{10, "specialist visits (child coverage, non-pediatric)"},
	}
	for _, tt := range tests {
		got, ok := CategoryLabel(tt.id)
		if !ok {
			t.Errorf("CategoryLabel(%d): not found", tt.id)
			continue
		}
		if got != tt.want {
			t.Errorf("CategoryLabel(%d): got %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestCategoryLabel_Unknown(t *testing.T) {
	for _, id := range []int{0, 11, -1, 99} {
		if label, ok := CategoryLabel(id); ok {
			t.Errorf("CategoryLabel(%d): expected not found, got %q", id, label)
		}
	}
}

func TestCategories_Complete(t *testing.T) {
	if len(Categories) != 10 {
		t.Fatalf("expected 10 categories, got %d", len(Categories))
	}
	for i, c := range Categories {
		if c.ID != i+1 {
			t.Errorf("category %d: id %d out of order", i, c.ID)
		}
		if c.Label == "" {
			t.Errorf("category id %d: empty label", c.ID)
		}
	}
}
