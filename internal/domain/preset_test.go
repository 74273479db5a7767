package domain

import (
	"testing"
)

func TestItem_SameAs(t *testing.T) {
	breathe := Item{ID: "idle/breathe", Name: "Breathe", Category: "Idle", Source: SourceBuiltin}

	tests := []struct {
		name  string
		other Item
		want  bool
	}{
		{"identical", breathe, true},
		{"renamed keeps identity", Item{ID: "idle/breathe", Name: "Deep Breath", Category: "Idle", Source: SourceBuiltin}, true},
		{"moved keeps identity", Item{ID: "idle/breathe", Name: "Breathe", Category: "Rest", Source: SourceBuiltin}, true},
		{"other source", Item{ID: "idle/breathe", Name: "Breathe", Category: "Idle", Source: SourceUser}, false},
		{"other id", Item{ID: "idle/yawn", Name: "Breathe", Category: "Idle", Source: SourceBuiltin}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := breathe.SameAs(tt.other); got != tt.want {
				t.Errorf("SameAs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestItem_IsZero(t *testing.T) {
	if !(Item{}).IsZero() {
		t.Error("zero value should be zero")
	}
	if (Item{ID: "x"}).IsZero() {
		t.Error("item with an ID should not be zero")
	}
	if got := (Item{}).String(); got != "<none>" {
		t.Errorf("String() = %q, want <none>", got)
	}
}

func TestIndexOfItem(t *testing.T) {
	items := []Item{
		{ID: "a", Source: SourceUser},
		{ID: "b", Source: SourceUser},
	}

	if got := IndexOfItem(items, Item{ID: "b", Source: SourceUser}); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := IndexOfItem(items, Item{ID: "b", Source: SourceBuiltin}); got != -1 {
		t.Errorf("expected -1 for other source, got %d", got)
	}
	if got := IndexOfItem(nil, Item{ID: "a"}); got != -1 {
		t.Errorf("expected -1 for empty list, got %d", got)
	}
}

func TestParseSourceTag(t *testing.T) {
	tests := []struct {
		input   string
		want    SourceTag
		wantErr bool
	}{
		{"builtin", SourceBuiltin, false},
		{"Built-In", SourceBuiltin, false},
		{" user ", SourceUser, false},
		{"cloud", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSourceTag(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSourceTag(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseSourceTag(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		category string
		name     string
		want     string
	}{
		{"Idle", "Slow Breathe", "idle/slow-breathe"},
		{"  Wave ", "Hi", "wave/hi"},
		{"Sit", "Cross   Legged", "sit/cross-legged"},
	}

	for _, tt := range tests {
		if got := Slug(tt.category, tt.name); got != tt.want {
			t.Errorf("Slug(%q, %q) = %q, want %q", tt.category, tt.name, got, tt.want)
		}
	}
}

func TestSortItemsByID(t *testing.T) {
	items := []Item{{ID: "c"}, {ID: "a"}, {ID: "b"}}
	SortItemsByID(items)

	for i, want := range []string{"a", "b", "c"} {
		if items[i].ID != want {
			t.Errorf("items[%d] = %s, want %s", i, items[i].ID, want)
		}
	}
}
