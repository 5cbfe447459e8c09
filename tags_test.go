package hledger

import (
	"reflect"
	"testing"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		comment string
		want    []Tag
	}{
		{"", nil},
		{"\n", nil},
		{"\ncategory: food\nshared: yes\n", []Tag{{"category", "food"}, {"shared", "yes"}}},
		{"; category: food, shared: yes", []Tag{{"category", "food"}, {"shared", "yes"}}},
		{"category:food", []Tag{{"category", "food"}}},
		{"lunch with Bob", []Tag{{"", "lunch with Bob"}}},
		{"note\ncategory: food", []Tag{{"", "note"}, {"category", "food"}}},
		{"url: https://example.org/x", []Tag{{"url", "https://example.org/x"}}},
		{"category: food\ncategory: drink", []Tag{{"category", "food"}, {"category", "drink"}}},
		{"empty:", []Tag{{"empty", ""}}},
	}
	for _, tt := range tests {
		if got := ParseTags(tt.comment); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tt.comment, got, tt.want)
		}
	}
}

func TestFormatTags(t *testing.T) {
	tests := []struct {
		tags []Tag
		want string
	}{
		{nil, ""},
		{[]Tag{{"category", "food"}}, "category: food"},
		{[]Tag{{"category", "food"}, {"shared", "yes"}}, "category: food, shared: yes"},
		{[]Tag{{"", "lunch with Bob"}, {"category", "food"}}, "lunch with Bob, category: food"},
		{[]Tag{{"empty", ""}}, "empty:"},
	}
	for _, tt := range tests {
		if got := FormatTags(tt.tags); got != tt.want {
			t.Errorf("FormatTags(%v) = %q, want %q", tt.tags, got, tt.want)
		}
	}
}

// Formatting then re-parsing must reproduce the tag sequence, so an edit
// that only touches other fields cannot mangle a transaction's tags.
func TestTagsRoundTrip(t *testing.T) {
	tests := [][]Tag{
		{{"category", "food"}},
		{{"category", "food"}, {"shared", "yes"}},
		{{"category", "food"}, {"category", "drink"}},
		{{"", "free text"}, {"key", "value"}},
	}
	for _, tags := range tests {
		if got := ParseTags(FormatTags(tags)); !reflect.DeepEqual(got, tags) {
			t.Errorf("round trip of %v = %v", tags, got)
		}
	}
}
