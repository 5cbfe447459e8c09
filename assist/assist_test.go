package assist

import (
	"strings"
	"testing"
)

func TestParseSuggestion(t *testing.T) {
	answer := "```json\n" + `{
		"date": "2025-01-20",
		"description": "tea at the corner shop",
		"postings": [
			{"account": "expenses:food", "amount": "2.50 usd"},
			{"account": "assets:cash"}
		],
		"tags": [{"key": "category", "value": "food"}]
	}` + "\n```"

	s, err := parseSuggestion(answer)
	if err != nil {
		t.Fatalf("parseSuggestion: %v", err)
	}
	if s.Date != "2025-01-20" || s.Description != "tea at the corner shop" {
		t.Errorf("header = %q %q", s.Date, s.Description)
	}
	if len(s.Postings) != 2 || s.Postings[0].Account != "expenses:food" || s.Postings[1].Amount != "" {
		t.Errorf("postings = %+v", s.Postings)
	}

	in := s.Input()
	if len(in.Postings) != 2 || in.Postings[0].Amount != "2.50 usd" {
		t.Errorf("input postings = %+v", in.Postings)
	}
	if len(in.Tags) != 1 || in.Tags[0].Key != "category" {
		t.Errorf("input tags = %+v", in.Tags)
	}
}

func TestParseSuggestionErrors(t *testing.T) {
	tests := []struct {
		name   string
		answer string
	}{
		{"no json", "I cannot help with that."},
		{"broken json", "{"},
		{"missing fields", `{"description": "tea"}`},
	}
	for _, tt := range tests {
		if _, err := parseSuggestion(tt.answer); err == nil {
			t.Errorf("%s: answer accepted", tt.name)
		}
	}
}

func TestNewBookkeeperInstruction(t *testing.T) {
	b := NewBookkeeper([]string{"assets:cash", "expenses:food"}, "2025-01-20")
	text := b.Config.SystemInstruction.Parts[0].Text
	for _, want := range []string{"assets:cash, expenses:food", "2025-01-20"} {
		if !strings.Contains(text, want) {
			t.Errorf("instruction missing %q", want)
		}
	}
}
