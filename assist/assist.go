// Package assist is an AI bookkeeping helper on top of the journal: it
// suggests the accounts and tags for a transaction described in plain
// language, grounded in the journal's own chart of accounts.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	hledger "github.com/chiendo97/hledger-webapp"
)

const model = "gemini-2.5-pro"

// Suggestion is the bookkeeper's proposal for one journal entry. Amount
// literals come back as plain strings and go through the same validation as
// hand-typed input before anything touches the journal.
type Suggestion struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Postings    []struct {
		Account string `json:"account"`
		Amount  string `json:"amount"`
	} `json:"postings"`
	Tags []hledger.Tag `json:"tags,omitempty"`
}

// Input converts the suggestion into the journal's add/update input shape.
func (s Suggestion) Input() hledger.TransactionInput {
	in := hledger.TransactionInput{
		Date:        s.Date,
		Description: s.Description,
		Tags:        s.Tags,
	}
	for _, p := range s.Postings {
		in.Postings = append(in.Postings, hledger.PostingInput{Account: p.Account, Amount: p.Amount})
	}
	return in
}

// Bookkeeper holds one suggestion chat with the model.
type Bookkeeper struct {
	ModelName string
	Config    *genai.GenerateContentConfig
	chat      *genai.Chat
}

// NewBookkeeper builds a Bookkeeper bound to the journal's accounts. The
// account list is the grounding that keeps suggestions inside the user's
// existing chart instead of inventing new hierarchies.
func NewBookkeeper(accounts []string, today string) *Bookkeeper {
	instruction := fmt.Sprintf(`
	You are a bookkeeper maintaining a plain-text accounting journal.
	The user describes a purchase or transfer in plain language; you answer
	with exactly one JSON object and nothing else, in this shape:

	{"date": "YYYY-MM-DD", "description": "...", "postings":
	 [{"account": "...", "amount": "..."}, {"account": "..."}],
	 "tags": [{"key": "...", "value": "..."}]}

	Rules:
	  - use only accounts from this chart: %s
	  - today is %s; resolve relative dates against it
	  - amounts are literals like "12.50 usd" or "150.000 vnd"
	  - exactly one posting may omit its amount
	  - add a category tag when the expense category is obvious
	`, strings.Join(accounts, ", "), today)

	return &Bookkeeper{
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instruction}}},
		},
	}
}

// Start opens the chat session.
func (b *Bookkeeper) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, b.ModelName, b.Config, nil)
	if err != nil {
		return err
	}
	b.chat = chat
	return nil
}

// Suggest asks for a journal entry matching the description and parses the
// model's JSON answer.
func (b *Bookkeeper) Suggest(ctx context.Context, description string) (Suggestion, error) {
	if b.chat == nil {
		return Suggestion{}, fmt.Errorf("bookkeeper session not started")
	}
	resp, err := b.chat.Send(ctx, &genai.Part{Text: description})
	if err != nil {
		return Suggestion{}, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Suggestion{}, fmt.Errorf("no response from bookkeeper")
	}
	return parseSuggestion(resp.Candidates[0].Content.Parts[0].Text)
}

// parseSuggestion extracts the JSON object from a model answer, tolerating
// a markdown code fence around it.
func parseSuggestion(text string) (Suggestion, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return Suggestion{}, fmt.Errorf("bookkeeper answered without a JSON object: %q", text)
	}
	var s Suggestion
	if err := json.Unmarshal([]byte(text[start:end+1]), &s); err != nil {
		return Suggestion{}, fmt.Errorf("cannot parse bookkeeper answer: %w", err)
	}
	if s.Date == "" || s.Description == "" || len(s.Postings) == 0 {
		return Suggestion{}, fmt.Errorf("bookkeeper answer is missing required fields: %q", text)
	}
	return s, nil
}
