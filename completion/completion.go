package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/a-h/searchserver/models"
	"github.com/a-h/searchserver/results"
)

// Completer summarizes retrieved context for a query.
type Completer interface {
	Complete(ctx context.Context, query, docs string) (string, error)
}

const DefaultSystemPrompt = `Find relevant contract language and summarize key points briefly. Focus on exact matches and similarities.`

// DefaultUserPrompt is formatted with the query, then the context.
const DefaultUserPrompt = `Query: %s
Context: %s`

const (
	maxTokens   = 200
	temperature = 0.7
	topP        = 0.95
)

var ErrNoChoices = errors.New("completion: no choices returned")

type Prompts struct {
	System string
	User   string
}

func DefaultPrompts() Prompts {
	return Prompts{
		System: DefaultSystemPrompt,
		User:   DefaultUserPrompt,
	}
}

func (p Prompts) user(query, docs string) string {
	return fmt.Sprintf(p.User, query, docs)
}

var ErrInvalidUserPrompt = errors.New("completion: user prompt must contain two %s verbs, for the query and the context")

// Validate checks that the user prompt formats the query and context without
// missing or extra arguments.
func (p Prompts) Validate() error {
	const query, docs = "\x00query\x00", "\x00docs\x00"
	s := p.user(query, docs)
	if strings.Contains(s, "%!") {
		return ErrInvalidUserPrompt
	}
	if !strings.Contains(s, query) || !strings.Contains(s, docs) {
		return ErrInvalidUserPrompt
	}
	return nil
}

// BuildContext formats results as plain text for a completion prompt,
// keeping at most maxChars characters.
func BuildContext(rs []models.SearchResult, maxChars int) string {
	var sb strings.Builder
	for _, r := range rs {
		sb.WriteString("Source: ")
		sb.WriteString(r.Filename)
		sb.WriteString("\n")
		sb.WriteString(strings.TrimSpace(results.PlainText(r.Content)))
		sb.WriteString("\n\n")
	}
	s := strings.TrimSpace(sb.String())
	if maxChars > 0 {
		if r := []rune(s); len(r) > maxChars {
			s = string(r[:maxChars])
		}
	}
	return s
}
