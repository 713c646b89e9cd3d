// Package digest generates an optional LLM-written daily recap of the
// snapshot. It runs after grading and alerting and never feeds back into
// either; a digest failure is a warning, not a run failure.
package digest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/svsports/dugoutpulse/internal/model"
)

const systemPrompt = `You are writing a short internal recap of how a sports agency's tracked
baseball players performed today. You are given one line per player with
their stat line and grade. Summarize the day in under 200 words of plain
Markdown: lead with milestones and standouts, group quiet days into a
sentence, and never invent stats that are not in the input.`

// Summarizer produces the recap via the OpenAI chat API.
type Summarizer struct {
	client *openai.Client
	model  string
}

func NewSummarizer(cfg model.DigestConfig) (*Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("digest enabled but no API key configured")
	}
	return &Summarizer{
		client: openai.NewClient(cfg.APIKey),
		model:  cfg.Model,
	}, nil
}

// Generate renders the snapshot as prompt input and returns the recap
// Markdown.
func (s *Summarizer) Generate(ctx context.Context, snap model.Snapshot) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: renderInput(snap)},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}

func renderInput(snap model.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s\n\n", snap.GeneratedAt.Format("2006-01-02"))
	for _, entry := range snap.Entries {
		fmt.Fprintf(&b, "- %s (%s, %s): %s | %s\n",
			entry.Name, entry.Org, entry.Level, entry.StatsSummary, entry.Grade)
	}
	return b.String()
}

// Write stores the recap next to the other run outputs.
func Write(recap, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create digest dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(recap), 0o644); err != nil {
		return fmt.Errorf("write digest: %w", err)
	}
	return nil
}
