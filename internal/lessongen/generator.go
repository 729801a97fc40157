package lessongen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/vocabiz/internal/llm"
	"github.com/abhisek/vocabiz/internal/vocab"
)

// ErrNoPairs is returned when the model produced nothing usable.
var ErrNoPairs = errors.New("generated lesson has no usable pairs")

const (
	DefaultCount = 10
	MaxCount     = 50
)

// Request describes the lesson to generate.
type Request struct {
	Topic      string
	Count      int
	SourceLang string
	TargetLang string
}

// Generator turns a topic into a vocabulary lesson using an LLM.
type Generator struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
}

// New creates a Generator backed by provider.
func New(provider llm.Provider) *Generator {
	return &Generator{provider: provider, maxTokens: 2048, temperature: 0.7}
}

type lessonOutput struct {
	Title string `json:"title"`
	Pairs []struct {
		Source string `json:"source"`
		Target string `json:"target"`
	} `json:"pairs"`
}

// Generate asks the model for a lesson. The returned lesson has no Key;
// the caller assigns one when it is saved.
func (g *Generator) Generate(ctx context.Context, req Request) (*vocab.Lesson, error) {
	req = req.withDefaults()
	if req.Topic == "" {
		return nil, errors.New("topic is required")
	}

	ctx = llm.WithPurpose(ctx, "lesson-gen")
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{llm.UserMessage(buildUserMessage(req))},
		Schema:      LessonSchema,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw lessonOutput
	if err := resp.Decode(&raw); err != nil {
		return nil, err
	}

	pairs := make([]vocab.WordPair, 0, len(raw.Pairs))
	for _, p := range raw.Pairs {
		wp := vocab.NewWordPair(p.Source, p.Target)
		if wp.Source == "" || wp.Target == "" || strings.Contains(wp.Source, vocab.Separator) || strings.Contains(wp.Target, vocab.Separator) {
			continue
		}
		pairs = append(pairs, wp)
	}
	pairs = lo.UniqBy(pairs, func(p vocab.WordPair) string { return p.Source })
	if len(pairs) > req.Count {
		pairs = pairs[:req.Count]
	}
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}

	title := vocab.NormalizeTarget(raw.Title)
	if title == "" {
		title = req.Topic
	}
	return &vocab.Lesson{Title: title, Pairs: pairs}, nil
}

func (r Request) withDefaults() Request {
	r.Topic = strings.TrimSpace(r.Topic)
	if r.Count <= 0 {
		r.Count = DefaultCount
	}
	if r.Count > MaxCount {
		r.Count = MaxCount
	}
	if r.SourceLang == "" {
		r.SourceLang = "English"
	}
	if r.TargetLang == "" {
		r.TargetLang = "Spanish"
	}
	return r
}
