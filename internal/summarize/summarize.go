package summarize

import (
	"context"
	"strings"

	"libramind-backend/internal/llm"
	"libramind-backend/internal/shared/util"
)

const (
	// Truncation points are tunable via config; the defaults are
	// conventional, not tuned.
	DefaultInputMaxChars     = 5000
	DefaultFallbackMaxChars  = 200
	DefaultFallbackSentences = 3

	minFragmentChars = 10

	instruction = "Summarize the following document in 200-300 words. " +
		"Focus on the main ideas and keep the tone neutral.\n\n"
)

// Summarizer produces a document summary, preferring the LLM and degrading
// to an extractive summary on any provider failure.
type Summarizer struct {
	LLM               llm.Client
	InputMaxChars     int
	FallbackMaxChars  int
	FallbackSentences int
}

// New returns a Summarizer with the default truncation points filled in.
func New(client llm.Client) *Summarizer {
	return &Summarizer{
		LLM:               client,
		InputMaxChars:     DefaultInputMaxChars,
		FallbackMaxChars:  DefaultFallbackMaxChars,
		FallbackSentences: DefaultFallbackSentences,
	}
}

// Summarize returns the summary text and whether the extractive fallback was
// used. There are exactly two outcomes: an LLM summary or a fallback summary.
func (s *Summarizer) Summarize(ctx context.Context, text string) (summary string, usedFallback bool) {
	inputMax := s.InputMaxChars
	if inputMax <= 0 {
		inputMax = DefaultInputMaxChars
	}
	truncated := util.TruncateRunes(text, inputMax)

	if s.LLM != nil {
		out, err := s.LLM.Complete(ctx, instruction+truncated)
		if err == nil && strings.TrimSpace(out) != "" {
			return strings.TrimSpace(out), false
		}
	}

	return s.fallback(text), true
}

// fallback builds the extractive summary: the first qualifying sentence
// fragments, joined with periods and hard-truncated.
func (s *Summarizer) fallback(text string) string {
	maxSentences := s.FallbackSentences
	if maxSentences <= 0 {
		maxSentences = DefaultFallbackSentences
	}
	maxChars := s.FallbackMaxChars
	if maxChars <= 0 {
		maxChars = DefaultFallbackMaxChars
	}
	return Extractive(text, maxSentences, maxChars)
}

// Extractive splits text on periods, discards fragments shorter than 10
// characters, keeps the first maxSentences, joins them with periods, and
// hard-truncates the result to maxChars with an ellipsis marker.
func Extractive(text string, maxSentences, maxChars int) string {
	var kept []string
	for _, frag := range strings.Split(text, ".") {
		frag = strings.TrimSpace(frag)
		if len([]rune(frag)) < minFragmentChars {
			continue
		}
		kept = append(kept, frag)
		if len(kept) == maxSentences {
			break
		}
	}
	if len(kept) == 0 {
		return ""
	}

	joined := strings.Join(kept, ". ") + "."
	if len([]rune(joined)) > maxChars {
		return util.TruncateRunes(joined, maxChars) + "..."
	}
	return joined
}
