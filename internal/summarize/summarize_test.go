package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeLLM struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestSummarizeUsesLLMReply(t *testing.T) {
	fake := &fakeLLM{reply: "A concise model-written summary."}
	s := New(fake)

	summary, usedFallback := s.Summarize(context.Background(), "Some document text. With several sentences in it.")
	if usedFallback {
		t.Fatal("expected LLM summary, got fallback")
	}
	if summary != "A concise model-written summary." {
		t.Fatalf("unexpected summary %q", summary)
	}
}

func TestSummarizeTruncatesLLMInput(t *testing.T) {
	fake := &fakeLLM{reply: "ok"}
	s := New(fake)

	text := strings.Repeat("a", 6000)
	s.Summarize(context.Background(), text)

	body := strings.TrimPrefix(fake.lastPrompt, instruction)
	if len(body) != 5000 {
		t.Fatalf("expected LLM to receive exactly 5000 chars of text, got %d", len(body))
	}
}

func TestSummarizeFallsBackOnError(t *testing.T) {
	fake := &fakeLLM{err: errors.New("quota exceeded")}
	s := New(fake)

	text := "The first sentence is here. Tiny. The second real sentence follows. And a third one for good measure. A fourth that must not appear."
	summary, usedFallback := s.Summarize(context.Background(), text)
	if !usedFallback {
		t.Fatal("expected fallback summary")
	}
	if strings.Contains(summary, "fourth") {
		t.Fatalf("fallback must keep at most three fragments, got %q", summary)
	}
	if strings.Contains(summary, "Tiny") {
		t.Fatalf("fallback must drop fragments shorter than 10 chars, got %q", summary)
	}
}

func TestSummarizeFallsBackWithoutClient(t *testing.T) {
	s := New(nil)
	summary, usedFallback := s.Summarize(context.Background(), "A sentence long enough to qualify here.")
	if !usedFallback {
		t.Fatal("expected fallback when no LLM is configured")
	}
	if summary == "" {
		t.Fatal("expected non-empty fallback summary")
	}
}

func TestExtractiveShape(t *testing.T) {
	long := strings.Repeat("This sentence is well over ten characters long. ", 20)
	got := Extractive(long, 3, 200)

	if len([]rune(got)) > 203 {
		t.Fatalf("fallback must be at most 200 chars plus ellipsis, got %d", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis marker on truncated summary, got %q", got)
	}
}

func TestExtractiveShortTextNotTruncated(t *testing.T) {
	got := Extractive("Just one qualifying sentence here.", 3, 200)
	if got != "Just one qualifying sentence here." {
		t.Fatalf("unexpected fallback %q", got)
	}
	if strings.HasSuffix(got, "...") {
		t.Fatal("short summaries must not carry the ellipsis marker")
	}
}

func TestExtractiveNoQualifyingFragments(t *testing.T) {
	if got := Extractive("a. b. c.", 3, 200); got != "" {
		t.Fatalf("expected empty fallback, got %q", got)
	}
}
