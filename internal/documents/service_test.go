package documents

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"libramind-backend/internal/summarize"
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

type fakeStore struct {
	puts map[string][]byte
	err  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{puts: make(map[string][]byte)}
}

func (f *fakeStore) Put(ctx context.Context, key, contentType string, r io.Reader) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	data, _ := io.ReadAll(r)
	f.puts[key] = data
	return int64(len(data)), nil
}

func (f *fakeStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.puts[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

type failingRepo struct {
	Repo
}

func (failingRepo) Create(ctx context.Context, doc Document) error {
	return errors.New("insert failed")
}

func newService(repo Repo, store *fakeStore, client *fakeLLM) *Service {
	svc := &Service{
		Repo:       repo,
		Summarizer: summarize.New(client),
	}
	if store != nil {
		svc.Store = store
	}
	return svc
}

func TestIngestUnparsableStillCompletes(t *testing.T) {
	repo := NewMemoryRepo()
	svc := newService(repo, nil, &fakeLLM{reply: "summary"})

	result, err := svc.Ingest(context.Background(), "user-1", "junk.pdf", []byte("not a pdf"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if result.Pages != 1 {
		t.Errorf("degraded extraction must report page count 1, got %d", result.Pages)
	}
	if !strings.Contains(result.Content, "junk.pdf") {
		t.Errorf("placeholder content must name the file, got %q", result.Content)
	}

	docs, err := repo.ListByUser(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected one persisted record, got %d", len(docs))
	}
}

func TestIngestStoresUnderOwnerKey(t *testing.T) {
	repo := NewMemoryRepo()
	store := newFakeStore()
	svc := newService(repo, store, &fakeLLM{reply: "summary"})

	result, err := svc.Ingest(context.Background(), "user-1", "book.pdf", []byte("payload"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if result.StoragePath == nil {
		t.Fatal("expected storage path when a store is configured")
	}
	want := "user-1/" + result.ID + ".pdf"
	if *result.StoragePath != want {
		t.Fatalf("expected key %q, got %q", want, *result.StoragePath)
	}
	if _, ok := store.puts[want]; !ok {
		t.Fatal("raw bytes were not written under the owner key")
	}
}

func TestIngestWithoutStoreSkipsStorage(t *testing.T) {
	repo := NewMemoryRepo()
	svc := newService(repo, nil, &fakeLLM{reply: "summary"})

	result, err := svc.Ingest(context.Background(), "user-1", "book.pdf", []byte("payload"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if result.StoragePath != nil {
		t.Fatalf("expected nil storage path without a store, got %q", *result.StoragePath)
	}
}

func TestIngestStoreFailureIsNonFatal(t *testing.T) {
	repo := NewMemoryRepo()
	store := newFakeStore()
	store.err = errors.New("bucket unavailable")
	svc := newService(repo, store, &fakeLLM{reply: "summary"})

	result, err := svc.Ingest(context.Background(), "user-1", "book.pdf", []byte("payload"))
	if err != nil {
		t.Fatalf("Ingest must survive store failure: %v", err)
	}
	if result.StoragePath != nil {
		t.Fatal("expected nil storage path after store failure")
	}

	docs, _ := repo.ListByUser(context.Background(), "user-1", 10, 0)
	if len(docs) != 1 {
		t.Fatalf("record must still be written, got %d", len(docs))
	}
}

func TestIngestInsertFailureIsFatal(t *testing.T) {
	svc := newService(failingRepo{}, nil, &fakeLLM{reply: "summary"})

	if _, err := svc.Ingest(context.Background(), "user-1", "book.pdf", []byte("payload")); err == nil {
		t.Fatal("expected fatal error when the record insert fails")
	}
}

func TestIngestLLMFailureFallsBack(t *testing.T) {
	repo := NewMemoryRepo()
	svc := newService(repo, nil, &fakeLLM{err: errors.New("quota")})

	result, err := svc.Ingest(context.Background(), "user-1", "book.pdf", []byte("not a pdf"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if result.Summary == "" {
		t.Fatal("expected a fallback summary")
	}
	if len([]rune(result.Summary)) > 203 {
		t.Fatalf("fallback summary too long: %d chars", len([]rune(result.Summary)))
	}

	docs, _ := repo.ListByUser(context.Background(), "user-1", 10, 0)
	if len(docs) != 1 || docs[0].Summary != result.Summary {
		t.Fatal("fallback summary must be written back onto the record")
	}
}

func TestIngestTwiceProducesDistinctRecords(t *testing.T) {
	repo := NewMemoryRepo()
	svc := newService(repo, nil, &fakeLLM{reply: "summary"})

	payload := []byte("identical bytes")
	first, err := svc.Ingest(context.Background(), "user-1", "same.pdf", payload)
	if err != nil {
		t.Fatalf("first Ingest: %v", err)
	}
	second, err := svc.Ingest(context.Background(), "user-1", "same.pdf", payload)
	if err != nil {
		t.Fatalf("second Ingest: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("identical uploads must produce distinct document records")
	}
}

func TestIngestRejectsInvalidFileName(t *testing.T) {
	svc := newService(NewMemoryRepo(), nil, &fakeLLM{reply: "summary"})

	_, err := svc.Ingest(context.Background(), "user-1", "../../evil.pdf", []byte("x"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
