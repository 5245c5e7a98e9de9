package books

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient("test-key")
	client.baseURL = srv.URL
	return client, srv
}

func TestSearchMapsVolumes(t *testing.T) {
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{
					"id": "vol-1",
					"volumeInfo": map[string]any{
						"title":         "The Hobbit",
						"authors":       []string{"J.R.R. Tolkien"},
						"pageCount":     310,
						"publishedDate": "1937",
						"imageLinks": map[string]any{
							"thumbnail": "http://example.com/t.jpg",
						},
					},
				},
			},
		})
	})

	results, err := client.Search(context.Background(), "hobbit", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	book := results[0]
	if book.ID != "vol-1" || book.Title != "The Hobbit" || book.PageCount != 310 {
		t.Fatalf("unexpected mapping: %+v", book)
	}
	if len(book.Authors) != 1 || book.Authors[0] != "J.R.R. Tolkien" {
		t.Fatalf("unexpected authors: %v", book.Authors)
	}

	if gotQuery.Get("q") != "hobbit" {
		t.Errorf("query term not forwarded, got %q", gotQuery.Get("q"))
	}
	if gotQuery.Get("maxResults") != "5" {
		t.Errorf("limit not forwarded, got %q", gotQuery.Get("maxResults"))
	}
	if gotQuery.Get("key") != "test-key" {
		t.Errorf("api key not forwarded, got %q", gotQuery.Get("key"))
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	client := NewClient("")
	if _, err := client.Search(context.Background(), "", 5); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestSearchUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	if _, err := client.Search(context.Background(), "hobbit", 5); err == nil {
		t.Fatal("expected an error on non-200 status")
	}
}

func TestSearchNoItems(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalItems": 0}`))
	})

	results, err := client.Search(context.Background(), "nothing", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}
