package spoonacular

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/recipex/internal/domain"
	"github.com/hammamikhairi/recipex/internal/logger"
)

// recorder captures every request the fake API receives.
type recorder struct {
	mu    sync.Mutex
	paths []string
	query []url.Values
}

func (r *recorder) add(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, req.URL.Path)
	r.query = append(r.query, req.URL.Query())
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

func newTestServer(t *testing.T, rec *recorder) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(pathAutocomplete, func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		w.Write([]byte(`[{"id":11529,"name":"tomato","image":"tomato.png"},{"id":10011529,"name":"tomato paste","image":"tomato-paste.jpg"}]`))
	})
	mux.HandleFunc(pathFindByIngredients, func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		w.Write([]byte(`[{"id":101,"title":"Caprese","usedIngredientCount":2},{"id":202,"title":"Bruschetta"}]`))
	})
	mux.HandleFunc(pathInformationBulk, func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		w.Write([]byte(`[
			{"id":101,"title":"Caprese","readyInMinutes":10,"servings":2,"dishTypes":["salad"],"cuisines":["Italian"],
			 "summary":"<b>Fresh</b> salad","extendedIngredients":[{"id":1,"name":"tomato","amount":2,"unit":""}],
			 "analyzedInstructions":[{"name":"","steps":[{"number":1,"step":"Slice."}]}]},
			{"id":202,"title":"Bruschetta","readyInMinutes":20,"servings":4}
		]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, base string) *Client {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	c, err := NewClient("test-key", log, WithBaseURL(base+"/"), WithHTTPTimeout(2*time.Second))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestNewClientRequiresKey(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	_, err := NewClient("  ", log)
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestAutocomplete(t *testing.T) {
	rec := &recorder{}
	srv := newTestServer(t, rec)
	c := newTestClient(t, srv.URL)

	got, err := c.Autocomplete(context.Background(), "tom", SuggestionLimit)
	if err != nil {
		t.Fatalf("autocomplete: %v", err)
	}
	if len(got) != 2 || got[0].Name != "tomato" || got[0].ID != 11529 {
		t.Fatalf("unexpected suggestions %+v", got)
	}

	q := rec.query[0]
	if q.Get("query") != "tom" || q.Get("number") != "5" || q.Get("apiKey") != "test-key" {
		t.Fatalf("unexpected query %v", q)
	}
}

func TestFindThenBulk(t *testing.T) {
	rec := &recorder{}
	srv := newTestServer(t, rec)
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	matches, err := c.FindByIngredients(ctx, []string{"tomato", "basil"}, MatchLimit)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(matches) != 2 || matches[1].ID != 202 {
		t.Fatalf("unexpected matches %+v", matches)
	}
	if q := rec.query[0]; q.Get("ingredients") != "tomato,basil" || q.Get("number") != "12" {
		t.Fatalf("unexpected find query %v", q)
	}

	recipes, err := c.InformationBulk(ctx, []int{101, 202})
	if err != nil {
		t.Fatalf("bulk: %v", err)
	}
	if q := rec.query[1]; q.Get("ids") != "101,202" || q.Get("apiKey") != "test-key" {
		t.Fatalf("unexpected bulk query %v", q)
	}
	if len(recipes) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(recipes))
	}
	r := recipes[0]
	if r.ReadyInMinutes != 10 || r.Servings != 2 || r.Cuisines[0] != "Italian" {
		t.Fatalf("fields not decoded: %+v", r)
	}
	if len(r.Steps()) != 1 || r.Steps()[0].Step != "Slice." {
		t.Fatalf("instructions not decoded: %+v", r.AnalyzedInstructions)
	}
}

func TestNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"status":"failure","message":"daily points limit reached"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Autocomplete(context.Background(), "tom", 5)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusPaymentRequired || apiErr.Endpoint != pathAutocomplete {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
}

func TestMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.InformationBulk(context.Background(), []int{1}); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestContextCancelled(t *testing.T) {
	rec := &recorder{}
	srv := newTestServer(t, rec)
	c := newTestClient(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Autocomplete(ctx, "tom", 5); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestJoinIDs(t *testing.T) {
	tests := []struct {
		ids  []int
		want string
	}{
		{nil, ""},
		{[]int{7}, "7"},
		{[]int{1, 22, 333}, "1,22,333"},
	}
	for _, tt := range tests {
		if got := JoinIDs(tt.ids); got != tt.want {
			t.Errorf("JoinIDs(%v) = %q, want %q", tt.ids, got, tt.want)
		}
	}
}

func TestCachedServesRepeats(t *testing.T) {
	rec := &recorder{}
	srv := newTestServer(t, rec)
	log := logger.New(logger.LevelOff, nil)
	c := NewCached(newTestClient(t, srv.URL), time.Minute, log)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.Autocomplete(ctx, "tom", 5); err != nil {
			t.Fatalf("autocomplete: %v", err)
		}
		if _, err := c.FindByIngredients(ctx, []string{"tomato"}, 12); err != nil {
			t.Fatalf("find: %v", err)
		}
		if _, err := c.InformationBulk(ctx, []int{101, 202}); err != nil {
			t.Fatalf("bulk: %v", err)
		}
	}
	if n := rec.count(); n != 3 {
		t.Fatalf("expected 3 upstream calls, got %d", n)
	}

	// A different query is a miss.
	if _, err := c.Autocomplete(ctx, "toma", 5); err != nil {
		t.Fatalf("autocomplete: %v", err)
	}
	if n := rec.count(); n != 4 {
		t.Fatalf("expected 4 upstream calls, got %d", n)
	}

	c.Flush()
	if c.Len() != 0 {
		t.Fatalf("expected empty cache after flush, got %d", c.Len())
	}
}

func TestCachedDoesNotStoreErrors(t *testing.T) {
	var calls int
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	log := logger.New(logger.LevelOff, nil)
	c := NewCached(newTestClient(t, srv.URL), time.Minute, log)

	for i := 0; i < 2; i++ {
		if _, err := c.Autocomplete(context.Background(), "tom", 5); err == nil {
			t.Fatal("expected error")
		}
	}
	mu.Lock()
	defer mu.Unlock()
	if calls != 2 {
		t.Fatalf("errors were cached: %d upstream calls", calls)
	}
}
