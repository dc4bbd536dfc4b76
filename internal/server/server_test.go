package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/bigbang/pkg/cache"
	"github.com/matzehuels/bigbang/pkg/errors"
	"github.com/matzehuels/bigbang/pkg/layout"
	"github.com/matzehuels/bigbang/pkg/observability"
	"github.com/matzehuels/bigbang/pkg/pipeline"
	"github.com/matzehuels/bigbang/pkg/store"
)

const recordsBody = `{
	"records": [
		{"category": "Sheldon", "label": "bazinga", "weight": 40},
		{"category": "Sheldon", "label": "spot", "weight": 12},
		{"category": "Penny", "label": "sweetie", "weight": 25},
		{"category": "Howard", "label": "engineer", "weight": 18}
	]
}`

func newTestServer(t *testing.T) (*httptest.Server, *store.MemoryStore) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	st := store.NewMemoryStore()
	srv := New(pipeline.NewRunner(fc, nil, nil), st, nil)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts, st
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var h healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil || h.Status != "ok" || h.Version == "" {
		t.Errorf("health = %+v, %v", h, err)
	}
}

func TestLayoutAndFetch(t *testing.T) {
	ts, st := newTestServer(t)

	resp := post(t, ts.URL+"/v1/layout", recordsBody)
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if resp.Header.Get(HeaderCache) != "miss" {
		t.Errorf("first request X-Cache = %q", resp.Header.Get(HeaderCache))
	}
	var l layout.Layout
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		t.Fatal(err)
	}
	if !l.Settled || len(l.Bubbles) != 4 || len(l.Categories) != 3 {
		t.Errorf("layout: settled=%v bubbles=%d categories=%v", l.Settled, len(l.Bubbles), l.Categories)
	}
	if resp.Header.Get(HeaderLayoutID) != l.ID {
		t.Error("X-Layout-Id does not match body")
	}

	again := post(t, ts.URL+"/v1/layout", recordsBody)
	if again.Header.Get(HeaderCache) != "hit" {
		t.Errorf("second request X-Cache = %q", again.Header.Get(HeaderCache))
	}

	if _, err := st.Load(context.Background(), l.ID); err != nil {
		t.Errorf("layout not archived: %v", err)
	}

	fetched := get(t, ts.URL+"/v1/layouts/"+l.ID)
	if fetched.StatusCode != http.StatusOK {
		t.Fatalf("GET layout status = %d", fetched.StatusCode)
	}
	var back layout.Layout
	if err := json.NewDecoder(fetched.Body).Decode(&back); err != nil || back.ID != l.ID {
		t.Errorf("fetched %q, %v", back.ID, err)
	}

	list := get(t, ts.URL+"/v1/layouts?limit=5")
	var sums []store.Summary
	if err := json.NewDecoder(list.Body).Decode(&sums); err != nil || len(sums) != 1 || sums[0].Bubbles != 4 {
		t.Errorf("list = %+v, %v", sums, err)
	}
}

func TestRender(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		query       string
		contentType string
		prefix      string
	}{
		{"", "image/svg+xml", "<svg"},
		{"?format=svg", "image/svg+xml", "<svg"},
		{"?format=DOT", "text/vnd.graphviz", "graph bubbles"},
		{"?format=json", "application/json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/render"+tt.query, recordsBody)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			body, _ := io.ReadAll(resp.Body)
			if !bytes.HasPrefix(bytes.TrimSpace(body), []byte(tt.prefix)) {
				t.Errorf("body starts %q, want %q", body[:min(len(body), 20)], tt.prefix)
			}
		})
	}
}

func TestRenderStored(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := post(t, ts.URL+"/v1/layout", recordsBody)
	id := resp.Header.Get(HeaderLayoutID)

	svg := get(t, ts.URL+"/v1/layouts/"+id+"/render?legend=true")
	if svg.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", svg.StatusCode)
	}
	body, _ := io.ReadAll(svg.Body)
	if !bytes.Contains(body, []byte("bubble-legend")) {
		t.Error("legend missing from stored render")
	}
}

func TestDelete(t *testing.T) {
	ts, _ := newTestServer(t)
	id := post(t, ts.URL+"/v1/layout", recordsBody).Header.Get(HeaderLayoutID)

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/layouts/"+id, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE status = %d", resp.StatusCode)
	}
	if got := get(t, ts.URL+"/v1/layouts/"+id); got.StatusCode != http.StatusNotFound {
		t.Errorf("GET after DELETE status = %d", got.StatusCode)
	}
}

func TestErrors(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name   string
		do     func() *http.Response
		status int
		code   errors.Code
	}{
		{"malformed body", func() *http.Response { return post(t, ts.URL+"/v1/layout", "{") }, 400, errors.ErrCodeInvalidFormat},
		{"unknown field", func() *http.Response { return post(t, ts.URL+"/v1/layout", `{"records": [], "colour": 1}`) }, 400, errors.ErrCodeInvalidFormat},
		{"no records", func() *http.Response { return post(t, ts.URL+"/v1/layout", `{"season": 1}`) }, 400, errors.ErrCodeInvalidInput},
		{"negative weight", func() *http.Response {
			return post(t, ts.URL+"/v1/layout", `{"records": [{"category": "Raj", "weight": -1}]}`)
		}, 400, errors.ErrCodeInvalidItem},
		{"bad width", func() *http.Response { return post(t, ts.URL+"/v1/layout", `{"records": [], "width": -10}`) }, 400, errors.ErrCodeInvalidConfig},
		{"bad format", func() *http.Response { return post(t, ts.URL+"/v1/render?format=gif", recordsBody) }, 400, errors.ErrCodeInvalidFormat},
		{"missing layout", func() *http.Response { return get(t, ts.URL+"/v1/layouts/nope") }, 404, errors.ErrCodeLayoutNotFound},
		{"bad limit", func() *http.Response { return get(t, ts.URL+"/v1/layouts?limit=x") }, 400, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := tt.do()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if e := decodeError(t, resp); e.Error != tt.code {
				t.Errorf("error code = %s, want %s (%s)", e.Error, tt.code, e.Message)
			}
		})
	}
}

func TestEmptyRecords(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := post(t, ts.URL+"/v1/layout", `{"records": []}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var l layout.Layout
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		t.Fatal(err)
	}
	if !l.Settled || len(l.Bubbles) != 0 {
		t.Errorf("empty input: settled=%v bubbles=%d", l.Settled, len(l.Bubbles))
	}
}

func TestServerHooks(t *testing.T) {
	hooks := &routeHooks{}
	observability.SetServerHooks(hooks)
	defer observability.Reset()

	ts, _ := newTestServer(t)
	get(t, ts.URL+"/v1/layouts/abc")

	route, status := hooks.last()
	if strings.TrimSuffix(route, "/") != "/v1/layouts/{id}" || status != http.StatusNotFound {
		t.Errorf("hooks saw route %q status %d", route, status)
	}
}

type routeHooks struct {
	observability.NoopServerHooks
	mu     sync.Mutex
	route  string
	status int
}

func (h *routeHooks) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.route, h.status = route, status
}

func (h *routeHooks) last() (string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.route, h.status
}
