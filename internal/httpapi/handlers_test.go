package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"horse.fit/pulse/internal/feed"
	"horse.fit/pulse/internal/ingest"
	"horse.fit/pulse/internal/platform"
	"horse.fit/pulse/internal/post"
	"horse.fit/pulse/internal/store"
)

type stubFetcher struct {
	batches []feed.Batch
	err     error
}

func (f *stubFetcher) FetchAll(_ context.Context) ([]feed.Batch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.batches, nil
}

func apiPost(id string, code platform.Code, content string, vitality float64, postedAt time.Time) *post.Post {
	info := platform.Lookup(code)
	return &post.Post{
		ID:            id,
		PlatformCode:  code,
		PlatformInfo:  info,
		Platforms:     []string{info.Name},
		Content:       content,
		Reactions:     post.Reactions{Total: 10},
		Comments:      2,
		Shares:        1,
		Views:         100,
		VitalityScore: vitality,
		Sentiment:     "neutral",
		PostType:      post.TypeText,
		PostedAt:      postedAt,
	}
}

func newTestServer(fetcher ingest.Fetcher) *Server {
	st := store.New()
	svc := ingest.NewService(fetcher, st, zerolog.Nop())
	return NewServer(st, svc, zerolog.Nop(), Options{})
}

func serverWithPosts(posts ...*post.Post) *Server {
	srv := newTestServer(&stubFetcher{})
	srv.store.Replace(store.NewSnapshot(posts, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)))
	return srv
}

func doRequest(t *testing.T, srv *Server, handler echo.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := handler(c); err != nil {
		srv.httpErrorHandler(err, c)
	}
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Status string         `json:"status"`
		Data   map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Status != "success" {
		t.Fatalf("expected success envelope, got %q: %s", envelope.Status, rec.Body.String())
	}
	return envelope.Data
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&stubFetcher{})
	rec := doRequest(t, srv, srv.handleHealth, "/api/v1/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	data := decodeData(t, rec)
	if data["service"] != "pulse" {
		t.Fatalf("unexpected service name: %v", data["service"])
	}
}

func TestHandlePostsBeforeFirstSnapshot(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&stubFetcher{})
	rec := doRequest(t, srv, srv.handlePosts, "/api/v1/posts")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before the first cycle, got %d", rec.Code)
	}
}

func TestHandlePostsDefaultOrderAndTotal(t *testing.T) {
	t.Parallel()

	now := time.Now()
	srv := serverWithPosts(
		apiPost("low", platform.Facebook, "one", 1, now),
		apiPost("high", platform.Instagram, "two", 9, now),
	)
	rec := doRequest(t, srv, srv.handlePosts, "/api/v1/posts")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec)
	if data["total"] != float64(2) {
		t.Fatalf("unexpected total: %v", data["total"])
	}
	posts := data["posts"].([]any)
	first := posts[0].(map[string]any)
	if first["id"] != "high" {
		t.Fatalf("expected vitality-desc default order, got %v", first["id"])
	}
}

func TestHandlePostsPlatformFilter(t *testing.T) {
	t.Parallel()

	now := time.Now()
	srv := serverWithPosts(
		apiPost("f1", platform.Facebook, "one", 1, now),
		apiPost("i1", platform.Instagram, "two", 2, now),
	)
	rec := doRequest(t, srv, srv.handlePosts, "/api/v1/posts?platform=F")
	data := decodeData(t, rec)
	if data["total"] != float64(1) {
		t.Fatalf("expected one Facebook post, got %v", data["total"])
	}
}

func TestHandlePostsKeywordFilter(t *testing.T) {
	t.Parallel()

	now := time.Now()
	srv := serverWithPosts(
		apiPost("a", platform.Facebook, "big product launch", 1, now),
		apiPost("b", platform.Facebook, "something else", 2, now),
	)
	rec := doRequest(t, srv, srv.handlePosts, "/api/v1/posts?keyword=Launch")
	data := decodeData(t, rec)
	if data["total"] != float64(1) {
		t.Fatalf("expected keyword filter to match one post, got %v", data["total"])
	}
}

func TestHandlePostsRejectsBadMinEngagement(t *testing.T) {
	t.Parallel()

	srv := serverWithPosts(apiPost("a", platform.Facebook, "x", 1, time.Now()))
	rec := doRequest(t, srv, srv.handlePosts, "/api/v1/posts?min_engagement_rate=abc")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed filter, got %d", rec.Code)
	}
}

func TestHandlePostDetail(t *testing.T) {
	t.Parallel()

	srv := serverWithPosts(apiPost("known", platform.Facebook, "x", 1, time.Now()))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts/known", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("known")
	if err := srv.handlePostDetail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/posts/unknown", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("unknown")
	if err := srv.handlePostDetail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Post not found") {
		t.Fatalf("expected not-found message, got %s", rec.Body.String())
	}
}

func TestHandleLatestPosts(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	posts := make([]*post.Post, 0, 7)
	for i := 0; i < 7; i++ {
		posts = append(posts, apiPost(
			string(rune('a'+i)), platform.Facebook, "x", float64(i), base.Add(time.Duration(i)*time.Hour)))
	}
	srv := serverWithPosts(posts...)

	rec := doRequest(t, srv, srv.handleLatestPosts, "/api/v1/posts/latest")
	data := decodeData(t, rec)
	latest := data["posts"].([]any)
	if len(latest) != 5 {
		t.Fatalf("expected five latest posts, got %d", len(latest))
	}
	first := latest[0].(map[string]any)
	if first["id"] != "g" {
		t.Fatalf("expected most recent first, got %v", first["id"])
	}
}

func TestHandleSentiment(t *testing.T) {
	t.Parallel()

	now := time.Now()
	positive := apiPost("a", platform.Facebook, "great stuff", 1, now)
	positive.Sentiment = "positive"
	srv := serverWithPosts(positive, apiPost("b", platform.Facebook, "meh", 1, now))

	rec := doRequest(t, srv, srv.handleSentiment, "/api/v1/analytics/sentiment")
	data := decodeData(t, rec)
	if data["positive"] != float64(1) || data["neutral"] != float64(1) {
		t.Fatalf("unexpected sentiment totals: %v", data)
	}
}

func TestHandleRefreshSuccess(t *testing.T) {
	t.Parallel()

	raw := post.RawPost{ID: "r1", Text: "refreshed"}
	srv := newTestServer(&stubFetcher{batches: []feed.Batch{
		{Platform: platform.Facebook, Posts: []post.RawPost{raw}},
	}})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	rec := httptest.NewRecorder()
	if err := srv.handleRefresh(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if srv.store.Current() == nil {
		t.Fatal("expected refresh to publish a snapshot")
	}
}

func TestHandleRefreshFailureKeepsSnapshot(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{err: errors.New("upstream down")}
	srv := newTestServer(fetcher)
	previous := store.NewSnapshot([]*post.Post{apiPost("a", platform.Facebook, "x", 1, time.Now())}, time.Now())
	srv.store.Replace(previous)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	rec := httptest.NewRecorder()
	if err := srv.handleRefresh(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 on fetch failure, got %d", rec.Code)
	}
	if srv.store.Current() != previous {
		t.Fatal("a failed refresh must keep the previous snapshot")
	}
}

func TestHandleExportCSV(t *testing.T) {
	t.Parallel()

	srv := serverWithPosts(apiPost("a", platform.Facebook, "hello", 1, time.Now()))
	rec := doRequest(t, srv, srv.handleExportCSV, "/api/v1/export/csv")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(got, "social_media_data.csv") {
		t.Fatalf("expected download disposition, got %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "Platform,Post ID,Content,") {
		t.Fatalf("unexpected CSV body: %q", rec.Body.String())
	}
}

func TestHandleExportJSON(t *testing.T) {
	t.Parallel()

	srv := serverWithPosts(apiPost("a", platform.Facebook, "hello", 1, time.Now()))
	rec := doRequest(t, srv, srv.handleExportJSON, "/api/v1/export/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(got, "social_media_data.json") {
		t.Fatalf("expected download disposition, got %q", got)
	}
	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if _, ok := decoded["Facebook"]; !ok {
		t.Fatalf("expected Facebook group, got %v", decoded)
	}
}
