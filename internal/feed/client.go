package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"horse.fit/pulse/internal/config"
	"horse.fit/pulse/internal/platform"
	"horse.fit/pulse/internal/post"
	feedschema "horse.fit/pulse/schema"
)

// Batch is one platform's raw posts in feed order.
type Batch struct {
	Platform platform.Code
	Posts    []post.RawPost
}

// Client fetches per-platform post feeds from the upstream collector API.
type Client struct {
	http   *resty.Client
	limit  int
	logger zerolog.Logger
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(strings.TrimSpace(cfg.FeedBaseURL), "/")).
		SetTimeout(cfg.FeedTimeout).
		SetRetryCount(cfg.FeedRetries).
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		limit:  cfg.PlatformLimit,
		logger: logger,
	}
}

// FetchAll requests every platform feed concurrently and joins the results in
// fetch order. Any single platform failure aborts the whole batch; no partial
// collection is returned.
func (c *Client) FetchAll(ctx context.Context) ([]Batch, error) {
	batches := make([]Batch, len(platform.Codes))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, code := range platform.Codes {
		i, code := i, code
		group.Go(func() error {
			posts, err := c.fetchPlatform(groupCtx, code)
			if err != nil {
				return fmt.Errorf("fetch %s feed: %w", platform.Lookup(code).Name, err)
			}
			batches[i] = Batch{Platform: code, Posts: posts}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return batches, nil
}

func (c *Client) fetchPlatform(ctx context.Context, code platform.Code) ([]post.RawPost, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("platform", string(code)).
		Get("/post/list/")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode())
	}

	items, err := feedschema.ValidateFeedPayload(resp.Body())
	if err != nil {
		return nil, err
	}

	total := len(items)
	if total > c.limit {
		items = items[:c.limit]
	}

	posts := make([]post.RawPost, 0, len(items))
	for i, item := range items {
		var raw post.RawPost
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, fmt.Errorf("decode post %d: %w", i, err)
		}
		posts = append(posts, raw)
	}

	c.logger.Debug().
		Str("platform", string(code)).
		Int("received", total).
		Int("kept", len(posts)).
		Msg("platform feed fetched")

	return posts, nil
}
