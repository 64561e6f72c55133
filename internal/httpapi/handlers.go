package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"horse.fit/pulse/internal/aggregate"
	"horse.fit/pulse/internal/export"
	"horse.fit/pulse/internal/globaltime"
	"horse.fit/pulse/internal/store"
)

const latestPostCount = 5

func (s *Server) handleHealth(c echo.Context) error {
	return success(c, map[string]any{
		"service": "pulse",
		"time":    globaltime.UTC(),
	})
}

// snapshot returns the current collection or reports that ingestion has not
// completed yet.
func (s *Server) snapshot(c echo.Context) (*store.Snapshot, error) {
	snap := s.store.Current()
	if snap == nil {
		return nil, fail(c, http.StatusServiceUnavailable, "Data not available yet, try again shortly", nil)
	}
	return snap, nil
}

func (s *Server) handlePosts(c echo.Context) error {
	snap, err := s.snapshot(c)
	if snap == nil {
		return err
	}
	filter, err := filterFromQuery(c)
	if err != nil {
		return err
	}

	posts := filter.apply(snap.Posts, globaltime.Now())
	sortPosts(posts, filter.Sort)

	return success(c, map[string]any{
		"total":      len(posts),
		"fetched_at": snap.FetchedAt,
		"posts":      posts,
	})
}

func (s *Server) handleLatestPosts(c echo.Context) error {
	snap, err := s.snapshot(c)
	if snap == nil {
		return err
	}
	return success(c, map[string]any{
		"posts": snap.Latest(latestPostCount),
	})
}

func (s *Server) handlePostDetail(c echo.Context) error {
	snap, err := s.snapshot(c)
	if snap == nil {
		return err
	}
	p, ok := snap.PostByID(c.Param("id"))
	if !ok {
		return failNotFound(c, "Post not found")
	}
	return success(c, p)
}

func (s *Server) handleSentiment(c echo.Context) error {
	snap, err := s.snapshot(c)
	if snap == nil {
		return err
	}
	return success(c, aggregate.Sentiments(snap.Posts))
}

func (s *Server) handleSentimentTimeline(c echo.Context) error {
	snap, err := s.snapshot(c)
	if snap == nil {
		return err
	}
	g := aggregate.ParseGranularity(c.QueryParam("granularity"))
	return success(c, map[string]any{
		"granularity": g,
		"buckets":     aggregate.SentimentSeries(snap.Posts, g),
	})
}

func (s *Server) handleKeywords(c echo.Context) error {
	snap, err := s.snapshot(c)
	if snap == nil {
		return err
	}
	return success(c, aggregate.Keywords(snap.Posts))
}

func (s *Server) handleTopics(c echo.Context) error {
	snap, err := s.snapshot(c)
	if snap == nil {
		return err
	}
	return success(c, map[string]any{
		"topics": aggregate.Topics(snap.Posts),
	})
}

func (s *Server) handleEngagementSeries(c echo.Context) error {
	snap, err := s.snapshot(c)
	if snap == nil {
		return err
	}
	g := aggregate.ParseGranularity(c.QueryParam("granularity"))
	return success(c, map[string]any{
		"granularity": g,
		"buckets":     aggregate.EngagementSeries(snap.Posts, g),
	})
}

func (s *Server) handleEngagementByDay(c echo.Context) error {
	snap, err := s.snapshot(c)
	if snap == nil {
		return err
	}
	return success(c, map[string]any{
		"days": aggregate.ByDayOfWeek(snap.Posts),
	})
}

func (s *Server) handleEngagementByHour(c echo.Context) error {
	snap, err := s.snapshot(c)
	if snap == nil {
		return err
	}
	return success(c, map[string]any{
		"hours": aggregate.ByHourOfDay(snap.Posts),
	})
}

func (s *Server) handleInteractionMap(c echo.Context) error {
	snap, err := s.snapshot(c)
	if snap == nil {
		return err
	}
	return success(c, map[string]any{
		"map": aggregate.InteractionMap(snap.Posts),
	})
}

// handleRefresh runs a full ingestion cycle synchronously. A failed fetch
// leaves the previous snapshot untouched.
func (s *Server) handleRefresh(c echo.Context) error {
	snap, err := s.ingest.RunCycle(c.Request().Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("manual refresh failed")
		return fail(c, http.StatusBadGateway, "Failed to fetch posts, please try again", nil)
	}
	return success(c, map[string]any{
		"posts":      len(snap.Posts),
		"fetched_at": snap.FetchedAt,
	})
}

func (s *Server) handleExportCSV(c echo.Context) error {
	snap, err := s.snapshot(c)
	if snap == nil {
		return err
	}
	csv := export.Build(snap.Posts).CSV()
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="social_media_data.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

func (s *Server) handleExportJSON(c echo.Context) error {
	snap, err := s.snapshot(c)
	if snap == nil {
		return err
	}
	body, err := export.Build(snap.Posts).JSON()
	if err != nil {
		s.logger.Error().Err(err).Msg("export encode failed")
		return internalError(c, "Failed to encode export")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="social_media_data.json"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
}
