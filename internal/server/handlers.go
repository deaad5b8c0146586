package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kinopulse/kinopulse/internal/analysis"
	"github.com/kinopulse/kinopulse/internal/cache"
)

func movieID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "movie id must be an integer"})
		return 0, false
	}
	return id, true
}

func (s *Server) movieStats(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}

	agg := s.aggregator.MovieStats(id)
	if agg == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no reviews found for movie"})
		return
	}

	if err := s.publisher.PublishAggregate(agg); err != nil {
		slog.Warn("[Server] Failed to publish aggregate event",
			slog.Int("movie_id", id),
			slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, agg)
}

func (s *Server) movieDistribution(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}

	dist := s.aggregator.SentimentDistribution(id)
	if dist == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no reviews found for movie"})
		return
	}
	c.JSON(http.StatusOK, dist)
}

func (s *Server) movieChart(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	kind := c.Param("kind")

	key := cache.Key(kind, id)
	if data, hit := s.cache.Get(c.Request.Context(), key); hit {
		c.Data(http.StatusOK, "image/png", data)
		return
	}

	agg := s.aggregator.MovieStats(id)
	if agg == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no reviews found for movie"})
		return
	}

	var buf *bytes.Buffer
	var err error
	switch kind {
	case "sentiment":
		buf, err = s.renderer.SentimentPie(analysis.DistributionFor(agg), agg.MovieTitle)
	case "scores":
		buf, err = s.renderer.ScoreHistogram(agg.CompoundScores, agg.MovieTitle)
	case "ratings":
		buf, err = s.renderer.RatingDistribution(s.aggregator.MovieRatings(id), agg.MovieTitle)
	case "wordcloud":
		buf, err = s.renderer.WordCloud(agg.SampleReviews, agg.MovieTitle)
	case "dashboard":
		buf, err = s.renderer.SummaryDashboard(agg,
			analysis.DistributionFor(agg), s.aggregator.MovieRatings(id), agg.MovieTitle)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown chart kind"})
		return
	}

	s.respondChart(c, key, buf, err, "not enough review text for a word cloud")
}

func (s *Server) overview(c *gin.Context) {
	o := s.aggregator.CorpusOverview()
	if o == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no corpus loaded"})
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) overviewChart(c *gin.Context) {
	kind := c.Param("kind")

	key := cache.Key("overview-"+kind, 0)
	if data, hit := s.cache.Get(c.Request.Context(), key); hit {
		c.Data(http.StatusOK, "image/png", data)
		return
	}

	o := s.aggregator.CorpusOverview()
	if o == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no corpus loaded"})
		return
	}

	var buf *bytes.Buffer
	var err error
	switch kind {
	case "timeline":
		buf, err = s.renderer.ReviewsTimeline(o.ReviewsPerMonth, "Reviews per month")
	case "correlation":
		buf, err = s.renderer.RatingCorrelation(o.RatingPoints, o.Correlation, "Rating vs sentiment")
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown chart kind"})
		return
	}

	s.respondChart(c, key, buf, err, "not enough data for this chart")
}

// respondChart maps the renderer's three outcomes onto HTTP: a render error
// is a retryable 500 (a defect, distinct from no-data), a nil buffer is the
// legitimate 404 empty state, a buffer is the PNG.
func (s *Server) respondChart(c *gin.Context, key string, buf *bytes.Buffer, err error, emptyMsg string) {
	if err != nil {
		slog.Error("[Server] Chart rendering failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "chart rendering failed"})
		return
	}
	if buf == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": emptyMsg})
		return
	}

	data := buf.Bytes()
	s.cache.Set(c.Request.Context(), key, data)
	c.Data(http.StatusOK, "image/png", data)
}
