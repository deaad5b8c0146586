package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kinopulse/kinopulse/internal/analysis"
	"github.com/kinopulse/kinopulse/internal/cache"
	"github.com/kinopulse/kinopulse/internal/charts"
	"github.com/kinopulse/kinopulse/internal/events"
)

// Server is the pull-based surface both front ends (web dashboard, chat bot)
// consume. It owns no state of its own: every request recomputes from the
// injected pipeline, with the optional chart cache in front of rendering.
type Server struct {
	aggregator *analysis.Aggregator
	renderer   *charts.Renderer
	cache      *cache.ChartCache
	publisher  *events.Publisher
}

func New(aggregator *analysis.Aggregator, renderer *charts.Renderer, chartCache *cache.ChartCache, publisher *events.Publisher) *Server {
	return &Server{
		aggregator: aggregator,
		renderer:   renderer,
		cache:      chartCache,
		publisher:  publisher,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/movies/:id/stats", s.movieStats)
		api.GET("/movies/:id/distribution", s.movieDistribution)
		api.GET("/movies/:id/charts/:kind", s.movieChart)
		api.GET("/overview", s.overview)
		api.GET("/overview/charts/:kind", s.overviewChart)
	}

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		c.Next()

		slog.Info("[Server] Request handled",
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)))
	}
}
