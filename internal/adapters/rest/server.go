package rest

import (
	"context"
	"net/http"
	"time"

	"joytop-admin-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerConfig - параметры HTTP-сервера панели
type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
	DefaultLang        string
	Gatherer           prometheus.Gatherer // nil - /metrics не регистрируется
}

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewServer(cfg ServerConfig,
	viewsHandler *ViewsHandler,
	dashboardHandler *DashboardHandler,
	baseLogger port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID", "lang"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300, // 5 минут
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(LanguageMiddleware(cfg.DefaultLang), SessionMiddleware)

		r.Get("/statistics", dashboardHandler.GetStatistics)
		r.Get("/audit", dashboardHandler.ListAuditRecords)

		r.Post("/views", viewsHandler.MountView)
		r.Route("/views/{viewID}", func(r chi.Router) {
			r.Get("/", viewsHandler.GetView)
			r.Delete("/", viewsHandler.UnmountView)
			r.Post("/refresh", viewsHandler.Refresh)

			r.Put("/page", viewsHandler.ChangePage)
			r.Put("/page-size", viewsHandler.ChangePageSize)

			r.Patch("/filters", viewsHandler.UpdateFilters)
			r.Delete("/filters", viewsHandler.ClearFilters)

			r.Post("/items", viewsHandler.CreateItem)
			r.Put("/items/{itemID}", viewsHandler.UpdateItem)
			r.Patch("/items/{itemID}", viewsHandler.PatchItem)
			r.Delete("/items/{itemID}", viewsHandler.DeleteItem)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

// Handler отдает роутер, используется в тестах
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
