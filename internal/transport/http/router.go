package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lantalk/relay-service/internal/transport/ws"
	"github.com/lantalk/relay-service/pkg/metrics"
)

func NewRouter(h *Handler, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
	}))

	// WS endpoint
	r.Get("/ws/{room}/{username}", wsServer.HandleWS)

	// admin token API
	r.Group(func(ar chi.Router) {
		ar.Use(middlewareChi.Timeout(30 * time.Second))

		ar.Route("/api/tokens", func(tr chi.Router) {
			tr.Post("/", h.CreateToken)
			tr.Get("/", h.ListTokens)
			tr.Delete("/{token}", h.DeleteToken)
		})
	})

	// SPA index + static
	r.Get("/", h.Index)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("./static"))))

	// health + metrics
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	return r
}
