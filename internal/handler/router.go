package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/sarderiftekhar/zzstay-com/internal/handler/chat"
	middlewarePkg "github.com/sarderiftekhar/zzstay-com/internal/middleware"
	"github.com/sarderiftekhar/zzstay-com/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chatSvc chatHandler.TurnRunner) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		chatHandler.New(chatSvc).RegisterRoutes(api)
	})

	return r
}
