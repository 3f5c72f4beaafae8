package dashboard

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/autek-admin/internal/apperr"
	"github.com/georgemunganga/autek-admin/internal/modules/session"
	"github.com/georgemunganga/autek-admin/internal/web"
)

type Handler struct {
	service  Service
	sessions *session.Manager
	renderer *web.Renderer
	logger   *slog.Logger
}

func NewHandler(service Service, sessions *session.Manager, renderer *web.Renderer, logger *slog.Logger) *Handler {
	return &Handler{service: service, sessions: sessions, renderer: renderer, logger: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.overview)
}

type card struct {
	Key   string
	Title string
	Href  string
	Value string
}

type overviewView struct {
	Cards []card
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		if apperr.IsUnauthorized(err) {
			h.sessions.Expire(w, r)
			return
		}
		h.logger.WarnContext(r.Context(), "load dashboard stats", slog.Any("error", err))
	}

	view := overviewView{Cards: make([]card, 0, len(stats))}
	for _, s := range stats {
		view.Cards = append(view.Cards, card{
			Key:   s.Slug,
			Title: s.Title,
			Href:  s.Href,
			Value: strconv.Itoa(s.Count),
		})
	}
	h.renderer.Render(w, r, http.StatusOK, "dashboard", "Dashboard", view)
}
