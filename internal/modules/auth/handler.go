package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/georgemunganga/autek-admin/internal/apperr"
	"github.com/georgemunganga/autek-admin/internal/modules/session"
	"github.com/georgemunganga/autek-admin/internal/web"
)

// DefaultReturn is where a login without a return_to lands.
const DefaultReturn = "/dashboard"

// Handler handles HTTP requests for signing in and out.
type Handler struct {
	service  Service
	sessions *session.Manager
	renderer *web.Renderer
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service Service, sessions *session.Manager, renderer *web.Renderer, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		renderer: renderer,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// RegisterRoutes registers the login and logout routes. They sit outside
// the session gate.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get(session.LoginPath, h.loginForm)
	r.Post(session.LoginPath, h.login)
	r.Post("/logout", h.logout)
}

type loginView struct {
	Error    string
	ReturnTo string
	Email    string
	Fields   map[string]string
}

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sessions.Load(r); err == nil {
		http.Redirect(w, r, DefaultReturn, http.StatusSeeOther)
		return
	}
	view := loginView{ReturnTo: normalizeReturnTo(r.URL.Query().Get("return_to"))}
	h.renderer.RenderBare(w, r, http.StatusOK, "login", "Sign in", view)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	in := Credentials{
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
	}
	view := loginView{ReturnTo: normalizeReturnTo(r.PostForm.Get("return_to")), Email: in.Email}

	if err := h.validate.Struct(in); err != nil {
		view.Fields = fieldErrors(err)
		h.renderer.RenderBare(w, r, http.StatusBadRequest, "login", "Sign in", view)
		return
	}

	id, err := h.service.Login(r.Context(), in)
	if err != nil {
		h.logger.WarnContext(r.Context(), "login failed", slog.String("email", in.Email), slog.Any("error", err))
		view.Error = apperr.PublicMessage(err, "Login failed. Please try again.")
		status := http.StatusBadGateway
		if ae, ok := apperr.As(err); ok && ae.Kind == apperr.Invalid && ae.Status < http.StatusInternalServerError {
			status = http.StatusUnauthorized
		}
		h.renderer.RenderBare(w, r, status, "login", "Sign in", view)
		return
	}

	if _, err := h.sessions.Start(r.Context(), w, id.Token, id.Profile); err != nil {
		h.logger.ErrorContext(r.Context(), "start session", slog.Any("error", err))
		view.Error = "Login failed. Please try again."
		h.renderer.RenderBare(w, r, http.StatusInternalServerError, "login", "Sign in", view)
		return
	}

	dest := view.ReturnTo
	if dest == "" {
		dest = DefaultReturn
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.End(w, r)
	http.Redirect(w, r, session.LoginPath, http.StatusSeeOther)
}

// fieldErrors maps validator failures to the form field they concern.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["email"] = "Invalid form data"
		return out
	}
	for _, fe := range ve {
		key := strings.ToLower(fe.StructField())
		switch fe.Tag() {
		case "required":
			out[key] = "This field is required"
		case "email":
			out[key] = "Enter a valid email address"
		default:
			out[key] = "Invalid value"
		}
	}
	return out
}

// normalizeReturnTo accepts only local absolute paths; anything else reads as "".
func normalizeReturnTo(s string) string {
	if s == "" || s[0] != '/' || strings.HasPrefix(s, "//") || strings.HasPrefix(s, "/\\") {
		return ""
	}
	if strings.Contains(s, "://") {
		return ""
	}
	return s
}
