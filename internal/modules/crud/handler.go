package crud

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/autek-admin/internal/apiclient"
	"github.com/georgemunganga/autek-admin/internal/apperr"
	"github.com/georgemunganga/autek-admin/internal/modules/session"
	"github.com/georgemunganga/autek-admin/internal/web"
)

const maxUploadBytes = 32 << 20

// Handler exposes the list/form pages of every registered resource.
type Handler struct {
	registry *Registry
	service  Service
	sessions *session.Manager
	renderer *web.Renderer
	flash    *web.Flasher
	logger   *slog.Logger
}

func NewHandler(registry *Registry, service Service, sessions *session.Manager,
	renderer *web.Renderer, flash *web.Flasher, logger *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		service:  service,
		sessions: sessions,
		renderer: renderer,
		flash:    flash,
		logger:   logger,
	}
}

// RegisterRoutes mounts the resource pages; r is expected to be the
// session-gated /dashboard router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/{resource}", h.list)
	r.Post("/{resource}", h.create)
	r.Post("/{resource}/{id}", h.update)
	r.Post("/{resource}/{id}/delete", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	res, ok := h.resource(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	q := r.URL.Query()
	st := pageState{query: q.Get("q")}
	if res.Scope != nil {
		st.scope = q.Get(res.Scope.Param)
	}

	records, loadErr := h.service.List(ctx, res, st.scope)
	if h.expired(w, r, loadErr) {
		return
	}

	var opts map[string][]Option
	if res.Scope != nil || q.Get("dialog") != "" || q.Get("edit") != "" {
		var err error
		if opts, err = h.service.Options(ctx, res, q.Get("edit")); h.expired(w, r, err) {
			return
		}
	}

	view := newListView(res, records, st, opts)
	if loadErr != nil {
		h.logger.WarnContext(ctx, "load records", slog.String("resource", res.Slug), slog.Any("error", loadErr))
		view.LoadError = apperr.PublicMessage(loadErr, fmt.Sprintf("Failed to fetch %s", res.lowerItem()+"s"))
	}

	switch {
	case q.Get("dialog") == "new" && view.CanCreate:
		view.Dialog = newDialog(res, nil, st, opts)
	case q.Get("edit") != "":
		if rec, found := findRecord(records, q.Get("edit")); found {
			view.Dialog = newDialog(res, rec, st, opts)
		} else if loadErr == nil {
			view.LoadError = res.ItemName + " not found"
		}
	case q.Get("delete") != "":
		if _, found := findRecord(records, q.Get("delete")); found {
			view.Confirm = newConfirm(res, q.Get("delete"), st)
		}
	}

	h.renderer.Render(w, r, http.StatusOK, "crud", res.Title, view)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, id string) {
	res, ok := h.resource(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	sub, cleanup, err := parseSubmission(res, r)
	defer cleanup()
	if err != nil {
		h.logger.WarnContext(ctx, "parse form", slog.String("resource", res.Slug), slog.Any("error", err))
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	st := pageState{}
	if res.Scope != nil {
		st.scope = sub.Get(res.Scope.Field)
		if st.scope == "" {
			st.scope = r.URL.Query().Get(res.Scope.Param)
		}
	}

	err = h.service.Save(ctx, res, id, sub)
	if err == nil {
		h.flash.Success(w, res.savedMessage(id != ""))
		http.Redirect(w, r, listURL(res, "", st, nil), http.StatusSeeOther)
		return
	}
	if h.expired(w, r, err) {
		return
	}
	h.logger.WarnContext(ctx, "save record", slog.String("resource", res.Slug), slog.String("id", id), slog.Any("error", err))

	// Show the list again with the dialog still open and the input kept.
	records, loadErr := h.service.List(ctx, res, st.scope)
	if h.expired(w, r, loadErr) {
		return
	}
	opts, optErr := h.service.Options(ctx, res, id)
	if h.expired(w, r, optErr) {
		return
	}
	view := newListView(res, records, st, opts)
	if loadErr != nil {
		view.LoadError = apperr.PublicMessage(loadErr, fmt.Sprintf("Failed to fetch %s", res.lowerItem()+"s"))
	}

	var rec apiclient.Record
	if id != "" {
		var found bool
		if rec, found = findRecord(records, id); !found {
			rec = apiclient.Record{"id": id}
		}
	}
	d := newDialog(res, rec, st, opts)
	refill(d, sub)
	d.Error = saveMessage(res, err)
	view.Dialog = d

	h.renderer.Render(w, r, http.StatusUnprocessableEntity, "crud", res.Title, view)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	res, ok := h.resource(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	st := pageState{}
	if res.Scope != nil {
		st.scope = r.URL.Query().Get(res.Scope.Param)
	}

	if err := h.service.Delete(r.Context(), res, id); err != nil {
		if h.expired(w, r, err) {
			return
		}
		h.logger.WarnContext(r.Context(), "delete record",
			slog.String("resource", res.Slug), slog.String("id", id), slog.Any("error", err))
		h.flash.Error(w, res.deleteFailedMessage())
	} else {
		h.flash.Success(w, res.deletedMessage())
	}
	http.Redirect(w, r, listURL(res, "", st, nil), http.StatusSeeOther)
}

func (h *Handler) resource(w http.ResponseWriter, r *http.Request) (*Resource, bool) {
	res, ok := h.registry.Get(chi.URLParam(r, "resource"))
	if !ok {
		http.NotFound(w, r)
	}
	return res, ok
}

// expired forces a logout when err means the credential was rejected.
func (h *Handler) expired(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil || !apperr.IsUnauthorized(err) {
		return false
	}
	h.sessions.Expire(w, r)
	return true
}

func saveMessage(res *Resource, err error) string {
	msg := apperr.PublicMessage(err,
		fmt.Sprintf("Failed to save %s. Please check your input and try again.", res.lowerItem()))
	if res.TranslateError != nil && apperr.Is(err, apperr.Invalid) {
		msg = res.TranslateError(msg)
	}
	return msg
}

// parseSubmission reads the posted form and opens attached files. The
// returned cleanup closes them and must always be called.
func parseSubmission(res *Resource, r *http.Request) (Submission, func(), error) {
	var closers []io.Closer
	cleanup := func() {
		for _, c := range closers {
			_ = c.Close()
		}
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}

	if res.Multipart() {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return Submission{}, cleanup, err
		}
	}
	if err := r.ParseForm(); err != nil {
		return Submission{}, cleanup, err
	}

	sub := Submission{Values: r.PostForm, Files: map[string]apiclient.File{}}
	if r.MultipartForm == nil {
		return sub, cleanup, nil
	}
	for _, f := range res.Fields {
		if f.Kind != FileInput {
			continue
		}
		file, hdr, err := r.FormFile(f.Key)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return Submission{}, cleanup, err
		}
		closers = append(closers, file)
		sub.Files[f.Key] = apiclient.File{
			Field:       f.Key,
			Filename:    hdr.Filename,
			ContentType: hdr.Header.Get("Content-Type"),
			Content:     file,
		}
	}
	return sub, cleanup, nil
}
