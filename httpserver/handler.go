package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/openreports/report-registry-client/interfaces"
	"github.com/openreports/report-registry-client/session"
)

// maxPayloadBytes caps report payload uploads through the HTTP surface.
const maxPayloadBytes = 32 << 20

// Handler maps HTTP requests onto session.Manager operations.
type Handler struct {
	manager *session.Manager
	log     *slog.Logger
}

// NewHandler creates a presentation handler over the given manager.
func NewHandler(manager *session.Manager, log *slog.Logger) *Handler {
	return &Handler{manager: manager, log: log}
}

// reportView augments a report with its payload retrieval URL.
type reportView struct {
	interfaces.Report
	ContentURL string `json:"content_url,omitempty"`
}

// errorResponse is the uniform error body for all endpoints.
type errorResponse struct {
	Error string `json:"error"`
}

// HandleConnect binds the session to the wallet's active address.
func (h *Handler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Connect(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.manager.Snapshot())
}

// HandleSession returns the current session snapshot.
func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.manager.Snapshot())
}

// HandleListReports returns the published report collection with payload
// URLs attached.
func (h *Handler) HandleListReports(w http.ResponseWriter, r *http.Request) {
	snapshot := h.manager.Snapshot()

	views := make([]reportView, 0, len(snapshot.Reports))
	for _, report := range snapshot.Reports {
		view := reportView{Report: report}
		if store := h.manager.Store(); store != nil {
			view.ContentURL = store.ContentURL(report.ContentID)
		}
		views = append(views, view)
	}

	h.writeJSON(w, http.StatusOK, views)
}

// HandleRefresh triggers a full registry synchronization.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Refresh(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.manager.Snapshot())
}

// HandleSubmitReport runs the submission pipeline from a multipart form
// carrying a "title" field and a "payload" file.
func (h *Handler) HandleSubmitReport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPayloadBytes); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed multipart form: " + err.Error()})
		return
	}

	file, _, err := r.FormFile("payload")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing payload file"})
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxPayloadBytes))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read payload: " + err.Error()})
		return
	}

	draft := interfaces.SubmissionDraft{
		Title:   r.FormValue("title"),
		Payload: payload,
	}

	if err := h.manager.Submit(r.Context(), &draft); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, h.manager.Snapshot())
}

// HandleDeleteReport soft-deletes a report. The user confirmation gate is
// the confirm=true query parameter; without it no transaction is sent.
func (h *Handler) HandleDeleteReport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid report id"})
		return
	}

	confirmed := r.URL.Query().Get("confirm") == "true"
	if err := h.manager.DeleteReport(r.Context(), id, confirmed); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, h.manager.Snapshot())
}

// HandleGrant authorizes an address to submit reports.
func (h *Handler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Grant(r.Context(), chi.URLParam(r, "address")); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.manager.Snapshot())
}

// HandleRevoke removes an address's submission rights.
func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Revoke(r.Context(), chi.URLParam(r, "address")); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.manager.Snapshot())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error("Failed to encode response", "err", err)
	}
}

// writeError maps the session error taxonomy onto HTTP statuses. Every
// failure produces a distinct body naming the cause; nothing is swallowed.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway

	switch {
	case errors.Is(err, session.ErrNotConnected):
		status = http.StatusUnauthorized
	case errors.Is(err, session.ErrOperationInFlight):
		status = http.StatusConflict
	case errors.Is(err, session.ErrNotConfirmed),
		errors.Is(err, interfaces.ErrInvalidAddress),
		errors.Is(err, interfaces.ErrInvalidDraft):
		status = http.StatusBadRequest
	case errors.Is(err, interfaces.ErrStoreNotConfigured):
		status = http.StatusInternalServerError
	case errors.Is(err, session.ErrSubmissionRejected),
		errors.Is(err, session.ErrAuthorizationRejected):
		status = http.StatusForbidden
	}

	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}
