package orghandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"emimet/internal/domain/auth"
	"emimet/internal/domain/org"
	"emimet/internal/transport/http/api"
	"emimet/internal/transport/http/middleware"
)

type Handler struct {
	Store *org.Store
}

func NewHandler(store *org.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	write := middleware.RequireRole(auth.RoleAdmin, auth.RoleManager)

	r.Route("/sectors", func(r chi.Router) {
		r.Get("/", h.handleListSectors)
		r.With(write).Post("/", h.handleCreateSector)
		r.With(write).Put("/{sectorID}", h.handleRenameSector)
		r.With(write).Delete("/{sectorID}", h.handleDeleteSector)
	})
	r.Route("/functions", func(r chi.Router) {
		r.Get("/", h.handleListFunctions)
		r.With(write).Post("/", h.handleCreateFunction)
		r.With(write).Put("/{functionID}", h.handleRenameFunction)
		r.With(write).Delete("/{functionID}", h.handleDeleteFunction)
	})
}

type nameRequest struct {
	Name string `json:"name"`
}

func decodeName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var payload nameRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return "", false
	}
	name := strings.TrimSpace(payload.Name)
	if len(name) < 2 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "name must be at least 2 characters", middleware.GetRequestID(r.Context()))
		return "", false
	}
	return name, true
}

func failOrg(w http.ResponseWriter, r *http.Request, err error, notFoundCode, failCode, failMessage string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, org.ErrNotFound):
		api.Fail(w, http.StatusNotFound, notFoundCode, "record not found", requestID)
	case errors.Is(err, org.ErrNameTaken):
		api.Fail(w, http.StatusConflict, "name_taken", "name already exists", requestID)
	case errors.Is(err, org.ErrInUse):
		api.Fail(w, http.StatusConflict, "in_use", "record is still referenced by employees", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, failCode, failMessage, requestID)
	}
}

func (h *Handler) handleListSectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.Store.ListSectors(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "sector_list_failed", "failed to list sectors", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, sectors, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateSector(w http.ResponseWriter, r *http.Request) {
	name, ok := decodeName(w, r)
	if !ok {
		return
	}
	sector, err := h.Store.CreateSector(r.Context(), name)
	if err != nil {
		failOrg(w, r, err, "sector_not_found", "sector_create_failed", "failed to create sector")
		return
	}
	api.Created(w, sector, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRenameSector(w http.ResponseWriter, r *http.Request) {
	name, ok := decodeName(w, r)
	if !ok {
		return
	}
	sector, err := h.Store.RenameSector(r.Context(), chi.URLParam(r, "sectorID"), name)
	if err != nil {
		failOrg(w, r, err, "sector_not_found", "sector_rename_failed", "failed to rename sector")
		return
	}
	api.Success(w, sector, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteSector(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteSector(r.Context(), chi.URLParam(r, "sectorID")); err != nil {
		failOrg(w, r, err, "sector_not_found", "sector_delete_failed", "failed to delete sector")
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListFunctions(w http.ResponseWriter, r *http.Request) {
	functions, err := h.Store.ListFunctions(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "function_list_failed", "failed to list functions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, functions, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateFunction(w http.ResponseWriter, r *http.Request) {
	name, ok := decodeName(w, r)
	if !ok {
		return
	}
	function, err := h.Store.CreateFunction(r.Context(), name)
	if err != nil {
		failOrg(w, r, err, "function_not_found", "function_create_failed", "failed to create function")
		return
	}
	api.Created(w, function, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRenameFunction(w http.ResponseWriter, r *http.Request) {
	name, ok := decodeName(w, r)
	if !ok {
		return
	}
	function, err := h.Store.RenameFunction(r.Context(), chi.URLParam(r, "functionID"), name)
	if err != nil {
		failOrg(w, r, err, "function_not_found", "function_rename_failed", "failed to rename function")
		return
	}
	api.Success(w, function, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteFunction(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteFunction(r.Context(), chi.URLParam(r, "functionID")); err != nil {
		failOrg(w, r, err, "function_not_found", "function_delete_failed", "failed to delete function")
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
