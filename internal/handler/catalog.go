package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/httputil"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/service/catalog"
)

// CatalogHandler handles company catalog HTTP requests. Mutating
// endpoints require the company_api_key query credential; the policy
// engine checks it against the key provisioned on the actor.
type CatalogHandler struct {
	catalog *catalog.Service
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc *catalog.Service, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: svc,
		logger:  logger,
	}
}

// apiKey extracts the company API key query credential
func apiKey(r *http.Request) string {
	return r.URL.Query().Get("company_api_key")
}

// Create adds an item to a company's catalog
// POST /api/companies/{id}/catalog
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	companyID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	var req catalog.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondKO(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.catalog.Create(r.Context(), actor, companyID, apiKey(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusCreated, "catalog item created", item)
}

// Get retrieves one catalog item
// GET /api/catalog/{id}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	item, err := h.catalog.Get(r.Context(), actor, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "OK", item)
}

// List retrieves a company's catalog
// GET /api/companies/{id}/catalog
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	companyID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	items, err := h.catalog.List(r.Context(), actor, companyID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "OK", items)
}

// Archive archives (soft-deletes) one catalog item
// DELETE /api/companies/{id}/catalog/{item}
func (h *CatalogHandler) Archive(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	companyID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}
	itemID, err := pathID(r, "item")
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.catalog.Delete(r.Context(), actor, companyID, apiKey(r), itemID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "catalog item archived", nil)
}

// ArchiveArray archives several catalog items, reporting per-item outcomes
// POST /api/companies/{id}/catalog/archive
func (h *CatalogHandler) ArchiveArray(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	companyID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondKO(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		httputil.RespondKO(w, http.StatusBadRequest, "ids is required")
		return
	}

	result, err := h.catalog.DeleteArray(r.Context(), actor, companyID, apiKey(r), req.IDs)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "catalog items archived", result)
}

// ArchiveAll archives the company's whole catalog
// DELETE /api/companies/{id}/catalog
func (h *CatalogHandler) ArchiveAll(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	companyID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	result, err := h.catalog.DeleteAllForCompany(r.Context(), actor, companyID, apiKey(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "catalog archived", result)
}

// Restore rebuilds an item from an archive record
// POST /api/companies/{id}/archive/{record}/restore
func (h *CatalogHandler) Restore(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	companyID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}
	recordID, err := pathID(r, "record")
	if err != nil {
		handleError(w, err)
		return
	}

	item, err := h.catalog.Restore(r.Context(), actor, companyID, apiKey(r), recordID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "catalog item restored", item)
}

// ListArchive retrieves the company's archive records
// GET /api/companies/{id}/archive
func (h *CatalogHandler) ListArchive(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	companyID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	records, err := h.catalog.ListArchive(r.Context(), actor, companyID, apiKey(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "OK", records)
}
