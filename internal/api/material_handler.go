package api

import (
	"net/http"

	"github.com/Amecrec/ADIA/internal/api/shared"
	"github.com/Amecrec/ADIA/internal/service"
)

// MaterialHandler handles library material HTTP requests. Every operation
// is scoped to the authenticated owner; a material belonging to someone
// else is indistinguishable from one that does not exist.
type MaterialHandler struct {
	materialService service.MaterialService
	queryService    *service.QueryService
}

// NewMaterialHandler creates a new MaterialHandler.
func NewMaterialHandler(
	materialService service.MaterialService,
	queryService *service.QueryService,
) *MaterialHandler {
	return &MaterialHandler{
		materialService: materialService,
		queryService:    queryService,
	}
}

// ListMaterials handles GET /api/materials requests. The optional "filter"
// query parameter restricts the listing to one material type; unknown
// values fall back to listing everything. Bodies are omitted from the
// listing.
func (h *MaterialHandler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = service.FilterAll
	}

	materials, err := h.queryService.Query(r.Context(), userID, filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list materials")
		return
	}

	summaries := make([]MaterialSummaryResponse, 0, len(materials))
	for _, m := range materials {
		summaries = append(summaries, materialToSummary(m))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summaries)
}

// GetMaterial handles GET /api/materials/{id} requests, returning the full
// material including its body.
func (h *MaterialHandler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	userID, materialID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	material, err := h.materialService.GetMaterial(r.Context(), userID, materialID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, materialToResponse(material))
}

// UpdateMaterial handles PUT /api/materials/{id} requests, replacing the
// material's body. Concurrent edits follow last-write-wins.
func (h *MaterialHandler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	userID, materialID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	var req UpdateMaterialRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	material, err := h.materialService.UpdateMaterialBody(r.Context(), userID, materialID, req.Body)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, materialToResponse(material))
}

// DeleteMaterial handles DELETE /api/materials/{id} requests.
func (h *MaterialHandler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	userID, materialID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	if err := h.materialService.DeleteMaterial(r.Context(), userID, materialID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
