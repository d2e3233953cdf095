package api

import (
	"log/slog"
	"net/http"

	"github.com/Amecrec/ADIA/internal/api/shared"
	"github.com/Amecrec/ADIA/internal/generation"
	"github.com/Amecrec/ADIA/internal/platform/logger"
	"github.com/Amecrec/ADIA/internal/service"
)

// GenerationHandler handles material generation HTTP requests. Generation
// and persistence are separate calls: Generate returns a transient bundle,
// SaveBundle commits one to the caller's library.
type GenerationHandler struct {
	orchestrator    *generation.Orchestrator
	materialService service.MaterialService
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(
	orchestrator *generation.Orchestrator,
	materialService service.MaterialService,
) *GenerationHandler {
	return &GenerationHandler{
		orchestrator:    orchestrator,
		materialService: materialService,
	}
}

// Generate handles POST /api/materials/generate requests.
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req GenerateMaterialRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	domainReq := req.toDomain()
	if err := generation.Validate(domainReq); err != nil {
		// The mapped message carries every collected rejection reason.
		HandleAPIError(w, r, err, "")
		return
	}

	bundle, err := h.orchestrator.Generate(r.Context(), domainReq)
	if err != nil {
		log.Warn("generation request failed",
			slog.String("user_id", userID.String()),
			slog.String("material_type", req.MaterialType),
			slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, bundleToResponse(bundle))
}

// SaveBundle handles POST /api/materials requests, committing a generated
// bundle to the caller's library.
func (h *GenerationHandler) SaveBundle(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req SaveBundleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Bundle == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Bundle is required")
		return
	}

	materials, err := h.materialService.SaveBundle(r.Context(), userID, req.Title, req.Bundle)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	response := make([]MaterialResponse, 0, len(materials))
	for _, m := range materials {
		response = append(response, materialToResponse(m))
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, response)
}
