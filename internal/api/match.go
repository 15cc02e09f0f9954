package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/qween-code/barter-qween/internal/matching"
	"github.com/qween-code/barter-qween/internal/types"
)

const matchFailedMsg = "Failed to calculate barter match"

// MatchRequest is the body of POST /api/v1/barter/match.
type MatchRequest struct {
	OfferedItemID   string `json:"offeredItemId"`
	RequestedItemID string `json:"requestedItemId"`
}

// MatchHandler handles POST /api/v1/barter/match.
type MatchHandler struct {
	logger *zap.Logger
	items  types.ItemStore
	scorer *matching.Scorer
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(items types.ItemStore, scorer *matching.Scorer, logger *zap.Logger) *MatchHandler {
	return &MatchHandler{
		logger: logger.Named("match"),
		items:  items,
		scorer: scorer,
	}
}

// ServeHTTP implements http.Handler.
func (h *MatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OfferedItemID == "" || req.RequestedItemID == "" {
		jsonError(w, http.StatusBadRequest, "Both offeredItemId and requestedItemId are required")
		return
	}
	if req.OfferedItemID == req.RequestedItemID {
		jsonError(w, http.StatusBadRequest, "Cannot match the same item")
		return
	}

	offered, err := h.items.GetItem(r.Context(), req.OfferedItemID)
	if err != nil {
		h.itemError(w, err)
		return
	}
	requested, err := h.items.GetItem(r.Context(), req.RequestedItemID)
	if err != nil {
		h.itemError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, h.scorer.Score(offered, requested))
}

func (h *MatchHandler) itemError(w http.ResponseWriter, err error) {
	if errors.Is(err, types.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "One or both items not found")
		return
	}
	h.logger.Error("Error calculating barter match", zap.Error(err))
	jsonError(w, http.StatusInternalServerError, matchFailedMsg)
}
