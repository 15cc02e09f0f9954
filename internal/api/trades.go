package api

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/qween-code/barter-qween/internal/types"
)

// TradeStore is the mutation surface the trade endpoints need. Every
// successful call is expected to publish a change for the trigger layer.
type TradeStore interface {
	CreateMessage(ctx context.Context, conversationID, senderID, text string) (types.Message, error)
	CreateTradeOffer(ctx context.Context, offer types.TradeOffer) (types.TradeOffer, error)
	GetTradeOffer(ctx context.Context, id string) (types.TradeOffer, error)
	UpdateTradeOfferStatus(ctx context.Context, id string, status types.TradeStatus) (types.TradeOffer, error)
}

// CreateMessageRequest is the body of POST /api/v1/conversations/{id}/messages.
type CreateMessageRequest struct {
	Text string `json:"text"`
}

// CreateTradeOfferRequest is the body of POST /api/v1/trade-offers.
type CreateTradeOfferRequest struct {
	ToUserID         string   `json:"toUserId"`
	OfferedItemID    string   `json:"offeredItemId"`
	RequestedItemID  string   `json:"requestedItemId"`
	CashDifferential *float64 `json:"cashDifferential,omitempty"`
}

// UpdateStatusRequest is the body of PATCH /api/v1/trade-offers/{id}/status.
type UpdateStatusRequest struct {
	Status types.TradeStatus `json:"status"`
}

// TradesHandler serves the message and trade-offer endpoints. The caller
// identity always comes from the JWT, never from the body.
type TradesHandler struct {
	logger *zap.Logger
	store  TradeStore
}

// NewTradesHandler creates a new TradesHandler.
func NewTradesHandler(store TradeStore, logger *zap.Logger) *TradesHandler {
	return &TradesHandler{
		logger: logger.Named("trades"),
		store:  store,
	}
}

// CreateMessage handles POST /api/v1/conversations/{id}/messages.
func (h *TradesHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		jsonError(w, http.StatusBadRequest, "text is required")
		return
	}

	msg, err := h.store.CreateMessage(r.Context(), r.PathValue("id"), callerID(r), req.Text)
	if err != nil {
		writeDomainError(w, h.logger, err, "Failed to create message")
		return
	}
	jsonResponse(w, http.StatusCreated, msg)
}

// CreateTradeOffer handles POST /api/v1/trade-offers.
func (h *TradesHandler) CreateTradeOffer(w http.ResponseWriter, r *http.Request) {
	var req CreateTradeOfferRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	from := callerID(r)
	if req.ToUserID == "" || req.OfferedItemID == "" || req.RequestedItemID == "" {
		jsonError(w, http.StatusBadRequest, "toUserId, offeredItemId and requestedItemId are required")
		return
	}
	if req.ToUserID == from {
		jsonError(w, http.StatusBadRequest, "cannot make an offer to yourself")
		return
	}

	offer, err := h.store.CreateTradeOffer(r.Context(), types.TradeOffer{
		FromUserID:       from,
		ToUserID:         req.ToUserID,
		OfferedItemID:    req.OfferedItemID,
		RequestedItemID:  req.RequestedItemID,
		CashDifferential: req.CashDifferential,
	})
	if err != nil {
		writeDomainError(w, h.logger, err, "Failed to create trade offer")
		return
	}
	jsonResponse(w, http.StatusCreated, offer)
}

// UpdateStatus handles PATCH /api/v1/trade-offers/{id}/status. Only the two
// parties of an offer may change it.
func (h *TradesHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status == "" {
		jsonError(w, http.StatusBadRequest, "status is required")
		return
	}

	id := r.PathValue("id")
	current, err := h.store.GetTradeOffer(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.logger, err, "Failed to update trade offer")
		return
	}
	if caller := callerID(r); caller != current.FromUserID && caller != current.ToUserID {
		jsonError(w, http.StatusForbidden, "not a party to this trade offer")
		return
	}

	updated, err := h.store.UpdateTradeOfferStatus(r.Context(), id, req.Status)
	if err != nil {
		writeDomainError(w, h.logger, err, "Failed to update trade offer")
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}
