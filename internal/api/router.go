// Package api is the HTTP request layer: it authenticates callers, validates
// identifiers and resolves items before handing them to the scorer, and it
// exposes the message and trade-offer mutations that drive notifications.
package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/qween-code/barter-qween/internal/matching"
	"github.com/qween-code/barter-qween/internal/types"
)

// RouterConfig holds the dependencies of the API router.
type RouterConfig struct {
	JWTSecret string
	Items     types.ItemStore
	Trades    TradeStore
	Scorer    *matching.Scorer
	Logger    *zap.Logger
}

// NewRouter creates the API router with all endpoints registered. Every
// route requires a valid bearer token.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	authMW := AuthMiddleware(cfg.JWTSecret)
	match := NewMatchHandler(cfg.Items, cfg.Scorer, cfg.Logger)
	trades := NewTradesHandler(cfg.Trades, cfg.Logger)

	mux.Handle("POST /api/v1/barter/match", authMW(match))
	mux.Handle("POST /api/v1/conversations/{id}/messages", authMW(http.HandlerFunc(trades.CreateMessage)))
	mux.Handle("POST /api/v1/trade-offers", authMW(http.HandlerFunc(trades.CreateTradeOffer)))
	mux.Handle("PATCH /api/v1/trade-offers/{id}/status", authMW(http.HandlerFunc(trades.UpdateStatus)))

	return LoggingMiddleware(cfg.Logger, mux)
}
