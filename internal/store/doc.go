// Package store provides a concurrent-safe in-memory implementation of the
// collaborators the matching and notifier packages consume.
//
// # Contract
//
// Memory implements types.ItemStore, types.ConversationStore and
// types.UserTokenStore. Lookups of missing items, conversations or trade
// offers return errors wrapping types.ErrNotFound.
//
// Mutations that matter to notifications fire the OnChange callback after the
// lock is released:
//
//	CreateMessage           -> ChangeMessageCreated   (Message set)
//	CreateTradeOffer        -> ChangeTradeOfferCreated (TradeOfferAfter set)
//	UpdateTradeOfferStatus  -> ChangeTradeOfferUpdated (Before and After set)
//
// UpdateTradeOfferStatus enforces the trade state machine
// (pending -> accepted|rejected|cancelled, accepted -> completed) and returns
// types.ErrInvalidTransition otherwise.
//
// Nothing is persisted. LoadSnapshot seeds the store from a YAML or JSON
// fixture for local runs and tests.
package store
