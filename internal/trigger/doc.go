// Package trigger classifies raw store changes into notifier events and hands
// them to the dispatcher off the caller's goroutine.
//
// Classification mirrors what a document-store trigger observes:
//
//	message created        -> types.MessageCreated
//	trade offer created    -> types.TradeOfferCreated
//	trade offer updated    -> types.TradeOfferStatusChanged (needs both snapshots)
//
// The Router does not filter unchanged statuses; that rule belongs to the
// dispatcher. Events are queued in a bounded channel and drained by a fixed
// worker pool. When the queue is full the event is dropped and counted.
package trigger
