// Package notifier turns trade-relevant store changes into push notifications
// and fans them out to every device of every recipient.
//
// # Contract
//
// The Dispatcher:
//  1. Receives a types.Event from the trigger layer (MessageCreated,
//     TradeOfferCreated or TradeOfferStatusChanged)
//  2. Resolves the recipient set:
//     - MessageCreated:          conversation participants minus the sender
//     - TradeOfferCreated:       the receiving user
//     - TradeOfferStatusChanged: the offering user, else the receiving user;
//     nothing at all when the status did not change
//  3. Looks up device tokens for all recipients concurrently, each lookup
//     bounded by LookupTimeout, and unions them into one ordered set
//  4. Issues exactly one PushTransport.SendMulticast call for that set, or none
//     when the set is empty
//
// # Failure model
//
// Dispatch never returns an error and never panics. A failed or timed-out
// lookup counts as an empty result for that recipient only; a failed send is
// logged. Per-token failures reported by the transport are recorded in
// metrics and logs but not retried, and tokens are never pruned here.
//
// There is no deduplication. Delivering the same event twice sends twice.
//
// # Rendering
//
//	MessageCreated            "New message" / {text}                 type=new_message
//	TradeOfferCreated         "New trade offer" / {offeredItemTitle}  type=new_trade_offer
//	TradeOfferStatusChanged   per status, see statusMessages          type=trade_{status}
//
// An offer without a title falls back to "You received a trade offer".
//
// The data payload always carries "type" and "entityId" (conversation or trade ID).
//
// # Transports
//
// PushGateway POSTs multicast requests to an HTTP push gateway with retry and
// client-side rate limiting. LogTransport only logs and is meant for development.
package notifier
