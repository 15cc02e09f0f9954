package trigger

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/qween-code/barter-qween/internal/store"
	"github.com/qween-code/barter-qween/internal/types"
)

var routedEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "barter_trigger_events_total",
		Help: "Store changes seen by the trigger router, by event kind and result.",
	},
	[]string{"event", "result"},
)

// Dispatcher is the consumer of classified events.
type Dispatcher interface {
	Dispatch(ctx context.Context, e types.Event)
}

// RouterOptions configures the Router.
type RouterOptions struct {
	Workers   int // default 4
	QueueSize int // default 1000
}

// DefaultRouterOptions returns sensible defaults.
func DefaultRouterOptions() RouterOptions {
	return RouterOptions{Workers: 4, QueueSize: 1000}
}

// Router receives store changes and dispatches the matching events asynchronously.
type Router struct {
	logger     *zap.Logger
	dispatcher Dispatcher
	workers    int
	queue      chan types.Event
	wg         sync.WaitGroup
}

// NewRouter creates a Router. Zero option values fall back to the defaults.
func NewRouter(d Dispatcher, logger *zap.Logger, opts RouterOptions) *Router {
	def := DefaultRouterOptions()
	if opts.Workers <= 0 {
		opts.Workers = def.Workers
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = def.QueueSize
	}
	return &Router{
		logger:     logger.Named("trigger"),
		dispatcher: d,
		workers:    opts.Workers,
		queue:      make(chan types.Event, opts.QueueSize),
	}
}

// Classify converts a store change into a notifier event. It returns false
// for changes that carry no notification-relevant data.
func Classify(c store.Change) (types.Event, bool) {
	switch c.Type {
	case store.ChangeMessageCreated:
		if c.Message == nil {
			return nil, false
		}
		return types.MessageCreated{
			ConversationID: c.Message.ConversationID,
			SenderID:       c.Message.SenderID,
			Text:           c.Message.Text,
		}, true

	case store.ChangeTradeOfferCreated:
		if c.TradeOfferAfter == nil {
			return nil, false
		}
		return types.TradeOfferCreated{
			TradeID:          c.TradeOfferAfter.ID,
			ToUserID:         c.TradeOfferAfter.ToUserID,
			OfferedItemTitle: c.TradeOfferAfter.OfferedItemTitle,
		}, true

	case store.ChangeTradeOfferUpdated:
		if c.TradeOfferBefore == nil || c.TradeOfferAfter == nil {
			return nil, false
		}
		return types.TradeOfferStatusChanged{
			TradeID:        c.TradeOfferAfter.ID,
			FromUserID:     c.TradeOfferAfter.FromUserID,
			ToUserID:       c.TradeOfferAfter.ToUserID,
			PreviousStatus: c.TradeOfferBefore.Status,
			NewStatus:      c.TradeOfferAfter.Status,
		}, true
	}
	return nil, false
}

// OnChange implements store.OnChangeFunc. It never blocks.
func (r *Router) OnChange(c store.Change) {
	e, ok := Classify(c)
	if !ok {
		routedEventsTotal.WithLabelValues(string(c.Type), "ignored").Inc()
		return
	}
	r.Enqueue(e)
}

// Enqueue queues an already-classified event. Returns false when the queue is full.
func (r *Router) Enqueue(e types.Event) bool {
	select {
	case r.queue <- e:
		routedEventsTotal.WithLabelValues(string(e.Kind()), "queued").Inc()
		return true
	default:
		routedEventsTotal.WithLabelValues(string(e.Kind()), "dropped").Inc()
		r.logger.Warn("Trigger queue full, dropping event", zap.String("event", string(e.Kind())))
		return false
	}
}

// Start launches the worker pool. Non-blocking.
func (r *Router) Start(ctx context.Context) {
	for range r.workers {
		r.wg.Add(1)
		go r.worker(ctx)
	}
	r.logger.Info("Trigger router started",
		zap.Int("workers", r.workers),
		zap.Int("queue_size", cap(r.queue)),
	)
}

// Wait blocks until every worker has drained the queue and exited.
// Call after the context passed to Start is cancelled.
func (r *Router) Wait() {
	r.wg.Wait()
}

// worker drains the queue. On context cancellation it dispatches what is
// still buffered before exiting.
func (r *Router) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case e := <-r.queue:
					r.dispatcher.Dispatch(context.WithoutCancel(ctx), e)
				default:
					return
				}
			}
		case e := <-r.queue:
			r.dispatcher.Dispatch(ctx, e)
		}
	}
}
