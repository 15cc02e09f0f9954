package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qween-code/barter-qween/internal/types"
)

// DispatcherOptions configures the Dispatcher behavior.
type DispatcherOptions struct {
	LookupTimeout time.Duration // per conversation/token lookup, default 5s
	SendTimeout   time.Duration // for the single multicast send, default 15s
}

// DefaultDispatcherOptions returns sensible defaults.
func DefaultDispatcherOptions() DispatcherOptions {
	return DispatcherOptions{
		LookupTimeout: 5 * time.Second,
		SendTimeout:   15 * time.Second,
	}
}

// Skip reasons recorded when a dispatch ends without a send.
const (
	skipNoTransition     = "no_transition"
	skipMissingID        = "missing_identifier"
	skipConversationLost = "conversation_unresolved"
	skipNoRecipients     = "no_recipients"
	skipNoTokens         = "no_tokens"
	skipUnsupported      = "unsupported_event"
)

// Dispatcher resolves recipients for store-change events and sends push notifications.
type Dispatcher struct {
	logger        *zap.Logger
	conversations types.ConversationStore
	tokens        types.UserTokenStore
	transport     types.PushTransport
	opts          DispatcherOptions
}

// NewDispatcher creates a new Dispatcher. Zero option values fall back to the defaults.
func NewDispatcher(conversations types.ConversationStore, tokens types.UserTokenStore, transport types.PushTransport, logger *zap.Logger, opts DispatcherOptions) *Dispatcher {
	def := DefaultDispatcherOptions()
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = def.LookupTimeout
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = def.SendTimeout
	}
	return &Dispatcher{
		logger:        logger.Named("dispatcher"),
		conversations: conversations,
		tokens:        tokens,
		transport:     transport,
		opts:          opts,
	}
}

// delivery is what resolve hands to the later stages.
type delivery struct {
	recipients []string
	message    Message
}

// outcome accumulates what each pipeline stage did for one event.
type outcome struct {
	event          string
	skip           string
	recipients     int
	tokens         int
	lookupFailures int
	result         types.MulticastResult
	sent           bool
	err            error
}

// Dispatch processes one event to completion. It never fails visibly: every
// error is logged and the event degrades to a reduced or empty fan-out.
// Cancelling ctx after Dispatch starts does not abort it.
func (d *Dispatcher) Dispatch(ctx context.Context, e types.Event) {
	d.dispatch(ctx, e)
}

func (d *Dispatcher) dispatch(ctx context.Context, e types.Event) (out outcome) {
	ctx = context.WithoutCancel(ctx)
	logger := d.logger.With(zap.String("dispatch_id", uuid.NewString()))

	defer func() {
		if r := recover(); r != nil {
			out.err = fmt.Errorf("dispatch panic: %v", r)
		}
		d.record(logger, out)
	}()

	if e == nil {
		out.event = "unknown"
		out.skip = skipUnsupported
		return out
	}
	out.event = string(e.Kind())

	plan, skip, err := d.resolve(ctx, e)
	if skip != "" || err != nil {
		out.skip, out.err = skip, err
		return out
	}
	out.recipients = len(plan.recipients)

	tokens, failures := d.collectTokens(ctx, logger, plan.recipients)
	out.tokens, out.lookupFailures = len(tokens), failures
	if len(tokens) == 0 {
		out.skip = skipNoTokens
		return out
	}

	out.result, out.err = d.send(ctx, tokens, plan.message)
	out.sent = out.err == nil
	return out
}

// resolve applies the recipient policy for the event variant and renders its message.
func (d *Dispatcher) resolve(ctx context.Context, e types.Event) (delivery, string, error) {
	var recipients []string

	switch ev := e.(type) {
	case types.MessageCreated:
		if ev.ConversationID == "" || ev.SenderID == "" {
			return delivery{}, skipMissingID, nil
		}
		participants, err := callWithTimeout(ctx, d.opts.LookupTimeout, func(ctx context.Context) ([]string, error) {
			return d.conversations.Participants(ctx, ev.ConversationID)
		})
		if errors.Is(err, types.ErrNotFound) {
			return delivery{}, skipConversationLost, nil
		}
		if err != nil {
			lookupFailuresTotal.WithLabelValues("conversation").Inc()
			return delivery{}, skipConversationLost, fmt.Errorf("resolving conversation %q: %w", ev.ConversationID, err)
		}
		recipients = uniqueExcept(participants, ev.SenderID)

	case types.TradeOfferCreated:
		if ev.ToUserID == "" {
			return delivery{}, skipMissingID, nil
		}
		recipients = []string{ev.ToUserID}

	case types.TradeOfferStatusChanged:
		if ev.PreviousStatus == ev.NewStatus {
			return delivery{}, skipNoTransition, nil
		}
		// Placeholder heuristic carried over from the product: the offering
		// user is told about every status change, even ones they caused.
		switch {
		case ev.FromUserID != "":
			recipients = []string{ev.FromUserID}
		case ev.ToUserID != "":
			recipients = []string{ev.ToUserID}
		default:
			return delivery{}, skipMissingID, nil
		}

	default:
		return delivery{}, skipUnsupported, nil
	}

	if len(recipients) == 0 {
		return delivery{}, skipNoRecipients, nil
	}

	msg, err := BuildMessage(e)
	if err != nil {
		return delivery{}, skipUnsupported, err
	}
	return delivery{recipients: recipients, message: msg}, "", nil
}

// collectTokens looks up device tokens for every recipient in parallel and
// returns their ordered union along with the number of failed lookups.
func (d *Dispatcher) collectTokens(ctx context.Context, logger *zap.Logger, recipients []string) ([]types.DeviceToken, int) {
	perUser := make([][]types.DeviceToken, len(recipients))
	errs := make([]error, len(recipients))

	var wg sync.WaitGroup
	for i, userID := range recipients {
		wg.Add(1)
		go func() {
			defer wg.Done()
			perUser[i], errs[i] = callWithTimeout(ctx, d.opts.LookupTimeout, func(ctx context.Context) ([]types.DeviceToken, error) {
				return d.tokens.Tokens(ctx, userID)
			})
		}()
	}
	wg.Wait()

	failures := 0
	seen := make(map[types.DeviceToken]struct{})
	var tokens []types.DeviceToken
	for i, userTokens := range perUser {
		if errs[i] != nil {
			failures++
			lookupFailuresTotal.WithLabelValues("tokens").Inc()
			logger.Error("Token lookup failed",
				zap.String("user_id", recipients[i]),
				zap.Error(errs[i]),
			)
			continue
		}
		for _, tok := range userTokens {
			if tok == "" {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			tokens = append(tokens, tok)
		}
	}
	return tokens, failures
}

// send issues the single multicast call for this event.
func (d *Dispatcher) send(ctx context.Context, tokens []types.DeviceToken, msg Message) (types.MulticastResult, error) {
	res, err := callWithTimeout(ctx, d.opts.SendTimeout, func(ctx context.Context) (types.MulticastResult, error) {
		return d.transport.SendMulticast(ctx, tokens, msg.Notification, msg.Data)
	})
	if err != nil {
		return types.MulticastResult{}, fmt.Errorf("sending multicast to %d tokens: %w", len(tokens), err)
	}
	pushTokensTotal.WithLabelValues("success").Add(float64(res.SuccessCount))
	pushTokensTotal.WithLabelValues("failure").Add(float64(res.FailureCount))
	return res, nil
}

// record turns the outcome into one structured log line and a metric.
func (d *Dispatcher) record(logger *zap.Logger, out outcome) {
	fields := []zap.Field{
		zap.String("event", out.event),
		zap.Int("recipients", out.recipients),
		zap.Int("tokens", out.tokens),
		zap.Int("lookup_failures", out.lookupFailures),
	}

	switch {
	case out.err != nil:
		dispatchTotal.WithLabelValues(out.event, "failed").Inc()
		logger.Error("Dispatch failed", append(fields, zap.String("reason", out.skip), zap.Error(out.err))...)
	case out.sent:
		dispatchTotal.WithLabelValues(out.event, "sent").Inc()
		logger.Info("Dispatched notification", append(fields,
			zap.Int("success_count", out.result.SuccessCount),
			zap.Int("failure_count", out.result.FailureCount),
		)...)
	default:
		dispatchTotal.WithLabelValues(out.event, "skipped").Inc()
		logger.Debug("Dispatch skipped", append(fields, zap.String("reason", out.skip))...)
	}
}

// callWithTimeout runs fn with a bounded context. A timeout or panic is
// reported as ErrCollaboratorUnavailable; fn may keep running in the
// background if it ignores its context.
func callWithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		val T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- result{err: fmt.Errorf("%w: panic: %v", types.ErrCollaboratorUnavailable, r)}
			}
		}()
		v, err := fn(ctx)
		ch <- result{val: v, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil && !errors.Is(r.err, types.ErrCollaboratorUnavailable) && !errors.Is(r.err, types.ErrNotFound) {
			r.err = fmt.Errorf("%w: %w", types.ErrCollaboratorUnavailable, r.err)
		}
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("%w: %w", types.ErrCollaboratorUnavailable, ctx.Err())
	}
}

// uniqueExcept returns ids in order without duplicates, empty values, or exclude.
func uniqueExcept(ids []string, exclude string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || id == exclude {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
