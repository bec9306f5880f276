package event

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"opsbus/internal/domain"
	"opsbus/internal/domain/subscription"
)

// Scheduler runs a task on a background worker. Submit reports whether the
// task was accepted; a rejected submit must never surface to a publisher.
type Scheduler interface {
	Submit(task func(ctx context.Context)) bool
}

type Service interface {
	// Publish durably records the event with status PENDING and schedules
	// asynchronous processing. It returns as soon as the row is written;
	// handler execution never delays the caller.
	Publish(ctx context.Context, d Draft) (Event, error)
	// Process runs the PENDING -> PROCESSING -> PROCESSED|FAILED state
	// machine for one event. Calling it on an already terminal event
	// re-runs all currently matching handlers; replay relies on that.
	Process(ctx context.Context, id string) error
	// Replay resets a terminal event to PENDING, clears processedAt and
	// schedules reprocessing.
	Replay(ctx context.Context, id string) (Event, error)
	Get(ctx context.Context, id string) (Event, error)
}

type service struct {
	uow            domain.UnitOfWork
	events         Repository
	subs           subscription.Repository
	registry       *Registry
	sched          Scheduler
	log            *zap.Logger
	handlerTimeout time.Duration
}

func NewService(
	uow domain.UnitOfWork,
	events Repository,
	subs subscription.Repository,
	registry *Registry,
	sched Scheduler,
	log *zap.Logger,
	handlerTimeout time.Duration,
) Service {
	return &service{
		uow:            uow,
		events:         events,
		subs:           subs,
		registry:       registry,
		sched:          sched,
		log:            log,
		handlerTimeout: handlerTimeout,
	}
}

func (s *service) Publish(ctx context.Context, d Draft) (Event, error) {
	if d.Type == "" {
		return Event{}, &domain.DomainError{
			Code:       domain.ErrorCodeValidation,
			Message:    "type is required",
			HTTPStatus: http.StatusBadRequest,
		}
	}
	if d.EntityType == "" || d.EntityID == "" {
		return Event{}, &domain.DomainError{
			Code:       domain.ErrorCodeValidation,
			Message:    "entity_type and entity_id are required",
			HTTPStatus: http.StatusBadRequest,
		}
	}

	ev := Event{
		ID:             uuid.NewString(),
		Type:           d.Type,
		SourceSubgraph: d.SourceSubgraph,
		EntityType:     d.EntityType,
		EntityID:       d.EntityID,
		OrgID:          d.OrgID,
		ActorUserID:    d.ActorUserID,
		TargetUserIDs:  append([]string(nil), d.TargetUserIDs...),
		Payload:        d.Payload,
		Metadata:       d.Metadata,
		Status:         StatusPending,
		CreatedAt:      time.Now().UTC(),
	}

	var created Event
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		res, err := s.events.Create(ctx, ev)
		if err != nil {
			return err
		}
		created = res
		return nil
	})
	if err != nil {
		return Event{}, err
	}

	s.schedule(created.ID)

	return created, nil
}

// schedule hands the event id to the worker pool. The event is already
// durable, so a failed submit is logged and left for replay.
func (s *service) schedule(id string) {
	accepted := s.sched.Submit(func(ctx context.Context) {
		if err := s.Process(ctx, id); err != nil {
			s.log.Error("event processing failed",
				zap.String("event_id", id),
				zap.Error(err),
			)
		}
	})
	if !accepted {
		s.log.Warn("event processing not scheduled, awaiting replay",
			zap.String("event_id", id),
		)
	}
}

func (s *service) Process(ctx context.Context, id string) error {
	if err := s.process(ctx, id); err != nil {
		s.forceFailed(ctx, id, err)
		return err
	}
	return nil
}

func (s *service) process(ctx context.Context, id string) error {
	if err := s.events.MarkProcessing(ctx, id); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	// Re-read after the transition so dispatch acts on the stored state,
	// not on whatever the caller had in memory.
	ev, err := s.events.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load event: %w", err)
	}

	subs, err := s.subs.ListActiveByEventType(ctx, ev.Type)
	if err != nil {
		return fmt.Errorf("load subscriptions: %w", err)
	}

	if len(subs) == 0 {
		s.log.Warn("no active subscriptions for event type",
			zap.String("event_id", ev.ID),
			zap.String("event_type", ev.Type),
		)
	}

	failures := s.dispatchAll(ctx, subs, ev)

	if len(failures) > 0 {
		err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
			_, err := s.events.MarkFailed(ctx, id, failures)
			return err
		})
		if err != nil {
			return fmt.Errorf("mark failed: %w", err)
		}
		s.log.Info("event processed with failures",
			zap.String("event_id", ev.ID),
			zap.Int("subscriptions", len(subs)),
			zap.Int("failed", len(failures)),
		)
		return nil
	}

	if _, err := s.events.MarkProcessed(ctx, id); err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}
	s.log.Info("event processed",
		zap.String("event_id", ev.ID),
		zap.String("event_type", ev.Type),
		zap.Int("subscriptions", len(subs)),
	)
	return nil
}

// dispatchAll invokes every matched subscription concurrently and waits for
// all of them to settle. One slow or failing handler never prevents the
// others from running or being recorded.
func (s *service) dispatchAll(ctx context.Context, subs []subscription.Subscription, ev Event) []string {
	results := make([]error, len(subs))

	var wg sync.WaitGroup
	for i := range subs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.dispatch(ctx, subs[i], ev)
		}(i)
	}
	wg.Wait()

	var failures []string
	for i, err := range results {
		if err == nil {
			continue
		}
		s.log.Warn("dispatch failed",
			zap.String("event_id", ev.ID),
			zap.String("handler_type", subs[i].HandlerType),
			zap.Error(err),
		)
		failures = append(failures, err.Error())
	}
	return failures
}

// dispatch runs one handler invocation under the handler timeout. The
// handler runs in its own goroutine so that an implementation ignoring its
// context cannot block the settle-all barrier.
func (s *service) dispatch(ctx context.Context, sub subscription.Subscription, ev Event) error {
	hctx, cancel := context.WithTimeout(ctx, s.handlerTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("handler %s panicked: %v", sub.HandlerType, r)
			}
		}()
		done <- s.routeToHandler(hctx, sub, ev)
	}()

	select {
	case err := <-done:
		return err
	case <-hctx.Done():
		return fmt.Errorf("handler %s: %v", sub.HandlerType, hctx.Err())
	}
}

// routeToHandler resolves the subscription's handler type in the registry.
// A missing handler is a warning, not a failure: subscriptions may be
// registered ahead of handler deployment.
func (s *service) routeToHandler(ctx context.Context, sub subscription.Subscription, ev Event) error {
	h, ok := s.registry.Get(sub.HandlerType)
	if !ok {
		s.log.Warn("no handler registered for subscription",
			zap.String("subscription_id", sub.ID),
			zap.String("handler_type", sub.HandlerType),
		)
		return nil
	}
	return h.Handle(ctx, ev)
}

// forceFailed is the top-level catch for errors outside the per-handler
// isolation boundary. Best effort: if the store itself is down this will
// fail too, and the event stays in whatever state the store last saw.
func (s *service) forceFailed(ctx context.Context, id string, cause error) {
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.events.MarkFailed(ctx, id, []string{cause.Error()})
		return err
	})
	if err != nil {
		s.log.Error("could not force event to FAILED",
			zap.String("event_id", id),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
	}
}

func (s *service) Replay(ctx context.Context, id string) (Event, error) {
	var ev Event
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		res, err := s.events.ResetForReplay(ctx, id)
		if err != nil {
			return err
		}
		ev = res
		return nil
	})
	if err != nil {
		return Event{}, err
	}

	s.schedule(ev.ID)

	return ev, nil
}

func (s *service) Get(ctx context.Context, id string) (Event, error) {
	return s.events.GetByID(ctx, id)
}
