package subscription

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"opsbus/internal/domain"
)

type Service interface {
	Create(ctx context.Context, s Subscription) (Subscription, error)
	Update(ctx context.Context, s Subscription) (Subscription, error)
	SetActive(ctx context.Context, id string, isActive bool) (Subscription, error)
	Get(ctx context.Context, id string) (Subscription, error)
	List(ctx context.Context) ([]Subscription, error)
}

type service struct {
	uow  domain.UnitOfWork
	subs Repository
}

func NewService(uow domain.UnitOfWork, subs Repository) Service {
	return &service{uow: uow, subs: subs}
}

func (s *service) Create(ctx context.Context, sub Subscription) (Subscription, error) {
	if err := validate(sub); err != nil {
		return Subscription{}, err
	}

	var res Subscription
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if sub.ID == "" {
			sub.ID = uuid.NewString()
		}
		created, err := s.subs.Create(ctx, sub)
		if err != nil {
			return err
		}
		res = created
		return nil
	})
	return res, err
}

func (s *service) Update(ctx context.Context, sub Subscription) (Subscription, error) {
	if err := validate(sub); err != nil {
		return Subscription{}, err
	}

	var res Subscription
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.subs.GetByID(ctx, sub.ID); err != nil {
			return err
		}
		updated, err := s.subs.Update(ctx, sub)
		if err != nil {
			return err
		}
		res = updated
		return nil
	})
	return res, err
}

func (s *service) SetActive(ctx context.Context, id string, isActive bool) (Subscription, error) {
	return s.subs.SetActive(ctx, id, isActive)
}

func (s *service) Get(ctx context.Context, id string) (Subscription, error) {
	return s.subs.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Subscription, error) {
	return s.subs.List(ctx)
}

func validate(sub Subscription) error {
	if strings.TrimSpace(sub.HandlerType) == "" {
		return &domain.DomainError{
			Code:       domain.ErrorCodeValidation,
			Message:    "handler_type is required",
			HTTPStatus: http.StatusBadRequest,
		}
	}
	if len(sub.EventTypes) == 0 {
		return &domain.DomainError{
			Code:       domain.ErrorCodeValidation,
			Message:    "event_types must not be empty",
			HTTPStatus: http.StatusBadRequest,
		}
	}
	return nil
}
