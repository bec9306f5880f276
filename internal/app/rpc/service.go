package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"opsbus/internal/domain"
	"opsbus/internal/domain/event"
)

// Service translates wire requests into Event Bus Service calls. It is
// transport-agnostic; the HTTP handlers and the NATS consumer both delegate
// here.
type Service struct {
	bus event.Service
	log *zap.Logger
}

func NewService(bus event.Service, log *zap.Logger) *Service {
	return &Service{bus: bus, log: log}
}

func (s *Service) PublishEvent(ctx context.Context, req PublishEventRequest) (PublishEventResponse, error) {
	eventType, err := EventTypeFromCode(req.EventType)
	if err != nil {
		return PublishEventResponse{}, err
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(req.PayloadJSON), &payload); err != nil {
		return PublishEventResponse{}, &domain.DomainError{
			Code:       domain.ErrorCodeInvalidPayload,
			Message:    "payload_json is not valid JSON",
			HTTPStatus: http.StatusBadRequest,
		}
	}

	// Malformed metadata is non-fatal: publish proceeds without it.
	var metadata map[string]any
	if req.MetadataJSON != "" {
		if err := json.Unmarshal([]byte(req.MetadataJSON), &metadata); err != nil {
			s.log.Warn("discarding malformed metadata_json",
				zap.String("event_type", eventType),
				zap.Error(err),
			)
			metadata = nil
		}
	}

	ev, err := s.bus.Publish(ctx, event.Draft{
		Type:           eventType,
		SourceSubgraph: req.SourceSubgraph,
		EntityType:     req.EntityType,
		EntityID:       req.EntityID,
		OrgID:          req.OrgID,
		ActorUserID:    req.ActorUserID,
		TargetUserIDs:  req.TargetUserIDs,
		Payload:        payload,
		Metadata:       metadata,
	})
	if err != nil {
		return PublishEventResponse{}, err
	}

	return PublishEventResponse{
		EventID:   ev.ID,
		Status:    StatusToCode(ev.Status),
		CreatedAt: ev.CreatedAt.Format(time.RFC3339Nano),
	}, nil
}

// PublishBulkEvents processes requests strictly sequentially to bound load.
// A failing item never aborts the batch.
func (s *Service) PublishBulkEvents(ctx context.Context, req PublishBulkEventsRequest) PublishBulkEventsResponse {
	resp := PublishBulkEventsResponse{
		Results: make([]PublishEventResult, 0, len(req.Events)),
	}

	for _, item := range req.Events {
		created, err := s.PublishEvent(ctx, item)
		if err != nil {
			resp.Results = append(resp.Results, PublishEventResult{
				EventID: "",
				Status:  StatusCodeFailed,
				Error:   err.Error(),
			})
			resp.FailedCount++
			continue
		}
		resp.Results = append(resp.Results, PublishEventResult{
			EventID:   created.EventID,
			Status:    created.Status,
			CreatedAt: created.CreatedAt,
		})
		resp.SuccessCount++
	}

	return resp
}

func (s *Service) GetEventStatus(ctx context.Context, eventID string) (GetEventStatusResponse, error) {
	ev, err := s.bus.Get(ctx, eventID)
	if err != nil {
		return GetEventStatusResponse{}, err
	}

	resp := GetEventStatusResponse{
		EventID: ev.ID,
		Status:  StatusToCode(ev.Status),
	}
	if ev.ProcessedAt != nil {
		resp.ProcessedAt = ev.ProcessedAt.Format(time.RFC3339Nano)
	}
	if errs := ev.ProcessingErrors(); len(errs) > 0 {
		resp.Error = errs[0]
	}
	return resp, nil
}
