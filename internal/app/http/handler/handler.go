package handler

import (
	"go.uber.org/zap"

	"opsbus/internal/app/rpc"
	"opsbus/internal/domain/event"
	"opsbus/internal/domain/stats"
	"opsbus/internal/domain/subscription"
)

type Handler struct {
	Bus      event.Service
	RPC      *rpc.Service
	SubSvc   subscription.Service
	StatsSvc stats.Service
	Log      *zap.Logger
}

func New(
	bus event.Service,
	rpcSvc *rpc.Service,
	subSvc subscription.Service,
	statsSvc stats.Service,
	log *zap.Logger,
) *Handler {
	return &Handler{
		Bus:      bus,
		RPC:      rpcSvc,
		SubSvc:   subSvc,
		StatsSvc: statsSvc,
		Log:      log,
	}
}
