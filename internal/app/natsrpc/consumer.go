package natsrpc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"opsbus/internal/app/rpc"
)

// Subjects for the NATS request-reply ingestion surface. Bodies are the same
// JSON the HTTP RPC endpoints accept.
const (
	SubjectPublish     = "opsbus.publish"
	SubjectPublishBulk = "opsbus.publish.bulk"
	SubjectStatus      = "opsbus.status"
)

const requestTimeout = 30 * time.Second

type statusRequest struct {
	EventID string `json:"event_id"`
}

type errorReply struct {
	Error string `json:"error"`
}

// Consumer serves the ingestion RPC over NATS request-reply.
type Consumer struct {
	nc   *nats.Conn
	svc  *rpc.Service
	log  *zap.Logger
	subs []*nats.Subscription
}

func NewConsumer(url string, svc *rpc.Service, log *zap.Logger) (*Consumer, error) {
	nc, err := nats.Connect(url,
		nats.Name("opsbus"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}
	return &Consumer{nc: nc, svc: svc, log: log}, nil
}

func (c *Consumer) Start() error {
	handlers := map[string]nats.MsgHandler{
		SubjectPublish:     c.handlePublish,
		SubjectPublishBulk: c.handlePublishBulk,
		SubjectStatus:      c.handleStatus,
	}

	for subject, handler := range handlers {
		sub, err := c.nc.Subscribe(subject, handler)
		if err != nil {
			return err
		}
		c.subs = append(c.subs, sub)
	}

	c.log.Info("nats ingestion started", zap.String("server", c.nc.ConnectedUrl()))
	return nil
}

func (c *Consumer) handlePublish(m *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var req rpc.PublishEventRequest
	if err := json.Unmarshal(m.Data, &req); err != nil {
		c.reply(m, errorReply{Error: "invalid request JSON"})
		return
	}

	resp, err := c.svc.PublishEvent(ctx, req)
	if err != nil {
		c.reply(m, errorReply{Error: err.Error()})
		return
	}
	c.reply(m, resp)
}

func (c *Consumer) handlePublishBulk(m *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var req rpc.PublishBulkEventsRequest
	if err := json.Unmarshal(m.Data, &req); err != nil {
		c.reply(m, errorReply{Error: "invalid request JSON"})
		return
	}

	c.reply(m, c.svc.PublishBulkEvents(ctx, req))
}

func (c *Consumer) handleStatus(m *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var req statusRequest
	if err := json.Unmarshal(m.Data, &req); err != nil {
		c.reply(m, errorReply{Error: "invalid request JSON"})
		return
	}

	resp, err := c.svc.GetEventStatus(ctx, req.EventID)
	if err != nil {
		c.reply(m, errorReply{Error: err.Error()})
		return
	}
	c.reply(m, resp)
}

func (c *Consumer) reply(m *nats.Msg, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Error("marshal nats reply", zap.Error(err))
		return
	}
	if err := m.Respond(data); err != nil {
		c.log.Error("nats respond", zap.String("subject", m.Subject), zap.Error(err))
	}
}

func (c *Consumer) Close() {
	for _, sub := range c.subs {
		_ = sub.Unsubscribe()
	}
	if !c.nc.IsClosed() {
		_ = c.nc.Drain()
		c.nc.Close()
	}
}
