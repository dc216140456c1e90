package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/helpdesk-demo/ticket-service/internal/model"
)

// TicketEventProducer is what the lifecycle engine emits through; a mock
// stands in during tests.
type TicketEventProducer interface {
	ProduceTicketEvent(ctx context.Context, event string, t model.Ticket)
}

// Producer writes ticket events to a Kafka topic. Best effort: failures are
// logged and never surface to the API caller.
type Producer struct {
	writer *kafka.Writer
	topic  string
	log    *zap.Logger
}

// NewProducer returns a producer. With no brokers or an empty topic every
// method is a no-op, so local runs need no Kafka at all.
func NewProducer(brokers []string, topic string, log *zap.Logger) *Producer {
	if len(brokers) == 0 || topic == "" {
		return &Producer{log: log}
	}
	return &Producer{
		topic: topic,
		log:   log,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

type ticketEvent struct {
	Event        string `json:"event"`
	TicketID     int64  `json:"ticket_id"`
	UserID       int64  `json:"user_id"`
	Status       string `json:"status"`
	ServiceReply string `json:"service_reply"`
}

// ProduceTicketEvent sends one event ("ticket.created" or "ticket.updated")
// for the given ticket.
func (p *Producer) ProduceTicketEvent(ctx context.Context, event string, t model.Ticket) {
	if p.writer == nil {
		return
	}
	body, err := json.Marshal(ticketEvent{
		Event:        event,
		TicketID:     t.ID,
		UserID:       t.UserID,
		Status:       string(t.Status),
		ServiceReply: t.ServiceReply,
	})
	if err != nil {
		p.log.Warn("kafka: marshal ticket event", zap.Error(err))
		return
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Value: body}); err != nil {
		p.log.Warn("kafka: write ticket event", zap.String("event", event), zap.Error(err))
	}
}

// Close closes the underlying writer.
func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// ParseBrokers splits "host1:9092,host2:9092" into a slice.
func ParseBrokers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
