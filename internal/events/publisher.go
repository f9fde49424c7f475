package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"medical-agenda/internal/model"
	"medical-agenda/internal/service"
)

// RoutingKey is the topic under which appointment events are published.
func RoutingKey(kind service.EventKind) string {
	return "citas.appointment." + string(kind)
}

type Message struct {
	ID         string    `json:"eventoId"`
	Event      string    `json:"evento"`
	OccurredAt time.Time `json:"timestamp"`
	CitaID     int64     `json:"citaId"`
	Date       string    `json:"fecha"`
	Time       string    `json:"hora"`
	Status     string    `json:"estado"`
	PatientID  int64     `json:"pacienteId"`
	DoctorID   int64     `json:"medicoId"`
}

func NewMessage(ev service.AppointmentEvent) Message {
	a := ev.Appointment
	return Message{
		ID:         uuid.NewString(),
		Event:      string(ev.Kind),
		OccurredAt: ev.At.UTC(),
		CitaID:     a.ID,
		Date:       a.Date.Format(model.DateLayout),
		Time:       model.FormatClock(a.Time),
		Status:     string(a.Status),
		PatientID:  a.PatientID,
		DoctorID:   a.DoctorID,
	}
}

// Publisher sends appointment events to a topic exchange.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *slog.Logger
}

func Dial(url, exchange string, log *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Error("rabbitmq.connect.failed", "error", err.Error())
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		log.Error("rabbitmq.channel.failed", "error", err.Error())
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange %q: %w", exchange, err)
	}
	log.Info("rabbitmq.connected", "exchange", exchange)
	return &Publisher{conn: conn, channel: ch, exchange: exchange, log: log}, nil
}

func (p *Publisher) PublishAppointment(ctx context.Context, ev service.AppointmentEvent) error {
	msg := NewMessage(ev)
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(ctx, p.exchange, RoutingKey(ev.Kind), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Timestamp:    ev.At,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", RoutingKey(ev.Kind), err)
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
