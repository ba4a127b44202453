package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Publisher sends domain events to RabbitMQ. It dials per publish so a
// broker outage never blocks startup; errors are logged and returned so the
// caller can choose to ignore them.
type Publisher struct {
	url string
	log *logrus.Entry
}

func NewPublisher(url string) *Publisher {
	if url == "" {
		url = DefaultURL
	}
	return &Publisher{url: url, log: logrus.WithField("component", "queue.publisher")}
}

// PublishTicketBooked publishes ev to the ticket.booked queue as a
// persistent message.
func (p *Publisher) PublishTicketBooked(ctx context.Context, ev TicketBookedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.WithError(err).Warn("dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.WithError(err).Warn("channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(TicketBookedQueue, true, false, false, false, nil); err != nil {
		p.log.WithError(err).Warn("queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", TicketBookedQueue, false, false, pub); err != nil {
		p.log.WithError(err).WithField("ticket_id", ev.TicketID).Warn("publish failed")
		return err
	}
	return nil
}
