// Package rabbitmq publishes wallet domain events to a topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const dialTimeout = 10 * time.Second

// channel is the subset of *amqp.Channel the producer needs.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// EventProducer publishes JSON events on a durable topic exchange.
type EventProducer struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  channel
	exchange string
	declared bool
	log      zerolog.Logger
}

// NewEventProducer dials the broker and opens a channel.
func NewEventProducer(amqpURL, exchange string, log zerolog.Logger) (*EventProducer, error) {
	cleanURL, err := SanitizeURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp.DialConfig(cleanURL, amqp.Config{Dial: amqp.DefaultDial(dialTimeout)})
	if err != nil {
		return nil, fmt.Errorf("dialing amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening amqp channel: %w", err)
	}

	return &EventProducer{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		log:      log.With().Str("component", "rabbitmq_producer").Logger(),
	}, nil
}

// Publish marshals payload and sends it with the given routing key.
func (p *EventProducer) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding event %s: %w", routingKey, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.declared {
		if err := p.declare(); err != nil {
			return err
		}
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.declared = false
		return fmt.Errorf("publishing event %s: %w", routingKey, err)
	}

	p.log.Debug().Str("exchange", p.exchange).Str("routing_key", routingKey).Msg("event published")
	return nil
}

func (p *EventProducer) declare() error {
	err := p.channel.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil)
	if err != nil && p.conn != nil {
		p.log.Warn().Err(err).Str("exchange", p.exchange).Msg("exchange declare failed; reopening channel")
		ch, chErr := p.conn.Channel()
		if chErr != nil {
			return fmt.Errorf("reopening amqp channel: %w", chErr)
		}
		p.channel = ch
		err = p.channel.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil)
	}
	if err != nil {
		return fmt.Errorf("declaring exchange %s: %w", p.exchange, err)
	}
	p.declared = true
	return nil
}

// Close releases the channel and connection.
func (p *EventProducer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// Fallback drops events when the broker was unavailable at startup.
type Fallback struct {
	log zerolog.Logger
}

func NewFallback(log zerolog.Logger) *Fallback {
	return &Fallback{log: log.With().Str("component", "rabbitmq_producer").Str("mode", "fallback").Logger()}
}

func (f *Fallback) Publish(_ context.Context, routingKey string, _ any) error {
	f.log.Debug().Str("routing_key", routingKey).Msg("publish skipped")
	return nil
}

func (f *Fallback) Close() {}

// SanitizeURL strips quoting and stray prefixes and checks the scheme.
func SanitizeURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	if idx := strings.Index(strings.ToLower(clean), "amqp"); idx > 0 {
		clean = clean[idx:]
	}
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}
