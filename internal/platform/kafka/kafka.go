// Package kafka holds the shared segmentio/kafka-go wiring.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

var ErrDisabled = errors.New("kafka disabled")

// Client carries the broker list parsed from a comma separated value.
type Client struct {
	Brokers []string
}

func NewClient(brokersCSV string) *Client {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return &Client{Brokers: brokers}
}

func (c *Client) Enabled() bool {
	return c != nil && len(c.Brokers) > 0
}

// NewWriter returns a writer that hashes keys so messages for one key keep
// their order.
func (c *Client) NewWriter(topic string) (*kafka.Writer, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(c.Brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}, nil
}

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// JSONMessage encodes payload as a keyed message.
func JSONMessage(key string, payload any, at time.Time) (kafka.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{Key: []byte(key), Value: data, Time: at.UTC()}, nil
}

func PublishJSON(ctx context.Context, writer MessageWriter, key string, payload any) error {
	msg, err := JSONMessage(key, payload, time.Now())
	if err != nil {
		return err
	}
	return writer.WriteMessages(ctx, msg)
}
