// Package kafka publishes conversions to a topic for an out-of-process
// forwarder.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/ports"
	platformkafka "github.com/Apurer/go-gin-shop-api/internal/platform/kafka"
)

const EventConversionRecorded = "conversion.recorded"

// ConversionMessage is the JSON value written to the topic.
type ConversionMessage struct {
	Event       string    `json:"event"`
	OrderID     string    `json:"orderId"`
	VisitorCode string    `json:"visitorCode"`
	GoalID      int64     `json:"goalId"`
	Revenue     string    `json:"revenue"`
	OccurredAt  time.Time `json:"occurredAt"`
}

var _ ports.Reporter = (*Reporter)(nil)

type Reporter struct {
	writer platformkafka.MessageWriter
}

func NewReporter(writer platformkafka.MessageWriter) (*Reporter, error) {
	if writer == nil {
		return nil, errors.New("kafka writer is nil")
	}
	return &Reporter{writer: writer}, nil
}

func (r *Reporter) Report(ctx context.Context, conversion domain.Conversion) error {
	msg, err := Message(conversion)
	if err != nil {
		return err
	}
	if err := r.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish conversion %s: %w", conversion.OrderID, err)
	}
	return nil
}

// Message builds the keyed record for a conversion. The order id is the key.
func Message(conversion domain.Conversion) (kafkago.Message, error) {
	if err := conversion.Validate(); err != nil {
		return kafkago.Message{}, err
	}
	occurred := conversion.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	return platformkafka.JSONMessage(conversion.OrderID, ConversionMessage{
		Event:       EventConversionRecorded,
		OrderID:     conversion.OrderID,
		VisitorCode: conversion.VisitorCode,
		GoalID:      conversion.GoalID,
		Revenue:     conversion.Revenue.StringFixed(2),
		OccurredAt:  occurred.UTC(),
	}, occurred)
}
