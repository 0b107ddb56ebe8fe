package repository

import (
	"context"

	"PairSignal/internal/domain/models"
	pkgkafka "PairSignal/pkg/kafka"
)

const (
	headerType     = "type"
	msgTypeSummary = "pair_summary"
	msgTypeEvent   = "pair_event"
)

// KafkaReportPublisher implements ReportPublisher for Kafka.
type KafkaReportPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaReportPublisher creates a Kafka publisher.
func NewKafkaReportPublisher(producer *pkgkafka.Producer, topic string) *KafkaReportPublisher {
	return &KafkaReportPublisher{producer: producer, topic: topic}
}

// PublishReport writes the summary followed by one message per event in a single batch.
// All messages share the pair key, so consumers see them in order on one partition.
func (p *KafkaReportPublisher) PublishReport(ctx context.Context, r *models.Report) error {
	if r == nil {
		return nil
	}
	key := []byte(r.Pair())
	msgs := make([]pkgkafka.Message, 0, len(r.Events)+1)
	msgs = append(msgs, pkgkafka.Message{
		Key:     key,
		Value:   r.ToSummaryDTO(),
		Headers: map[string]string{headerType: msgTypeSummary},
	})
	for _, e := range r.Events {
		dto := e.ToEventDTO()
		dto.SymbolA, dto.SymbolB = r.SymbolA, r.SymbolB
		msgs = append(msgs, pkgkafka.Message{
			Key:     key,
			Value:   dto,
			Headers: map[string]string{headerType: msgTypeEvent},
		})
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaReportPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
