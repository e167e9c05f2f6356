package publisher

import (
	"context"
	"encoding/json"

	"github.com/twmb/franz-go/pkg/kgo"

	"attestguard/pkg/serviceerror"
)

const serviceName = "Kafka"

// KafkaPublisher produces case-opened events to a single topic, keyed by
// case ID so replays of one case stay in partition order.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafka connects to the given brokers.
func NewKafka(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, serviceerror.Configuration(serviceName, "no brokers configured")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, serviceerror.Classify(serviceName, err)
	}
	return &KafkaPublisher{client: client, topic: topic}, nil
}

func (p *KafkaPublisher) PublishCaseOpened(ctx context.Context, event CaseOpened) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return serviceerror.Call(serviceName, err)
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.CaseID),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return serviceerror.Classify(serviceName, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() {
	p.client.Close()
}
