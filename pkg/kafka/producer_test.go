package kafka

import (
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBrokers(t *testing.T) {
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, ParseBrokers(" kafka-1:9092, ,kafka-2:9092 "))
	assert.Nil(t, ParseBrokers(""))
}

func TestNewProducer_PlainConnection(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)
	assert.Nil(t, p.transport)
	assert.Empty(t, p.writers)
}

func TestNewProducer_SASL(t *testing.T) {
	p, err := NewProducer(Config{
		Brokers:       []string{"localhost:9092"},
		TLS:           true,
		SASLEnabled:   true,
		SASLMechanism: "SCRAM-SHA-512",
		SASLUsername:  "risk",
		SASLPassword:  "secret",
	})
	require.NoError(t, err)
	require.NotNil(t, p.transport)
	assert.NotNil(t, p.transport.TLS)
	assert.Equal(t, "SCRAM-SHA-512", p.transport.SASL.Name())
}

func TestNewProducer_UnsupportedMechanism(t *testing.T) {
	_, err := NewProducer(Config{SASLEnabled: true, SASLMechanism: "GSSAPI"})
	assert.Error(t, err)
}

func TestProducer_WriterPerTopic(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)

	w1 := p.writer("risk.events")
	w2 := p.writer("risk.events")
	w3 := p.writer("contract.events")

	assert.Same(t, w1, w2)
	assert.NotSame(t, w1, w3)
	assert.Len(t, p.writers, 2)

	require.NoError(t, p.Close())
	assert.Empty(t, p.writers)
}

func TestMessageHeadersRoundTrip(t *testing.T) {
	msg := Message{
		Key:     []byte("contract-1"),
		Value:   []byte(`{"contract_id":"contract-1"}`),
		Headers: map[string]string{"event-type": "contract.updated"},
	}

	km := msg.toKafka()
	require.Len(t, km.Headers, 1)
	assert.Equal(t, kafkago.Header{Key: "event-type", Value: []byte("contract.updated")}, km.Headers[0])

	back := fromKafka(km)
	assert.Equal(t, msg, back)
}
