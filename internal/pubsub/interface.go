package pubsub

// PubSubClient publishes range events for downstream consumers (chart
// dashboards, archival). Payloads are MessagePack encoded.
type PubSubClient interface {
	SendMessage(topic EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
}
