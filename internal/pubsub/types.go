package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventPlayerCreated EventType = "player-created"
	EventPlayerDeleted EventType = "player-deleted"
	EventShotRecorded  EventType = "shot-recorded"
	EventScoresReset   EventType = "scores-reset"
)

// PlayerEvent is the payload for player lifecycle events.
type PlayerEvent struct {
	PlayerID   string `msgpack:"player_id"`
	PlayerName string `msgpack:"player_name"`
}

// ShotEvent is the payload for shot-recorded events.
type ShotEvent struct {
	PlayerID   string  `msgpack:"player_id"`
	ShotNumber int     `msgpack:"shot_number"`
	Value      float64 `msgpack:"value"`
	Precision  float64 `msgpack:"precision"`
	Ring       string  `msgpack:"ring"`
}
