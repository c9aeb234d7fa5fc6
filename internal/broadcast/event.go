package broadcast

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Event is one language change as seen by subscribers.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Language  string    `json:"language"`
	Previous  string    `json:"previous"`
	ChangedAt time.Time `json:"changedAt"`
}

// NewEvent stamps a language change with a fresh ID and the current time.
func NewEvent(language, previous string) *Event {
	return &Event{
		ID:        uuid.New(),
		Language:  language,
		Previous:  previous,
		ChangedAt: time.Now().UTC(),
	}
}

// Emit queues an event for every connected subscriber. It never blocks: when the queue is
// full the event is dropped and logged.
func (m *Manager) Emit(e *Event) {
	select {
	case m.emitChan <- e:
	default:
		log.Warn().Str("event", e.ID.String()).Msg("broadcast queue full, dropping event")
	}
}

// raiseEvent writes the event to all connected clients as one JSON line.
func (m *Manager) raiseEvent(e *Event) {
	data, err := json.Marshal(e)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal broadcast event")
		return
	}

	// Add newline for message framing
	message := append(data, '\n')

	// no new clients while writing
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	for client := range m.clients {
		_ = client.SetWriteDeadline(time.Now().Add(writeTimeout))
		if _, err = client.Write(message); err != nil {
			log.Debug().Err(err).Msg("dropping broadcast subscriber")
			_ = client.Close()
			delete(m.clients, client)
		}
	}
}
