/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package riddle

import (
	"encoding/json"
	"time"
)

const (
	Riddler = "riddler"
	Player  = "coolPerson1994"

	Greeting      = "I'm thinking of an animal, can you guess what it is?"
	ResetGreeting = "You tricked me last time. Now I'm thinking of a new animal, can you guess what it is?"
	Apology       = "I'm sorry, something went wrong. Please try again."
)

// Message is one entry in the chat log.
type Message struct {
	Sender    string
	Text      string
	SentAt    time.Time
	Proximity *int
}

func (m Message) FromRiddler() bool {
	return m.Sender == Riddler
}

// Phrase returns the temperature phrase for the message, or "" when it
// carries no proximity.
func (m Message) Phrase() string {
	if m.Proximity == nil {
		return ""
	}
	return Phrase(*m.Proximity)
}

func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		From      string    `json:"from"`
		Content   string    `json:"content"`
		Display   string    `json:"display"`
		Timestamp time.Time `json:"timestamp"`
		Proximity *int      `json:"proximity,omitempty"`
		Phrase    string    `json:"phrase,omitempty"`
	}{
		From:      m.Sender,
		Content:   m.Text,
		Display:   Emojify(m.Text),
		Timestamp: m.SentAt,
		Proximity: m.Proximity,
		Phrase:    m.Phrase(),
	})
}
