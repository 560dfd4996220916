/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package riddle holds the state of a single guessing game: the hidden
// animal, the chat log and the submit/answer/reset state machine.
package riddle

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"
)

var ErrAskFailed = errors.New("ask failed")

// Answer is the oracle's verdict on the latest guess.
type Answer struct {
	Content   string `json:"content"`
	Proximity *int   `json:"proximity,omitempty"`
	Correct   bool   `json:"isCorrect"`
}

// Oracle evaluates a conversation against the hidden animal.
type Oracle interface {
	Ask(ctx context.Context, history []Message, target string) (Answer, error)
}

// OracleFunc adapts a function to Oracle.
type OracleFunc func(ctx context.Context, history []Message, target string) (Answer, error)

func (f OracleFunc) Ask(ctx context.Context, history []Message, target string) (Answer, error) {
	return f(ctx, history, target)
}

type State int

const (
	Idle State = iota
	Asking
	Solved
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Asking:
		return "asking"
	case Solved:
		return "solved"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Ticket identifies one in-flight question. A ticket issued before a reset
// is stale and its answer is dropped.
type Ticket struct {
	History    []Message
	Target     string
	Generation uint64
}

// Session is not safe for concurrent use; callers serialise access.
type Session struct {
	animals AnimalSource
	now     func() time.Time

	state      State
	messages   []Message
	input      string
	target     string
	generation uint64
}

func NewSession(animals AnimalSource) *Session {
	s := &Session{
		animals: animals,
		now:     time.Now,
	}
	s.target = animals.RandomAnimal()
	s.messages = []Message{s.riddlerMessage(Greeting, nil)}

	return s
}

func (s *Session) riddlerMessage(text string, proximity *int) Message {
	return Message{
		Sender:    Riddler,
		Text:      text,
		SentAt:    s.now(),
		Proximity: proximity,
	}
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Solved() bool {
	return s.state == Solved
}

func (s *Session) Target() string {
	return s.target
}

func (s *Session) Input() string {
	return s.input
}

func (s *Session) Generation() uint64 {
	return s.generation
}

// SetInput records the player's draft guess.
func (s *Session) SetInput(text string) {
	if s.state == Solved {
		return
	}
	s.input = text
}

// Messages returns a copy of the log.
func (s *Session) Messages() []Message {
	return slices.Clone(s.messages)
}

func (s *Session) append(m Message) {
	next := make([]Message, len(s.messages), len(s.messages)+1)
	copy(next, s.messages)
	s.messages = append(next, m)
}

// Submit records a guess and moves to Asking. It reports false, changing
// nothing, for blank text or while the game is solved or already asking.
func (s *Session) Submit(text string) (Ticket, bool) {
	if strings.TrimSpace(text) == "" || s.state != Idle {
		return Ticket{}, false
	}

	s.append(Message{
		Sender: Player,
		Text:   text,
		SentAt: s.now(),
	})
	s.input = ""
	s.state = Asking

	return Ticket{
		History:    s.Messages(),
		Target:     s.target,
		Generation: s.generation,
	}, true
}

func (s *Session) current(t Ticket) bool {
	return s.state == Asking && t.Generation == s.generation
}

// Complete applies the oracle's answer. It reports false if the ticket is
// stale.
func (s *Session) Complete(t Ticket, a Answer) bool {
	if !s.current(t) {
		return false
	}

	var proximity *int
	if a.Proximity != nil {
		p := ClampProximity(*a.Proximity)
		proximity = &p
	}

	s.append(s.riddlerMessage(a.Content, proximity))

	if a.Correct {
		s.state = Solved
	} else {
		s.state = Idle
	}

	return true
}

// Fail records a generic apology for a failed question. It reports false
// if the ticket is stale.
func (s *Session) Fail(t Ticket) bool {
	if !s.current(t) {
		return false
	}

	s.append(s.riddlerMessage(Apology, nil))
	s.state = Idle

	return true
}

// Reset starts a new game with a fresh animal. Outstanding tickets become
// stale.
func (s *Session) Reset() {
	s.generation++
	s.state = Idle
	s.input = ""
	s.messages = []Message{s.riddlerMessage(ResetGreeting, nil)}
	s.target = s.animals.RandomAnimal()
}
