package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seednode/riddlebox/oracle"
	"github.com/Seednode/riddlebox/palette"
	"github.com/Seednode/riddlebox/riddle"
)

type testMessage struct {
	From      string `json:"from"`
	Content   string `json:"content"`
	Display   string `json:"display"`
	Phrase    string `json:"phrase"`
	Proximity *int   `json:"proximity"`
}

type testPair struct {
	Background string `json:"background"`
	Color      string `json:"color"`
	White      bool   `json:"white"`
}

type testState struct {
	Type     string        `json:"type"`
	State    string        `json:"state"`
	Messages []testMessage `json:"messages"`
	Input    string        `json:"input"`
	App      testPair      `json:"app"`
	User     testPair      `json:"user"`
	Answer   string        `json:"answer"`
}

func dial(t *testing.T, serverURL, gameID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(serverURL, "http") + riddlePath + "/" + gameID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func readState(t *testing.T, conn *websocket.Conn) testState {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var s testState
	require.NoError(t, conn.ReadJSON(&s))
	require.Equal(t, "state", s.Type)

	return s
}

func readUntil(t *testing.T, conn *websocket.Conn, state string) testState {
	t.Helper()

	for {
		s := readState(t, conn)
		if s.State == state {
			return s
		}
	}
}

func send(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()

	require.NoError(t, conn.WriteJSON(msg))
}

func answering(a riddle.Answer, err error) riddle.Oracle {
	return riddle.OracleFunc(func(ctx context.Context, history []riddle.Message, target string) (riddle.Answer, error) {
		return a, err
	})
}

func proximity(p int) *int {
	return &p
}

func TestGameInitialState(t *testing.T) {
	srv := newTestServer(t, testConfig(), oracle.NewLocal())
	conn := dial(t, srv.URL, "initial1")

	s := readState(t, conn)
	assert.Equal(t, "idle", s.State)
	require.Len(t, s.Messages, 1)
	assert.Equal(t, riddle.Riddler, s.Messages[0].From)
	assert.Equal(t, riddle.Greeting, s.Messages[0].Content)
	assert.Empty(t, s.Answer)
	assert.True(t, strings.HasPrefix(s.App.Background, "color(display-p3 "))
	assert.True(t, strings.HasPrefix(s.User.Color, "color(display-p3 "))

	for _, p := range []testPair{s.App, s.User} {
		fg, err := palette.Parse(p.Color)
		require.NoError(t, err)
		assert.Equal(t, palette.Contrast(fg, palette.White, palette.APCA) > 60, p.White)
	}
}

func TestGameCorrectGuessAndReset(t *testing.T) {
	o := answering(riddle.Answer{Content: "Yes! a zebra", Proximity: proximity(5), Correct: true}, nil)
	srv := newTestServer(t, testConfig(), o)
	conn := dial(t, srv.URL, "correct1")
	readState(t, conn)

	send(t, conn, ClientMessage{Type: "guess", Text: "zebra"})

	s := readUntil(t, conn, "solved")
	require.Len(t, s.Messages, 3)
	assert.Equal(t, riddle.Player, s.Messages[1].From)
	assert.Equal(t, "zebra", s.Messages[1].Content)
	assert.Equal(t, "🦓", s.Messages[1].Display)
	assert.Equal(t, riddle.Riddler, s.Messages[2].From)
	require.NotNil(t, s.Messages[2].Proximity)
	assert.Equal(t, 5, *s.Messages[2].Proximity)
	assert.Contains(t, s.Messages[2].Phrase, "Red Hot")
	assert.Equal(t, "zebra", s.Answer)

	// Further guesses are ignored once solved; the theme change forces a
	// broadcast to observe that.
	send(t, conn, ClientMessage{Type: "guess", Text: "again"})
	send(t, conn, ClientMessage{Type: "theme", Mode: "random"})
	s = readState(t, conn)
	assert.Equal(t, "solved", s.State)
	assert.Len(t, s.Messages, 3)

	send(t, conn, ClientMessage{Type: "reset"})
	s = readState(t, conn)
	assert.Equal(t, "idle", s.State)
	require.Len(t, s.Messages, 1)
	assert.Equal(t, riddle.ResetGreeting, s.Messages[0].Content)
	assert.Empty(t, s.Answer)
	assert.Empty(t, s.Input)
}

func TestGameOracleFailure(t *testing.T) {
	srv := newTestServer(t, testConfig(), answering(riddle.Answer{}, errors.New("boom")))
	conn := dial(t, srv.URL, "failure1")
	readState(t, conn)

	send(t, conn, ClientMessage{Type: "guess", Text: "lion"})

	s := readUntil(t, conn, "asking")
	require.Len(t, s.Messages, 2)

	s = readUntil(t, conn, "idle")
	require.Len(t, s.Messages, 3)
	assert.Equal(t, riddle.Apology, s.Messages[2].Content)
	assert.Nil(t, s.Messages[2].Proximity)
	assert.Empty(t, s.Answer)
}

func TestGameEmptyGuessIgnored(t *testing.T) {
	srv := newTestServer(t, testConfig(), oracle.NewLocal())
	conn := dial(t, srv.URL, "empty001")
	readState(t, conn)

	send(t, conn, ClientMessage{Type: "input", Text: "draft"})
	s := readState(t, conn)
	assert.Equal(t, "draft", s.Input)

	send(t, conn, ClientMessage{Type: "guess", Text: "   "})
	send(t, conn, ClientMessage{Type: "theme", Mode: "dark"})

	s = readState(t, conn)
	assert.Equal(t, "idle", s.State)
	assert.Len(t, s.Messages, 1)
	assert.Equal(t, "draft", s.Input)

	dark, err := palette.Parse(palette.Dark.Seed)
	require.NoError(t, err)
	assert.Equal(t, dark.String(), s.App.Background)
}

func TestGameIgnoresGuessWhileAsking(t *testing.T) {
	release := make(chan struct{})
	calls := make(chan string, 4)

	o := riddle.OracleFunc(func(ctx context.Context, history []riddle.Message, target string) (riddle.Answer, error) {
		calls <- history[len(history)-1].Text
		select {
		case <-release:
		case <-ctx.Done():
			return riddle.Answer{}, ctx.Err()
		}
		return riddle.Answer{Content: "nope", Proximity: proximity(-2)}, nil
	})

	srv := newTestServer(t, testConfig(), o)
	conn := dial(t, srv.URL, "reenter1")
	readState(t, conn)

	send(t, conn, ClientMessage{Type: "guess", Text: "first"})
	readUntil(t, conn, "asking")

	send(t, conn, ClientMessage{Type: "guess", Text: "second"})
	send(t, conn, ClientMessage{Type: "input", Text: "typing"})

	s := readState(t, conn)
	assert.Equal(t, "asking", s.State)
	assert.Len(t, s.Messages, 2)

	close(release)

	s = readUntil(t, conn, "idle")
	require.Len(t, s.Messages, 3)
	assert.Equal(t, "first", s.Messages[1].Content)
	assert.Equal(t, "nope", s.Messages[2].Content)

	assert.Equal(t, "first", <-calls)
	assert.Empty(t, calls)
}

func TestGameSharedBetweenClients(t *testing.T) {
	o := answering(riddle.Answer{Content: "colder", Proximity: proximity(-2)}, nil)
	srv := newTestServer(t, testConfig(), o)

	a := dial(t, srv.URL, "shared01")
	readState(t, a)
	b := dial(t, srv.URL, "shared01")
	readState(t, b)

	send(t, a, ClientMessage{Type: "guess", Text: "ant"})

	s := readUntil(t, b, "idle")
	require.Len(t, s.Messages, 3)
	assert.Equal(t, "🐜", s.Messages[1].Display)
	assert.Contains(t, s.Messages[2].Phrase, "Colder")

	other := dial(t, srv.URL, "other001")
	assert.Len(t, readState(t, other).Messages, 1)
}

func TestGameReconnectSeesNewRound(t *testing.T) {
	o := answering(riddle.Answer{Content: "Yes!", Proximity: proximity(5), Correct: true}, nil)
	srv := newTestServer(t, testConfig(), o)

	a := dial(t, srv.URL, "rejoin01")
	readState(t, a)
	send(t, a, ClientMessage{Type: "guess", Text: "zebra"})
	before := readUntil(t, a, "solved")
	require.Len(t, before.Messages, 3)
	require.NoError(t, a.Close())

	b := dial(t, srv.URL, "rejoin01")
	readState(t, b)
	send(t, b, ClientMessage{Type: "reset"})
	readUntil(t, b, "idle")
	send(t, b, ClientMessage{Type: "guess", Text: "zebra"})
	readUntil(t, b, "solved")

	// Same length as before, different round.
	after := readState(t, dial(t, srv.URL, "rejoin01"))
	require.Len(t, after.Messages, len(before.Messages))
	assert.Equal(t, riddle.Greeting, before.Messages[0].Content)
	assert.Equal(t, riddle.ResetGreeting, after.Messages[0].Content)
}

func TestGameRandomThemeUsesConfiguredAlgorithm(t *testing.T) {
	cfg := testConfig()
	cfg.contrastAlgorithm = "wcag21"
	srv := newTestServer(t, cfg, oracle.NewLocal())
	conn := dial(t, srv.URL, "wcag2101")

	s := readState(t, conn)
	send(t, conn, ClientMessage{Type: "theme", Mode: "random"})
	s2 := readState(t, conn)

	for _, p := range []testPair{s.App, s.User, s2.App, s2.User} {
		bg, err := palette.Parse(p.Background)
		require.NoError(t, err)
		fg, err := palette.Parse(p.Color)
		require.NoError(t, err)
		assert.Greater(t, palette.Contrast(bg, fg, palette.WCAG21), 4.5)
	}
}

func TestHubCloseCancelsQuestion(t *testing.T) {
	started := make(chan struct{})
	stopped := make(chan error, 1)

	o := riddle.OracleFunc(func(ctx context.Context, history []riddle.Message, target string) (riddle.Answer, error) {
		close(started)
		<-ctx.Done()
		stopped <- ctx.Err()
		return riddle.Answer{}, ctx.Err()
	})

	gm := newGameManager(testConfig(), o, fixedAnimal("zebra"), palette.NewGenerator(nil))
	defer gm.Close()

	hub := gm.getHub("cancel01")
	hub.requests <- clientRequest{client: &Client{playerID: "p1"}, msg: ClientMessage{Type: "guess", Text: "lion"}}

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("oracle was not asked")
	}

	hub.closeAll()

	select {
	case err := <-stopped:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("question was not cancelled")
	}
}

func TestGameManagerReap(t *testing.T) {
	gm := newGameManager(testConfig(), oracle.NewLocal(), fixedAnimal("zebra"), palette.NewGenerator(nil))
	defer gm.Close()

	hub := gm.getHub("reapme01")
	assert.Same(t, hub, gm.getHub("reapme01"))

	gm.reap(time.Now().Add(-time.Hour))
	assert.Same(t, hub, gm.getHub("reapme01"))

	gm.reap(time.Now().Add(time.Hour))

	select {
	case <-hub.done:
	default:
		t.Fatal("idle hub was not closed")
	}
	assert.NotSame(t, hub, gm.getHub("reapme01"))
}

func TestNewGameID(t *testing.T) {
	gm := newGameManager(testConfig(), oracle.NewLocal(), fixedAnimal("zebra"), palette.NewGenerator(nil))
	defer gm.Close()

	seen := make(map[string]bool)
	for range 100 {
		id := gm.newGameID()
		assert.Regexp(t, `^[A-Za-z0-9]{8}$`, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 95)
}

func TestHubFallsBackToDefaultColors(t *testing.T) {
	colors := palette.NewGenerator(nil)
	colors.MaxAttempts = 1

	hub := newHub("fallback", oracle.NewLocal(), fixedAnimal("zebra"), colors)
	p := hub.pair(testConfig(), palette.Preset{Threshold: 100, Algorithm: palette.WCAG21})

	assert.Equal(t, palette.Fallback, p)
}
