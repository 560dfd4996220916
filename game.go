// Riddlebox animal game
//
// The riddler silently picks an animal and the player asks questions or
// names animals until they hit it. Each riddler reply may carry a proximity
// score, shown as a temperature phrase.
//
// Features:
// - WebSockets per game ID: /path/:gameid and /path/:gameid/ws
// - Every tab connected to a game sees the same thread and theme
// - Players identified by cookie (playerID)
// - One question in flight per game; extra guesses while asking are ignored
// - Answers that arrive after "Play again" are discarded
// - Accessible colour themes regenerated on demand (random, light, dark)
// - Games auto-reaped after configurable idle timeout
// - Random 8-char game IDs via crypto/rand, with server-side collision check
// - In-browser QR button to share the current game, backed by go-qrcode

package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/Seednode/riddlebox/palette"
	"github.com/Seednode/riddlebox/riddle"
)

const riddlePath = "/riddle"

// Messages coming from clients
type ClientMessage struct {
	Type string `json:"type"`           // "guess", "input", "reset", "theme"
	Text string `json:"text,omitempty"` // guess / input
	Mode string `json:"mode,omitempty"` // theme: "random", "light" or "dark"
}

// StateMessage is broadcast to every client whenever the game changes.
type StateMessage struct {
	Type     string           `json:"type"` // "state"
	State    riddle.State     `json:"state"`
	Messages []riddle.Message `json:"messages"`
	Input    string           `json:"input"`
	App      palette.Pair     `json:"app"`
	User     palette.Pair     `json:"user"`
	Answer   string           `json:"answer,omitempty"` // only once solved
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
}

type clientRequest struct {
	client *Client
	msg    ClientMessage
}

type askResult struct {
	ticket riddle.Ticket
	answer riddle.Answer
	err    error
}

type Hub struct {
	id      string
	clients map[*Client]bool

	register chan *Client
	unreg    chan *Client
	requests chan clientRequest
	results  chan askResult
	done     chan struct{}
	stop     sync.Once

	mu         sync.RWMutex
	lastActive time.Time

	oracle riddle.Oracle
	colors *palette.Generator

	// Owned by run.
	session *riddle.Session
	random  palette.Preset
	app     palette.Pair
	user    palette.Pair

	// Cancelled when the hub stops. Reset is only accepted once solved, so
	// no question can be in flight then.
	askCtx    context.Context
	cancelAsk context.CancelFunc
}

func newHub(gameID string, oracle riddle.Oracle, animals riddle.AnimalSource, colors *palette.Generator) *Hub {
	askCtx, cancelAsk := context.WithCancel(context.Background())

	return &Hub{
		id:         gameID,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		requests:   make(chan clientRequest),
		results:    make(chan askResult),
		done:       make(chan struct{}),
		lastActive: time.Now(),
		oracle:     oracle,
		colors:     colors,
		session:    riddle.NewSession(animals),
		askCtx:     askCtx,
		cancelAsk:  cancelAsk,
	}
}

func (h *Hub) touch() {
	h.mu.Lock()
	h.lastActive = time.Now()
	h.mu.Unlock()
}

func (h *Hub) run(cfg *Config) {
	h.random = cfg.randomPreset()
	h.app = h.pair(cfg, h.random)
	h.user = h.pair(cfg, h.random)

	for {
		select {
		case c := <-h.register:
			h.touch()
			h.clients[c] = true
			logf(cfg, "GAMES: Player %s connected to %s", c.playerID, h.id)
			h.sendState(c)

		case c := <-h.unreg:
			h.touch()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}

		case req := <-h.requests:
			h.touch()
			h.handleRequest(cfg, req)

		case res := <-h.results:
			h.touch()
			h.handleResult(cfg, res)

		case <-h.done:
			h.cancelAsk()
			for c := range h.clients {
				close(c.send)
				_ = c.conn.Close()
				delete(h.clients, c)
			}
			return
		}
	}
}

func (h *Hub) handleRequest(cfg *Config, req clientRequest) {
	msg := req.msg

	switch msg.Type {
	case "guess":
		ticket, ok := h.session.Submit(msg.Text)
		if !ok {
			return
		}
		logf(cfg, "GAMES: Player %s asked %q in %s", req.client.playerID, msg.Text, h.id)
		h.ask(cfg, ticket)

	case "input":
		h.session.SetInput(msg.Text)

	case "reset":
		if !h.session.Solved() {
			return
		}
		h.session.Reset()
		logf(cfg, "GAMES: Started round %d in %s", h.session.Generation()+1, h.id)

	case "theme":
		switch msg.Mode {
		case "light":
			h.app = h.pair(cfg, palette.Light)
		case "dark":
			h.app = h.pair(cfg, palette.Dark)
		default:
			h.app = h.pair(cfg, h.random)
		}
		h.user = h.pair(cfg, h.random)

	default:
		return
	}

	h.broadcastState()
}

// ask runs the oracle outside the hub loop. The result is handed back on
// h.results; if the hub has shut down meanwhile it is dropped.
func (h *Hub) ask(cfg *Config, ticket riddle.Ticket) {
	ctx, cancel := context.WithTimeout(h.askCtx, cfg.oracleTimeout)

	go func() {
		defer cancel()

		answer, err := h.oracle.Ask(ctx, ticket.History, ticket.Target)

		select {
		case h.results <- askResult{ticket: ticket, answer: answer, err: err}:
		case <-h.done:
		}
	}()
}

func (h *Hub) handleResult(cfg *Config, res askResult) {
	var applied bool

	if res.err != nil {
		err := fmt.Errorf("%w: %w", riddle.ErrAskFailed, res.err)
		if !errors.Is(res.err, context.Canceled) {
			log.Printf("%s | ERROR: %s: %v", time.Now().Format(logDate), h.id, err)
		}
		applied = h.session.Fail(res.ticket)
	} else {
		applied = h.session.Complete(res.ticket, res.answer)
	}

	if !applied {
		logf(cfg, "GAMES: Discarded stale answer in %s", h.id)
		return
	}

	if h.session.Solved() {
		logf(cfg, "GAMES: %q guessed in %s", h.session.Target(), h.id)
	}

	h.broadcastState()
}

func (h *Hub) pair(cfg *Config, preset palette.Preset) palette.Pair {
	p, err := h.colors.FromPreset(preset)
	if err != nil {
		logf(cfg, "GAMES: Using fallback colors in %s: %v", h.id, err)
		return palette.Fallback
	}
	return p
}

func (h *Hub) state() StateMessage {
	msg := StateMessage{
		Type:     "state",
		State:    h.session.State(),
		Messages: h.session.Messages(),
		Input:    h.session.Input(),
		App:      h.app,
		User:     h.user,
	}
	if h.session.Solved() {
		msg.Answer = h.session.Target()
	}
	return msg
}

func (h *Hub) sendState(c *Client) {
	select {
	case c.send <- h.state():
	default:
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) broadcastState() {
	msg := h.state()

	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// closeAll disconnects all clients of this hub and stops its loop.
func (h *Hub) closeAll() {
	h.stop.Do(func() {
		close(h.done)
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const playerCookieName = "riddlebox_id"

func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// GameManager holds a set of hubs keyed by game ID, so each $path/$gameid
// is its own isolated game.
type GameManager struct {
	cfg *Config

	mu          sync.Mutex
	hubs        map[string]*Hub
	idleTimeout time.Duration
	done        chan struct{}
	stop        sync.Once

	oracle  riddle.Oracle
	animals riddle.AnimalSource
	colors  *palette.Generator
}

func newGameManager(cfg *Config, oracle riddle.Oracle, animals riddle.AnimalSource, colors *palette.Generator) *GameManager {
	gm := &GameManager{
		cfg:         cfg,
		hubs:        make(map[string]*Hub),
		idleTimeout: cfg.sessionTimeout,
		done:        make(chan struct{}),
		oracle:      oracle,
		animals:     animals,
		colors:      colors,
	}
	if gm.idleTimeout > 0 {
		go gm.reaperLoop()
	}
	return gm
}

func (gm *GameManager) getHub(gameID string) *Hub {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if hub, ok := gm.hubs[gameID]; ok {
		return hub
	}

	hub := newHub(gameID, gm.oracle, gm.animals, gm.colors)
	gm.hubs[gameID] = hub
	go hub.run(gm.cfg)
	return hub
}

// newGameID generates a crypto-random game ID and ensures it doesn't
// collide with existing games.
func (gm *GameManager) newGameID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	for {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, 8)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		id := string(out)

		gm.mu.Lock()
		_, exists := gm.hubs[id]
		gm.mu.Unlock()

		if !exists {
			return id
		}
	}
}

// reaperLoop periodically removes hubs that have been idle longer than idleTimeout.
func (gm *GameManager) reaperLoop() {
	ticker := time.NewTicker(gm.idleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			gm.reap(time.Now().Add(-gm.idleTimeout))
		case <-gm.done:
			return
		}
	}
}

func (gm *GameManager) reap(cutoff time.Time) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for id, hub := range gm.hubs {
		hub.mu.RLock()
		last := hub.lastActive
		hub.mu.RUnlock()

		if last.Before(cutoff) {
			delete(gm.hubs, id)
			hub.closeAll()
			logf(gm.cfg, "GAMES: Reaped idle game %s", id)
		}
	}
}

// Close ends every game and stops the reaper.
func (gm *GameManager) Close() {
	gm.stop.Do(func() {
		close(gm.done)
	})

	gm.mu.Lock()
	defer gm.mu.Unlock()

	for id, hub := range gm.hubs {
		delete(gm.hubs, id)
		hub.closeAll()
	}
}

// WebSocket handler that picks the hub based on :gameid
func serveWSForManager(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		playerID := getOrSetPlayerID(w, r)

		hub := gm.getHub(gameID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "ERROR: websocket upgrade failed for %s: %v", realIP(r), err)
			return
		}

		client := &Client{
			conn:     conn,
			send:     make(chan any, 8),
			playerID: playerID,
		}

		select {
		case hub.register <- client:
		case <-hub.done:
			_ = conn.Close()
			return
		}

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unreg <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		select {
		case h.requests <- clientRequest{client: c, msg: msg}:
		case <-h.done:
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// QR handler: generates a PNG QR code for the current game URL using go-qrcode.
func qrHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		// We are at /.../:gameid/qr; strip trailing "/qr" to get the game URL.
		path := strings.TrimSuffix(r.URL.Path, "/qr")

		url := scheme + "://" + r.Host + path

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(cfg, w)
		_, _ = w.Write(png)

		logf(cfg, "SERVE: QR code (%s) for %s to %s", humanReadableSize(int64(len(png))), gameID, realIP(r))
	}
}

var indexTemplate = template.Must(template.ParseFS(assets, "assets/riddle/index.html"))

type indexData struct {
	Prefix  string
	Path    string
	GameID  string
	Favicon template.HTML
}

func getIndexHandler(cfg *Config, path string, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		securityHeaders(cfg, w)

		_ = getOrSetPlayerID(w, r)

		err := indexTemplate.Execute(w, indexData{
			Prefix:  cfg.prefix,
			Path:    cfg.prefix + path,
			GameID:  ps.ByName("gameid"),
			Favicon: template.HTML(getFavicon(cfg.prefix)),
		})
		if err != nil {
			errs <- err
		}
	}
}

// redirectNewGame handles GET /path by generating a new random game ID
// (with server-side collision detection) and redirecting to /path/:gameid.
func redirectNewGame(cfg *Config, path string, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gameID := gm.newGameID()
		logf(cfg, "GAMES: Created game %s%s/%s", cfg.prefix, path, gameID)
		http.Redirect(w, r, cfg.prefix+path+"/"+gameID, http.StatusTemporaryRedirect)
	}
}

// registerRiddleGame sets up routes so that:
//   - $path                  → redirects to new random game (8-char ID)
//   - $path/:gameid          → HTML client
//   - $path/:gameid/ws       → WebSocket for that game
//   - $path/:gameid/qr       → PNG QR code for that game URL
func registerRiddleGame(cfg *Config, path string, gm *GameManager, errs chan<- error, mux *httprouter.Router) {
	mux.GET(cfg.prefix+path, redirectNewGame(cfg, path, gm))

	mux.GET(cfg.prefix+path+"/:gameid", getIndexHandler(cfg, path, errs))

	mux.GET(cfg.prefix+path+"/:gameid/ws", serveWSForManager(cfg, gm))

	mux.GET(cfg.prefix+path+"/:gameid/qr", qrHandler(cfg))
}
