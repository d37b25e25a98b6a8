package server

import (
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/snake/internal/loop/config"
)

var (
	// ErrServerFull is returned by RegisterClient when the session limit is reached.
	ErrServerFull = errors.New("server is full")
	// ErrShuttingDown is returned by RegisterClient once Shutdown has started.
	ErrShuttingDown = errors.New("server is shutting down")
)

// GameServer is the interface clients use to communicate with the server.
// Decouples the Client from the concrete Server implementation for testing.
type GameServer interface {
	RegisterClient(username string) (*ClientHandle, error)
	UnregisterClient(clientID int)
	ReportScore(clientID int, score int) (rank int)
	GetSnapshot() *Snapshot
}

// Server tracks connected sessions and the shared leaderboard. Every
// session runs its own game; the server never touches game state.
type Server struct {
	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
	maxClients   int
	shuttingDown bool
	board        *leaderboard
	logger       *log.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's registration with the server.
type ClientHandle struct {
	ID        int
	SessionID string           // Random ID for correlating log lines
	Username  string           // Display name for this client
	EventsCh  chan ClientEvent // Events sent to client (shutdown)
	Connected time.Time
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// Option configures a Server.
type Option func(*Server)

// WithMaxClients caps concurrent sessions. Zero means unlimited.
func WithMaxClients(n int) Option {
	return func(s *Server) {
		s.maxClients = n
	}
}

// WithTopScores sets how many leaderboard entries are kept.
func WithTopScores(n int) Option {
	return func(s *Server) {
		s.board = newLeaderboard(n)
	}
}

// NewServer creates a server. A nil logger discards log output.
func NewServer(logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		board:        newLeaderboard(config.TopScoresCount),
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) (*ClientHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shuttingDown {
		return nil, ErrShuttingDown
	}
	if s.maxClients > 0 && len(s.clients) >= s.maxClients {
		return nil, ErrServerFull
	}

	handle := &ClientHandle{
		ID:        s.nextClientID,
		SessionID: uuid.NewString(),
		Username:  displayName(username),
		EventsCh:  make(chan ClientEvent, 4),
		Connected: time.Now(),
	}
	s.nextClientID++
	s.clients[handle.ID] = handle

	s.logger.Info("client registered", "id", handle.ID, "session", handle.SessionID,
		"user", handle.Username, "players", len(s.clients))
	return handle, nil
}

// UnregisterClient removes a client from the server and closes its event channel.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	close(handle.EventsCh)
	delete(s.clients, clientID)

	s.logger.Info("client unregistered", "id", handle.ID, "session", handle.SessionID,
		"duration", time.Since(handle.Connected).Round(time.Second), "players", len(s.clients))
}

// ReportScore records a finished game. Returns the 1-based leaderboard rank
// the score reached, or 0 if it did not place.
func (s *Server) ReportScore(clientID int, score int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return 0
	}
	rank := s.board.submit(clientID, handle.Username, score)
	if rank > 0 {
		s.logger.Info("leaderboard entry", "user", handle.Username, "score", score, "rank", rank)
	}
	return rank
}

// GetSnapshot returns the current player count and leaderboard.
func (s *Server) GetSnapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &Snapshot{
		Players:   len(s.clients),
		TopScores: s.board.entries(),
	}
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.Lock()
	s.shuttingDown = true
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	remaining := len(s.clients)
	s.mu.Unlock()

	s.logger.Info("shutdown requested", "players", remaining, "timeout", timeout)

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for remaining > 0 {
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "players", remaining)
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining = len(s.clients)
			s.mu.RUnlock()
		}
	}
}

// displayName trims a username to something printable on one line.
func displayName(username string) string {
	name := strings.Map(func(r rune) rune {
		if r < ' ' || r == 0x7f {
			return -1
		}
		return r
	}, strings.TrimSpace(username))
	if name == "" {
		return "anonymous"
	}
	if runes := []rune(name); len(runes) > config.MaxUsernameLength {
		name = string(runes[:config.MaxUsernameLength])
	}
	return name
}
