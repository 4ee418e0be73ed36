package model

import (
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// Selector is the boundary a presentation layer drives: two selected squares
// in, acceptance plus the refreshed legal-move list out.
type Selector interface {
	Select(from, to Position) (accepted bool, legal []Move)
}

// MoveChooser picks a move for the side to move. Implementations may make
// and unmake moves on gs but must leave it as they found it.
type MoveChooser interface {
	ChooseMove(gs *GameState, legal []Move) (Move, bool)
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // connection ID -> connection
	mu          sync.RWMutex
	writeMu     sync.Mutex // one writer per conn at a time
}

// Game is one engine session plus its observers. Every engine call happens
// under mu, so a legality simulation or search always runs to completion
// before anything else reads the state.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       *GameState
	legal       []Move
	computer    Color
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
}

// Snapshot is the read-only view sent to presentation layers.
type Snapshot struct {
	ID              string         `json:"id"`
	Board           Board          `json:"board"`
	ToMove          Color          `json:"toMove"`
	MoveHistory     []string       `json:"moveHistory"`
	IsCheck         bool           `json:"isCheck"`
	LegalMoves      []SimpleMove   `json:"legalMoves"`
	EnPassantTarget *Position      `json:"enPassantTarget"`
	CastleRights    CastleRights   `json:"castleRights"`
	Resolve         *string        `json:"resolve"`
	Winner          Color          `json:"winner,omitempty"`
	LastMove        *SimpleMove    `json:"lastMove"`
	FEN             string         `json:"fen"`
	Players         PlayerSnapshot `json:"players"`
}

type PlayerSnapshot struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

const (
	ResolveCheckmate = "checkmate"
	ResolveStalemate = "stalemate"
)

// NewGame wraps state in a session. computer names the side the engine plays,
// or "" for none. A zero clock leaves the game untimed.
func NewGame(id string, state *GameState, computer Color, clock time.Duration) *Game {
	g := &Game{
		ID:          id,
		state:       state,
		computer:    computer,
		connections: NewGameConnections(),
	}
	if clock > 0 {
		g.whiteClock = NewClock(clock)
		g.blackClock = NewClock(clock)
		g.clockFor(state.ToMove()).Start()
	}
	g.legal = state.ValidMoves()
	return g
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

func (g *Game) clockFor(c Color) *Clock {
	if c == White {
		return g.whiteClock
	}
	return g.blackClock
}

func (g *Game) timed() bool {
	return g.whiteClock != nil
}

// Computer returns the side played by the engine, or "".
func (g *Game) Computer() Color {
	return g.computer
}

// ComputerToMove reports whether the engine should reply now.
func (g *Game) ComputerToMove() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.computer != "" && g.computer == g.state.ToMove() && !g.overLocked()
}

func (g *Game) overLocked() bool {
	return g.state.CheckMate() || g.state.StaleMate()
}

// Select resolves the two squares against the current legal moves and plays
// the matching move. Anything else is a no-op, including a selection made while
// the engine's side is to move.
func (g *Game) Select(from, to Position) (bool, []Move) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !from.InBounds() || !to.InBounds() {
		return false, g.legalCopyLocked()
	}
	if g.computer != "" && g.computer == g.state.ToMove() {
		log.Debugw("selection rejected, computer to move", "game", g.ID)
		return false, g.legalCopyLocked()
	}
	candidate := g.state.MoveFor(from, to)
	move, ok := FindMove(g.legal, candidate)
	if !ok {
		log.Debugw("selection rejected", "game", g.ID, "move", candidate.Notation())
		return false, g.legalCopyLocked()
	}
	g.applyLocked(move)
	return true, g.legalCopyLocked()
}

// PlayComputerMove lets chooser pick and play a move for the side to move.
func (g *Game) PlayComputerMove(chooser MoveChooser) (Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.overLocked() {
		return Move{}, ErrGameOver
	}
	legal := g.legalCopyLocked()
	move, ok := chooser.ChooseMove(g.state, legal)
	if !ok {
		return Move{}, ErrGameOver
	}
	// chooser ran ValidMoves on other positions; refresh flags for this one
	g.legal = g.state.ValidMoves()
	g.applyLocked(move)
	return move, nil
}

// Undo takes back the last ply. It reports false when there is nothing to undo.
func (g *Game) Undo() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.state.LastMove(); !ok {
		return false
	}
	g.switchClocksLocked(func() { g.state.UndoMove() })
	g.legal = g.state.ValidMoves()
	log.Infow("move undone", "game", g.ID, "toMove", g.state.ToMove())
	return true
}

func (g *Game) applyLocked(move Move) {
	g.switchClocksLocked(func() { g.state.MakeMove(move) })
	g.legal = g.state.ValidMoves()
	log.Infow("move played", "game", g.ID, "move", move.Notation(), "toMove", g.state.ToMove())
	if g.overLocked() {
		if g.timed() {
			g.clockFor(g.state.ToMove()).Stop()
		}
		log.Infow("game over", "game", g.ID, "resolve", *g.resolveLocked())
	}
}

// switchClocksLocked stops the clock of the side to move, runs change and
// starts the clock of the side to move afterwards.
func (g *Game) switchClocksLocked(change func()) {
	if !g.timed() {
		change()
		return
	}
	g.clockFor(g.state.ToMove()).Stop()
	change()
	g.clockFor(g.state.ToMove()).Start()
}

func (g *Game) legalCopyLocked() []Move {
	out := make([]Move, len(g.legal))
	copy(out, g.legal)
	return out
}

func (g *Game) resolveLocked() *string {
	var r string
	switch {
	case g.state.CheckMate():
		r = ResolveCheckmate
	case g.state.StaleMate():
		r = ResolveStalemate
	default:
		return nil
	}
	return &r
}

func (g *Game) LegalMoves() []Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.legalCopyLocked()
}

func (g *Game) GetState() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Game) snapshotLocked() Snapshot {
	s := Snapshot{
		ID:           g.ID,
		Board:        g.state.Board(),
		ToMove:       g.state.ToMove(),
		MoveHistory:  make([]string, 0, len(g.state.moveLog)),
		IsCheck:      g.state.InCheck(),
		LegalMoves:   make([]SimpleMove, 0, len(g.legal)),
		CastleRights: g.state.CastleRights(),
		Resolve:      g.resolveLocked(),
		FEN:          g.state.FEN(),
		Players: PlayerSnapshot{
			White: g.playerLocked(White),
			Black: g.playerLocked(Black),
		},
	}
	for _, m := range g.state.moveLog {
		s.MoveHistory = append(s.MoveHistory, m.Algebraic())
	}
	for _, m := range g.legal {
		s.LegalMoves = append(s.LegalMoves, m.Simple())
	}
	if ep, ok := g.state.EnPassantTarget(); ok {
		s.EnPassantTarget = &ep
	}
	if last, ok := g.state.LastMove(); ok {
		lm := last.Simple()
		s.LastMove = &lm
	}
	if g.state.CheckMate() {
		s.Winner = g.state.ToMove().Opponent()
	}
	return s
}

func (g *Game) playerLocked(c Color) ClientPlayer {
	p := ClientPlayer{Name: PlayerHuman, Color: c}
	if g.computer == c {
		p.Name = PlayerComputer
	}
	if g.timed() {
		p.TimeLeft = int(g.clockFor(c).GetTimeLeft().Milliseconds() / 100)
	}
	return p
}

func (g *Game) RegisterConnection(connID string, conn *websocket.Conn) {
	g.connections.mu.Lock()
	g.connections.connections[connID] = conn
	g.connections.mu.Unlock()
	log.Infow("registered connection", "game", g.ID, "conn", connID)

	// Send initial state...
	g.BroadcastState()
}

func (g *Game) UnregisterConnection(connID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[connID]; exists {
		log.Infow("unregistering connection", "game", g.ID, "conn", connID)
		delete(g.connections.connections, connID)
	}
}

// SendTo writes msg to one observer.
func (g *Game) SendTo(connID string, msg ws.Message) error {
	g.connections.mu.RLock()
	conn, ok := g.connections.connections[connID]
	g.connections.mu.RUnlock()
	if !ok {
		return ErrUnknownConnection
	}

	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	return conn.WriteJSON(msg)
}

// BroadcastState pushes the current snapshot to every observer.
func (g *Game) BroadcastState() {
	snapshot := g.GetState()
	go g.broadcast(snapshot)
}

func (g *Game) broadcast(snapshot Snapshot) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, snapshot)
	if err != nil {
		log.Errorw("failed to marshal state", "game", g.ID, "error", err)
		return
	}

	// Make a copy of the connections we need to broadcast to
	g.connections.mu.RLock()
	activeConnections := make(map[string]*websocket.Conn, len(g.connections.connections))
	for connID, conn := range g.connections.connections {
		activeConnections[connID] = conn
	}
	g.connections.mu.RUnlock()

	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	for connID, conn := range activeConnections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnw("failed to send state", "game", g.ID, "conn", connID, "error", err)
			g.UnregisterConnection(connID)
		}
	}
}
