package model

// GameState is the rules engine for a single game. It is not safe for
// concurrent use; Game serialises access to it.
type GameState struct {
	board           *BoardState
	toMove          Color
	moveLog         []Move
	enPassantTarget *Position
	castleRights    CastleRights
	castleRightsLog []CastleRights

	// Only meaningful right after ValidMoves.
	checkMate bool
	staleMate bool

	// Starting conditions, needed to undo back to the root of a FEN position.
	initialEnPassant *Position
	startToMove      Color
	fullMoveBase     int
}

// NewGameState returns the standard initial position with white to move.
func NewGameState() *GameState {
	return newGameStateFrom(newBoard(), White, fullCastleRights(), nil, 1)
}

func newGameStateFrom(board *BoardState, toMove Color, rights CastleRights, ep *Position, fullMove int) *GameState {
	gs := &GameState{
		board:           board,
		toMove:          toMove,
		moveLog:         make([]Move, 0, 64),
		castleRights:    rights,
		castleRightsLog: []CastleRights{rights},
		startToMove:     toMove,
		fullMoveBase:    fullMove,
	}
	if ep != nil {
		gs.initialEnPassant = copyPosition(ep)
		gs.enPassantTarget = copyPosition(ep)
	}
	return gs
}

func copyPosition(p *Position) *Position {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// Board returns a copy of the current board.
func (gs *GameState) Board() Board {
	return gs.board.Board
}

func (gs *GameState) ToMove() Color {
	return gs.toMove
}

func (gs *GameState) WhiteToMove() bool {
	return gs.toMove == White
}

// KingPosition reads the cached king square for c.
func (gs *GameState) KingPosition(c Color) Position {
	return gs.board.kingPosition(c)
}

func (gs *GameState) EnPassantTarget() (Position, bool) {
	if gs.enPassantTarget == nil {
		return Position{}, false
	}
	return *gs.enPassantTarget, true
}

func (gs *GameState) CastleRights() CastleRights {
	return gs.castleRights
}

// MoveLog returns a copy of the applied moves, oldest first.
func (gs *GameState) MoveLog() []Move {
	out := make([]Move, len(gs.moveLog))
	copy(out, gs.moveLog)
	return out
}

func (gs *GameState) LastMove() (Move, bool) {
	if len(gs.moveLog) == 0 {
		return Move{}, false
	}
	return gs.moveLog[len(gs.moveLog)-1], true
}

func (gs *GameState) CheckMate() bool {
	return gs.checkMate
}

func (gs *GameState) StaleMate() bool {
	return gs.staleMate
}

// MoveFor builds the move a piece on from would make by going to to, deriving
// the en passant and castle flags from the current position. Both squares
// must be on the board.
func (gs *GameState) MoveFor(from, to Position) Move {
	board := &gs.board.Board
	piece := board.At(from)
	switch {
	case piece.Type == Pawn && from.X != to.X && board.At(to).IsEmpty() &&
		gs.enPassantTarget != nil && *gs.enPassantTarget == to:
		return newEnPassantMove(from, to, board)
	case piece.Type == King && abs(to.X-from.X) == 2 && from.Y == to.Y:
		return newCastleMove(from, to, board)
	}
	return NewMove(from, to, board)
}

// FindMove returns the member of legal equal to candidate.
func FindMove(legal []Move, candidate Move) (Move, bool) {
	for _, m := range legal {
		if m.Equal(candidate) {
			return m, true
		}
	}
	return Move{}, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
