package model

// MakeMove applies m, which must come from ValidMoves. The steps run in a
// fixed order; UndoMove relies on it.
func (gs *GameState) MakeMove(m Move) {
	board := &gs.board.Board

	board.set(m.From, NoPiece)
	board.set(m.To, m.PieceMoved)
	gs.moveLog = append(gs.moveLog, m)
	gs.toMove = gs.toMove.Opponent()

	if m.PieceMoved.Type == King {
		gs.board.setKingPosition(m.PieceMoved.Color, m.To)
	}

	// no underpromotion
	if m.IsPromotion {
		board.set(m.To, Piece{Color: m.PieceMoved.Color, Type: Queen})
	}

	if m.IsEnPassant {
		board[m.From.Y][m.To.X] = NoPiece
	}

	gs.enPassantTarget = enPassantTargetAfter(m)

	if m.IsCastle {
		rookFrom, rookTo := castleRookSquares(m)
		board.set(rookTo, board.At(rookFrom))
		board.set(rookFrom, NoPiece)
	}

	gs.castleRights = gs.castleRights.after(m)
	gs.castleRightsLog = append(gs.castleRightsLog, gs.castleRights)
}

// UndoMove reverts the last applied move. It does nothing on an empty history.
func (gs *GameState) UndoMove() {
	if len(gs.moveLog) == 0 {
		return
	}
	board := &gs.board.Board
	m := gs.moveLog[len(gs.moveLog)-1]
	gs.moveLog = gs.moveLog[:len(gs.moveLog)-1]

	board.set(m.From, m.PieceMoved)
	if m.IsEnPassant {
		board.set(m.To, NoPiece)
		board[m.From.Y][m.To.X] = m.PieceCaptured
	} else {
		board.set(m.To, m.PieceCaptured)
	}
	gs.toMove = gs.toMove.Opponent()

	if m.PieceMoved.Type == King {
		gs.board.setKingPosition(m.PieceMoved.Color, m.From)
	}

	if m.IsCastle {
		rookFrom, rookTo := castleRookSquares(m)
		board.set(rookFrom, board.At(rookTo))
		board.set(rookTo, NoPiece)
	}

	gs.castleRightsLog = gs.castleRightsLog[:len(gs.castleRightsLog)-1]
	gs.castleRights = gs.castleRightsLog[len(gs.castleRightsLog)-1]

	// The target only ever comes from the previous ply.
	if prev, ok := gs.LastMove(); ok {
		gs.enPassantTarget = enPassantTargetAfter(prev)
	} else {
		gs.enPassantTarget = copyPosition(gs.initialEnPassant)
	}

	gs.checkMate, gs.staleMate = false, false
}

func enPassantTargetAfter(m Move) *Position {
	if m.PieceMoved.Type != Pawn || abs(m.To.Y-m.From.Y) != 2 {
		return nil
	}
	return &Position{X: m.From.X, Y: (m.From.Y + m.To.Y) / 2}
}

// castleRookSquares returns where the rook starts and lands for a castle move.
func castleRookSquares(m Move) (Position, Position) {
	if m.To.X > m.From.X {
		return Position{X: 7, Y: m.From.Y}, Position{X: m.To.X - 1, Y: m.From.Y}
	}
	return Position{X: 0, Y: m.From.Y}, Position{X: m.To.X + 1, Y: m.From.Y}
}
