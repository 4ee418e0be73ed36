package model

// SquareUnderAttack reports whether any piece of bySide attacks sq. The probe
// runs the raw generator for bySide and never filters it for legality: whether
// a square is attacked must not depend on whether the attacker is itself pinned.
func (gs *GameState) SquareUnderAttack(sq Position, bySide Color) bool {
	for _, m := range gs.pseudoMoves(bySide, true) {
		if m.To == sq {
			return true
		}
	}
	return false
}

// InCheck reports whether the side to move has its king attacked.
func (gs *GameState) InCheck() bool {
	return gs.SquareUnderAttack(gs.board.kingPosition(gs.toMove), gs.toMove.Opponent())
}

// ValidMoves returns the legal moves for the side to move and refreshes the
// checkmate and stalemate flags.
func (gs *GameState) ValidMoves() []Move {
	moves := gs.pseudoMoves(gs.toMove, false)
	moves = gs.appendCastleMoves(moves)

	legal := moves[:0]
	for _, m := range moves {
		gs.MakeMove(m)
		// look at the position from the mover's side
		gs.toMove = gs.toMove.Opponent()
		if !gs.InCheck() {
			legal = append(legal, m)
		}
		gs.toMove = gs.toMove.Opponent()
		gs.UndoMove()
	}

	gs.checkMate, gs.staleMate = false, false
	if len(legal) == 0 {
		if gs.InCheck() {
			gs.checkMate = true
		} else {
			gs.staleMate = true
		}
	}
	return legal
}

func (gs *GameState) appendCastleMoves(moves []Move) []Move {
	king := gs.board.kingPosition(gs.toMove)
	opponent := gs.toMove.Opponent()
	if gs.SquareUnderAttack(king, opponent) {
		return moves
	}
	if gs.castleRights.kingSide(gs.toMove) {
		moves = gs.kingSideCastle(king, opponent, moves)
	}
	if gs.castleRights.queenSide(gs.toMove) {
		moves = gs.queenSideCastle(king, opponent, moves)
	}
	return moves
}

func (gs *GameState) kingSideCastle(king Position, opponent Color, moves []Move) []Move {
	board := &gs.board.Board
	f, g := king.offset(1, 0), king.offset(2, 0)
	if !boundaryCheck(g) || !board.At(f).IsEmpty() || !board.At(g).IsEmpty() {
		return moves
	}
	if gs.SquareUnderAttack(f, opponent) || gs.SquareUnderAttack(g, opponent) {
		return moves
	}
	return append(moves, newCastleMove(king, g, board))
}

func (gs *GameState) queenSideCastle(king Position, opponent Color, moves []Move) []Move {
	board := &gs.board.Board
	d, c, b := king.offset(-1, 0), king.offset(-2, 0), king.offset(-3, 0)
	if !boundaryCheck(b) || !board.At(d).IsEmpty() || !board.At(c).IsEmpty() || !board.At(b).IsEmpty() {
		return moves
	}
	if gs.SquareUnderAttack(d, opponent) || gs.SquareUnderAttack(c, opponent) {
		return moves
	}
	return append(moves, newCastleMove(king, c, board))
}
