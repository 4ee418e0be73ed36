package model

var (
	rookDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	queenDirs  = append(append([]Position{}, rookDirs...), bishopDirs...)
	knightDirs = []Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs   = queenDirs
)

// pseudoMoves generates every move of side's pieces that obeys movement and
// occupancy rules, ignoring king safety and castling. With probe set, pawns
// yield both diagonal squares and no pushes, so the result is the set of
// squares side attacks.
func (gs *GameState) pseudoMoves(side Color, probe bool) []Move {
	moves := make([]Move, 0, 64)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			piece := gs.board.Board[y][x]
			if piece.IsEmpty() || piece.Color != side {
				continue
			}
			moves = gs.getPsuedoMovesForPiece(Position{X: x, Y: y}, piece, probe, moves)
		}
	}
	return moves
}

func (gs *GameState) getPsuedoMovesForPiece(from Position, piece Piece, probe bool, moves []Move) []Move {
	switch piece.Type {
	case Pawn:
		return gs.getPsuedoPawnMoves(from, piece.Color, probe, moves)
	case Knight:
		return gs.getPsuedoStepMoves(from, piece.Color, knightDirs, moves)
	case Bishop:
		return gs.getPsuedoSlidingMoves(from, piece.Color, bishopDirs, moves)
	case Rook:
		return gs.getPsuedoSlidingMoves(from, piece.Color, rookDirs, moves)
	case Queen:
		return gs.getPsuedoSlidingMoves(from, piece.Color, queenDirs, moves)
	case King:
		return gs.getPsuedoStepMoves(from, piece.Color, kingDirs, moves)
	default:
		return moves
	}
}

func (gs *GameState) getPsuedoPawnMoves(from Position, color Color, probe bool, moves []Move) []Move {
	board := &gs.board.Board
	dir, startRow := -1, 6
	if color == Black {
		dir, startRow = 1, 1
	}
	one := from.offset(0, dir)
	if !boundaryCheck(one) {
		return moves
	}
	if !probe && board.At(one).IsEmpty() {
		moves = append(moves, NewMove(from, one, board))
		two := from.offset(0, 2*dir)
		if from.Y == startRow && board.At(two).IsEmpty() {
			moves = append(moves, NewMove(from, two, board))
		}
	}
	for _, dx := range [2]int{-1, 1} {
		target := from.offset(dx, dir)
		if !boundaryCheck(target) {
			continue
		}
		occupant := board.At(target)
		switch {
		case probe:
			moves = append(moves, NewMove(from, target, board))
		case !occupant.IsEmpty():
			if occupant.Color != color {
				moves = append(moves, NewMove(from, target, board))
			}
		case gs.enPassantTarget != nil && *gs.enPassantTarget == target &&
			board[from.Y][target.X].Is(color.Opponent(), Pawn):
			moves = append(moves, newEnPassantMove(from, target, board))
		}
	}
	return moves
}

// getPsuedoStepMoves covers knights and kings: one hop per offset.
func (gs *GameState) getPsuedoStepMoves(from Position, color Color, dirs []Position, moves []Move) []Move {
	board := &gs.board.Board
	for _, dir := range dirs {
		target := from.offset(dir.X, dir.Y)
		if !boundaryCheck(target) {
			continue
		}
		if occupant := board.At(target); occupant.IsEmpty() || occupant.Color != color {
			moves = append(moves, NewMove(from, target, board))
		}
	}
	return moves
}

func (gs *GameState) getPsuedoSlidingMoves(from Position, color Color, dirs []Position, moves []Move) []Move {
	board := &gs.board.Board
	for _, dir := range dirs {
		target := from.offset(dir.X, dir.Y)
		for boundaryCheck(target) {
			occupant := board.At(target)
			if occupant.IsEmpty() {
				moves = append(moves, NewMove(from, target, board))
			} else if occupant.Color != color {
				moves = append(moves, NewMove(from, target, board))
				break
			} else {
				break
			}
			target = target.offset(dir.X, dir.Y)
		}
	}
	return moves
}
