package model

// Perft counts the leaf nodes of the legal move tree to depth.
func Perft(gs *GameState, depth int) int64 {
	if depth <= 0 {
		return 1
	}
	moves := gs.ValidMoves()
	if depth == 1 {
		return int64(len(moves))
	}
	var nodes int64
	for _, m := range moves {
		gs.MakeMove(m)
		nodes += Perft(gs, depth-1)
		gs.UndoMove()
	}
	return nodes
}

// Divide reports the perft count below each root move, keyed by notation.
func Divide(gs *GameState, depth int) map[string]int64 {
	out := make(map[string]int64)
	if depth <= 0 {
		return out
	}
	for _, m := range gs.ValidMoves() {
		gs.MakeMove(m)
		out[m.Notation()] = Perft(gs, depth-1)
		gs.UndoMove()
	}
	return out
}
