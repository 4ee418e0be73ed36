package model

import (
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

func engineMoves(gs *GameState) []string {
	moves := gs.ValidMoves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.Notation())
	}
	sort.Strings(out)
	return out
}

func dragontoothSquare(sq uint8) string {
	return fmt.Sprintf("%c%d", 'a'+sq%8, sq/8+1)
}

// dragontoothMoves lists the legal moves of fen, keeping only queen promotions.
func dragontoothMoves(fen string) []string {
	board := dragontoothmg.ParseFen(fen)
	moves := board.GenerateLegalMoves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		if p := m.Promote(); p != dragontoothmg.Nothing && p != dragontoothmg.Queen {
			continue
		}
		out = append(out, dragontoothSquare(m.From())+dragontoothSquare(m.To()))
	}
	sort.Strings(out)
	return out
}

func notnilMoves(pos *chess.Position) []string {
	moves := pos.ValidMoves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		if m.Promo() != chess.NoPieceType && m.Promo() != chess.Queen {
			continue
		}
		out = append(out, m.S1().String()+m.S2().String())
	}
	sort.Strings(out)
	return out
}

func TestMovesMatchDragontooth(t *testing.T) {
	for _, tc := range loadPerftCases(t) {
		t.Run(tc.Name, func(t *testing.T) {
			gs := mustFEN(t, tc.FEN)
			if got, want := engineMoves(gs), dragontoothMoves(tc.FEN); !reflect.DeepEqual(got, want) {
				t.Fatalf("root moves differ:\n got %v\nwant %v", got, want)
			}
			for _, m := range gs.ValidMoves() {
				gs.MakeMove(m)
				fen := gs.FEN()
				if got, want := engineMoves(gs), dragontoothMoves(fen); !reflect.DeepEqual(got, want) {
					t.Fatalf("after %s (%s):\n got %v\nwant %v", m, fen, got, want)
				}
				gs.UndoMove()
			}
		})
	}
}

func TestRandomGamesMatchNotnil(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	games := 12
	if testing.Short() {
		games = 3
	}
	for game := 0; game < games; game++ {
		gs := NewGameState()
		ref := chess.NewGame()
		pos := ref.Position()

		for ply := 0; ply < 160; ply++ {
			got, want := engineMoves(gs), notnilMoves(pos)
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("game %d ply %d (%s): moves differ:\n got %v\nwant %v", game, ply, gs.FEN(), got, want)
			}
			if board := strings.Fields(gs.FEN())[0]; board != pos.Board().String() {
				t.Fatalf("game %d ply %d: boards differ: %s vs %s", game, ply, board, pos.Board().String())
			}

			status := pos.Status()
			if gs.CheckMate() != (status == chess.Checkmate) || gs.StaleMate() != (status == chess.Stalemate) {
				t.Fatalf("game %d ply %d: status mismatch: checkMate=%v staleMate=%v reference=%v",
					game, ply, gs.CheckMate(), gs.StaleMate(), status)
			}
			if len(got) == 0 {
				break
			}

			moves := gs.ValidMoves()
			m := moves[rng.Intn(len(moves))]
			var refMove *chess.Move
			for _, rm := range pos.ValidMoves() {
				if rm.S1().String()+rm.S2().String() == m.Notation() &&
					(rm.Promo() == chess.NoPieceType || rm.Promo() == chess.Queen) {
					refMove = rm
					break
				}
			}
			if refMove == nil {
				t.Fatalf("game %d ply %d: reference has no move %s", game, ply, m)
			}
			gs.MakeMove(m)
			pos = pos.Update(refMove)
		}
	}
}
