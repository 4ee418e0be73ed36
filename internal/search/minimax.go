// Package search picks moves for the computer side with a fixed two-ply,
// material-only minimax.
package search

import (
	"math/rand"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/model"
)

const (
	Checkmate = 1000
	Stalemate = 0
)

var pieceScore = map[model.PieceType]int{
	model.King:   0,
	model.Queen:  9,
	model.Rook:   5,
	model.Bishop: 3,
	model.Knight: 3,
	model.Pawn:   1,
}

// Position is the part of the game state the search drives.
type Position interface {
	WhiteToMove() bool
	Board() model.Board
	ValidMoves() []model.Move
	MakeMove(m model.Move)
	UndoMove()
	CheckMate() bool
	StaleMate() bool
}

// FindRandomMove picks any of moves.
func FindRandomMove(moves []model.Move, rng *rand.Rand) (model.Move, bool) {
	if len(moves) == 0 {
		return model.Move{}, false
	}
	return moves[rng.Intn(len(moves))], true
}

// FindBestMove plays each candidate, lets the opponent answer with every reply
// and keeps the candidate whose best reply scores lowest for the opponent.
// Candidates are shuffled first so equal choices vary between calls.
func FindBestMove(pos Position, validMoves []model.Move, rng *rand.Rand) (model.Move, bool) {
	if len(validMoves) == 0 {
		return model.Move{}, false
	}
	moves := make([]model.Move, len(validMoves))
	copy(moves, validMoves)
	rng.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })

	// material is counted from the opponent's side
	turnMultiplier := 1
	if pos.WhiteToMove() {
		turnMultiplier = -1
	}

	bestPlayerMove := moves[0]
	opponentMinMaxScore := Checkmate + 1
	for _, playerMove := range moves {
		pos.MakeMove(playerMove)
		opponentMaxScore := opponentBestReply(pos, turnMultiplier)
		pos.UndoMove()

		if opponentMaxScore < opponentMinMaxScore {
			opponentMinMaxScore = opponentMaxScore
			bestPlayerMove = playerMove
		}
	}
	return bestPlayerMove, true
}

func opponentBestReply(pos Position, turnMultiplier int) int {
	opponentMoves := pos.ValidMoves()
	if len(opponentMoves) == 0 {
		if pos.CheckMate() {
			return -Checkmate
		}
		return Stalemate
	}

	opponentMaxScore := -Checkmate
	for _, opponentMove := range opponentMoves {
		pos.MakeMove(opponentMove)
		pos.ValidMoves()
		var score int
		switch {
		case pos.CheckMate():
			score = Checkmate
		case pos.StaleMate():
			score = Stalemate
		default:
			score = turnMultiplier * ScoreMaterial(pos.Board())
		}
		if score > opponentMaxScore {
			opponentMaxScore = score
		}
		pos.UndoMove()
	}
	return opponentMaxScore
}

// ScoreMaterial sums piece values, white positive.
func ScoreMaterial(board model.Board) int {
	score := 0
	for _, row := range board {
		for _, piece := range row {
			switch piece.Color {
			case model.White:
				score += pieceScore[piece.Type]
			case model.Black:
				score -= pieceScore[piece.Type]
			}
		}
	}
	return score
}

// Engine adapts FindBestMove to model.MoveChooser. One Engine may serve many
// games; the random source is guarded.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewEngine(seed int64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

func (e *Engine) ChooseMove(gs *model.GameState, legal []model.Move) (model.Move, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return FindBestMove(gs, legal, e.rng)
}
