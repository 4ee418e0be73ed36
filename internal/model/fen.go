package model

import (
	"fmt"
	"strconv"
	"strings"
)

const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var fenPieces = map[byte]PieceType{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

var fenLetters = map[PieceType]byte{
	Pawn: 'p', Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q', King: 'k',
}

// ParseFEN builds a GameState from a FEN record. The halfmove clock is read
// and discarded; the fullmove number defaults to 1. Castling rights whose king
// or rook is not on its home square are dropped. A position where the side not
// to move is in check is rejected, since its king could be captured.
func ParseFEN(fen string) (*GameState, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, fmt.Errorf("%w: want 4 to 6 fields, got %d", ErrInvalidFEN, len(fields))
	}

	board := &BoardState{}
	kings := map[Color]int{}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: want 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	for y, rank := range ranks {
		x := 0
		for i := 0; i < len(rank); i++ {
			ch := rank[i]
			if ch >= '1' && ch <= '8' {
				x += int(ch - '0')
				continue
			}
			color := White
			lower := ch
			if ch >= 'a' && ch <= 'z' {
				color = Black
			} else {
				lower = ch + ('a' - 'A')
			}
			pt, ok := fenPieces[lower]
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, ch)
			}
			if x > 7 {
				return nil, fmt.Errorf("%w: rank %d too long", ErrInvalidFEN, 8-y)
			}
			if pt == Pawn && (y == 0 || y == 7) {
				return nil, fmt.Errorf("%w: pawn on back rank", ErrInvalidFEN)
			}
			board.Board[y][x] = Piece{Color: color, Type: pt}
			if pt == King {
				kings[color]++
				board.setKingPosition(color, Position{X: x, Y: y})
			}
			x++
		}
		if x != 8 {
			return nil, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, 8-y, x)
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return nil, fmt.Errorf("%w: need exactly one king per side", ErrInvalidFEN)
	}

	var toMove Color
	switch fields[1] {
	case "w":
		toMove = White
	case "b":
		toMove = Black
	default:
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}

	rights, err := parseCastleRights(fields[2])
	if err != nil {
		return nil, err
	}
	rights = sanitizeCastleRights(rights, &board.Board)

	var ep *Position
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: en passant %q", ErrInvalidFEN, fields[3])
		}
		if (toMove == White && sq.Y != 2) || (toMove == Black && sq.Y != 5) {
			return nil, fmt.Errorf("%w: en passant square %s on wrong rank", ErrInvalidFEN, sq)
		}
		ep = &sq
	}

	fullMove := 1
	if len(fields) == 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: fullmove number %q", ErrInvalidFEN, fields[5])
		}
		fullMove = n
	}

	gs := newGameStateFrom(board, toMove, rights, ep, fullMove)
	if gs.SquareUnderAttack(gs.KingPosition(toMove.Opponent()), toMove) {
		return nil, fmt.Errorf("%w: side not to move is in check", ErrInvalidFEN)
	}
	return gs, nil
}

func parseCastleRights(s string) (CastleRights, error) {
	var cr CastleRights
	if s == "-" {
		return cr, nil
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'K':
			cr.WhiteKingSide = true
		case 'Q':
			cr.WhiteQueenSide = true
		case 'k':
			cr.BlackKingSide = true
		case 'q':
			cr.BlackQueenSide = true
		default:
			return cr, fmt.Errorf("%w: castling %q", ErrInvalidFEN, s)
		}
	}
	return cr, nil
}

func sanitizeCastleRights(cr CastleRights, b *Board) CastleRights {
	whiteKingHome := b[7][4].Is(White, King)
	blackKingHome := b[0][4].Is(Black, King)
	cr.WhiteKingSide = cr.WhiteKingSide && whiteKingHome && b.At(whiteKingRook).Is(White, Rook)
	cr.WhiteQueenSide = cr.WhiteQueenSide && whiteKingHome && b.At(whiteQueenRook).Is(White, Rook)
	cr.BlackKingSide = cr.BlackKingSide && blackKingHome && b.At(blackKingRook).Is(Black, Rook)
	cr.BlackQueenSide = cr.BlackQueenSide && blackKingHome && b.At(blackQueenRook).Is(Black, Rook)
	return cr
}

// FEN renders the current position. The halfmove clock is always 0.
func (gs *GameState) FEN() string {
	var sb strings.Builder
	for y := 0; y < 8; y++ {
		empty := 0
		for x := 0; x < 8; x++ {
			p := gs.board.Board[y][x]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			letter := fenLetters[p.Type]
			if p.Color == White {
				letter -= 'a' - 'A'
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if y < 7 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if gs.toMove == Black {
		side = "b"
	}
	ep := "-"
	if gs.enPassantTarget != nil {
		ep = gs.enPassantTarget.String()
	}
	offset := 0
	if gs.startToMove == Black {
		offset = 1
	}
	fullMove := gs.fullMoveBase + (len(gs.moveLog)+offset)/2
	return fmt.Sprintf("%s %s %s %s 0 %d", sb.String(), side, gs.castleRights.fen(), ep, fullMove)
}
