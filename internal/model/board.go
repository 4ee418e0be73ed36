package model

import "fmt"

type PieceType string

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Piece is the content of one square. The zero value is an empty square.
type Piece struct {
	Color Color     `json:"color,omitempty"`
	Type  PieceType `json:"type,omitempty"`
}

var NoPiece = Piece{}

func (p Piece) IsEmpty() bool {
	return p.Type == ""
}

func (p Piece) Is(c Color, t PieceType) bool {
	return p.Color == c && p.Type == t
}

// Board is indexed [row][col]; row 0 is rank 8, row 7 is rank 1.
type Board [8][8]Piece

func (b *Board) At(p Position) Piece {
	return b[p.Y][p.X]
}

func (b *Board) set(p Position, piece Piece) {
	b[p.Y][p.X] = piece
}

type BoardState struct {
	Board             Board    `json:"board"`
	BlackKingPosition Position `json:"blackKingPosition"`
	WhiteKingPosition Position `json:"whiteKingPosition"`
}

func (bs *BoardState) kingPosition(c Color) Position {
	if c == White {
		return bs.WhiteKingPosition
	}
	return bs.BlackKingPosition
}

func (bs *BoardState) setKingPosition(c Color, p Position) {
	if c == White {
		bs.WhiteKingPosition = p
	} else {
		bs.BlackKingPosition = p
	}
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) getSquareNotation() string {
	return fmt.Sprintf("%c%d", p.X+97, 8-p.Y)
}

func (p Position) getFileNotation() string {
	return fmt.Sprintf("%c", p.X+97)
}

// String renders the square in file+rank form, e.g. "e4".
func (p Position) String() string {
	return p.getSquareNotation()
}

func (p Position) offset(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func boundaryCheck(position Position) bool {
	return position.X >= 0 && position.X < 8 && position.Y >= 0 && position.Y < 8
}

// InBounds reports whether p names a square on the board.
func (p Position) InBounds() bool {
	return boundaryCheck(p)
}

// ParseSquare converts "e4" style coordinates into a Position.
func ParseSquare(s string) (Position, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Position{}, fmt.Errorf("square %q: %w", s, ErrOutOfBounds)
	}
	return Position{X: int(s[0] - 'a'), Y: 8 - int(s[1]-'0')}, nil
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func newBoard() *BoardState {
	board := &BoardState{}
	for x := 0; x < 8; x++ {
		board.Board[0][x] = Piece{Color: Black, Type: backRank[x]}
		board.Board[1][x] = Piece{Color: Black, Type: Pawn}
		board.Board[6][x] = Piece{Color: White, Type: Pawn}
		board.Board[7][x] = Piece{Color: White, Type: backRank[x]}
	}
	board.BlackKingPosition = Position{X: 4, Y: 0}
	board.WhiteKingPosition = Position{X: 4, Y: 7}
	return board
}
