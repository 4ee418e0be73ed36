package model

import "fmt"

// SimpleMove is a bare pair of squares, as submitted by a presentation layer.
type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Move describes one ply. PieceCaptured is the piece removed by the move; for
// en passant that pawn stands beside the destination, not on it.
type Move struct {
	From          Position `json:"from"`
	To            Position `json:"to"`
	PieceMoved    Piece    `json:"pieceMoved"`
	PieceCaptured Piece    `json:"pieceCaptured"`
	IsEnPassant   bool     `json:"isEnPassant,omitempty"`
	IsCastle      bool     `json:"isCastle,omitempty"`
	IsPromotion   bool     `json:"isPromotion,omitempty"`
}

// NewMove reads the moved and captured pieces off board. A pawn landing on
// either back rank is always flagged as a promotion.
func NewMove(from, to Position, board *Board) Move {
	m := Move{
		From:          from,
		To:            to,
		PieceMoved:    board.At(from),
		PieceCaptured: board.At(to),
	}
	m.IsPromotion = m.PieceMoved.Type == Pawn && (to.Y == 0 || to.Y == 7)
	return m
}

func newEnPassantMove(from, to Position, board *Board) Move {
	m := NewMove(from, to, board)
	m.IsEnPassant = true
	m.PieceCaptured = board[from.Y][to.X]
	return m
}

func newCastleMove(from, to Position, board *Board) Move {
	m := NewMove(from, to, board)
	m.IsCastle = true
	return m
}

// ID packs the endpoints into a single comparable number.
func (m Move) ID() int {
	return m.From.Y*1000 + m.From.X*100 + m.To.Y*10 + m.To.X
}

// Equal compares endpoints and flags. The promotion piece is not part of a
// move's identity since only queen promotion exists.
func (m Move) Equal(o Move) bool {
	return m.ID() == o.ID() &&
		m.IsEnPassant == o.IsEnPassant &&
		m.IsCastle == o.IsCastle &&
		m.IsPromotion == o.IsPromotion
}

// Notation renders the move as start and end squares, e.g. "e2e4".
func (m Move) Notation() string {
	return m.From.getSquareNotation() + m.To.getSquareNotation()
}

func (m Move) String() string {
	return m.Notation()
}

func (m Move) Simple() SimpleMove {
	return SimpleMove{From: m.From, To: m.To}
}

func (m Move) isCapture() bool {
	return !m.PieceCaptured.IsEmpty()
}

// Algebraic renders short algebraic notation for move lists. No check marks
// or disambiguation are added.
func (m Move) Algebraic() string {
	if m.IsCastle {
		if m.To.X > m.From.X {
			return "O-O"
		}
		return "O-O-O"
	}
	pieceNotationPrefix := m.PieceMoved.Type.getPieceNotation()
	pawnFileSpecifier := ""
	pieceNotationCapture := ""
	if m.isCapture() {
		pieceNotationCapture = "x"
		if m.PieceMoved.Type == Pawn {
			pawnFileSpecifier = m.From.getFileNotation()
		}
	}
	pieceNotationSuffix := m.To.getSquareNotation()
	if m.IsPromotion {
		pieceNotationSuffix += "=Q"
	}
	return fmt.Sprintf("%s%s%s%s", pieceNotationPrefix, pawnFileSpecifier, pieceNotationCapture, pieceNotationSuffix)
}
