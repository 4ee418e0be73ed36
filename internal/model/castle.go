package model

type CastleRights struct {
	WhiteKingSide  bool `json:"whiteKingSide"`
	WhiteQueenSide bool `json:"whiteQueenSide"`
	BlackKingSide  bool `json:"blackKingSide"`
	BlackQueenSide bool `json:"blackQueenSide"`
}

func fullCastleRights() CastleRights {
	return CastleRights{WhiteKingSide: true, WhiteQueenSide: true, BlackKingSide: true, BlackQueenSide: true}
}

func (cr CastleRights) kingSide(c Color) bool {
	if c == White {
		return cr.WhiteKingSide
	}
	return cr.BlackKingSide
}

func (cr CastleRights) queenSide(c Color) bool {
	if c == White {
		return cr.WhiteQueenSide
	}
	return cr.BlackQueenSide
}

// Rook home squares.
var (
	whiteKingRook  = Position{X: 7, Y: 7}
	whiteQueenRook = Position{X: 0, Y: 7}
	blackKingRook  = Position{X: 7, Y: 0}
	blackQueenRook = Position{X: 0, Y: 0}
)

// after returns the rights left once m has been played. Anything leaving or
// landing on a rook's home corner kills that wing: either the rook moved or
// it was captured there.
func (cr CastleRights) after(m Move) CastleRights {
	if m.PieceMoved.Type == King {
		if m.PieceMoved.Color == White {
			cr.WhiteKingSide, cr.WhiteQueenSide = false, false
		} else {
			cr.BlackKingSide, cr.BlackQueenSide = false, false
		}
	}
	for _, sq := range [2]Position{m.From, m.To} {
		switch sq {
		case whiteKingRook:
			cr.WhiteKingSide = false
		case whiteQueenRook:
			cr.WhiteQueenSide = false
		case blackKingRook:
			cr.BlackKingSide = false
		case blackQueenRook:
			cr.BlackQueenSide = false
		}
	}
	return cr
}

func (cr CastleRights) fen() string {
	s := ""
	if cr.WhiteKingSide {
		s += "K"
	}
	if cr.WhiteQueenSide {
		s += "Q"
	}
	if cr.BlackKingSide {
		s += "k"
	}
	if cr.BlackQueenSide {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}
