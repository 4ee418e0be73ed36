package model

const (
	PlayerHuman    = "human"
	PlayerComputer = "computer"
)

type ClientPlayer struct {
	Name     string `json:"name"`
	Color    Color  `json:"color"`
	TimeLeft int    `json:"timeLeft,omitempty"` // tenths of a second, 0 when untimed
}

// ParseColor accepts "white", "black" and "" (no side).
func ParseColor(s string) (Color, bool) {
	switch Color(s) {
	case White, Black:
		return Color(s), true
	case "":
		return "", true
	}
	return "", false
}
