package ui

import "github.com/Mshel/loong/internal/game"

// Runes for a grid drawn top row first, which is how the session publishes
// frames. Tails point at the segment they hang from.
var (
	headRunes = map[game.Direction]string{
		game.Up:    "▲",
		game.Down:  "▼",
		game.Left:  "◀",
		game.Right: "▶",
	}

	tailRunes = map[game.Direction]string{
		game.Up:    "╷",
		game.Down:  "╵",
		game.Left:  "╶",
		game.Right: "╴",
	}

	cornerRunes = map[game.Corner]string{
		game.TopLeft:     "╭",
		game.TopRight:    "╮",
		game.BottomLeft:  "╰",
		game.BottomRight: "╯",
	}

	foodRune  = "●"
	emptyRune = "·"
)

func partRune(p game.Part) string {
	switch p.Kind {
	case game.PartHead:
		return headRunes[p.Facing]
	case game.PartTail:
		return tailRunes[p.Facing]
	case game.PartBody:
		if p.Vertical {
			return "│"
		}
		return "─"
	default:
		return cornerRunes[p.Corner]
	}
}
