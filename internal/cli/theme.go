package cli

import (
	"fmt"
	"strings"

	"xiangqi/internal/board"
	"xiangqi/internal/core"
)

type ColorTheme string

const (
	ThemeOff  ColorTheme = "off"
	ThemeRed  ColorTheme = "red"
	ThemeWood ColorTheme = "wood"
	ThemeGray ColorTheme = "gray"
)

type themeColors struct {
	boardBg string
	lastBg  string // squares of the last move
	red     string
	black   string
	river   string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeRed: {
		boardBg: "\033[48;5;224m", // Pale rose
		lastBg:  "\033[48;5;217m",
		red:     "\033[1;31m",
		black:   "\033[1;30m",
		river:   "\033[34m",
		reset:   "\033[0m",
	},
	ThemeWood: {
		boardBg: "\033[48;5;180m", // Tan
		lastBg:  "\033[48;5;222m",
		red:     "\033[1;31m",
		black:   "\033[1;30m",
		river:   "\033[36m",
		reset:   "\033[0m",
	},
	ThemeGray: {
		boardBg: "\033[48;5;251m", // Light gray
		lastBg:  "\033[48;5;245m",
		red:     "\033[1;31m",
		black:   "\033[1;30m",
		river:   "\033[34m",
		reset:   "\033[0m",
	},
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("%w: invalid theme %s (use: off, red, wood, gray)", core.ErrIllegalArgument, theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) Theme() ColorTheme {
	return c.theme
}

// renderBoard draws rank 9 at the top with the river between ranks 5 and 4
func (c *CLI) renderBoard(b *board.Board, last *board.Move) string {
	theme := themes[c.theme]
	var sb strings.Builder

	sb.WriteString("\n  a b c d e f g h i\n")

	for y := board.Ranks - 1; y >= 0; y-- {
		sb.WriteString(fmt.Sprintf("%d ", y))
		for x := 0; x < board.Files; x++ {
			p := board.Position{X: x, Y: y}
			pc := b.At(p)

			if c.theme == ThemeOff {
				sb.WriteString(pc.String())
				sb.WriteByte(' ')
				continue
			}

			bg := theme.boardBg
			if last != nil && (p == last.From || p == last.To) {
				bg = theme.lastBg
			}
			fg := theme.black
			if pc.Color == core.ColorRed {
				fg = theme.red
			}
			sb.WriteString(fmt.Sprintf("%s%s%s %s", bg, fg, pc.String(), theme.reset))
		}
		sb.WriteString(fmt.Sprintf(" %d\n", y))

		if y == 5 {
			sb.WriteString(fmt.Sprintf("  %s~~~~~~~~~~~~~~~~~%s\n", theme.river, theme.reset))
		}
	}
	sb.WriteString("  a b c d e f g h i\n")

	return sb.String()
}
