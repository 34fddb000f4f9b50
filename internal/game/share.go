// internal/game/share.go
//
// Player-facing summaries of a finished game: the medal message and the
// emoji grid copied to the clipboard.

package game

import (
	"fmt"
	"strings"

	"github.com/robalobadob/termo/internal/mode"
)

const (
	ShareBrand = "Jogo.Work"
	ShareURL   = "https://jogo.work"

	ShareLegend = "🟩 - Letra correta na posição correta\n" +
		"🟨 - Letra correta na posição errada\n" +
		"⬛ - Letra não existe na palavra\n" +
		"🔳 - Tile não utilizado"

	emptyRowEmoji = "🔳🔳🔳🔳🔳"
)

// ResultMessage returns the end-of-game banner, or "" while playing.
func ResultMessage(s GameState) string {
	if !s.IsGameOver {
		return ""
	}
	if !s.IsWin {
		return "💀 Tente novamente amanhã!"
	}
	cfg, _ := mode.Lookup(s.Mode)
	switch n := s.CurrentRow; {
	case n <= cfg.Medals.First:
		return "🥇 Fenomenal!"
	case n <= cfg.Medals.Second:
		return "🥈 Excelente!"
	case n <= cfg.Medals.Third:
		return "🥉 Bom!"
	default:
		return "🎉 Conseguiu!"
	}
}

// TileEmoji maps a tile state to its share glyph.
func TileEmoji(t TileState) string {
	switch t {
	case TileCorrect:
		return "🟩"
	case TilePresent:
		return "🟨"
	case TileEmpty, TileFilled:
		return "🔳"
	default:
		return "⬛"
	}
}

func rowEmoji(b Board, row int) string {
	if row >= len(b.Guesses) {
		return emptyRowEmoji
	}
	var sb strings.Builder
	for _, t := range b.Guesses[row].Tiles {
		sb.WriteString(TileEmoji(t.State))
	}
	return sb.String()
}

// renderBoards writes maxRows lines; each line shows the given boards side by side.
func renderBoards(sb *strings.Builder, boards []Board, maxRows int) {
	for row := 0; row < maxRows; row++ {
		cells := make([]string, len(boards))
		for i, b := range boards {
			cells[i] = rowEmoji(b, row)
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteByte('\n')
	}
}

// ShareText renders the result grid. Quarteto boards are laid out 2×2.
func ShareText(s GameState, archive bool) string {
	result := fmt.Sprintf("X/%d", s.MaxAttempts)
	if s.IsWin {
		result = fmt.Sprintf("%d/%d", s.CurrentRow, s.MaxAttempts)
	}
	tag := ""
	if archive {
		tag = " (Arquivo)"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s - Dia #%d%s\n\n", ShareBrand, s.DayNumber, tag)
	fmt.Fprintf(&sb, "Modo: %s - Tentativas: %s\n\n", mode.DisplayName(s.Mode), result)
	sb.WriteString(ShareLegend)
	sb.WriteString("\n\n")

	for i := 0; i < len(s.Boards); i += 2 {
		if i > 0 {
			sb.WriteByte('\n')
		}
		renderBoards(&sb, s.Boards[i:min(i+2, len(s.Boards))], s.MaxAttempts)
	}

	sb.WriteString("\n\n🎮 Jogue também: ")
	sb.WriteString(ShareURL)
	return sb.String()
}
