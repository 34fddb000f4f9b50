package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/robalobadob/termo/internal/game"
)

var keyboardRows = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

// palette maps tile and key states to terminal colours.
type palette struct {
	correct, present, absent, filled, empty *color.Color
}

func newPalette(highContrast bool) palette {
	p := palette{
		correct: color.New(color.BgGreen, color.FgBlack, color.Bold),
		present: color.New(color.BgYellow, color.FgBlack, color.Bold),
		absent:  color.New(color.BgHiBlack, color.FgWhite),
		filled:  color.New(color.FgHiWhite, color.Bold, color.Underline),
		empty:   color.New(color.FgHiBlack),
	}
	if highContrast {
		p.correct = color.New(color.BgHiRed, color.FgBlack, color.Bold)
		p.present = color.New(color.BgHiCyan, color.FgBlack, color.Bold)
	}
	return p
}

func (p palette) tile(st game.TileState) *color.Color {
	switch st {
	case game.TileCorrect:
		return p.correct
	case game.TilePresent:
		return p.present
	case game.TileAbsent:
		return p.absent
	case game.TileFilled:
		return p.filled
	default:
		return p.empty
	}
}

func (p palette) key(st game.KeyState) *color.Color {
	switch st {
	case game.KeyCorrect:
		return p.correct
	case game.KeyPresent:
		return p.present
	case game.KeyAbsent:
		return p.absent
	default:
		return p.filled
	}
}

// renderBoards prints every board side by side, one line per attempt. The
// current row shows the letters typed so far.
func renderBoards(w io.Writer, s game.GameState, p palette) {
	for row := 0; row < s.MaxAttempts; row++ {
		cells := make([]string, len(s.Boards))
		for i, b := range s.Boards {
			cells[i] = renderRow(b, s, row, p)
		}
		fmt.Fprintln(w, strings.Join(cells, "   "))
	}
}

func renderRow(b game.Board, s game.GameState, row int, p palette) string {
	var sb strings.Builder
	switch {
	case row < len(b.Guesses):
		for _, t := range b.Guesses[row].Tiles {
			sb.WriteString(p.tile(t.State).Sprint(" " + strings.ToUpper(t.Letter) + " "))
		}
	case row == s.CurrentRow && !b.IsComplete && !s.IsGameOver:
		for _, l := range s.CurrentGuess {
			if l == "" {
				sb.WriteString(p.empty.Sprint(" _ "))
			} else {
				sb.WriteString(p.filled.Sprint(" " + strings.ToUpper(l) + " "))
			}
		}
	default:
		sb.WriteString(p.empty.Sprint(strings.Repeat(" · ", game.Slots)))
	}
	return sb.String()
}

// renderKeyboard prints one keyboard per board, side by side.
func renderKeyboard(w io.Writer, s game.GameState, p palette) {
	for r, keys := range keyboardRows {
		parts := make([]string, len(s.Boards))
		for b := range s.Boards {
			var sb strings.Builder
			sb.WriteString(strings.Repeat(" ", r))
			for _, k := range keys {
				sb.WriteString(p.key(s.KeyStates.Get(string(k), b)).Sprint(strings.ToUpper(string(k))))
				sb.WriteByte(' ')
			}
			parts[b] = sb.String() + strings.Repeat(" ", len(keyboardRows[0])*2-len(keys)*2-r)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
}

// renderSolutions lists the answer of each board with its accents.
func renderSolutions(w io.Writer, s game.GameState, display func(string) string) {
	out := make([]string, len(s.Boards))
	for i, b := range s.Boards {
		out[i] = strings.ToUpper(display(b.Solution))
	}
	fmt.Fprintf(w, "Palavras: %s\n", strings.Join(out, ", "))
}

func renderStats(w io.Writer, st game.Stats) {
	fmt.Fprintf(w, "Jogos: %d  Vitórias: %d%%  Sequência: %d  Melhor: %d\n",
		st.GamesPlayed, st.WinRate(), st.CurrentStreak, st.MaxStreak)
	last := len(st.GuessDistribution) - 1
	for i, n := range st.GuessDistribution {
		label := fmt.Sprintf("%d", i+1)
		if i == last {
			label = "X"
		}
		fmt.Fprintf(w, "  %s %s %d\n", label, strings.Repeat("█", n), n)
	}
}
