// internal/game/evaluate.go
//
// Guess scoring and hard-mode checks for a single board.

package game

import (
	"fmt"
	"strings"

	"github.com/robalobadob/termo/internal/words"
)

// EvaluateGuess colours guess against target using the two-pass algorithm.
// Both words are normalized first.
//
// Pass 1 marks exact matches Correct and consumes those letters from the
// target's letter counts. Pass 2 walks the remaining positions left to right
// and marks Present while the letter still has unconsumed occurrences,
// Absent otherwise. So for any letter, Correct+Present never exceeds its count
// in the target, and among surplus duplicates the leftmost wins Present.
func EvaluateGuess(guess, target string) []Tile {
	g := []rune(words.Normalize(guess))
	t := []rune(words.Normalize(target))
	tiles := make([]Tile, Slots)

	available := make(map[rune]int, len(t))
	for _, r := range t {
		available[r]++
	}

	// Pass 1: greens.
	for i := 0; i < Slots; i++ {
		if i >= len(g) {
			tiles[i].State = TileAbsent
			continue
		}
		tiles[i].Letter = string(g[i])
		if i < len(t) && g[i] == t[i] {
			tiles[i].State = TileCorrect
			available[g[i]]--
		}
	}

	// Pass 2: yellows from what is left.
	for i := 0; i < Slots && i < len(g); i++ {
		if tiles[i].State == TileCorrect {
			continue
		}
		if available[g[i]] > 0 {
			tiles[i].State = TilePresent
			available[g[i]]--
		} else {
			tiles[i].State = TileAbsent
		}
	}
	return tiles
}

// allCorrect reports whether every tile is Correct.
func allCorrect(tiles []Tile) bool {
	if len(tiles) != Slots {
		return false
	}
	for _, t := range tiles {
		if t.State != TileCorrect {
			return false
		}
	}
	return true
}

// Compliance is the outcome of a hard-mode check.
type Compliance struct {
	Valid   bool
	Message string
}

// CheckHardMode verifies that guess reuses every hint revealed by the
// previous guesses of one board: each Correct tile must be repeated at its
// position, each Present letter must appear somewhere.
//
// Positions are checked first, in increasing order; present letters only
// after all positions pass, in the order they were first revealed. The first
// violation is returned.
func CheckHardMode(guess string, previous []Guess) Compliance {
	if len(previous) == 0 {
		return Compliance{Valid: true}
	}
	g := []rune(words.Normalize(guess))

	var fixed [Slots]string
	var present []string
	seen := make(map[string]bool)
	for _, pg := range previous {
		for i, tile := range pg.Tiles {
			if i >= Slots {
				break
			}
			switch tile.State {
			case TileCorrect:
				fixed[i] = tile.Letter
			case TilePresent:
				if !seen[tile.Letter] {
					seen[tile.Letter] = true
					present = append(present, tile.Letter)
				}
			}
		}
	}

	for pos, letter := range fixed {
		if letter == "" {
			continue
		}
		if pos >= len(g) || string(g[pos]) != letter {
			return Compliance{
				Message: fmt.Sprintf("A letra %s deve estar na posição %d", strings.ToUpper(letter), pos+1),
			}
		}
	}
	for _, letter := range present {
		if !strings.Contains(string(g), letter) {
			return Compliance{
				Message: fmt.Sprintf("O palpite deve conter a letra %s", strings.ToUpper(letter)),
			}
		}
	}
	return Compliance{Valid: true}
}
