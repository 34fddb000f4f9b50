// internal/game/input.go
//
// Editing of the current guess slots. The cursor is a slot index in [0, 5];
// 5 means "past the last slot" (every slot filled).

package game

import "github.com/robalobadob/termo/internal/words"

// TypeLetter writes letter into the slot under the cursor, replacing what was
// there, then moves the cursor to the next empty slot. Anything that does not
// normalize to a single letter is ignored, as is typing into a finished game
// or with the cursor past the last slot.
func TypeLetter(s GameState, cursor int, letter string) (GameState, int) {
	l := words.Normalize(letter)
	if s.IsGameOver || cursor < 0 || cursor >= Slots || len(l) != 1 || l[0] < 'a' || l[0] > 'z' {
		return s, cursor
	}
	out := s.Clone()
	out.CurrentGuess[cursor] = l
	return out, NextEmpty(out, cursor)
}

// Backspace clears the slot under the cursor. On an empty slot (or past the
// end) it first steps back one slot and clears that one instead.
func Backspace(s GameState, cursor int) (GameState, int) {
	if s.IsGameOver || cursor < 0 {
		return s, cursor
	}
	target := cursor
	if cursor >= Slots || s.CurrentGuess[cursor] == "" {
		if cursor == 0 {
			return s, cursor
		}
		target = min(cursor, Slots) - 1
	}
	out := s.Clone()
	out.CurrentGuess[target] = ""
	return out, target
}

// NextEmpty returns the first empty slot after cursor, wrapping around, or
// Slots when every other slot is filled.
func NextEmpty(s GameState, cursor int) int {
	for i := 1; i < Slots; i++ {
		pos := (cursor + i) % Slots
		if s.CurrentGuess[pos] == "" {
			return pos
		}
	}
	return Slots
}

// MoveCursor shifts the cursor by delta, clamped to the slots.
func MoveCursor(cursor, delta int) int {
	return max(0, min(Slots-1, cursor+delta))
}

// FillGuess replaces the current guess with the letters of word, normalized.
// Extra letters are dropped; missing ones leave empty slots.
func FillGuess(s GameState, word string) GameState {
	out := s.Clone()
	out.CurrentGuess = [Slots]string{}
	for i, r := range words.Normalize(word) {
		if i >= Slots {
			break
		}
		out.CurrentGuess[i] = string(r)
	}
	return out
}
