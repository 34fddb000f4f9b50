package game

// UpdateKeyStates folds every board's guesses into per-letter, per-board key
// colours. A key only ever moves up the Unused < Absent < Present < Correct
// ladder, so a later, less informative guess never hides a green.
func UpdateKeyStates(boards []Board) KeyStates {
	states := make(KeyStates)
	for b, board := range boards {
		for _, g := range board.Guesses {
			for _, tile := range g.Tiles {
				if tile.Letter == "" {
					continue
				}
				v, ok := states[tile.Letter]
				if !ok {
					v = make([]KeyState, len(boards))
					states[tile.Letter] = v
				}
				if next := keyStateOf(tile.State); next >= v[b] {
					v[b] = next
				}
			}
		}
	}
	return states
}
