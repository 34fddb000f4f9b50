package game

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/robalobadob/termo/internal/mode"
	"github.com/robalobadob/termo/internal/words"
)

const (
	C = TileCorrect
	P = TilePresent
	A = TileAbsent
)

func TestEvaluateGuess(t *testing.T) {
	cases := []struct {
		guess, target string
		want          []TileState
	}{
		{"termo", "termo", []TileState{C, C, C, C, C}},
		{"carro", "morro", []TileState{A, A, C, C, C}},
		{"llama", "alarm", []TileState{A, C, C, P, P}},
		// Surplus duplicates: the leftmost gets Present.
		{"arara", "sagaz", []TileState{P, A, P, A, A}},
		{"serra", "termo", []TileState{A, C, C, A, A}},
		// Accents are ignored on both sides.
		{"órgão", "orgao", []TileState{C, C, C, C, C}},
		{"LLAMA", "Alarm", []TileState{A, C, C, P, P}},
	}
	for _, c := range cases {
		got := EvaluateGuess(c.guess, c.target)
		if diff := cmp.Diff(c.want, states(got)); diff != "" {
			t.Errorf("EvaluateGuess(%q, %q) (-want +got):\n%s", c.guess, c.target, diff)
		}
		letters := make([]string, len(got))
		for i, tile := range got {
			letters[i] = tile.Letter
		}
		if w := strings.Join(letters, ""); w != words.Normalize(c.guess) {
			t.Errorf("tile letters %q, want %q", w, words.Normalize(c.guess))
		}
	}
}

// Every pair from the bundled termo list: greens plus yellows of a letter
// never exceed its count in the target, and a word against itself is all
// green.
func TestEvaluateGuessLetterBudget(t *testing.T) {
	bank, err := words.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	list := bank.Solutions(mode.Termo)
	for _, target := range list {
		for _, g := range list {
			tiles := EvaluateGuess(g, target)
			if g == target && !allCorrect(tiles) {
				t.Errorf("%q against itself: %v", g, states(tiles))
			}
			used := map[string]int{}
			for _, tile := range tiles {
				if tile.State == C || tile.State == P {
					used[tile.Letter]++
				}
			}
			norm := words.Normalize(target)
			for letter, n := range used {
				if limit := strings.Count(norm, letter); n > limit {
					t.Errorf("%q vs %q: %d marks for %q, target has %d", g, target, n, letter, limit)
				}
			}
		}
	}
}

func TestCheckHardMode(t *testing.T) {
	// amigo: audaz reveals A at 1, olhar reveals O and A as present.
	history := []Guess{
		{Word: "audaz", Tiles: EvaluateGuess("audaz", "amigo")},
		{Word: "olhar", Tiles: EvaluateGuess("olhar", "amigo")},
	}

	cases := []struct {
		name    string
		guess   string
		prev    []Guess
		valid   bool
		message string
	}{
		{"no history", "nobre", nil, true, ""},
		{"position first", "nobre", history, false, "A letra A deve estar na posição 1"},
		{"missing present", "antes", history, false, "O palpite deve conter a letra O"},
		{"all hints", "amigo", history, true, ""},
		{"hints in other spots", "aroma", history, true, ""},
	}
	for _, c := range cases {
		got := CheckHardMode(c.guess, c.prev)
		if got.Valid != c.valid || got.Message != c.message {
			t.Errorf("%s: CheckHardMode(%q) = %+v, want valid=%v %q", c.name, c.guess, got, c.valid, c.message)
		}
	}
}

func TestCheckHardModeReportsFirstPosition(t *testing.T) {
	prev := []Guess{{Word: "serra", Tiles: EvaluateGuess("serra", "termo")}}
	got := CheckHardMode("audio", prev)
	if want := "A letra E deve estar na posição 2"; got.Message != want {
		t.Errorf("message %q, want %q", got.Message, want)
	}
}

func TestUpdateKeyStatesNeverDowngrades(t *testing.T) {
	tiles := func(word string, st ...TileState) Guess {
		g := Guess{Word: word}
		for i, r := range word {
			g.Tiles = append(g.Tiles, Tile{Letter: string(r), State: st[i]})
		}
		return g
	}
	boards := []Board{
		{Guesses: []Guess{
			tiles("abcde", C, P, A, A, A),
			tiles("xaxxx", A, A, A, A, A), // a absent here, still Correct overall
			tiles("bxxxx", A, A, A, A, A), // b was Present
		}},
		{Guesses: []Guess{
			tiles("abcde", A, A, A, A, P),
		}},
	}
	ks := UpdateKeyStates(boards)

	want := map[string][]KeyState{
		"a": {KeyCorrect, KeyAbsent},
		"b": {KeyPresent, KeyAbsent},
		"c": {KeyAbsent, KeyAbsent},
		"e": {KeyAbsent, KeyPresent},
		"x": {KeyAbsent, KeyUnused},
	}
	for letter, w := range want {
		if diff := cmp.Diff(w, ks[letter]); diff != "" {
			t.Errorf("key %q (-want +got):\n%s", letter, diff)
		}
	}
	if got := ks.Get("z", 0); got != KeyUnused {
		t.Errorf("unseen key = %s", got)
	}
	if got := ks.Get("a", 5); got != KeyUnused {
		t.Errorf("out of range board = %s", got)
	}
}

func TestStatesEncodeAsNames(t *testing.T) {
	g := Guess{Word: "serra", Tiles: EvaluateGuess("serra", "termo")}
	b, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(b), `{"letter":"e","state":"correct"}`) {
		t.Errorf("unexpected encoding %s", b)
	}

	var back Guess
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(g, back); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}

	var ks KeyStates
	if err := json.Unmarshal([]byte(`{"a":["unused","correct"]}`), &ks); err != nil {
		t.Fatalf("Unmarshal keys: %v", err)
	}
	if ks.Get("a", 1) != KeyCorrect {
		t.Errorf("decoded %v", ks)
	}

	var tile Tile
	if err := json.Unmarshal([]byte(`{"letter":"a","state":"purple"}`), &tile); err == nil {
		t.Error("expected error for unknown tile state")
	}
}
