// internal/words/words.go
//
// Word bank for the puzzle engine.
//
// Responsibilities:
//   - Normalize words for comparison (strip diacritics, lowercase).
//   - Hold, per mode, the ordered solution list (accented, for display) and the
//     set of accepted guesses (normalized).
//   - Hold the accent-restoration map (normalized → accented).
//
// Sources:
//   1. Default(): the lists embedded in the assets package (loaded once).
//   2. Load(dir): the same file layout read from a directory (WORDS_DIR).
//   3. FromLists(...): in-memory lists, for tests and custom dictionaries.
//
// Constraints:
//   • Words must normalize to exactly 5 letters a–z; other lines are skipped.
//   • Solutions of a mode are always accepted as guesses for that mode.
//   • A mode without solutions is a load error.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/robalobadob/termo/assets"
	"github.com/robalobadob/termo/internal/mode"
)

// WordLength is the number of letters in every word.
const WordLength = 5

const (
	allowedFile = "allowed.txt"
	accentsFile = "accents.txt"
)

// ErrUnknownMode is returned for a mode the bank has no list for.
var ErrUnknownMode = errors.New("words: unknown mode")

// Normalize decomposes s (NFD), drops every rune that is not an ASCII word
// character and lowercases the rest: "Órgão" → "orgao", "ç" → "c".
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.Predicate(notWordRune)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}
	return strings.ToLower(out)
}

func notWordRune(r rune) bool {
	return !(r == '_' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

// List is the pair of lists for one mode.
type List struct {
	Solutions []string // accented, daily order
	Allowed   []string // normalized, unordered
}

// Bank is an immutable word bank. Safe for concurrent use.
type Bank struct {
	solutions map[mode.Mode][]string
	allowed   map[mode.Mode]map[string]struct{}
	accents   map[string]string
}

// FromLists builds a bank. allowed is shared by every mode; each mode's own
// solutions are added to its accepted set.
func FromLists(solutions map[mode.Mode][]string, allowed []string, accents map[string]string) (*Bank, error) {
	b := &Bank{
		solutions: make(map[mode.Mode][]string, len(solutions)),
		allowed:   make(map[mode.Mode]map[string]struct{}, len(solutions)),
		accents:   make(map[string]string, len(accents)),
	}
	for k, v := range accents {
		b.accents[Normalize(k)] = v
	}
	for _, m := range mode.All() {
		list := keepValid(solutions[m])
		if len(list) == 0 {
			return nil, fmt.Errorf("words: no solutions for mode %s", m)
		}
		set := make(map[string]struct{}, len(allowed)+len(list))
		for _, w := range allowed {
			if n := Normalize(w); isWord(n) {
				set[n] = struct{}{}
			}
		}
		for _, w := range list {
			set[Normalize(w)] = struct{}{}
		}
		b.solutions[m] = list
		b.allowed[m] = set
	}
	return b, nil
}

var (
	defaultOnce sync.Once
	defaultBank *Bank
	defaultErr  error
)

// Default returns the embedded word bank, loading it on first use.
func Default() (*Bank, error) {
	defaultOnce.Do(func() {
		defaultBank, defaultErr = LoadFS(assets.Words())
	})
	return defaultBank, defaultErr
}

// Load reads a word bank directory from disk.
func Load(dir string) (*Bank, error) {
	if dir == "" {
		return Default()
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads a word bank from fsys: one solutions file per mode (named by
// mode.Config.SolutionsFile), allowed.txt and accents.txt.
func LoadFS(fsys fs.FS) (*Bank, error) {
	solutions := make(map[mode.Mode][]string)
	for _, m := range mode.All() {
		cfg, _ := mode.Lookup(m)
		lines, err := readLines(fsys, cfg.SolutionsFile)
		if err != nil {
			return nil, err
		}
		solutions[m] = lines
	}
	allowed, err := readLines(fsys, allowedFile)
	if err != nil {
		return nil, err
	}
	pairs, err := readLines(fsys, accentsFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	accents := make(map[string]string, len(pairs))
	for _, p := range pairs {
		fields := strings.Fields(p)
		if len(fields) != 2 {
			continue
		}
		accents[fields[0]] = fields[1]
	}
	return FromLists(solutions, allowed, accents)
}

// readLines returns the trimmed, lowercased, non-comment lines of name.
func readLines(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", name, err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read %s: %w", name, err)
	}
	return out, nil
}

// keepValid drops entries that do not normalize to a 5-letter word.
func keepValid(list []string) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		if isWord(Normalize(w)) {
			out = append(out, w)
		}
	}
	return out
}

// isWord reports whether s is exactly 5 lowercase ASCII letters.
func isWord(s string) bool {
	if len(s) != WordLength {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Solutions returns the ordered solution list of m. Callers must not modify it.
func (b *Bank) Solutions(m mode.Mode) []string { return b.solutions[m] }

// Allowed reports whether the normalized word is an accepted guess for m.
func (b *Bank) Allowed(m mode.Mode, normalized string) bool {
	_, ok := b.allowed[m][normalized]
	return ok
}

// Accented returns the accented spelling of a normalized word, if known.
func (b *Bank) Accented(normalized string) (string, bool) {
	w, ok := b.accents[normalized]
	return w, ok
}

// Words returns copies of both lists of m.
func (b *Bank) Words(m mode.Mode) (List, error) {
	sol, ok := b.solutions[m]
	if !ok {
		return List{}, fmt.Errorf("%w: %s", ErrUnknownMode, m)
	}
	allowed := make([]string, 0, len(b.allowed[m]))
	for w := range b.allowed[m] {
		allowed = append(allowed, w)
	}
	return List{Solutions: append([]string(nil), sol...), Allowed: allowed}, nil
}

// Stats returns (solutions, accepted guesses) counts for m.
func (b *Bank) Stats(m mode.Mode) (solutions int, allowed int) {
	return len(b.solutions[m]), len(b.allowed[m])
}
