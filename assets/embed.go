// assets/embed.go
//
// Default word bank shipped inside the binary.
// Layout of words/ (the same layout is expected from a WORDS_DIR override):
//   - termo.txt, dueto.txt, quarteto.txt: ordered daily solutions (accented).
//   - allowed.txt: accepted guesses, normalized.
//   - accents.txt: "normalized accented" pairs.

package assets

import (
	"embed"
	"io/fs"
)

//go:embed words/*.txt
var files embed.FS

// Words returns the embedded word bank directory.
func Words() fs.FS {
	sub, err := fs.Sub(files, "words")
	if err != nil {
		// words/ is embedded at build time; Sub cannot fail for it.
		panic(err)
	}
	return sub
}
