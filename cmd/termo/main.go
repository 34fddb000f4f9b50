// termo plays the daily puzzle in a terminal.
//
// Usage:
//
//	termo [-mode termo|dueto|quarteto] [-day N] [-hard] [-db FILE] [-words DIR]
//
// Type a five-letter word and press enter to guess. Lines starting with ":"
// are commands: :stats, :share, :hard, :contrast and :quit.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/termo/internal/config"
	"github.com/robalobadob/termo/internal/daily"
	"github.com/robalobadob/termo/internal/game"
	"github.com/robalobadob/termo/internal/mode"
	"github.com/robalobadob/termo/internal/play"
	"github.com/robalobadob/termo/internal/store"
	"github.com/robalobadob/termo/internal/words"
)

// localOwner owns every save made by the terminal host.
const localOwner = "local"

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	modeName := flag.String("mode", string(mode.Termo), "game mode: termo, dueto or quarteto")
	day := flag.Int("day", 0, "archive day number to replay (0 = today)")
	hard := flag.Bool("hard", false, "hard mode: revealed hints must be reused")
	dbPath := flag.String("db", defaultDBPath(), "SQLite file for saves (empty = keep in memory)")
	wordsDir := flag.String("words", cfg.WordsDir, "directory with word lists (empty = built-in)")
	noColor := flag.Bool("no-color", false, "disable colours")
	flag.Parse()

	if *noColor {
		color.NoColor = true
	}
	m, err := mode.Parse(*modeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	bank, err := words.Load(*wordsDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", *wordsDir).Msg("failed to load word lists")
	}
	nSol, nAllowed := bank.Stats(m)
	log.Debug().Str("mode", string(m)).Int("solutions", nSol).Int("allowed", nAllowed).Msg("word lists loaded")
	cal, err := daily.LoadCalendar(cfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load timezone")
	}

	var kv store.KV = store.NewMemory()
	if *dbPath != "" {
		db, err := store.OpenSQLite(*dbPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *dbPath).Msg("failed to open saves")
		}
		defer db.Close()
		kv = db
	}

	ctx := context.Background()
	engine := game.NewEngine(bank)
	saves := store.NewSaves(kv, localOwner)
	sess, err := play.Open(ctx, engine, saves, cal, m, *day)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start game")
	}
	if *hard && !sess.Settings().HardMode {
		st := sess.Settings()
		st.HardMode = true
		if err := sess.SetSettings(ctx, st); err != nil {
			log.Warn().Err(err).Msg("save settings")
		}
	}

	if err := run(ctx, os.Stdin, os.Stdout, sess, engine, cal); err != nil {
		log.Error().Err(err).Msg("game aborted")
		os.Exit(1)
	}
}

// defaultDBPath is termo/saves.db under the user's config directory, or ""
// when there is none.
func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "termo", "saves.db")
}

// run drives sess from the lines of in until the game ends, in is exhausted
// or the player quits.
func run(ctx context.Context, in io.Reader, out io.Writer, sess *play.Session, engine *game.Engine, cal *daily.Calendar) error {
	header := color.New(color.FgCyan, color.Bold)
	warn := color.New(color.FgYellow)

	s := sess.State()
	mod := mode.DisplayName(s.Mode)
	if sess.Archive() {
		header.Fprintf(out, "%s - Dia #%d (Arquivo)\n", mod, s.DayNumber)
	} else {
		header.Fprintf(out, "%s - Dia #%d\n", mod, s.DayNumber)
	}
	show(out, sess)
	if s.IsGameOver {
		finish(out, sess, engine, cal)
		return nil
	}

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			quit, err := command(ctx, out, sess, line)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			continue
		}

		st, err := sess.Submit(ctx, line)
		var ge *game.GuessError
		switch {
		case errors.As(err, &ge):
			warn.Fprintln(out, ge.Message)
			continue
		case err != nil:
			return err
		}
		show(out, sess)
		if st.IsGameOver {
			finish(out, sess, engine, cal)
			return nil
		}
	}
}

// command handles a ":" line and reports whether the player quit.
func command(ctx context.Context, out io.Writer, sess *play.Session, line string) (bool, error) {
	switch strings.ToLower(line) {
	case ":q", ":quit", ":sair":
		return true, nil
	case ":stats":
		renderStats(out, sess.Stats())
	case ":share":
		fmt.Fprintln(out, sess.ShareText())
	case ":hard", ":contrast":
		st := sess.Settings()
		if strings.EqualFold(line, ":hard") {
			st.HardMode = !st.HardMode
		} else {
			st.HighContrast = !st.HighContrast
		}
		if err := sess.SetSettings(ctx, st); err != nil {
			return false, err
		}
		fmt.Fprintf(out, "Modo difícil: %s  Alto contraste: %s\n", onOff(st.HardMode), onOff(st.HighContrast))
		show(out, sess)
	default:
		fmt.Fprintln(out, "Comandos: :stats :share :hard :contrast :quit")
	}
	return false, nil
}

func onOff(b bool) string {
	if b {
		return "sim"
	}
	return "não"
}

func show(out io.Writer, sess *play.Session) {
	s := sess.State()
	p := newPalette(sess.Settings().HighContrast)
	fmt.Fprintln(out)
	renderBoards(out, s, p)
	fmt.Fprintln(out)
	renderKeyboard(out, s, p)
	fmt.Fprintln(out)
}

func finish(out io.Writer, sess *play.Session, engine *game.Engine, cal *daily.Calendar) {
	s := sess.State()
	color.New(color.Bold).Fprintln(out, game.ResultMessage(s))
	renderSolutions(out, s, engine.Display)
	fmt.Fprintln(out)
	renderStats(out, sess.Stats())
	fmt.Fprintln(out)
	fmt.Fprintln(out, sess.ShareText())
	if !sess.Archive() {
		fmt.Fprintf(out, "\nPróxima palavra em %s\n", daily.FormatCountdown(cal.UntilMidnight()))
	}
}
