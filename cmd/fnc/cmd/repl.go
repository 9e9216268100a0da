package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/msto63/fnc/internal/store"
	"github.com/msto63/fnc/internal/tui/repl"
	"github.com/msto63/fnc/pkg/core/logging"
)

var (
	replMode   string
	replRecord bool
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Startet die interaktive Eingabe",
	Long: `Startet eine interaktive Terminal-UI. Jede Zeile wird sofort geparst
und als Syntaxbaum, geklammertes Programm oder Tokenstrom angezeigt.

Logs werden nach <data_dir>/repl.log geschrieben.

Tastenkuerzel:
  Enter       Zeile parsen
  Up/Down     Eingabeverlauf
  Ctrl+T      Ausgabemodus wechseln
  Ctrl+L      Verlauf leeren
  PgUp/PgDn   Scrollen
  Esc/Ctrl+C  Beenden

Befehle:
  :mode dump|infix|tokens
  :clear
  :quit`,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replMode, "mode", "dump", "Ausgabemodus: dump, infix, tokens")
	replCmd.Flags().BoolVar(&replRecord, "record", false, "Jede Zeile im Verlauf speichern")
}

func runREPL(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mode, ok := repl.ParseMode(replMode)
	if !ok {
		return fmt.Errorf("unbekannter Modus: %s", replMode)
	}

	// The terminal belongs to the UI, so logs go to a file
	logFile, err := logging.OpenLogFile(filepath.Join(cfg.General.DataDir, "repl.log"))
	if err != nil {
		return err
	}
	defer logFile.Close()

	lc := logging.DefaultLoggerConfig("fnc-repl")
	lc.Level = cfg.General.LogLevel
	lc.Format = "text"
	lc.Output = logFile
	if verbose {
		lc.Level = "debug"
	}
	logger := logging.NewLogger(lc)

	rc := repl.Config{
		Prompt:      cfg.REPL.Prompt,
		HistorySize: cfg.REPL.HistorySize,
		Mode:        mode,
		Engine:      newEngine(cfg, logger, false),
	}

	if replRecord {
		history, err := store.Open(store.Config{Path: cfg.Store.Path, Logger: logger})
		if err != nil {
			return err
		}
		defer history.Close()
		rc.History = history
	}

	return repl.Run(rc)
}
