package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/fnc/foundation/core/error"
	mdwlog "github.com/msto63/fnc/foundation/core/log"
	"github.com/msto63/fnc/foundation/lang"
	"github.com/msto63/fnc/pkg/core/config"
	"github.com/msto63/fnc/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool
)

// errFaults signals that syntax faults were found and already reported
var errFaults = errors.New("syntax faults")

var rootCmd = &cobra.Command{
	Use:   "fnc",
	Short: "fnc - Lexer und Pratt-Parser fuer die fn-Sprache",
	Long: `fnc ist das Front End der kleinen Ausdruckssprache fn.

Es zerlegt Quelltext in Tokens, baut daraus einen Syntaxbaum aus
Definitionen, extern-Deklarationen und Ausdruecken und meldet
Syntaxfehler mit Zeile und Spalte.

Befehle:
  tokens   - Tokenstrom einer Datei ausgeben
  parse    - Datei parsen und Programm ausgeben
  repl     - Interaktive Eingabe
  watch    - Datei bei jeder Aenderung neu parsen
  serve    - gRPC Parse-Service starten
  history  - Gespeicherte Parse-Jobs anzeigen`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errFaults) {
		printError("Befehl fehlgeschlagen", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./fnc.toml, ./configs/fnc.toml, ~/.config/fnc/fnc.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

var (
	errorLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	errorTextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F8FAFC"))
	faultCodeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	okStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s %s: %v\n", errorLabelStyle.Render("Fehler:"), msg, err)
}

// printFaults writes one styled line per fault to w
func printFaults(w io.Writer, name string, faults []lang.FaultInfo) {
	for _, f := range faults {
		fmt.Fprintf(w, "%s %s %s\n",
			errorLabelStyle.Render(name+":"),
			faultCodeStyle.Render("["+f.Code+"]"),
			errorTextStyle.Render(f.Message))
	}
}

// loadConfig loads the configuration selected by --config
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger creates the CLI logger writing to stderr
func newLogger(cfg *config.Config) *mdwlog.Logger {
	logger := logging.FromConfig("fnc", cfg, verbose)
	mdwlog.SetDefault(logger)
	return logger
}

// newEngine creates the engine from the parser section
func newEngine(cfg *config.Config, logger *mdwlog.Logger, stopOnError bool) *lang.Engine {
	return lang.New(lang.Options{
		Logger:         logger,
		MaxInputLength: cfg.Parser.MaxInputLength,
		StopOnError:    stopOnError || cfg.Parser.StopOnError,
	})
}

// readSource reads path, or stdin for "-"
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// isSyntaxFault reports whether err is a lexer or parser fault rather than
// a rejected input or an I/O problem
func isSyntaxFault(err error) bool {
	return mdwerror.HasCode(err, mdwerror.CodeLexFault) || mdwerror.HasCode(err, mdwerror.CodeParseFault)
}
