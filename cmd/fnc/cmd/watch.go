package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/fnc/foundation/core/log"
	"github.com/msto63/fnc/internal/server"
	"github.com/msto63/fnc/internal/watch"
	"github.com/msto63/fnc/pkg/core/logging"
)

var (
	watchFormat   string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Parst eine Datei bei jeder Aenderung neu",
	Long: `Beobachtet eine fn-Quelldatei und parst sie nach jedem Speichern neu.
Ausgegeben werden Zeitstempel, Ergebnis und Syntaxfehler.

Beispiele:
  fnc watch main.fn
  fnc watch --format infix main.fn`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "", "Programm zusaetzlich ausgeben: dump, infix")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Wartezeit nach einer Aenderung")
}

func runWatch(cmd *cobra.Command, args []string) error {
	switch watchFormat {
	case "", "dump", "infix":
	default:
		return fmt.Errorf("unbekanntes Format: %s", watchFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	engine := newEngine(cfg, logger, false)

	path := args[0]
	name := filepath.Base(path)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watch.New(watch.Config{
		Path:     path,
		Debounce: watchDebounce,
		Logger:   logging.Wrap("watch", logger),
	}, func(source string, err error) {
		stamp := mutedStyle.Render(time.Now().Format("15:04:05"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %s %v\n", stamp, errorLabelStyle.Render("Nicht lesbar:"), err)
			return
		}

		result, err := engine.Parse(name, source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %s %v\n", stamp, errorLabelStyle.Render("Abgelehnt:"), err)
			return
		}
		reply := server.NewParseReply(result)

		if reply.OK {
			fmt.Printf("%s %s %s\n", stamp, okStyle.Render("OK"), summary(reply))
		} else {
			fmt.Printf("%s %s %s\n", stamp, errorLabelStyle.Render(fmt.Sprintf("%d Fehler", len(reply.Faults))), summary(reply))
			printFaults(os.Stdout, name, reply.Faults)
		}

		switch watchFormat {
		case "dump":
			fmt.Print(reply.AST)
		case "infix":
			if reply.Program != "" {
				fmt.Println(reply.Program)
			}
		}

		logger.Debug("Watch cycle finished", mdwlog.Fields{
			"job_id": reply.JobID.String(),
			"faults": len(reply.Faults),
		})
	})

	fmt.Fprintln(os.Stderr, mutedStyle.Render("Beobachte "+path+" (Ctrl+C zum Beenden)"))
	return w.Run(ctx)
}

func summary(reply server.ParseReply) string {
	return mutedStyle.Render(fmt.Sprintf("%d Funktionen, %d extern, %d Ausdruecke, %d Tokens, %.2fms",
		reply.Stats.Functions, reply.Stats.Externs, reply.Stats.Expressions, reply.Stats.Tokens, reply.DurationMS))
}
