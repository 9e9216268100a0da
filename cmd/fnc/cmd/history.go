package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/msto63/fnc/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Zeigt gespeicherte Parse-Jobs an",
	Long: `Listet die zuletzt gespeicherten Parse-Jobs, neueste zuerst.
Jobs werden mit "fnc parse --record", "fnc repl --record" oder vom
Parse-Service gespeichert.

Beispiele:
  fnc history
  fnc history --limit 5
  fnc history --remote 127.0.0.1:9310
  fnc history show <job-id>`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show JOB-ID",
	Short: "Zeigt Quelltext und Fehler eines Jobs",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", store.DefaultListLimit, "Maximale Anzahl Jobs")
	historyCmd.Flags().StringVar(&remoteAddr, "remote", "", "Adresse eines laufenden Parse-Service (host:port)")
	historyCmd.Flags().DurationVar(&remoteTimeout, "timeout", 10*time.Second, "Timeout fuer --remote")
}

func openHistory() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)
	return store.Open(store.Config{Path: cfg.Store.Path, Logger: logger})
}

func runHistory(cmd *cobra.Command, args []string) error {
	var jobs []*store.Job

	if remoteAddr != "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, closeConn, err := dialRemote(newLogger(cfg))
		if err != nil {
			return err
		}
		defer closeConn()

		ctx, cancel := remoteContext()
		defer cancel()
		reply, err := client.History(ctx, historyLimit)
		if err != nil {
			return err
		}
		jobs = reply.Jobs
	} else {
		history, err := openHistory()
		if err != nil {
			return err
		}
		defer history.Close()

		jobs, err = history.List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
	}

	if len(jobs) == 0 {
		fmt.Println(mutedStyle.Render("Keine Jobs gespeichert."))
		return nil
	}

	fmt.Printf("%-36s  %-19s  %-6s  %-20s  %s\n", "JOB", "ZEIT", "STATUS", "NAME", "FEHLER")
	for _, job := range jobs {
		status := okStyle.Render("OK    ")
		if !job.OK {
			status = errorLabelStyle.Render("FEHLER")
		}
		fmt.Printf("%-36s  %-19s  %s  %-20s  %d\n",
			job.ID, job.CreatedAt.Local().Format("2006-01-02 15:04:05"), status, truncate(job.Name, 20), len(job.Faults))
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("ungueltige Job-ID %q: %w", args[0], err)
	}

	history, err := openHistory()
	if err != nil {
		return err
	}
	defer history.Close()

	job, err := history.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	fmt.Printf("Job:    %s\n", job.ID)
	fmt.Printf("Name:   %s\n", job.Name)
	fmt.Printf("Zeit:   %s\n", job.CreatedAt.Local().Format(time.RFC3339))
	fmt.Printf("Dauer:  %.2fms\n", job.DurationMS)
	fmt.Printf("Tokens: %d, Funktionen: %d, extern: %d, Ausdruecke: %d\n",
		job.Stats.Tokens, job.Stats.Functions, job.Stats.Externs, job.Stats.Expressions)
	fmt.Println()
	fmt.Println(strings.TrimRight(job.Source, "\n"))

	if len(job.Faults) > 0 {
		fmt.Println()
		printFaults(os.Stdout, job.Name, job.Faults)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
