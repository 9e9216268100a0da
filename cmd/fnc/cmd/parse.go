package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/fnc/internal/server"
	"github.com/msto63/fnc/internal/store"
)

var (
	parseFormat      string
	parseStopOnError bool
	parseRecord      bool
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parst eine Datei und gibt das Programm aus",
	Long: `Parst eine fn-Quelldatei (oder stdin mit "-") und gibt das Programm aus.

Syntaxfehler werden mit Zeile und Spalte auf stderr gemeldet; der
Exit-Code ist dann 1. Nach einem Fehler setzt der Parser beim
naechsten Token wieder auf, ausser mit --stop-on-error.

Formate:
  dump   - Syntaxbaum, ein Knoten pro Zeile (Standard)
  infix  - Programm vollstaendig geklammert
  json   - Job-ID, Baum, Fehler und Statistik als JSON

Beispiele:
  fnc parse main.fn
  fnc parse --format infix main.fn
  fnc parse --record main.fn
  fnc parse --remote 127.0.0.1:9310 main.fn`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "dump", "Ausgabeformat: dump, infix, json")
	parseCmd.Flags().BoolVar(&parseStopOnError, "stop-on-error", false, "Beim ersten Syntaxfehler abbrechen")
	parseCmd.Flags().BoolVar(&parseRecord, "record", false, "Job im Verlauf speichern")
	parseCmd.Flags().StringVar(&remoteAddr, "remote", "", "Adresse eines laufenden Parse-Service (host:port)")
	parseCmd.Flags().DurationVar(&remoteTimeout, "timeout", 10*time.Second, "Timeout fuer --remote")
}

func runParse(cmd *cobra.Command, args []string) error {
	switch parseFormat {
	case "dump", "infix", "json":
	default:
		return fmt.Errorf("unbekanntes Format: %s", parseFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	source, err := readSource(args[0])
	if err != nil {
		return err
	}
	name := filepath.Base(args[0])
	if args[0] == "-" {
		name = "<stdin>"
	}

	var reply server.ParseReply
	if remoteAddr != "" {
		client, closeConn, err := dialRemote(logger)
		if err != nil {
			return err
		}
		defer closeConn()

		ctx, cancel := remoteContext()
		defer cancel()
		r, err := client.ParseWithOptions(ctx, name, source, server.ParseOptions{
			Record:      parseRecord,
			StopOnError: parseStopOnError || cfg.Parser.StopOnError,
		})
		if err != nil {
			return err
		}
		reply = *r
	} else {
		engine := newEngine(cfg, logger, parseStopOnError)
		result, err := engine.Parse(name, source)
		if err != nil {
			return err
		}
		reply = server.NewParseReply(result)

		if parseRecord {
			history, err := store.Open(store.Config{Path: cfg.Store.Path, Logger: logger})
			if err != nil {
				return err
			}
			defer history.Close()
			if _, err := history.Record(cmd.Context(), result, source); err != nil {
				return err
			}
			reply.Recorded = true
		}
	}

	switch parseFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reply); err != nil {
			return err
		}
	case "infix":
		if reply.Program != "" {
			fmt.Println(reply.Program)
		}
	default:
		fmt.Print(reply.AST)
	}

	if reply.Recorded && parseFormat != "json" {
		fmt.Fprintln(os.Stderr, mutedStyle.Render("Gespeichert als Job "+reply.JobID.String()))
	}

	if len(reply.Faults) > 0 {
		printFaults(os.Stderr, name, reply.Faults)
		return errFaults
	}
	return nil
}
