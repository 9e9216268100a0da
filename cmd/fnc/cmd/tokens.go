package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/fnc/internal/server"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Gibt den Tokenstrom einer Datei aus",
	Long: `Zerlegt eine fn-Quelldatei (oder stdin mit "-") in Tokens und gibt
ein Token pro Zeile aus: Position, Typ und Lexem.

Beispiele:
  fnc tokens main.fn
  echo "fn f(x) x + 1" | fnc tokens -`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVar(&remoteAddr, "remote", "", "Adresse eines laufenden Parse-Service (host:port)")
	tokensCmd.Flags().DurationVar(&remoteTimeout, "timeout", 10*time.Second, "Timeout fuer --remote")
}

func runTokens(cmd *cobra.Command, args []string) error {
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

	var reply server.TokenizeReply
	if remoteAddr != "" {
		client, closeConn, err := dialRemote(logger)
		if err != nil {
			return err
		}
		defer closeConn()

		ctx, cancel := remoteContext()
		defer cancel()
		r, err := client.Tokenize(ctx, source)
		if err != nil {
			return err
		}
		reply = *r
	} else {
		tokens, err := newEngine(cfg, logger, false).Tokenize(source)
		if err != nil && !isSyntaxFault(err) {
			return err
		}
		reply = server.NewTokenizeReply(tokens, err)
	}

	for _, tok := range reply.Tokens {
		pos := fmt.Sprintf("%d:%d", tok.Line, tok.Column)
		if tok.Value == "" {
			fmt.Printf("%-8s %s\n", pos, tok.Type)
			continue
		}
		fmt.Printf("%-8s %-12s %s\n", pos, tok.Type, tok.Value)
	}

	if len(reply.Faults) > 0 {
		printFaults(os.Stderr, name, reply.Faults)
		return errFaults
	}
	return nil
}
