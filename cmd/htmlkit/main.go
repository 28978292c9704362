package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/htmlkit/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "htmlkit",
		Short: "Escape, serialize and render HTML fragments",
		Long: `htmlkit turns data into safe HTML fragments.

  • Escape text for HTML
  • Serialize (nested) attribute mappings
  • Render elements and YAML/JSON element documents
  • Serve rendering over HTTP, WebSocket and SSE`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		escapeCmd(),
		attrsCmd(),
		elementCmd(),
		sanitizeCmd(),
		renderCmd(),
		serveCmd(),
		tagsCmd(),
		versionCmd(),
	)
	return rootCmd
}

// readInput returns the joined arguments, or standard input when there are
// none.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) > 0 {
		return []byte(strings.Join(args, " ")), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, errors.New("H040").Wrap(err)
	}
	if len(data) == 0 {
		return nil, errors.New("H040").
			WithSuggestion("Pass the input as an argument or pipe it on stdin")
	}
	return data, nil
}

// writeLine writes s and a newline to the command's output.
func writeLine(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}

// success prints a success message.
func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
