// Command chatbot serves the server-rendered chatbot site.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chatbot-dev/chatbot/internal/config"
	"github.com/chatbot-dev/chatbot/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "chatbot",
		Short: "Serve the chatbot site",
		Long: `Serve the chatbot site.

Pages are rendered on the server and hydrated in the browser by the
WebAssembly bundle under /pkg. Settings come from the configuration file,
.env files and CHATBOT_* environment variables.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.ConfigFileName, "Path to the configuration file")

	rootCmd.AddCommand(
		routesCmd(),
		versionCmd(),
	)
	return rootCmd
}

func printError(w io.Writer, err error) {
	var coded *errors.Error
	if stderrors.As(err, &coded) {
		fmt.Fprintln(w, coded.Format())
		return
	}
	fmt.Fprintf(w, "\033[31mError:\033[0m %s\n", err)
}
