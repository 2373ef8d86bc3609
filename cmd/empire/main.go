package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/anarchistempire/empire/internal/config"
	"github.com/anarchistempire/empire/internal/console"
	"github.com/anarchistempire/empire/internal/logger"
	"github.com/anarchistempire/empire/internal/session"
	"github.com/anarchistempire/empire/internal/tui"
	"github.com/anarchistempire/empire/pkg/client"
	"github.com/anarchistempire/empire/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	os.Exit(execute())
}

func execute() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// env is what every command needs once configuration is resolved.
type env struct {
	cfg     *config.Config
	log     zerolog.Logger
	console *console.Console
	closer  io.Closer
}

func (e *env) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

func newRootCmd() *cobra.Command {
	var (
		apiURL    string
		output    string
		verbose   bool
		ephemeral bool
		e         = &env{}
	)

	root := &cobra.Command{
		Use:           "empire",
		Short:         "Anarchist Empire site and admin console",
		Long:          "Browse the Anarchist Empire server site, buy privileges and run the admin panel from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if output != "table" && output != "json" {
				return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
			}
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("api-url") {
				cfg.APIURL = apiURL
			}

			// The TUI owns the terminal, so it always logs to a file.
			var out io.Writer
			switch {
			case !cmd.HasParent():
				f, err := logger.OpenFile(cfg.StateDir)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				out, e.closer = f, f
			case verbose:
				out = cmd.ErrOrStderr()
			}
			log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: verbose && cmd.HasParent(), Output: out})

			var tokens session.TokenStore = session.NewFileStore(cfg.StatePath())
			if ephemeral {
				tokens = session.NewMemoryStore("")
			}
			sess := session.New(tokens, log)
			api := client.New(cfg.APIURL,
				client.WithTokenSource(sess),
				client.WithTimeout(cfg.HTTPTimeout),
				client.WithLogger(log),
			)
			e.cfg = cfg
			e.log = log
			e.console = console.New(api, sess, log)
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return e.Close()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			e.log.Info().Str("version", version).Str("api", e.cfg.APIURL).Msg("starting console")
			app := tui.NewApp(e.console, e.cfg.SiteURL, version)
			p := tea.NewProgram(app, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("tui error: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&apiURL, "api-url", config.DefaultAPIURL, "service endpoint (overrides EMPIRE_API_URL)")
	root.PersistentFlags().StringVarP(&output, "output", "o", "table", "output format (table, json)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests to stderr")
	root.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep the admin session in memory only")

	root.AddCommand(newLoginCmd(e))
	root.AddCommand(newLogoutCmd(e))
	root.AddCommand(newOrdersCmd(e))
	root.AddCommand(newPrivilegesCmd(e))
	root.AddCommand(newVersionCmd())
	return root
}

// noticeError turns a failed notice into a command error.
func noticeError(n domain.Notice) error {
	if n.Message == "" {
		return errors.New(n.Title)
	}
	return fmt.Errorf("%s: %s", n.Title, n.Message)
}

func getOutputFormat(cmd *cobra.Command) string {
	v, _ := cmd.Root().PersistentFlags().GetString("output")
	return v
}
