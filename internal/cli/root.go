package cli

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tgienger/dispatch/internal/config"
	"github.com/tgienger/dispatch/internal/db"
	"github.com/tgienger/dispatch/internal/dispatch"
	"github.com/tgienger/dispatch/internal/logging"
	"github.com/tgienger/dispatch/internal/ui"
)

// BuildInfo is set via ldflags in main
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// RootCommand is the `dispatch` command. Without a subcommand it opens the terminal UI.
type RootCommand struct {
	cmd        *cobra.Command
	v          *viper.Viper
	configFile string

	cfg     *config.Config
	logger  *slog.Logger
	store   *db.DB
	svc     *dispatch.Service
	closers []io.Closer

	// runUI starts the terminal UI, replaced in tests
	runUI func(app *ui.App) error
}

// NewRootCommand creates the root cobra command with global flags and subcommands
func NewRootCommand(info BuildInfo) *RootCommand {
	root := &RootCommand{
		v:     viper.New(),
		runUI: runProgram,
	}

	root.cmd = &cobra.Command{
		Use:   "dispatch",
		Short: "Record employees and tasks and hand tasks out at random",
		Long: `dispatch keeps a local list of field employees and tasks and distributes
every unassigned task to a randomly chosen employee.

Run without a command to open the interactive form UI.

CONFIGURATION:
  Priority: command-line flags > environment variables > config file > defaults

    DISPATCH_DB_PATH      Database file (default: $XDG_DATA_HOME/dispatch/dispatch.db)
    DISPATCH_LOG_PATH     Log file (default: dispatch.log next to the database)
    DISPATCH_LOG_LEVEL    debug, info, warn or error (default: info)

  The optional config file is config.yaml in $XDG_CONFIG_HOME/dispatch or the
  working directory, using the same keys in lower case (db_path, log_level).`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return root.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.runUI(ui.NewApp(root.svc, root.store, root.logger))
		},
	}
	root.cmd.SetVersionTemplate("dispatch {{.Version}}\n")

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command exposes the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	err := r.cmd.Execute()
	// PersistentPostRunE is skipped when a command fails
	if cerr := r.close(); err == nil {
		err = cerr
	}
	return err
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()
	flags.StringVar(&r.configFile, "config", "", "Config file (default: config.yaml in $XDG_CONFIG_HOME/dispatch or .)")
	flags.String("db", "", "Database file (overrides DISPATCH_DB_PATH)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (overrides DISPATCH_LOG_LEVEL)")

	r.v.BindPFlag("db_path", flags.Lookup("db"))
	r.v.BindPFlag("log_level", flags.Lookup("log-level"))
}

// open loads configuration and opens the logger and the store
func (r *RootCommand) open() error {
	if r.store != nil {
		return nil
	}

	cfg, err := config.Load(r.v, r.configFile)
	if err != nil {
		return err
	}
	r.cfg = cfg

	logger, logCloser, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return err
	}
	r.logger = logger
	r.closers = append(r.closers, logCloser)

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("open store failed", "path", cfg.DBPath, "error", err)
		return err
	}
	r.store = store
	r.closers = append(r.closers, store)

	logger.Debug("store opened", "path", cfg.DBPath)
	r.svc = dispatch.NewService(store, dispatch.WithLogger(logger))
	return nil
}

// close releases the store and the log file in reverse order
func (r *RootCommand) close() error {
	var firstErr error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.closers = nil
	r.store = nil
	r.svc = nil
	return firstErr
}

func runProgram(app *ui.App) error {
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
