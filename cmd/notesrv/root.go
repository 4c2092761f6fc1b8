package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/notesrv"
	"github.com/aretw0/notesrv/internal/platform"
	"github.com/aretw0/notesrv/pkg/adapters/httpapi"
	"github.com/aretw0/notesrv/pkg/core"
)

// cli carries state shared by every command of one invocation.
type cli struct {
	configPath string
	verbose    bool

	cfg    platform.Config
	logger *slog.Logger
}

// newRootCmd builds the command tree. The root command runs the HTTP server.
func newRootCmd() *cobra.Command {
	c := &cli{}

	var (
		host  string
		port  int
		cache string
		audit bool
	)

	rootCmd := &cobra.Command{
		Use:   "notesrv",
		Short: "Serve plain-text notes stored as files over HTTP",
		Long: `notesrv exposes a directory of <name>.txt files as a small REST API.
Run without a subcommand to start the server; the subcommands operate on
the cache directory directly.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("host") {
				c.cfg.Host = host
			}
			if flags.Changed("port") {
				c.cfg.Port = port
			}
			if flags.Changed("cache") {
				c.cfg.CacheDir = cache
			}
			if flags.Changed("audit") {
				c.cfg.AuditEvents = audit
			}
			return c.serve(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to a YAML configuration file")

	// -h belongs to --host. Cobra would otherwise add -h for help and panic
	// on the duplicate shorthand, so help is registered long-form only.
	rootCmd.Flags().Bool("help", false, "help for notesrv")
	rootCmd.Flags().StringVarP(&host, "host", "h", "", "Host interface to bind")
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on")
	rootCmd.Flags().StringVarP(&cache, "cache", "c", "", "Directory holding the note files")
	rootCmd.Flags().BoolVar(&audit, "audit", false, "Log every note change observed in the cache directory")
	// The listen address and cache directory come only from these flags.
	_ = rootCmd.MarkFlagRequired("host")
	_ = rootCmd.MarkFlagRequired("port")
	_ = rootCmd.MarkFlagRequired("cache")

	rootCmd.AddCommand(
		newListCmd(c),
		newReadCmd(c),
		newWriteCmd(c),
		newUpdateCmd(c),
		newDeleteCmd(c),
		newVersionCmd(),
	)
	return rootCmd
}

// setup layers the configuration and installs the process logger.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := platform.LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	if c.verbose {
		cfg.LogLevel = "debug"
	}

	logger, err := platform.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	c.cfg = cfg
	c.logger = logger
	return nil
}

func (c *cli) serve(cmd *cobra.Command) error {
	if err := c.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	svc, err := notesrv.New(c.cfg.CacheDir,
		notesrv.WithMustExist(c.cfg.MustExist),
		notesrv.WithLogger(c.logger),
		notesrv.WithWatcherErrorHandler(func(err error) {
			c.logger.Error("watcher failure", "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to open cache directory: %w", err)
	}

	srv := httpapi.New(svc, httpapi.Config{
		Addr:           c.cfg.Addr(),
		ReadTimeout:    c.cfg.ReadTimeout,
		WriteTimeout:   c.cfg.WriteTimeout,
		MaxUploadBytes: c.cfg.MaxUploadBytes,
		Debug:          c.verbose,
		Version:        notesrv.Version,
		Logger:         c.logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.cfg.AuditEvents {
		if err := c.auditEvents(ctx, svc); err != nil {
			c.logger.Warn("audit log disabled", "error", err)
		}
	}

	c.logger.Info("notesrv started", "addr", c.cfg.Addr(), "cache", c.cfg.CacheDir)
	return srv.Run(ctx, c.cfg.ShutdownTimeout)
}

// openService opens the cache directory for the offline subcommands.
// Only write may create the directory.
func (c *cli) openService(cache string, create bool) (*core.Service, error) {
	if cache != "" {
		c.cfg.CacheDir = cache
	}
	if c.cfg.CacheDir == "" {
		return nil, fmt.Errorf("cache directory is required")
	}

	svc, err := notesrv.New(c.cfg.CacheDir,
		notesrv.WithMustExist(!create),
		notesrv.WithLogger(c.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache directory: %w", err)
	}
	return svc, nil
}

// addCacheFlag registers the required -c/--cache flag on a subcommand.
func addCacheFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "cache", "c", "", "Directory holding the note files")
	_ = cmd.MarkFlagRequired("cache")
}
