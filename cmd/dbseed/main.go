package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/maloquacious/dbseed/internal/bootstrap"
	"github.com/maloquacious/dbseed/internal/config"
	"github.com/maloquacious/dbseed/internal/logger"
	"github.com/maloquacious/dbseed/internal/store"
	"github.com/maloquacious/dbseed/internal/store/sqlite"
	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version   = semver.Version{Minor: 1, PreRelease: "alpha", Build: semver.Commit()}
	buildDate = ""
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app carries the resolved configuration between cobra hooks and commands.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     logger.Logger
	stderr  io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: config.New(), stderr: stderr}

	rootCmd := &cobra.Command{
		Use:               "dbseed",
		Short:             "Create the settings store if missing and write a seed row",
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
		RunE:              a.runAll,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "optional config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("db", store.DefaultURL, "store location (sqlite://path, sqlite:path, file:path or a bare path)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().Int("busy-timeout", 5000, "SQLite busy_timeout in milliseconds")

	// run command, same as the bare root
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Initialize the store if missing, then write one seed row",
		RunE:  a.runAll,
	}

	// db command group
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	dbCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Create the store and apply the schema if it does not exist",
		RunE:  a.runDBCreate,
	}
	dbSeedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Append one seed row to the settings table",
		RunE:  a.runDBSeed,
	}
	dbVerifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Report the store state and settings row count",
		RunE:  a.runDBVerify,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			if buildDate != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (built %s)\n", version.String(), buildDate)
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}

	dbCmd.AddCommand(dbCreateCmd, dbSeedCmd, dbVerifyCmd)
	rootCmd.AddCommand(runCmd, dbCmd, versionCmd)
	return rootCmd
}

// load resolves flags, environment and config file into a.cfg and builds the logger.
func (a *app) load(cmd *cobra.Command, args []string) error {
	err := config.BindFlags(a.v, cmd.Flags(), map[string]string{
		config.KeyDatabaseURL: "db",
		config.KeyLogLevel:    "log-level",
		config.KeyLogFormat:   "log-format",
		config.KeyBusyTimeout: "busy-timeout",
	})
	if err != nil {
		return err
	}

	a.cfg, err = config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}

	a.log, err = logger.New(a.cfg.LogFormat, a.cfg.LogLevel, a.stderr)
	if err != nil {
		return err
	}
	a.log.Debug("store location %s", a.cfg.DatabaseURL)
	return nil
}

func (a *app) opener() bootstrap.Opener {
	return bootstrap.SQLiteOpener(sqlite.Options{BusyTimeout: a.cfg.BusyTimeout})
}

// runAll runs the initializer then the seed writer, printing a status line for each.
func (a *app) runAll(cmd *cobra.Command, args []string) error {
	ir, sr, err := bootstrap.Run(cmd.Context(), a.cfg.DatabaseURL, a.opener(), a.log)
	if ir.Outcome != bootstrap.OutcomeNone {
		fmt.Fprintln(cmd.OutOrStdout(), ir.Message())
	}
	if err != nil {
		a.log.Error("run: %v", err)
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), sr.String())
	return nil
}

func (a *app) runDBCreate(cmd *cobra.Command, args []string) error {
	initializer, err := bootstrap.NewInitializer(a.cfg.DatabaseURL, a.opener(), a.log)
	if err != nil {
		return err
	}
	res, err := initializer.Run(cmd.Context())
	if err != nil {
		a.log.Error("db create: %v", err)
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message())
	return nil
}

func (a *app) runDBSeed(cmd *cobra.Command, args []string) error {
	w, err := bootstrap.NewSeedWriter(a.cfg.DatabaseURL, a.opener(), a.log)
	if err != nil {
		return err
	}
	res, err := w.Run(cmd.Context())
	if err != nil {
		a.log.Error("db seed: %v", err)
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.String())
	return nil
}

func (a *app) runDBVerify(cmd *cobra.Command, args []string) error {
	rep, err := bootstrap.Verify(cmd.Context(), a.cfg.DatabaseURL, a.opener())
	if err != nil {
		a.log.Error("db verify: %v", err)
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rep.String())
	if rep.State != store.StateReady {
		return fmt.Errorf("store is %s", rep.State)
	}
	return nil
}
