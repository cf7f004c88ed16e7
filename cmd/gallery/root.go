package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/Veraticus/gallery/internal/common"
	"github.com/Veraticus/gallery/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// logToFile marks commands that own the terminal, so logs go to the log
// file instead of stderr.
const logToFile = "log-to-file"

// app carries the state shared by every command of one invocation.
type app struct {
	v         *viper.Viper
	settings  *config.Settings
	logCloser io.Closer
	cfgFile   string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)

	root := &cobra.Command{
		Use:   "gallery",
		Short: "Browse an art catalog and keep a list of favorites",
		Long: `gallery browses a remote art catalog in the terminal and keeps a
persistent list of favorite pieces that stays in sync across screens.

Run "gallery browse" to open the interactive UI.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.initConfig,
		PersistentPostRunE: a.shutdown,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/gallery/config.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "console", "log format (console, json)")
	root.PersistentFlags().String("storage", "", "storage backend (sqlite, redis, memory)")

	_ = a.v.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(browseCmd(a))
	root.AddCommand(catalogCmd(a))
	root.AddCommand(favoritesCmd(a))
	root.AddCommand(migrateCmd(a))
	root.AddCommand(versionCmd())

	return root
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		dir, err := config.Dir()
		if err != nil {
			return fmt.Errorf("failed to locate config directory: %w", err)
		}
		a.v.AddConfigPath(dir)
		a.v.AddConfigPath(".")
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("GALLERY")
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if backend, _ := cmd.Flags().GetString("storage"); backend != "" {
		a.v.Set("storage.backend", backend)
	}

	settings, err := config.Load(a.v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.settings = settings

	if err := a.setupLogging(cmd); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	common.LogDebug("Configuration loaded", common.Fields{
		"config":  a.v.ConfigFileUsed(),
		"backend": settings.Storage.Backend,
		"catalog": settings.Catalog.BaseURL,
	})
	return nil
}

func (a *app) setupLogging(cmd *cobra.Command) error {
	level, err := common.ParseLevel(a.settings.Logging.Level)
	if err != nil {
		return err
	}

	path := ""
	if _, ok := cmd.Annotations[logToFile]; ok && a.settings.Logging.File != "" {
		path = filepath.Clean(a.settings.Logging.File)
	}

	closer, err := common.SetupLogger(level, a.settings.Logging.Format, path)
	if err != nil {
		return err
	}
	a.logCloser = closer
	return nil
}

func (a *app) shutdown(_ *cobra.Command, _ []string) error {
	if a.logCloser == nil {
		return nil
	}
	return a.logCloser.Close()
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gallery %s\n", version)
		},
	}
}
