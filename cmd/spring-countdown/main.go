package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/spring-countdown/internal/audio"
	"github.com/ensigniasec/spring-countdown/internal/config"
	"github.com/ensigniasec/spring-countdown/internal/settings"
	"github.com/ensigniasec/spring-countdown/internal/storage"
	"github.com/ensigniasec/spring-countdown/internal/tui"
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	configFile     string
	storageBackend string
	storageFile    string
	logFile        string
	verbose        bool
	plain          bool
	target         string
	jsonOutput     bool
	simDays        int
	simHours       int
	simMinutes     int
	simSeconds     int

	rootCmd = &cobra.Command{
		Use:   "spring-countdown",
		Short: "A festive terminal countdown to the Spring Festival, with scrolling comments and fireworks.",
		Long: `Counts down to the Lunar New Year in your terminal. Wishes you type scroll across the screen ` +
			`as comments, and the last day, the final minute and midnight itself each get their own celebration.`,
		Run: runCountdown,
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr to avoid polluting stdout, especially for --json output.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default "+config.DefaultConfigFile+")")
	rootCmd.PersistentFlags().
		StringVar(&storageBackend, "storage-backend", "", "Storage backend for settings and history: json or sqlite")
	rootCmd.PersistentFlags().
		StringVar(&storageFile, "storage-file", "", "Storage file path (default depends on the backend)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")

	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().BoolVar(&plain, "plain", false, "Print lines instead of drawing the full-screen view")
		c.Flags().StringVar(&target, "target", "", "Target time, RFC 3339 or local \"2006-01-02 15:04:05\"")
		c.Flags().IntVar(&simDays, "sim-days", 0, "Simulate: move the target this many days from now")
		c.Flags().IntVar(&simHours, "sim-hours", 0, "Simulate: hours part of the offset")
		c.Flags().IntVar(&simMinutes, "sim-minutes", 0, "Simulate: minutes part of the offset")
		c.Flags().IntVar(&simSeconds, "sim-seconds", 0, "Simulate: seconds part of the offset")
	}
	countdownCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the snapshot in JSON format")
	countdownCmd.Flags().StringVar(&target, "target", "", "Target time, RFC 3339 or local \"2006-01-02 15:04:05\"")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(countdownCmd)

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)

	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsAddCmd)
	presetsCmd.AddCommand(presetsRemoveCmd)
	presetsCmd.AddCommand(presetsClearCmd)
	rootCmd.AddCommand(presetsCmd)

	themesCmd.AddCommand(themesListCmd)
	themesCmd.AddCommand(themesSetCmd)
	rootCmd.AddCommand(themesCmd)

	storageCmd.AddCommand(storageExportCmd)
	storageCmd.AddCommand(storageImportCmd)
	storageCmd.AddCommand(storageClearCmd)
	rootCmd.AddCommand(storageCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func main() {
	Execute()
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the countdown (the default command)",
	Long:  "Start the interactive countdown. Use --plain for line output, or the --sim-* flags to rehearse a moment such as the final minute.",
	Run:   runCountdown,
}

func runCountdown(cmd *cobra.Command, _ []string) {
	cfg := loadConfig(cmd)
	closeLog := setupLogging(cfg, cfg.Plain)
	defer closeLog()

	st := openStore(cfg)
	defer st.Close()

	opts := tui.Options{
		Store:       st,
		Target:      cfg.Target,
		Danmaku:     cfg.Danmaku(),
		ReachedText: cfg.ReachedText,
		Audio:       audio.NewPlayer(audio.ExecSink(), true, settings.Defaults().SoundVolume, nil),
		Simulate:    simulation(cmd),
		KeepLogs:    cfg.LogFile != "",
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Plain {
		if err := tui.RunPlain(ctx, opts, os.Stdin, os.Stdout); err != nil {
			logrus.Fatalf("Plain mode failed: %v", err)
		}
		return
	}
	if err := tui.Run(ctx, opts); err != nil {
		logrus.Fatalf("TUI mode failed: %v", err)
	}
}

// loadConfig layers the command-line flags over config.Load.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg, err := config.Load(config.Options{ConfigFile: configFile})
	if err != nil {
		logrus.Fatal(err)
	}
	flags := cmd.Flags()
	if flags.Changed("storage-backend") {
		if !flags.Changed("storage-file") && cfg.StorageFile == config.DefaultStorageFile(cfg.StorageBackend) {
			cfg.StorageFile = config.DefaultStorageFile(storageBackend)
		}
		cfg.StorageBackend = storageBackend
	}
	if flags.Changed("storage-file") {
		cfg.StorageFile = storageFile
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("plain") {
		cfg.Plain = plain
	}
	if flags.Changed("target") {
		t, err := config.ParseTarget(target)
		if err != nil {
			logrus.Fatal(err)
		}
		cfg.Target = t
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatal(err)
	}
	return cfg
}

// setupLogging applies --verbose and --log-file. The returned func closes
// the log file.
func setupLogging(cfg config.Config, quiet bool) func() {
	switch {
	case verbose:
		logrus.SetLevel(logrus.DebugLevel)
	case quiet:
		logrus.SetLevel(logrus.WarnLevel)
	}
	if cfg.LogFile == "" {
		return func() {}
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logrus.Fatalf("Unable to open log file: %v", err)
	}
	logrus.SetOutput(f)
	return func() {
		logrus.SetOutput(os.Stderr)
		_ = f.Close()
	}
}

func openStore(cfg config.Config) *storage.Store {
	st, err := storage.Open(cfg.StorageBackend, cfg.StorageFile)
	if err != nil {
		logrus.Fatalf("Unable to open or create storage: %v", err)
	}
	return st
}

func simulation(cmd *cobra.Command) *tui.Simulation {
	flags := cmd.Flags()
	if !flags.Changed("sim-days") && !flags.Changed("sim-hours") &&
		!flags.Changed("sim-minutes") && !flags.Changed("sim-seconds") {
		return nil
	}
	return &tui.Simulation{Days: simDays, Hours: simHours, Minutes: simMinutes, Seconds: simSeconds}
}

// openCommandStore loads the config for a management subcommand and opens
// its storage.
func openCommandStore(cmd *cobra.Command) *storage.Store {
	cfg := loadConfig(cmd)
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return openStore(cfg)
}

func printf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stdout, format, args...)
}
