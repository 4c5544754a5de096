package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/spring-countdown/internal/countdown"
	"github.com/ensigniasec/spring-countdown/internal/history"
	"github.com/ensigniasec/spring-countdown/internal/settings"
	"github.com/ensigniasec/spring-countdown/internal/theme"
)

// snapshotOutput is the --json shape of the countdown command.
type snapshotOutput struct {
	Target  time.Time `json:"target"`
	Reached bool      `json:"reached"`
	TotalMs int64     `json:"total_ms"`
	countdown.Snapshot
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var countdownCmd = &cobra.Command{
	Use:   "countdown",
	Short: "Print the time left until the target",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		snap := countdown.Decompose(time.Until(cfg.Target))
		if jsonOutput {
			out := snapshotOutput{Target: cfg.Target, Reached: snap.Elapsed(), TotalMs: snap.TotalMs(), Snapshot: snap}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				logrus.Fatal(err)
			}
			return
		}
		if snap.Elapsed() {
			printf("%s\n", cfg.ReachedText)
			return
		}
		printf("%s until %s\n", snap, cfg.Target.Format(time.DateTime))
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage the persisted settings",
	Run: func(cmd *cobra.Command, args []string) {
		settingsShowCmd.Run(cmd, args)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the settings in effect",
	Run: func(cmd *cobra.Command, args []string) {
		st := openCommandStore(cmd)
		defer st.Close()
		b, err := json.MarshalIndent(settings.NewManager(st).Load(), "", "  ")
		if err != nil {
			logrus.Fatal(err)
		}
		printf("%s\n", b)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var settingsSetCmd = &cobra.Command{
	Use:       "set [KEY] [VALUE]",
	Short:     "Change one setting",
	Long:      "Change one setting by its key, e.g. `settings set soundVolume 0.5`.",
	Args:      cobra.ExactArgs(2), //nolint:mnd // key and value
	ValidArgs: settings.Keys(),
	Run: func(cmd *cobra.Command, args []string) {
		st := openCommandStore(cmd)
		defer st.Close()
		if err := settings.NewManager(st).Update(args[0], args[1]); err != nil {
			logrus.Fatal(err)
		}
		printf("%s set to %s\n", args[0], args[1])
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Run: func(cmd *cobra.Command, args []string) {
		st := openCommandStore(cmd)
		defer st.Close()
		if !settings.NewManager(st).Reset() {
			logrus.Fatal("Unable to reset settings")
		}
		printf("Settings reset\n")
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the sent comment history",
	Run: func(cmd *cobra.Command, args []string) {
		historyShowCmd.Run(cmd, args)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List sent comments, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		st := openCommandStore(cmd)
		defer st.Close()
		history.NewManager(st, time.Now).ViewHistory(os.Stdout)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every sent comment",
	Run: func(cmd *cobra.Command, args []string) {
		st := openCommandStore(cmd)
		defer st.Close()
		if !history.NewManager(st, time.Now).ClearHistory() {
			logrus.Fatal("Unable to clear history")
		}
		printf("History cleared\n")
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage saved comment presets",
	Run: func(cmd *cobra.Command, args []string) {
		presetsListCmd.Run(cmd, args)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved presets",
	Run: func(cmd *cobra.Command, args []string) {
		st := openCommandStore(cmd)
		defer st.Close()
		history.NewManager(st, time.Now).ViewPresets(os.Stdout)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var presetsAddCmd = &cobra.Command{
	Use:   "add [TEXT]",
	Short: "Save a preset",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openCommandStore(cmd)
		defer st.Close()
		if !history.NewManager(st, time.Now).AddPreset(args[0]) {
			logrus.Fatalf("Unable to save preset %q", args[0])
		}
		printf("Preset saved\n")
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var presetsRemoveCmd = &cobra.Command{
	Use:   "remove [TEXT]",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openCommandStore(cmd)
		defer st.Close()
		if !history.NewManager(st, time.Now).RemovePreset(args[0]) {
			logrus.Fatalf("No preset %q", args[0])
		}
		printf("Preset removed\n")
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var presetsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every preset",
	Run: func(cmd *cobra.Command, args []string) {
		st := openCommandStore(cmd)
		defer st.Close()
		if !history.NewManager(st, time.Now).ClearPresets() {
			logrus.Fatal("Unable to clear presets")
		}
		printf("Presets cleared\n")
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List or pick the color theme",
	Run: func(cmd *cobra.Command, args []string) {
		themesListCmd.Run(cmd, args)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var themesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available themes",
	Run: func(cmd *cobra.Command, args []string) {
		st := openCommandStore(cmd)
		defer st.Close()
		listThemes(os.Stdout, settings.NewManager(st).Load().Theme)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var themesSetCmd = &cobra.Command{
	Use:       "set [ID]",
	Short:     "Pick the theme used on the next start",
	Args:      cobra.ExactArgs(1),
	ValidArgs: theme.IDs(),
	Run: func(cmd *cobra.Command, args []string) {
		st := openCommandStore(cmd)
		defer st.Close()
		if err := settings.NewManager(st).Update("theme", args[0]); err != nil {
			logrus.Fatalf("Unknown theme %q. Run `themes list` to see the choices.", args[0])
		}
		printf("Theme set to %s\n", args[0])
	},
}

func listThemes(w io.Writer, current string) {
	for i, id := range theme.IDs() {
		t := theme.MustLookup(id)
		mark := " "
		if id == current {
			mark = "*"
		}
		_, _ = fmt.Fprintf(w, "%s %d. %-10s %s: %s\n", mark, i+1, t.ID, t.Name, t.Description)
	}
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Back up or restore settings, history and presets",
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var storageExportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write every stored record to FILE as JSON (- for stdout)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openCommandStore(cmd)
		defer st.Close()
		data, err := st.Export()
		if err != nil {
			logrus.Fatal(err)
		}
		if args[0] == "-" {
			printf("%s\n", data)
			return
		}
		if err := os.WriteFile(args[0], data, 0o600); err != nil {
			logrus.Fatal(err)
		}
		printf("Exported to %s\n", args[0])
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var storageImportCmd = &cobra.Command{
	Use:   "import [FILE]",
	Short: "Restore records from a JSON export (- for stdin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			data []byte
			err  error
		)
		if args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			logrus.Fatal(err)
		}
		st := openCommandStore(cmd)
		defer st.Close()
		if err := st.Import(data); err != nil {
			logrus.Fatal(err)
		}
		printf("Imported from %s\n", args[0])
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var storageClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete settings, history and presets",
	Run: func(cmd *cobra.Command, args []string) {
		st := openCommandStore(cmd)
		defer st.Close()
		if !st.Clear() {
			logrus.Fatal("Unable to clear storage")
		}
		printf("Storage cleared\n")
	},
}
