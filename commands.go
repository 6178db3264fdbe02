package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"jdkswitch/internal/config"
	"jdkswitch/internal/env"
	jerrors "jdkswitch/internal/errors"
	"jdkswitch/internal/java"
	"jdkswitch/internal/logging"
	"jdkswitch/internal/switcher"
	"jdkswitch/internal/updater"
)

// app holds flag values and the collaborators built from them for one
// invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	list       bool
	set        int
	dryRun     bool
	verbosity  int
	quiet      bool
	logFormat  string
	configPath string

	cfg     *config.Config
	logger  *slog.Logger
	overlay *env.Overlay
	sw      *switcher.Switcher

	openStore     func(cfg *config.Config) (env.Store, error)
	inventoryOpts []java.Option
	probe         switcher.Prober
	launcher      string
	interactive   bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		openStore: func(cfg *config.Config) (env.Store, error) {
			return env.Open(cfg.Scope, cfg.StoreFile)
		},
		probe:       switcher.NewCommandProbe(),
		interactive: logging.IsTTY(os.Stdout),
	}
}

func usageError(err error) error {
	return jerrors.NewUserError(err, "Run: jdkswitch --help")
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError(err)
	}
	return nil
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jdkswitch",
		Short: "Switch the system JDK in one command",
		Long: `jdkswitch finds the JDKs installed under Program Files and ~/.jdks,
points JAVA_HOME at the one you choose and moves %JAVA_HOME%\bin to the
front of PATH.`,
		Example: `  # List installed JDKs, the active one is marked
  jdkswitch --list

  # Switch to the JDK at index 1 of the list
  jdkswitch --set 1

  # Show what would change without writing anything
  jdkswitch --set 1 --dry-run

  # Check JAVA_HOME and PATH
  jdkswitch doctor`,
		Args: noArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			setChanged := cmd.Flags().Changed("set")
			switch {
			case a.list && setChanged:
				return usageError(errors.New("--list and --set cannot be combined"))
			case a.list:
				return a.runList()
			case setChanged:
				return a.runSet(a.set)
			default:
				return cmd.Help()
			}
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			a.finish(cmd)
			return nil
		},
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetVersionTemplate("jdkswitch version {{.Version}}\n")
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	f := root.Flags()
	f.BoolVarP(&a.list, "list", "l", false, "list installed JDKs")
	f.IntVarP(&a.set, "set", "s", 0, "switch to the JDK at this index of --list")

	pf := root.PersistentFlags()
	pf.BoolVar(&a.dryRun, "dry-run", false, "print the variables that would change without writing them")
	pf.CountVarP(&a.verbosity, "verbose", "v", "increase verbosity level (e.g., -v, -vv, -vvv)")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	pf.StringVar(&a.logFormat, "log-format", string(logging.FormatText), "log format: text, json")
	pf.StringVar(&a.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(a.switchCmd(), a.doctorCmd(), a.updateCmd(), a.versionCmd())
	return root
}

// setup builds the logger, config, store and switcher.
func (a *app) setup() error {
	if a.quiet && a.verbosity > 0 {
		return usageError(errors.New("--quiet and --verbose cannot be combined"))
	}

	level := slog.LevelError
	if !a.quiet {
		v := a.verbosity
		if v == 0 {
			switch os.Getenv("JDKSWITCH_DEBUG") {
			case "1", "true":
				v = 2
			case "2":
				v = 3
			}
		}
		level = logging.LevelFromVerbosity(v)
	}
	a.logger = logging.New(logging.Config{
		Level:  level,
		Format: logging.Format(a.logFormat),
		Output: a.stderr,
	})

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return jerrors.NewUserError(err, "Fix or remove the config file")
	}
	a.cfg = cfg
	a.logger.Debug("config loaded", "path", cfg.Path(), "home_var", cfg.HomeVar, "scope", cfg.Scope)

	store, err := a.openStore(cfg)
	if err != nil {
		return err
	}
	if a.dryRun {
		a.overlay = env.NewOverlay(store)
		store = a.overlay
	}

	opts := []java.Option{
		java.WithSearchPaths(cfg.SearchPaths...),
		java.WithSort(cfg.Sort),
		java.WithLogger(a.logger),
	}
	inv := java.NewInventory(append(opts, a.inventoryOpts...)...)

	a.sw = switcher.New(switcher.Deps{
		Store:     store,
		Inventory: inv,
		Probe:     a.probe,
		HomeVar:   cfg.HomeVar,
		Launcher:  a.launcher,
		Logger:    a.logger,
	})
	return nil
}

// discover runs the inventory behind a spinner.
func (a *app) discover() []java.JDK {
	var jdks []java.JDK
	err := java.WithScanner("Scanning for JDKs...", func() error {
		jdks = a.sw.List()
		return nil
	})
	if err != nil {
		a.logger.Debug("spinner failed", "error", err)
	}
	a.logger.Info("inventory scanned", "found", len(jdks))
	return jdks
}

func (a *app) runList() error {
	jdks := a.discover()
	current, err := a.sw.Current()
	if err != nil {
		return err
	}
	a.printList(jdks, current)
	return nil
}

func (a *app) runSet(index int) error {
	jdk, err := switcher.Select(a.discover(), index)
	if err != nil {
		return err
	}
	return a.apply(jdk)
}

func (a *app) apply(jdk java.JDK) error {
	if a.cfg.Scope == config.ScopeSystem && !a.dryRun && !env.IsAdmin() {
		a.logger.Warn("not running as administrator, writing system variables may fail")
	}
	res, err := a.sw.Switch(jdk)
	if err != nil {
		return err
	}
	if !a.dryRun {
		a.printSwitched(jdk, res)
	}
	return nil
}

func (a *app) switchCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "switch",
		Short: "Pick a JDK interactively",
		Args:  noArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !a.interactive {
				return jerrors.NewUserError(errors.New("switch needs a terminal"), "Use: jdkswitch --set <index>")
			}
			jdks := a.discover()
			if len(jdks) == 0 {
				return jerrors.NotFoundf("no JDK installed")
			}
			current, err := a.sw.Current()
			if err != nil {
				return err
			}

			jdk, err := selectJDK(jdks, current)
			if err != nil {
				a.printLine(warningLine("Selection cancelled"))
				return nil
			}
			if strings.EqualFold(jdk.Path, current) {
				a.printLine(infoLine(jdk.Version + " is already active"))
				return nil
			}
			if !yes {
				ok, err := confirm("Switch to "+jdk.Version+"?", jdk.Path)
				if err != nil || !ok {
					a.printLine(warningLine("Switch cancelled"))
					return nil
				}
			}
			return a.apply(jdk)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (a *app) doctorCmd() *cobra.Command {
	var fix bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check JAVA_HOME and PATH against the java on PATH",
		Args:  noArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			var report switcher.Report
			err := java.WithScanner("Checking environment...", func() error {
				var err error
				report, err = a.sw.Diagnose()
				return err
			})
			if err != nil {
				return err
			}
			a.printReport(report)

			if !fix || report.Healthy() {
				return nil
			}
			proposal := report.Proposal
			if proposal == "" && report.Path.Changed() {
				proposal = report.Home
			}
			if proposal == "" {
				if report.ValidateErr != nil {
					return report.ValidateErr
				}
				return nil
			}
			res, err := a.sw.Fix(proposal)
			if err != nil {
				return err
			}
			if !a.dryRun {
				a.printFixed(res)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fix, "fix", false, "apply the proposed corrections")
	return cmd
}

func (a *app) updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update jdkswitch to the latest release",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.cfg.Update.Enabled {
				a.printLine(warningLine("Updates are disabled in configuration"))
				a.printLine(faintLine("Set update.enabled to true in " + a.cfg.Path()))
				return nil
			}
			if a.cfg.Update.Repository == "" {
				a.printLine(warningLine("No update repository configured"))
				a.printLine(faintLine("Set update.repository to owner/name in " + a.cfg.Path()))
				return nil
			}
			upd, err := updater.New(a.cfg, Version, a.logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), updater.Timeout)
			defer cancel()

			a.printLine(infoLine("Checking for updates..."))
			release, err := upd.Check(ctx)
			if err != nil {
				return errors.Wrap(err, "update check failed")
			}
			if release == nil {
				a.printLine(successLine("Already running the latest version (" + Version + ")"))
				return nil
			}
			if !a.interactive {
				updater.Notify(a.stdout, upd.Current(), release.Version())
				return nil
			}

			action, err := upd.Prompt(release)
			if err != nil {
				a.printLine(warningLine("Update cancelled"))
				return nil
			}
			switch action {
			case updater.ActionSkip:
				a.printLine(infoLine("Skipped version " + release.Version()))
				return nil
			case updater.ActionLater:
				a.printLine(infoLine("Update postponed"))
				return nil
			}

			if err := upd.Apply(ctx, release); err != nil {
				return jerrors.NewSystemError(err,
					"Try again or download from https://github.com/"+a.cfg.Update.Repository+"/releases")
			}
			updater.ShowSuccess(a.stdout, release.Version())
			return nil
		},
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  noArgs,
		Run: func(_ *cobra.Command, _ []string) {
			a.printVersion()
		},
	}
}

// finish prints pending dry-run changes and runs the background update
// check.
func (a *app) finish(cmd *cobra.Command) {
	if a.overlay != nil {
		a.printChanges(a.overlay.Changes())
	}
	if a.cfg == nil || cmd.Name() == "update" || !a.interactive || a.quiet {
		return
	}

	upd, err := updater.New(a.cfg, Version, a.logger)
	if err != nil || !upd.ShouldCheck() {
		return
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), updater.BackgroundTimeout)
	defer cancel()

	release, err := upd.Check(ctx)
	if err != nil {
		a.logger.Debug("background update check failed", "error", err)
		return
	}
	if release != nil {
		updater.Notify(a.stderr, upd.Current(), release.Version())
	}
}

// fail prints err with its suggestion and returns the exit code.
func (a *app) fail(err error) int {
	exitErr := jerrors.Classify(err)
	a.printErr(exitErr)
	return exitErr.Code
}
