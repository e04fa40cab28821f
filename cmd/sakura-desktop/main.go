// Sakura desktop shell. It supervises the assistant backend process and
// hosts the bubble and main windows around it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appcore "github.com/chande-dhanush/Sakura/internal/app"
	"github.com/chande-dhanush/Sakura/internal/backend"
	"github.com/chande-dhanush/Sakura/internal/config"
	"github.com/chande-dhanush/Sakura/internal/lifecycle"
	"github.com/chande-dhanush/Sakura/internal/logs"
	"github.com/chande-dhanush/Sakura/internal/ui"
	"github.com/chande-dhanush/Sakura/internal/ui/hotkey"
	"github.com/chande-dhanush/Sakura/internal/wailsui"
)

// version is set by the build system.
var version = "dev"

var (
	configPath  string
	resourceDir string
	logLevel    string
	logToFile   bool
	logDir      string
	voiceMode   bool
	skipBackend bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "sakura-desktop",
		Short:   "Sakura desktop assistant shell",
		Long:    "Sakura desktop assistant shell. Launches the assistant backend, waits for it to become healthy, and hosts the bubble and main windows.",
		Version: version,
		RunE:    run,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file (default: ~/.sakura/sakura_config.json)")
	rootCmd.Flags().StringVar(&resourceDir, "resources", "", "bundled resource directory to probe for the backend sidecar")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&logToFile, "log-to-file", true, "write logs to the per-user log directory")
	rootCmd.Flags().StringVar(&logDir, "log-dir", "", "custom log directory")
	rootCmd.Flags().BoolVar(&voiceMode, "voice", true, "launch the backend with voice features enabled")
	rootCmd.Flags().BoolVar(&skipBackend, "skip-backend", false, "do not spawn a backend; assume one is managed externally")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.Backend.VoiceMode = voiceMode

	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = logs.DefaultLogConfig()
	}
	logConfig.Level = logLevel
	logConfig.EnableFile = logToFile
	if logDir != "" {
		logConfig.LogDir = logDir
	}

	logger, err := logs.SetupLogger(logConfig)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	sugar.Infow("Starting Sakura desktop", "version", version, "port", cfg.Backend.Port)

	machine := lifecycle.NewMachine(sugar)
	machine.Start()

	locator := backend.NewLocator(resourceDir, sugar)
	supervisor := backend.NewSupervisor(cfg.Backend, locator, sugar)
	readiness := backend.NewReadinessGate(cfg.Backend, cfg.Startup, sugar)
	dispatcher := ui.NewDispatcher(hotkey.NewGlobalBackend(sugar), sugar)

	service := appcore.NewDesktopService()
	shell := wailsui.NewShell(cfg, service, sugar)
	coordinator := ui.NewCoordinator(shell.BubbleWindow(), shell.MainWindow(), cfg.Windows, sugar)

	// The offline signal goes out twice: a desktop toast and an event the
	// main window's UI renders inline.
	notifier := ui.NewNotifier("Sakura", "", sugar)
	notifyOffline := func() {
		notifier.NotifyNoInternet()
		coordinator.EmitToMain(ui.EventNoInternet)
	}
	connectivity := backend.NewConnectivityGate(cfg.Startup, notifyOffline, sugar)

	orch := appcore.New(appcore.Options{
		Config:       cfg,
		Logger:       sugar,
		Machine:      machine,
		Supervisor:   supervisor,
		Readiness:    readiness,
		Connectivity: connectivity,
		Dispatcher:   dispatcher,
		Coordinator:  coordinator,
		SkipBackend:  skipBackend,
	})
	service.Bind(orch)
	shell.Attach(orch)

	if err := shell.Run(); err != nil {
		sugar.Errorw("Desktop shell failed", "error", err)
		return err
	}

	// The toolkit quit without going through a supervisor quit path, for
	// example a platform-level terminate. Tear the backend down the same
	// way; Quit does not return.
	orch.Quit()
	return nil
}
