package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/xvierd/git-onboard/internal/adapters/git"
	"github.com/xvierd/git-onboard/internal/adapters/gitexec"
	"github.com/xvierd/git-onboard/internal/adapters/notification"
	"github.com/xvierd/git-onboard/internal/adapters/storage"
	"github.com/xvierd/git-onboard/internal/adapters/tui"
	"github.com/xvierd/git-onboard/internal/config"
	"github.com/xvierd/git-onboard/internal/logging"
	"github.com/xvierd/git-onboard/internal/ports"
	"github.com/xvierd/git-onboard/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config    *config.Config
	logger    *zap.Logger
	storage   ports.Storage
	git       *gitexec.Runner
	inspector *git.Inspector
	prompter  ports.Prompter
	coach     *services.Coach
	lessons   *services.LessonService
	// interrupt feeds the plain prompter, workflowInterrupt the coach.
	// Both receive every SIGINT.
	interrupt         chan os.Signal
	workflowInterrupt chan os.Signal
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices(out io.Writer) error {
	// Load configuration
	var err error
	app.config, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		app.config = config.DefaultConfig()
		if err := app.config.ExpandDataDir(); err != nil {
			return err
		}
	}
	if plainMode {
		app.config.UI.Plain = true
	}

	if err := os.MkdirAll(app.config.Storage.DataDir, 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	level := app.config.Log.Level
	if verbose {
		level = "debug"
	}
	app.logger = logging.NewOrNop(config.GetLogPath(app.config), level)

	// Determine database path
	if dbPath == "" {
		dbPath = config.GetDBPath(app.config)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// Initialize storage
	app.storage, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.git = gitexec.NewRunner(
		gitexec.WithBinary(app.config.Git.Binary),
		gitexec.WithLogger(app.logger),
	)
	app.inspector = git.NewInspector()

	// Ctrl-C outside a prompt cancels the running workflow instead of
	// killing the program.
	app.workflowInterrupt = make(chan os.Signal, 1)
	signal.Notify(app.workflowInterrupt, os.Interrupt)

	var styler ports.Styler = tui.PlainStyles{}
	if app.config.UI.Plain || !tui.Interactive() {
		app.interrupt = make(chan os.Signal, 1)
		signal.Notify(app.interrupt, os.Interrupt)
		app.prompter = tui.NewPlainPrompter(os.Stdin, out).WithInterrupt(app.interrupt)
	} else {
		app.prompter = tui.NewPrompter(out, &app.config.Theme, app.config.UI.ClearScreen)
		styler = tui.NewStyles(&app.config.Theme)
	}

	workDir, err := resolveWorkDir()
	if err != nil {
		return err
	}

	settings := services.Settings{
		DefaultBranch:  app.config.Git.DefaultBranch,
		RemoteName:     app.config.Git.RemoteName,
		LogLimit:       app.config.Git.LogLimit,
		ProtectedPaths: app.config.UI.ProtectedPaths,
	}
	app.coach = services.NewCoach(services.Deps{
		Git:      app.git,
		Repo:     app.inspector,
		Prompter: app.prompter,
		Styler:   styler,
		Out:      out,
		Storage:  app.storage,
		Notifier: notification.New(&app.config.Notifications),
		Logger:   app.logger,

		Interrupts: app.workflowInterrupt,
	}, settings, workDir)
	app.lessons = services.NewLessonService(app.storage, app.inspector, settings)

	app.logger.Debug("services initialized",
		zap.String("db", dbPath),
		zap.String("work_dir", workDir),
		zap.Bool("plain", app.config.UI.Plain),
	)
	return nil
}

// resolveWorkDir applies -C to the current directory.
func resolveWorkDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	if workDirFlag == "" {
		return cwd, nil
	}
	dir := workDirFlag
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cwd, dir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("cannot use -C %s: %w", workDirFlag, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("cannot use -C %s: not a directory", workDirFlag)
	}
	return filepath.Clean(dir), nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.interrupt != nil {
		signal.Stop(app.interrupt)
	}
	if app.workflowInterrupt != nil {
		signal.Stop(app.workflowInterrupt)
	}
	if app.logger != nil {
		_ = app.logger.Sync()
	}
	if app.storage != nil {
		return app.storage.Close()
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on termination.
// Interrupts are left to the prompters and the coach so Ctrl-C returns
// to the menu.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}
