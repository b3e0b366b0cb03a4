package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abonetti/vetprep/internal/app"
	"github.com/abonetti/vetprep/internal/backup"
	"github.com/abonetti/vetprep/internal/config"
	"github.com/abonetti/vetprep/internal/content"
	"github.com/abonetti/vetprep/internal/llm"
	"github.com/abonetti/vetprep/internal/logging"
	"github.com/abonetti/vetprep/internal/progress"
	"github.com/abonetti/vetprep/internal/progression"
	"github.com/abonetti/vetprep/internal/quizgen"
	"github.com/abonetti/vetprep/internal/screen"
	"github.com/abonetti/vetprep/internal/session"
	"github.com/abonetti/vetprep/internal/storage"
)

// runApp loads config, opens the store, builds the service bundle, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath, err = logging.DefaultLogPath()
		if err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
	}
	logger, err := logging.New(logPath)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logger.Sync()

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := storage.Open(dbPath, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	contentStore := content.NewStore()
	progressStore := progress.NewStore()
	storage.LoadStores(st, contentStore, progressStore)

	svc := &screen.Services{
		Content:       contentStore,
		Progress:      progressStore,
		Progression:   progression.NewEngine(progressStore),
		Storage:       st,
		Logger:        logger,
		MaxExclusions: cfg.Generation.MaxExclusions,
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM(), logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Content generation and exams will be unavailable.")
		logger.Warn("llm provider unavailable", zap.Error(err))
	} else {
		svc.Gateway = quizgen.New(provider, cfg.Quizgen())
	}
	svc.Controller = session.NewController(contentStore, svc.Gateway)

	if driveCfg := cfg.Backup(); driveCfg.Token != "" {
		svc.Backup = backup.NewClient(driveCfg, logger)
	}

	logger.Info("vetprep starting", zap.String("db", dbPath))
	return app.Run(svc)
}
