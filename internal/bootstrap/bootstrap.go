package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	detectorinadapter "ecoscan/internal/modules/detector/adapter/in"
	detectoroutadapter "ecoscan/internal/modules/detector/adapter/out"
	detectordomain "ecoscan/internal/modules/detector/domain"
	detectorout "ecoscan/internal/modules/detector/port/out"
	detectorservice "ecoscan/internal/modules/detector/service"
	detectorusecase "ecoscan/internal/modules/detector/usecase"
	progressinadapter "ecoscan/internal/modules/progress/adapter/in"
	progressoutadapter "ecoscan/internal/modules/progress/adapter/out"
	progressdomain "ecoscan/internal/modules/progress/domain"
	progressservice "ecoscan/internal/modules/progress/service"
	progressusecase "ecoscan/internal/modules/progress/usecase"
	recyclinginadapter "ecoscan/internal/modules/recycling/adapter/in"
	recyclingoutadapter "ecoscan/internal/modules/recycling/adapter/out"
	recyclingservice "ecoscan/internal/modules/recycling/service"
	recyclingusecase "ecoscan/internal/modules/recycling/usecase"
	rewardsinadapter "ecoscan/internal/modules/rewards/adapter/in"
	rewardsoutadapter "ecoscan/internal/modules/rewards/adapter/out"
	rewardsusecase "ecoscan/internal/modules/rewards/usecase"
	"ecoscan/internal/platform/clock"
	"ecoscan/internal/platform/config"
	"ecoscan/internal/platform/id"
	"ecoscan/internal/platform/logging"
	"ecoscan/internal/platform/scheduler"
	uiapp "ecoscan/internal/ui/app"
)

type App struct {
	Config       config.Config
	Logger       *slog.Logger
	ProgressCLI  progressinadapter.CLIHandler
	DetectorCLI  detectorinadapter.CLIHandler
	RewardsCLI   rewardsinadapter.CLIHandler
	RecyclingCLI recyclinginadapter.CLIHandler

	aggregator *progressservice.Aggregator
	projector  *progressoutadapter.SQLiteTallyProjector
}

// New wires every module. logger may be nil, in which case nothing is logged.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	clk := clock.SystemClock{}

	aggregator, err := progressservice.NewAggregator(clk, id.UUID{}, scheduler.System{}, logger, progressservice.Options{
		Seed: progressdomain.Seed{
			Level:  cfg.Profile.Level,
			XP:     cfg.Profile.XP,
			Streak: cfg.Profile.Streak,
		},
		DisplayDuration: cfg.Milestone.Display,
	})
	if err != nil {
		return nil, fmt.Errorf("new aggregator: %w", err)
	}
	projector, err := progressoutadapter.NewSQLiteTallyProjector()
	if err != nil {
		aggregator.Close()
		return nil, fmt.Errorf("new tally projector: %w", err)
	}
	progressUC := progressusecase.NewInteractor(aggregator, projector, logger.With("component", "progress"))

	confidence := detectorout.ConfidenceRange{
		Min:    cfg.Detector.MinConfidence,
		Spread: cfg.Detector.ConfidenceSpread,
	}
	manifest := detectordomain.Manifest{
		Name:    cfg.Detector.Plugin.Name,
		Version: cfg.Detector.Plugin.Version,
		Binary:  cfg.Detector.Plugin.Binary,
		SHA256:  cfg.Detector.Plugin.SHA256,
		Enabled: cfg.Detector.Plugin.Enabled,
	}
	var host detectorout.Host
	if manifest.Configured() {
		host = detectoroutadapter.NewGRPCHost(logger)
	}
	detectorUC := detectorusecase.NewInteractor(
		detectorservice.NewDetectorService(
			detectorservice.NewSimulator(detectoroutadapter.MathRandom{}, confidence),
			manifest,
			host,
			confidence,
			logger,
		),
		progressUC,
	)

	rivals, err := rewardsoutadapter.NewEmbeddedRivalStore()
	if err != nil {
		_ = projector.Close()
		aggregator.Close()
		return nil, fmt.Errorf("load rivals: %w", err)
	}
	rewardsUC := rewardsusecase.NewInteractor(
		progressUC,
		rivals,
		rewardsoutadapter.NewCatalogCategoryResolver(detectorUC),
		clk,
		cfg.Profile.Name,
		logger,
	)

	points, err := recyclingoutadapter.NewEmbeddedPointStore()
	if err != nil {
		_ = projector.Close()
		aggregator.Close()
		return nil, fmt.Errorf("load recycling points: %w", err)
	}
	recyclingUC := recyclingusecase.NewInteractor(recyclingservice.NewRecyclingService(points))

	return &App{
		Config:       cfg,
		Logger:       logger,
		ProgressCLI:  progressinadapter.NewCLIHandler(progressUC),
		DetectorCLI:  detectorinadapter.NewCLIHandler(detectorUC),
		RewardsCLI:   rewardsinadapter.NewCLIHandler(rewardsUC),
		RecyclingCLI: recyclinginadapter.NewCLIHandler(recyclingUC),
		aggregator:   aggregator,
		projector:    projector,
	}, nil
}

// Close stops the milestone timer and releases the tally store.
func (a *App) Close() error {
	a.aggregator.Close()
	return a.projector.Close()
}

// OpenLog returns the writer the TUI logs to. The terminal belongs to Bubble
// Tea, so without a configured file records are dropped.
func OpenLog(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{io.Discard}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.ProgressCLI, app.DetectorCLI, app.RewardsCLI, app.RecyclingCLI, uiapp.Options{
		ScanDelay: app.Config.Detector.ScanDelay,
		Lat:       app.Config.Location.Lat,
		Lng:       app.Config.Location.Lng,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
