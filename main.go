package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sihproto/verifyboard/internal/app"
	"github.com/sihproto/verifyboard/internal/broadcast"
	"github.com/sihproto/verifyboard/internal/config"
	"github.com/sihproto/verifyboard/internal/dashboard"
	"github.com/sihproto/verifyboard/internal/health"
	"github.com/sihproto/verifyboard/internal/i18n"
	"github.com/sihproto/verifyboard/internal/logging"
	"github.com/sihproto/verifyboard/internal/preferences"
	"golang.org/x/text/language"
)

func main() {
	application, err := initialize()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize")
	}

	if err = application.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("dashboard stopped with error")
	}
}

func initialize() (*app.App, error) {
	var deps []app.Dependency

	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Debug, cfg.LogFormat)

	prefs, err := preferences.New(&preferences.Config{Dir: cfg.Dir})
	if err != nil {
		return nil, err
	}

	tables, err := i18n.DefaultTables()
	if err != nil {
		return nil, err
	}

	// the localization manager is the one language state every view shares
	localization, err := i18n.New(&i18n.Config{
		Tables:          tables,
		Store:           prefs,
		DefaultLanguage: cfg.Language,
	})
	if err != nil {
		return nil, err
	}
	deps = append(deps, localization)

	broadcaster, err := broadcast.New(&broadcast.Config{
		Address: cfg.BroadcastAddress,
		Port:    cfg.BroadcastPort,
	})
	if err != nil {
		return nil, err
	}
	deps = append(deps, broadcaster)

	healthSrv, err := health.NewServer(&health.Config{
		Address: cfg.HealthAddress,
		Port:    cfg.HealthPort,
	})
	if err != nil {
		return nil, err
	}
	deps = append(deps, healthSrv)

	collation, err := language.Parse(cfg.Collation)
	if err != nil {
		log.Warn().Err(err).Str("collation", cfg.Collation).Msg("unknown collation, using English")
		collation = language.English
	}

	board, err := dashboard.New(&dashboard.Config{
		Out:        os.Stdout,
		Translator: localization,
		Records:    dashboard.SampleAudit(),
		PageSize:   cfg.PageSize,
		Collation:  collation,
	})
	if err != nil {
		return nil, err
	}

	localization.AddListener(board.OnLanguageChange)
	localization.AddListener(func(change i18n.Change) {
		broadcaster.Emit(broadcast.NewEvent(change.Language, change.Previous))
	})

	application, err := app.CreateApp(&app.Config{
		ServiceName: "Verification Dashboard",
		StopTimeout: 5 * time.Second,
		OnReady: func() {
			if err := board.Render(); err != nil {
				log.Error().Err(err).Msg("failed to render audit trail")
			}
		},
	}, deps...)
	if err != nil {
		return nil, err
	}

	return application, nil
}
