package main

import (
	"os"

	"github.com/spf13/afero"

	"github.com/jhoicas/inventario-cli/internal/application/auth"
	"github.com/jhoicas/inventario-cli/internal/application/inventory"
	"github.com/jhoicas/inventario-cli/internal/application/report"
	"github.com/jhoicas/inventario-cli/internal/infrastructure/csvstore"
	"github.com/jhoicas/inventario-cli/internal/interfaces/console"
	"github.com/jhoicas/inventario-cli/pkg/config"
	"github.com/jhoicas/inventario-cli/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("data_dir", cfg.Storage.DataDir).
		Msg("iniciando aplicación")

	fs := afero.NewOsFs()
	hasher := auth.SHA256Hasher{}

	itemStore, err := csvstore.NewItemStore(fs, cfg.Storage.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir items.csv")
	}
	movementStore, err := csvstore.NewMovementStore(fs, cfg.Storage.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir transactions.csv")
	}
	userStore, err := csvstore.NewUserStore(fs, cfg.Storage.DataDir, auth.DefaultAdmin(hasher))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir users.csv")
	}

	itemUC := inventory.NewItemUseCase(itemStore)
	ledger := inventory.NewStockLedger(itemStore, movementStore, log)
	userUC := auth.NewUserUseCase(userStore, hasher)
	reportUC := report.NewReportUseCase(fs, itemStore, ledger, cfg.Storage.ReportsDir)

	app := console.New(os.Stdin, os.Stdout, userUC, itemUC, ledger, reportUC)
	if err := app.Run(); err != nil {
		log.Fatal().Err(err).Msg("sesión de consola")
	}
}
