package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"bsplan/internal/app"
	"bsplan/internal/config"
	"bsplan/internal/infrastructure"
	"bsplan/pkg/contracts"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		delimiter  string
		csvPath    string
		noShiftFix bool
		quiet      bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "precompte <export.csv> <année> [sortie.xlsx]",
		Short: "Répare un export planning BetterStreet et génère le classeur Excel du précompte",
		Long: "precompte reconstruit les enregistrements cassés d'un export CSV\n" +
			"BetterStreet (retours à la ligne et points-virgules dans les champs\n" +
			"libres), normalise les dates de planification et produit un classeur\n" +
			"Excel trié avec un onglet d'anomalies.\n\n" +
			"Le premier argument peut être un dossier : l'export .csv le plus\n" +
			"récent y sera utilisé.",
		Version: contracts.Version,
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("année invalide %q", args[1])
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("delimiter") {
				cfg.Input.Delimiter = delimiter
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if noShiftFix {
				cfg.Repair.ShiftAmbiguousEnd = false
			}

			logger, err := infrastructure.InitializeLogger(cfg.Logging)
			if err != nil {
				slog.Warn("failed to initialize logger, using default", "error", err)
				logger = slog.Default()
			}
			defer infrastructure.CloseLogFile()

			logger.Info("starting "+app.AppName,
				slog.String("version", contracts.Version))
			logger.Debug("build details",
				slog.String("build", contracts.GetFullVersionString()))

			opts := app.RunOptions{
				InputPath: args[0],
				Year:      year,
				CSVPath:   csvPath,
				Quiet:     quiet,
			}
			if len(args) == 3 {
				opts.OutputPath = args[2]
			}

			ctx := infrastructure.EnsureRunID(cmd.Context())
			application := app.NewApplication(cfg, logger)
			if _, err := application.Run(ctx, opts); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "fichier de configuration YAML")
	cmd.Flags().StringVar(&delimiter, "delimiter", ";", "séparateur de champs de l'export")
	cmd.Flags().StringVar(&csvPath, "csv", "", "écrit aussi le planning nettoyé en CSV à ce chemin")
	cmd.Flags().BoolVar(&noShiftFix, "no-shift-fix", false, "désactive la correction +12h des fins ambiguës")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "supprime le résumé console")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "niveau de log (debug, info, warn, error)")

	return cmd
}

// loadConfig loads the configuration, honoring an explicit --config path.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}
