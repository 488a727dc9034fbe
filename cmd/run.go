package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/region-odds/playoffsim/internal/config"
	"github.com/region-odds/playoffsim/internal/engine"
	"github.com/region-odds/playoffsim/internal/model"
)

var (
	configPath  string
	configPaths []string
	jsonOutput  bool
	csvOutput   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the region-finish engine for one or more regions and print playoff odds",
	Args:  cobra.NoArgs,
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "path to a single region's RunConfig file (JSON or YAML)")
	runCmd.Flags().StringSliceVar(&configPaths, "configs", nil, "paths to multiple RunConfig files, run as one batch")
	runCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit rows as JSON instead of a table")
	runCmd.Flags().BoolVar(&csvOutput, "csv", false, "emit rows as CSV instead of a table")
}

func runRun(cmd *cobra.Command, args []string) error {
	paths := configPaths
	if configPath != "" {
		paths = append([]string{configPath}, paths...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("run: at least one of --config or --configs is required")
	}

	logger := newLogger()
	defer logger.Sync()

	var allRows []model.SchoolOdds
	for _, path := range paths {
		rows, err := runOneRegion(cmd.Context(), path, logger)
		if err != nil {
			return fmt.Errorf("run: %s: %w", path, err)
		}
		allRows = append(allRows, rows...)
	}

	switch {
	case jsonOutput:
		return printJSON(allRows)
	case csvOutput:
		return printCSV(allRows)
	default:
		return printTable(allRows)
	}
}

func runOneRegion(ctx context.Context, path string, logger *zap.Logger) ([]model.SchoolOdds, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	var schools []model.School
	var games []model.Game
	if err := config.LoadSchoolsAndGames(cfg, &schools, &games); err != nil {
		return nil, err
	}

	engineCfg := cfg.ToEngineConfig(logger)
	result, err := engine.Run(ctx, schools, games, engineCfg)
	if err != nil {
		if result.Rows != nil {
			return result.Rows, err
		}
		return nil, err
	}
	return result.Rows, nil
}

// printTable renders rows as an aligned table via text/tabwriter.
func printTable(rows []model.SchoolOdds) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 1, ' ', 0)
	fmt.Fprintln(w, "Region\tSchool\t1st\t2nd\t3rd\t4th\tPlayoffs\tFinal\tClinched\tEliminated")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%v\t%v\n",
			r.Region, r.School,
			pct(r.Odds1st), pct(r.Odds2nd), pct(r.Odds3rd), pct(r.Odds4th),
			pct(r.OddsPlayoffs), pct(r.FinalOddsPlayoffs),
			r.Clinched, r.Eliminated)
	}
	return w.Flush()
}

func pct(x float64) string { return fmt.Sprintf("%.1f%%", x*100) }

func printJSON(rows []model.SchoolOdds) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func printCSV(rows []model.SchoolOdds) error {
	out, err := model.MarshalCSV(rows)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
