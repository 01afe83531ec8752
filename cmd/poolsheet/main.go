// Package main provides the CLI entry point for poolsheet.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spreadpool/poolsheet-go/internal/config"
	"github.com/spreadpool/poolsheet-go/internal/logger"
	"github.com/spreadpool/poolsheet-go/internal/server"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/output"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/scoring"
)

var (
	configPath  string
	logLevel    string
	dataDir     string
	noFeed      bool
	outputPath  string
	parquetPath string
	pretty      bool
	year        int
	weekKey     string
	addr        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "poolsheet",
		Short: "Extract and score weekly spread pool spreadsheets",
		Long: `poolsheet reads weekly spread pool workbooks, reconciles them against
final NFL scores and outputs normalized JSON.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./poolsheet.toml if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding {year}/*.xlsx files")
	rootCmd.PersistentFlags().BoolVar(&noFeed, "no-feed", false, "Skip the score feed and use only scores in the sheets")

	parseCmd := &cobra.Command{
		Use:   "parse [input.xlsx]",
		Short: "Parse one weekly workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	parseCmd.Flags().IntVar(&year, "year", 0, "Season year (default: parent directory name)")
	parseCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build every week under the data directory",
		Args:  cobra.NoArgs,
		RunE:  runBuild,
	}
	buildCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	buildCmd.Flags().StringVar(&parquetPath, "parquet", "", "Also write flattened picks to this Parquet file")
	buildCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	standingsCmd := &cobra.Command{
		Use:   "standings",
		Short: "Print standings and weekly points as a table",
		Args:  cobra.NoArgs,
		RunE:  runStandings,
	}
	standingsCmd.Flags().StringVar(&weekKey, "week", "", "Week key such as 2024_week_5 (default: latest)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the dataset and serve it over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	rootCmd.AddCommand(parseCmd, buildCmd, standingsCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	cfg *config.Config
	log *logrus.Logger
}

func setup() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if noFeed {
		cfg.Feed.Enabled = false
	}
	return &app{cfg: cfg, log: logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)}, nil
}

func (a *app) builder() (*poolsheet.Builder, error) {
	aliases, err := a.cfg.Aliases()
	if err != nil {
		return nil, err
	}
	var src scoring.ScoreSource
	if client := a.cfg.ScoreClient(a.log); client != nil {
		src = client
	}
	return poolsheet.NewBuilder(src, aliases, a.cfg.ExtractOptions(a.log)), nil
}

func (a *app) build(ctx context.Context) (poolsheet.Dataset, error) {
	b, err := a.builder()
	if err != nil {
		return nil, err
	}
	data, err := b.Build(ctx, a.cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("build failed: %w", err)
	}
	a.log.WithField("weeks", len(data)).Info("Build complete")
	return data, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	inputPath := args[0]

	if year == 0 {
		y, err := strconv.Atoi(filepath.Base(filepath.Dir(inputPath)))
		if err != nil {
			return fmt.Errorf("cannot infer year from %s, use --year", inputPath)
		}
		year = y
	}

	record, err := poolsheet.Extract(inputPath, year, a.cfg.ExtractOptions(a.log))
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	b, err := a.builder()
	if err != nil {
		return err
	}
	b.Reconcile(cmd.Context(), []*models.WeeklyPoolRecord{record})

	jsonData, err := output.WeekToJSON(record, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(cmd.OutOrStdout(), jsonData)
}

func runBuild(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	data, err := a.build(cmd.Context())
	if err != nil {
		return err
	}

	if parquetPath != "" {
		rows := output.PickRows(data.Weeks())
		if err := output.WritePicksParquetFile(parquetPath, rows); err != nil {
			return err
		}
		a.log.WithFields(logrus.Fields{"path": parquetPath, "rows": len(rows)}).Info("Wrote picks")
	}

	jsonData, err := output.DatasetToJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(cmd.OutOrStdout(), jsonData)
}

func runStandings(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	data, err := a.build(cmd.Context())
	if err != nil {
		return err
	}

	week := data.Latest()
	if weekKey != "" {
		week = data[weekKey]
	}
	if week == nil {
		return fmt.Errorf("no week found")
	}
	renderStandings(cmd.OutOrStdout(), week)
	return nil
}

func renderStandings(w io.Writer, week *models.WeeklyPoolRecord) {
	weekly := make(map[string]models.PlayerPick, len(week.PlayerPicks))
	for _, pp := range week.PlayerPicks {
		weekly[pp.ID] = pp
	}

	fmt.Fprintf(w, "%s (%s)\n", week.Title, week.Key)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Pos", "Player", "Wins", "Points", "Week", "Tiebreak"})
	for _, s := range week.Standings {
		weekPoints, tiebreak := "", ""
		if pp, ok := weekly[s.ID]; ok {
			weekPoints = strconv.Itoa(pp.Points)
			if pp.TieBreak != nil {
				tiebreak = strconv.FormatFloat(*pp.TieBreak, 'f', -1, 64)
			}
		}
		table.Append([]string{
			s.Position,
			s.Name,
			strconv.FormatFloat(s.Wins, 'f', -1, 64),
			strconv.FormatFloat(s.Points, 'f', -1, 64),
			weekPoints,
			tiebreak,
		})
	}
	table.Render()
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	data, err := a.build(ctx)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = a.cfg.Server.Addr
	}
	return server.New(data, a.log, a.cfg.Server.Mode).Run(ctx, addr)
}

func writeOutput(stdout io.Writer, data []byte) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err := fmt.Fprintln(stdout, string(data))
	return err
}
