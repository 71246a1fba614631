package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"tabchart/adapters/excel"
	"tabchart/adapters/gonumplot"
	"tabchart/adapters/postgres"
	"tabchart/app"
	"tabchart/domain/chart"
	"tabchart/domain/dataset"
	"tabchart/internal/config"
	"tabchart/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	exitCode := 0
	rootCmd := newRootCmd(config.Load(), &exitCode)
	rootCmd.AddCommand(newColumnsCmd(config.Load()))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

func newRootCmd(cfg *config.Config, exitCode *int) *cobra.Command {
	graph := string(cfg.Chart.Graph)

	cmd := &cobra.Command{
		Use:   "tabchart",
		Short: "Draw pie or bar charts of the categorical columns of a table",
		Long: `Draw a chart of how often each value occurs in a column.

The input is an .xlsx workbook, a .csv file or a postgres:// DSN together
with --table. Every flag can also be set through a TABCHART_* environment
variable or a .env file.

Examples:
  tabchart --column Region --graph pie
  tabchart --auto --input survey.csv --out-dir charts --format svg`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Chart.Graph = chart.Kind(graph)
			if err := cfg.Validate(); err != nil {
				return err
			}
			code, err := runCharts(cmd.Context(), cfg, cmd.OutOrStdout())
			*exitCode = code
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Chart.Column, "column", cfg.Chart.Column, "Column to chart")
	flags.StringVar(&cfg.Chart.Title, "title", cfg.Chart.Title, "Chart title and output file name (default: the column name)")
	flags.StringVar(&cfg.Source.Input, "input", cfg.Source.Input, "Input .xlsx, .csv or postgres:// DSN")
	flags.BoolVar(&cfg.Chart.Auto, "auto", cfg.Chart.Auto, "Chart every non date/time column")
	flags.StringVar(&graph, "graph", graph, "Chart style: barh or pie")
	flags.Float64Var(&cfg.Chart.HideThreshold, "hide-threshold", cfg.Chart.HideThreshold, "Minimum percentage for a pie wedge to get an outer label")
	flags.Float64Var(&cfg.Chart.ShowThreshold, "show-threshold", cfg.Chart.ShowThreshold, "Minimum percentage for a pie wedge to show its percentage inside")
	flags.StringVar(&cfg.Source.Sheet, "sheet", cfg.Source.Sheet, "Worksheet to read (default: the first sheet)")
	flags.StringVar(&cfg.Source.Table, "table", cfg.Source.Table, "Table to read when the input is a Postgres DSN")
	flags.StringVar(&cfg.Output.Dir, "out-dir", cfg.Output.Dir, "Directory for the chart files")
	flags.StringVar(&cfg.Output.Format, "format", cfg.Output.Format, "Image format: png, jpg, tiff, svg or pdf")
	flags.IntVar(&cfg.Output.DPI, "dpi", cfg.Output.DPI, "Resolution of raster images")
	flags.StringVar(&cfg.Output.FontPath, "font", cfg.Output.FontPath, "TrueType/OpenType font file for the chart text")
	flags.IntVar(&cfg.Run.Workers, "workers", cfg.Run.Workers, "Columns charted concurrently in auto mode")

	return cmd
}

func newColumnsCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "List the columns of the input and whether auto mode charts them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return printColumns(cmd.OutOrStdout(), table)
		},
	}

	cmd.Flags().StringVar(&cfg.Source.Input, "input", cfg.Source.Input, "Input .xlsx, .csv or postgres:// DSN")
	cmd.Flags().StringVar(&cfg.Source.Sheet, "sheet", cfg.Source.Sheet, "Worksheet to read (default: the first sheet)")
	cmd.Flags().StringVar(&cfg.Source.Table, "table", cfg.Source.Table, "Table to read when the input is a Postgres DSN")

	return cmd
}

func runCharts(ctx context.Context, cfg *config.Config, out io.Writer) (int, error) {
	table, err := loadTable(ctx, cfg)
	if err != nil {
		return 1, err
	}

	surfaces, err := gonumplot.NewFactory(cfg.Output.DPI, cfg.Output.FontPath)
	if err != nil {
		return 1, err
	}

	var renderer ports.ChartRendererPort
	switch cfg.Chart.Graph {
	case chart.KindPie:
		renderer = app.NewPieRenderer(surfaces, cfg.Chart.ShowThreshold, cfg.Chart.HideThreshold)
	default:
		renderer = app.NewBarRenderer(surfaces)
	}

	report, err := app.NewChartJob(cfg, table, renderer, out).Run(ctx)
	if err != nil {
		return 1, err
	}
	return report.ExitCode(), nil
}

func loadTable(ctx context.Context, cfg *config.Config) (*dataset.Table, error) {
	if cfg.IsPostgres() {
		if cfg.Source.Table == "" {
			return nil, fmt.Errorf("--table is required for postgres input")
		}
		db, err := postgres.Connect(cfg.Source.Input)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return postgres.NewTableRepository(db).LoadTable(ctx, cfg.Source.Table)
	}

	readerConfig := excel.DefaultReaderConfig(cfg.Source.Input)
	readerConfig.Sheet = cfg.Source.Sheet
	return excel.NewDataReader(readerConfig).ReadTable()
}

func printColumns(out io.Writer, table *dataset.Table) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tKIND\tVALUES")
	for _, col := range table.Columns() {
		values, err := table.Values(col)
		if err != nil {
			return err
		}
		filled := 0
		for _, v := range values {
			if !v.IsMissing {
				filled++
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%d/%d\n", col, table.Kind(col), filled, len(values))
	}
	return w.Flush()
}
