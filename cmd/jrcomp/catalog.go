package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bjorndarri/jasperreports/pkg/catalog"
	"github.com/bjorndarri/jasperreports/pkg/cli"
)

var catalogFlags struct {
	path       string
	failed     bool
	since      time.Duration
	limit      int
	format     string
	days       int
	maxRecords int64
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the parse catalog",
	Long: `Query and prune the catalog of recorded template parses.

The catalog is written by lint and watch when catalog.enabled is set.

Subcommands:
  list   - List recorded parses, newest first
  prune  - Apply the retention policy now

Examples:
  jrcomp catalog list --failed --limit 20
  jrcomp catalog list --path reports/orders.jrxml --format json
  jrcomp catalog prune --days 7`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded parses",
	RunE:  listCatalog,
}

var catalogPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete records outside the retention policy",
	RunE:  pruneCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd, catalogPruneCmd)

	catalogListCmd.Flags().StringVar(&catalogFlags.path, "path", "", "only records of this template")
	catalogListCmd.Flags().BoolVar(&catalogFlags.failed, "failed", false, "only failed parses")
	catalogListCmd.Flags().DurationVar(&catalogFlags.since, "since", 0, "only records newer than this (e.g. 24h)")
	catalogListCmd.Flags().IntVar(&catalogFlags.limit, "limit", 50, "maximum number of records")
	catalogListCmd.Flags().StringVar(&catalogFlags.format, "format", "text", "output format: text, json, yaml")

	catalogPruneCmd.Flags().IntVar(&catalogFlags.days, "days", -1, "override catalog.retention.days")
	catalogPruneCmd.Flags().Int64Var(&catalogFlags.maxRecords, "max-records", -1, "override catalog.retention.max_records")
}

// CatalogListing is the output of catalog list.
type CatalogListing struct {
	Total   int64             `json:"total" yaml:"total"`
	Records []*catalog.Record `json:"records" yaml:"records"`
}

func openCatalog() (catalog.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	store, err := catalog.Open(&cfg.Catalog, logger.Slog())
	if err != nil {
		return nil, cli.NewCommandError("catalog", err)
	}
	return store, nil
}

func listCatalog(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(catalogFlags.format, cli.FormatText, cli.FormatJSON, cli.FormatYAML)
	if err != nil {
		return err
	}
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	filter := catalog.Filter{
		Path:   catalogFlags.path,
		Failed: catalogFlags.failed,
		Limit:  catalogFlags.limit,
	}
	if catalogFlags.since > 0 {
		filter.Since = time.Now().Add(-catalogFlags.since)
	}

	ctx := context.Background()
	records, err := store.List(ctx, filter)
	if err != nil {
		return cli.NewCommandError("catalog list", err)
	}
	total, err := store.Count(ctx, filter)
	if err != nil {
		return cli.NewCommandError("catalog list", err)
	}

	return cli.NewFormatter(format).FormatTo(output(cmd), CatalogListing{Total: total, Records: records})
}

func pruneCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	store, err := catalog.Open(&cfg.Catalog, logger.Slog())
	if err != nil {
		return cli.NewCommandError("catalog prune", err)
	}
	defer store.Close()

	retention := cfg.Catalog.Retention
	if catalogFlags.days >= 0 {
		retention.Days = catalogFlags.days
	}
	if catalogFlags.maxRecords >= 0 {
		retention.MaxRecords = catalogFlags.maxRecords
	}

	deleted, err := catalog.NewPruner(store, retention, nil, logger.Slog()).Prune(context.Background())
	if err != nil {
		return cli.NewCommandError("catalog prune", err)
	}
	fmt.Fprintf(output(cmd), "✓ Pruned %d record(s)\n", deleted)
	return nil
}

// WriteText prints the records as a table.
func (l CatalogListing) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PARSED AT\tRESULT\tDURATION\tCOMPONENTS\tPATH")
	for _, r := range l.Records {
		result := "ok"
		if !r.Success {
			result = r.ErrorType
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			r.ParsedAt.Format(time.RFC3339), result, r.Duration.Round(time.Microsecond),
			len(r.ComponentKinds), r.Path)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d record(s)\n", len(l.Records), l.Total)
	return err
}
