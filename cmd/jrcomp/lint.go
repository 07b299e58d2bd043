package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bjorndarri/jasperreports/pkg/catalog"
	"github.com/bjorndarri/jasperreports/pkg/cli"
	"github.com/bjorndarri/jasperreports/pkg/config"
	jrerrors "github.com/bjorndarri/jasperreports/pkg/jrxml/errors"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/parser"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/validator"
)

var lintFlags struct {
	file      string
	dir       string
	recursive bool
	strict    bool
	format    string
	progress  bool
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate JRXML templates",
	Long: `Validate the list, table and barcode components of JRXML templates.

The lint command builds the component model of every template and reports:
  - XML syntax errors
  - Unrecognized enumerated values (splitType, printOrder, whenNoDataType, ...)
  - Malformed column identities
  - Structural findings such as empty tables or unknown group names

Examples:
  # Lint single file
  jrcomp lint --file orders.jrxml

  # Lint directory tree
  jrcomp lint --dir reports/ --recursive

  # Strict mode (warnings as errors)
  jrcomp lint --file orders.jrxml --strict

  # JSON output for CI/CD
  jrcomp lint --dir reports/ --format json`,
	RunE: lintTemplates,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "template file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of templates")
	lintCmd.Flags().BoolVarP(&lintFlags.recursive, "recursive", "r", false, "include subdirectories of --dir")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
	lintCmd.Flags().BoolVar(&lintFlags.progress, "progress", false, "show a progress bar on stderr")
}

// LintResult is the validation result for a single template.
type LintResult struct {
	File       string    `json:"file"`
	Valid      bool      `json:"valid"`
	Components int       `json:"components"`
	Errors     []Finding `json:"errors,omitempty"`
	Warnings   []Finding `json:"warnings,omitempty"`
	Infos      []Finding `json:"infos,omitempty"`
}

// Finding is a single error, warning or note.
type Finding struct {
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Path       string `json:"path,omitempty"`
	Rule       string `json:"rule,omitempty"`
	Type       string `json:"type,omitempty"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	Suggestion string `json:"suggestion,omitempty"`
}

// LintReport is the output of the lint command.
type LintReport struct {
	Results  []LintResult `json:"results"`
	Errors   int          `json:"errors"`
	Warnings int          `json:"warnings"`
	Strict   bool         `json:"strict"`
}

func lintTemplates(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return cli.NewConfigError("file", "either --file or --dir must be specified")
	}
	format, err := cli.ParseFormat(lintFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	files, err := lintFiles(cfg)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}
	if len(files) == 0 {
		return cli.NewCommandError("lint", fmt.Errorf("no templates found"))
	}

	recorder, closeCatalog, err := openRecorder(cfg, logger.Slog(), nil)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}
	defer closeCatalog()

	p := parser.FromConfig(&cfg.Parser).WithLogger(logger.Slog())
	v := validator.NewValidator().WithStrictMode(lintFlags.strict || cfg.Parser.Strict)

	var progress cli.ProgressReporter = cli.NopProgress{}
	if lintFlags.progress {
		progress = cli.NewProgressReporter(os.Stderr, "files")
	}
	progress.Start(int64(len(files)))

	ctx := context.Background()
	report := LintReport{Strict: lintFlags.strict, Results: make([]LintResult, 0, len(files))}
	for i, file := range files {
		result := lintFile(ctx, p, v, recorder, file)
		report.Errors += len(result.Errors)
		report.Warnings += len(result.Warnings)
		report.Results = append(report.Results, result)
		progress.Update(int64(i + 1))
	}
	progress.Finish()

	if err := cli.NewFormatter(format).FormatTo(output(cmd), report); err != nil {
		return err
	}
	if report.Errors > 0 {
		return cli.NewExitError(1, "lint failed: %d error(s), %d warning(s)", report.Errors, report.Warnings)
	}
	return nil
}

func lintFiles(cfg *config.Config) ([]string, error) {
	var files []string
	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}
	if lintFlags.dir != "" {
		matches, err := parser.TemplateFiles(lintFlags.dir, lintFlags.recursive, cfg.Watch.Extensions)
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	return files, nil
}

func lintFile(ctx context.Context, p *parser.Parser, v *validator.Validator, recorder *catalog.Recorder, path string) LintResult {
	result := LintResult{File: path, Valid: true}
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		err = jrerrors.NewIO(path, err)
	} else {
		doc, perr := p.ParseBytes(ctx, data, path)
		err = perr
		if err == nil {
			result.Components = len(doc.Components())
			rep := v.Validate(doc)
			for _, issue := range rep.Issues {
				f := Finding{
					Line:     issue.Location.Line,
					Column:   issue.Location.Column,
					Path:     issue.Location.Path,
					Rule:     issue.Rule,
					Message:  issue.Message,
					Severity: string(issue.Severity),
				}
				switch issue.Severity {
				case validator.SeverityError:
					result.Errors = append(result.Errors, f)
				case validator.SeverityWarning:
					result.Warnings = append(result.Warnings, f)
				default:
					result.Infos = append(result.Infos, f)
				}
			}
			if recorder != nil {
				_ = recorder.Record(ctx, catalog.NewRecord(path, data, doc, rep, nil, time.Since(start)))
			}
		}
	}

	if err != nil {
		result.Errors = append(result.Errors, findingFromError(err))
		if recorder != nil {
			_ = recorder.Record(ctx, catalog.NewRecord(path, data, nil, nil, err, time.Since(start)))
		}
	}
	result.Valid = len(result.Errors) == 0
	return result
}

func findingFromError(err error) Finding {
	e, ok := jrerrors.As(err)
	if !ok {
		return Finding{Message: err.Error(), Severity: "error"}
	}
	return Finding{
		Line:       e.Location.Line,
		Column:     e.Location.Column,
		Path:       e.Location.Path,
		Type:       string(e.Type),
		Message:    e.Message,
		Severity:   "error",
		Suggestion: e.Suggestion,
	}
}

// WriteText prints the report in the human-readable layout.
func (r LintReport) WriteText(w io.Writer) error {
	for _, result := range r.Results {
		fmt.Fprintf(w, "Validating %s...\n", result.File)

		if result.Valid && len(result.Warnings) == 0 {
			fmt.Fprintf(w, "✓ %d component(s) built\n", result.Components)
		}
		for _, f := range result.Errors {
			fmt.Fprintf(w, "✗ Error: %s%s\n", f.Message, f.suffix())
			if f.Suggestion != "" {
				fmt.Fprintf(w, "  = suggestion: %s\n", f.Suggestion)
			}
		}
		for _, f := range result.Warnings {
			fmt.Fprintf(w, "⚠  Warning: %s%s\n", f.Message, f.suffix())
		}
		for _, f := range result.Infos {
			fmt.Fprintf(w, "ℹ  Info: %s%s\n", f.Message, f.suffix())
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Summary:")
	_, err := fmt.Fprintf(w, "  %d file(s), %d error(s), %d warning(s)\n", len(r.Results), r.Errors, r.Warnings)
	if r.Strict {
		fmt.Fprintln(w, "  Strict mode enabled: warnings are reported as errors")
	}
	return err
}

func (f Finding) suffix() string {
	s := ""
	if f.Line > 0 {
		s += fmt.Sprintf(" (line %d", f.Line)
		if f.Column > 0 {
			s += fmt.Sprintf(", col %d", f.Column)
		}
		s += ")"
	}
	if f.Rule != "" {
		s += fmt.Sprintf(" [%s]", f.Rule)
	} else if f.Type != "" {
		s += fmt.Sprintf(" [%s]", f.Type)
	}
	return s
}

// output returns the command's stdout, or os.Stdout when cmd is nil.
func output(cmd *cobra.Command) io.Writer {
	if cmd == nil {
		return os.Stdout
	}
	return cmd.OutOrStdout()
}
