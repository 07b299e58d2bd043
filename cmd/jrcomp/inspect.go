package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bjorndarri/jasperreports/pkg/cli"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/parser"
)

var inspectFlags struct {
	file   string
	format string
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the component model of a template",
	Long: `Parse a JRXML template and print its components.

Tables are printed with their column tree, row sections and cell heights;
lists with their print order and contents; barcodes with their type and
code expression.

Examples:
  jrcomp inspect --file orders.jrxml
  jrcomp inspect --file orders.jrxml --format yaml`,
	RunE: inspectTemplate,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectFlags.file, "file", "f", "", "template file to inspect")
	inspectCmd.Flags().StringVar(&inspectFlags.format, "format", "text", "output format: text, json, yaml")
}

// TemplateSummary describes the components of one template.
type TemplateSummary struct {
	File       string             `json:"file" yaml:"file"`
	Components []ComponentSummary `json:"components" yaml:"components"`
}

// ComponentSummary describes one componentElement.
type ComponentSummary struct {
	Kind    string          `json:"kind" yaml:"kind"`
	Key     string          `json:"key,omitempty" yaml:"key,omitempty"`
	Line    int             `json:"line" yaml:"line"`
	Bounds  [4]int          `json:"bounds" yaml:"bounds"` // x, y, width, height
	Table   *TableSummary   `json:"table,omitempty" yaml:"table,omitempty"`
	List    *ListSummary    `json:"list,omitempty" yaml:"list,omitempty"`
	Barcode *BarcodeSummary `json:"barcode,omitempty" yaml:"barcode,omitempty"`
}

// TableSummary describes a table.
type TableSummary struct {
	WhenNoDataType string          `json:"when_no_data_type" yaml:"when_no_data_type"`
	Dataset        string          `json:"dataset,omitempty" yaml:"dataset,omitempty"`
	Rows           []string        `json:"rows,omitempty" yaml:"rows,omitempty"`
	Columns        []ColumnSummary `json:"columns" yaml:"columns"`
}

// ColumnSummary describes a column or a column group.
type ColumnSummary struct {
	UUID    string          `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Width   int             `json:"width" yaml:"width"`
	Group   bool            `json:"group,omitempty" yaml:"group,omitempty"`
	Cells   []string        `json:"cells,omitempty" yaml:"cells,omitempty"`
	Columns []ColumnSummary `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// ListSummary describes a list.
type ListSummary struct {
	PrintOrder  string `json:"print_order" yaml:"print_order"`
	IgnoreWidth bool   `json:"ignore_width" yaml:"ignore_width"`
	Dataset     string `json:"dataset,omitempty" yaml:"dataset,omitempty"`
	Height      int    `json:"height" yaml:"height"`
	Width       int    `json:"width,omitempty" yaml:"width,omitempty"`
	Elements    int    `json:"elements" yaml:"elements"`
}

// BarcodeSummary describes a barcode.
type BarcodeSummary struct {
	Type           string `json:"type" yaml:"type"`
	EvaluationTime string `json:"evaluation_time" yaml:"evaluation_time"`
	Code           string `json:"code,omitempty" yaml:"code,omitempty"`
}

func inspectTemplate(cmd *cobra.Command, args []string) error {
	if inspectFlags.file == "" {
		return cli.NewConfigError("file", "--file must be specified")
	}
	format, err := cli.ParseFormat(inspectFlags.format, cli.FormatText, cli.FormatJSON, cli.FormatYAML)
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

	p := parser.FromConfig(&cfg.Parser).WithLogger(logger.Slog())
	doc, err := p.Parse(context.Background(), inspectFlags.file)
	if err != nil {
		return cli.NewCommandError("inspect", err)
	}

	return cli.NewFormatter(format).FormatTo(output(cmd), summarize(inspectFlags.file, doc))
}

func summarize(file string, doc *component.Document) TemplateSummary {
	s := TemplateSummary{File: file, Components: make([]ComponentSummary, 0)}
	for _, ce := range doc.Components() {
		cs := ComponentSummary{Line: ce.Location.Line}
		if re := ce.ReportElement; re != nil {
			cs.Key = re.Key
			cs.Bounds = [4]int{re.X, re.Y, re.Width, re.Height}
		}

		switch c := ce.Component.(type) {
		case *component.Table:
			cs.Kind = string(c.Kind())
			cs.Table = summarizeTable(c)
		case *component.List:
			cs.Kind = string(c.Kind())
			cs.List = summarizeList(c)
		case *component.Barcode:
			cs.Kind = string(c.Kind())
			cs.Barcode = &BarcodeSummary{
				Type:           c.Type,
				EvaluationTime: string(c.EvaluationTime),
				Code:           expressionText(c.CodeExpression),
			}
		default:
			cs.Kind = "unknown"
		}
		s.Components = append(s.Components, cs)
	}
	return s
}

func summarizeTable(t *component.Table) *TableSummary {
	ts := &TableSummary{
		WhenNoDataType: string(t.WhenNoDataType),
		Dataset:        t.DatasetContext(),
		Columns:        summarizeColumns(t.Columns),
	}
	rows := []struct {
		name string
		row  *component.Row
	}{
		{"tableHeader", t.TableHeader},
		{"columnHeader", t.ColumnHeader},
		{"detail", t.Detail},
		{"columnFooter", t.ColumnFooter},
		{"tableFooter", t.TableFooter},
	}
	for _, r := range rows {
		if r.row != nil {
			ts.Rows = append(ts.Rows, fmt.Sprintf("%s(%s)", r.name, r.row.SplitType))
		}
	}
	for _, g := range t.GroupHeaders {
		ts.Rows = append(ts.Rows, fmt.Sprintf("groupHeader[%s]", g.GroupName))
	}
	for _, g := range t.GroupFooters {
		ts.Rows = append(ts.Rows, fmt.Sprintf("groupFooter[%s]", g.GroupName))
	}
	return ts
}

func summarizeColumns(nodes []component.TableNode) []ColumnSummary {
	out := make([]ColumnSummary, 0, len(nodes))
	for _, n := range nodes {
		b := n.Base()
		cs := ColumnSummary{Width: b.Width}
		if b.UUID != uuid.Nil {
			cs.UUID = b.UUID.String()
		}
		cells := []struct {
			name string
			cell *component.Cell
		}{
			{"tableHeader", b.TableHeader},
			{"columnHeader", b.ColumnHeader},
			{"columnFooter", b.ColumnFooter},
			{"tableFooter", b.TableFooter},
		}
		for _, c := range cells {
			if c.cell != nil {
				cs.Cells = append(cs.Cells, fmt.Sprintf("%s(h=%d)", c.name, c.cell.Height))
			}
		}

		switch col := n.(type) {
		case *component.Column:
			if col.DetailCell != nil {
				cs.Cells = append(cs.Cells, fmt.Sprintf("detail(h=%d)", col.DetailCell.Height))
			}
		case *component.ColumnGroup:
			cs.Group = true
			cs.Columns = summarizeColumns(col.Columns)
		}
		out = append(out, cs)
	}
	return out
}

func summarizeList(l *component.List) *ListSummary {
	ls := &ListSummary{
		PrintOrder:  string(l.PrintOrder),
		IgnoreWidth: l.IgnoreWidth,
	}
	if l.DatasetRun != nil {
		ls.Dataset = l.DatasetRun.SubDataset
	}
	if l.Contents != nil {
		ls.Height = l.Contents.Height
		ls.Width = l.Contents.Width
		ls.Elements = len(l.Contents.Elements)
	}
	return ls
}

func expressionText(e *component.Expression) string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.Text)
}

// WriteText prints the summary as an indented tree.
func (s TemplateSummary) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "%s: %d component(s)\n", s.File, len(s.Components))
	for _, c := range s.Components {
		label := c.Kind
		if c.Key != "" {
			label += " " + c.Key
		}
		fmt.Fprintf(w, "- %s (line %d, %dx%d at %d,%d)\n", label, c.Line, c.Bounds[2], c.Bounds[3], c.Bounds[0], c.Bounds[1])

		switch {
		case c.Table != nil:
			fmt.Fprintf(w, "    whenNoDataType: %s\n", c.Table.WhenNoDataType)
			if c.Table.Dataset != "" {
				fmt.Fprintf(w, "    dataset: %s\n", c.Table.Dataset)
			}
			if len(c.Table.Rows) > 0 {
				fmt.Fprintf(w, "    rows: %s\n", strings.Join(c.Table.Rows, ", "))
			}
			writeColumns(w, c.Table.Columns, "    ")
		case c.List != nil:
			fmt.Fprintf(w, "    printOrder: %s, ignoreWidth: %t\n", c.List.PrintOrder, c.List.IgnoreWidth)
			if c.List.Dataset != "" {
				fmt.Fprintf(w, "    dataset: %s\n", c.List.Dataset)
			}
			fmt.Fprintf(w, "    contents: height %d, %d element(s)\n", c.List.Height, c.List.Elements)
		case c.Barcode != nil:
			fmt.Fprintf(w, "    type: %s, evaluationTime: %s\n", c.Barcode.Type, c.Barcode.EvaluationTime)
			if c.Barcode.Code != "" {
				fmt.Fprintf(w, "    code: %s\n", c.Barcode.Code)
			}
		}
	}
	return nil
}

func writeColumns(w io.Writer, cols []ColumnSummary, indent string) {
	for _, c := range cols {
		kind := "column"
		if c.Group {
			kind = "columnGroup"
		}
		fmt.Fprintf(w, "%s%s width=%d", indent, kind, c.Width)
		if len(c.Cells) > 0 {
			fmt.Fprintf(w, " [%s]", strings.Join(c.Cells, ", "))
		}
		fmt.Fprintln(w)
		writeColumns(w, c.Columns, indent+"  ")
	}
}
