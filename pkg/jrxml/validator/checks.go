package validator

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
)

// Rule names.
const (
	RuleEmptyTable             = "empty-table"
	RuleEmptyColumnGroup       = "empty-column-group"
	RuleDuplicateUUID          = "duplicate-uuid"
	RuleMissingUUID            = "missing-uuid"
	RuleGroupMismatch          = "group-mismatch"
	RuleZeroWidth              = "zero-width"
	RuleMissingDatasetRun      = "missing-dataset-run"
	RuleMissingCode            = "missing-code"
	RuleMissingEvaluationGroup = "missing-evaluation-group"
	RuleEmptyExpression        = "empty-expression"
)

// checker collects issues while walking a document. Nodes below the
// component element carry no location of their own, so issues are reported
// at the enclosing component element.
type checker struct {
	component.BaseVisitor

	issues  []Issue
	current *component.ComponentElement
	groups  map[string]bool // group names declared by the current table
	column  int             // leaf column counter in the current table
	seen    map[uuid.UUID]string
}

func newChecker() *checker {
	return &checker{seen: make(map[uuid.UUID]string)}
}

func (c *checker) add(severity Severity, rule, format string, args ...any) {
	issue := Issue{
		Severity: severity,
		Rule:     rule,
		Message:  fmt.Sprintf(format, args...),
	}
	if c.current != nil {
		issue.Location = c.current.Location
	}
	c.issues = append(c.issues, issue)
}

func (c *checker) identity(id uuid.UUID, what string) {
	if id == uuid.Nil {
		return
	}
	if prev, ok := c.seen[id]; ok {
		c.add(SeverityWarning, RuleDuplicateUUID, "%s reuses uuid %s of %s", what, id, prev)
		return
	}
	c.seen[id] = what
}

func (c *checker) VisitComponentElement(ce *component.ComponentElement) error {
	c.current = ce
	if ce.ReportElement != nil {
		c.identity(ce.ReportElement.UUID, "component element "+describe(ce))
	}
	return nil
}

func (c *checker) VisitList(l *component.List) error {
	if l.DatasetRun == nil {
		c.add(SeverityWarning, RuleMissingDatasetRun, "list %s has no datasetRun", describe(c.current))
	}
	return nil
}

func (c *checker) VisitTable(t *component.Table) error {
	c.column = 0
	c.groups = make(map[string]bool)
	for _, g := range t.GroupHeaders {
		c.groups[g.GroupName] = true
	}
	for _, g := range t.GroupFooters {
		c.groups[g.GroupName] = true
	}

	if len(t.Columns) == 0 {
		c.add(SeverityWarning, RuleEmptyTable, "table %s has no columns", describe(c.current))
	}
	if t.DatasetRun == nil {
		c.add(SeverityWarning, RuleMissingDatasetRun, "table %s has no datasetRun", describe(c.current))
	}
	return nil
}

func (c *checker) VisitColumn(col *component.Column) error {
	c.column++
	what := fmt.Sprintf("column %d", c.column)
	c.columnBase(&col.ColumnBase, what)
	if col.Width <= 0 {
		c.add(SeverityWarning, RuleZeroWidth, "%s has no width", what)
	}
	return nil
}

func (c *checker) VisitColumnGroup(g *component.ColumnGroup) error {
	what := fmt.Sprintf("column group before column %d", c.column+1)
	c.columnBase(&g.ColumnBase, what)
	if len(g.Columns) == 0 {
		c.add(SeverityWarning, RuleEmptyColumnGroup, "%s has no columns", what)
	}
	return nil
}

func (c *checker) columnBase(b *component.ColumnBase, what string) {
	if b.UUID == uuid.Nil {
		c.add(SeverityInfo, RuleMissingUUID, "%s has no uuid", what)
	} else {
		c.identity(b.UUID, what)
	}

	for _, cells := range [][]*component.GroupCell{b.GroupHeaders, b.GroupFooters} {
		for _, gc := range cells {
			if !c.groups[gc.GroupName] {
				c.add(SeverityWarning, RuleGroupMismatch,
					"%s has a cell for group %q but the table declares no such group", what, gc.GroupName)
			}
		}
	}
}

func (c *checker) VisitBarcode(b *component.Barcode) error {
	if b.CodeExpression == nil {
		c.add(SeverityWarning, RuleMissingCode, "%s barcode %s has no codeExpression", b.Type, describe(c.current))
	}
	if b.EvaluationTime == component.EvaluationGroup && b.EvaluationGroup == "" {
		c.add(SeverityWarning, RuleMissingEvaluationGroup,
			"%s barcode %s is evaluated at Group time without evaluationGroup", b.Type, describe(c.current))
	}
	return nil
}

func (c *checker) VisitExpression(e *component.Expression) error {
	if strings.TrimSpace(e.Text) == "" {
		c.add(SeverityWarning, RuleEmptyExpression, "empty %s in %s", e.Kind, describe(c.current))
	}
	return nil
}

// describe names a component element by key, falling back to its path.
func describe(ce *component.ComponentElement) string {
	if ce == nil {
		return "<document>"
	}
	if key := ce.Key(); key != "" {
		return fmt.Sprintf("%q", key)
	}
	return "at " + ce.Location.Path
}
