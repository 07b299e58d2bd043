package schema

import (
	"github.com/google/uuid"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/digester"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/rules"
)

const (
	tablePattern       = componentElementPattern + "/table"
	columnPattern      = "*/column"
	columnGroupPattern = "*/columnGroup"
)

var whenNoDataTypes = rules.NewConstants(component.WhenNoDataTypes...)

func addTableRules(s scopes) {
	s.components.Register(tablePattern,
		digester.ObjectCreate(digester.Constructor(component.NewTable)),
		rules.Constant("whenNoDataType", whenNoDataTypes, (*component.Table).SetWhenNoDataType),
		composeComponent(),
	)
	addDatasetRunRules(s.report, tablePattern)

	addColumnRules(s, columnPattern, digester.Constructor(component.NewColumn), true)
	addColumnRules(s, columnGroupPattern, digester.Constructor(component.NewColumnGroup), false)

	addRowRules(s, tablePattern+"/tableHeader", "setTableHeader", (*component.Table).SetTableHeader)
	addRowRules(s, tablePattern+"/tableFooter", "setTableFooter", (*component.Table).SetTableFooter)
	addGroupRowRules(s, tablePattern+"/groupHeader", "addGroupHeader", (*component.Table).AddGroupHeader)
	addGroupRowRules(s, tablePattern+"/groupFooter", "addGroupFooter", (*component.Table).AddGroupFooter)
	addRowRules(s, tablePattern+"/columnHeader", "setColumnHeader", (*component.Table).SetColumnHeader)
	addRowRules(s, tablePattern+"/columnFooter", "setColumnFooter", (*component.Table).SetColumnFooter)
	addRowRules(s, tablePattern+"/detail", "setDetail", (*component.Table).SetDetail)

	addBaseCellRules(s.components, tablePattern+"/noData", "setNoData", (*component.Table).SetNoData)
}

// addColumnRules registers the rules shared by columns and column groups at
// pattern. Only leaf columns get a detail cell.
func addColumnRules(s scopes, pattern string, factory digester.Factory, detail bool) {
	s.components.Register(pattern,
		digester.ObjectCreate(factory),
		digester.Compose("addColumn", component.ColumnContainer.AddColumn),
		digester.SetProperties("uuid"),
		rules.Identity("uuid", func(n component.TableNode, id uuid.UUID) { n.Base().SetUUID(id) }),
	)
	rules.BindExpression(s.report, pattern, component.ExpressionPrintWhen,
		func(n component.TableNode, e *component.Expression) { n.Base().SetPrintWhenExpression(e) })

	addCellRules(s.components, pattern+"/tableHeader", "setTableHeader", component.CellOwner.SetTableHeader)
	addCellRules(s.components, pattern+"/tableFooter", "setTableFooter", component.CellOwner.SetTableFooter)
	addGroupCellRules(s.components, pattern+"/groupHeader", "addGroupHeader", component.CellOwner.AddGroupHeader)
	addGroupCellRules(s.components, pattern+"/groupFooter", "addGroupFooter", component.CellOwner.AddGroupFooter)
	addCellRules(s.components, pattern+"/columnHeader", "setColumnHeader", component.CellOwner.SetColumnHeader)
	addCellRules(s.components, pattern+"/columnFooter", "setColumnFooter", component.CellOwner.SetColumnFooter)
	if detail {
		addCellRules(s.components, pattern+"/detailCell", "setDetailCell", (*component.Column).SetDetailCell)
	}
}
