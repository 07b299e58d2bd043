package schema

import (
	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/digester"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/rules"
)

const listPattern = componentElementPattern + "/list"

var printOrders = rules.NewConstants(component.PrintOrders...)

func addListRules(s scopes) {
	s.components.Register(listPattern,
		digester.ObjectCreate(digester.Constructor(component.NewList)),
		digester.SetProperties("printOrder"),
		rules.Constant("printOrder", printOrders, (*component.List).SetPrintOrder),
		composeComponent(),
	)
	addDatasetRunRules(s.report, listPattern)

	contentsPattern := listPattern + "/listContents"
	s.components.Register(contentsPattern,
		digester.ObjectCreate(digester.Constructor(component.NewListContents)),
		digester.SetProperties(rules.DatasetContextAttribute),
		rules.DatasetContext((*component.ListContents).SetDatasetContext),
		digester.Compose("setContents", (*component.List).SetContents),
	)
}
