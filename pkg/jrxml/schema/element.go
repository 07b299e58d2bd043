package schema

import (
	"fmt"
	"strings"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/digester"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/rules"
)

const componentElementPattern = "*/componentElement"

func addComponentElementRules(s scopes) {
	s.report.Register(componentElementPattern,
		digester.ObjectCreate(func(ctx *digester.Context) (any, error) {
			return &component.ComponentElement{Location: ctx.Location()}, nil
		}),
		digester.Compose("addElement", component.ElementContainer.AddElement),
	)

	reportElementPattern := componentElementPattern + "/reportElement"
	s.report.Register(reportElementPattern,
		digester.ObjectCreate(digester.Constructor(func() *component.ReportElement { return &component.ReportElement{} })),
		digester.SetProperties("uuid"),
		rules.Identity("uuid", (*component.ReportElement).SetUUID),
		digester.Compose("setReportElement", (*component.ComponentElement).SetReportElement),
	)
	rules.BindExpression(s.report, reportElementPattern, component.ExpressionPrintWhen,
		(*component.ReportElement).SetPrintWhenExpression)
}

// composeComponent attaches a component to its componentElement.
func composeComponent() digester.Rule {
	return digester.Compose("setComponent", (*component.ComponentElement).SetComponent)
}

// datasetRunOwner is implemented by components fed by a sub dataset.
type datasetRunOwner interface {
	SetDatasetRun(*component.DatasetRun)
}

func addDatasetRunRules(s digester.Scope, ownerPattern string) {
	s.Register(ownerPattern+"/datasetRun",
		digester.ObjectCreate(digester.Constructor(func() *component.DatasetRun { return &component.DatasetRun{} })),
		digester.SetProperties(),
		digester.Compose("setDatasetRun", datasetRunOwner.SetDatasetRun),
	)
}

// rawElementRule captures an element no pattern claims and attaches it to the
// nearest element container, if the object below it is one.
func rawElementRule() digester.Rule {
	return digester.RuleFuncs{
		OnBegin: func(ctx *digester.Context) error {
			attrs := make(map[string]string, len(ctx.Attrs()))
			for k, v := range ctx.Attrs() {
				attrs[k] = v
			}
			ctx.Push(&component.RawElement{
				Name:       ctx.Name(),
				Namespace:  ctx.Namespace(),
				Attributes: attrs,
				Location:   ctx.Location(),
			})
			return nil
		},
		OnBody: func(ctx *digester.Context, text string) error {
			if raw, ok := digester.CurrentAs[*component.RawElement](ctx); ok {
				raw.Text = strings.TrimSpace(text)
			}
			return nil
		},
		OnEnd: func(ctx *digester.Context) error {
			raw, _ := ctx.Pop().(*component.RawElement)
			if raw == nil {
				return nil
			}
			if container, ok := ctx.Current().(component.ElementContainer); ok {
				container.AddElement(raw)
				return nil
			}
			ctx.Logger().Debug("unmatched element dropped",
				"element", raw.Name,
				"namespace", raw.Namespace,
				"path", ctx.Path(),
				"line", raw.Location.Line,
				"parent", fmt.Sprintf("%T", ctx.Current()))
			return nil
		},
	}
}
