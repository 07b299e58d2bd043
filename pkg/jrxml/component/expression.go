package component

// ExpressionKind identifies the slot an expression was declared in.
type ExpressionKind string

const (
	ExpressionPrintWhen ExpressionKind = "printWhenExpression"
	ExpressionCode      ExpressionKind = "codeExpression"
	ExpressionPattern   ExpressionKind = "patternExpression"
	ExpressionTemplate  ExpressionKind = "templateExpression"
	ExpressionValue     ExpressionKind = "valueExpression"
)

// Expression holds the raw source of a report expression. The text is never
// evaluated or parsed at this layer.
type Expression struct {
	Kind ExpressionKind
	Text string
}

// NewExpression creates an empty expression of the given kind.
func NewExpression(kind ExpressionKind) *Expression {
	return &Expression{Kind: kind}
}

// SetText sets the expression source.
func (e *Expression) SetText(text string) {
	e.Text = text
}

// String returns the expression source.
func (e *Expression) String() string {
	if e == nil {
		return ""
	}
	return e.Text
}
