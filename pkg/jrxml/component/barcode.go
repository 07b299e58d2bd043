package component

// Barcode is a barcode component. Type is the element name the barcode was
// declared with, e.g. "Code128" or "QRCode".
type Barcode struct {
	Type                 string               `jrxml:"-"`
	EvaluationTime       EvaluationTime       `jrxml:"-"`
	EvaluationGroup      string               `jrxml:"evaluationGroup"`
	ModuleWidth          float64              `jrxml:"moduleWidth"`
	BarHeight            float64              `jrxml:"barHeight"`
	Margin               int                  `jrxml:"margin"`
	Orientation          BarcodeOrientation   `jrxml:"-"`
	TextPosition         TextPosition         `jrxml:"-"`
	ErrorCorrectionLevel ErrorCorrectionLevel `jrxml:"-"`

	CodeExpression     *Expression `jrxml:"-"`
	PatternExpression  *Expression `jrxml:"-"`
	TemplateExpression *Expression `jrxml:"-"`
}

// NewBarcode creates a barcode of the given type with the schema defaults.
func NewBarcode(barcodeType string) *Barcode {
	b := &Barcode{
		Type:           barcodeType,
		EvaluationTime: EvaluationNow,
		Orientation:    OrientationUp,
		TextPosition:   TextPositionNone,
	}
	if barcodeType == "QRCode" {
		b.ErrorCorrectionLevel = ErrorCorrectionL
	}
	return b
}

// Kind implements Component.
func (b *Barcode) Kind() Kind { return KindBarcode }

func (b *Barcode) SetEvaluationTime(e EvaluationTime)             { b.EvaluationTime = e }
func (b *Barcode) SetOrientation(o BarcodeOrientation)            { b.Orientation = o }
func (b *Barcode) SetTextPosition(p TextPosition)                 { b.TextPosition = p }
func (b *Barcode) SetErrorCorrectionLevel(l ErrorCorrectionLevel) { b.ErrorCorrectionLevel = l }
func (b *Barcode) SetCodeExpression(e *Expression)                { b.CodeExpression = e }
func (b *Barcode) SetPatternExpression(e *Expression)             { b.PatternExpression = e }
func (b *Barcode) SetTemplateExpression(e *Expression)            { b.TemplateExpression = e }
