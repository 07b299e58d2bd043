package schema

import (
	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/digester"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/rules"
)

// Barcode4jTypes are the linear and 2D symbologies rendered through
// barcode4j. They accept a pattern expression.
var Barcode4jTypes = []string{
	"Codabar", "Code128", "EAN128", "DataMatrix", "Code39", "Interleaved2Of5",
	"UPCA", "UPCE", "EAN13", "EAN8", "POSTNET", "PDF417",
}

// FourStateTypes are the postal symbologies driven by a template expression.
var FourStateTypes = []string{"USPSIntelligentMail", "RoyalMailCustomer"}

// QRCodeType is the QR code element name.
const QRCodeType = "QRCode"

var (
	evaluationTimes       = rules.NewConstants(component.EvaluationTimes...)
	orientations          = rules.NewConstants(component.BarcodeOrientations...)
	textPositions         = rules.NewConstants(component.TextPositions...)
	errorCorrectionLevels = rules.NewConstants(component.ErrorCorrectionLevels...)
)

func addBarcodeRules(s scopes) {
	for _, name := range Barcode4jTypes {
		pattern := addBarcodeBase(s.components, name, "evaluationTime", "orientation", "textPosition")
		addOrientationRules(s.components, pattern)
		rules.BindExpression(s.components, pattern, component.ExpressionPattern, (*component.Barcode).SetPatternExpression)
	}

	for _, name := range FourStateTypes {
		pattern := addBarcodeBase(s.components, name, "evaluationTime", "orientation", "textPosition")
		addOrientationRules(s.components, pattern)
		rules.BindExpression(s.components, pattern, component.ExpressionTemplate, (*component.Barcode).SetTemplateExpression)
	}

	pattern := addBarcodeBase(s.components, QRCodeType, "evaluationTime", "errorCorrectionLevel")
	s.components.Register(pattern,
		rules.Constant("errorCorrectionLevel", errorCorrectionLevels, (*component.Barcode).SetErrorCorrectionLevel),
	)
}

// addBarcodeBase registers creation, attribute binding, the evaluation time
// and the code expression of one barcode type and returns its pattern.
func addBarcodeBase(s digester.Scope, name string, ignored ...string) string {
	pattern := componentElementPattern + "/" + name
	s.Register(pattern,
		digester.ObjectCreate(func(*digester.Context) (any, error) {
			return component.NewBarcode(name), nil
		}),
		digester.SetProperties(ignored...),
		rules.Constant("evaluationTime", evaluationTimes, (*component.Barcode).SetEvaluationTime),
		composeComponent(),
	)
	rules.BindExpression(s, pattern, component.ExpressionCode, (*component.Barcode).SetCodeExpression)
	return pattern
}

func addOrientationRules(s digester.Scope, pattern string) {
	s.Register(pattern,
		rules.Constant("orientation", orientations, (*component.Barcode).SetOrientation),
		rules.Constant("textPosition", textPositions, (*component.Barcode).SetTextPosition),
	)
}
