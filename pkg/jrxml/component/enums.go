package component

// PrintOrder controls how a list fills its cells.
type PrintOrder string

const (
	PrintOrderVertical   PrintOrder = "Vertical"
	PrintOrderHorizontal PrintOrder = "Horizontal"
)

// PrintOrders lists every recognized print order in declaration order.
var PrintOrders = []PrintOrder{PrintOrderVertical, PrintOrderHorizontal}

// SplitType controls how a table row behaves at a page break.
type SplitType string

const (
	SplitTypeStretch   SplitType = "Stretch"   // Split only when the row stretches
	SplitTypePrevent   SplitType = "Prevent"   // Move the whole row to the next page
	SplitTypeImmediate SplitType = "Immediate" // Split at any position
)

// SplitTypeImmediateStretchLabel is accepted as a synonym of
// SplitTypeImmediate.
const SplitTypeImmediateStretchLabel = "ImmediateStretch"

// SplitTypes lists every recognized split type.
var SplitTypes = []SplitType{SplitTypeStretch, SplitTypePrevent, SplitTypeImmediate}

// WhenNoDataType selects what a table renders when its dataset is empty.
type WhenNoDataType string

const (
	WhenNoDataBlank               WhenNoDataType = "Blank"
	WhenNoDataAllSectionsNoDetail WhenNoDataType = "AllSectionsNoDetail"
	WhenNoDataNoDataCell          WhenNoDataType = "NoDataCell"
)

// WhenNoDataTypes lists every recognized when-no-data type.
var WhenNoDataTypes = []WhenNoDataType{WhenNoDataBlank, WhenNoDataAllSectionsNoDetail, WhenNoDataNoDataCell}

// EvaluationTime selects the moment a component's expressions are evaluated.
type EvaluationTime string

const (
	EvaluationNow    EvaluationTime = "Now"
	EvaluationReport EvaluationTime = "Report"
	EvaluationPage   EvaluationTime = "Page"
	EvaluationColumn EvaluationTime = "Column"
	EvaluationGroup  EvaluationTime = "Group"
	EvaluationBand   EvaluationTime = "Band"
	EvaluationAuto   EvaluationTime = "Auto"
	EvaluationMaster EvaluationTime = "Master"
)

// EvaluationTimes lists every recognized evaluation time.
var EvaluationTimes = []EvaluationTime{
	EvaluationNow, EvaluationReport, EvaluationPage, EvaluationColumn,
	EvaluationGroup, EvaluationBand, EvaluationAuto, EvaluationMaster,
}

// BarcodeOrientation is the rotation applied to a barcode.
type BarcodeOrientation string

const (
	OrientationUp    BarcodeOrientation = "up"
	OrientationLeft  BarcodeOrientation = "left"
	OrientationDown  BarcodeOrientation = "down"
	OrientationRight BarcodeOrientation = "right"
)

// BarcodeOrientations lists every recognized orientation.
var BarcodeOrientations = []BarcodeOrientation{OrientationUp, OrientationLeft, OrientationDown, OrientationRight}

// TextPosition places the human readable text of a barcode.
type TextPosition string

const (
	TextPositionNone   TextPosition = "none"
	TextPositionBottom TextPosition = "bottom"
	TextPositionTop    TextPosition = "top"
)

// TextPositions lists every recognized text position.
var TextPositions = []TextPosition{TextPositionNone, TextPositionBottom, TextPositionTop}

// ErrorCorrectionLevel is the QR code error correction level.
type ErrorCorrectionLevel string

const (
	ErrorCorrectionL ErrorCorrectionLevel = "L"
	ErrorCorrectionM ErrorCorrectionLevel = "M"
	ErrorCorrectionQ ErrorCorrectionLevel = "Q"
	ErrorCorrectionH ErrorCorrectionLevel = "H"
)

// ErrorCorrectionLevels lists every recognized error correction level.
var ErrorCorrectionLevels = []ErrorCorrectionLevel{ErrorCorrectionL, ErrorCorrectionM, ErrorCorrectionQ, ErrorCorrectionH}
