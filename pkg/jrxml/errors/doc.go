// Package errors provides structured errors for JRXML component parsing.
//
// Every error carries a type, the source location of the element being
// built, the offending attribute and value when there is one, and an optional
// suggestion. Rule failures abort the parse; registration and validation
// problems are accumulated into an ErrorList.
//
// Example output:
//
//	[unrecognized_constant] unrecognized value "Strech" for attribute splitType
//	  --> report.jrxml:42:9 (jasperReport/detail/band/componentElement/table/detail)
//	  |
//	   41 |   <c:table>
//	-> 42 |     <c:detail splitType="Strech"/>
//	  |
//	  = suggestion: Did you mean 'Stretch'?
package errors
