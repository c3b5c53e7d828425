package lox

import "strconv"

// FormatValue renders a Value the way the `print` statement and the REPL
// show it. Numbers with no fractional part drop the decimal point, so the
// double 3 prints as "3" and 3.5 as "3.5"; non-finite doubles render as Go's
// "+Inf"/"NaN" spellings. Strings print raw, without quotes.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTNum:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return v.Data.(string)
	case VTFun:
		f := v.Data.(*Fun)
		if f.NativeName != "" {
			return "<native fn " + f.NativeName + ">"
		}
		return "<fn " + f.Name() + ">"
	case VTClass:
		return v.Data.(*Class).Name
	case VTInstance:
		return v.Data.(*Instance).Class.Name + " instance"
	default:
		return "<unknown>"
	}
}
