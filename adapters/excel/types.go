package excel

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Built-in number formats that render a date or time. 27-36 and 50-58
// are the East Asian locale date formats.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// isDateStyle reports whether a cell style formats its number as a date
func isDateStyle(style *excelize.Style) bool {
	if style == nil {
		return false
	}
	if builtinDateFormats[style.NumFmt] {
		return true
	}
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	return false
}

// isDateFormatCode inspects a custom number format code. Quoted literals,
// escaped characters and bracketed sections ([Red], [$-409]) are ignored;
// elapsed-time sections such as [h] count as dates.
func isDateFormatCode(code string) bool {
	if strings.Contains(code, "[h]") || strings.Contains(code, "[hh]") ||
		strings.Contains(code, "[m]") || strings.Contains(code, "[s]") {
		return true
	}

	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}

	cleaned := strings.ToLower(b.String())
	if cleaned == "general" || cleaned == "" {
		return false
	}
	return strings.ContainsAny(cleaned, "ymdhs")
}
