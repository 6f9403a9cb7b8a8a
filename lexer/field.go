package lexer

import (
	"regexp"
	"strings"

	"github.com/natcalc/natcalc/token"
	"github.com/natcalc/natcalc/uitoken"
)

var fieldKindNames = map[string]token.FieldKind{
	"TEXT":        token.FieldText,
	"DATE":        token.FieldDate,
	"TIME":        token.FieldTime,
	"DATETIME":    token.FieldDateTime,
	"NUMBER":      token.FieldNumber,
	"MONEY":       token.FieldMoney,
	"PERCENT":     token.FieldPercent,
	"MONTH":       token.FieldMonth,
	"MEMORY":      token.FieldMemory,
	"DURATION":    token.FieldDuration,
	"TIMEZONE":    token.FieldTimezone,
	"DYNAMICTYPE": token.FieldDynamicType,
	"GROUP":       token.FieldGroup,
	"TYPEGROUP":   token.FieldTypeGroup,
}

// scanFields recognizes "{TYPE:name[:literal]}" template holes. Only
// meaningful when tokenizing rule-template text (Tables.FieldEnabled),
// never produced for ordinary input lines.
func scanFields(line string, pattern *regexp.Regexp, try tryFunc) {
	if pattern == nil {
		return
	}
	for _, loc := range pattern.FindAllStringIndex(line, -1) {
		body := line[loc[0]+1 : loc[1]-1] // strip braces
		parts := strings.SplitN(body, ":", 3)
		if len(parts) < 2 {
			continue
		}
		kind, ok := fieldKindNames[strings.ToUpper(parts[0])]
		if !ok {
			continue
		}
		f := token.Field{FieldKind: kind, Name: parts[1]}
		if len(parts) == 3 {
			if kind == token.FieldGroup || kind == token.FieldTypeGroup {
				f.Members = strings.Split(parts[2], ",")
			} else {
				f.Literal = parts[2]
			}
		}
		try(loc[0], loc[1], f, uitoken.Text)
	}
}
