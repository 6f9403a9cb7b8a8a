package lexer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/natcalc/natcalc/token"
	"github.com/natcalc/natcalc/uitoken"
)

// scanTimezone recognizes named zones from Tables.TimezoneOffsets and
// the bare "GMT[+-H[:MM]]" family. A GMT literal with no explicit sign
// is treated as +n (spec.md §13 Open Question resolution).
func scanTimezone(line string, tabs *Tables, gmtPattern *regexp.Regexp, try tryFunc) {
	if len(tabs.TimezoneOffsets) > 0 {
		names := make([]string, 0, len(tabs.TimezoneOffsets))
		for name := range tabs.TimezoneOffsets {
			names = append(names, name)
		}
		if re := wordBoundaryAlternation(names); re != nil {
			for _, loc := range re.FindAllStringIndex(line, -1) {
				name := strings.ToUpper(line[loc[0]:loc[1]])
				minutes, ok := tabs.TimezoneOffsets[name]
				if !ok {
					continue
				}
				try(loc[0], loc[1], token.Timezone{Name: name, Minutes: minutes}, uitoken.DateTime)
			}
		}
	}

	if gmtPattern == nil {
		return
	}
	for _, loc := range gmtPattern.FindAllStringSubmatchIndex(line, -1) {
		minutes := 0
		if loc[2] >= 0 {
			spec := strings.ReplaceAll(line[loc[2]:loc[3]], " ", "")
			sign := 1
			if strings.HasPrefix(spec, "-") {
				sign = -1
				spec = spec[1:]
			} else if strings.HasPrefix(spec, "+") {
				spec = spec[1:]
			}
			hh, mm := spec, "0"
			if idx := strings.IndexByte(spec, ':'); idx >= 0 {
				hh, mm = spec[:idx], spec[idx+1:]
			}
			h, _ := strconv.Atoi(hh)
			m, _ := strconv.Atoi(mm)
			minutes = sign * (h*60 + m)
		}
		try(loc[0], loc[1], token.Timezone{Name: "GMT", Minutes: minutes}, uitoken.DateTime)
	}
}
