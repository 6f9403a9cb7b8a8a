package lexer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/natcalc/natcalc/token"
	"github.com/natcalc/natcalc/uitoken"
)

// scanTime recognizes "HH:MM[:SS][ am|pm]" time-of-day literals. The
// instant is anchored to 1 January of year 0; only the hour/minute/second
// components are meaningful (spec.md §3 Time).
func scanTime(line string, pattern *regexp.Regexp, try tryFunc) {
	if pattern == nil {
		return
	}
	for _, loc := range pattern.FindAllStringSubmatchIndex(line, -1) {
		hour, _ := strconv.Atoi(line[loc[2]:loc[3]])
		min, _ := strconv.Atoi(line[loc[4]:loc[5]])
		sec := 0
		if loc[6] >= 0 {
			sec, _ = strconv.Atoi(line[loc[6]:loc[7]])
		}
		if loc[8] >= 0 {
			ampm := strings.ToLower(line[loc[8]:loc[9]])
			switch {
			case ampm == "pm" && hour < 12:
				hour += 12
			case ampm == "am" && hour == 12:
				hour = 0
			}
		}
		if hour > 23 {
			continue
		}
		instant := time.Date(0, 1, 1, hour, min, sec, 0, time.UTC)
		try(loc[0], loc[1], token.Time{Instant: instant}, uitoken.DateTime)
	}
}
