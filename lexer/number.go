package lexer

import (
	"strconv"
	"strings"

	"github.com/natcalc/natcalc/token"
	"github.com/natcalc/natcalc/uitoken"
)

var magnitudeSuffix = map[byte]float64{
	'k': 1e3, 'K': 1e3,
	'M': 1e6,
	'G': 1e9,
	'T': 1e12,
	'P': 1e15,
	'Z': 1e21,
	'Y': 1e24,
}

// parseNumberLiteral turns a matched number-family substring into a
// float64 plus the NumberKind it was written in, honoring the
// configured thousands/decimal separators for plain decimal literals.
func parseNumberLiteral(raw, thousands, decimal string) (float64, token.NumberKind, bool) {
	switch {
	case strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X"):
		n, err := strconv.ParseInt(raw[2:], 16, 64)
		return float64(n), token.NumberHex, err == nil
	case strings.HasPrefix(raw, "0o") || strings.HasPrefix(raw, "0O"):
		n, err := strconv.ParseInt(raw[2:], 8, 64)
		return float64(n), token.NumberOctal, err == nil
	case strings.HasPrefix(raw, "0b") || strings.HasPrefix(raw, "0B"):
		n, err := strconv.ParseInt(raw[2:], 2, 64)
		return float64(n), token.NumberBinary, err == nil
	}

	body := raw
	mult := 1.0
	if len(body) > 0 {
		if m, ok := magnitudeSuffix[body[len(body)-1]]; ok {
			mult = m
			body = body[:len(body)-1]
		}
	}

	if thousands == "" {
		thousands = "."
	}
	if decimal == "" {
		decimal = ","
	}
	body = strings.ReplaceAll(body, thousands, "")
	body = strings.ReplaceAll(body, "_", "")
	if decimal != "." {
		body = strings.ReplaceAll(body, decimal, ".")
	}

	v, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return 0, token.NumberDecimal, false
	}
	return v * mult, token.NumberDecimal, true
}

// scanNumberMatch registers a plain Number token for one number-family
// regex match.
func scanNumberMatch(matched string, start, end int, thousands, decimal string, try tryFunc) {
	v, kind, ok := parseNumberLiteral(matched, thousands, decimal)
	if !ok {
		return
	}
	try(start, end, token.Number{Value: v, NumberKind: kind}, uitoken.Number)
}
