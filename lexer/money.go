package lexer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/natcalc/natcalc/token"
	"github.com/natcalc/natcalc/uitoken"
)

// scanMoney recognizes "<symbol><amount>", "<amount><symbol>" and
// "<amount> <CODE>" currency literals against the configured currency
// tables. It is a no-op family when no currencies are configured.
func scanMoney(line string, tabs *Tables, try tryFunc) {
	if len(tabs.CurrenciesBySymbol) == 0 && len(tabs.CurrenciesByCode) == 0 {
		return
	}

	numberBody := `[0-9][0-9.,_]*[kMGTPZY]?`

	symbols := sortedKeys(tabs.CurrenciesBySymbol)
	codes := sortedKeys(tabs.CurrenciesByCode)

	if len(symbols) > 0 {
		alt := alternation(symbols)
		leading := regexp.MustCompile(`(?:` + alt + `)\s?(` + numberBody + `)`)
		for _, loc := range leading.FindAllStringSubmatchIndex(line, -1) {
			sym := symbolAt(line, loc, symbols)
			registerMoney(line, loc, try, tabs.CurrenciesBySymbol[sym].Code,
				tabs.CurrenciesBySymbol[sym].ThousandsSeparator,
				tabs.CurrenciesBySymbol[sym].DecimalSeparator)
		}
		trailing := regexp.MustCompile(`(` + numberBody + `)\s?(?:` + alt + `)`)
		for _, loc := range trailing.FindAllStringSubmatchIndex(line, -1) {
			sym := symbolAt(line, loc, symbols)
			registerMoney(line, loc, try, tabs.CurrenciesBySymbol[sym].Code,
				tabs.CurrenciesBySymbol[sym].ThousandsSeparator,
				tabs.CurrenciesBySymbol[sym].DecimalSeparator)
		}
	}

	if len(codes) > 0 {
		alt := alternation(codes)
		re := regexp.MustCompile(`(?i)(` + numberBody + `)\s+(` + alt + `)\b`)
		for _, loc := range re.FindAllStringSubmatchIndex(line, -1) {
			code := strings.ToUpper(line[loc[4]:loc[5]])
			meta := tabs.CurrenciesByCode[code]
			registerMoney(line, loc, try, meta.Code, meta.ThousandsSeparator, meta.DecimalSeparator)
		}
	}
}

// registerMoney parses the numeric submatch captured at loc[2:4] and
// registers a Money token spanning the whole match loc[0:2].
func registerMoney(line string, loc []int, try tryFunc, code, thousands, decimal string) {
	if len(loc) < 4 || loc[2] < 0 {
		return
	}
	amount := line[loc[2]:loc[3]]
	v, _, ok := parseNumberLiteral(amount, thousands, decimal)
	if !ok {
		return
	}
	try(loc[0], loc[1], token.Money{Value: v, Currency: code}, uitoken.Number)
}

func sortedKeys(m map[string]CurrencyMeta) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

func alternation(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return strings.Join(quoted, "|")
}

// symbolAt returns whichever configured symbol occurs within the
// matched span, needed because the alternation group itself isn't
// captured separately from the amount group above.
func symbolAt(line string, loc []int, symbols []string) string {
	span := line[loc[0]:loc[1]]
	for _, s := range symbols {
		if strings.Contains(span, s) {
			return s
		}
	}
	return ""
}
