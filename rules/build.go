package rules

import (
	"log/slog"
	"sort"

	"github.com/natcalc/natcalc/config"
	"github.com/natcalc/natcalc/token"
)

// Build assembles the rule Engine for one language: every compiled
// template from cfg.Language(lang).Rules bound to its named function
// from Library. A rule name with no matching library function is
// skipped and logged, mirroring spec.md §4.1's "individual ... failures
// are logged and skipped rather than fatal".
//
// lang.Rules is a map, so its iteration order is randomized per process;
// ruleNames below fixes a deterministic scan order instead (spec.md
// §4.8's rule-priority scan must be reproducible run-to-run).
func Build(cfg *config.Config, lang *config.Language) Engine {
	lib := Library{Cfg: cfg}
	eng := Engine{}
	for _, name := range ruleNames(lang.Rules) {
		compiled := lang.Rules[name]
		fn := lib.Named(name)
		if fn == nil {
			slog.Warn("rules: no internal function for rule name, skipping", "rule", name)
			continue
		}
		templates := make([]token.List, 0, len(compiled))
		for _, c := range compiled {
			templates = append(templates, c.Pattern)
		}
		eng.Rules = append(eng.Rules, Rule{Name: name, Templates: templates, Apply: fn})
	}
	return eng
}

// ruleNames orders a language's rule names longest-template-first (the
// most specific pattern a name owns, measured in slot count), breaking
// ties alphabetically. A longer, more specific template (e.g.
// numeric_date's 5-slot "M / D / Y") must get a scan turn before a
// shorter generic one sharing its operator (division_cleanup's 3-slot
// "N / N") can consume part of it first.
func ruleNames(rules map[string][]config.CompiledRule) []string {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	maxLen := func(name string) int {
		longest := 0
		for _, c := range rules[name] {
			if len(c.Pattern) > longest {
				longest = len(c.Pattern)
			}
		}
		return longest
	}
	sort.Slice(names, func(i, j int) bool {
		li, lj := maxLen(names[i]), maxLen(names[j])
		if li != lj {
			return li > lj
		}
		return names[i] < names[j]
	})
	return names
}
