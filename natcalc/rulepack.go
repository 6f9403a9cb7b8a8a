package natcalc

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/natcalc/natcalc/config"
	"github.com/natcalc/natcalc/lexer"
	"github.com/natcalc/natcalc/rules"
)

// RulePack is the YAML form add_rule/add_dynamic_type_item accept for
// callers who maintain rule packs as YAML instead of the engine's JSON
// config document (SPEC_FULL.md §11 gopkg.in/yaml.v3). It mirrors the
// relevant slice of config.Document so LoadRulePack normalizes straight
// into the shapes Build already knows how to compile.
type RulePack struct {
	Languages    map[string]map[string][]string  `yaml:"languages"`
	DynamicTypes map[string][]config.DynamicItem `yaml:"dynamic_types"`
}

// LoadRulePack parses a YAML rule pack document.
func LoadRulePack(data []byte) (RulePack, error) {
	var pack RulePack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return RulePack{}, fmt.Errorf("rule pack: %w", err)
	}
	return pack, nil
}

// ApplyRulePack registers every rule and dynamic-type item in pack
// against e.Cfg. A rule pack's templates must name an existing internal
// rule function (the same dispatch config.Build uses via rules.Library);
// a caller-supplied Fn closure still goes through AddRule directly, since
// YAML has no way to express a function body.
func (e *Engine) ApplyRulePack(pack RulePack) error {
	lib := rules.Library{Cfg: e.Cfg}
	fieldTabs := lexer.Tables{FieldEnabled: true}

	for langName, ruleSet := range pack.Languages {
		lang, ok := e.Cfg.Languages[langName]
		if !ok {
			return fmt.Errorf("rule pack: unknown language %q", langName)
		}
		for name, templateStrings := range ruleSet {
			if lib.Named(name) == nil {
				return fmt.Errorf("rule pack: no internal rule function named %q", name)
			}
			compiled := make([]config.CompiledRule, 0, len(templateStrings))
			for _, src := range templateStrings {
				tokens, _, err := lexer.Tokenize(src, fieldTabs)
				if err != nil {
					continue
				}
				compiled = append(compiled, config.CompiledRule{Source: src, Pattern: tokens})
			}
			if len(compiled) == 0 {
				continue
			}
			if lang.Rules == nil {
				lang.Rules = map[string][]config.CompiledRule{}
			}
			lang.Rules[name] = append(lang.Rules[name], compiled...)
		}
	}

	for name, items := range pack.DynamicTypes {
		if e.Cfg.DynamicTypes == nil {
			e.Cfg.DynamicTypes = map[string][]config.DynamicItem{}
		}
		e.Cfg.DynamicTypes[name] = append(e.Cfg.DynamicTypes[name], items...)
	}
	return nil
}
