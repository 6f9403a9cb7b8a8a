// Package natcalc is the root package: the public Engine tying C1–C12
// together per line (spec.md §6 "Public engine API").
//
// Grounded on the teacher's top-level eval.go/result.go/session.go
// (one flat package exposing Eval/Session/Result over the
// impl/ pipeline), rebuilt here around this module's own C1-C12
// component set.
package natcalc

import (
	"github.com/natcalc/natcalc/alias"
	"github.com/natcalc/natcalc/ast"
	"github.com/natcalc/natcalc/config"
	"github.com/natcalc/natcalc/interpreter"
	"github.com/natcalc/natcalc/lexer"
	"github.com/natcalc/natcalc/parser"
	"github.com/natcalc/natcalc/rules"
	"github.com/natcalc/natcalc/session"
	"github.com/natcalc/natcalc/token"
	"github.com/natcalc/natcalc/uitoken"
	"github.com/natcalc/natcalc/units"
	"github.com/natcalc/natcalc/variable"
)

// Engine is the entry point wrapping one compiled Config. Mutators
// (UpdateCurrency, AddRule, ...) mutate Cfg (and, for AddRule/DeleteRule,
// Engine's own custom-rule table) in place and are not safe to call
// concurrently with an in-flight Execute, per spec.md §5.
type Engine struct {
	Cfg *config.Config

	// customRules holds API-registered rules per language, keyed by
	// name, bypassing config.Language.Rules (which only carries
	// compiled templates dispatched by name to the internal rules.Library
	// — a caller-supplied apply function has nowhere to live there).
	customRules map[string]map[string]rules.Rule
}

// New builds an Engine from an already-compiled Config.
func New(cfg *config.Config) *Engine {
	return &Engine{Cfg: cfg}
}

// ExecuteResult is the outcome of running every line of one Execute
// call.
type ExecuteResult struct {
	Status bool
	Lines  []ExecuteLine
}

// ExecuteLine is one line's outcome: a successful Result, or a non-empty
// Err, plus the UI-token spans and surviving token list for editor
// consumption (spec.md §6).
type ExecuteLine struct {
	Result   *ExecuteLineResult
	Err      string
	UITokens []uitoken.Span
	Tokens   token.List
}

// ExecuteLineResult carries one line's formatted output and its Ast.
type ExecuteLineResult struct {
	Output string
	Ast    ast.Node
}

// Execute runs text (one or more lines) against language, threading one
// Session (and its variable store) across every line so assignments
// persist within the call (spec.md §4.2, §4.11 "Variable use").
func (e *Engine) Execute(language, text string) ExecuteResult {
	lang := e.Cfg.Language(language)
	sess := session.New(text)
	tabs := e.Cfg.LexerTables(lang)
	combined, groups := e.buildEngine(lang)
	ip := interpreter.New(e.Cfg, lang, sess.Vars, groups)

	var result ExecuteResult
	result.Status = true
	for {
		line, ok := sess.NextLine()
		if !ok {
			break
		}
		el := e.executeLine(lang, tabs, combined, ip, sess, line)
		if el.Err != "" {
			result.Status = false
		}
		result.Lines = append(result.Lines, el)
	}
	return result
}

// buildEngine assembles one language's internal (C8) and dynamic-type
// (C9) rules plus any API-registered custom rules into a single
// rules.Engine, since running the combined list to fixpoint once already
// interleaves C8 and C9 naturally (the fixpoint loop restarts from the
// top of the list after every rewrite).
func (e *Engine) buildEngine(lang *config.Language) (rules.Engine, map[string]units.Group) {
	internal := rules.Build(e.Cfg, lang)
	dynamic, groups := units.Build(e.Cfg)
	all := append(append([]rules.Rule{}, internal.Rules...), dynamic.Rules...)
	for _, custom := range e.customRules[lang.Name] {
		all = append(all, custom)
	}
	return rules.Engine{Rules: all}, groups
}

func (e *Engine) executeLine(lang *config.Language, tabs lexer.Tables, eng rules.Engine, ip *interpreter.Interpreter, sess *session.Session, line string) ExecuteLine {
	tokens, ui, err := lexer.Tokenize(line, tabs)
	if err != nil {
		return ExecuteLine{Err: err.Error()}
	}
	lexer.TagMonths(tokens, lang.LongMonths, lang.ShortMonths)

	resolver := alias.Resolver{Global: e.Cfg.Alias, Language: lang.Alias, Tables: tabs}
	resolver.Apply(tokens)

	tokens = sess.Vars.Rewrite(tokens, 0)
	tokens, _ = eng.RunToFixpoint(tokens)

	node, perr := parser.Parse(tokens, sess.LineNumber(), sess.Vars)
	if perr != nil {
		return ExecuteLine{Err: perr.Error(), UITokens: ui.Spans(), Tokens: tokens}
	}

	v, ierr := ip.Eval(node)
	if ierr != nil {
		return ExecuteLine{Err: ierr.Error(), UITokens: ui.Spans(), Tokens: tokens}
	}

	output := v.Print(e.Cfg, lang)
	return ExecuteLine{
		Result:   &ExecuteLineResult{Output: output, Ast: node},
		UITokens: ui.Spans(),
		Tokens:   tokens,
	}
}

// BasicExecute parses and evaluates a single line against cfg, returning
// a bare numeric result without threading a Session or UI-token
// collection at all (spec.md §6 basic_execute; recovered from
// original_source/libsmartcalc/src/app.rs's equivalent convenience
// function, see SPEC_FULL.md §12).
func BasicExecute(cfg *config.Config, language, line string) (float64, error) {
	lang := cfg.Language(language)
	tabs := cfg.LexerTables(lang)
	ruleEngine := rules.Build(cfg, lang)
	unitEngine, groups := units.Build(cfg)
	combined := rules.Engine{Rules: append(append([]rules.Rule{}, ruleEngine.Rules...), unitEngine.Rules...)}

	tokens, _, err := lexer.Tokenize(line, tabs)
	if err != nil {
		return 0, err
	}
	lexer.TagMonths(tokens, lang.LongMonths, lang.ShortMonths)

	resolver := alias.Resolver{Global: cfg.Alias, Language: lang.Alias, Tables: tabs}
	resolver.Apply(tokens)

	vars := &variable.Store{}
	tokens = vars.Rewrite(tokens, 0)
	tokens, _ = combined.RunToFixpoint(tokens)

	node, perr := parser.Parse(tokens, 1, vars)
	if perr != nil {
		return 0, perr
	}
	ip := interpreter.New(cfg, lang, vars, groups)
	v, ierr := ip.Eval(node)
	if ierr != nil {
		return 0, ierr
	}
	return v.Number(), nil
}

// UpdateCurrency sets (or adds) a currency rate, keyed to the same
// reference currency every other rate is expressed against. Reports
// whether the config was mutated.
func (e *Engine) UpdateCurrency(code string, rate float64) bool {
	if e.Cfg.CurrencyRates == nil {
		e.Cfg.CurrencyRates = map[string]float64{}
	}
	e.Cfg.CurrencyRates[code] = rate
	return true
}

// SetDecimalSeparator overrides a language's decimal separator.
func (e *Engine) SetDecimalSeparator(language, sep string) bool {
	lang, ok := e.Cfg.Languages[language]
	if !ok {
		return false
	}
	lang.Format.DecimalSeparator = sep
	return true
}

// SetThousandSeparator overrides a language's thousands separator.
func (e *Engine) SetThousandSeparator(language, sep string) bool {
	lang, ok := e.Cfg.Languages[language]
	if !ok {
		return false
	}
	lang.Format.ThousandsSeparator = sep
	return true
}

// SetTimezone adds or overrides a named timezone's minute offset.
func (e *Engine) SetTimezone(name string, minutes int) error {
	if e.Cfg.Timezones == nil {
		e.Cfg.Timezones = map[string]int{}
	}
	e.Cfg.Timezones[name] = minutes
	return nil
}

// AddRule registers a user-supplied rule for language, parsing each
// template string with the lexer's field holes enabled before handing it
// to the rule engine (spec.md §6 add_rule).
func (e *Engine) AddRule(language string, templateStrings []string, name string, apply rules.Fn) bool {
	lang, ok := e.Cfg.Languages[language]
	if !ok {
		return false
	}
	fieldTabs := lexer.Tables{FieldEnabled: true}
	templates := make([]token.List, 0, len(templateStrings))
	for _, src := range templateStrings {
		tokens, _, err := lexer.Tokenize(src, fieldTabs)
		if err != nil {
			continue
		}
		templates = append(templates, tokens)
	}
	if len(templates) == 0 {
		return false
	}
	if e.customRules == nil {
		e.customRules = map[string]map[string]rules.Rule{}
	}
	if e.customRules[lang.Name] == nil {
		e.customRules[lang.Name] = map[string]rules.Rule{}
	}
	e.customRules[lang.Name][name] = rules.Rule{Name: name, Templates: templates, Apply: apply}
	return true
}

// DeleteRule removes a named rule from language: first from the
// API-registered custom set, falling back to the language's compiled
// internal rule templates.
func (e *Engine) DeleteRule(language, name string) bool {
	if byName, ok := e.customRules[language]; ok {
		if _, ok := byName[name]; ok {
			delete(byName, name)
			return true
		}
	}
	lang, ok := e.Cfg.Languages[language]
	if !ok {
		return false
	}
	if _, ok := lang.Rules[name]; !ok {
		return false
	}
	delete(lang.Rules, name)
	return true
}

// AddDynamicType registers an empty named dynamic-type group, ready for
// AddDynamicTypeItem calls (spec.md §6 add_dynamic_type).
func (e *Engine) AddDynamicType(name string) bool {
	if e.Cfg.DynamicTypes == nil {
		e.Cfg.DynamicTypes = map[string][]config.DynamicItem{}
	}
	if _, exists := e.Cfg.DynamicTypes[name]; exists {
		return false
	}
	e.Cfg.DynamicTypes[name] = nil
	return true
}

// AddDynamicTypeItem appends (or, if index is within range, replaces) a
// unit item within group name (spec.md §6 add_dynamic_type_item).
func (e *Engine) AddDynamicTypeItem(name string, index int, format string, names []string, multiplier float64) bool {
	items, ok := e.Cfg.DynamicTypes[name]
	if !ok {
		return false
	}
	item := config.DynamicItem{Names: names, Format: format, Multiplier: multiplier}
	switch {
	case index < 0:
		return false
	case index == len(items):
		e.Cfg.DynamicTypes[name] = append(items, item)
	case index < len(items):
		items[index] = item
	default:
		return false
	}
	return true
}
