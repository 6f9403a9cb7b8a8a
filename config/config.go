package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/natcalc/natcalc/lexer"
	"github.com/natcalc/natcalc/token"
)

//go:embed default.json
var defaultJSON string

// CompiledRule is one rule-template string, pre-tokenized at config-build
// time into its Field-hole pattern (spec.md §4.1 "rule templates are
// compiled once, at config-build time, through the same tokenizer used
// for input lines").
type CompiledRule struct {
	Source  string
	Pattern token.List
}

// Language is the compiled, ready-to-use form of one LanguageBlock: every
// regex and rule template has already been built.
type Language struct {
	Name         string
	LongMonths   map[string]int
	ShortMonths  map[string]int
	WordGroup    map[string][]string
	ConstantPair map[string]string
	Alias        map[string]string
	// Rules maps a rule/function name (e.g. "percent_calculator") to the
	// compiled templates that invoke it.
	Rules  map[string][]CompiledRule
	Format FormatSpec
}

// Config is the fully compiled, immutable configuration bundle consulted
// by every later stage of the pipeline (spec.md C1).
type Config struct {
	DefaultLanguage string
	Alias           map[string]string // global alias map, spec.md §4.1
	Currencies      map[string]CurrencyInfo
	CurrenciesByCode map[string]CurrencyInfo
	CurrencyAlias   map[string]string
	CurrencyRates   map[string]float64
	Timezones       map[string]int
	TypeGroup       map[string][]string
	DynamicTypes    map[string][]DynamicItem
	Languages       map[string]*Language
}

// Language looks up a compiled language block, falling back to
// DefaultLanguage when name is empty or unknown.
func (c *Config) Language(name string) *Language {
	if l, ok := c.Languages[name]; ok {
		return l
	}
	return c.Languages[c.DefaultLanguage]
}

// LexerTables builds the lexer.Tables a session should tokenize input
// lines with, for the given language and currently-configured currency
// set (spec.md §4.4: the regex tokenizer is parameterized per call, not
// globally mutable).
func (c *Config) LexerTables(lang *Language) lexer.Tables {
	bySymbol := make(map[string]lexer.CurrencyMeta, len(c.Currencies))
	for symbol, ci := range c.Currencies {
		bySymbol[symbol] = lexer.CurrencyMeta{
			Code: ci.Code, Symbol: ci.Symbol,
			ThousandsSeparator: ci.ThousandsSeparator, DecimalSeparator: ci.DecimalSeparator,
			DecimalDigits: ci.DecimalDigits, SymbolOnLeft: ci.SymbolOnLeft,
			SpaceBetweenAmountAndSymbol: ci.SpaceBetweenAmountAndSymbol,
		}
	}
	byCode := make(map[string]lexer.CurrencyMeta, len(c.CurrenciesByCode))
	for code, ci := range c.CurrenciesByCode {
		byCode[code] = lexer.CurrencyMeta{
			Code: ci.Code, Symbol: ci.Symbol,
			ThousandsSeparator: ci.ThousandsSeparator, DecimalSeparator: ci.DecimalSeparator,
			DecimalDigits: ci.DecimalDigits, SymbolOnLeft: ci.SymbolOnLeft,
			SpaceBetweenAmountAndSymbol: ci.SpaceBetweenAmountAndSymbol,
		}
	}
	tz := make(map[string]int, len(c.Timezones))
	for name, minutes := range c.Timezones {
		tz[strings.ToUpper(name)] = minutes
	}
	var long, short map[string]int
	var decSep, thouSep string
	if lang != nil {
		long, short = lang.LongMonths, lang.ShortMonths
		decSep, thouSep = lang.Format.DecimalSeparator, lang.Format.ThousandsSeparator
	}
	return lexer.Tables{
		CurrenciesBySymbol: bySymbol,
		CurrenciesByCode:   byCode,
		TimezoneOffsets:    tz,
		LongMonths:         long,
		ShortMonths:        short,
		ThousandsSeparator: thouSep,
		DecimalSeparator:   decSep,
	}
}

// Build compiles a raw Document into a ready-to-use Config: currency
// lookups indexed both ways, and every language's rule templates
// tokenized once up front through package lexer (grounded on
// original_source/libsmartcalc/src/config.rs's eager-compile-at-load
// approach). logger receives per-template compile warnings; a nil
// logger defaults to slog.Default() (spec.md §7: "individual regex
// compile failures are logged and skipped rather than fatal").
func Build(doc *Document, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := &Config{
		DefaultLanguage: doc.DefaultLanguage,
		Alias:           doc.Alias,
		Currencies:      doc.Currencies,
		CurrenciesByCode: make(map[string]CurrencyInfo, len(doc.Currencies)),
		CurrencyAlias:   doc.CurrencyAlias,
		CurrencyRates:   doc.CurrencyRates,
		Timezones:       doc.Timezones,
		TypeGroup:       doc.TypeGroup,
		DynamicTypes:    doc.DynamicTypes,
		Languages:       make(map[string]*Language, len(doc.Languages)),
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = "en"
	}
	for _, ci := range doc.Currencies {
		cfg.CurrenciesByCode[strings.ToUpper(ci.Code)] = ci
	}

	fieldTabs := lexer.Tables{FieldEnabled: true}
	for name, block := range doc.Languages {
		lang := &Language{
			Name:         name,
			LongMonths:   block.LongMonths,
			ShortMonths:  block.ShortMonths,
			WordGroup:    block.WordGroup,
			ConstantPair: block.ConstantPair,
			Alias:        block.Alias,
			Rules:        make(map[string][]CompiledRule, len(block.Rules)),
			Format:       block.Format,
		}
		for funcName, spec := range block.Rules {
			compiled := make([]CompiledRule, 0, len(spec.Rules))
			for _, src := range spec.Rules {
				tokens, _, err := lexer.Tokenize(src, fieldTabs)
				if err != nil {
					logger.Warn("config: skipping rule template that failed to tokenize",
						"language", name, "rule", funcName, "template", src, "error", err)
					continue
				}
				compiled = append(compiled, CompiledRule{Source: src, Pattern: tokens})
			}
			lang.Rules[funcName] = compiled
		}
		cfg.Languages[name] = lang
	}

	if _, ok := cfg.Languages[cfg.DefaultLanguage]; !ok {
		return nil, fmt.Errorf("config: default_language %q has no language block", cfg.DefaultLanguage)
	}

	return cfg, nil
}

var (
	loaded  *Config
	once    sync.Once
	loadErr error
)

// Load initializes configuration from the embedded default document,
// merged with an optional user override file. Safe to call repeatedly;
// loads only once.
func Load() (*Config, error) {
	once.Do(func() {
		loaded, loadErr = load()
	})
	return loaded, loadErr
}

// Get returns the loaded configuration, panicking if Load hasn't
// succeeded yet.
func Get() *Config {
	if loaded == nil {
		panic("config.Load() must be called before config.Get()")
	}
	return loaded
}

func load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(strings.NewReader(defaultJSON)); err != nil {
		panic("invalid embedded default.json: " + err.Error())
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		fallback := filepath.Join(home, ".natcalcrc.json")
		if _, statErr := os.Stat(fallback); statErr == nil {
			v.SetConfigFile(fallback)
			_ = v.MergeInConfig()
		}
		xdg := filepath.Join(home, ".config", "natcalc", "config.json")
		if _, statErr := os.Stat(xdg); statErr == nil {
			v.SetConfigFile(xdg)
			_ = v.MergeInConfig()
		}
	}

	var doc Document
	if err := v.Unmarshal(&doc); err != nil {
		return nil, err
	}
	return Build(&doc, nil)
}

// Reload forces a fresh load, for tests.
func Reload() (*Config, error) {
	once = sync.Once{}
	loaded = nil
	loadErr = nil
	return Load()
}
