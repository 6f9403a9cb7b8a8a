// Package config implements C1: the immutable, compiled configuration
// bundle (currencies, rates, alias regexes, per-language token regexes,
// month tables, word groups, constants, rule templates, dynamic-type
// groups). Document is the raw JSON shape; Config is what Build produces
// from it after eager compilation.
//
// Grounded on original_source/libsmartcalc/src/config.rs (the JSON
// document this type mirrors) and cmd/calcmark/config/config.go (the
// embed-defaults + viper-merge loading idiom).
package config

// Document is the top-level JSON configuration shape described in
// spec.md §6.
type Document struct {
	DefaultLanguage string                   `mapstructure:"default_language" json:"default_language"`
	Parse           map[string][]string      `mapstructure:"parse" json:"parse"`
	Alias           map[string]string        `mapstructure:"alias" json:"alias"`
	CurrencyAlias   map[string]string        `mapstructure:"currency_alias" json:"currency_alias"`
	CurrencyRates   map[string]float64       `mapstructure:"currency_rates" json:"currency_rates"`
	Currencies      map[string]CurrencyInfo  `mapstructure:"currencies" json:"currencies"`
	Timezones       map[string]int           `mapstructure:"timezones" json:"timezones"`
	Languages       map[string]LanguageBlock `mapstructure:"languages" json:"languages"`
	TypeGroup       map[string][]string      `mapstructure:"type_group" json:"type_group"`
	DynamicTypes    map[string][]DynamicItem `mapstructure:"dynamic_types" json:"dynamic_types"`
}

// CurrencyInfo is a single currency's display/parse metadata, shared by
// reference once compiled (spec.md §3 CurrencyInfo).
type CurrencyInfo struct {
	Code                        string `mapstructure:"code" json:"code"`
	Symbol                      string `mapstructure:"symbol" json:"symbol"`
	ThousandsSeparator          string `mapstructure:"thousands_separator" json:"thousands_separator"`
	DecimalSeparator            string `mapstructure:"decimal_separator" json:"decimal_separator"`
	DecimalDigits               int    `mapstructure:"decimal_digits" json:"decimal_digits"`
	SymbolOnLeft                bool   `mapstructure:"symbol_on_left" json:"symbol_on_left"`
	SpaceBetweenAmountAndSymbol bool   `mapstructure:"space_between_amount_and_symbol" json:"space_between_amount_and_symbol"`
}

// LanguageBlock is one language's worth of the configuration document.
type LanguageBlock struct {
	LongMonths   map[string]int      `mapstructure:"long_months" json:"long_months"`
	ShortMonths  map[string]int      `mapstructure:"short_months" json:"short_months"`
	WordGroup    map[string][]string `mapstructure:"word_group" json:"word_group"`
	ConstantPair map[string]string   `mapstructure:"constant_pair" json:"constant_pair"`
	Rules        map[string]RuleSpec `mapstructure:"rules" json:"rules"`
	Alias        map[string]string   `mapstructure:"alias" json:"alias"`
	Format       FormatSpec          `mapstructure:"format" json:"format"`
}

// RuleSpec names the set of template strings bound to one internal (or
// API) rule function.
type RuleSpec struct {
	Rules []string `mapstructure:"rules" json:"rules"`
}

// FormatSpec is the language's formatter configuration (spec.md §4.12,
// §6 "Duration template entry").
type FormatSpec struct {
	Duration           []DurationTemplate `mapstructure:"duration" json:"duration"`
	Date               DateFormat         `mapstructure:"date" json:"date"`
	Language           string             `mapstructure:"language" json:"language"`
	DecimalSeparator   string             `mapstructure:"decimal_separator" json:"decimal_separator"`
	ThousandsSeparator string             `mapstructure:"thousands_separator" json:"thousands_separator"`
	DecimalDigits      int                `mapstructure:"decimal_digits" json:"decimal_digits"`
	RemoveFractIfZero  bool               `mapstructure:"remove_fract_if_zero" json:"remove_fract_if_zero"`
	UseFractRounding   bool               `mapstructure:"use_fract_rounding" json:"use_fract_rounding"`
}

// DateFormat holds the date/date-time print templates.
type DateFormat struct {
	CurrentYear         string `mapstructure:"current_year" json:"current_year"`
	FullDate            string `mapstructure:"full_date" json:"full_date"`
	CurrentYearWithTime string `mapstructure:"current_year_with_time" json:"current_year_with_time"`
	FullDateTime        string `mapstructure:"full_date_time" json:"full_date_time"`
}

// DurationTemplate is one entry of the duration pluralisation table.
type DurationTemplate struct {
	Count        string `mapstructure:"count" json:"count"`
	Format       string `mapstructure:"format" json:"format"`
	DurationType string `mapstructure:"duration_type" json:"duration_type"`
}

// DynamicItem is one unit definition within a named dynamic-type group
// (spec.md §3 DynamicType). Index order within a group's slice in the
// document defines the multiplier chain: Multiplier is the number of
// units of the previous index in 1 unit of this index (kb 1024 means
// 1 kb = 1024 b), and the first item's Multiplier scales the whole chain.
// It is not the factor to the next index.
type DynamicItem struct {
	Names      []string `mapstructure:"names" json:"names" yaml:"names"`
	Format     string   `mapstructure:"format" json:"format" yaml:"format"`
	Multiplier float64  `mapstructure:"multiplier" json:"multiplier" yaml:"multiplier"`
}
