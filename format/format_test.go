package format

import (
	"testing"
	"time"

	"github.com/natcalc/natcalc/config"
	"github.com/natcalc/natcalc/token"
)

func TestDecimalGroupsThousandsAndPadsFraction(t *testing.T) {
	got := Decimal(1234.5, ".", ",", 2, false)
	if got != "1.234,50" {
		t.Errorf("got %q, want %q", got, "1.234,50")
	}
}

func TestDecimalRemovesFractWhenZero(t *testing.T) {
	got := Decimal(100, ".", ",", 2, true)
	if got != "100" {
		t.Errorf("got %q, want %q", got, "100")
	}
}

func TestDecimalNegative(t *testing.T) {
	got := Decimal(-42.5, ".", ",", 1, false)
	if got != "-42,5" {
		t.Errorf("got %q, want %q", got, "-42,5")
	}
}

func TestDecimalDefaultTrimsTrailingZerosWhenFractRoundingSet(t *testing.T) {
	lang := &config.Language{Format: config.FormatSpec{
		ThousandsSeparator: ".", DecimalSeparator: ",", DecimalDigits: 4, UseFractRounding: true,
	}}
	got := DecimalDefault(1.5, lang)
	if got != "1,5" {
		t.Errorf("got %q, want %q", got, "1,5")
	}
}

func TestNumberRetagsHexOctalBinary(t *testing.T) {
	lang := &config.Language{Format: config.FormatSpec{ThousandsSeparator: ".", DecimalSeparator: ","}}
	if got := Number(255, lang, token.NumberHex); got != "0xff" {
		t.Errorf("hex: got %q, want 0xff", got)
	}
	if got := Number(8, lang, token.NumberOctal); got != "0o10" {
		t.Errorf("octal: got %q, want 0o10", got)
	}
	if got := Number(5, lang, token.NumberBinary); got != "0b101" {
		t.Errorf("binary: got %q, want 0b101", got)
	}
}

func TestDateUsesFullDateTemplateForPastYears(t *testing.T) {
	lang := &config.Language{Format: config.FormatSpec{
		Date: config.DateFormat{FullDate: "{day} {month_short} {year}"},
	}}
	instant := time.Date(2000, time.March, 5, 0, 0, 0, 0, time.UTC)
	got := Date(instant, lang, false)
	if got != "5 Mar 2000" {
		t.Errorf("got %q, want %q", got, "5 Mar 2000")
	}
}

func TestDateUsesLanguageMonthNames(t *testing.T) {
	lang := &config.Language{
		ShortMonths: map[string]int{"mar": 3},
		Format: config.FormatSpec{
			Date: config.DateFormat{FullDate: "{day} {month_short} {year}"},
		},
	}
	instant := time.Date(2000, time.March, 5, 0, 0, 0, 0, time.UTC)
	got := Date(instant, lang, false)
	if got != "5 Mar 2000" {
		t.Errorf("got %q, want %q", got, "5 Mar 2000")
	}
}

func TestDurationPicksLargestNonzeroUnit(t *testing.T) {
	lang := &config.Language{Format: config.FormatSpec{Duration: []config.DurationTemplate{
		{DurationType: "hour", Count: "", Format: "{hour} hours"},
		{DurationType: "hour", Count: "1", Format: "{hour} hour"},
	}}}
	got := Duration(2*3600+30*60, lang)
	if got != "2 hours" {
		t.Errorf("got %q, want %q", got, "2 hours")
	}
}

func TestDurationSingularTemplate(t *testing.T) {
	lang := &config.Language{Format: config.FormatSpec{Duration: []config.DurationTemplate{
		{DurationType: "hour", Count: "1", Format: "{hour} hour"},
		{DurationType: "hour", Count: "", Format: "{hour} hours"},
	}}}
	got := Duration(3600, lang)
	if got != "1 hour" {
		t.Errorf("got %q, want %q", got, "1 hour")
	}
}

func TestDurationNegativeIsPrefixed(t *testing.T) {
	lang := &config.Language{Format: config.FormatSpec{Duration: []config.DurationTemplate{
		{DurationType: "minute", Count: "", Format: "{minute} min"},
	}}}
	got := Duration(-120, lang)
	if got != "-2 min" {
		t.Errorf("got %q, want %q", got, "-2 min")
	}
}

func TestDurationFallsBackWhenNoTemplateConfigured(t *testing.T) {
	lang := &config.Language{}
	got := Duration(30, lang)
	if got != "30 second" {
		t.Errorf("got %q, want %q", got, "30 second")
	}
}
