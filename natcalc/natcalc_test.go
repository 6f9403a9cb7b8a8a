package natcalc

import (
	"testing"

	"github.com/natcalc/natcalc/config"
	"github.com/natcalc/natcalc/token"
)

func mustConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Reload()
	if err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	return cfg
}

func TestBasicExecuteSimpleArithmetic(t *testing.T) {
	cfg := mustConfig(t)
	got, err := BasicExecute(cfg, "en", "2 + 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5 {
		t.Errorf("got %v, want 5", got)
	}
}

func TestBasicExecuteOperatorPrecedence(t *testing.T) {
	cfg := mustConfig(t)
	got, err := BasicExecute(cfg, "en", "2 + 3 * 4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 14 {
		t.Errorf("got %v, want 14", got)
	}
}

func TestBasicExecuteChainedPercent(t *testing.T) {
	cfg := mustConfig(t)
	got, err := BasicExecute(cfg, "en", "120 + 30% + 10%")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 171.6 {
		t.Errorf("got %v, want 171.6", got)
	}
}

func TestBasicExecutePercentOnRule(t *testing.T) {
	cfg := mustConfig(t)
	got, err := BasicExecute(cfg, "en", "10% on 200")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 220 {
		t.Errorf("got %v, want 220", got)
	}
}

func TestExecuteMoneyFormatsWithCurrencySymbol(t *testing.T) {
	cfg := mustConfig(t)
	eng := New(cfg)
	result := eng.Execute("en", "$350")
	if !result.Status {
		t.Fatalf("expected success, got %+v", result.Lines)
	}
	if len(result.Lines) != 1 || result.Lines[0].Result == nil {
		t.Fatalf("expected 1 successful line, got %+v", result.Lines)
	}
	if got := result.Lines[0].Result.Output; got != "$350,00" {
		t.Errorf("got %q, want %q", got, "$350,00")
	}
}

func TestExecuteThreadsVariablesAcrossLines(t *testing.T) {
	cfg := mustConfig(t)
	eng := New(cfg)
	result := eng.Execute("en", "x = 10\nx + 5")
	if !result.Status {
		t.Fatalf("expected success, got %+v", result.Lines)
	}
	if len(result.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(result.Lines))
	}
	if result.Lines[1].Result == nil {
		t.Fatalf("expected line 2 to succeed, got err %q", result.Lines[1].Err)
	}
	if got := result.Lines[1].Result.Output; got != "15,00" {
		t.Errorf("got %q, want %q", got, "15,00")
	}
}

func TestExecuteReportsFailureStatusOnBadLine(t *testing.T) {
	cfg := mustConfig(t)
	eng := New(cfg)
	result := eng.Execute("en", "1 + 2\n1 $ 2")
	if result.Status {
		t.Fatal("expected overall status to be false when a line fails")
	}
	if result.Lines[0].Result == nil {
		t.Error("expected the first, valid line to still succeed")
	}
}

func TestAddRuleThenDeleteRule(t *testing.T) {
	cfg := mustConfig(t)
	eng := New(cfg)
	apply := func(fields map[string]*token.Info) (token.Type, error) {
		n := fields["number"].Type.(token.Number)
		return token.Number{Value: n.Value * 2}, nil
	}
	if !eng.AddRule("en", []string{"double {NUMBER:number}"}, "double_it", apply) {
		t.Fatal("expected AddRule to succeed")
	}

	result := eng.Execute("en", "double 21")
	if !result.Status || result.Lines[0].Result == nil {
		t.Fatalf("expected the custom rule to fire, got %+v", result.Lines)
	}
	if got := result.Lines[0].Result.Output; got != "42,00" {
		t.Errorf("got %q, want %q", got, "42,00")
	}

	if !eng.DeleteRule("en", "double_it") {
		t.Error("expected DeleteRule to find and remove the custom rule")
	}
	if eng.DeleteRule("en", "double_it") {
		t.Error("expected a second DeleteRule call to report nothing left to remove")
	}
}

func TestUpdateCurrencyAffectsConversion(t *testing.T) {
	cfg := mustConfig(t)
	eng := New(cfg)
	eng.UpdateCurrency("USD", 2.0)
	eng.UpdateCurrency("EUR", 1.0)
	if cfg.CurrencyRates["USD"] != 2.0 {
		t.Errorf("expected UpdateCurrency to set USD rate, got %v", cfg.CurrencyRates["USD"])
	}
	result := eng.Execute("en", "10 usd to eur")
	if !result.Status || result.Lines[0].Result == nil {
		t.Fatalf("expected the conversion to succeed, got %+v", result.Lines)
	}
	if got := result.Lines[0].Result.Output; got != "€5,00" {
		t.Errorf("got %q, want %q", got, "€5,00")
	}
}

func TestAddDynamicTypeAndItem(t *testing.T) {
	cfg := mustConfig(t)
	eng := New(cfg)
	if !eng.AddDynamicType("widgets") {
		t.Fatal("expected AddDynamicType to succeed for a new group")
	}
	if eng.AddDynamicType("widgets") {
		t.Error("expected AddDynamicType to fail for an already-registered group")
	}
	if !eng.AddDynamicTypeItem("widgets", 0, "{} w", []string{"w"}, 1) {
		t.Error("expected AddDynamicTypeItem to append the first item")
	}
}
