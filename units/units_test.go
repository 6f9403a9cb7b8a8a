package units

import (
	"testing"

	"github.com/natcalc/natcalc/config"
	"github.com/natcalc/natcalc/lexer"
	"github.com/natcalc/natcalc/token"
)

func tokenizeOrFatal(t *testing.T, line string) token.List {
	t.Helper()
	tokens, _, err := lexer.Tokenize(line, lexer.Tables{})
	if err != nil {
		t.Fatalf("tokenizing %q: %v", line, err)
	}
	return tokens
}

func TestBuildSeedsBuiltinLengthGroup(t *testing.T) {
	_, groups := Build(&config.Config{})
	if _, ok := groups["length"]; !ok {
		t.Fatal("expected a built-in \"length\" group when none is configured")
	}
}

func TestBuildUsesConfiguredGroupOverBuiltin(t *testing.T) {
	cfg := &config.Config{DynamicTypes: map[string][]config.DynamicItem{
		"length": {{Names: []string{"u"}, Format: "{} u", Multiplier: 1}},
	}}
	_, groups := Build(cfg)
	if len(groups["length"].Items) != 1 {
		t.Fatalf("expected the configured length group (1 item) to win, got %d items", len(groups["length"].Items))
	}
}

func TestBuildChainsMultipliersFromBase(t *testing.T) {
	cfg := &config.Config{DynamicTypes: map[string][]config.DynamicItem{
		"data": {
			{Names: []string{"b"}, Format: "{} B", Multiplier: 1},
			{Names: []string{"kb"}, Format: "{} KB", Multiplier: 1024},
			{Names: []string{"mb"}, Format: "{} MB", Multiplier: 1024},
		},
	}}
	_, groups := Build(cfg)
	items := groups["data"].Items
	if items[0].ToBaseMult != 1 {
		t.Errorf("base item ToBaseMult = %v, want 1", items[0].ToBaseMult)
	}
	if items[1].ToBaseMult != 1024 {
		t.Errorf("kb ToBaseMult = %v, want 1024", items[1].ToBaseMult)
	}
	if items[2].ToBaseMult != 1024*1024 {
		t.Errorf("mb ToBaseMult = %v, want %v", items[2].ToBaseMult, 1024*1024)
	}
}

func TestConvertRoundTrips(t *testing.T) {
	cfg := &config.Config{DynamicTypes: map[string][]config.DynamicItem{
		"data": {
			{Names: []string{"b"}, Format: "{} B", Multiplier: 1},
			{Names: []string{"kb"}, Format: "{} KB", Multiplier: 1024},
		},
	}}
	_, groups := Build(cfg)

	kb, err := Convert(groups, 2, "data", 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kb != 2.0/1024 {
		t.Errorf("2 B -> KB = %v, want %v", kb, 2.0/1024)
	}

	back, err := Convert(groups, kb, "data", 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back != 2 {
		t.Errorf("round trip = %v, want 2", back)
	}
}

func TestConvertUnknownGroup(t *testing.T) {
	_, groups := Build(&config.Config{})
	if _, err := Convert(groups, 1, "nonexistent", 0, 0); err == nil {
		t.Error("expected an error for an unknown group")
	}
}

func TestFormatUsesItemTemplate(t *testing.T) {
	cfg := &config.Config{DynamicTypes: map[string][]config.DynamicItem{
		"data": {{Names: []string{"b"}, Format: "{} B", Multiplier: 1}},
	}}
	_, groups := Build(cfg)
	got := Format(groups, token.DynamicType{Value: 5, Group: "data", Index: 0}, "5")
	if got != "5 B" {
		t.Errorf("Format() = %q, want %q", got, "5 B")
	}
}

func TestBuildCompilesConversionRules(t *testing.T) {
	cfg := &config.Config{DynamicTypes: map[string][]config.DynamicItem{
		"data": {{Names: []string{"kb"}, Format: "{} KB", Multiplier: 1}},
	}}
	eng, _ := Build(cfg)

	input := tokenizeOrFatal(t, "5 kb")
	out, applied := eng.RunToFixpoint(input)
	if applied != 1 {
		t.Fatalf("expected 1 rewrite, got %d", applied)
	}
	dt, ok := out[0].Type.(token.DynamicType)
	if !ok || dt.Value != 5 || dt.Group != "data" {
		t.Errorf("got %v, want DynamicType(5, data, 0)", out[0].Type)
	}
}
