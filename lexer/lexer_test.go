package lexer

import (
	"testing"

	"github.com/natcalc/natcalc/token"
)

func TestTokenizeSimpleExpression(t *testing.T) {
	tokens, _, err := Tokenize("120 + 30", Tables{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []token.Type{
		token.Number{Value: 120},
		token.Operator{Char: '+'},
		token.Number{Value: 30},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, info := range tokens {
		if !info.Type.Equal(want[i]) {
			t.Errorf("token %d = %v, want %v", i, info.Type, want[i])
		}
	}
}

func TestTokenizeMoney(t *testing.T) {
	tabs := Tables{
		CurrenciesBySymbol: map[string]CurrencyMeta{
			"$": {Code: "USD", Symbol: "$", ThousandsSeparator: ",", DecimalSeparator: "."},
		},
	}
	tokens, _, err := Tokenize("$350", tabs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token, got %d: %v", len(tokens), tokens)
	}
	money, ok := tokens[0].Type.(token.Money)
	if !ok {
		t.Fatalf("expected Money token, got %T", tokens[0].Type)
	}
	if money.Value != 350 || money.Currency != "USD" {
		t.Errorf("got Money{%v, %s}, want Money{350, USD}", money.Value, money.Currency)
	}
}

func TestTokenizePercent(t *testing.T) {
	tokens, _, err := Tokenize("30%", Tables{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token, got %d: %v", len(tokens), tokens)
	}
	pct, ok := tokens[0].Type.(token.Percent)
	if !ok || pct.Value != 30 {
		t.Errorf("got %v, want Percent(30)", tokens[0].Type)
	}
}

func TestTokenizeUnmatchedByteFails(t *testing.T) {
	_, _, err := Tokenize("@@@", Tables{})
	if err == nil {
		t.Fatal("expected a LexError for unmatched input")
	}
	if _, ok := err.(*LexError); !ok {
		t.Errorf("expected *LexError, got %T", err)
	}
}

func TestTokenizeWhitespaceIsDropped(t *testing.T) {
	tokens, _, err := Tokenize("1   +   2", Tables{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 3 {
		t.Fatalf("expected 3 surviving tokens, got %d: %v", len(tokens), tokens)
	}
}

func TestTokenizeFieldHoles(t *testing.T) {
	tokens, _, err := Tokenize("{PERCENT:percent} on {NUMBER:number}", Tables{FieldEnabled: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var fields []token.Field
	for _, info := range tokens {
		if f, ok := info.Type.(token.Field); ok {
			fields = append(fields, f)
		}
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 field holes, got %d: %v", len(fields), tokens)
	}
	if fields[0].Name != "percent" || fields[0].FieldKind != token.FieldPercent {
		t.Errorf("first field = %+v, want percent/FieldPercent", fields[0])
	}
	if fields[1].Name != "number" || fields[1].FieldKind != token.FieldNumber {
		t.Errorf("second field = %+v, want number/FieldNumber", fields[1])
	}
}

func TestTagMonths(t *testing.T) {
	tokens, _, err := Tokenize("January 5, 2024", Tables{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	TagMonths(tokens, map[string]int{"january": 1}, map[string]int{"jan": 1})

	var found bool
	for _, info := range tokens {
		if m, ok := info.Type.(token.Month); ok {
			found = true
			if m.Month != 1 {
				t.Errorf("got Month(%d), want Month(1)", m.Month)
			}
		}
	}
	if !found {
		t.Error("expected TagMonths to retag \"January\" as a Month token")
	}
}
