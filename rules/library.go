package rules

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/natcalc/natcalc/config"
	"github.com/natcalc/natcalc/token"
)

// Library closes the internal rule functions over the compiled config
// they need (currency rates, timezone table) so each Fn matches the
// plain (fields) signature the Engine expects.
//
// Grounded on spec.md §4.8 "Internal rule library" and, for individual
// semantics, original_source/libsmartcalc/src/worker/rules/*.rs.
type Library struct {
	Cfg *config.Config
}

// Named returns the Fn implementation for one internal rule function
// name, or nil if the name isn't recognized.
func (lib Library) Named(name string) Fn {
	switch name {
	case "percent_on":
		return lib.percentOn
	case "percent_of":
		return lib.percentOf
	case "percent_off":
		return lib.percentOff
	case "find_numbers_percent":
		return lib.findNumbersPercent
	case "find_total_from_percent":
		return lib.findTotalFromPercent
	case "small_date":
		return lib.smallDate
	case "numeric_date":
		return lib.numericDate
	case "duration_parse":
		return lib.durationParse
	case "combine_durations":
		return lib.combineDurations
	case "as_duration":
		return lib.asDuration
	case "to_duration":
		return lib.toDuration
	case "at_date":
		return lib.atDate
	case "convert_money":
		return lib.convertMoney
	case "convert_timezone":
		return lib.convertTimezone
	case "time_with_timezone":
		return lib.timeWithTimezone
	case "to_unixtime":
		return lib.toUnixtime
	case "from_unixtime":
		return lib.fromUnixtime
	case "number_to_hex":
		return lib.numberConvert(token.NumberHex)
	case "number_to_binary":
		return lib.numberConvert(token.NumberBinary)
	case "number_to_octal":
		return lib.numberConvert(token.NumberOctal)
	case "number_to_decimal":
		return lib.numberConvert(token.NumberDecimal)
	case "division_cleanup":
		return lib.divisionCleanup
	case "rate_multiply":
		return lib.rateMultiply
	default:
		return nil
	}
}

func numberOf(f *token.Info) (float64, string, bool) {
	switch v := f.Type.(type) {
	case token.Number:
		return v.Value, "", true
	case token.Money:
		return v.Value, v.Currency, true
	default:
		return 0, "", false
	}
}

func (lib Library) percentOn(fields map[string]*token.Info) (token.Type, error) {
	return lib.percentAdjust(fields, func(n, p float64) float64 { return n + n*p/100 })
}

func (lib Library) percentOf(fields map[string]*token.Info) (token.Type, error) {
	return lib.percentAdjust(fields, func(n, p float64) float64 { return n * p / 100 })
}

func (lib Library) percentOff(fields map[string]*token.Info) (token.Type, error) {
	return lib.percentAdjust(fields, func(n, p float64) float64 { return n - n*p/100 })
}

func (lib Library) percentAdjust(fields map[string]*token.Info, f func(n, p float64) float64) (token.Type, error) {
	pct, ok := fields["percent"].Type.(token.Percent)
	if !ok {
		return nil, fmt.Errorf("percent_calculator: missing percent field")
	}
	n, currency, ok := numberOf(fields["number"])
	if !ok {
		return nil, fmt.Errorf("percent_calculator: missing number field")
	}
	result := f(n, pct.Value)
	if currency != "" {
		return token.Money{Value: result, Currency: currency}, nil
	}
	return token.Number{Value: result}, nil
}

func (lib Library) findNumbersPercent(fields map[string]*token.Info) (token.Type, error) {
	number, ok1 := fields["number"].Type.(token.Number)
	total, ok2 := fields["total"].Type.(token.Number)
	if !ok1 || !ok2 || total.Value == 0 {
		return nil, fmt.Errorf("find_numbers_percent: invalid operands")
	}
	return token.Percent{Value: number.Value / total.Value * 100}, nil
}

func (lib Library) findTotalFromPercent(fields map[string]*token.Info) (token.Type, error) {
	part, ok1 := fields["part"].Type.(token.Number)
	pct, ok2 := fields["percent"].Type.(token.Percent)
	if !ok1 || !ok2 || pct.Value == 0 {
		return nil, fmt.Errorf("find_total_from_percent: invalid operands")
	}
	return token.Number{Value: part.Value / (pct.Value / 100)}, nil
}

func (lib Library) smallDate(fields map[string]*token.Info) (token.Type, error) {
	month, ok := fields["month"].Type.(token.Month)
	if !ok {
		return nil, fmt.Errorf("small_date: missing month")
	}
	day := 1
	if d, ok := fields["day"].Type.(token.Number); ok {
		day = int(d.Value)
	}
	year := time.Now().Year()
	if y, ok := fields["year"]; ok {
		if yv, ok := y.Type.(token.Number); ok {
			year = int(yv.Value)
		}
	}
	if day < 1 || day > 31 || month.Month < 1 || month.Month > 12 {
		return nil, fmt.Errorf("small_date: invalid day/month")
	}
	instant := time.Date(year, time.Month(month.Month), day, 0, 0, 0, 0, time.UTC)
	return token.Date{Instant: instant}, nil
}

// numericDate parses the slash-separated "M/D/YYYY" literal (spec.md §8
// scenario 9: "1/1/2000 to 3/3/2021"). Month-first matches the same
// convention small_date's month-name templates already imply for this
// language; a distinct language block could add a day-first template
// without touching this function.
func (lib Library) numericDate(fields map[string]*token.Info) (token.Type, error) {
	month, ok := fields["month"].Type.(token.Number)
	if !ok {
		return nil, fmt.Errorf("numeric_date: missing month")
	}
	day, ok := fields["day"].Type.(token.Number)
	if !ok {
		return nil, fmt.Errorf("numeric_date: missing day")
	}
	year, ok := fields["year"].Type.(token.Number)
	if !ok {
		return nil, fmt.Errorf("numeric_date: missing year")
	}
	m, d, y := int(month.Value), int(day.Value), int(year.Value)
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return nil, fmt.Errorf("numeric_date: invalid day/month")
	}
	return token.Date{Instant: time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)}, nil
}

var unitSeconds = map[string]float64{
	"second": 1, "seconds": 1,
	"minute": 60, "minutes": 60,
	"hour": 3600, "hours": 3600,
	"day": 86400, "days": 86400,
	"week": 604800, "weeks": 604800,
	"month": 2629800, "months": 2629800, // 1/12 Julian year
	"year": 31557600, "years": 31557600,
}

func (lib Library) durationParse(fields map[string]*token.Info) (token.Type, error) {
	count, ok := fields["count"].Type.(token.Number)
	if !ok {
		return nil, fmt.Errorf("duration_parse: missing count")
	}
	unit, ok := fields["unit"].Type.(token.Text)
	if !ok {
		return nil, fmt.Errorf("duration_parse: missing unit")
	}
	seconds, ok := unitSeconds[strings.ToLower(unit.Value)]
	if !ok {
		return nil, fmt.Errorf("duration_parse: unknown unit %q", unit.Value)
	}
	return token.Duration{Seconds: count.Value * seconds}, nil
}

func (lib Library) combineDurations(fields map[string]*token.Info) (token.Type, error) {
	left, ok1 := fields["left"].Type.(token.Duration)
	right, ok2 := fields["right"].Type.(token.Duration)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("combine_durations: invalid operands")
	}
	return token.Duration{Seconds: left.Seconds + right.Seconds}, nil
}

func (lib Library) asDuration(fields map[string]*token.Info) (token.Type, error) {
	d, ok := fields["duration"].Type.(token.Duration)
	if !ok {
		return nil, fmt.Errorf("as_duration: missing duration")
	}
	return d, nil
}

func (lib Library) toDuration(fields map[string]*token.Info) (token.Type, error) {
	if l, lo := fields["left"].Type.(token.Time); lo {
		r, ro := fields["right"].Type.(token.Time)
		if !ro {
			return nil, fmt.Errorf("to_duration: mismatched operand kinds")
		}
		return token.Duration{Seconds: math.Abs(r.Instant.Sub(l.Instant).Seconds())}, nil
	}
	if l, lo := fields["left"].Type.(token.Date); lo {
		r, ro := fields["right"].Type.(token.Date)
		if !ro {
			return nil, fmt.Errorf("to_duration: mismatched operand kinds")
		}
		return token.Duration{Seconds: math.Abs(r.Instant.Sub(l.Instant).Seconds())}, nil
	}
	return nil, fmt.Errorf("to_duration: unsupported operand kinds")
}

func (lib Library) atDate(fields map[string]*token.Info) (token.Type, error) {
	d, ok1 := fields["date"].Type.(token.Date)
	t, ok2 := fields["time"].Type.(token.Time)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("at_date: invalid operands")
	}
	instant := time.Date(d.Instant.Year(), d.Instant.Month(), d.Instant.Day(),
		t.Instant.Hour(), t.Instant.Minute(), t.Instant.Second(), 0, time.UTC)
	return token.DateTime{Instant: instant}, nil
}

func (lib Library) convertMoney(fields map[string]*token.Info) (token.Type, error) {
	amount, ok := fields["amount"].Type.(token.Money)
	if !ok {
		return nil, fmt.Errorf("convert_money: missing amount")
	}
	targetText, ok := fields["target"].Type.(token.Text)
	if !ok {
		return nil, fmt.Errorf("convert_money: missing target")
	}
	target := strings.ToUpper(strings.TrimSpace(targetText.Value))
	sourceRate, haveSource := lib.Cfg.CurrencyRates[amount.Currency]
	targetRate, haveTarget := lib.Cfg.CurrencyRates[target]
	if !haveSource || !haveTarget || sourceRate == 0 {
		return token.Money{Value: 0, Currency: target}, nil
	}
	return token.Money{Value: (amount.Value / sourceRate) * targetRate, Currency: target}, nil
}

// convertTimezone re-labels a zoned instant with a new zone. Instant
// holds wall-clock time in its Offset's zone, so shifting it by the
// offset delta keeps the UTC moment (Instant minus Offset) unchanged
// while the printed wall-clock changes to the new zone's local time
// (spec.md §8 scenario 11).
func (lib Library) convertTimezone(fields map[string]*token.Info) (token.Type, error) {
	zone, ok := fields["zone"].Type.(token.Timezone)
	if !ok {
		return nil, fmt.Errorf("convert_timezone: missing zone")
	}
	if t, ok := fields["time"].Type.(token.Time); ok {
		delta := time.Duration(zone.Minutes-t.Offset.Minutes) * time.Minute
		return token.Time{Instant: t.Instant.Add(delta), Offset: token.Offset{Name: zone.Name, Minutes: zone.Minutes}}, nil
	}
	if dt, ok := fields["time"].Type.(token.DateTime); ok {
		delta := time.Duration(zone.Minutes-dt.Offset.Minutes) * time.Minute
		return token.DateTime{Instant: dt.Instant.Add(delta), Offset: token.Offset{Name: zone.Name, Minutes: zone.Minutes}}, nil
	}
	return nil, fmt.Errorf("convert_timezone: unsupported operand kind")
}

func (lib Library) timeWithTimezone(fields map[string]*token.Info) (token.Type, error) {
	t, ok := fields["time"].Type.(token.Time)
	if !ok {
		return nil, fmt.Errorf("time_with_timezone: missing time")
	}
	zone, ok := fields["zone"].Type.(token.Timezone)
	if !ok {
		return nil, fmt.Errorf("time_with_timezone: missing zone")
	}
	return token.Time{Instant: t.Instant, Offset: token.Offset{Name: zone.Name, Minutes: zone.Minutes}}, nil
}

func (lib Library) toUnixtime(fields map[string]*token.Info) (token.Type, error) {
	var instant time.Time
	if dt, ok := fields["moment"].Type.(token.DateTime); ok {
		instant = dt.Instant
	} else if d, ok := fields["moment"].Type.(token.Date); ok {
		instant = d.Instant
	} else {
		return nil, fmt.Errorf("to_unixtime: unsupported operand kind")
	}
	return token.Number{Value: float64(instant.Unix())}, nil
}

func (lib Library) fromUnixtime(fields map[string]*token.Info) (token.Type, error) {
	seconds, ok := fields["seconds"].Type.(token.Number)
	if !ok {
		return nil, fmt.Errorf("from_unixtime: missing seconds")
	}
	return token.DateTime{Instant: time.Unix(int64(seconds.Value), 0).UTC()}, nil
}

func (lib Library) numberConvert(kind token.NumberKind) Fn {
	return func(fields map[string]*token.Info) (token.Type, error) {
		n, ok := fields["number"].Type.(token.Number)
		if !ok {
			return nil, fmt.Errorf("number_type_convert: missing number")
		}
		return token.Number{Value: math.Floor(n.Value), NumberKind: kind}, nil
	}
}

func (lib Library) divisionCleanup(fields map[string]*token.Info) (token.Type, error) {
	left, ok1 := fields["left"].Type.(token.Number)
	right, ok2 := fields["right"].Type.(token.Number)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("division_cleanup: invalid operands")
	}
	if right.Value == 0 {
		return token.Number{Value: 0}, nil
	}
	return token.Number{Value: left.Value / right.Value}, nil
}

// rateMultiply collapses the "<money> / <unit> * <count> <unit>s" rate
// idiom (spec.md §8 scenario 2: "$25/hour * 14 hours of work") into a
// single Money value, multiplying the per-unit rate by the count. The
// unit names themselves aren't checked against each other: any trailing
// connector words ("of work") are left for the parser to drop.
func (lib Library) rateMultiply(fields map[string]*token.Info) (token.Type, error) {
	rate, ok := fields["rate"].Type.(token.Money)
	if !ok {
		return nil, fmt.Errorf("rate_multiply: missing rate")
	}
	count, ok := fields["count"].Type.(token.Number)
	if !ok {
		return nil, fmt.Errorf("rate_multiply: missing count")
	}
	return token.Money{Value: rate.Value * count.Value, Currency: rate.Currency}, nil
}
