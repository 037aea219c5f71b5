package query

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deusvagus/musicplayer/internal/catalog"
)

// Regex compile failures, reported per input.
var (
	ErrInvalidFieldRegex = errors.New("invalid field regex")
	ErrInvalidValueRegex = errors.New("invalid value regex")
)

// Query holds the raw inputs of the field/value search.
type Query struct {
	Field      string `json:"field"`
	Value      string `json:"value"`
	FieldRegex bool   `json:"field_regex"`
	ValueRegex bool   `json:"value_regex"`
}

// Result is the outcome of evaluating one record. Subset holds the entries
// that satisfied both queries, in record order.
type Result struct {
	Matched bool            `json:"matched"`
	Subset  catalog.Details `json:"subset,omitempty"`
}

// NoMatch is the zero Result.
var NoMatch = Result{}

// Compiled is a query prepared for repeated evaluation. It holds no state
// that changes between evaluations.
type Compiled struct {
	field      string
	value      string
	fieldRegex bool
	valueRegex bool

	fieldRe    *regexp.Regexp
	valueRe    *regexp.Regexp
	fieldTerms []string
	valueTerms []string
	fieldErr   error
	valueErr   error
}

// Compile trims both inputs and prepares terms or patterns. Invalid patterns
// do not fail compilation; they are reported by Err and the Invalid methods.
func Compile(q Query) *Compiled {
	c := &Compiled{
		field:      strings.TrimSpace(q.Field),
		value:      strings.TrimSpace(q.Value),
		fieldRegex: q.FieldRegex,
		valueRegex: q.ValueRegex,
	}
	if c.field != "" {
		if c.fieldRegex {
			c.fieldRe, c.fieldErr = compilePattern(c.field, ErrInvalidFieldRegex)
		} else {
			c.fieldTerms = ParseTerms(c.field)
		}
	}
	if c.value != "" {
		if c.valueRegex {
			c.valueRe, c.valueErr = compilePattern(c.value, ErrInvalidValueRegex)
		} else {
			c.valueTerms = ParseTerms(c.value)
		}
	}
	return c
}

func compilePattern(pattern string, kind error) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kind, err)
	}
	return re, nil
}

// Active reports whether either input is non-empty.
func (c *Compiled) Active() bool {
	return c.field != "" || c.value != ""
}

// FieldInvalid reports a field pattern that failed to compile.
func (c *Compiled) FieldInvalid() bool { return c.fieldErr != nil }

// ValueInvalid reports a value pattern that failed to compile.
func (c *Compiled) ValueInvalid() bool { return c.valueErr != nil }

// Err joins the compile errors of both inputs.
func (c *Compiled) Err() error {
	return errors.Join(c.fieldErr, c.valueErr)
}

// Query returns the trimmed inputs.
func (c *Compiled) Query() Query {
	return Query{Field: c.field, Value: c.value, FieldRegex: c.fieldRegex, ValueRegex: c.valueRegex}
}

// FieldTerms returns the parsed keyword terms of the field input.
func (c *Compiled) FieldTerms() []string { return append([]string(nil), c.fieldTerms...) }

// ValueTerms returns the parsed keyword terms of the value input.
func (c *Compiled) ValueTerms() []string { return append([]string(nil), c.valueTerms...) }

// Evaluate tests one record. With both inputs empty every record matches in
// full. Otherwise the field phase selects entries by key and the value phase
// filters them by value; an empty phase result is NoMatch.
func (c *Compiled) Evaluate(details catalog.Details) Result {
	if c.fieldErr != nil || c.valueErr != nil {
		return NoMatch
	}
	if !c.Active() {
		return Result{Matched: true, Subset: details.Clone()}
	}

	candidates := make(catalog.Details, 0, len(details))
	for _, f := range details {
		if c.keyMatches(f.Key) {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return NoMatch
	}
	if c.value == "" {
		return Result{Matched: true, Subset: candidates}
	}

	matched := candidates[:0:0]
	for _, f := range candidates {
		if c.valueMatches(catalog.Stringify(f.Value)) {
			matched = append(matched, f)
		}
	}
	if len(matched) == 0 {
		return NoMatch
	}
	return Result{Matched: true, Subset: matched}
}

func (c *Compiled) keyMatches(key string) bool {
	switch {
	case c.field == "":
		return true
	case c.fieldRegex:
		return c.fieldRe.MatchString(key)
	default:
		return containsAny(strings.ToLower(key), c.fieldTerms)
	}
}

func (c *Compiled) valueMatches(value string) bool {
	if c.valueRegex {
		return c.valueRe.MatchString(value)
	}
	return containsAll(strings.ToLower(value), c.valueTerms)
}

// Evaluate compiles and evaluates in one step. The error reports invalid
// patterns; the result is NoMatch in that case.
func Evaluate(details catalog.Details, fieldQuery, valueQuery string, fieldIsRegex, valueIsRegex bool) (Result, error) {
	c := Compile(Query{Field: fieldQuery, Value: valueQuery, FieldRegex: fieldIsRegex, ValueRegex: valueIsRegex})
	return c.Evaluate(details), c.Err()
}

// MatchesGeneral reports whether an album title contains the general query,
// ignoring case. An empty query matches every title.
func MatchesGeneral(title, general string) bool {
	general = strings.ToLower(strings.TrimSpace(general))
	if general == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), general)
}
