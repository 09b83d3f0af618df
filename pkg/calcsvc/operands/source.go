// Package operands extracts the two addition operands, x and y, from the
// different shapes a calculator request can take.
//
// Every adapter applies the same policy: an absent field is 0, a present
// field must convert to an integer or extraction fails.
package operands

import (
	"math"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	fieldX = "x"
	fieldY = "y"
)

// Source produces the two operands of an addition.
type Source interface {
	Extract() (x int64, y int64, err error)
}

var (
	_ Source = QuerySource{}
	_ Source = FormSource{}
	_ Source = JSONSource{}
)

// QuerySource reads the operands from URL query parameters.
type QuerySource struct {
	Values url.Values
}

// Extract implements Source.
func (s QuerySource) Extract() (int64, int64, error) {
	return extractValues("query", s.Values)
}

// FormSource reads the operands from url-encoded or multipart form fields.
type FormSource struct {
	Values url.Values
}

// Extract implements Source.
func (s FormSource) Extract() (int64, int64, error) {
	return extractValues("form", s.Values)
}

func extractValues(source string, values url.Values) (x int64, y int64, err error) {
	if x, err = valueOperand(source, fieldX, values); err != nil {
		return 0, 0, err
	}
	if y, err = valueOperand(source, fieldY, values); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// valueOperand uses the first value of a repeated key.
func valueOperand(source, field string, values url.Values) (int64, error) {
	vs, ok := values[field]
	if !ok || len(vs) == 0 {
		return 0, nil
	}
	v, err := ParseInteger(vs[0])
	if err != nil {
		return 0, &ParseError{Source: source, Field: field, Value: vs[0], Err: err}
	}
	return v, nil
}

// JSONSource reads the operands from the members of a JSON object.
type JSONSource struct {
	Body []byte
}

// Extract implements Source.
func (s JSONSource) Extract() (x int64, y int64, err error) {
	if len(strings.TrimSpace(string(s.Body))) == 0 {
		return 0, 0, &MalformedBodyError{Reason: "empty body"}
	}
	if !gjson.ValidBytes(s.Body) {
		return 0, 0, &MalformedBodyError{Reason: "invalid JSON"}
	}
	root := gjson.ParseBytes(s.Body)
	if !root.IsObject() {
		return 0, 0, &MalformedBodyError{Reason: "top-level value is not an object"}
	}

	// the last occurrence of a duplicated key wins
	var rx, ry gjson.Result
	root.ForEach(func(key, value gjson.Result) bool {
		switch key.String() {
		case fieldX:
			rx = value
		case fieldY:
			ry = value
		}
		return true
	})

	if x, err = jsonOperand(fieldX, rx); err != nil {
		return 0, 0, err
	}
	if y, err = jsonOperand(fieldY, ry); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func jsonOperand(field string, r gjson.Result) (int64, error) {
	if !r.Exists() {
		return 0, nil
	}

	fail := func(err error) (int64, error) {
		return 0, &ParseError{Source: "json", Field: field, Value: r.Raw, Err: err}
	}

	switch r.Type {
	case gjson.True:
		return 1, nil
	case gjson.False:
		return 0, nil
	case gjson.String:
		v, err := ParseInteger(r.Str)
		if err != nil {
			return fail(err)
		}
		return v, nil
	case gjson.Number:
		if !strings.ContainsAny(r.Raw, ".eE") {
			v, err := ParseInteger(r.Raw)
			if err != nil {
				return fail(err)
			}
			return v, nil
		}
		f := math.Trunc(r.Num)
		// float64(math.MaxInt64) rounds up to 2^63
		if math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
			return fail(ErrRange)
		}
		return int64(f), nil
	default:
		return fail(ErrType)
	}
}
