package operands

import (
	"errors"
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInteger(t *testing.T) {
	testCases := []struct {
		in      string
		want    int64
		wantErr error
	}{
		{in: "0", want: 0},
		{in: "7", want: 7},
		{in: "-3", want: -3},
		{in: "+12", want: 12},
		{in: "007", want: 7},
		{in: "  42\t\n", want: 42},
		{in: "1_000", want: 1000},
		{in: "-1_2_3", want: -123},
		{in: "9223372036854775807", want: math.MaxInt64},
		{in: "-9223372036854775808", want: math.MinInt64},
		{in: "9223372036854775808", wantErr: ErrRange},
		{in: "", wantErr: ErrSyntax},
		{in: "   ", wantErr: ErrSyntax},
		{in: "abc", wantErr: ErrSyntax},
		{in: "3.0", wantErr: ErrSyntax},
		{in: "1e3", wantErr: ErrSyntax},
		{in: "+", wantErr: ErrSyntax},
		{in: "--1", wantErr: ErrSyntax},
		{in: "1 2", wantErr: ErrSyntax},
		{in: "_1", wantErr: ErrSyntax},
		{in: "1_", wantErr: ErrSyntax},
		{in: "1__0", wantErr: ErrSyntax},
		{in: "0x10", wantErr: ErrSyntax},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.in, func(t *testing.T) {
			v, err := ParseInteger(tc.in)
			if tc.wantErr != nil {
				require.Equal(t, tc.wantErr, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, v)
		})
	}
}

func TestValuesSources(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		wantX    int64
		wantY    int64
		errField string
	}{
		{name: "Empty", raw: ""},
		{name: "Both", raw: "x=3&y=4", wantX: 3, wantY: 4},
		{name: "MissingY", raw: "x=5", wantX: 5},
		{name: "MissingX", raw: "y=-2", wantY: -2},
		{name: "Repeated", raw: "x=1&x=9&y=2", wantX: 1, wantY: 2},
		{name: "Whitespace", raw: "x=%201_000%20&y=1", wantX: 1000, wantY: 1},
		{name: "Malformed", raw: "x=abc&y=1", errField: "x"},
		{name: "EmptyValue", raw: "x=1&y=", errField: "y"},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.raw)
			require.NoError(t, err)

			for source, src := range map[string]Source{
				"query": QuerySource{Values: values},
				"form":  FormSource{Values: values},
			} {
				x, y, err := src.Extract()
				if tc.errField != "" {
					var perr *ParseError
					require.True(t, errors.As(err, &perr), "%s: %v", source, err)
					assert.Equal(t, source, perr.Source)
					assert.Equal(t, tc.errField, perr.Field)
					assert.True(t, errors.Is(err, ErrSyntax))
					continue
				}
				require.NoError(t, err, source)
				assert.Equal(t, tc.wantX, x, source)
				assert.Equal(t, tc.wantY, y, source)
			}
		})
	}
}

func TestJSONSource(t *testing.T) {
	testCases := []struct {
		name      string
		body      string
		wantX     int64
		wantY     int64
		malformed bool
		errField  string
		errIs     error
	}{
		{name: "Numbers", body: `{"x": 2, "y": 5}`, wantX: 2, wantY: 5},
		{name: "EmptyObject", body: `{}`},
		{name: "MissingY", body: `{"x": 5}`, wantX: 5},
		{name: "Strings", body: `{"x": "10", "y": " -3 "}`, wantX: 10, wantY: -3},
		{name: "Bools", body: `{"x": true, "y": false}`, wantX: 1},
		{name: "FloatsTruncate", body: `{"x": 2.9, "y": -2.9}`, wantX: 2, wantY: -2},
		{name: "Exponent", body: `{"x": 1e3, "y": 0}`, wantX: 1000},
		{name: "DuplicateLastWins", body: `{"x": 1, "x": 4, "y": 3}`, wantX: 4, wantY: 3},
		{name: "ExtraFields", body: `{"x": 1, "y": 2, "z": "abc"}`, wantX: 1, wantY: 2},
		{name: "StringNotInteger", body: `{"x": "abc", "y": 1}`, errField: "x", errIs: ErrSyntax},
		{name: "StringFloat", body: `{"x": 1, "y": "2.5"}`, errField: "y", errIs: ErrSyntax},
		{name: "Null", body: `{"x": null}`, errField: "x", errIs: ErrType},
		{name: "Array", body: `{"x": 1, "y": [1]}`, errField: "y", errIs: ErrType},
		{name: "Object", body: `{"x": {"v": 1}}`, errField: "x", errIs: ErrType},
		{name: "BigInteger", body: `{"x": 92233720368547758070}`, errField: "x", errIs: ErrRange},
		{name: "BigFloat", body: `{"x": 1e300}`, errField: "x", errIs: ErrRange},
		{name: "Empty", body: ``, malformed: true},
		{name: "Blank", body: "  \n", malformed: true},
		{name: "Invalid", body: `{"x": 1,`, malformed: true},
		{name: "FormEncoded", body: `x=1&y=2`, malformed: true},
		{name: "NotObject", body: `[1, 2]`, malformed: true},
		{name: "Scalar", body: `7`, malformed: true},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			x, y, err := JSONSource{Body: []byte(tc.body)}.Extract()
			switch {
			case tc.malformed:
				var merr *MalformedBodyError
				require.True(t, errors.As(err, &merr), "%v", err)
			case tc.errField != "":
				var perr *ParseError
				require.True(t, errors.As(err, &perr), "%v", err)
				assert.Equal(t, "json", perr.Source)
				assert.Equal(t, tc.errField, perr.Field)
				assert.True(t, errors.Is(err, tc.errIs), "%v", err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.wantX, x)
				assert.Equal(t, tc.wantY, y)
			}
		})
	}
}
