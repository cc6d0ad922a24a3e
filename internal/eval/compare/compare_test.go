package compare

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_Test(t *testing.T) {
	tests := []struct {
		name  string
		opts  NumberOptions
		value any
		want  bool
	}{
		{name: "no constraints accepts any number", opts: NumberOptions{}, value: -12.5, want: true},
		{name: "no constraints rejects strings", opts: NumberOptions{}, value: "42", want: false},
		{name: "no constraints rejects nil", opts: NumberOptions{}, value: nil, want: false},
		{name: "min inclusive", opts: NumberOptions{Min: Bound(37)}, value: 37, want: true},
		{name: "below min", opts: NumberOptions{Min: Bound(72)}, value: 42, want: false},
		{name: "max inclusive", opts: NumberOptions{Max: Bound(10)}, value: uint8(10), want: true},
		{name: "above max", opts: NumberOptions{Max: Bound(10)}, value: int64(11), want: false},
		{name: "range", opts: NumberOptions{Min: Bound(1), Max: Bound(2)}, value: float32(1.5), want: true},
		{name: "NaN fails bounds", opts: NumberOptions{Min: Bound(0)}, value: math.NaN(), want: false},
		{name: "integer accepts whole float", opts: NumberOptions{Integer: true}, value: 4.0, want: true},
		{name: "integer rejects fraction", opts: NumberOptions{Integer: true}, value: 4.2, want: false},
		{name: "integer rejects infinity", opts: NumberOptions{Integer: true}, value: math.Inf(1), want: false},
		{name: "finite rejects NaN", opts: NumberOptions{Finite: true}, value: math.NaN(), want: false},
		{name: "finite rejects infinity", opts: NumberOptions{Finite: true}, value: math.Inf(-1), want: false},
		{name: "finite accepts number", opts: NumberOptions{Finite: true}, value: 3, want: true},
		{name: "infinity passes unconstrained", opts: NumberOptions{}, value: math.Inf(1), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewNumber(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.Test(tt.value))
		})
	}
}

func TestNewNumber_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts NumberOptions
	}{
		{name: "min greater than max", opts: NumberOptions{Min: Bound(5), Max: Bound(1)}},
		{name: "NaN min", opts: NumberOptions{Min: Bound(math.NaN())}},
		{name: "NaN max", opts: NumberOptions{Max: Bound(math.NaN())}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNumber(tt.opts)
			assert.Error(t, err)
			assert.Panics(t, func() { MustNumber(tt.opts) })
		})
	}
}

func TestString_Test(t *testing.T) {
	tests := []struct {
		name  string
		opts  StringOptions
		value any
		want  bool
	}{
		{name: "no constraints accepts empty", opts: StringOptions{}, value: "", want: true},
		{name: "rejects numbers", opts: StringOptions{}, value: 42, want: false},
		{name: "min length", opts: StringOptions{MinLen: Length(3)}, value: "abc", want: true},
		{name: "too short", opts: StringOptions{MinLen: Length(4)}, value: "abc", want: false},
		{name: "max length", opts: StringOptions{MaxLen: Length(3)}, value: "abcd", want: false},
		{name: "length counts runes", opts: StringOptions{MaxLen: Length(2)}, value: "éé", want: true},
		{name: "pattern matches anywhere", opts: StringOptions{Pattern: "b+"}, value: "abbc", want: true},
		{name: "anchored pattern", opts: StringOptions{Pattern: "^[a-z]+$"}, value: "abc1", want: false},
		{name: "all constraints", opts: StringOptions{MinLen: Length(2), MaxLen: Length(5), Pattern: "^r"}, value: "route", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewString(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Test(tt.value))
		})
	}
}

func TestNewString_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts StringOptions
	}{
		{name: "negative min length", opts: StringOptions{MinLen: Length(-1)}},
		{name: "negative max length", opts: StringOptions{MaxLen: Length(-2)}},
		{name: "min greater than max", opts: StringOptions{MinLen: Length(5), MaxLen: Length(1)}},
		{name: "bad pattern", opts: StringOptions{Pattern: "("}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewString(tt.opts)
			assert.Error(t, err)
			assert.Panics(t, func() { MustString(tt.opts) })
		})
	}
}
