package compare

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// NumberOptions constrains numeric values. Bounds are inclusive.
type NumberOptions struct {
	Min     *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Integer bool     `json:"integer,omitempty" yaml:"integer,omitempty"`
	Finite  bool     `json:"finite,omitempty" yaml:"finite,omitempty"`
}

// StringOptions constrains string values. Lengths count runes; Pattern is an
// RE2 expression matched anywhere in the value.
type StringOptions struct {
	MinLen  *int   `json:"minLen,omitempty" yaml:"minLen,omitempty" validate:"omitempty,gte=0"`
	MaxLen  *int   `json:"maxLen,omitempty" yaml:"maxLen,omitempty" validate:"omitempty,gte=0"`
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// Number tests numeric values against NumberOptions.
type Number struct {
	opts NumberOptions
}

// NewNumber creates a Number comparator
func NewNumber(opts NumberOptions) (*Number, error) {
	if opts.Min != nil && math.IsNaN(*opts.Min) {
		return nil, errors.New("invalid number options: min is NaN")
	}
	if opts.Max != nil && math.IsNaN(*opts.Max) {
		return nil, errors.New("invalid number options: max is NaN")
	}
	if opts.Min != nil && opts.Max != nil && *opts.Min > *opts.Max {
		return nil, fmt.Errorf("invalid number options: min %v is greater than max %v", *opts.Min, *opts.Max)
	}

	return &Number{opts: opts}, nil
}

// MustNumber is like NewNumber but panics on invalid options
func MustNumber(opts NumberOptions) *Number {
	n, err := NewNumber(opts)
	if err != nil {
		panic(err)
	}
	return n
}

// Test reports whether value is a number satisfying the options
func (n *Number) Test(value any) bool {
	f, ok := toFloat64(value)
	if !ok {
		return false
	}

	finite := !math.IsNaN(f) && !math.IsInf(f, 0)
	if n.opts.Finite && !finite {
		return false
	}
	if n.opts.Integer && (!finite || math.Trunc(f) != f) {
		return false
	}
	if n.opts.Min != nil && !(f >= *n.opts.Min) {
		return false
	}
	if n.opts.Max != nil && !(f <= *n.opts.Max) {
		return false
	}
	return true
}

// String tests string values against StringOptions.
type String struct {
	opts    StringOptions
	pattern *regexp.Regexp
}

// NewString creates a String comparator
func NewString(opts StringOptions) (*String, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid string options: %w", err)
	}
	if opts.MinLen != nil && opts.MaxLen != nil && *opts.MinLen > *opts.MaxLen {
		return nil, fmt.Errorf("invalid string options: minLen %d is greater than maxLen %d", *opts.MinLen, *opts.MaxLen)
	}

	s := &String{opts: opts}
	if opts.Pattern != "" {
		re, err := regexp.Compile(opts.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid string options: %w", err)
		}
		s.pattern = re
	}
	return s, nil
}

// MustString is like NewString but panics on invalid options
func MustString(opts StringOptions) *String {
	s, err := NewString(opts)
	if err != nil {
		panic(err)
	}
	return s
}

// Test reports whether value is a string satisfying the options
func (s *String) Test(value any) bool {
	str, ok := value.(string)
	if !ok {
		return false
	}

	length := utf8.RuneCountInString(str)
	if s.opts.MinLen != nil && length < *s.opts.MinLen {
		return false
	}
	if s.opts.MaxLen != nil && length > *s.opts.MaxLen {
		return false
	}
	if s.pattern != nil && !s.pattern.MatchString(str) {
		return false
	}
	return true
}

// Bound returns a pointer to v, for NumberOptions literals.
func Bound(v float64) *float64 {
	return &v
}

// Length returns a pointer to n, for StringOptions literals.
func Length(n int) *int {
	return &n
}

func toFloat64(value any) (float64, bool) {
	switch number := value.(type) {
	case int:
		return float64(number), true
	case int8:
		return float64(number), true
	case int16:
		return float64(number), true
	case int32:
		return float64(number), true
	case int64:
		return float64(number), true
	case uint:
		return float64(number), true
	case uint8:
		return float64(number), true
	case uint16:
		return float64(number), true
	case uint32:
		return float64(number), true
	case uint64:
		return float64(number), true
	case float32:
		return float64(number), true
	case float64:
		return number, true
	default:
		return 0, false
	}
}
