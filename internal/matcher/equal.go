package matcher

import (
	"math"
	"reflect"
)

// sameValue reports whether two pattern leaves are identical.
//
// Numbers compare by value across Go's numeric kinds, NaN equals NaN and
// +0 differs from -0. Maps and slices compare by reference and functions
// never compare equal. Arrays and structs compare element by element under
// the same rules, so a struct holding a slice never panics.
func sameValue(left, right any) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}

	if leftInt, ok := asInt64(left); ok {
		if rightInt, ok := asInt64(right); ok {
			return leftInt == rightInt
		}
		if rightUint, ok := asUint64(right); ok {
			return leftInt >= 0 && uint64(leftInt) == rightUint
		}
		if rightFloat, ok := asFloat64(right); ok {
			return floatEqualsInt64(rightFloat, leftInt)
		}
		return false
	}

	if leftUint, ok := asUint64(left); ok {
		if rightUint, ok := asUint64(right); ok {
			return leftUint == rightUint
		}
		if rightInt, ok := asInt64(right); ok {
			return rightInt >= 0 && leftUint == uint64(rightInt)
		}
		if rightFloat, ok := asFloat64(right); ok {
			return floatEqualsUint64(rightFloat, leftUint)
		}
		return false
	}

	if leftFloat, ok := asFloat64(left); ok {
		if rightFloat, ok := asFloat64(right); ok {
			return sameFloat(leftFloat, rightFloat)
		}
		if rightInt, ok := asInt64(right); ok {
			return floatEqualsInt64(leftFloat, rightInt)
		}
		if rightUint, ok := asUint64(right); ok {
			return floatEqualsUint64(leftFloat, rightUint)
		}
		return false
	}

	return sameReflect(reflect.ValueOf(left), reflect.ValueOf(right))
}

// sameReflect applies the sameValue rules below the top level: arrays and
// structs compare element by element, interface fields by their dynamic
// value. Values of different types never match here.
func sameReflect(left, right reflect.Value) bool {
	if left.Type() != right.Type() {
		return false
	}

	switch left.Kind() {
	case reflect.Bool:
		return left.Bool() == right.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return left.Int() == right.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return left.Uint() == right.Uint()
	case reflect.Float32, reflect.Float64:
		return sameFloat(left.Float(), right.Float())
	case reflect.Complex64, reflect.Complex128:
		l, r := left.Complex(), right.Complex()
		return sameFloat(real(l), real(r)) && sameFloat(imag(l), imag(r))
	case reflect.String:
		return left.String() == right.String()
	case reflect.Map:
		return left.UnsafePointer() == right.UnsafePointer()
	case reflect.Slice:
		return left.UnsafePointer() == right.UnsafePointer() && left.Len() == right.Len()
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return left.Pointer() == right.Pointer()
	case reflect.Func:
		return false
	case reflect.Interface:
		if left.IsNil() || right.IsNil() {
			return left.IsNil() && right.IsNil()
		}
		return sameReflect(left.Elem(), right.Elem())
	case reflect.Array:
		for i := 0; i < left.Len(); i++ {
			if !sameReflect(left.Index(i), right.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Struct:
		for i := 0; i < left.NumField(); i++ {
			if !sameReflect(left.Field(i), right.Field(i)) {
				return false
			}
		}
		return true
	}
	return false
}

// truthy mirrors the loose truthiness used for selector results, selection
// targets and result entries: nil, zero values and NaN are falsy.
func truthy(value any) bool {
	if value == nil {
		return false
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.Func, reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface, reflect.Chan:
		return !v.IsNil()
	}
	return !v.IsZero()
}

func sameFloat(left, right float64) bool {
	if math.IsNaN(left) || math.IsNaN(right) {
		return math.IsNaN(left) && math.IsNaN(right)
	}
	return left == right && math.Signbit(left) == math.Signbit(right)
}

func asInt64(value any) (int64, bool) {
	switch number := value.(type) {
	case int:
		return int64(number), true
	case int8:
		return int64(number), true
	case int16:
		return int64(number), true
	case int32:
		return int64(number), true
	case int64:
		return number, true
	default:
		return 0, false
	}
}

func asUint64(value any) (uint64, bool) {
	switch number := value.(type) {
	case uint:
		return uint64(number), true
	case uint8:
		return uint64(number), true
	case uint16:
		return uint64(number), true
	case uint32:
		return uint64(number), true
	case uint64:
		return number, true
	case uintptr:
		return uint64(number), true
	default:
		return 0, false
	}
}

func asFloat64(value any) (float64, bool) {
	switch number := value.(type) {
	case float32:
		return float64(number), true
	case float64:
		return number, true
	default:
		return 0, false
	}
}

// floatEqualsInt64 compares a float with an integer. Integers carry no sign
// on zero, so they equal +0 only.
func floatEqualsInt64(left float64, right int64) bool {
	if !isWholeFinite(left) || (left == 0 && math.Signbit(left)) {
		return false
	}
	if left < math.MinInt64 || left >= math.MaxInt64 {
		return false
	}

	converted := int64(left)
	return float64(converted) == left && converted == right
}

func floatEqualsUint64(left float64, right uint64) bool {
	if !isWholeFinite(left) || math.Signbit(left) {
		return false
	}
	if left >= math.MaxUint64 {
		return false
	}

	converted := uint64(left)
	return float64(converted) == left && converted == right
}

func isWholeFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0) && math.Trunc(value) == value
}
