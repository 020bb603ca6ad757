package graph

import "reflect"

// Same reports whether a and b are the same value.
//
// nil only matches nil. Maps, pointers, channels and functions match when
// they point to the same object; slices additionally need the same length.
// Other values match when they have the same type and compare equal with ==.
// Values of a type that cannot be compared never match.
//
// Distinct zero-size allocations may share an address in Go, so their
// identity is not observable. Empty slices of one type therefore always
// match, nil or not, and so do non-nil pointers to zero-size values:
// writing a fresh []int{} over an empty []int state is not a change.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}

	switch ta.Kind() {
	case reflect.Pointer:
		va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
		if ta.Elem().Size() == 0 {
			return va.IsNil() == vb.IsNil()
		}
		return va.Pointer() == vb.Pointer()
	case reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	case reflect.Slice:
		va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
		if va.Len() == 0 && vb.Len() == 0 {
			return true
		}
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	if !ta.Comparable() {
		return false
	}
	return equal(a, b)
}

// equal compares with == and treats a runtime comparison panic (an interface
// field holding an uncomparable value) as a mismatch.
func equal(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
