// Package hamlet provides tiny "to be, or not to be" styled test
// assertions: Specifications gives a positive and a negative asserter
// for the current test.
package hamlet

import (
	"reflect"
	"testing"
)

type Hamlet struct {
	fatal    *testing.T
	expected bool
}

// Specifications returns the (must, wont) assertion pair for given test.
func Specifications(t *testing.T) (*Hamlet, *Hamlet) {
	t.Helper()
	return &Hamlet{t, true}, &Hamlet{t, false}
}

func (it *Hamlet) fail(form string, details ...interface{}) {
	it.fatal.Helper()
	it.fatal.Errorf(form, details...)
}

func (it *Hamlet) True(value bool) {
	it.fatal.Helper()
	if value != it.expected {
		it.fail("Expected %v to be %v!", value, it.expected)
	}
}

func (it *Hamlet) Nil(value interface{}) {
	it.fatal.Helper()
	if isNil(value) != it.expected {
		it.fail("Expected %#v nility to be %v!", value, it.expected)
	}
}

func (it *Hamlet) Equal(expected, actual interface{}) {
	it.fatal.Helper()
	if reflect.DeepEqual(expected, actual) != it.expected {
		it.fail("Equality of %#v vs. %#v expected to be %v!", expected, actual, it.expected)
	}
}

func (it *Hamlet) Text(expected string, actual interface{}) {
	it.fatal.Helper()
	it.Equal(expected, toText(actual))
}

func (it *Hamlet) Panic(task func()) {
	it.fatal.Helper()
	defer func() {
		it.fatal.Helper()
		caught := recover()
		if (caught != nil) != it.expected {
			it.fail("Expected panic state %v, got %#v!", it.expected, caught)
		}
	}()
	task()
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	reflected := reflect.ValueOf(value)
	switch reflected.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return reflected.IsNil()
	}
	return false
}

func toText(value interface{}) string {
	switch actual := value.(type) {
	case string:
		return actual
	case error:
		return actual.Error()
	case interface{ String() string }:
		return actual.String()
	default:
		return ""
	}
}
