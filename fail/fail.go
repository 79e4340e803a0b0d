// Package fail converts deep failure conditions into normal error
// returns. Functions that want this behavior declare a named error
// result and defer fail.Around on it; fail.On and fail.Fast then
// short-circuit the rest of the function body.
package fail

import "fmt"

type wrapped struct {
	err error
}

func Around(err *error) {
	original := recover()
	if original == nil {
		return
	}
	wrap, ok := original.(*wrapped)
	if ok {
		*err = wrap.err
		return
	}
	panic(original)
}

func On(condition bool, form string, details ...interface{}) {
	if condition {
		panic(&wrapped{fmt.Errorf(form, details...)})
	}
}

func Fast(err error) {
	if err != nil {
		panic(&wrapped{err})
	}
}
