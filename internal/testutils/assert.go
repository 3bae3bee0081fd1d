// Package testutils provides small helpers shared by the package-level tests.
package testutils

import (
	"runtime/debug"
	"testing"
)

// Assert(condition) panics if condition is false; Assert(condition, error) panics with panic(error).
func Assert(condition bool, err ...interface{}) {
	if len(err) > 1 {
		panic("heightbounds / testutils: Assert can only handle 1 extra error argument")
	}
	if !condition {
		if len(err) == 0 {
			panic("heightbounds / testutils: assertion failed")
		} else {
			panic(err[0])
		}
	}
}

// FatalUnless aborts the test with a stack trace unless condition holds.
func FatalUnless(t *testing.T, condition bool, formatstring string, args ...any) {
	if !condition {
		debug.PrintStack()
		t.Fatalf(formatstring, args...)
	}
}
