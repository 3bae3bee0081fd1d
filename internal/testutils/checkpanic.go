package testutils

// CheckPanic runs fun, captures any panic and reports whether one occurred.
// The panic argument itself is discarded.
//
// This function is only used in testing.
func CheckPanic(fun func()) (didPanic bool) {
	didPanic = true
	defer func() { _ = recover() }()
	fun()
	didPanic = false
	return
}
