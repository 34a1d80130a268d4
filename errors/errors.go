// Package errors provides an error type that can be declared as a constant.
package errors

// Error is a string that satisfies the error interface,
// so sentinel errors can be compared with == and declared with const.
type Error string

func (e Error) Error() string { return string(e) }
