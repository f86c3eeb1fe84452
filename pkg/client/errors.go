package client

import (
	"errors"
	"fmt"
)

// ErrorClass represents a classification of fetch failures.
type ErrorClass string

const (
	// ErrorClassNetwork means the request could not complete.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassHTTP means the server answered with a non-2xx status.
	ErrorClassHTTP ErrorClass = "http"

	// ErrorClassParse means the body was not a valid record array.
	ErrorClassParse ErrorClass = "parse"
)

// FetchError describes a failed directory fetch.
type FetchError struct {
	Class      ErrorClass
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("directory %s error (status %d): %s: %v",
			e.Class, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("directory %s error (status %d): %s",
		e.Class, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ClassOf returns the class of a *FetchError anywhere in err's chain, or
// "" when there is none.
func ClassOf(err error) ErrorClass {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Class
	}
	return ""
}
