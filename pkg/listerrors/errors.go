package listerrors

import (
	"errors"
)

var (
	// ErrInvalidArguments indicates missing or invalid command line arguments.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrFetch indicates the repository index could not be retrieved.
	ErrFetch = errors.New("fetch index")

	// ErrParse indicates the repository index document is malformed.
	ErrParse = errors.New("parse index")

	// ErrRender indicates the output could not be formatted.
	ErrRender = errors.New("render")

	// ErrOutput indicates formatted output could not be written to stdout or
	// the pager.
	ErrOutput = errors.New("write output")
)
