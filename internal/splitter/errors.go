package splitter

import "errors"

var (
	// ErrDocumentOpen means the source is missing, unreadable or not a valid PDF.
	ErrDocumentOpen = errors.New("cannot open source document")

	// ErrPattern means the identifier pattern does not compile or has no capture group.
	ErrPattern = errors.New("invalid identifier pattern")

	// ErrIO covers failures extracting, serializing or archiving a page.
	ErrIO = errors.New("page output failed")
)
