package domain

import "errors"

var (
	// ErrNotFound signals a path that matches no route.
	ErrNotFound = errors.New("not found")
	// ErrWordNotFound signals that no word carries the requested identifier.
	ErrWordNotFound = errors.New("word not found")
	// ErrInvalidQuery signals an empty or undecodable lookup parameter.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidDictionary signals a dictionary file that cannot be parsed into words.
	ErrInvalidDictionary = errors.New("invalid dictionary")
)
