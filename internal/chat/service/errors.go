package service

import "errors"

var (
	ErrEmptyQuery    = errors.New("query must not be empty")
	ErrNotAuthorised = errors.New("not authorised")
)
