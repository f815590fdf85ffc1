package gatekeeper

import "errors"

var (
	ErrNotFound     = errors.New("project not found")
	ErrUnauthorized = errors.New("requester is not a project member")
	ErrInvalidInput = errors.New("invalid input")
)
