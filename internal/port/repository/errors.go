package repository

import "errors"

var (
	ErrNotFound               = errors.New("record not found")
	ErrDuplicateContactNumber = errors.New("contact number already exists")
)
