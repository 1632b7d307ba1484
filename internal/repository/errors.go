package repository

import "errors"

// ErrDuplicateName is returned when a dish name is already taken.
var ErrDuplicateName = errors.New("a dish with this name already exists")
