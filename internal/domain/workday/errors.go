package workday

import "errors"

var (
	ErrNotFound  = errors.New("workday not found")
	ErrDuplicate = errors.New("workday already recorded for this employee and date")
)
