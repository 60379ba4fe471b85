package org

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrNameTaken = errors.New("name already exists")
	ErrInUse     = errors.New("record is referenced by employees")
)
