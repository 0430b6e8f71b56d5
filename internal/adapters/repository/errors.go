package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrConnect = errors.New("database connect failed")
	ErrPing    = errors.New("database ping failed")
	ErrMigrate = errors.New("migration failed")
)
