package database

import "errors"

var (
	// ErrDatabaseNotFound is returned by Open when the database file is
	// missing and creation was not requested.
	ErrDatabaseNotFound = errors.New("database not found")

	// ErrAnalysisNotFound is returned when no stored analysis matches.
	ErrAnalysisNotFound = errors.New("analysis not found")
)
