// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// auction engine and handlers to distinguish between different failure
// scenarios without string matching. For example, ErrItemNotFound maps
// to an HTTP 404 while ErrTeamExists maps to a 409.
package repository

import "errors"

// ErrItemNotFound is returned when a lookup by item id matches no row.
var ErrItemNotFound = errors.New("item not found")

// ErrTeamNotFound is returned when a lookup by team name matches no row.
var ErrTeamNotFound = errors.New("team not found")

// ErrTeamExists is returned when creating a team whose name is already
// taken. Handlers should translate this into an HTTP 409 response.
var ErrTeamExists = errors.New("team already exists")
