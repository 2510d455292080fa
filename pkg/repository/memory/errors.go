package memory

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned when the requested item does not exist
var ErrNotFound = goerr.New("not found")
