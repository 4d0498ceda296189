package ecs

import "github.com/rotisserie/eris"

// ErrNoSuchEntity is returned by the checked operations when a handle is not
// live.
var ErrNoSuchEntity = eris.New("no such entity")
