package notebookview

import (
	"errors"

	"github.com/jpalmerr/notebookview/internal/server"
)

var (
	// ErrNotFound means the input notebook does not exist.
	ErrNotFound = errors.New("notebook not found")

	// ErrParse means the notebook could not be parsed or rendered.
	ErrParse = errors.New("failed to parse notebook")

	// ErrIO means a file could not be read or the output could not be written.
	ErrIO = errors.New("i/o error")

	// ErrAddressInUse means the server port is already bound.
	ErrAddressInUse = server.ErrAddressInUse
)
