package pathfind

import "errors"

var (
	// ErrMissingParameter is returned before any work when the grid, start
	// or end node is absent.
	ErrMissingParameter = errors.New("missing required parameters")

	// ErrIterationBound is recorded in Result.Warnings when the search loop
	// settles rows*cols nodes without terminating. The run continues with
	// path reconstruction.
	ErrIterationBound = errors.New("maximum iterations exceeded")

	// ErrPathBound is recorded in Result.Warnings when the predecessor chain
	// is longer than rows*cols. The partial path is still animated.
	ErrPathBound = errors.New("path reconstruction exceeded maximum length")

	// ErrUnknownAlgorithm is returned by ParseAlgorithm and Run for an
	// unrecognized algorithm identifier.
	ErrUnknownAlgorithm = errors.New("algorithm not implemented")

	// ErrBusy is returned by Runner.Start while another run is active.
	ErrBusy = errors.New("a search is already running")
)
