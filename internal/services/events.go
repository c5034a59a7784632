package services

import "time"

// Event is anything a worker reports back to the coordinator. Every event
// carries the scan generation it belongs to so results from a superseded
// scan can be discarded on arrival.
type Event interface {
	EventGen() uint64
}

type ScanFound struct {
	Gen     uint64
	Path    string
	Pattern string
	// ModTime is the last change of the directory containing the match,
	// a staleness signal for the project the match belongs to.
	ModTime time.Time
}

type ScanError struct {
	Gen     uint64
	Path    string
	Message string
}

type ScanCompleted struct {
	Gen uint64
}

type SizeComputed struct {
	Gen   uint64
	Path  string
	Bytes int64
}

type SizeError struct {
	Gen     uint64
	Path    string
	Message string
}

type DeleteStarted struct {
	Gen  uint64
	Path string
}

type DeleteSucceeded struct {
	Gen  uint64
	Path string
}

type DeleteFailed struct {
	Gen     uint64
	Path    string
	Message string
}

func (e ScanFound) EventGen() uint64       { return e.Gen }
func (e ScanError) EventGen() uint64       { return e.Gen }
func (e ScanCompleted) EventGen() uint64   { return e.Gen }
func (e SizeComputed) EventGen() uint64    { return e.Gen }
func (e SizeError) EventGen() uint64       { return e.Gen }
func (e DeleteStarted) EventGen() uint64   { return e.Gen }
func (e DeleteSucceeded) EventGen() uint64 { return e.Gen }
func (e DeleteFailed) EventGen() uint64    { return e.Gen }
