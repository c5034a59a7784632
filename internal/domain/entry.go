package domain

import "time"

type SizeState int

const (
	SizePending SizeState = iota
	SizeComputing
	SizeReady
	SizeFailed
)

type DeletionStatus int

const (
	StatusNormal DeletionStatus = iota
	StatusDeleting
	StatusDeleted
	StatusFailed
)

func (s DeletionStatus) String() string {
	switch s {
	case StatusDeleting:
		return "deleting"
	case StatusDeleted:
		return "deleted"
	case StatusFailed:
		return "failed"
	default:
		return "normal"
	}
}

// Entry is one discovered directory and everything derived from it. The
// coordinator is the only writer; everyone else works on value copies.
type Entry struct {
	Path      string
	Pattern   string
	SizeBytes int64
	SizeState SizeState
	SizeErr   string
	Selected  bool
	Status    DeletionStatus
	StatusErr string
	FoundAt   time.Time
	// LastModified is the mtime of the match's parent directory. Zero when
	// the parent could not be read.
	LastModified time.Time
}

// SizeKnown reports whether the size walk finished successfully.
func (e Entry) SizeKnown() bool {
	return e.SizeState == SizeReady
}

// Deletable reports whether a delete may be started for this entry.
func (e Entry) Deletable() bool {
	return e.Status == StatusNormal || e.Status == StatusFailed
}
