package models

import "fmt"

// Index is the in-memory repository index: the primary and filelists
// records of every known package, both keyed by identity. It grows
// monotonically during a run; nothing ever removes an entry.
type Index struct {
	Primary   map[NEVR]*PrimaryPackage
	Filelists map[NEVR]*FilelistsPackage
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		Primary:   make(map[NEVR]*PrimaryPackage),
		Filelists: make(map[NEVR]*FilelistsPackage),
	}
}

// Len returns the number of packages with a primary record.
func (ix *Index) Len() int {
	return len(ix.Primary)
}

// Merge inserts or overwrites both records under key. The insertion is
// both-or-neither: a call that could leave only one of the pair behind
// is a programming error, so the arguments are validated before either
// map is touched.
func (ix *Index) Merge(key NEVR, primary *PrimaryPackage, filelists *FilelistsPackage) error {
	if key.Name == "" {
		return &SyncError{
			Type: ErrMalformedDocument,
			Err:  fmt.Errorf("package identity has an empty name"),
		}
	}
	if primary == nil || filelists == nil {
		return &SyncError{
			Type: ErrMalformedDocument,
			Path: key.String(),
			Err:  fmt.Errorf("merge requires both a primary and a filelists record"),
		}
	}
	ix.Primary[key] = primary
	ix.Filelists[key] = filelists
	return nil
}
