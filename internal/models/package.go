package models

// Version is the epoch/version/release triple of an rpm package or
// dependency entry. Fields sourced from a document or header that omits
// them stay null; only the textual codec substitutes a default epoch.
type Version struct {
	Epoch NullString
	Ver   NullString
	Rel   NullString
}

// NEVR is the (name, epoch, release, version) identity of a package
// record. Two records sharing a NEVR are the same logical package.
type NEVR struct {
	Name  string
	Epoch NullString
	Rel   NullString
	Ver   NullString
}

// NEVROf builds the identity key for a named package at a version.
func NEVROf(name string, v Version) NEVR {
	return NEVR{Name: name, Epoch: v.Epoch, Rel: v.Rel, Ver: v.Ver}
}

// String renders the identity for log messages.
func (k NEVR) String() string {
	s := k.Name
	if k.Epoch.Valid {
		s += "-" + k.Epoch.String + ":"
	} else {
		s += "-"
	}
	return s + k.Ver.Or("") + "-" + k.Rel.Or("")
}

// FileType classifies a manifest entry.
type FileType int

const (
	FileTypeFile FileType = iota
	FileTypeDir
)

// String returns the schema's type attribute value.
func (t FileType) String() string {
	if t == FileTypeDir {
		return "dir"
	}
	return "file"
}

// FileEntry is one entry of a package's file manifest.
type FileEntry struct {
	Name string
	Type FileType
}

// DependencyKey identifies one entry inside a per-package dependency
// mapping. Duplicates by this key overwrite.
type DependencyKey struct {
	Name  string
	Epoch NullString
	Rel   NullString
	Ver   NullString
}

// Dependency is one provides/requires/obsoletes relation. Pre is only
// ever set on requires entries.
type Dependency struct {
	Name  string
	Epoch NullString
	Rel   NullString
	Ver   NullString
	Flags NullString
	Pre   NullString
}

// Key returns the mapping key for this entry.
func (d Dependency) Key() DependencyKey {
	return DependencyKey{Name: d.Name, Epoch: d.Epoch, Rel: d.Rel, Ver: d.Ver}
}

// PrimaryPackage is the descriptive metadata record of one package, as
// held by the primary document.
type PrimaryPackage struct {
	Name        string
	Arch        string
	Version     Version
	Checksum    string
	Summary     string
	Description string
	Packager    NullString
	URL         string
	FileTime    string
	BuildTime   string
	Location    string

	License   NullString
	Vendor    NullString
	Group     NullString
	Buildhost NullString
	Sourcerpm NullString

	// Byte range of the header inside the archive. Only the structured
	// document carries these; records derived from an archive leave
	// them null.
	HeaderStart NullString
	HeaderEnd   NullString

	Provides  map[DependencyKey]Dependency
	Requires  map[DependencyKey]Dependency
	Obsoletes map[DependencyKey]Dependency

	Files []FileEntry
}

// FilelistsPackage is the file manifest record of one package. PkgID
// cross-references the primary record's checksum.
type FilelistsPackage struct {
	PkgID   string
	Name    string
	Arch    string
	Version Version
	Files   []FileEntry
}
