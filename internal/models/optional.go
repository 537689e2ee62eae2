package models

// NullString is an optional string value. The zero value is null.
//
// Repodata attributes distinguish an absent attribute from an empty one,
// and identity keys built from them must compare by value, so a pointer
// is not usable here.
type NullString struct {
	String string
	Valid  bool
}

// NewNullString returns a non-null NullString holding s.
func NewNullString(s string) NullString {
	return NullString{String: s, Valid: true}
}

// NullStringFromPtr converts a pointer into a NullString, mapping nil to null.
func NullStringFromPtr(p *string) NullString {
	if p == nil {
		return NullString{}
	}
	return NullString{String: *p, Valid: true}
}

// Or returns the held value, or def when null.
func (n NullString) Or(def string) string {
	if n.Valid {
		return n.String
	}
	return def
}
