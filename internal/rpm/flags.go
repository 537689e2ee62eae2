package rpm

// Dependency sense bits from rpmlib's rpmsenseFlags.
const (
	senseLess    = 0x02
	senseGreater = 0x04
	senseEqual   = 0x08

	// Mask rpm uses to decide whether a requires entry is an install
	// prerequisite (the "pre" attribute of the schema).
	sensePrereqMask = 0x1100

	// Dependencies on rpmlib itself; never published in metadata.
	senseRpmlib = 1 << 24
)

// FlagsToString maps the comparison sub-field of a dependency bitmask
// to the schema's flag vocabulary. Bits outside the comparison
// sub-field are ignored.
func FlagsToString(flags int) string {
	switch flags & (senseLess | senseGreater | senseEqual) {
	case senseEqual:
		return "EQ"
	case senseLess:
		return "LT"
	case senseLess | senseEqual:
		return "LE"
	case senseGreater:
		return "GT"
	case senseGreater | senseEqual:
		return "GE"
	default:
		return ""
	}
}

// IsPreReq reports whether a requires entry must be satisfied before
// the package's install scripts run.
func IsPreReq(flags int) bool {
	return flags&sensePrereqMask != 0
}

// IsRpmlib reports whether a requires entry is an internal rpmlib
// feature dependency. Such entries never enter the model.
func IsRpmlib(flags int) bool {
	return flags&senseRpmlib != 0
}
