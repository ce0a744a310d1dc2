package dbuscodec

// ObjectPath is a DBus object path, carried as its own string wrapper
// type (rather than plain string) so the reflect-based driver can give
// it a distinct signature ('o' instead of 's') the way the teacher does.
//
// The full object-path grammar (segments of [A-Za-z0-9_], no empty
// segments, leading '/', no trailing '/' except the root path alone) is
// a Non-goal of this codec: bus connections that mint object paths
// enforce that grammar before a path reaches the wire, and an object
// path is, as far as this codec cares, just a length- and
// NUL-terminator-checked string. A full grammar checker lived in the
// teacher (dbus.go's IsValid) but served its message-routing layer, not
// the wire codec; see DESIGN.md.
type ObjectPath string

// Valid reports whether o is non-empty and contains no NUL byte, the two
// properties the wire format itself depends on.
func (o ObjectPath) Valid() bool {
	if len(o) == 0 {
		return false
	}
	for i := 0; i < len(o); i++ {
		if o[i] == 0 {
			return false
		}
	}
	return true
}
