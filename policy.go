package dbuscodec

import "github.com/mdlayher/dbuscodec/wireenc"

// StructStyle and SerializerPolicy re-export wireenc's policy types so
// callers of this package rarely need to import wireenc directly; the
// policy machinery itself lives in wireenc since wireenc.Encoder is what
// actually consults it mid-encode.
type StructStyle = wireenc.StructStyle

const (
	StronglyTyped = wireenc.StronglyTyped
	Dict          = wireenc.Dict
)

type SerializerPolicy = wireenc.SerializerPolicy

// DefaultPolicy treats every named struct as a property map (a{sv}).
var DefaultPolicy = wireenc.DefaultPolicy

// StronglyTypedPolicy treats every named struct as a DBus struct "(...)".
var StronglyTypedPolicy = wireenc.StronglyTypedPolicy

// PerNamePolicy mixes the two built-in policies, keyed by Go type name.
type PerNamePolicy = wireenc.PerNamePolicy
