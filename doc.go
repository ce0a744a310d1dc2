/*
Package dbuscodec implements the DBus wire encoding format: a
signature-driven, little-endian, aligned binary codec for a fixed set of
primitive and aggregate types.

It does not implement the DBus message bus protocol itself (connecting
to a bus, method calls, signals) — only the marshal/unmarshal layer that
such a client would build on. See wireenc for the reflection-free core
(alignment, primitives, deferred-length message building, the decode
cursor) and this package for the reflect-based glue that walks Go values
against it.

Rules for encoding are as follows:

1. Any primitive Go type that has a direct equivalent in the wire format
is directly converted: all fixed-size integers except int (int8 decodes
permissively from a DBus int16, truncating, but has no direct encoding),
float64, bool and string.

2. Slices and maps are converted to arrays and dicts, respectively. An
empty slice still carries the padding its element type's alignment
would require were any element present.

3. Anonymous struct types are converted to a DBus struct "(...)". A
named struct type is converted as its SerializerPolicy says:
DefaultPolicy (also used when the policy is nil) makes it a property map
"a{sv}", the convention org.freedesktop.DBus.Properties and similar
introspectable APIs use; StronglyTypedPolicy makes it a DBus struct
"(...)". ObjectPath (o), Char (u) and Variant (v) have their own wire
formats; a Signature value is not encoded as g. Fields whose tag
contains dbus:"-" are skipped.

4. A nil pointer or nil interface{} encodes as the unit struct "()",
realizing an Option<T> convention without a dedicated wire type; any
other value of a pointer type encodes transparently as its pointee.

5. Trying to encode any other type (including plain int and uint)
returns an InvalidTypeError.

The rules for decoding are the reverse, except for interface{}
destinations: decoding into one produces Go's natural shape for
whatever is on the wire (numerics at their wire width, []any for
arrays, map[string]any for stringly-keyed dicts, []any for structs),
the same convention the teacher package used for decoding variants of
unknown shape.
*/
package dbuscodec

// BUG(mdlayher): Unix file descriptor passing is not implemented; file
// descriptor transfer belongs to the message-bus transport layer, not a
// standalone wire codec.

// BUG(mdlayher): The message bus protocol itself (connections, method
// calls, signal subscription) is out of scope for this package.
