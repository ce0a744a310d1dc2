package dbuscodec

// Char is a Unicode scalar value, wire-encoded as u32 (§3, §4.5). It is
// a distinct wrapper type rather than plain rune/int32 because rune is
// itself an alias for int32 in Go: without a dedicated type there would
// be no way for the reflect-based driver to tell "this field is a
// signed 32-bit integer" (signature i) apart from "this field is a
// character" (signature u) — the two are the same Go Kind.
type Char rune
