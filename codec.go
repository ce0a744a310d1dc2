package dbuscodec

import (
	"reflect"

	"github.com/mdlayher/dbuscodec/wireenc"
)

// Message pairs encoded wire bytes with the signature that describes
// their shape, mirroring the teacher's message.go Body/Signature pairing
// without any of its header/transport framing, which is out of scope for
// a standalone wire codec (see SPEC_FULL.md Non-goals).
type Message struct {
	Data      []byte
	Signature Signature
}

// Marshal encodes v under policy and returns the resulting Message.
func Marshal(v any, policy SerializerPolicy) (Message, error) {
	if policy == nil {
		policy = DefaultPolicy
	}
	e := wireenc.NewEncoder(policy)
	if err := marshalValue(e, reflect.ValueOf(v), 0); err != nil {
		return Message{}, err
	}
	sig, err := ParseSignature(e.Signature())
	if err != nil {
		return Message{}, err
	}
	return Message{Data: e.Bytes(), Signature: sig}, nil
}

// Unmarshal decodes data, interpreted under sig, into v, which must be a
// non-nil pointer. A read past the end of data is returned as a
// wireenc.IndexOutOfBoundsError.
func Unmarshal(data []byte, sig Signature, v any, policy SerializerPolicy) (err error) {
	if policy == nil {
		policy = DefaultPolicy
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return InvalidTypeError{Type: rv.Type()}
	}
	defer func() {
		if r := recover(); r != nil {
			oob, ok := r.(wireenc.IndexOutOfBoundsError)
			if !ok {
				panic(r)
			}
			err = oob
		}
	}()
	d := wireenc.NewDecoder(data, sig.String())
	if err := unmarshalValue(d, rv.Elem(), 0, policy); err != nil {
		return err
	}
	return d.Finish()
}
