package dbuscodec

import (
	"errors"
	"reflect"
)

// Store copies the values contained in src to dest, which must be a slice
// of pointers. It converts slices of interfaces from src to corresponding
// structs in dest, recursively. An error is returned if the lengths of src
// and dest, or the types of their elements, don't match. Adapted from the
// teacher's dbus.go Store, which this codec's decodeDynamic feeds exactly
// the []interface{}-shaped values Store expects from a "(...)" read into
// interface{} (an a{sv} read that way becomes a map[string]any instead).
func Store(src []interface{}, dest ...interface{}) error {
	if len(src) != len(dest) {
		return errors.New("dbuscodec.Store: length mismatch")
	}

	for i, v := range src {
		if reflect.TypeOf(dest[i]).Elem() == reflect.TypeOf(v) {
			reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
		} else if vs, ok := v.([]interface{}); ok {
			retv := reflect.ValueOf(dest[i]).Elem()
			if retv.Kind() != reflect.Struct {
				return errors.New("dbuscodec.Store: type mismatch")
			}
			t := retv.Type()
			ndest := make([]interface{}, 0, retv.NumField())
			for i := 0; i < retv.NumField(); i++ {
				field := t.Field(i)
				if field.PkgPath == "" && field.Tag.Get("dbus") != "-" {
					ndest = append(ndest, retv.Field(i).Addr().Interface())
				}
			}
			if len(vs) != len(ndest) {
				return errors.New("dbuscodec.Store: type mismatch")
			}
			if err := Store(vs, ndest...); err != nil {
				return errors.New("dbuscodec.Store: type mismatch")
			}
		} else {
			return errors.New("dbuscodec.Store: type mismatch")
		}
	}
	return nil
}
