// Package codec turns payload text into Go values and back.
//
// The router never decodes payloads. Handlers that want structured
// data use a Codec, usually through message.Decode and message.NewJSON.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// A Codec converts values to payload bytes and payload bytes to values.
type Codec interface {
	Encode(v interface{}) ([]byte, error)
	Decode(data []byte, target interface{}) error
}

// JSON returns the codec used for JSON payloads.
func JSON() Codec {
	return jsonCodec{}
}

// String returns a codec leaving payloads untouched. It encodes
// strings, byte slices, stringers and errors, and decodes into
// *string or *[]byte.
func String() Codec {
	return rawCodec{}
}

type jsonCodec struct{}

func (jsonCodec) Encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Decode(data []byte, target interface{}) error {
	return json.Unmarshal(data, target)
}

type rawCodec struct{}

func (rawCodec) Encode(v interface{}) ([]byte, error) {
	switch t := v.(type) {
	case string:
		return []byte(t), nil
	case []byte:
		return t, nil
	case fmt.Stringer:
		return []byte(t.String()), nil
	case error:
		return []byte(t.Error()), nil
	}
	return nil, errors.Errorf("cannot use %T as a raw payload", v)
}

func (rawCodec) Decode(data []byte, target interface{}) error {
	switch t := target.(type) {
	case *string:
		*t = string(data)
	case *[]byte:
		*t = append((*t)[:0], data...)
	default:
		return errors.Errorf("cannot decode a raw payload into %T", target)
	}
	return nil
}
