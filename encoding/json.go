package encoding

//
// a thin wrapper around Go's encoding/json for request and response
// bodies. decoding is strict: unknown fields, trailing data and type
// mismatches all come back as a *DecodeError. it also warns about
// exported struct fields that carry no json tag, since those end up on
// the wire under their Go name.
//

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"reflect"
	"sync"
)

var mu sync.Mutex
var errorCount int // for TestTag and TestDefault
var checked map[reflect.Type]bool

var (
	ErrEmpty        = errors.New("empty body")
	ErrTrailingData = errors.New("trailing data after JSON value")
)

// DecodeError is returned by Decode for any input that does not turn
// into exactly one value of the requested type.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed JSON: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Encoder

type Encoder struct {
	json *json.Encoder
}

func NewEncoder(w io.Writer) *Encoder {
	enc := &Encoder{
		json: json.NewEncoder(w),
	}
	enc.json.SetEscapeHTML(false)
	return enc
}

// Encode writes e as compact JSON followed by a newline.
func (enc *Encoder) Encode(e interface{}) error {
	checkValue(e)
	return enc.json.Encode(e)
}

// Decoder

type Decoder struct {
	json *json.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	dec := &Decoder{}
	dec.json = json.NewDecoder(r)
	dec.json.DisallowUnknownFields()
	return dec
}

// Decode reads exactly one JSON value into e, which must be a pointer.
// Anything but whitespace after that value is an error.
func (dec *Decoder) Decode(e interface{}) error {
	checkValue(e)
	checkDefaultValue(e)
	if err := dec.json.Decode(e); err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrEmpty
		}
		return &DecodeError{Err: err}
	}
	if _, err := dec.json.Token(); !errors.Is(err, io.EOF) {
		return &DecodeError{Err: ErrTrailingData}
	}
	return nil
}

func Marshal(e interface{}) ([]byte, error) {
	checkValue(e)
	return json.Marshal(e)
}

func Unmarshal(data []byte, e interface{}) error {
	return NewDecoder(bytes.NewReader(data)).Decode(e)
}

func checkValue(value interface{}) {
	if value == nil {
		return
	}
	checkType(reflect.TypeOf(value))
}

func checkType(t reflect.Type) {
	k := t.Kind()

	mu.Lock()
	// only complain once, and avoid recursion.
	if checked == nil {
		checked = map[reflect.Type]bool{}
	}
	if checked[t] {
		mu.Unlock()
		return
	}
	checked[t] = true
	mu.Unlock()

	switch k {
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			if _, ok := f.Tag.Lookup("json"); !ok && !f.Anonymous {
				log.Printf("encoding warning: field %v of %v has no json tag and goes on the wire as %q\n",
					f.Name, t.Name(), f.Name)
				mu.Lock()
				errorCount += 1
				mu.Unlock()
			}
			checkType(f.Type)
		}
		return
	case reflect.Slice, reflect.Array, reflect.Ptr:
		checkType(t.Elem())
		return
	case reflect.Map:
		checkType(t.Elem())
		checkType(t.Key())
		return
	default:
		return
	}
}

// warn if the target already holds non-default values. encoding/json
// leaves fields that are absent from the input untouched, so decoding
// into a reused record silently keeps the old values.
func checkDefaultValue(value interface{}) {
	if value == nil {
		return
	}
	checkDefaultHelper(reflect.ValueOf(value), 1, "")
}

func checkDefaultHelper(value reflect.Value, depth int, name string) {
	if depth > 3 {
		return
	}

	t := value.Type()
	k := t.Kind()

	switch k {
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			vv := value.Field(i)
			name1 := t.Field(i).Name
			if name != "" {
				name1 = name + "." + name1
			}
			checkDefaultHelper(vv, depth+1, name1)
		}
		return
	case reflect.Ptr:
		if value.IsNil() {
			return
		}
		checkDefaultHelper(value.Elem(), depth+1, name)
		return
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.String:
		if !value.IsZero() {
			mu.Lock()
			if errorCount < 1 {
				what := name
				if what == "" {
					what = t.Name()
				}
				log.Printf("encoding warning: decoding into a non-default variable/field %v keeps values missing from the input\n",
					what)
			}
			errorCount += 1
			mu.Unlock()
		}
	default:
		return
	}
}
