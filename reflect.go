package aglio

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

var (
	marshalerType   = reflect.TypeOf((*Marshaler)(nil)).Elem()
	unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	charType        = reflect.TypeOf(Char(0))
	uint128Type     = reflect.TypeOf(Uint128{})
	int128Type      = reflect.TypeOf(Int128{})
)

// encodeValue is the default structural dispatcher: given any Go value, it
// calls the Encoder method matching its structural kind, recursing into
// composite kinds. Types that prefer full control implement Marshaler and
// are never reflected into.
func encodeValue(e *Encoder, v reflect.Value) error {
	if v.IsValid() && v.Type().Implements(marshalerType) {
		return v.Interface().(Marshaler).MarshalAglio(e)
	}
	if v.CanAddr() && v.Addr().Type().Implements(marshalerType) {
		return v.Addr().Interface().(Marshaler).MarshalAglio(e)
	}

	switch v.Type() {
	case charType:
		return e.WriteChar(Char(v.Int()))
	case uint128Type:
		return e.WriteU128(v.Interface().(Uint128))
	case int128Type:
		return e.WriteI128(v.Interface().(Int128))
	}

	switch v.Kind() {
	case reflect.Bool:
		return e.WriteBool(v.Bool())
	case reflect.Int8:
		return e.WriteI8(int8(v.Int()))
	case reflect.Int16:
		return e.WriteI16(int16(v.Int()))
	case reflect.Int32:
		return e.WriteI32(int32(v.Int()))
	case reflect.Int, reflect.Int64:
		return e.WriteI64(v.Int())
	case reflect.Uint8:
		return e.WriteU8(uint8(v.Uint()))
	case reflect.Uint16:
		return e.WriteU16(uint16(v.Uint()))
	case reflect.Uint32:
		return e.WriteU32(uint32(v.Uint()))
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return e.WriteU64(v.Uint())
	case reflect.Float32:
		return e.WriteF32(float32(v.Float()))
	case reflect.Float64:
		return e.WriteF64(v.Float())
	case reflect.String:
		return e.WriteStr(v.String())
	case reflect.Ptr:
		if v.IsNil() {
			return e.WriteOption(false, nil)
		}
		return e.WriteOption(true, func(e *Encoder) error {
			return encodeValue(e, v.Elem())
		})
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return e.WriteBytes(v.Bytes())
		}
		return encodeSeq(e, v)
	case reflect.Array:
		return encodeFixedSeq(e, v)
	case reflect.Map:
		return encodeMap(e, v)
	case reflect.Struct:
		return encodeStruct(e, v)
	case reflect.Interface:
		return e.fail(NotDescriptive, "interface values have no wire form; encode a concrete type")
	default:
		return e.fail(Custom, "unsupported type "+v.Type().String())
	}
}

func encodeSeq(e *Encoder, v reflect.Value) error {
	n := v.Len()
	if err := e.WriteSeqHeader(n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		e.pushPath("[" + strconv.Itoa(i) + "]")
		if err := encodeValue(e, v.Index(i)); err != nil {
			e.popPath()
			return err
		}
		e.popPath()
	}
	return nil
}

// encodeFixedSeq encodes a Go array: elements in order, with no length
// prefix since the arity is part of the type.
func encodeFixedSeq(e *Encoder, v reflect.Value) error {
	n := v.Len()
	for i := 0; i < n; i++ {
		e.pushPath("[" + strconv.Itoa(i) + "]")
		if err := encodeValue(e, v.Index(i)); err != nil {
			e.popPath()
			return err
		}
		e.popPath()
	}
	return nil
}

// encodeMap iterates keys in sorted order so two processes encoding the
// same map produce byte-identical output; Go's native map iteration order
// would otherwise leak into the wire bytes.
func encodeMap(e *Encoder, v reflect.Value) error {
	keys := v.MapKeys()
	if err := e.WriteMapHeader(len(keys)); err != nil {
		return err
	}
	sort.Slice(keys, func(i, j int) bool {
		return mapKeyLess(keys[i], keys[j])
	})
	for _, k := range keys {
		e.pushPath("[key]")
		if err := encodeValue(e, k); err != nil {
			e.popPath()
			return err
		}
		e.popPath()
		e.pushPath("[" + mapKeyString(k) + "]")
		if err := encodeValue(e, v.MapIndex(k)); err != nil {
			e.popPath()
			return err
		}
		e.popPath()
	}
	return nil
}

func mapKeyLess(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.String:
		return a.String() < b.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() < b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() < b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() < b.Float()
	default:
		return mapKeyString(a) < mapKeyString(b)
	}
}

func mapKeyString(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprint(v.Interface())
}

func encodeStruct(e *Encoder, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}
		if f.Tag.Get("aglio") == "-" {
			continue
		}
		e.pushPath(f.Name)
		if err := encodeValue(e, v.Field(i)); err != nil {
			e.popPath()
			return err
		}
		e.popPath()
	}
	return nil
}

// decodeValue mirrors encodeValue on the read side. v must be addressable
// (settable).
func decodeValue(d *Decoder, v reflect.Value) error {
	if v.CanAddr() && v.Addr().Type().Implements(unmarshalerType) {
		return v.Addr().Interface().(Unmarshaler).UnmarshalAglio(d)
	}

	switch v.Type() {
	case charType:
		c, err := d.ReadChar()
		if err != nil {
			return err
		}
		v.SetInt(int64(c))
		return nil
	case uint128Type:
		u, err := d.ReadU128()
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(u))
		return nil
	case int128Type:
		i, err := d.ReadI128()
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(i))
		return nil
	}

	switch v.Kind() {
	case reflect.Bool:
		b, err := d.ReadBool()
		if err != nil {
			return err
		}
		v.SetBool(b)
		return nil
	case reflect.Int8:
		x, err := d.ReadI8()
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
		return nil
	case reflect.Int16:
		x, err := d.ReadI16()
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
		return nil
	case reflect.Int32:
		x, err := d.ReadI32()
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
		return nil
	case reflect.Int, reflect.Int64:
		x, err := d.ReadI64()
		if err != nil {
			return err
		}
		v.SetInt(x)
		return nil
	case reflect.Uint8:
		x, err := d.ReadU8()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
		return nil
	case reflect.Uint16:
		x, err := d.ReadU16()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
		return nil
	case reflect.Uint32:
		x, err := d.ReadU32()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
		return nil
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		x, err := d.ReadU64()
		if err != nil {
			return err
		}
		v.SetUint(x)
		return nil
	case reflect.Float32:
		x, err := d.ReadF32()
		if err != nil {
			return err
		}
		v.SetFloat(float64(x))
		return nil
	case reflect.Float64:
		x, err := d.ReadF64()
		if err != nil {
			return err
		}
		v.SetFloat(x)
		return nil
	case reflect.String:
		s, err := d.ReadStrOwned()
		if err != nil {
			return err
		}
		v.SetString(s)
		return nil
	case reflect.Ptr:
		return d.ReadOption(func(d *Decoder) error {
			elem := reflect.New(v.Type().Elem())
			if err := decodeValue(d, elem.Elem()); err != nil {
				return err
			}
			v.Set(elem)
			return nil
		})
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b, err := d.ReadBytesOwned()
			if err != nil {
				return err
			}
			v.SetBytes(b)
			return nil
		}
		return decodeSeq(d, v)
	case reflect.Array:
		return decodeFixedSeq(d, v)
	case reflect.Map:
		return decodeMap(d, v)
	case reflect.Struct:
		return decodeStruct(d, v)
	case reflect.Interface:
		return d.fail(NotDescriptive, "the wire is not self-describing; decode into a concrete type")
	default:
		return d.fail(Custom, "unsupported type "+v.Type().String())
	}
}

func decodeSeq(d *Decoder, v reflect.Value) error {
	n, err := d.ReadSeqHeader()
	if err != nil {
		return err
	}
	// every element consumes at least one byte, so a count beyond the
	// remaining input is malformed; reject before allocating n slots.
	if n > d.r.Remaining() {
		return d.fail(InvalidLength, "sequence length exceeds remaining input")
	}
	out := reflect.MakeSlice(v.Type(), n, n)
	for i := 0; i < n; i++ {
		d.pushPath("[" + strconv.Itoa(i) + "]")
		if err := decodeValue(d, out.Index(i)); err != nil {
			d.popPath()
			return err
		}
		d.popPath()
	}
	v.Set(out)
	return nil
}

func decodeFixedSeq(d *Decoder, v reflect.Value) error {
	n := v.Len()
	for i := 0; i < n; i++ {
		d.pushPath("[" + strconv.Itoa(i) + "]")
		if err := decodeValue(d, v.Index(i)); err != nil {
			d.popPath()
			return err
		}
		d.popPath()
	}
	return nil
}

func decodeMap(d *Decoder, v reflect.Value) error {
	n, err := d.ReadMapHeader()
	if err != nil {
		return err
	}
	if n > d.r.Remaining() {
		return d.fail(InvalidLength, "map length exceeds remaining input")
	}
	t := v.Type()
	out := reflect.MakeMapWithSize(t, n)
	for i := 0; i < n; i++ {
		key := reflect.New(t.Key()).Elem()
		d.pushPath("[key]")
		if err := decodeValue(d, key); err != nil {
			d.popPath()
			return err
		}
		d.popPath()
		val := reflect.New(t.Elem()).Elem()
		d.pushPath("[val]")
		if err := decodeValue(d, val); err != nil {
			d.popPath()
			return err
		}
		d.popPath()
		out.SetMapIndex(key, val)
	}
	v.Set(out)
	return nil
}

func decodeStruct(d *Decoder, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		if f.Tag.Get("aglio") == "-" {
			continue
		}
		d.pushPath(f.Name)
		if err := decodeValue(d, v.Field(i)); err != nil {
			d.popPath()
			return err
		}
		d.popPath()
	}
	return nil
}
