package tpm2

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func marshalUnmarshal(t *testing.T, v interface{}, want []byte) {
	t.Helper()
	var buf bytes.Buffer
	if err := marshal(&buf, reflect.ValueOf(v)); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("want %x got %x", want, buf.Bytes())
	}
	got := reflect.New(reflect.TypeOf(v))
	err := unmarshal(&buf, got.Elem())
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if !cmp.Equal(v, got.Elem().Interface()) {
		t.Errorf("want %#v, got %#v\n%v", v, got.Elem().Interface(), cmp.Diff(v, got.Elem().Interface()))
	}
}

func TestMarshalNumeric(t *testing.T) {
	vals := map[interface{}][]byte{
		false:              []byte{0},
		byte(1):            []byte{1},
		int8(2):            []byte{2},
		uint8(3):           []byte{3},
		int16(260):         []byte{1, 4},
		uint16(261):        []byte{1, 5},
		int32(65542):       []byte{0, 1, 0, 6},
		uint32(65543):      []byte{0, 1, 0, 7},
		int64(4294967304):  []byte{0, 0, 0, 1, 0, 0, 0, 8},
		uint64(4294967305): []byte{0, 0, 0, 1, 0, 0, 0, 9},
	}
	for v, want := range vals {
		t.Run(fmt.Sprintf("%v-%v", reflect.TypeOf(v), v), func(t *testing.T) {
			marshalUnmarshal(t, v, want)
		})
	}
}

func TestMarshalArray(t *testing.T) {
	vals := []struct {
		Data          interface{}
		Serialization []byte
	}{
		{[4]int8{1, 2, 3, 4}, []byte{1, 2, 3, 4}},
		{[3]uint16{5, 6, 7}, []byte{0, 5, 0, 6, 0, 7}},
	}
	for _, val := range vals {
		v, want := val.Data, val.Serialization
		t.Run(fmt.Sprintf("%v-%v", reflect.TypeOf(v), v), func(t *testing.T) {
			marshalUnmarshal(t, v, want)
		})
	}
}

func TestMarshalSlice(t *testing.T) {
	// Slices are marshalled as part of a struct with the 'list' tag.
	type sliceWrapper struct {
		Elems []uint32 `tpm2:"list"`
	}
	vals := []struct {
		Name          string
		Data          sliceWrapper
		Serialization []byte
	}{
		{"3", sliceWrapper{[]uint32{1, 2, 3}}, []byte{0, 0, 0, 3, 0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 3}},
		{"1", sliceWrapper{[]uint32{4}}, []byte{0, 0, 0, 1, 0, 0, 0, 4}},
		{"empty", sliceWrapper{nil}, []byte{0, 0, 0, 0}},
	}
	for _, val := range vals {
		v, want := val.Data, val.Serialization
		t.Run(val.Name, func(t *testing.T) {
			marshalUnmarshal(t, v, want)
		})
	}
}

func TestMarshalSized(t *testing.T) {
	type sizedWrapper struct {
		Buffer []byte `tpm2:"sized"`
	}
	vals := []struct {
		Name          string
		Data          sizedWrapper
		Serialization []byte
	}{
		{"4", sizedWrapper{[]byte{10, 11, 12, 13}}, []byte{0, 4, 10, 11, 12, 13}},
		{"empty", sizedWrapper{nil}, []byte{0, 0}},
	}
	for _, val := range vals {
		v, want := val.Data, val.Serialization
		t.Run(val.Name, func(t *testing.T) {
			marshalUnmarshal(t, v, want)
		})
	}
}

func TestUnmarshalSizedTruncated(t *testing.T) {
	type sizedWrapper struct {
		Buffer []byte `tpm2:"sized"`
	}
	// Size prefix claims more bytes than the buffer holds.
	var w sizedWrapper
	err := unmarshal(bytes.NewBuffer([]byte{0, 4, 1, 2}), reflect.ValueOf(&w).Elem())
	if err == nil {
		t.Error("want error unmarshalling a truncated sized buffer, got nil")
	}
}

func TestMarshalBitfield(t *testing.T) {
	type bitfield8 struct {
		Bit0 uint8 `tpm2:"bit=0"`
		Bit1 uint8 `tpm2:"bit=1"`
		Bit2 uint8 `tpm2:"bit=2"`
		Bit3 uint8 `tpm2:"bit=3"`
		Bit4 uint8 `tpm2:"bit=4"`
		Bit5 uint8 `tpm2:"bit=5"`
		Bit6 uint8 `tpm2:"bit=6"`
		Bit7 uint8 `tpm2:"bit=7"`
	}
	type bitfield32 struct {
		Reserved1       uint16 `tpm2:"bit=5:0"`
		Bit6            uint8  `tpm2:"bit=6"`
		Reserved2       uint8  `tpm2:"bit=12:7"`
		Bit13           bool   `tpm2:"bit=13"`
		Bits14Through18 uint8  `tpm2:"bit=18:14"`
		Bit19           byte   `tpm2:"bit=19"`
		Reserved3       uint16 `tpm2:"bit=30:20"`
		Bit31           uint32 `tpm2:"bit=31"`
	}
	t.Run("8bit", func(t *testing.T) {
		v := bitfield8{
			Bit0: 0,
			Bit1: 1,
			Bit2: 0,
			Bit3: 1,
			Bit4: 1,
			Bit5: 0,
			Bit6: 0,
			Bit7: 1,
		}
		want := []byte{0x9a}
		marshalUnmarshal(t, v, want)
	})
	t.Run("32bit", func(t *testing.T) {
		v := bitfield32{
			Bit6:            1,
			Bit13:           false,
			Bits14Through18: 29,
			Bit19:           1,
			Bit31:           1,
		}
		want := []byte{0x80, 0x0f, 0x40, 0x40}
		marshalUnmarshal(t, v, want)
	})
}

func TestMarshalUnion(t *testing.T) {
	type valStruct struct {
		First  bool
		Second int32
	}
	type unionValue struct {
		Val8      *uint8     `tpm2:"selector=8"`
		Val64     *uint64    `tpm2:"selector=0x00000040"`
		ValStruct *valStruct `tpm2:"selector=5"` // 5 for '5truct'
	}
	type unionEnvelope struct {
		Type       uint8
		OtherThing uint32
		Value      unionValue `tpm2:"tag=Type"`
	}
	eight := uint8(8)
	sixtyFour := uint64(64)
	cases := []struct {
		Name          string
		Data          unionEnvelope
		Serialization []byte
	}{
		{
			Name: "8",
			Data: unionEnvelope{
				Type:       8,
				OtherThing: 0xabcd1234,
				Value: unionValue{
					Val8: &eight,
				},
			},
			Serialization: []byte{
				0x08, 0xab, 0xcd, 0x12, 0x34, 0x08,
			},
		},
		{
			Name: "64",
			Data: unionEnvelope{
				Type:       64,
				OtherThing: 0xffffffff,
				Value: unionValue{
					Val64: &sixtyFour,
				},
			},
			Serialization: []byte{
				0x40, 0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x40,
			},
		},
		{
			Name: "Struct",
			Data: unionEnvelope{
				Type:       5,
				OtherThing: 0x11111111,
				Value: unionValue{
					ValStruct: &valStruct{
						First:  true,
						Second: 65537,
					},
				},
			},
			Serialization: []byte{
				0x05, 0x11, 0x11, 0x11, 0x11, 0x01, 0x00, 0x01, 0x00, 0x01,
			},
		},
	}

	for _, c := range cases {
		v, want := c.Data, c.Serialization
		t.Run(c.Name, func(t *testing.T) {
			marshalUnmarshal(t, v, want)
		})
	}
}

func TestMarshalSymDefNull(t *testing.T) {
	// TPM_ALG_NULL as the selector marshals only the selector itself.
	v := TPMTSymDef{
		Algorithm: AlgNull,
	}
	want := []byte{0x00, 0x10}
	var buf bytes.Buffer
	if err := marshal(&buf, reflect.ValueOf(v)); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("want %x got %x", want, buf.Bytes())
	}
}

func TestMarshalPublicRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Marshal(&buf, RSASRKTemplate); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	var got TPMTPublic
	if err := Unmarshal(bytes.NewBuffer(buf.Bytes()), &got); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	var buf2 bytes.Buffer
	if err := Marshal(&buf2, got); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if !bytes.Equal(buf.Bytes(), buf2.Bytes()) {
		t.Errorf("want %x got %x", buf.Bytes(), buf2.Bytes())
	}
}

func TestMarshalOmittedSensitive(t *testing.T) {
	// An omitted sensitive-create union still occupies an empty 2B on
	// the wire.
	v := TPM2BSensitiveCreate{}
	want := []byte{0x00, 0x04, 0x00, 0x00, 0x00, 0x00}
	var buf bytes.Buffer
	if err := marshal(&buf, reflect.ValueOf(v)); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("want %x got %x", want, buf.Bytes())
	}
}

func TestMarshalOmittedTemplate(t *testing.T) {
	// An omitted sized member marshals as just a zero size.
	v := TPM2BTemplate{}
	want := []byte{0x00, 0x00}
	var buf bytes.Buffer
	if err := marshal(&buf, reflect.ValueOf(v)); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("want %x got %x", want, buf.Bytes())
	}
}
