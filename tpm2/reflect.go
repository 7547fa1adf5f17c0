// Package tpm2 provides a typed client runtime for TPM 2.0 devices: a wire
// codec, a per-connection handle table, authorization sessions, and 1:1
// mappings to TPM 2.0 commands. Marshaling is provided at runtime using
// reflection, driven by "tpm2" struct tags.
package tpm2

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cryptalis/esys/transport"
)

const (
	// Chosen based on MAX_DIGEST_BUFFER, the length of the longest
	// reasonable list returned by the reference implementation.
	maxListLength uint32 = 1024
)

// TPM represents a logical connection to a TPM. It tracks the objects and
// sessions loaded through it so that commands can resolve handle Names and
// auth values without the caller re-supplying them.
// Transport access and the handle table are serialized, so a TPM may be
// shared between goroutines. Individual Session objects are stateful and must
// not be used concurrently.
type TPM struct {
	transport transport.TPM

	// mu guards the transport and the resource table. It is not held
	// across a whole command cycle: a session's Init issues its own
	// StartAuthSession command partway through building the outer one.
	mu        sync.Mutex
	resources map[Handle]*resource
	log       logrus.FieldLogger
}

// NewTPM opens a TPM connection using the provided transport.
// When this TPM connection is closed, the transport is closed.
func NewTPM(t transport.TPM) *TPM {
	return &TPM{
		transport: t,
		resources: make(map[Handle]*resource),
		log:       discardLogger(),
	}
}

// SetLogger directs per-command debug logging to the given logger.
func (t *TPM) SetLogger(log logrus.FieldLogger) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.log = log
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Close closes the connection to the TPM and its underlying transport.
func (t *TPM) Close() error {
	return t.transport.Close()
}

// send writes a full command to the transport and reads back the full
// response, serializing wire access across goroutines.
func (t *TPM) send(command []byte) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.transport.Send(command)
}

// execute sends the provided command and parses the TPM's response.
func (t *TPM) execute(cmd Command, rsp Response, extraSess ...Session) error {
	cc := cmd.Command()
	if rsp.Response() != cc {
		return invalidArgf("cmd and rsp must be for same command: %v != %v", cc, rsp.Response())
	}

	sess, err := t.cmdAuths(cmd)
	if err != nil {
		return err
	}
	sess = append(sess, extraSess...)
	if len(sess) > 3 {
		return invalidArgf("too many sessions: %v", len(sess))
	}
	hasSessions := len(sess) > 0
	// Initialize the sessions, if needed.
	for i, s := range sess {
		if err := s.Init(t); err != nil {
			return fmt.Errorf("initializing session %d: %w", i, err)
		}
		if err := s.NewNonceCaller(); err != nil {
			return err
		}
	}
	handles, err := cmdHandles(cmd)
	if err != nil {
		return err
	}
	names, err := t.cmdNames(cmd)
	if err != nil {
		return err
	}
	parms, err := cmdParameters(cmd, sess)
	if err != nil {
		return err
	}
	sessions, err := cmdSessions(sess, cc, names, parms)
	if err != nil {
		return err
	}
	hdr := cmdHeader(hasSessions, 10 /* size of command header */ +len(handles)+len(sessions)+len(parms), cc)
	command := append(hdr, handles...)
	command = append(command, sessions...)
	command = append(command, parms...)

	t.log.WithFields(logrus.Fields{
		"command": cc.String(),
		"size":    len(command),
	}).Debug("sending TPM command")

	response, err := t.send(command)
	if err != nil {
		return fmt.Errorf("%v: %w", cc, err)
	}

	// Parse the response directly into the response structure.
	rspBuf := bytes.NewBuffer(response)
	err = rspHeader(rspBuf)
	if err != nil {
		t.log.WithFields(logrus.Fields{
			"command": cc.String(),
			"error":   err,
		}).Debug("TPM command failed")
		var bonusErrs []string
		// A failed command terminates all non-password sessions that
		// authorized it. Mark them unusable, then return.
		for _, s := range sess {
			if cleanupErr := s.CleanupFailure(t); cleanupErr != nil {
				bonusErrs = append(bonusErrs, cleanupErr.Error())
			}
		}
		if len(bonusErrs) != 0 {
			return fmt.Errorf("%v: %w (additional errors encountered during cleanup: %v)", cc, err, strings.Join(bonusErrs, ", "))
		}
		return fmt.Errorf("%v: %w", cc, err)
	}
	err = rspHandles(rspBuf, rsp)
	if err != nil {
		return err
	}
	rspParms, err := rspParametersArea(hasSessions, rspBuf)
	if err != nil {
		return err
	}
	if hasSessions {
		// The auth sessions are validated against RC_SUCCESS: any other
		// response code would have errored out of rspHeader above.
		err = rspSessions(rspBuf, RCSuccess, cc, names, rspParms, sess)
		if err != nil {
			return err
		}
	}
	err = rspParameters(rspParms, sess, rsp)
	if err != nil {
		return err
	}

	t.log.WithField("command", cc.String()).Debug("TPM command succeeded")
	return nil
}

// Marshal serializes the given values, appending them onto the given writer.
// Returns a MarshalError if any of the values are not marshallable.
func Marshal(w io.Writer, vs ...interface{}) error {
	var reflects []reflect.Value
	for _, v := range vs {
		reflects = append(reflects, reflect.ValueOf(v))
	}
	var buf bytes.Buffer
	if err := marshal(&buf, reflects...); err != nil {
		return MarshalError{msg: "marshalling values", err: err}
	}
	_, err := io.Copy(w, &buf)
	return err
}

// marshal serializes the given values, appending them onto the given buffer.
func marshal(buf *bytes.Buffer, vs ...reflect.Value) error {
	for _, v := range vs {
		switch v.Kind() {
		case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if err := marshalNumeric(buf, v); err != nil {
				return err
			}
		case reflect.Array, reflect.Slice:
			if err := marshalArray(buf, v); err != nil {
				return err
			}
		case reflect.Struct:
			if err := marshalStruct(buf, v); err != nil {
				return err
			}
		case reflect.Ptr:
			if err := marshalStruct(buf, v.Elem()); err != nil {
				return err
			}
		case reflect.Interface:
			// The only interface-typed members are unions whose
			// variants are all 2Bs. An omitted member stands in for
			// an empty buffer, which still occupies a size field on
			// the wire.
			if v.IsNil() {
				if err := binary.Write(buf, binary.BigEndian, uint16(0)); err != nil {
					return err
				}
				continue
			}
			if err := marshal(buf, v.Elem()); err != nil {
				return err
			}
		default:
			return fmt.Errorf("not marshallable: %#v", v)
		}
	}
	return nil
}

func marshalNumeric(buf *bytes.Buffer, v reflect.Value) error {
	return binary.Write(buf, binary.BigEndian, v.Interface())
}

func marshalArray(buf *bytes.Buffer, v reflect.Value) error {
	for i := 0; i < v.Len(); i++ {
		if err := marshal(buf, v.Index(i)); err != nil {
			return fmt.Errorf("marshalling element %d of %v: %v", i, v.Type(), err)
		}
	}
	return nil
}

// marshalStruct marshals the members of the struct, handling sized and
// bitwise fields.
func marshalStruct(buf *bytes.Buffer, v reflect.Value) error {
	// Check if this is a bitwise-defined structure. This requires all the
	// members to be bitwise-defined.
	if v.NumField() > 0 {
		bitwise := hasTag(v.Type().Field(0), "bit")
		for i := 0; i < v.NumField(); i++ {
			thisBitwise := hasTag(v.Type().Field(i), "bit")
			if thisBitwise {
				if hasTag(v.Type().Field(i), "sized") || hasTag(v.Type().Field(i), "sized8") {
					return fmt.Errorf("struct '%v' field '%v' is both bitwise and sized",
						v.Type().Name(), v.Type().Field(i).Name)
				}
				if hasTag(v.Type().Field(i), "tag") {
					return fmt.Errorf("struct '%v' field '%v' is both bitwise and a tagged union",
						v.Type().Name(), v.Type().Field(i).Name)
				}
			}
			if bitwise != thisBitwise {
				return fmt.Errorf("struct '%v' has mixture of bitwise and non-bitwise members", v.Type().Name())
			}
		}
		if bitwise {
			return marshalBitwise(buf, v)
		}
	}
	// Make a pass to create a map of tag values.
	// UInt64-valued fields with values greater than MaxInt64 cannot be
	// selectors.
	possibleSelectors := make(map[string]int64)
	for i := 0; i < v.NumField(); i++ {
		// Special case: Treat a zero-valued nullable field as
		// TPM_ALG_NULL for union selection.
		// This allows callers to omit uninteresting scheme structures.
		if v.Field(i).IsZero() && hasTag(v.Type().Field(i), "nullable") {
			possibleSelectors[v.Type().Field(i).Name] = int64(AlgNull)
			continue
		}
		switch v.Field(i).Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			possibleSelectors[v.Type().Field(i).Name] = v.Field(i).Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			val := v.Field(i).Uint()
			if val <= math.MaxInt64 {
				possibleSelectors[v.Type().Field(i).Name] = int64(val)
			}
		}
	}
	for i := 0; i < v.NumField(); i++ {
		if hasTag(v.Type().Field(i), "skip") {
			continue
		}
		list := hasTag(v.Type().Field(i), "list")
		sized := hasTag(v.Type().Field(i), "sized")
		sized8 := hasTag(v.Type().Field(i), "sized8")
		tag := tags(v.Type().Field(i))["tag"]
		// Serialize to a temporary buffer, in case we need to size it.
		// (Better to simplify this complex reflection-based marshalling
		// code than to save some unnecessary copying before talking to
		// a low-speed device like a TPM.)
		var res bytes.Buffer
		if list {
			binary.Write(&res, binary.BigEndian, uint32(v.Field(i).Len()))
		}
		if tag != "" {
			// Check that the tagged value was present (and numeric
			// and smaller than MaxInt64).
			tagValue, ok := possibleSelectors[tag]
			if !ok {
				return fmt.Errorf("union tag '%v' for member '%v' of struct '%v' did not reference "+
					"a numeric field of int64-compatible value",
					tag, v.Type().Field(i).Name, v.Type().Name())
			}
			if err := marshalUnion(&res, v.Field(i), tagValue); err != nil {
				return err
			}
		} else if v.Field(i).IsZero() && v.Field(i).Kind() == reflect.Uint32 && hasTag(v.Type().Field(i), "nullable") {
			// Special case: Anything with the same underlying type as
			// Handle's zero value is TPM_RH_NULL.
			// This allows callers to omit uninteresting handles
			// instead of specifying them as TPM_RH_NULL.
			if err := binary.Write(&res, binary.BigEndian, uint32(RHNull)); err != nil {
				return err
			}
		} else if v.Field(i).IsZero() && v.Field(i).Kind() == reflect.Uint16 && hasTag(v.Type().Field(i), "nullable") {
			// Special case: Anything with the same underlying type as
			// AlgID's zero value is TPM_ALG_NULL.
			// This allows callers to omit uninteresting
			// algorithms/schemes instead of specifying them as
			// TPM_ALG_NULL.
			if err := binary.Write(&res, binary.BigEndian, uint16(AlgNull)); err != nil {
				return err
			}
		} else if (sized || sized8) && v.Field(i).Kind() == reflect.Interface && v.Field(i).IsNil() {
			// An omitted sized member marshals as just a zero size.
		} else {
			if err := marshal(&res, v.Field(i)); err != nil {
				return err
			}
		}
		if sized {
			if err := binary.Write(buf, binary.BigEndian, uint16(res.Len())); err != nil {
				return err
			}
		}
		if sized8 {
			if err := binary.Write(buf, binary.BigEndian, uint8(res.Len())); err != nil {
				return err
			}
		}
		buf.Write(res.Bytes())
	}
	return nil
}

// marshalBitwise marshals a bitwise-defined struct.
func marshalBitwise(buf *bytes.Buffer, v reflect.Value) error {
	maxBit := 0
	for i := 0; i < v.NumField(); i++ {
		high, _, ok := rangeTag(v.Type().Field(i), "bit")
		if !ok {
			return fmt.Errorf("'%v' struct member '%v' did not specify a bit index or range", v.Type().Name(), v.Type().Field(i).Name)
		}
		if high > maxBit {
			maxBit = high
		}
	}
	if (maxBit+1)%8 != 0 {
		return fmt.Errorf("'%v' bitwise members did not total up to a multiple of 8 bits", v.Type().Name())
	}
	bitArray := make([]bool, maxBit+1)
	for i := 0; i < v.NumField(); i++ {
		high, low, _ := rangeTag(v.Type().Field(i), "bit")
		var fieldBuf bytes.Buffer
		if err := marshal(&fieldBuf, v.Field(i)); err != nil {
			return err
		}
		b := fieldBuf.Bytes()
		for j := 0; j <= (high - low); j++ {
			bitArray[low+j] = ((b[len(b)-j/8-1] >> (j % 8)) & 1) == 1
		}
	}
	result := make([]byte, len(bitArray)/8)
	for i, bit := range bitArray {
		if bit {
			result[len(result)-(i/8)-1] |= (1 << (i % 8))
		}
	}
	buf.Write(result)
	return nil
}

// marshalUnion marshals the member of the given union struct corresponding to
// the given selector. Marshals nothing if the selector is equal to
// TPM_ALG_NULL (0x0010).
func marshalUnion(buf *bytes.Buffer, v reflect.Value, selector int64) error {
	// Special case: TPM_ALG_NULL as a selector means marshal nothing.
	if selector == int64(AlgNull) {
		return nil
	}
	for i := 0; i < v.NumField(); i++ {
		sel, ok := numericTag(v.Type().Field(i), "selector")
		if !ok {
			return fmt.Errorf("'%v' union member '%v' did not have a selector tag", v.Type().Name(), v.Type().Field(i).Name)
		}
		if sel == selector {
			if v.Field(i).IsNil() {
				// Special case: if the selected value is found but
				// nil, marshal the zero-value instead.
				return marshal(buf, reflect.New(v.Field(i).Type().Elem()).Elem())
			}
			return marshal(buf, v.Field(i).Elem())
		}
	}
	return fmt.Errorf("selector value '%v' not handled for type '%v'", selector, v.Type().Name())
}

// Unmarshal deserializes the given values from the reader.
// Returns a MarshalError if the buffer does not contain enough data to
// satisfy the types, or if the types are not unmarshallable.
func Unmarshal(r io.Reader, vs ...interface{}) error {
	var reflects []reflect.Value
	for _, v := range vs {
		if reflect.ValueOf(v).Kind() != reflect.Ptr {
			return invalidArgf("all parameters to Unmarshal must be pointers")
		}
		reflects = append(reflects, reflect.ValueOf(v).Elem())
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	if err := unmarshal(&buf, reflects...); err != nil {
		return MarshalError{msg: "unmarshalling values", err: err}
	}
	return nil
}

// unmarshal deserializes the given values from the given buffer.
// Returns an error if the buffer does not contain enough data to satisfy the
// type.
func unmarshal(buf *bytes.Buffer, vs ...reflect.Value) error {
	for _, v := range vs {
		switch v.Kind() {
		case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if err := unmarshalNumeric(buf, v); err != nil {
				return err
			}
			continue
		case reflect.Slice:
			var length uint32
			// Special case for byte slices: just read the entire rest
			// of the buffer.
			if v.Type().Elem().Kind() == reflect.Uint8 {
				length = uint32(buf.Len())
			} else {
				err := unmarshalNumeric(buf, reflect.ValueOf(&length).Elem())
				if err != nil {
					return fmt.Errorf("deserializing size for field of type '%v': %w", v.Type(), err)
				}
			}
			if length > uint32(math.MaxInt32) || length > maxListLength {
				return fmt.Errorf("could not deserialize slice of length %v", length)
			}
			// An empty buffer decodes back to a nil slice, so that
			// decode inverts encode exactly.
			if length == 0 {
				v.Set(reflect.Zero(v.Type()))
				continue
			}
			// Go's reflect library doesn't allow increasing the
			// capacity of an existing slice.
			// Since we can't be sure that the capacity of the
			// passed-in value was enough, allocate a new temporary one
			// of the correct length, unmarshal to it, and swap it in.
			tmp := reflect.MakeSlice(v.Type(), int(length), int(length))
			if err := unmarshalArray(buf, tmp); err != nil {
				return err
			}
			v.Set(tmp)
			continue
		case reflect.Array:
			if err := unmarshalArray(buf, v); err != nil {
				return err
			}
			continue
		case reflect.Struct:
			if err := unmarshalStruct(buf, v); err != nil {
				return err
			}
			continue
		default:
			return fmt.Errorf("not unmarshallable: %v", v.Type())
		}
	}
	return nil
}

func unmarshalNumeric(buf *bytes.Buffer, v reflect.Value) error {
	return binary.Read(buf, binary.BigEndian, v.Addr().Interface())
}

// unmarshalArray unmarshals each element of a slice or array. For slices, the
// slice's length must already be set to the expected amount of data.
func unmarshalArray(buf *bytes.Buffer, v reflect.Value) error {
	for i := 0; i < v.Len(); i++ {
		if err := unmarshal(buf, v.Index(i)); err != nil {
			return fmt.Errorf("deserializing slice/array index %v: %w", i, err)
		}
	}
	return nil
}

func unmarshalStruct(buf *bytes.Buffer, v reflect.Value) error {
	// Check if this is a bitwise-defined structure. This requires all the
	// members to be bitwise-defined.
	if v.NumField() > 0 {
		bitwise := hasTag(v.Type().Field(0), "bit")
		for i := 0; i < v.NumField(); i++ {
			thisBitwise := hasTag(v.Type().Field(i), "bit")
			if thisBitwise {
				if hasTag(v.Type().Field(i), "sized") {
					return fmt.Errorf("struct '%v' field '%v' is both bitwise and sized",
						v.Type().Name(), v.Type().Field(i).Name)
				}
				if hasTag(v.Type().Field(i), "tag") {
					return fmt.Errorf("struct '%v' field '%v' is both bitwise and a tagged union",
						v.Type().Name(), v.Type().Field(i).Name)
				}
			}
			if bitwise != thisBitwise {
				return fmt.Errorf("struct '%v' has mixture of bitwise and non-bitwise members", v.Type().Name())
			}
		}
		if bitwise {
			return unmarshalBitwise(buf, v)
		}
	}
	for i := 0; i < v.NumField(); i++ {
		if hasTag(v.Type().Field(i), "skip") {
			continue
		}
		list := hasTag(v.Type().Field(i), "list")
		if list && (v.Field(i).Kind() != reflect.Slice) {
			return fmt.Errorf("field '%v' of struct '%v' had the 'list' tag but was not a slice",
				v.Type().Field(i).Name, v.Type().Name())
		}
		// Slices of anything but byte/uint8 must have the 'list' tag.
		if !list && (v.Field(i).Kind() == reflect.Slice) && (v.Type().Field(i).Type.Elem().Kind() != reflect.Uint8) {
			return fmt.Errorf("field '%v' of struct '%v' was a slice of non-byte but did not have the 'list' tag",
				v.Type().Field(i).Name, v.Type().Name())
		}
		sized := hasTag(v.Type().Field(i), "sized")
		sized8 := hasTag(v.Type().Field(i), "sized8")
		// If sized, unmarshal a size field first, then restrict
		// unmarshalling to the given size.
		bufToReadFrom := buf
		if sized {
			var expectedSize uint16
			if err := binary.Read(buf, binary.BigEndian, &expectedSize); err != nil {
				return fmt.Errorf("reading size of parameter '%v' inside struct of type '%v': %w",
					v.Type().Field(i).Name, v.Type().Name(), err)
			}
			sizedBufArray := make([]byte, int(expectedSize))
			n, err := buf.Read(sizedBufArray)
			if n != int(expectedSize) {
				return fmt.Errorf("ran out of data reading sized parameter '%v' inside struct of type '%v'",
					v.Type().Field(i).Name, v.Type().Name())
			}
			if err != nil {
				return fmt.Errorf("error reading data for parameter '%v' inside struct of type '%v'",
					v.Type().Field(i).Name, v.Type().Name())
			}
			bufToReadFrom = bytes.NewBuffer(sizedBufArray)
		}
		if sized8 {
			var expectedSize uint8
			if err := binary.Read(buf, binary.BigEndian, &expectedSize); err != nil {
				return fmt.Errorf("reading size of parameter '%v' inside struct of type '%v': %w",
					v.Type().Field(i).Name, v.Type().Name(), err)
			}
			sizedBufArray := make([]byte, int(expectedSize))
			n, err := buf.Read(sizedBufArray)
			if n != int(expectedSize) {
				return fmt.Errorf("ran out of data reading sized parameter '%v' inside struct of type '%v'",
					v.Type().Field(i).Name, v.Type().Name())
			}
			if err != nil {
				return fmt.Errorf("error reading data for parameter '%v' inside struct of type '%v'",
					v.Type().Field(i).Name, v.Type().Name())
			}
			bufToReadFrom = bytes.NewBuffer(sizedBufArray)
		}
		tag := tags(v.Type().Field(i))["tag"]
		if tag != "" {
			// Make a pass to create a map of tag values.
			// UInt64-valued fields with values greater than MaxInt64
			// cannot be selectors.
			possibleSelectors := make(map[string]int64)
			for j := 0; j < v.NumField(); j++ {
				switch v.Field(j).Kind() {
				case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
					possibleSelectors[v.Type().Field(j).Name] = v.Field(j).Int()
				case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
					val := v.Field(j).Uint()
					if val <= math.MaxInt64 {
						possibleSelectors[v.Type().Field(j).Name] = int64(val)
					}
				}
			}
			// Check that the tagged value was present (and numeric and
			// smaller than MaxInt64).
			tagValue, ok := possibleSelectors[tag]
			if !ok {
				return fmt.Errorf("union tag '%v' for member '%v' of struct '%v' did not reference "+
					"a numeric field of int64-compatible value",
					tag, v.Type().Field(i).Name, v.Type().Name())
			}
			if err := unmarshalUnion(bufToReadFrom, v.Field(i), tagValue); err != nil {
				return fmt.Errorf("unmarshalling field %v of struct of type '%v': %w", i, v.Type(), err)
			}
		} else {
			if err := unmarshal(bufToReadFrom, v.Field(i)); err != nil {
				return fmt.Errorf("unmarshalling field %v of struct of type '%v': %w", i, v.Type(), err)
			}
		}
		if sized || sized8 {
			if bufToReadFrom.Len() != 0 {
				return fmt.Errorf("extra data at the end of sized parameter '%v' inside struct of type '%v'",
					v.Type().Field(i).Name, v.Type().Name())
			}
		}
	}
	return nil
}

// unmarshalBitwise unmarshals a bitwise-defined struct.
func unmarshalBitwise(buf *bytes.Buffer, v reflect.Value) error {
	maxBit := 0
	for i := 0; i < v.NumField(); i++ {
		high, _, ok := rangeTag(v.Type().Field(i), "bit")
		if !ok {
			return fmt.Errorf("'%v' struct member '%v' did not specify a bit index or range", v.Type().Name(), v.Type().Field(i).Name)
		}
		if high > maxBit {
			maxBit = high
		}
	}
	if (maxBit+1)%8 != 0 {
		return fmt.Errorf("'%v' bitwise members did not total up to a multiple of 8 bits", v.Type().Name())
	}
	bitArray := make([]bool, maxBit+1)
	// We will read big-endian, starting from the last byte and working our
	// way down.
	for i := len(bitArray)/8 - 1; i >= 0; i-- {
		b, err := buf.ReadByte()
		if err != nil {
			return fmt.Errorf("error reading byte %d of bitwise struct '%v': %w",
				i, v.Type().Name(), err)
		}
		for j := 0; j < 8; j++ {
			bitArray[8*i+j] = (((b >> j) & 1) == 1)
		}
	}
	for i := 0; i < v.NumField(); i++ {
		high, low, _ := rangeTag(v.Type().Field(i), "bit")
		var val uint64
		for j := 0; j <= high-low; j++ {
			if bitArray[low+j] {
				val |= (1 << j)
			}
		}
		if v.Field(i).Kind() == reflect.Bool {
			v.Field(i).SetBool((val & 1) == 1)
		} else {
			v.Field(i).SetUint(val)
		}
	}
	return nil
}

// unmarshalUnion unmarshals the member of the given union struct
// corresponding to the given selector. Unmarshals nothing if the selector is
// TPM_ALG_NULL (0x0010).
func unmarshalUnion(buf *bytes.Buffer, v reflect.Value, selector int64) error {
	// Special case: TPM_ALG_NULL as a selector means unmarshal nothing.
	if selector == int64(AlgNull) {
		return nil
	}
	for i := 0; i < v.NumField(); i++ {
		sel, ok := numericTag(v.Type().Field(i), "selector")
		if !ok {
			return fmt.Errorf("'%v' union member '%v' did not have a selector tag", v.Type().Name(), v.Type().Field(i).Name)
		}
		if sel == selector {
			val := reflect.New(v.Type().Field(i).Type.Elem())
			if err := unmarshal(buf, val.Elem()); err != nil {
				return fmt.Errorf("unmarshalling '%v' union member '%v': %w", v.Type().Name(), v.Type().Field(i).Name, err)
			}
			v.Field(i).Set(val)
			return nil
		}
	}
	return fmt.Errorf("selector value '%v' not handled for type '%v'", selector, v.Type().Name())
}

// tags returns all the tpm2 tags on a field as a map.
// Some tags are settable (with "="). For these, the value is the RHS.
// For all others, the value is the empty string.
func tags(t reflect.StructField) map[string]string {
	allTags, ok := t.Tag.Lookup("tpm2")
	if !ok {
		return nil
	}
	result := make(map[string]string)
	tags := strings.Split(allTags, ",")
	for _, tag := range tags {
		// Split on the equals sign for settable tags.
		assignment := strings.SplitN(tag, "=", 2)
		val := ""
		if len(assignment) > 1 {
			val = assignment[1]
		}
		if len(assignment) > 0 {
			key := assignment[0]
			result[key] = val
		}
	}
	return result
}

// hasTag looks up to see if the type's tpm2-namespaced tag contains the given
// value.
// Returns false if there is no tpm2-namespaced tag on the type.
func hasTag(t reflect.StructField, tag string) bool {
	ts := tags(t)
	_, ok := ts[tag]
	return ok
}

// numericTag returns the numeric tag value, or false if the tag is not
// present.
func numericTag(t reflect.StructField, tag string) (int64, bool) {
	val, ok := tags(t)[tag]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(val, 0, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// rangeTag returns the range on a tag like 4:3 or 4.
// If there is no colon, the low and high part of the range are equal.
func rangeTag(t reflect.StructField, tag string) (int, int, bool) {
	val, ok := tags(t)[tag]
	if !ok {
		return 0, 0, false
	}
	vals := strings.Split(val, ":")
	high, err := strconv.Atoi(vals[0])
	if err != nil {
		return 0, 0, false
	}
	low := high
	if len(vals) > 1 {
		low, err = strconv.Atoi(vals[1])
		if err != nil {
			return 0, 0, false
		}
	}
	if low > high {
		low, high = high, low
	}
	return high, low, true
}

// taggedMembers returns a slice of all the members of the given structure
// that contain (or don't contain) the given tag in the "tpm2" namespace.
// Panics if v's Kind is not Struct.
func taggedMembers(v reflect.Value, tag string, invert bool) []reflect.Value {
	var result []reflect.Value
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		// Add this one to the list if it has the tag and we're not
		// inverting, or if it doesn't have the tag and we are inverting.
		if hasTag(t.Field(i), tag) != invert {
			result = append(result, v.Field(i))
		}
	}

	return result
}

// cmdAuths returns the authorization sessions of the command, resolving
// missing auth values against the connection's resource table.
func (t *TPM) cmdAuths(cmd Command) ([]Session, error) {
	authHandles := taggedMembers(reflect.ValueOf(cmd).Elem(), "auth", false)
	var result []Session
	for _, authHandle := range authHandles {
		handle, ok := authHandle.Interface().(AuthHandle)
		if !ok {
			return nil, invalidArgf("'auth'-tagged member of %v was of type %v instead of AuthHandle",
				reflect.TypeOf(cmd), authHandle.Type())
		}
		if handle.Auth != nil {
			result = append(result, handle.Auth)
			continue
		}
		// No session was provided: authorize with the authValue tracked
		// for this handle, if any, as a password.
		result = append(result, PasswordAuth(t.storedAuth(handle.Handle)))
	}

	return result, nil
}

// cmdHandles returns the handles area of the command.
func cmdHandles(cmd Command) ([]byte, error) {
	handles := taggedMembers(reflect.ValueOf(cmd).Elem(), "handle", false)

	// Initial capacity is enough to hold 3 handles.
	result := bytes.NewBuffer(make([]byte, 0, 12))

	for i, maybeHandle := range handles {
		h, ok := maybeHandle.Interface().(handle)
		if !ok {
			return nil, invalidArgf("'handle'-tagged member %d of %v does not represent a handle",
				i, reflect.TypeOf(cmd))
		}
		if err := binary.Write(result, binary.BigEndian, h.HandleValue()); err != nil {
			return nil, err
		}
	}

	return result.Bytes(), nil
}

// cmdNames returns the authorized names of the command, resolving handles
// with no known Name against the connection's resource table.
func (t *TPM) cmdNames(cmd Command) ([]TPM2BName, error) {
	authHandles := taggedMembers(reflect.ValueOf(cmd).Elem(), "auth", false)
	var result []TPM2BName
	for _, authHandle := range authHandles {
		handle, ok := authHandle.Interface().(AuthHandle)
		if !ok {
			return nil, invalidArgf("'auth'-tagged member of %v was of type %v instead of AuthHandle",
				reflect.TypeOf(cmd), authHandle.Type())
		}
		name, err := t.nameFor(handle)
		if err != nil {
			return nil, err
		}
		result = append(result, name)
	}

	return result, nil
}

// nameFor resolves the Name of an auth handle: an explicitly provided Name
// wins, then the Name implied by the handle value, then the Name tracked in
// the resource table.
func (t *TPM) nameFor(h AuthHandle) (TPM2BName, error) {
	if len(h.Name.Buffer) != 0 {
		return h.Name, nil
	}
	if known := h.Handle.KnownName(); known != nil {
		return *known, nil
	}
	if name, ok := t.lookupName(h.Handle); ok {
		return name, nil
	}
	return TPM2BName{}, UnknownHandleError{Handle: h.Handle}
}

// cmdParameters returns the parameters area of the command.
// The first parameter may be encrypted by one of the sessions.
func cmdParameters(cmd Command, sess []Session) ([]byte, error) {
	parms := taggedMembers(reflect.ValueOf(cmd).Elem(), "handle", true)
	if len(parms) == 0 {
		return nil, nil
	}

	// Marshal the first parameter for in-place session encryption.
	var firstParm bytes.Buffer
	if err := marshal(&firstParm, parms[0]); err != nil {
		return nil, MarshalError{msg: fmt.Sprintf("marshalling first parameter of %v", reflect.TypeOf(cmd)), err: err}
	}
	firstParmBytes := firstParm.Bytes()

	// Encrypt the first parameter if there are any decryption sessions.
	encrypted := false
	for i, s := range sess {
		if s.IsDecryption() {
			if encrypted {
				// Only one session may be used for decryption.
				return nil, invalidArgf("too many decrypt sessions")
			}
			if len(firstParmBytes) < 2 {
				return nil, invalidArgf("this command's first parameter is not a TPM2B")
			}
			err := s.Encrypt(firstParmBytes[2:])
			if err != nil {
				return nil, fmt.Errorf("encrypting with session %d: %w", i, err)
			}
			encrypted = true
		}
	}

	var result bytes.Buffer
	result.Write(firstParmBytes)
	// Write the rest of the parameters normally.
	if err := marshal(&result, parms[1:]...); err != nil {
		return nil, MarshalError{msg: fmt.Sprintf("marshalling parameters of %v", reflect.TypeOf(cmd)), err: err}
	}
	return result.Bytes(), nil
}

// cmdSessions returns the authorization area of the command.
func cmdSessions(sess []Session, cc CC, names []TPM2BName, parms []byte) ([]byte, error) {
	// There is no authorization area if there are no sessions.
	if len(sess) == 0 {
		return nil, nil
	}
	// Find the non-first-session encryption and decryption session
	// nonceTPMs, if any.
	var encNonceTPM, decNonceTPM []byte
	for i := 1; i < len(sess); i++ {
		s := sess[i]
		if s.IsEncryption() {
			if encNonceTPM != nil {
				// Only one encrypt session is permitted.
				return nil, invalidArgf("too many encrypt sessions")
			}
			encNonceTPM = s.NonceTPM().Buffer
			// A session used for both encryption and decryption only
			// needs its nonce counted once.
			continue
		}
		if s.IsDecryption() {
			if decNonceTPM != nil {
				// Only one decrypt session is permitted.
				return nil, invalidArgf("too many decrypt sessions")
			}
			decNonceTPM = s.NonceTPM().Buffer
		}
	}

	buf := bytes.NewBuffer(make([]byte, 0, 1024))
	// Skip space to write the size later.
	buf.Write(make([]byte, 4))
	// Calculate the authorization HMAC for each session.
	for i, s := range sess {
		var addNonces []byte
		// Special case: the HMAC on the first authorization session of a
		// command also includes any decryption and encryption nonceTPMs,
		// too.
		if i == 0 {
			addNonces = append(addNonces, decNonceTPM...)
			addNonces = append(addNonces, encNonceTPM...)
		}
		auth, err := s.Authorize(cc, parms, addNonces, names, i)
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", i, err)
		}
		if err := marshal(buf, reflect.ValueOf(auth).Elem()); err != nil {
			return nil, MarshalError{msg: fmt.Sprintf("marshalling auth session %d", i), err: err}
		}
	}

	result := buf.Bytes()
	// Write the size.
	binary.BigEndian.PutUint32(result[0:], uint32(buf.Len()-4))

	return result, nil
}

// cmdHeader returns the structured TPM command header.
func cmdHeader(hasSessions bool, length int, cc CC) []byte {
	tag := STNoSessions
	if hasSessions {
		tag = STSessions
	}
	hdr := CmdHeader{
		Tag:         tag,
		Length:      uint32(length),
		CommandCode: cc,
	}
	buf := bytes.NewBuffer(make([]byte, 0, 10))
	marshal(buf, reflect.ValueOf(hdr))
	return buf.Bytes()
}

// rspHeader parses the response header. If the TPM returned an error, returns
// it here.
// rsp is updated to point to the rest of the response after the header.
func rspHeader(rsp *bytes.Buffer) error {
	var hdr RspHeader
	if err := unmarshal(rsp, reflect.ValueOf(&hdr).Elem()); err != nil {
		return MarshalError{msg: "unmarshalling TPM response header", err: err}
	}
	if hdr.ResponseCode != RCSuccess {
		return hdr.ResponseCode
	}
	return nil
}

// rspHandles parses the response handles area into the response structure.
// If there is a mismatch between the expected and actual amount of handles,
// returns an error here.
// rsp is updated to point to the rest of the response after the handles.
func rspHandles(rsp *bytes.Buffer, rspStruct Response) error {
	handles := taggedMembers(reflect.ValueOf(rspStruct).Elem(), "handle", false)
	for i, handle := range handles {
		if err := unmarshal(rsp, handle); err != nil {
			return MarshalError{msg: fmt.Sprintf("unmarshalling handle %v", i), err: err}
		}
	}
	return nil
}

// rspParametersArea fetches, but does not manipulate, the parameters area
// from the response. If there is a mismatch between the response's indicated
// parameters area size and the actual size, returns an error here.
// rsp is updated to point to the rest of the response after the parameters.
func rspParametersArea(hasSessions bool, rsp *bytes.Buffer) ([]byte, error) {
	var length uint32
	if hasSessions {
		if err := binary.Read(rsp, binary.BigEndian, &length); err != nil {
			return nil, MarshalError{msg: "reading length of parameter area", err: err}
		}
	} else {
		// If there are no sessions, there is no length-of-parameters
		// field, because the whole rest of the response is the parameters
		// area.
		length = uint32(rsp.Len())
	}
	if length > uint32(rsp.Len()) {
		return nil, MarshalError{msg: fmt.Sprintf("response indicated %d bytes of parameters but there "+
			"were only %d more bytes of response", length, rsp.Len())}
	}
	if length > math.MaxInt32 {
		return nil, MarshalError{msg: fmt.Sprintf("invalid length of parameter area: %d", length)}
	}
	parms := make([]byte, int(length))
	if n, err := rsp.Read(parms); err != nil {
		return nil, MarshalError{msg: "reading parameter area", err: err}
	} else if n != len(parms) {
		return nil, MarshalError{msg: fmt.Sprintf("only read %d bytes of parameters, expected %d", n, len(parms))}
	}
	return parms, nil
}

// rspSessions fetches the sessions area of the response and updates all the
// sessions with it. If there is a response validation error, returns an error
// here.
// rsp is updated to point to the rest of the response after the sessions.
func rspSessions(rsp *bytes.Buffer, rc RC, cc CC, names []TPM2BName, parms []byte, sess []Session) error {
	for i, s := range sess {
		var auth TPMSAuthResponse
		if err := unmarshal(rsp, reflect.ValueOf(&auth).Elem()); err != nil {
			return MarshalError{msg: fmt.Sprintf("reading auth session %d", i), err: err}
		}
		if err := s.Validate(rc, cc, parms, names, i, &auth); err != nil {
			return fmt.Errorf("validating auth session %d: %w", i, err)
		}
	}
	if rsp.Len() != 0 {
		return MarshalError{msg: fmt.Sprintf("%d unaccounted-for bytes at the end of the TPM response", rsp.Len())}
	}
	return nil
}

// rspParameters decrypts (if needed) the parameters area of the response into
// the response structure. If there is a mismatch between the expected and
// actual response structure, returns an error here.
func rspParameters(parms []byte, sess []Session, rspStruct Response) error {
	parmsFields := taggedMembers(reflect.ValueOf(rspStruct).Elem(), "handle", true)

	// Use the heuristic of "does interpreting the first 2 bytes of
	// response as a length make any sense" to attempt encrypted parameter
	// decryption.
	// If the command supports parameter encryption, the first parameter is
	// a 2B.
	if len(parms) < 2 {
		return nil
	}
	length := binary.BigEndian.Uint16(parms[0:])
	if int(length)+2 <= len(parms) {
		for i, s := range sess {
			if !s.IsEncryption() {
				continue
			}
			if err := s.Decrypt(parms[2 : 2+length]); err != nil {
				return fmt.Errorf("decrypting first parameter with session %d: %w", i, err)
			}
		}
	}
	if err := unmarshal(bytes.NewBuffer(parms), parmsFields...); err != nil {
		return MarshalError{msg: "unmarshalling response parameters", err: err}
	}
	return nil
}
