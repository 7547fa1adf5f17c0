package tpm2

import (
	"bytes"
	"crypto/hmac"
	"encoding/binary"
)

// KDFa implements TPM 2.0's default key derivation function, as defined in
// section 11.4.9.2 of the TPM revision 2 specification part 1.
// The key & label parameters must not be zero length.
// The label parameter is a non-null-terminated string; KDFa appends the
// terminating null itself.
func KDFa(hashAlg AlgID, key []byte, label string, contextU, contextV []byte, bits int) ([]byte, error) {
	h, err := hashAlg.Hash()
	if err != nil {
		return nil, err
	}

	var counter uint32
	remaining := (bits + 7) / 8
	var out []byte

	for remaining > 0 {
		counter++
		mac := hmac.New(h.New, key)

		var d bytes.Buffer
		binary.Write(&d, binary.BigEndian, counter)
		d.WriteString(label)
		d.WriteByte(0)
		d.Write(contextU)
		d.Write(contextV)
		binary.Write(&d, binary.BigEndian, uint32(bits))

		mac.Write(d.Bytes())
		out = append(out, mac.Sum(nil)...)
		remaining -= mac.Size()
	}

	out = out[:(bits+7)/8]
	// If bits is not a multiple of 8, mask off the excess high-order bits
	// of the first byte.
	if bits%8 != 0 {
		out[0] &= (1 << (bits % 8)) - 1
	}
	return out, nil
}

// KDFe implements TPM 2.0's ECDH key derivation function, as defined in
// section 11.4.9.3 of the TPM revision 2 specification part 1.
// The z parameter is the x coordinate of one party's private ECC key
// multiplied by the other party's public ECC point.
func KDFe(hashAlg AlgID, z []byte, use string, partyUInfo, partyVInfo []byte, bits int) ([]byte, error) {
	h, err := hashAlg.Hash()
	if err != nil {
		return nil, err
	}

	var counter uint32
	remaining := (bits + 7) / 8
	var out []byte

	for remaining > 0 {
		counter++
		digest := h.New()

		var d bytes.Buffer
		binary.Write(&d, binary.BigEndian, counter)
		d.Write(z)
		d.WriteString(use)
		d.WriteByte(0)
		d.Write(partyUInfo)
		d.Write(partyVInfo)

		digest.Write(d.Bytes())
		out = append(out, digest.Sum(nil)...)
		remaining -= digest.Size()
	}

	return out[:(bits+7)/8], nil
}
