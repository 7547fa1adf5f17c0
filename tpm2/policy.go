package tpm2

import (
	"crypto"
)

// PolicyCalculator represents a TPM 2.0 policy that needs to be calculated
// synthetically (i.e., without a TPM).
type PolicyCalculator struct {
	alg   TPMIAlgHash
	hash  crypto.Hash
	state []byte
}

// NewPolicyCalculator creates a fresh policy using the given hash algorithm.
func NewPolicyCalculator(alg TPMIAlgHash) (*PolicyCalculator, error) {
	hash, err := alg.Hash()
	if err != nil {
		return nil, err
	}
	return &PolicyCalculator{
		alg:   alg,
		hash:  hash,
		state: make([]byte, hash.Size()),
	}, nil
}

// Reset resets the internal state of the policy hash to all 0x00.
func (p *PolicyCalculator) Reset() {
	p.state = make([]byte, p.hash.Size())
}

// Update updates the state of the policy hash by appending the current state
// and the given contents, and hashing the result.
// The policy digest is order-sensitive: extending A then B yields a
// different result from B then A.
func (p *PolicyCalculator) Update(values ...interface{}) error {
	hash := p.hash.New()
	hash.Write(p.state)
	if err := Marshal(hash, values...); err != nil {
		return err
	}
	p.state = hash.Sum(nil)
	return nil
}

// Hash returns the current state of the policy hash.
func (p *PolicyCalculator) Hash() *TPMTHA {
	result := TPMTHA{
		HashAlg: p.alg,
		Digest:  make([]byte, len(p.state)),
	}
	copy(result.Digest, p.state)
	return &result
}
