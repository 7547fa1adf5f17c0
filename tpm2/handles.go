package tpm2

// handle represents a TPM handle as comprehended in Part 3: Commands.
// In the case of most handles, the handle is known by its hex value alone.
// PCR, session, and permanent values have this behavior, but the Name of
// transient and persistent objects and NV indices must be tracked alongside
// the handle value.
type handle interface {
	// HandleValue is the numeric concrete handle value in the TPM.
	HandleValue() uint32
	// KnownName is the TPM Name of the associated entity.
	// See Part 1, section 16.
	KnownName() *TPM2BName
}

// NamedHandle represents a handle with a name.
type NamedHandle struct {
	Handle
	Name TPM2BName
}

// KnownName implements the handle interface, shadowing the default
// behavior of the embedded Handle.
func (h NamedHandle) KnownName() *TPM2BName {
	return &h.Name
}

// AuthHandle allows the caller to add an authorization session onto a handle.
type AuthHandle struct {
	Handle
	Name TPM2BName
	Auth Session
}

// KnownName implements the handle interface.
// If Name is not provided (i.e., only Auth), then rely on the underlying
// Handle.
func (h AuthHandle) KnownName() *TPM2BName {
	if len(h.Name.Buffer) != 0 {
		return &h.Name
	}
	return h.Handle.KnownName()
}

// Command is an interface for any TPM command, parameterized by its response
// type.
type Command interface {
	// Command returns the TPM command code associated with this command.
	Command() CC
}

// Response is an interface for the response from any TPM command.
type Response interface {
	// Response returns the TPM command code associated with this
	// response.
	Response() CC
}

// PolicyCommand is a TPM command that can be part of a TPM policy.
type PolicyCommand interface {
	// Update updates the given policy hash according to the command
	// parameters.
	Update(policy *PolicyCalculator) error
}
