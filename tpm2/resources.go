package tpm2

// resource is the connection's view of one TPM entity: the Name it was
// loaded or created with, and the auth value the caller registered for it.
type resource struct {
	name TPM2BName
	auth []byte
}

// trackHandle records the Name of a loaded entity so later commands can
// authorize it without the caller re-supplying the Name.
func (t *TPM) trackHandle(h Handle, name TPM2BName) {
	if h == RHNull {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	res := t.resources[h]
	if res == nil {
		res = &resource{}
		t.resources[h] = res
	}
	res.name = name
}

// forgetHandle drops any tracking state for the handle.
func (t *TPM) forgetHandle(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.resources, h)
}

// lookupName returns the tracked Name for the handle, if any.
func (t *TPM) lookupName(h Handle) (TPM2BName, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	res, ok := t.resources[h]
	if !ok || len(res.name.Buffer) == 0 {
		return TPM2BName{}, false
	}
	return res.name, true
}

// storedAuth returns the auth value registered for the handle via SetAuth.
// Returns nil (the well-known empty auth) for untracked handles.
func (t *TPM) storedAuth(h Handle) []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	if res, ok := t.resources[h]; ok {
		return res.auth
	}
	return nil
}

// SetAuth registers the auth value for a handle. Commands that authorize the
// handle without an explicit session use this value in a password session.
func (t *TPM) SetAuth(h Handle, auth []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	res := t.resources[h]
	if res == nil {
		res = &resource{}
		t.resources[h] = res
	}
	res.auth = auth
}

// Forget drops the tracking state for a handle without flushing it from the
// TPM. Useful for handles that outlive the connection, e.g. persistent
// objects.
func (t *TPM) Forget(h Handle) {
	t.forgetHandle(h)
}

// FromTPMPublic reads the public area of the entity at the given handle and
// begins tracking it, returning a NamedHandle usable in commands.
// The TPM itself is the authoritative source for the Name, so this works for
// entities created outside this connection.
func (t *TPM) FromTPMPublic(h Handle) (*NamedHandle, error) {
	switch h.Class() {
	case HTNVIndex:
		rsp, err := (&NVReadPublic{NVIndex: h}).Execute(t)
		if err != nil {
			return nil, err
		}
		t.trackHandle(h, rsp.NVName)
		return &NamedHandle{Handle: h, Name: rsp.NVName}, nil
	case HTTransient, HTPersistent:
		rsp, err := (&ReadPublic{ObjectHandle: h}).Execute(t)
		if err != nil {
			return nil, err
		}
		t.trackHandle(h, rsp.Name)
		return &NamedHandle{Handle: h, Name: rsp.Name}, nil
	default:
		// PCR, session, and permanent handles have well-known Names.
		if known := h.KnownName(); known != nil {
			return &NamedHandle{Handle: h, Name: *known}, nil
		}
		return nil, UnknownHandleError{Handle: h}
	}
}
