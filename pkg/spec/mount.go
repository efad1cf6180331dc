package spec

// Standard identifies a switch mount standard.
type Standard int

const (
	// Choc is the Kailh Choc v1 low-profile standard.
	Choc Standard = iota
	// MX is the Cherry MX-style standard.
	MX
)

// String returns the label code of the standard ("KL" or "MX").
func (s Standard) String() string {
	if s == MX {
		return "MX"
	}
	return "KL"
}

// KeyMountSpec selects the switch standard and stabilization.
type KeyMountSpec struct {
	MXMount   bool `json:"mx_mount" toml:"mx_mount"`
	MXStem    bool `json:"mx_stem" toml:"mx_stem"`
	Stab      bool `json:"stab" toml:"stab"`
	StabIsPOS bool `json:"stab_is_pos" toml:"stab_is_pos"`
}

// DefaultMount returns an MX mount with stabilizers enabled.
func DefaultMount() KeyMountSpec {
	return KeyMountSpec{MXMount: true, MXStem: true, Stab: true}
}

// Standard returns the mount standard selected by MXMount.
func (m KeyMountSpec) Standard() Standard {
	if m.MXMount {
		return MX
	}
	return Choc
}
