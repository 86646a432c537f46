package core

import "fmt"

// Signature is the ordered, name-unique collection of Registers forming a
// bloq's interface. External tools (drawing, simulation) read register
// names, widths and sides from here without needing a decomposition.
type Signature struct {
	regs []Register
}

// NewSignature validates name uniqueness and freezes the register order.
// The left and right register sets are independently well-formed: a
// SideLeft and a SideRight register may share a name (how Split and Join
// retype a wire), while two registers on the same boundary may not.
// Violations wrap ErrConstruction.
func NewSignature(regs ...Register) (Signature, error) {
	seenLeft := make(map[string]struct{}, len(regs))
	seenRight := make(map[string]struct{}, len(regs))
	for _, r := range regs {
		if r.side != SideRight {
			if _, dup := seenLeft[r.name]; dup {
				return Signature{}, fmt.Errorf("%w: duplicate left register name %q", ErrConstruction, r.name)
			}
			seenLeft[r.name] = struct{}{}
		}
		if r.side != SideLeft {
			if _, dup := seenRight[r.name]; dup {
				return Signature{}, fmt.Errorf("%w: duplicate right register name %q", ErrConstruction, r.name)
			}
			seenRight[r.name] = struct{}{}
		}
	}

	return Signature{regs: append([]Register(nil), regs...)}, nil
}

// MustSignature is NewSignature for statically valid register sets; panics
// on duplicates. Intended for Signature() methods of validated bloqs.
func MustSignature(regs ...Register) Signature {
	sig, err := NewSignature(regs...)
	if err != nil {
		panic(err)
	}

	return sig
}

// Registers returns a copy of all registers in declaration order.
func (s Signature) Registers() []Register {
	return append([]Register(nil), s.regs...)
}

// Lefts returns the registers present on the left (input) boundary,
// i.e. SideThru and SideLeft, in declaration order.
func (s Signature) Lefts() []Register {
	var out []Register
	for _, r := range s.regs {
		if r.side != SideRight {
			out = append(out, r)
		}
	}

	return out
}

// Rights returns the registers present on the right (output) boundary,
// i.e. SideThru and SideRight, in declaration order.
func (s Signature) Rights() []Register {
	var out []Register
	for _, r := range s.regs {
		if r.side != SideLeft {
			out = append(out, r)
		}
	}

	return out
}

// Get looks a register up by name.
func (s Signature) Get(name string) (Register, bool) {
	for _, r := range s.regs {
		if r.name == name {
			return r, true
		}
	}

	return Register{}, false
}

// Len returns the number of registers.
func (s Signature) Len() int { return len(s.regs) }

// Equal reports registerwise structural equality in order.
func (s Signature) Equal(o Signature) bool {
	if len(s.regs) != len(o.regs) {
		return false
	}
	for i := range s.regs {
		if !s.regs[i].Equal(o.regs[i]) {
			return false
		}
	}

	return true
}
