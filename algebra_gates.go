package qdd

import "math"

// MakeToffoliDD builds a multi-controlled Pauli-X gate diagram (the
// Toffoli family: CNOT is the two-qubit case, Toffoli itself the
// three-qubit case). Results are memoized in the Toffoli cache keyed
// by qubit count, target, and the canonical control encoding, since
// circuits built qubit-by-qubit tend to request the same
// controlled-X shape repeatedly across many gate applications.
func (p *Package) MakeToffoliDD(nqubits int, controls *ControlSet, target int) (Edge, error) {
	key := toffoliKey{nqubits: nqubits, target: target, controls: controls.key()}
	if cached, hit := p.toffoli.lookup(key); hit {
		return cached, nil
	}

	dd, err := p.MakeGateDD(pauliXGate, nqubits, controls, target)
	if err != nil {
		return Edge{}, err
	}
	p.toffoli.insert(key, dd)
	return dd, nil
}

var pauliXGate = [4]ComplexValue{{}, {Re: 1}, {Re: 1}, {}}

// RotationX/Y/Z name the three single-qubit rotation families
// MakeRotationDD accepts.
const (
	RotationX = "RX"
	RotationY = "RY"
	RotationZ = "RZ"
)

// MakeRotationDD builds a single-qubit rotation gate diagram by angle
// theta (radians) around the named axis, memoized in the operation
// cache keyed by (axis, target, theta) so repeated identical rotations
// across a circuit -- e.g. the same variational layer applied at every
// timestep -- reuse one diagram rather than rebuilding it.
func (p *Package) MakeRotationDD(nqubits int, target int, axis string, theta float64) (Edge, error) {
	key := operationKey{opID: axis, target: target, param1: theta}
	if cached, hit := p.operations.lookup(key); hit {
		return cached, nil
	}

	mat, err := rotationMatrix(axis, theta)
	if err != nil {
		return Edge{}, err
	}
	dd, err := p.MakeGateDD(mat, nqubits, nil, target)
	if err != nil {
		return Edge{}, err
	}
	p.operations.insert(key, dd)
	return dd, nil
}

func rotationMatrix(axis string, theta float64) ([4]ComplexValue, error) {
	c := math.Cos(theta / 2)
	s := math.Sin(theta / 2)
	switch axis {
	case RotationX:
		return [4]ComplexValue{{Re: c}, {Im: -s}, {Im: -s}, {Re: c}}, nil
	case RotationY:
		return [4]ComplexValue{{Re: c}, {Re: -s}, {Re: s}, {Re: c}}, nil
	case RotationZ:
		return [4]ComplexValue{{Re: c, Im: -s}, {}, {}, {Re: c, Im: s}}, nil
	default:
		return [4]ComplexValue{}, ErrUnknownGate
	}
}
