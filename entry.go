package qlog

import "github.com/pkg/errors"

// MaxQubits is the absolute maximum of qubits a log or entry may address.
const MaxQubits = 256

// Entry is a single recorded gate application.
type Entry struct {
	qubits      []int
	gate        Gate
	application Application
}

// NewEntry will validate the provided application and return an entry that
// owns a copy of the qubit list. The caller may reuse the list afterwards.
func NewEntry(qubits []int, app Application, gate Gate) (*Entry, error) {
	// validate
	err := validate(qubits, app, gate)
	if err != nil {
		return nil, err
	}

	// copy qubits
	list := make([]int, len(qubits))
	copy(list, qubits)

	return &Entry{
		qubits:      list,
		gate:        gate,
		application: app,
	}, nil
}

// Gate returns the applied gate.
func (e *Entry) Gate() Gate {
	return e.gate
}

// Application returns the topology of the application.
func (e *Entry) Application() Application {
	return e.application
}

// Qubits returns a copy of the qubits in application order.
func (e *Entry) Qubits() []int {
	return append([]int(nil), e.qubits...)
}

// Len returns the number of qubits.
func (e *Entry) Len() int {
	return len(e.qubits)
}

// Qubit returns the qubit at the specified position.
func (e *Entry) Qubit(i int) int {
	return e.qubits[i]
}

// Equal returns whether both entries apply the same gate with the same
// topology to the same qubits.
func (e *Entry) Equal(other *Entry) bool {
	// check gate and application
	if e.gate != other.gate || e.application != other.application {
		return false
	}

	return sameQubits(e.qubits, other.qubits)
}

func (e *Entry) clone() *Entry {
	return &Entry{
		qubits:      e.Qubits(),
		gate:        e.gate,
		application: e.application,
	}
}

func (e *Entry) release() {
	e.qubits = nil
}

func sameQubits(a, b []int) bool {
	// check length
	if len(a) != len(b) {
		return false
	}

	// compare qubits
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func validate(qubits []int, app Application, gate Gate) error {
	// check enumerations
	if !gate.Valid() {
		return errors.Wrap(ErrInvalidEntry, "unknown gate")
	} else if !app.Valid() {
		return errors.Wrap(ErrInvalidEntry, "unknown application")
	}

	// check length
	if len(qubits) == 0 {
		return errors.Wrap(ErrInvalidEntry, "empty qubit list")
	} else if len(qubits) > MaxQubits {
		return errors.Wrapf(ErrInvalidEntry, "more than %d qubits", MaxQubits)
	}

	// check topology
	if len(qubits) < app.minQubits() || len(qubits) > app.maxQubits() {
		return errors.Wrapf(ErrInvalidEntry, "%d qubits for %s application", len(qubits), app)
	}

	// check indexes
	var seen [MaxQubits]bool
	for _, qubit := range qubits {
		if qubit < 0 || qubit >= MaxQubits {
			return errors.Wrapf(ErrInvalidEntry, "qubit %d out of range", qubit)
		} else if seen[qubit] {
			return errors.Wrapf(ErrInvalidEntry, "duplicate qubit %d", qubit)
		}
		seen[qubit] = true
	}

	return nil
}
