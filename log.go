package qlog

import "github.com/pkg/errors"

// MaxCapacity is the largest capacity a log may be created with.
const MaxCapacity = 1 << 24

// LogState describes whether a log holds entries or has been cleared.
type LogState uint8

// The available log states.
const (
	Active LogState = iota
	Cleared
)

// String returns the name of the state.
func (s LogState) String() string {
	switch s {
	case Active:
		return "active"
	case Cleared:
		return "cleared"
	default:
		return "invalid"
	}
}

// Log is an ordered and bounded list of entries for a fixed amount of qubits.
// Entries are only ever appended; removals happen by rebuilding a log. A log
// must only be used by one goroutine at a time.
type Log struct {
	qubits    int
	capacity  int
	state     LogState
	nodes     []Entry
	size      int
	destroyed bool
}

// NewLog creates and returns a new log for the specified amount of qubits. The
// storage for all entries is allocated at once.
func NewLog(qubits, capacity int) (*Log, error) {
	// check qubits
	if qubits <= 0 || qubits > MaxQubits {
		return nil, errors.Wrapf(ErrInvalidQubitCount, "%d qubits", qubits)
	}

	// check capacity
	if capacity < 0 || capacity > MaxCapacity {
		return nil, errors.Wrapf(ErrAllocationFailure, "capacity %d", capacity)
	}

	return &Log{
		qubits:   qubits,
		capacity: capacity,
		nodes:    make([]Entry, capacity),
	}, nil
}

// Qubits returns the declared number of qubits.
func (l *Log) Qubits() int {
	if l == nil {
		return 0
	}

	return l.qubits
}

// Capacity returns the maximum number of entries.
func (l *Log) Capacity() int {
	if l == nil {
		return 0
	}

	return l.capacity
}

// State returns the current state of the log.
func (l *Log) State() LogState {
	if l == nil {
		return Cleared
	}

	return l.state
}

// Destroyed returns whether the log has been destroyed.
func (l *Log) Destroyed() bool {
	return l == nil || l.destroyed
}

// Size returns the number of entries in the log. A cleared or destroyed log
// has a size of zero.
func (l *Log) Size() int {
	// check handle and state
	if l.Destroyed() || l.state == Cleared {
		return 0
	}

	return l.size
}

// Append will add an entry for the specified application to the end of the
// log. It returns ErrFull if the log reached its capacity and an error
// wrapping ErrInvalidEntry if the application is malformed.
func (l *Log) Append(qubits []int, app Application, gate Gate) error {
	// check handle
	if l.Destroyed() {
		return ErrInvalidHandle
	}

	// validate application
	err := validate(qubits, app, gate)
	if err != nil {
		return err
	}

	return l.push(qubits, app, gate)
}

// AppendEntry will add a copy of the provided entry to the end of the log.
func (l *Log) AppendEntry(entry *Entry) error {
	// check handle
	if l.Destroyed() {
		return ErrInvalidHandle
	}

	// check entry
	if entry == nil || len(entry.qubits) == 0 {
		return errors.Wrap(ErrInvalidEntry, "released entry")
	}

	return l.push(entry.qubits, entry.application, entry.gate)
}

func (l *Log) push(qubits []int, app Application, gate Gate) error {
	// check qubits against log
	if len(qubits) > l.qubits {
		return errors.Wrapf(ErrInvalidEntry, "%d qubits for a %d qubit log", len(qubits), l.qubits)
	}
	for _, qubit := range qubits {
		if qubit >= l.qubits {
			return errors.Wrapf(ErrInvalidEntry, "qubit %d out of range for a %d qubit log", qubit, l.qubits)
		}
	}

	// start fresh if cleared
	if l.state == Cleared {
		l.size = 0
		l.state = Active
	}

	// check capacity
	if l.size >= l.capacity {
		return ErrFull
	}

	// copy qubits
	list := make([]int, len(qubits))
	copy(list, qubits)

	// save entry to end
	l.nodes[l.size] = Entry{
		qubits:      list,
		gate:        gate,
		application: app,
	}
	l.size++

	return nil
}

// Entry will return a copy of the entry on the specified position in the log.
// Negative indexes are counted backwards. The copy stays valid after the log
// is cleared or destroyed.
func (l *Log) Entry(index int) (*Entry, bool) {
	// get size
	size := l.Size()

	// make absolute if backward
	if index < 0 {
		index += size
	}

	// check if in range
	if index < 0 || index >= size {
		return nil, false
	}

	return l.nodes[index].clone(), true
}

// Scan will iterate over the entries in order until false is returned. The
// yielded entries are owned by the log and must not be retained beyond the
// next modification of the log.
func (l *Log) Scan(fn func(int, *Entry) bool) {
	// iterate from first to last
	for i := 0; i < l.Size(); i++ {
		if !fn(i, &l.nodes[i]) {
			return
		}
	}
}

// Entries returns copies of the entries of the log in order.
func (l *Log) Entries() []*Entry {
	// collect entries
	list := make([]*Entry, 0, l.Size())
	l.Scan(func(_ int, e *Entry) bool {
		list = append(list, e.clone())
		return true
	})

	return list
}

// Copy returns a new log with the same qubits, capacity and entries.
func (l *Log) Copy() (*Log, error) {
	// check handle
	if l.Destroyed() {
		return nil, ErrInvalidHandle
	}

	// create log
	cpy, err := NewLog(l.qubits, l.capacity)
	if err != nil {
		return nil, err
	}

	// copy entries
	for i := 0; i < l.Size(); i++ {
		err = cpy.AppendEntry(&l.nodes[i])
		if err != nil {
			cpy.Destroy()
			return nil, err
		}
	}

	return cpy, nil
}

// Clear will release all entries and mark the log as cleared. The storage is
// kept so the log can be refilled up to its capacity. Clearing a cleared log
// has no effect.
func (l *Log) Clear() {
	// check handle and state
	if l.Destroyed() || l.state == Cleared {
		return
	}

	// release entries
	l.release()

	// set state
	l.state = Cleared
}

// Destroy will release all entries and the storage of the log. The log must
// not be used afterwards. Destroying a log twice has no effect.
func (l *Log) Destroy() {
	// check handle
	if l.Destroyed() {
		return
	}

	// release entries unless cleared
	if l.state != Cleared {
		l.release()
	}

	// release storage
	l.nodes = nil
	l.state = Cleared
	l.destroyed = true
}

func (l *Log) release() {
	// unset all entries
	for i := 0; i < l.size; i++ {
		l.nodes[i].release()
		l.nodes[i] = Entry{}
	}

	// reset size
	l.size = 0
}
