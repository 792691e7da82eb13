package qlog

// PipelineState carries the statistics of a single optimization run. It is
// shared by all passes of the run.
type PipelineState struct {
	// The number of entries that have not been carried over.
	EntriesRemoved int
}

// Pass is a single rewrite of a log. A pass reads the source in order and
// appends the entries to keep, verbatim or transformed, to the destination.
// It must not reorder entries and must not modify the source.
type Pass interface {
	// Name returns the unique name of the pass.
	Name() string

	// Apply rewrites the source into the destination.
	Apply(src, dst *Log, state *PipelineState) error
}

var builtinPasses = map[string]func() Pass{
	RemoveIdentityGates{}.Name(): func() Pass { return RemoveIdentityGates{} },
	CancelInversePairs{}.Name():  func() Pass { return CancelInversePairs{} },
}

// LookupPass returns the built-in pass with the specified name.
func LookupPass(name string) (Pass, bool) {
	factory, ok := builtinPasses[name]
	if !ok {
		return nil, false
	}

	return factory(), true
}

// RemoveIdentityGates drops all entries that apply the identity gate.
type RemoveIdentityGates struct{}

// Name implements the Pass interface.
func (RemoveIdentityGates) Name() string {
	return "remove-identity-gates"
}

// Apply implements the Pass interface.
func (RemoveIdentityGates) Apply(src, dst *Log, state *PipelineState) error {
	// prepare error
	var err error

	// copy all non identity entries
	src.Scan(func(_ int, e *Entry) bool {
		// skip identity
		if e.gate == GateIdentity {
			state.EntriesRemoved++
			return true
		}

		// copy entry
		err = dst.AppendEntry(e)

		return err == nil
	})

	return err
}

// CancelInversePairs drops pairs of entries that undo each other. Two entries
// cancel if they apply mutually inverse gates to the same qubits with the same
// topology and no kept entry lies between them. Parametrized gates are never
// cancelled as their parameters are not recorded.
type CancelInversePairs struct{}

// Name implements the Pass interface.
func (CancelInversePairs) Name() string {
	return "cancel-inverse-pairs"
}

// Apply implements the Pass interface.
func (CancelInversePairs) Apply(src, dst *Log, state *PipelineState) error {
	// prepare stack of kept entries
	kept := make([]*Entry, 0, src.Size())

	// collect entries
	src.Scan(func(_ int, e *Entry) bool {
		// cancel with last kept entry
		if n := len(kept); n > 0 && inverse(kept[n-1], e) {
			kept = kept[:n-1]
			state.EntriesRemoved += 2
			return true
		}

		// keep entry
		kept = append(kept, e)

		return true
	})

	// copy kept entries
	for _, e := range kept {
		err := dst.AppendEntry(e)
		if err != nil {
			return err
		}
	}

	return nil
}

var inverses = map[Gate]Gate{
	GateHadamard: GateHadamard,
	GatePauliX:   GatePauliX,
	GatePauliY:   GatePauliY,
	GatePauliZ:   GatePauliZ,
	GateCx:       GateCx,
	GateCy:       GateCy,
	GateCz:       GateCz,
	GateCh:       GateCh,
	GateCcx:      GateCcx,
	GateSwap:     GateSwap,
	GateS:        GateSdg,
	GateSdg:      GateS,
	GateT:        GateTdg,
	GateTdg:      GateT,
	GateSx:       GateSxdg,
	GateSxdg:     GateSx,
}

func inverse(a, b *Entry) bool {
	// check gates
	inv, ok := inverses[a.gate]
	if !ok || inv != b.gate {
		return false
	}

	// check topology and qubits
	return a.application == b.application && sameQubits(a.qubits, b.qubits)
}
