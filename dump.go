package qlog

import (
	"bytes"
	"fmt"
	"io"

	"github.com/kr/pretty"
)

// Dump will write a human readable rendering of the log to the writer. The
// format is meant for diagnostics and may change at any time.
func (l *Log) Dump(w io.Writer, verbose bool) error {
	// check handle
	if l.Destroyed() {
		return ErrInvalidHandle
	}

	// write header
	if verbose {
		_, err := fmt.Fprintf(w, "log: size=%d capacity=%d qubits=%d state=%s\n", l.Size(), l.capacity, l.qubits, l.state)
		if err != nil {
			return err
		}
	}

	// write entries
	var err error
	l.Scan(func(i int, e *Entry) bool {
		if verbose {
			_, err = fmt.Fprintf(w, "%d: qubits=%d %v %s %s\n", i, len(e.qubits), e.qubits, e.gate, e.application)
		} else {
			_, err = fmt.Fprintf(w, "%d: %v %s %s\n", i, e.qubits, e.gate, e.application)
		}
		return err == nil
	})

	return err
}

// String returns the non-verbose dump of the log.
func (l *Log) String() string {
	var buf bytes.Buffer
	_ = l.Dump(&buf, false)
	return buf.String()
}

type entryView struct {
	Gate        string
	Application string
	Qubits      []int
}

func view(l *Log) []entryView {
	list := make([]entryView, 0, l.Size())
	l.Scan(func(_ int, e *Entry) bool {
		list = append(list, entryView{
			Gate:        e.gate.String(),
			Application: e.application.String(),
			Qubits:      e.Qubits(),
		})
		return true
	})

	return list
}

// Diff returns a human readable list of the differences between the entries
// of both logs. The list is empty if both logs hold equal entries in the same
// order.
func Diff(a, b *Log) []string {
	return pretty.Diff(view(a), view(b))
}
