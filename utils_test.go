package qlog

import "go.uber.org/zap"

type op struct {
	qubits []int
	app    Application
	gate   Gate
}

func makeLog(qubits, capacity int, ops ...op) *Log {
	// create log
	log, err := NewLog(qubits, capacity)
	if err != nil {
		panic(err)
	}

	// append entries
	for _, o := range ops {
		err = log.Append(o.qubits, o.app, o.gate)
		if err != nil {
			panic(err)
		}
	}

	return log
}

func listOps(log *Log) []op {
	var list []op
	log.Scan(func(_ int, e *Entry) bool {
		list = append(list, op{
			qubits: e.Qubits(),
			app:    e.Application(),
			gate:   e.Gate(),
		})
		return true
	})

	return list
}

func single(gate Gate, qubit int) op {
	return op{qubits: []int{qubit}, app: ApplicationSingle, gate: gate}
}

func controlled(gate Gate, control, target int) op {
	return op{qubits: []int{control, target}, app: ApplicationControlled, gate: gate}
}

func openArchive() *Archive {
	archive, err := OpenArchive(ArchiveConfig{
		InMemory: true,
		Logger:   zap.NewNop(),
	})
	if err != nil {
		panic(err)
	}

	return archive
}

func closeArchive(archive *Archive) {
	err := archive.Close()
	if err != nil {
		panic(err)
	}
}
