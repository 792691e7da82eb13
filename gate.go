package qlog

// Gate identifies the kind of gate applied by an entry.
type Gate uint8

// The available gates.
const (
	GateIdentity Gate = iota
	GateHadamard
	GatePauliX
	GatePauliY
	GatePauliZ
	GatePhase
	GateS
	GateSdg
	GateT
	GateTdg
	GateRz
	GateRy
	GateRx
	GateSx
	GateSxdg
	GateU
	GateCx
	GateCh
	GateCy
	GateCz
	GateCrx
	GateCry
	GateCrz
	GateCr1
	GateCcx
	GateQft
	GateRccx
	GateRc3x
	GateSwap
	GateRxx
	GateRzz
	GateCustom
	GateCustomControlled
	GateMulti
	GateCustomBlock
	GateCustomAlgorithm
)

var gates = []Gate{
	GateIdentity, GateHadamard, GatePauliX, GatePauliY, GatePauliZ, GatePhase,
	GateS, GateSdg, GateT, GateTdg, GateRz, GateRy, GateRx, GateSx, GateSxdg,
	GateU, GateCx, GateCh, GateCy, GateCz, GateCrx, GateCry, GateCrz, GateCr1,
	GateCcx, GateQft, GateRccx, GateRc3x, GateSwap, GateRxx, GateRzz,
	GateCustom, GateCustomControlled, GateMulti, GateCustomBlock,
	GateCustomAlgorithm,
}

var gateNames = map[string]Gate{}

func init() {
	// index gates by name
	for _, gate := range gates {
		gateNames[gate.String()] = gate
	}

	// index applications by name
	for _, app := range applications {
		applicationNames[app.String()] = app
	}
}

// Gates returns all gates in declaration order.
func Gates() []Gate {
	return append([]Gate(nil), gates...)
}

// ParseGate returns the gate with the specified display name.
func ParseGate(name string) (Gate, bool) {
	gate, ok := gateNames[name]
	return gate, ok
}

// Valid returns whether the gate is one of the declared gates.
func (g Gate) Valid() bool {
	return g <= GateCustomAlgorithm
}

// String returns the display name of the gate.
func (g Gate) String() string {
	switch g {
	case GateIdentity:
		return "identity"
	case GateHadamard:
		return "hadamard"
	case GatePauliX:
		return "paulix"
	case GatePauliY:
		return "pauliy"
	case GatePauliZ:
		return "pauliz"
	case GatePhase:
		return "phase"
	case GateS:
		return "s"
	case GateSdg:
		return "sdg"
	case GateT:
		return "t"
	case GateTdg:
		return "tdg"
	case GateRz:
		return "rz"
	case GateRy:
		return "ry"
	case GateRx:
		return "rx"
	case GateSx:
		return "sx"
	case GateSxdg:
		return "sxdg"
	case GateU:
		return "u"
	case GateCx:
		return "cx"
	case GateCh:
		return "ch"
	case GateCy:
		return "cy"
	case GateCz:
		return "cz"
	case GateCrx:
		return "crx"
	case GateCry:
		return "cry"
	case GateCrz:
		return "crz"
	case GateCr1:
		return "cr1"
	case GateCcx:
		return "ccx"
	case GateQft:
		return "qft"
	case GateRccx:
		return "rccx"
	case GateRc3x:
		return "rc3x"
	case GateSwap:
		return "swap"
	case GateRxx:
		return "rxx"
	case GateRzz:
		return "rzz"
	case GateCustom:
		return "custom"
	case GateCustomControlled:
		return "custom-controlled"
	case GateMulti:
		return "multi"
	case GateCustomBlock:
		return "custom-block"
	case GateCustomAlgorithm:
		return "custom-algorithm"
	default:
		return "invalid"
	}
}

// Application identifies the topology of a gate application.
type Application uint8

// The available applications.
const (
	ApplicationSingle Application = iota
	ApplicationControlled
	ApplicationMulti
	ApplicationBlock
	ApplicationAlgorithm
)

var applications = []Application{
	ApplicationSingle, ApplicationControlled, ApplicationMulti,
	ApplicationBlock, ApplicationAlgorithm,
}

var applicationNames = map[string]Application{}

// Applications returns all applications in declaration order.
func Applications() []Application {
	return append([]Application(nil), applications...)
}

// ParseApplication returns the application with the specified display name.
func ParseApplication(name string) (Application, bool) {
	app, ok := applicationNames[name]
	return app, ok
}

// Valid returns whether the application is one of the declared applications.
func (a Application) Valid() bool {
	return a <= ApplicationAlgorithm
}

// String returns the display name of the application.
func (a Application) String() string {
	switch a {
	case ApplicationSingle:
		return "single"
	case ApplicationControlled:
		return "controlled"
	case ApplicationMulti:
		return "multi"
	case ApplicationBlock:
		return "block"
	case ApplicationAlgorithm:
		return "algorithm"
	default:
		return "invalid"
	}
}

// minQubits returns the least number of qubits the application acts on.
func (a Application) minQubits() int {
	switch a {
	case ApplicationControlled, ApplicationMulti:
		return 2
	default:
		return 1
	}
}

// maxQubits returns the most qubits the application acts on.
func (a Application) maxQubits() int {
	if a == ApplicationSingle {
		return 1
	}

	return MaxQubits
}
