package qlog

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/tomb.v2"
)

// DefaultCapacity is the capacity of recorder logs if none is configured.
const DefaultCapacity = 1000

// RecorderConfig is used to configure a recorder.
type RecorderConfig struct {
	// The number of qubits of the recorded circuit.
	Qubits int `yaml:"qubits"`

	// The capacity of the recorded log.
	Capacity int `yaml:"capacity"`

	// The number of applications that may be queued.
	Backlog int `yaml:"backlog"`

	// The pipeline used to optimize a full log.
	Pipeline *Pipeline `yaml:"-"`

	// The archive used to flush a full log.
	Archive *Archive `yaml:"-"`

	// Whether an explicitly flushed log is optimized before being archived.
	OptimizeOnFlush bool `yaml:"optimizeOnFlush"`

	// The logger used to report optimizations and flushes.
	Logger *zap.Logger `yaml:"-"`
}

// WithDefaults returns a copy of the config with missing fields set to their
// default values.
func (c RecorderConfig) WithDefaults() RecorderConfig {
	cpy := c
	if cpy.Capacity <= 0 {
		cpy.Capacity = DefaultCapacity
	}
	if cpy.Backlog <= 0 {
		cpy.Backlog = 1
	}
	return cpy
}

type application struct {
	qubits []int
	app    Application
	gate   Gate
	ack    func(error)
}

// Recorder owns a log and appends queued gate applications from a single
// goroutine. If the log is full, it is optimized with the configured pipeline
// and, if still full, flushed to the configured archive and cleared.
type Recorder struct {
	config RecorderConfig
	logger *zap.Logger
	log    *Log
	pipe   chan application
	calls  chan func()
	mutex  sync.RWMutex
	once   sync.Once
	tomb   tomb.Tomb
}

// NewRecorder will create and return a recorder.
func NewRecorder(config RecorderConfig) (*Recorder, error) {
	// apply defaults
	config = config.WithDefaults()

	// create log
	log, err := NewLog(config.Qubits, config.Capacity)
	if err != nil {
		return nil, errors.Wrap(err, "create recorder")
	}

	// set default logger
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// prepare recorder
	r := &Recorder{
		config: config,
		logger: logger,
		log:    log,
		pipe:   make(chan application, config.Backlog),
		calls:  make(chan func()),
	}

	// run worker
	r.tomb.Go(r.worker)

	return r, nil
}

// Record will asynchronously append the specified application and call the
// provided callback with the result. It returns false if the recorder has been
// closed.
func (r *Recorder) Record(qubits []int, app Application, gate Gate, ack func(error)) bool {
	// check if closed
	select {
	case <-r.tomb.Dying():
		return false
	default:
	}

	// copy qubits
	list := make([]int, len(qubits))
	copy(list, qubits)

	// acquire mutex
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	// check again as the pipe may have been closed meanwhile
	select {
	case <-r.tomb.Dying():
		return false
	default:
	}

	// queue application
	select {
	case r.pipe <- application{qubits: list, app: app, gate: gate, ack: ack}:
		return true
	case <-r.tomb.Dying():
		return false
	}
}

// Snapshot returns a copy of the current log.
func (r *Recorder) Snapshot() (*Log, error) {
	// prepare result
	var log *Log
	var err error

	// copy log
	ok := r.call(func() {
		log, err = r.log.Copy()
	})
	if !ok {
		return nil, ErrInvalidHandle
	}

	return log, err
}

// Flush will store the current log in the configured archive and clear it. It
// returns the identifier of the stored log.
func (r *Recorder) Flush() (uint64, error) {
	// prepare result
	var id uint64
	var err error

	// flush log
	ok := r.call(func() {
		id, err = r.flush()
	})
	if !ok {
		return 0, ErrInvalidHandle
	}

	return id, err
}

// Close will close the recorder. Queued applications are still recorded.
func (r *Recorder) Close() {
	// kill tomb
	r.tomb.Kill(nil)

	// close pipe
	r.once.Do(func() {
		r.mutex.Lock()
		close(r.pipe)
		r.mutex.Unlock()
	})

	// wait for exit
	_ = r.tomb.Wait()
}

func (r *Recorder) call(fn func()) bool {
	// prepare signal
	done := make(chan struct{})

	// queue call
	select {
	case r.calls <- func() { fn(); close(done) }:
	case <-r.tomb.Dying():
		return false
	}

	// await call
	<-done

	return true
}

func (r *Recorder) worker() error {
	// release log on exit
	defer func() {
		r.log.Destroy()
	}()

	for {
		select {
		case a, ok := <-r.pipe:
			// return if pipe has been closed
			if !ok {
				return tomb.ErrDying
			}

			// record application
			err := r.record(a)
			if a.ack != nil {
				a.ack(err)
			}
		case fn := <-r.calls:
			fn()
		}
	}
}

func (r *Recorder) record(a application) error {
	// append entry
	err := r.log.Append(a.qubits, a.app, a.gate)
	if err != ErrFull {
		return err
	}

	// optimize if available
	if r.config.Pipeline != nil {
		err = r.optimize()
		if err != nil {
			return err
		}

		// retry append
		err = r.log.Append(a.qubits, a.app, a.gate)
		if err != ErrFull {
			return err
		}
	}

	// reject if no archive is available
	if r.config.Archive == nil {
		r.logger.Warn("rejected application",
			zap.String("gate", a.gate.String()),
			zap.Ints("qubits", a.qubits),
		)
		return ErrFull
	}

	// store log
	_, err = r.store()
	if err != nil {
		return err
	}

	return r.log.Append(a.qubits, a.app, a.gate)
}

func (r *Recorder) optimize() error {
	// optimize log
	optimized, state, err := r.config.Pipeline.Optimize(r.log)
	if err != nil {
		return err
	}

	// replace log
	r.log.Destroy()
	r.log = optimized

	r.logger.Debug("optimized log",
		zap.Int("size", r.log.Size()),
		zap.Int("removed", state.EntriesRemoved),
	)

	return nil
}

func (r *Recorder) flush() (uint64, error) {
	// check archive
	if r.config.Archive == nil {
		return 0, ErrNoArchive
	}

	// optimize if requested
	if r.config.OptimizeOnFlush && r.config.Pipeline != nil {
		err := r.optimize()
		if err != nil {
			return 0, err
		}
	}

	return r.store()
}

func (r *Recorder) store() (uint64, error) {
	// store log
	id, err := r.config.Archive.Store(r.log)
	if err != nil {
		return 0, err
	}

	r.logger.Info("flushed log",
		zap.Uint64("id", id),
		zap.Int("size", r.log.Size()),
	)

	// clear log
	r.log.Clear()

	return id, nil
}
