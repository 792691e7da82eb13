package qlog

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// PipelineConfig is used to configure a pipeline.
type PipelineConfig struct {
	// The names of the built-in passes to register, in order. If empty, the
	// default passes are registered.
	Passes []string `yaml:"passes"`

	// The logger used to report pass results.
	Logger *zap.Logger `yaml:"-"`

	// The metrics updated with removed entries.
	Metrics *Metrics `yaml:"-"`
}

// DefaultPasses returns the passes registered by default.
func DefaultPasses() []Pass {
	return []Pass{RemoveIdentityGates{}}
}

// Pipeline applies an ordered list of passes to a log.
type Pipeline struct {
	config PipelineConfig
	logger *zap.Logger
	passes []Pass
}

// NewPipeline creates and returns a pipeline with the specified passes.
func NewPipeline(config PipelineConfig, passes ...Pass) *Pipeline {
	// set default logger
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// prepare pipeline
	p := &Pipeline{
		config: config,
		logger: logger,
	}

	// register passes
	for _, pass := range passes {
		p.Register(pass)
	}

	return p
}

// BuildPipeline creates a pipeline with the built-in passes named in the
// config or the default passes if none are named.
func BuildPipeline(config PipelineConfig) (*Pipeline, error) {
	// use default passes
	if len(config.Passes) == 0 {
		return NewPipeline(config, DefaultPasses()...), nil
	}

	// lookup passes
	passes := make([]Pass, 0, len(config.Passes))
	for _, name := range config.Passes {
		pass, ok := LookupPass(name)
		if !ok {
			return nil, errors.Errorf("qlog: unknown pass %q", name)
		}
		passes = append(passes, pass)
	}

	return NewPipeline(config, passes...), nil
}

// DefaultPipeline returns a pipeline with the default passes.
func DefaultPipeline() *Pipeline {
	return NewPipeline(PipelineConfig{}, DefaultPasses()...)
}

// Register will add the pass to the end of the pipeline.
func (p *Pipeline) Register(pass Pass) {
	// check pass
	if pass == nil {
		panic("qlog: missing pass")
	}

	p.passes = append(p.passes, pass)
}

// Passes returns the names of the registered passes in order.
func (p *Pipeline) Passes() []string {
	names := make([]string, 0, len(p.passes))
	for _, pass := range p.passes {
		names = append(names, pass.Name())
	}

	return names
}

// Optimize will run all passes in order and return the resulting log. Every
// pass reads the log produced by the previous pass. The provided log is never
// modified and remains owned by the caller, while intermediate logs are
// destroyed as soon as they have been superseded. Without passes a copy of the
// provided log is returned.
func (p *Pipeline) Optimize(log *Log) (*Log, PipelineState, error) {
	// prepare state
	var state PipelineState

	// check handle
	if log.Destroyed() {
		return nil, state, ErrInvalidHandle
	}

	// copy if there are no passes
	if len(p.passes) == 0 {
		cpy, err := log.Copy()
		return cpy, state, err
	}

	// run passes
	src := log
	for _, pass := range p.passes {
		// create destination
		dst, err := NewLog(src.Qubits(), src.Capacity())
		if err != nil {
			p.discard(log, src)
			return nil, state, errors.Wrapf(err, "pass %s", pass.Name())
		}

		// get counter
		removed := state.EntriesRemoved

		// apply pass
		err = pass.Apply(src, dst, &state)
		if err != nil {
			dst.Destroy()
			p.discard(log, src)
			return nil, state, errors.Wrapf(err, "pass %s", pass.Name())
		}

		// report
		removed = state.EntriesRemoved - removed
		p.config.Metrics.observe(pass.Name(), removed)
		p.logger.Debug("applied pass",
			zap.String("pass", pass.Name()),
			zap.Int("before", src.Size()),
			zap.Int("after", dst.Size()),
			zap.Int("removed", removed),
		)

		// release superseded log
		p.discard(log, src)

		// continue with destination
		src = dst
	}

	return src, state, nil
}

func (p *Pipeline) discard(input, log *Log) {
	// never destroy the callers log
	if log != input {
		log.Destroy()
	}
}

// Optimize runs the default pipeline on the provided log.
func Optimize(log *Log) (*Log, PipelineState, error) {
	return DefaultPipeline().Optimize(log)
}
