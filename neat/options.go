package neat

import "github.com/pkg/errors"

// InitialTopology selects the connection topology a freshly constructed
// Genome starts with.
type InitialTopology string

const (
	// TopologyNone leaves the connection set empty. It is the
	// DefaultOptions value.
	TopologyNone InitialTopology = "none"
	// TopologyOneLink invokes a single add-connection mutation.
	TopologyOneLink InitialTopology = "oneLink"
	// TopologyAllLinked connects every sensor to every output.
	TopologyAllLinked InitialTopology = "allLinked"
)

// EpochExecutorType selects how an experiment trial evaluates fitness
// across a generation's genomes. It governs only the concurrency of
// stage 1 of a generation (see neat/genetics.FitnessEvaluator); every
// other stage always runs single-threaded regardless of this setting.
type EpochExecutorType string

const (
	// EpochExecutorTypeSequential evaluates genomes one at a time.
	EpochExecutorTypeSequential EpochExecutorType = "sequential"
	// EpochExecutorTypeParallel evaluates genomes across a worker pool.
	EpochExecutorTypeParallel EpochExecutorType = "parallel"
)

// Options holds the caller-configurable parameters of a NEAT run. The
// mutation and speciation constants (weight-mutation probability,
// compatibility coefficients, staleness limits, ...) are intentionally
// not part of this struct: the spec this engine follows documents them
// as fixed constants, not tunables (see neat/genetics for their values).
type Options struct {
	// Demography is the fixed population size maintained across generations.
	Demography int `yaml:"demography" ini:"demography"`
	// Sensor is the number of non-bias sensor nodes.
	Sensor int `yaml:"sensor" ini:"sensor"`
	// Output is the number of output nodes.
	Output int `yaml:"output" ini:"output"`
	// Bias, when true, appends one extra sensor whose evaluated input is
	// pinned to 1.
	Bias bool `yaml:"bias" ini:"bias"`
	// InitState selects the genesis topology of every founding genome.
	InitState InitialTopology `yaml:"initState" ini:"-"`
	// SensorName and OutputName optionally label sensor/output nodes for
	// debugging output; they play no role in evaluation or mutation.
	SensorName []string `yaml:"sensorName" ini:"sensorName" delim:" "`
	OutputName []string `yaml:"outputName" ini:"outputName" delim:" "`
	// LogLevel configures the package-level logger (see neat/log.go).
	LogLevel string `yaml:"logLevel" ini:"logLevel"`
	// Seed seeds every stochastic draw a run makes (mutation, crossover,
	// selection, mascot refresh) via the innovation Registry's *rand.Rand,
	// so that two runs with the same Seed and the same fitness function
	// reproduce identically. Zero means "derive a seed from the current
	// time", matching the teacher's time-based default.
	Seed int64 `yaml:"seed" ini:"seed"`

	// NumRuns is how many independent trials an experiment repeats, each
	// starting from a freshly constructed population.
	NumRuns int `yaml:"numRuns" ini:"numRuns"`
	// NumGenerations is the maximum number of generations a trial steps
	// through before giving up on finding a solution.
	NumGenerations int `yaml:"numGenerations" ini:"numGenerations"`
	// EpochExecutorType selects sequential or worker-pool fitness
	// evaluation for every trial's generations.
	EpochExecutorType EpochExecutorType `yaml:"epochExecutorType" ini:"epochExecutorType"`
}

// DefaultOptions returns an Options value with the reference defaults:
// a population of 150, bias enabled, and no initial connections.
func DefaultOptions() *Options {
	return &Options{
		Demography:        150,
		Bias:              true,
		InitState:         TopologyNone,
		LogLevel:          string(LogLevelInfo),
		NumRuns:           1,
		NumGenerations:    100,
		EpochExecutorType: EpochExecutorTypeSequential,
	}
}

// Validate enforces the configuration-error policy: a NEAT run must fail
// fast at construction time rather than misbehave partway through a
// generation.
func (o *Options) Validate() error {
	if o.Demography < 1 {
		return errors.Errorf("invalid demography: %d", o.Demography)
	}
	if o.Sensor < 1 {
		return errors.Errorf("invalid sensor count: %d", o.Sensor)
	}
	if o.Output < 1 {
		return errors.Errorf("invalid output count: %d", o.Output)
	}
	switch o.InitState {
	case TopologyNone, TopologyOneLink, TopologyAllLinked:
	default:
		return errors.Errorf("unknown initState: %q", o.InitState)
	}
	if o.SensorName != nil && len(o.SensorName) != o.Sensor {
		return errors.Errorf("sensorName has %d entries, want %d", len(o.SensorName), o.Sensor)
	}
	if o.OutputName != nil && len(o.OutputName) != o.Output {
		return errors.Errorf("outputName has %d entries, want %d", len(o.OutputName), o.Output)
	}
	if o.NumRuns < 0 {
		return errors.Errorf("invalid numRuns: %d", o.NumRuns)
	}
	if o.NumGenerations < 0 {
		return errors.Errorf("invalid numGenerations: %d", o.NumGenerations)
	}
	switch o.EpochExecutorType {
	case "", EpochExecutorTypeSequential, EpochExecutorTypeParallel:
	default:
		return errors.Errorf("unknown epochExecutorType: %q", o.EpochExecutorType)
	}
	return nil
}

// TotalSensors returns the configured sensor count including the bias
// sensor, if enabled.
func (o *Options) TotalSensors() int {
	if o.Bias {
		return o.Sensor + 1
	}
	return o.Sensor
}
