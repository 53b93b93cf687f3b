package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/multimediallc/sensor-coverage/pkg/coverage"
)

// OutputData holds the results of one run, ready to be printed or written as JSON
type OutputData struct {
	Input    string             `json:"input"`
	Sensors  int                `json:"sensors"`
	Beacons  int                `json:"beacons"`
	Row      int                `json:"row"`
	Excluded int                `json:"excluded"`
	Bound    int                `json:"bound"`
	Signal   int                `json:"signal"`
	Position *coverage.Position `json:"position,omitempty"`
	Success  bool               `json:"success"`
	Message  string             `json:"message"`
}

func NewOutputData(input string, registry *coverage.Registry) *OutputData {
	return &OutputData{
		Input:   input,
		Sensors: len(registry.Sensors()),
		Beacons: len(registry.Beacons()),
	}
}

func (od *OutputData) UpdateOutputData(success bool, message string) {
	od.Success = success
	od.Message = message
}

// Config holds the application configuration
type Config struct {
	// InputPath names the sensor report; Input, when set, is read instead
	InputPath     string
	Input         io.Reader
	Row           int
	Bound         int
	Workers       int
	SkipExcluded  bool
	SkipSignal    bool
	Verbose       bool
	InfoBuffer    io.Writer
	WarningBuffer io.Writer
}

// App runs both coverage queries over one sensor report
type App struct {
	config   *Config
	registry *coverage.Registry
}

// New creates a new App instance with the given configuration
func New(cfg Config) (*App, error) {
	if cfg.InputPath == "" && cfg.Input == nil {
		return nil, errors.New("no input: set an input path or reader")
	}
	if err := coverage.ValidateBound(cfg.Bound); err != nil {
		return nil, errors.Wrap(err, "invalid bound")
	}
	if cfg.InfoBuffer == nil {
		cfg.InfoBuffer = io.Discard
	}
	if cfg.WarningBuffer == nil {
		cfg.WarningBuffer = io.Discard
	}
	app := &App{config: &cfg}
	if cfg.Workers < 1 {
		app.printWarn("WARNING: workers=%d is not positive, scanning with 1 worker\n", cfg.Workers)
		app.config.Workers = 1
	}
	return app, nil
}

func (a *App) printDebug(format string, args ...interface{}) {
	if a.config.Verbose {
		_, _ = fmt.Fprintf(a.config.InfoBuffer, format, args...)
	}
}

func (a *App) printWarn(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(a.config.WarningBuffer, format, args...)
}

func (a *App) inputName() string {
	if a.config.InputPath != "" {
		return a.config.InputPath
	}
	return "<stdin>"
}

// Registry returns the registry loaded by the last Run, or nil
func (a *App) Registry() *coverage.Registry {
	return a.registry
}

func (a *App) loadRegistry() (*coverage.Registry, error) {
	input := a.config.Input
	if input == nil {
		file, err := os.Open(a.config.InputPath)
		if err != nil {
			return nil, errors.Wrap(err, "open input")
		}
		defer func() { _ = file.Close() }()
		input = file
	}
	registry, err := coverage.ReadRegistry(input)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", a.inputName())
	}
	return registry, nil
}

// Run executes the application logic
func (a *App) Run(ctx context.Context) (*OutputData, error) {
	registry, err := a.loadRegistry()
	if err != nil {
		return &OutputData{Input: a.inputName(), Message: err.Error()}, err
	}
	a.registry = registry
	a.printDebug("%s: %d sensors, %d distinct beacons\n", a.inputName(), len(registry.Sensors()), len(registry.Beacons()))
	if len(registry.Sensors()) == 0 {
		a.printWarn("WARNING: %s contains no sensors\n", a.inputName())
	}

	outputData := NewOutputData(a.inputName(), registry)

	if !a.config.SkipExcluded {
		outputData.Row = a.config.Row
		outputData.Excluded = registry.CountExcluded(a.config.Row)
		a.printDebug("Row %d: %d positions excluded\n", a.config.Row, outputData.Excluded)
	}

	if !a.config.SkipSignal {
		outputData.Bound = a.config.Bound
		a.printDebug("Scanning [0,%d]x[0,%d] with %d worker(s)\n", a.config.Bound, a.config.Bound, a.config.Workers)
		p, err := coverage.FindUncoveredParallel(ctx, registry.Sensors(), a.config.Bound, a.config.Workers)
		if err != nil {
			err = errors.Wrap(err, "find signal")
			outputData.UpdateOutputData(false, err.Error())
			return outputData, err
		}
		outputData.Position = &p
		outputData.Signal = coverage.EncodeSignal(p)
		a.printDebug("Uncovered position %s, signal %d\n", p, outputData.Signal)
	}

	outputData.UpdateOutputData(true, "")
	return outputData, nil
}
