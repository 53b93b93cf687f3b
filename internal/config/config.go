package config

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/multimediallc/sensor-coverage/pkg/coverage"
	"github.com/pelletier/go-toml/v2"
)

const FileName = "sensorcover.toml"

const (
	DefaultRow   = 2_000_000
	DefaultBound = 4_000_000
)

var OutputFormats = []string{"default", "one-line", "json", "table"}

type Config struct {
	Row     int      `toml:"row"`
	Bound   int      `toml:"bound"`
	Workers int      `toml:"workers"`
	Include []string `toml:"include"`
	Ignore  []string `toml:"ignore"`
	Output  *Output  `toml:"output"`
}

type Output struct {
	Format  string `toml:"format"`
	Verbose bool   `toml:"verbose"`
}

// FileReader abstracts where the config file is read from
type FileReader interface {
	ReadFile(path string) ([]byte, error)
	PathExists(path string) bool
}

type osFileReader struct{}

func (osFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (osFileReader) PathExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

func Default() *Config {
	return &Config{
		Row:     DefaultRow,
		Bound:   DefaultBound,
		Workers: 1,
		Include: []string{"**/*.txt"},
		Ignore:  []string{},
		Output:  &Output{Format: "default", Verbose: false},
	}
}

// ReadConfig loads sensorcover.toml from dir. A missing file yields the
// defaults; keys absent from the file keep their default values.
// A nil fileReader reads from the local filesystem.
func ReadConfig(dir string, fileReader FileReader) (*Config, error) {
	if fileReader == nil {
		fileReader = osFileReader{}
	}
	defaultConfig := Default()

	fileName := filepath.Join(dir, FileName)
	if !fileReader.PathExists(fileName) {
		return defaultConfig, nil
	}
	file, err := fileReader.ReadFile(fileName)
	if err != nil {
		return defaultConfig, errors.Wrapf(err, "reading %s", fileName)
	}
	config := Default()
	if err := toml.Unmarshal(file, config); err != nil {
		return defaultConfig, errors.Wrapf(err, "parsing %s", fileName)
	}
	if config.Output == nil {
		config.Output = defaultConfig.Output
	}
	if err := config.Validate(); err != nil {
		return defaultConfig, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if err := coverage.ValidateBound(c.Bound); err != nil {
		return err
	}
	if c.Workers < 1 {
		return errors.Newf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Output != nil && !slices.Contains(OutputFormats, c.Output.Format) {
		return errors.Newf("invalid output format %q, must be one of %v", c.Output.Format, OutputFormats)
	}
	return nil
}
