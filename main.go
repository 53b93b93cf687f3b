package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/multimediallc/sensor-coverage/internal/app"
	"github.com/multimediallc/sensor-coverage/internal/config"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func ignoreError[V any, E error](res V, _ E) V {
	return res
}

var (
	WarningBuffer = bytes.NewBuffer([]byte{})
	InfoBuffer    = bytes.NewBuffer([]byte{})
	// verboseOutput is the resolved verbosity: -v, SENSORCOVER_VERBOSE or [output] verbose
	verboseOutput bool
)

var (
	inputPath  = flag.String("input", getEnv("SENSORCOVER_INPUT", ""), "Path to the sensor report")
	configDir  = flag.String("config", getEnv("SENSORCOVER_CONFIG", "."), "Directory containing sensorcover.toml")
	outputPath = flag.String("output", getEnv("SENSORCOVER_OUTPUT", ""), "Write the results as JSON to this file")
	row        = flag.Int("row", config.DefaultRow, "Row to count excluded positions on (env SENSORCOVER_ROW)")
	bound      = flag.Int("bound", config.DefaultBound, "Inclusive bound of the search square (env SENSORCOVER_BOUND)")
	workers    = flag.Int("workers", 1, "Rows scanned in parallel (env SENSORCOVER_WORKERS)")
	verbose    = flag.Bool("v", ignoreError(strconv.ParseBool(getEnv("SENSORCOVER_VERBOSE", "0"))), "Verbose output")
)

// shouldFail should always be true for errors that are not recoverable
func errorAndExit(shouldFail bool, format string, args ...interface{}) {
	flushBuffers()
	fmt.Fprintf(os.Stderr, format, args...)
	if shouldFail {
		os.Exit(1)
	}
	os.Exit(0)
}

func flushBuffers() {
	_, err := WarningBuffer.WriteTo(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing warning buffer: %v\n", err)
	}
	if verboseOutput {
		_, err := InfoBuffer.WriteTo(os.Stderr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing info buffer: %v\n", err)
		}
	}
}

func printWarning(format string, args ...interface{}) {
	fmt.Fprintf(WarningBuffer, format, args...)
}

// applyOverrides layers environment variables, then explicitly set flags, over conf
func applyOverrides(conf *config.Config, setFlags map[string]bool) error {
	overrides := []struct {
		flag   string
		env    string
		target *int
		value  int
	}{
		{"row", "SENSORCOVER_ROW", &conf.Row, *row},
		{"bound", "SENSORCOVER_BOUND", &conf.Bound, *bound},
		{"workers", "SENSORCOVER_WORKERS", &conf.Workers, *workers},
	}
	for _, o := range overrides {
		if setFlags[o.flag] {
			*o.target = o.value
			continue
		}
		if value, ok := os.LookupEnv(o.env); ok {
			n, err := strconv.Atoi(value)
			if err != nil {
				return errors.Wrapf(err, "invalid %s=%q", o.env, value)
			}
			*o.target = n
		}
	}
	if *verbose {
		conf.Output.Verbose = true
	}
	verboseOutput = conf.Output.Verbose
	return conf.Validate()
}

func writeOutput(path string, output *app.OutputData) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func main() {
	flag.Parse()
	if *inputPath == "" {
		errorAndExit(true, "Required flags or environment variables not set: %s\n", []string{"input"})
	}

	conf, err := config.ReadConfig(*configDir, nil)
	if err != nil {
		printWarning("Error reading %s - using default config: %v\n", config.FileName, err)
	}
	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	if err := applyOverrides(conf, setFlags); err != nil {
		errorAndExit(true, "Invalid configuration: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := app.New(app.Config{
		InputPath:     *inputPath,
		Row:           conf.Row,
		Bound:         conf.Bound,
		Workers:       conf.Workers,
		Verbose:       conf.Output.Verbose,
		InfoBuffer:    InfoBuffer,
		WarningBuffer: WarningBuffer,
	})
	if err != nil {
		errorAndExit(true, "Failed to initialize app: %v\n", err)
	}

	output, runErr := a.Run(ctx)
	if *outputPath != "" {
		if err := writeOutput(*outputPath, output); err != nil {
			printWarning("Error writing output file: %v\n", err)
		}
	}
	if runErr != nil {
		errorAndExit(true, "%v\n", runErr)
	}

	flushBuffers()
	fmt.Println(output.Excluded)
	fmt.Println(output.Signal)
}
