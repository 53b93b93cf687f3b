package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/multimediallc/sensor-coverage/internal/app"
	"github.com/multimediallc/sensor-coverage/internal/config"
	"github.com/multimediallc/sensor-coverage/pkg/coverage"
	f "github.com/multimediallc/sensor-coverage/pkg/functional"
	"github.com/urfave/cli/v2"
)

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Value:   ".",
	Usage:   "Directory containing " + config.FileName,
}

var rowFlag = &cli.IntFlag{
	Name:    "row",
	Aliases: []string{"r"},
	Value:   config.DefaultRow,
	Usage:   "Row to count excluded positions on",
}

var boundFlag = &cli.IntFlag{
	Name:    "bound",
	Aliases: []string{"b"},
	Value:   config.DefaultBound,
	Usage:   "Inclusive bound of the [0,bound]x[0,bound] search square",
}

var workersFlag = &cli.IntFlag{
	Name:    "workers",
	Aliases: []string{"w"},
	Value:   1,
	Usage:   "Rows scanned in parallel",
}

var formatFlag = &cli.StringFlag{
	Name:    "format",
	Aliases: []string{"f"},
	Value:   "",
	Usage:   "Output format.  Allowed values are: default, one-line, json, and table",
}

var verboseFlag = &cli.BoolFlag{
	Name:  "verbose",
	Usage: "Print progress to stderr",
}

func main() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "Print version",
	}
	cli.VersionPrinter = func(cCtx *cli.Context) {
		fmt.Println(cCtx.App.Version)
	}

	err := newApp().Run(os.Args)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:        "sensorcover-cli",
		Usage:       "CLI tool for querying sensor coverage reports",
		Version:     "v0.1.0",
		Description: "Reads lines of the form \"Sensor at x=<int>, y=<int>: closest beacon is at x=<int>, y=<int>\" from a file or piped stdin.",
		Commands: []*cli.Command{
			{
				Name:      "excluded",
				Aliases:   []string{"e"},
				Usage:     "Count positions on a row that cannot hold an undetected beacon",
				UsageText: "sensorcover-cli excluded [options] [input-file]",
				Flags:     []cli.Flag{configFlag, rowFlag},
				Action: func(cCtx *cli.Context) error {
					conf, err := loadConfig(cCtx)
					if err != nil {
						return err
					}
					_, registry, err := readRegistry(cCtx.Args().First())
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(cCtx.App.Writer, registry.CountExcluded(conf.Row))
					return err
				},
			},
			{
				Name:      "signal",
				Aliases:   []string{"s"},
				Usage:     "Locate the one uncovered position in the search square and print its signal",
				UsageText: "sensorcover-cli signal [options] [input-file]",
				Flags:     []cli.Flag{configFlag, boundFlag, workersFlag},
				Action: func(cCtx *cli.Context) error {
					conf, err := loadConfig(cCtx)
					if err != nil {
						return err
					}
					_, registry, err := readRegistry(cCtx.Args().First())
					if err != nil {
						return err
					}
					p, err := coverage.FindUncoveredParallel(cCtx.Context, registry.Sensors(), conf.Bound, conf.Workers)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(cCtx.App.Writer, coverage.EncodeSignal(p))
					return err
				},
			},
			{
				Name:        "intervals",
				Aliases:     []string{"i"},
				Usage:       "Show the merged coverage intervals of a row",
				UsageText:   "sensorcover-cli intervals [options] [input-file]",
				Description: "Print the disjoint x ranges covered on a row, followed by the excluded count.",
				Flags:       []cli.Flag{configFlag, rowFlag, formatFlag},
				Action: func(cCtx *cli.Context) error {
					conf, err := loadConfig(cCtx)
					if err != nil {
						return err
					}
					format, err := validateFormat(conf.Output.Format)
					if err != nil {
						return err
					}
					_, registry, err := readRegistry(cCtx.Args().First())
					if err != nil {
						return err
					}
					rc := rowCoverage{
						Row:       conf.Row,
						Intervals: coverage.RowCoverage(registry.Sensors(), conf.Row),
						Excluded:  registry.CountExcluded(conf.Row),
					}
					return printIntervals(cCtx.App.Writer, rc, format)
				},
			},
			{
				Name:      "solve",
				Usage:     "Run both queries on one report",
				UsageText: "sensorcover-cli solve [options] [input-file]",
				Flags:     []cli.Flag{configFlag, rowFlag, boundFlag, workersFlag, formatFlag, verboseFlag},
				Action: func(cCtx *cli.Context) error {
					conf, err := loadConfig(cCtx)
					if err != nil {
						return err
					}
					format, err := validateFormat(conf.Output.Format)
					if err != nil {
						return err
					}
					return solve(cCtx.Context, cCtx.App.Writer, cCtx.App.ErrWriter, cCtx.Args().First(), conf, format)
				},
			},
			{
				Name:        "batch",
				Aliases:     []string{"b"},
				Usage:       "Solve every report under a directory",
				UsageText:   "sensorcover-cli batch [options] [directory]",
				Description: "Walk the directory and solve each file matching the include globs of " + config.FileName + " and no ignore glob.",
				Flags: []cli.Flag{
					configFlag, rowFlag, boundFlag, workersFlag, formatFlag, verboseFlag,
					&cli.StringSliceFlag{
						Name:  "include",
						Usage: "Glob of input files to include (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "ignore",
						Usage: "Glob of input files to skip (repeatable)",
					},
				},
				Action: func(cCtx *cli.Context) error {
					root := "."
					if cCtx.NArg() > 0 {
						root = cCtx.Args().First()
					}
					conf, err := loadConfig(cCtx)
					if err != nil {
						return err
					}
					if cCtx.IsSet("include") {
						conf.Include = cCtx.StringSlice("include")
					}
					if cCtx.IsSet("ignore") {
						conf.Ignore = cCtx.StringSlice("ignore")
					}
					format, err := validateFormat(conf.Output.Format)
					if err != nil {
						return err
					}
					return batch(cCtx.Context, cCtx.App.Writer, cCtx.App.ErrWriter, root, conf, format)
				},
			},
			{
				Name:      "verify",
				Aliases:   []string{"v"},
				Usage:     "Check that a report parses",
				UsageText: "sensorcover-cli verify [input-file]",
				Action: func(cCtx *cli.Context) error {
					name, registry, err := readRegistry(cCtx.Args().First())
					if err != nil {
						return err
					}
					if name == "" {
						name = "stdin"
					}
					_, err = fmt.Fprintf(cCtx.App.Writer, "%s: %d sensors, %d distinct beacons\n",
						name, len(registry.Sensors()), len(registry.Beacons()))
					return err
				},
			},
		},
	}
}

// loadConfig reads the config file and applies any flags given on the command line
func loadConfig(cCtx *cli.Context) (*config.Config, error) {
	conf, err := config.ReadConfig(cCtx.String("config"), nil)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config")
	}
	if cCtx.IsSet("row") {
		conf.Row = cCtx.Int("row")
	}
	if cCtx.IsSet("bound") {
		conf.Bound = cCtx.Int("bound")
	}
	if cCtx.IsSet("workers") {
		conf.Workers = cCtx.Int("workers")
	}
	if cCtx.IsSet("format") {
		conf.Output.Format = cCtx.String("format")
	}
	if cCtx.Bool("verbose") {
		conf.Output.Verbose = true
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func readRegistry(path string) (string, *coverage.Registry, error) {
	name, input, err := openInput(path)
	if err != nil {
		return "", nil, err
	}
	registry, err := coverage.ReadRegistry(input)
	if err != nil {
		return "", nil, err
	}
	return name, registry, nil
}

func solve(ctx context.Context, w, errW io.Writer, path string, conf *config.Config, format OutputFormat) error {
	name, input, err := openInput(path)
	if err != nil {
		return err
	}
	a, err := app.New(app.Config{
		InputPath:     name,
		Input:         input,
		Row:           conf.Row,
		Bound:         conf.Bound,
		Workers:       conf.Workers,
		Verbose:       conf.Output.Verbose,
		InfoBuffer:    errW,
		WarningBuffer: errW,
	})
	if err != nil {
		return err
	}
	output, err := a.Run(ctx)
	if err != nil {
		return err
	}
	return printResults(w, []*app.OutputData{output}, format)
}

func batch(ctx context.Context, w, errW io.Writer, root string, conf *config.Config, format OutputFormat) error {
	if rootStat, err := os.Stat(root); err != nil || !rootStat.IsDir() {
		return errors.Newf("root is not a directory: %s", root)
	}
	results, err := app.Batch(ctx, root, conf, errW, errW)
	if err != nil {
		return err
	}
	if err := printResults(w, f.Map(results, func(r app.BatchResult) *app.OutputData { return r.Output }), format); err != nil {
		return err
	}
	failed := f.Count(results, func(r app.BatchResult) bool { return r.Err != nil })
	if failed > 0 {
		return errors.Newf("%d of %d reports failed", failed, len(results))
	}
	return nil
}
