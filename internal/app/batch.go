package app

import (
	"context"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/boyter/gocodewalker"
	"github.com/cockroachdb/errors"
	"github.com/multimediallc/sensor-coverage/internal/config"
	f "github.com/multimediallc/sensor-coverage/pkg/functional"
)

// BatchResult is the outcome of one input file in a batch
type BatchResult struct {
	Path   string
	Output *OutputData
	Err    error
}

// Batch solves every file under root that matches an include glob and no ignore glob.
// A failing file is recorded in its result and does not stop the batch.
func Batch(ctx context.Context, root string, conf *config.Config, info, warn io.Writer) ([]BatchResult, error) {
	files, err := FindInputs(root, conf.Include, conf.Ignore)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		_, _ = io.WriteString(warn, "WARNING: no input files matched under "+root+"\n")
	}

	results := make([]BatchResult, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		a, err := New(Config{
			InputPath:     filepath.Join(root, file),
			Row:           conf.Row,
			Bound:         conf.Bound,
			Workers:       conf.Workers,
			Verbose:       conf.Output != nil && conf.Output.Verbose,
			InfoBuffer:    info,
			WarningBuffer: warn,
		})
		if err != nil {
			return results, err
		}
		output, err := a.Run(ctx)
		output.Input = file
		results = append(results, BatchResult{Path: file, Output: output, Err: err})
	}
	return results, nil
}

// FindInputs walks root and returns the slash-separated relative paths of
// matching files in lexical order
func FindInputs(root string, include, ignore []string) ([]string, error) {
	for _, pattern := range slices.Concat(include, ignore) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Newf("invalid glob pattern %q", pattern)
		}
	}

	fileListQueue := make(chan *gocodewalker.File, 100)

	walker := gocodewalker.NewFileWalker(root, fileListQueue)
	walker.IncludeHidden = false
	walker.ExcludeDirectory = []string{".git"}

	errChan := make(chan error, 1)
	go func() {
		errChan <- walker.Start()
		close(errChan)
	}()

	files := make([]string, 0)
	for file := range fileListQueue {
		rel, err := filepath.Rel(root, file.Location)
		if err != nil {
			continue
		}
		files = append(files, filepath.ToSlash(rel))
	}
	if err := <-errChan; err != nil {
		return nil, errors.Wrapf(err, "walking %s", root)
	}

	files = f.Filtered(f.RemoveDuplicates(files), func(path string) bool {
		return matchAny(include, path) && !matchAny(ignore, path)
	})
	slices.Sort(files)
	return files, nil
}

func matchAny(patterns []string, path string) bool {
	_, found := f.Find(patterns, func(pattern string) bool {
		return doublestar.MatchUnvalidated(strings.TrimPrefix(pattern, "./"), path)
	})
	return found
}
