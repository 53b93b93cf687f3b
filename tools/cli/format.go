package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/multimediallc/sensor-coverage/internal/app"
	"github.com/multimediallc/sensor-coverage/pkg/coverage"
	f "github.com/multimediallc/sensor-coverage/pkg/functional"
	"github.com/olekukonko/tablewriter"
)

type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatOneLine OutputFormat = "one-line"
	FormatJSON    OutputFormat = "json"
	FormatTable   OutputFormat = "table"
)

var allowedFormats = []string{string(FormatDefault), string(FormatOneLine), string(FormatJSON), string(FormatTable)}

func validateFormat(format string) (OutputFormat, error) {
	if !slices.Contains(allowedFormats, format) {
		return "", errors.Newf("invalid format %s. Must be one of %s", format, strings.Join(allowedFormats, ", "))
	}
	return OutputFormat(format), nil
}

type rowCoverage struct {
	Row       int                 `json:"row"`
	Intervals []coverage.Interval `json:"intervals"`
	Excluded  int                 `json:"excluded"`
}

func printIntervals(w io.Writer, rc rowCoverage, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return json.NewEncoder(w).Encode(rc)
	case FormatTable:
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Lo", "Hi", "Width"})
		for _, iv := range rc.Intervals {
			table.Append([]string{strconv.Itoa(iv.Lo), strconv.Itoa(iv.Hi), strconv.Itoa(iv.Width())})
		}
		table.SetFooter([]string{"", "Excluded", strconv.Itoa(rc.Excluded)})
		table.Render()
		return nil
	case FormatOneLine:
		_, err := fmt.Fprintf(w, "row %d: %s excluded=%d\n", rc.Row,
			strings.Join(f.Map(rc.Intervals, coverage.Interval.String), " "), rc.Excluded)
		return err
	default:
		for _, iv := range rc.Intervals {
			if _, err := fmt.Fprintln(w, iv.String()); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "Excluded: %d\n", rc.Excluded)
		return err
	}
}

func printResults(w io.Writer, outputs []*app.OutputData, format OutputFormat) error {
	switch format {
	case FormatJSON:
		if len(outputs) == 1 {
			return json.NewEncoder(w).Encode(outputs[0])
		}
		return json.NewEncoder(w).Encode(outputs)
	case FormatTable:
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Input", "Sensors", "Row", "Excluded", "Bound", "Signal", "Status"})
		for _, o := range outputs {
			status := "ok"
			if !o.Success {
				status = o.Message
			}
			table.Append([]string{
				o.Input, strconv.Itoa(o.Sensors), strconv.Itoa(o.Row), strconv.Itoa(o.Excluded),
				strconv.Itoa(o.Bound), strconv.Itoa(o.Signal), status,
			})
		}
		table.Render()
		return nil
	case FormatOneLine:
		for _, o := range outputs {
			if _, err := fmt.Fprintf(w, "%s: excluded=%d signal=%d\n", o.Input, o.Excluded, o.Signal); err != nil {
				return err
			}
		}
		return nil
	default:
		for i, o := range outputs {
			if len(outputs) > 1 {
				if i > 0 {
					_, _ = fmt.Fprintln(w)
				}
				_, _ = fmt.Fprintf(w, "%s:\n", o.Input)
			}
			if !o.Success {
				if _, err := fmt.Fprintf(w, "FAIL: %s\n", o.Message); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "%d\n%d\n", o.Excluded, o.Signal); err != nil {
				return err
			}
		}
		return nil
	}
}
