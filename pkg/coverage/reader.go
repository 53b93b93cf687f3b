package coverage

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ParseRecord extracts the four signed integers of a line such as
// "Sensor at x=2, y=18: closest beacon is at x=-2, y=15".
// lineNo is only used for error reporting.
func ParseRecord(lineNo int, line string) (Record, error) {
	fields := strings.FieldsFunc(line, func(c rune) bool {
		return (c < '0' || c > '9') && c != '-'
	})
	values := make([]int, 0, 4)
	for _, field := range fields {
		// a lone "-" or "1-2" is not a number and is skipped
		if v, err := strconv.Atoi(field); err == nil {
			values = append(values, v)
		}
	}
	if len(values) != 4 {
		return Record{}, &MalformedRecordError{Line: lineNo, Text: line, Values: len(values)}
	}
	return Record{
		Sensor: Position{X: values[0], Y: values[1]},
		Beacon: Position{X: values[2], Y: values[3]},
	}, nil
}

// ReadRecords parses every non-blank line of r.
// The first malformed line aborts the read.
func ReadRecords(r io.Reader) ([]Record, error) {
	records := make([]Record, 0)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		record, err := ParseRecord(lineNo, line)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading sensor records after line %d", lineNo)
	}
	return records, nil
}
