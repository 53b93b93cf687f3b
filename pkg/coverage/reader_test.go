package coverage

import (
	"os"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	tt := []struct {
		name    string
		line    string
		want    Record
		wantErr bool
	}{
		{
			name: "positive coordinates",
			line: "Sensor at x=8, y=7: closest beacon is at x=2, y=10",
			want: Record{Sensor: Position{8, 7}, Beacon: Position{2, 10}},
		},
		{
			name: "negative coordinates",
			line: "Sensor at x=-3, y=18: closest beacon is at x=-2, y=-15",
			want: Record{Sensor: Position{-3, 18}, Beacon: Position{-2, -15}},
		},
		{
			name: "bare integers",
			line: "1 2 3 4",
			want: Record{Sensor: Position{1, 2}, Beacon: Position{3, 4}},
		},
		{
			name: "stray dash is ignored",
			line: "Sensor - at x=1, y=2: closest beacon is at x=3, y=4",
			want: Record{Sensor: Position{1, 2}, Beacon: Position{3, 4}},
		},
		{
			name:    "missing beacon",
			line:    "Sensor at x=1, y=2",
			wantErr: true,
		},
		{
			name:    "too many values",
			line:    "Sensor at x=1, y=2: closest beacon is at x=3, y=4, z=5",
			wantErr: true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRecord(7, tc.line)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrMalformedRecord)
				var malformed *MalformedRecordError
				require.True(t, errors.As(err, &malformed))
				require.Equal(t, 7, malformed.Line)
				require.Equal(t, tc.line, malformed.Text)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestReadRecords(t *testing.T) {
	file, err := os.Open("testdata/example.txt")
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	records, err := ReadRecords(file)
	require.NoError(t, err)
	require.Len(t, records, 14)
	require.Equal(t, Record{Sensor: Position{2, 18}, Beacon: Position{-2, 15}}, records[0])
	require.Equal(t, Record{Sensor: Position{20, 1}, Beacon: Position{15, 3}}, records[13])
}

func TestReadRecordsSkipsBlankLines(t *testing.T) {
	input := "\n  1 2 3 4\n\n\t\n5 6 7 8\n"
	records, err := ReadRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestReadRecordsAbortsOnMalformedLine(t *testing.T) {
	input := "1 2 3 4\nSensor at x=1, y=2\n5 6 7 8\n"
	records, err := ReadRecords(strings.NewReader(input))
	require.Nil(t, records)

	var malformed *MalformedRecordError
	require.True(t, errors.As(err, &malformed))
	require.Equal(t, 2, malformed.Line)
	require.Equal(t, 2, malformed.Values)
}
