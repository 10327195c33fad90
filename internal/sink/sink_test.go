package sink

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flightscout/internal/chrono"
	"flightscout/internal/flights"
	"flightscout/internal/normalize"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var sample = flights.ResultSet{
	{
		Airline:         "Garuda Indonesia",
		Departure:       normalize.Clock{Hour: 6, Minute: 5},
		Arrival:         normalize.Clock{Hour: 8, Minute: 50},
		DurationMinutes: 165,
		Price:           decimal.NewFromInt(1250000),
		QueryDate:       chrono.Date(2025, 10, 8),
	},
	{
		Airline:          "Garuda Indonesia + KLM",
		Departure:        normalize.Clock{Hour: 22, Minute: 30},
		Arrival:          normalize.Clock{Hour: 13, Minute: 20},
		ArrivalDayOffset: 1,
		DurationMinutes:  1250,
		StopCount:        1,
		StopDescription:  "SIN, Singapore",
		Price:            decimal.RequireFromString("1234.50"),
		QueryDate:        chrono.Date(2025, 10, 8),
	},
}

func TestWriteCSV(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteCSV(&out, sample))
	require.Equal(t, strings.Join([]string{
		"airline,query_date,departure_time,arrival_time,arrival_day_offset,duration_minutes,stop_count,stop_description,price",
		"Garuda Indonesia,2025-10-08,06:05,08:50,0,165,0,,1250000",
		`Garuda Indonesia + KLM,2025-10-08,22:30,13:20,1,1250,1,"SIN, Singapore",1234.5`,
		"",
	}, "\n"), out.String())
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "flights.csv")
	require.NoError(t, WriteCSVFile(path, sample))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 3, strings.Count(string(content), "\n"))
}

func csvWithRows(prefix string, n int) string {
	var b strings.Builder
	b.WriteString(strings.Join(Header, ",") + "\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%s %d,2025-12-01,06:00,08:00,0,120,0,,%d\n", prefix, i, 100+i)
	}
	return b.String()
}

func TestMergeCSV(t *testing.T) {
	var out bytes.Buffer
	rows, err := MergeCSV(
		&out,
		strings.NewReader(csvWithRows("a", 10)),
		strings.NewReader(csvWithRows("b", 10)),
		strings.NewReader(csvWithRows("c", 10)),
	)
	require.NoError(t, err)
	require.Equal(t, 30, rows)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 31)
	require.Equal(t, strings.Join(Header, ","), lines[0])
	require.True(t, strings.HasPrefix(lines[1], "a 0,"))
	require.True(t, strings.HasPrefix(lines[11], "b 0,"))
	require.True(t, strings.HasPrefix(lines[30], "c 9,"))
}

func TestMergeCSVKeepsDuplicates(t *testing.T) {
	var out bytes.Buffer
	rows, err := MergeCSV(
		&out,
		strings.NewReader(csvWithRows("a", 2)),
		strings.NewReader(""),
		strings.NewReader(csvWithRows("a", 2)),
	)
	require.NoError(t, err)
	require.Equal(t, 4, rows)
}

func TestMergeCSVHeaderMismatch(t *testing.T) {
	_, err := MergeCSV(
		io.Discard,
		strings.NewReader(csvWithRows("a", 1)),
		strings.NewReader("airline,price\nKLM,10\n"),
	)
	require.ErrorIs(t, err, ErrHeaderMismatch)
}

func TestMergeFiles(t *testing.T) {
	dir := t.TempDir()
	var inputs []string
	for _, name := range []string{"a", "b", "c"} {
		path := filepath.Join(dir, name+".csv")
		require.NoError(t, os.WriteFile(path, []byte(csvWithRows(name, 10)), 0644))
		inputs = append(inputs, path)
	}

	out := filepath.Join(dir, "merged.csv")
	rows, err := MergeFiles(out, inputs)
	require.NoError(t, err)
	require.Equal(t, 30, rows)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, 31, strings.Count(string(content), "\n"))

	_, err = MergeFiles(inputs[0], inputs)
	require.Error(t, err)

	_, err = MergeFiles(out, []string{filepath.Join(dir, "missing.csv")})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMergeFilesHeaderMismatchLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.csv")
	require.NoError(t, os.WriteFile(good, []byte(csvWithRows("a", 2)), 0644))
	other := filepath.Join(dir, "other.csv")
	require.NoError(t, os.WriteFile(other, []byte("x,y\n1,2\n"), 0644))

	out := filepath.Join(dir, "merged.csv")
	_, err := MergeFiles(out, []string{good, other})
	require.ErrorIs(t, err, ErrHeaderMismatch)

	_, err = os.Stat(out)
	require.ErrorIs(t, err, os.ErrNotExist)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestRenderTable(t *testing.T) {
	var out bytes.Buffer
	RenderTable(&out, sample)
	rendered := out.String()
	require.Contains(t, rendered, "AIRLINE")
	require.Contains(t, rendered, "Garuda Indonesia + KLM")
	require.Contains(t, rendered, "22:30")
	require.Contains(t, rendered, "1234.5")
}
