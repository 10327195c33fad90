package sink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
)

var ErrHeaderMismatch = errors.New("csv header does not match the first input")

// MergeCSV writes the header of the first input once, followed by the data
// rows of every input in the order given. Rows are not deduplicated. An
// input with no content at all is skipped.
func MergeCSV(w io.Writer, inputs ...io.Reader) (rows int, err error) {
	out := csv.NewWriter(w)
	var header []string

	for i, input := range inputs {
		in := csv.NewReader(input)
		first, err := in.Read()
		if err == io.EOF {
			continue
		}
		if err != nil {
			return rows, fmt.Errorf("input %d: %w", i, err)
		}

		if header == nil {
			header = first
			err = out.Write(header)
			if err != nil {
				return rows, err
			}
		} else if !slices.Equal(header, first) {
			return rows, fmt.Errorf("input %d: %w", i, ErrHeaderMismatch)
		}

		for {
			record, err := in.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return rows, fmt.Errorf("input %d: %w", i, err)
			}
			err = out.Write(record)
			if err != nil {
				return rows, err
			}
			rows++
		}
	}

	out.Flush()
	return rows, out.Error()
}

// MergeFiles merges the csv files in into out. Nothing is written to out
// when any input fails.
func MergeFiles(out string, in []string) (rows int, err error) {
	outAbs, err := filepath.Abs(out)
	if err != nil {
		return 0, err
	}

	var readers []io.Reader
	for _, path := range in {
		abs, err := filepath.Abs(path)
		if err != nil {
			return 0, err
		}
		if abs == outAbs {
			return 0, fmt.Errorf("%s is both an input and the output", path)
		}

		f, err := os.Open(path)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		readers = append(readers, f)
	}

	err = os.MkdirAll(filepath.Dir(out), 0755)
	if err != nil {
		return 0, err
	}
	f, err := os.CreateTemp(filepath.Dir(out), ".merge-*.csv")
	if err != nil {
		return 0, err
	}
	// out only appears once the merge fully succeeded
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	rows, err = MergeCSV(f, readers...)
	if err != nil {
		return 0, err
	}
	err = f.Close()
	if err != nil {
		return 0, err
	}
	err = os.Rename(f.Name(), out)
	if err != nil {
		return 0, err
	}
	return rows, nil
}
