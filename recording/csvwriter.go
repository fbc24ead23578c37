package recording

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/sarchlab/memlat/experiment"
)

// CSVWriter mirrors sweep results into a CSV file. Since every stage report
// carries the whole result list, the file is rewritten as a fresh snapshot
// each time.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a CSV reporter writing to the given path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Report rewrites the CSV file with the accumulated results.
func (w *CSVWriter) Report(results []experiment.Result) {
	file, err := os.Create(w.path)
	if err != nil {
		panic(err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	err = writer.Write([]string{"stride", "penalty_per_access"})
	if err != nil {
		panic(err)
	}

	for _, result := range results {
		err = writer.Write([]string{
			strconv.FormatUint(result.Stride, 10),
			strconv.FormatFloat(result.PenaltyPerAccess, 'f', -1, 64),
		})
		if err != nil {
			panic(err)
		}
	}
}
