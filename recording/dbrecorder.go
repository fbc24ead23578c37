// Package recording persists sweep results so they can be inspected after
// the run.
package recording

import (
	"database/sql"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/memlat/experiment"
)

// DBRecorder writes sweep results into a SQLite database. It implements
// experiment.Reporter: every stage report buffers the rows not seen before,
// and buffered rows are inserted in a single transaction on Flush.
type DBRecorder struct {
	db *sql.DB

	seenRows int
	pending  []experiment.Result
}

// NewDBRecorder creates a recorder backed by a new database file at
// path + ".sqlite3". An empty path picks a unique name. The recorder
// refuses to overwrite an existing file and flushes itself at exit.
func NewDBRecorder(path string) *DBRecorder {
	if path == "" {
		path = "memlat_sweep_" + xid.New().String()
	}

	filename := path + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	r := NewDBRecorderWithDB(db)

	atexit.Register(func() { r.Flush() })

	return r
}

// NewDBRecorderWithDB creates a recorder over an already-open database.
func NewDBRecorderWithDB(db *sql.DB) *DBRecorder {
	r := &DBRecorder{db: db}

	r.mustExecute(`CREATE TABLE stride_penalty (
	Stride INTEGER,
	PenaltyPerAccess REAL
);`)

	return r
}

// Report buffers the results that were not part of an earlier report.
func (r *DBRecorder) Report(results []experiment.Result) {
	r.pending = append(r.pending, results[r.seenRows:]...)
	r.seenRows = len(results)
}

// Flush writes all buffered rows in one transaction.
func (r *DBRecorder) Flush() {
	if len(r.pending) == 0 {
		return
	}

	r.mustExecute("BEGIN TRANSACTION")
	defer r.mustExecute("COMMIT TRANSACTION")

	statement, err := r.db.Prepare(
		"INSERT INTO stride_penalty VALUES (?, ?)")
	if err != nil {
		panic(err)
	}
	defer statement.Close()

	for _, result := range r.pending {
		_, err := statement.Exec(result.Stride, result.PenaltyPerAccess)
		if err != nil {
			panic(err)
		}
	}

	r.pending = nil
}

func (r *DBRecorder) mustExecute(query string) sql.Result {
	res, err := r.db.Exec(query)
	if err != nil {
		fmt.Printf("Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}
