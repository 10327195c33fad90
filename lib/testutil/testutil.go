package testutil

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"

	_ "modernc.org/sqlite"
)

// OpenMemoryDB opens an in-memory sqlite database and applies the schema to it.
func OpenMemoryDB(t testing.TB, schema string) *sql.DB {
	sqlite, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// every new connection to :memory: is a fresh database
	sqlite.SetMaxOpenConns(1)
	_, err = sqlite.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		sqlite.Close()
	})
	return sqlite
}

type Report struct {
	ID     string
	Params []any
}

// RecordingAPI is a telemetry.API that keeps everything reported to it.
type RecordingAPI struct {
	mu       sync.Mutex
	Warnings []Report
	Debug    []Report
	Counts   map[string]int64
}

func (r *RecordingAPI) ReportWarning(id string, params ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, Report{ID: id, Params: params})
}

func (r *RecordingAPI) ReportDebug(msg string, params ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Debug = append(r.Debug, Report{ID: msg, Params: params})
}

func (r *RecordingAPI) ReportCount(id string, count int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Counts == nil {
		r.Counts = map[string]int64{}
	}
	r.Counts[id] = count
}

// WarningIDs returns the ids of every warning, in report order.
func (r *RecordingAPI) WarningIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, len(r.Warnings))
	for i, w := range r.Warnings {
		ids[i] = w.ID
	}
	return ids
}

func (r Report) String() string {
	return fmt.Sprintf("%s %v", r.ID, r.Params)
}
