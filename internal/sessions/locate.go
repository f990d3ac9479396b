package sessions

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNoRecords is returned when no token_count record exists anywhere in
// the 30-day search window.
var ErrNoRecords = errors.New("no token_count records found")

// Result pairs a winning record with the file it came from.
type Result struct {
	Path      string
	Record    *Record
	Timestamp time.Time
}

// FindLatest walks the date-partitioned session tree backward from now,
// one calendar day at a time, and returns the newest token_count record of
// the most recent day that has one.
//
// The first day yielding any record wins; older days are never scanned
// once a day has data. Day directories follow <base>/YYYY/MM/DD with
// zero-padded month and day.
func FindLatest(base string, now time.Time) (*Result, error) {
	for daysBack := 0; daysBack < SearchWindowDays; daysBack++ {
		day := now.AddDate(0, 0, -daysBack)
		dir := filepath.Join(base,
			fmt.Sprintf("%04d", day.Year()),
			fmt.Sprintf("%02d", int(day.Month())),
			fmt.Sprintf("%02d", day.Day()),
		)

		if _, err := os.Stat(dir); err != nil {
			continue
		}

		matches, err := filepath.Glob(filepath.Join(dir, RolloutFileGlob))
		if err != nil {
			continue
		}

		var best *Result
		for _, path := range matches {
			rec, ts, ok := ExtractLatest(path)
			if !ok {
				continue
			}
			if best == nil || ts.After(best.Timestamp) {
				best = &Result{Path: path, Record: rec, Timestamp: ts}
			}
		}

		if best != nil {
			return best, nil
		}
	}

	return nil, ErrNoRecords
}
