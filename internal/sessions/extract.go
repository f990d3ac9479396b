package sessions

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/codexmeter/codexmeter/internal/logger"
)

// Rollout lines can carry full tool transcripts; the default bufio token
// limit of 64KiB is far too small.
const maxLineBytes = 10 * 1024 * 1024

// ExtractLatest streams one rollout file and returns the token_count record
// with the newest timestamp. Malformed lines are skipped: the writer may
// have crashed mid-append, so a corrupt tail is normal, not an error. A
// file-level read failure is logged and reported as "no record" so the
// caller's search can continue.
func ExtractLatest(path string) (*Record, time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("failed to open session file", "path", path, "error", err)
		return nil, time.Time{}, false
	}
	defer f.Close()

	var (
		best     *Record
		bestTime time.Time
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue
		}
		if !rec.IsTokenCount() {
			continue
		}

		ts, err := rec.Time()
		if err != nil {
			continue
		}

		if best == nil || ts.After(bestTime) {
			r := rec
			best = &r
			bestTime = ts
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Warn("failed to read session file", "path", path, "error", err)
		return nil, time.Time{}, false
	}

	if best == nil {
		return nil, time.Time{}, false
	}
	return best, bestTime, true
}
