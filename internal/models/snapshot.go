// Package models defines data structures and domain types.
package models

import (
	"fmt"
	"time"

	"github.com/codexmeter/codexmeter/internal/sessions"
)

// Conventional window durations when the producer omits window_minutes.
const (
	DefaultPrimaryWindowMinutes   = 299   // ~5 hours
	DefaultSecondaryWindowMinutes = 10079 // ~1 week
)

// RateWindow is one normalized rate-limit window reading. Reset and
// elapsed-time values derived from wall clock are methods taking "now",
// never cached fields: every render recomputes them.
type RateWindow struct {
	RecordTime      time.Time
	UsedPercent     float64
	WindowMinutes   int
	ResetsInSeconds int64
}

// ResetTime is the instant the window resets, per the record's own clock.
func (w RateWindow) ResetTime() time.Time {
	return w.RecordTime.Add(time.Duration(w.ResetsInSeconds) * time.Second)
}

// Outdated reports whether the reset instant has already passed.
func (w RateWindow) Outdated(now time.Time) bool {
	return w.ResetTime().Before(now)
}

// TimePercent is the elapsed share of the window in [0,100]. A window
// whose reset time has passed is fully elapsed regardless of arithmetic.
func (w RateWindow) TimePercent(now time.Time) float64 {
	if w.Outdated(now) {
		return 100
	}

	windowSeconds := float64(w.WindowMinutes) * 60
	if windowSeconds <= 0 {
		return 100
	}

	elapsed := windowSeconds - float64(w.ResetsInSeconds)
	percent := elapsed / windowSeconds * 100
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// Snapshot is one normalized usage reading, immutable once built. It is
// rebuilt from disk on every discovery pass and never survives a refresh.
type Snapshot struct {
	SourceFile string
	RecordTime time.Time
	Total      sessions.TokenUsage
	Last       sessions.TokenUsage
	Primary    *RateWindow
	Secondary  *RateWindow
}

// BuildSnapshot normalizes a matched token_count record. Missing info or
// usage maps are producer schema violations and fail hard; defaulting
// here would mask a writer bug. The rate-limit windows stay optional.
func BuildSnapshot(path string, rec *sessions.Record) (*Snapshot, error) {
	if rec == nil || rec.Payload == nil {
		return nil, fmt.Errorf("record from %s has no payload", path)
	}

	info := rec.Payload.Info
	if info == nil {
		return nil, fmt.Errorf("token_count record from %s is missing info", path)
	}
	if info.TotalTokenUsage == nil || info.LastTokenUsage == nil {
		return nil, fmt.Errorf("token_count record from %s is missing usage maps", path)
	}

	ts, err := rec.Time()
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		SourceFile: path,
		RecordTime: ts,
		Total:      *info.TotalTokenUsage,
		Last:       *info.LastTokenUsage,
	}

	if rl := rec.Payload.RateLimits; rl != nil {
		snap.Primary = newWindow(ts, rl.Primary, DefaultPrimaryWindowMinutes)
		snap.Secondary = newWindow(ts, rl.Secondary, DefaultSecondaryWindowMinutes)
	}

	return snap, nil
}

func newWindow(ts time.Time, raw *sessions.RateLimitWindow, defaultMinutes int) *RateWindow {
	if raw == nil {
		return nil
	}

	minutes := defaultMinutes
	if raw.WindowMinutes != nil && *raw.WindowMinutes > 0 {
		minutes = *raw.WindowMinutes
	}

	return &RateWindow{
		RecordTime:      ts,
		UsedPercent:     raw.UsedPercent,
		WindowMinutes:   minutes,
		ResetsInSeconds: raw.ResetsInSeconds,
	}
}
