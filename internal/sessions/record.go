// Package sessions locates and parses Codex rollout session logs.
//
// A rollout file is an append-only JSONL log; each line is an independent
// event record. Only event_msg records carrying a token_count payload are
// of interest here.
package sessions

import (
	"fmt"
	"time"
)

// Discriminator values identifying a usage snapshot record.
const (
	EventMsgType     = "event_msg"
	TokenCountType   = "token_count"
	RolloutFileGlob  = "rollout-*.jsonl"
	SearchWindowDays = 30
)

// Record is one decoded rollout log line.
type Record struct {
	Type      string   `json:"type"`
	Timestamp string   `json:"timestamp"`
	Payload   *Payload `json:"payload"`
}

// Payload is the event payload of a rollout record.
type Payload struct {
	Type       string      `json:"type"`
	Info       *TokenInfo  `json:"info"`
	RateLimits *RateLimits `json:"rate_limits"`
}

// TokenInfo carries cumulative and per-turn token usage. Both maps are
// guaranteed by the producer schema on token_count events.
type TokenInfo struct {
	TotalTokenUsage *TokenUsage `json:"total_token_usage"`
	LastTokenUsage  *TokenUsage `json:"last_token_usage"`
}

// TokenUsage is one token consumption breakdown.
type TokenUsage struct {
	InputTokens           int64 `json:"input_tokens"`
	CachedInputTokens     int64 `json:"cached_input_tokens"`
	OutputTokens          int64 `json:"output_tokens"`
	ReasoningOutputTokens int64 `json:"reasoning_output_tokens"`
	TotalTokens           int64 `json:"total_tokens"`
}

// RateLimits holds the optional rate-limit windows of a token_count event.
type RateLimits struct {
	Primary   *RateLimitWindow `json:"primary"`
	Secondary *RateLimitWindow `json:"secondary"`
}

// RateLimitWindow is one raw rate-limit quota reading. WindowMinutes is a
// pointer so an absent field can fall back to the window's conventional
// duration rather than zero.
type RateLimitWindow struct {
	UsedPercent     float64 `json:"used_percent"`
	ResetsInSeconds int64   `json:"resets_in_seconds"`
	WindowMinutes   *int    `json:"window_minutes"`
}

// IsTokenCount reports whether both discriminators identify this record as
// a usage snapshot.
func (r *Record) IsTokenCount() bool {
	return r.Type == EventMsgType && r.Payload != nil && r.Payload.Type == TokenCountType
}

// Time parses the record timestamp. RFC 3339 covers both the trailing-Z
// and explicit-offset forms the producer emits.
func (r *Record) Time() (time.Time, error) {
	if r.Timestamp == "" {
		return time.Time{}, fmt.Errorf("record has no timestamp")
	}
	ts, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse record timestamp %q: %w", r.Timestamp, err)
	}
	return ts, nil
}
