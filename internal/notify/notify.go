// Package notify emits desktop notifications when quota consumption
// crosses a configured threshold.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/codexmeter/codexmeter/internal/models"
)

// Notifier tracks primary-window consumption across refreshes and fires
// once per upward threshold crossing. A reset (usage dropping back below
// the threshold) re-arms it.
type Notifier struct {
	Threshold float64

	havePrev    bool
	prevPercent float64
	send        func(title, body string) error
}

// New creates a Notifier with the given threshold percentage.
func New(threshold float64) *Notifier {
	return &Notifier{
		Threshold: threshold,
		send: func(title, body string) error {
			return beeep.Notify(title, body, "")
		},
	}
}

// Observe inspects one snapshot and fires a notification when the
// primary window crossed the threshold since the previous observation.
func (n *Notifier) Observe(snap *models.Snapshot) {
	if snap == nil || snap.Primary == nil {
		return
	}

	percent := snap.Primary.UsedPercent
	prev, havePrev := n.prevPercent, n.havePrev
	n.prevPercent = percent
	n.havePrev = true

	if !havePrev {
		return
	}

	if percent >= n.Threshold && prev < n.Threshold {
		title := "Codex rate limit warning"
		body := fmt.Sprintf("5h window usage reached %.1f%% (threshold %.0f%%)", percent, n.Threshold)
		_ = n.send(title, body)
	}
}
