package checkout

import (
	"strings"

	"github.com/dinetab-pos/api/internal/money"
)

// Pad keys with special behavior. Digit keys ("0" to "9", "00") and "." append
// to the buffer; Delete removes the last character; commits happen through
// CommitTendered / CommitTips.
const (
	KeyDelete = "delete"
)

// Session is the transient state of one checkout interaction: the selected
// service area, committed tips and tendered amounts, the pending numeric-pad
// buffer, and the even-split count. It is discarded on settlement.
type Session struct {
	AreaID        int32
	TipsCents     int64
	TenderedCents int64
	SplitCount    int

	buffer string
}

// NewSession starts a checkout session for a service area.
func NewSession(areaID int32) *Session {
	return &Session{AreaID: areaID, SplitCount: 1}
}

// Press feeds one numeric-pad key into the buffer. Unknown keys are ignored,
// matching the inert buttons on the physical layout.
func (s *Session) Press(key string) {
	switch {
	case key == KeyDelete:
		if s.buffer != "" {
			s.buffer = s.buffer[:len(s.buffer)-1]
		}
	case key == ".":
		s.buffer += key
	case isDigits(key):
		s.buffer += key
	}
}

// Buffer exposes the pending input for display ("Current input: $...").
func (s *Session) Buffer() string { return s.buffer }

// CommitTendered parses the buffer as a dollar amount and commits it as the
// amount tendered. On success the buffer is cleared; on error it is left
// untouched so the operator can correct it.
func (s *Session) CommitTendered() error {
	cents, err := money.ParseAmount(s.buffer)
	if err != nil {
		return err
	}
	s.TenderedCents = cents
	s.buffer = ""
	return nil
}

// CommitTips is CommitTendered targeting the tips amount.
func (s *Session) CommitTips() error {
	cents, err := money.ParseAmount(s.buffer)
	if err != nil {
		return err
	}
	s.TipsCents = cents
	s.buffer = ""
	return nil
}

// QuickTender models the $5 / $10 / $20 quick-amount buttons: it sets the
// tendered amount directly, bypassing the buffer.
func (s *Session) QuickTender(cents int64) {
	s.TenderedCents = cents
}

// ClearTips resets tips to zero.
func (s *Session) ClearTips() {
	s.TipsCents = 0
}

// IncrementSplit adds one party to the even split.
func (s *Session) IncrementSplit() {
	s.SplitCount++
}

// DecrementSplit removes one party, never going below a single payer.
func (s *Session) DecrementSplit() {
	if s.SplitCount > 1 {
		s.SplitCount--
	}
}

// SplitAmounts divides the balance due across the current split count.
func (s *Session) SplitAmounts(balanceDue int64) []int64 {
	return money.SplitEvenly(balanceDue, s.SplitCount)
}

func isDigits(key string) bool {
	if key == "" {
		return false
	}
	return strings.Trim(key, "0123456789") == ""
}
