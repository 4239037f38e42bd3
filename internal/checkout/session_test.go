package checkout

import (
	"errors"
	"testing"

	"github.com/dinetab-pos/api/internal/money"
)

func TestSession_PadEntryCommitsTendered(t *testing.T) {
	s := NewSession(7)
	for _, key := range []string{"1", "2", ".", "5", "0"} {
		s.Press(key)
	}
	if s.Buffer() != "12.50" {
		t.Fatalf("buffer: got %q, want 12.50", s.Buffer())
	}

	if err := s.CommitTendered(); err != nil {
		t.Fatalf("commit tendered: %v", err)
	}
	if s.TenderedCents != 1250 {
		t.Errorf("tendered: got %d, want 1250", s.TenderedCents)
	}
	if s.Buffer() != "" {
		t.Errorf("buffer after commit: got %q, want empty", s.Buffer())
	}
}

func TestSession_DeleteTruncatesBuffer(t *testing.T) {
	s := NewSession(1)
	s.Press("9")
	s.Press("9")
	s.Press(KeyDelete)
	if s.Buffer() != "9" {
		t.Errorf("buffer: got %q, want 9", s.Buffer())
	}

	s.Press(KeyDelete)
	s.Press(KeyDelete) // delete on empty buffer is a no-op
	if s.Buffer() != "" {
		t.Errorf("buffer: got %q, want empty", s.Buffer())
	}
}

func TestSession_DoubleZeroKey(t *testing.T) {
	s := NewSession(1)
	s.Press("5")
	s.Press("00")
	if s.Buffer() != "500" {
		t.Fatalf("buffer: got %q, want 500", s.Buffer())
	}
	if err := s.CommitTendered(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if s.TenderedCents != 50000 {
		t.Errorf("tendered: got %d, want 50000", s.TenderedCents)
	}
}

func TestSession_MalformedBufferPreserved(t *testing.T) {
	s := NewSession(1)
	for _, key := range []string{"1", ".", ".", "5"} {
		s.Press(key)
	}
	if s.Buffer() != "1..5" {
		t.Fatalf("buffer: got %q, want 1..5", s.Buffer())
	}

	err := s.CommitTendered()
	if !errors.Is(err, money.ErrInvalidAmount) {
		t.Fatalf("got %v, want ErrInvalidAmount", err)
	}
	// The operator corrects the buffer instead of retyping it.
	if s.Buffer() != "1..5" {
		t.Errorf("buffer after failed commit: got %q, want preserved", s.Buffer())
	}
	if s.TenderedCents != 0 {
		t.Errorf("tendered after failed commit: got %d, want 0", s.TenderedCents)
	}
}

func TestSession_EmptyBufferCommitFails(t *testing.T) {
	s := NewSession(1)
	if err := s.CommitTendered(); !errors.Is(err, money.ErrInvalidAmount) {
		t.Errorf("tendered: got %v, want ErrInvalidAmount", err)
	}
	if err := s.CommitTips(); !errors.Is(err, money.ErrInvalidAmount) {
		t.Errorf("tips: got %v, want ErrInvalidAmount", err)
	}
}

func TestSession_UnknownKeysIgnored(t *testing.T) {
	s := NewSession(1)
	s.Press("7")
	s.Press("enter")
	s.Press("x")
	s.Press("")
	if s.Buffer() != "7" {
		t.Errorf("buffer: got %q, want 7", s.Buffer())
	}
}

func TestSession_TipsAndClear(t *testing.T) {
	s := NewSession(1)
	s.Press("3")
	if err := s.CommitTips(); err != nil {
		t.Fatalf("commit tips: %v", err)
	}
	if s.TipsCents != 300 {
		t.Errorf("tips: got %d, want 300", s.TipsCents)
	}

	s.ClearTips()
	if s.TipsCents != 0 {
		t.Errorf("tips after clear: got %d, want 0", s.TipsCents)
	}
}

func TestSession_QuickTender(t *testing.T) {
	s := NewSession(1)
	s.Press("4") // pending input does not block quick buttons
	s.QuickTender(2000)
	if s.TenderedCents != 2000 {
		t.Errorf("tendered: got %d, want 2000", s.TenderedCents)
	}
}

func TestSession_SplitCountFloor(t *testing.T) {
	s := NewSession(1)
	s.DecrementSplit()
	if s.SplitCount != 1 {
		t.Errorf("split: got %d, want floor of 1", s.SplitCount)
	}

	s.IncrementSplit()
	s.IncrementSplit()
	if s.SplitCount != 3 {
		t.Errorf("split: got %d, want 3", s.SplitCount)
	}

	amounts := s.SplitAmounts(1000)
	if len(amounts) != 3 || amounts[0] != 333 || amounts[2] != 334 {
		t.Errorf("split amounts: got %v, want [333 333 334]", amounts)
	}
}
