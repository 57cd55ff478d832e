package session

import (
	"testing"
	"time"

	"wellbeing_station/internal/models"
	"wellbeing_station/internal/thresholds"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func testDurations() Durations {
	return Durations{Work: 25 * time.Second, Break: 10 * time.Second, AlertLead: 5 * time.Second}
}

func TestMachine_StartsWorkingAnchoredAtBoot(t *testing.T) {
	m := NewMachine(testDurations(), t0)
	if m.State() != models.Working {
		t.Fatalf("state = %v, want WORKING", m.State())
	}
	if !m.EnteredAt().Equal(t0) {
		t.Fatalf("anchor = %v, want %v", m.EnteredAt(), t0)
	}
}

func TestMachine_WorkToAlertToBreak(t *testing.T) {
	m := NewMachine(testDurations(), t0)

	if tr := m.Advance(t0.Add(19999 * time.Millisecond)); tr.Changed {
		t.Fatalf("unexpected transition before alert window: %+v", tr)
	}

	tr := m.Advance(t0.Add(20 * time.Second))
	if !tr.Changed || tr.From != models.Working || tr.To != models.AlertBeforeBreak {
		t.Fatalf("at 20s: %+v", tr)
	}
	if tr.Notice != models.NoticeBreakSoon || tr.Pulse != 0 {
		t.Fatalf("alert transition side effects: %+v", tr)
	}
	if !m.EnteredAt().Equal(t0) {
		t.Fatalf("alert must keep the work anchor, got %v", m.EnteredAt())
	}

	if tr := m.Advance(t0.Add(24 * time.Second)); tr.Changed || tr.Notice != "" {
		t.Fatalf("alert notice must not repeat: %+v", tr)
	}

	at25 := t0.Add(25 * time.Second)
	tr = m.Advance(at25)
	if !tr.Changed || tr.To != models.OnBreak {
		t.Fatalf("at 25s: %+v", tr)
	}
	if tr.Notice != models.NoticeBreakStarted || tr.Pulse != thresholds.BreakPulse {
		t.Fatalf("break side effects: %+v", tr)
	}
	if !m.EnteredAt().Equal(at25) {
		t.Fatalf("break must reset anchor to %v, got %v", at25, m.EnteredAt())
	}
}

func TestMachine_BreakBackToWork(t *testing.T) {
	m := NewMachine(testDurations(), t0)
	m.Advance(t0.Add(20 * time.Second))
	breakAt := t0.Add(25 * time.Second)
	m.Advance(breakAt)

	if tr := m.Advance(breakAt.Add(9 * time.Second)); tr.Changed {
		t.Fatalf("break ended early: %+v", tr)
	}
	workAt := breakAt.Add(10 * time.Second)
	tr := m.Advance(workAt)
	if !tr.Changed || tr.From != models.OnBreak || tr.To != models.Working {
		t.Fatalf("break end: %+v", tr)
	}
	if tr.Notice != models.NoticeWorkStarted || tr.Pulse != thresholds.WorkPulse {
		t.Fatalf("work side effects: %+v", tr)
	}
	if !m.EnteredAt().Equal(workAt) {
		t.Fatalf("anchor = %v, want %v", m.EnteredAt(), workAt)
	}
}

func TestMachine_StalledTickNeverSkipsAlert(t *testing.T) {
	m := NewMachine(testDurations(), t0)

	// First tick after a long blocking reconnect lands past the whole window.
	tr := m.Advance(t0.Add(40 * time.Second))
	if tr.To != models.AlertBeforeBreak {
		t.Fatalf("stalled tick went to %v, want ALERT_BEFORE_BREAK", tr.To)
	}
	tr = m.Advance(t0.Add(40*time.Second + time.Millisecond))
	if tr.To != models.OnBreak {
		t.Fatalf("next tick went to %v, want ON_BREAK", tr.To)
	}
}

func TestMachine_TransitionOrderOverManyCycles(t *testing.T) {
	m := NewMachine(testDurations(), t0)
	prev := m.State()
	changes := 0
	// Ticks at an uneven cadence, including some long stalls.
	now := t0
	for i := 0; i < 5000; i++ {
		step := 37 * time.Millisecond
		if i%211 == 0 {
			step = 7 * time.Second
		}
		now = now.Add(step)
		tr := m.Advance(now)
		if !tr.Changed {
			if m.State() != prev {
				t.Fatalf("state changed without a transition at tick %d", i)
			}
			continue
		}
		changes++
		if tr.From != prev || tr.To != prev.Next() {
			t.Fatalf("tick %d: illegal transition %v -> %v", i, tr.From, tr.To)
		}
		prev = tr.To
	}
	if changes < 6 {
		t.Fatalf("expected several full cycles, got %d transitions", changes)
	}
}

func TestMachine_Progress(t *testing.T) {
	m := NewMachine(testDurations(), t0)
	elapsed, remaining := m.Progress(t0.Add(5 * time.Second))
	if elapsed != 5*time.Second || remaining != 15*time.Second {
		t.Fatalf("working progress = %v/%v", elapsed, remaining)
	}
	m.Advance(t0.Add(21 * time.Second))
	_, remaining = m.Progress(t0.Add(21 * time.Second))
	if remaining != 4*time.Second {
		t.Fatalf("alert remaining = %v, want 4s", remaining)
	}
	_, remaining = m.Progress(t0.Add(60 * time.Second))
	if remaining != 0 {
		t.Fatalf("remaining must clamp at 0, got %v", remaining)
	}
}

func TestSessionState_String(t *testing.T) {
	cases := map[models.SessionState]string{
		models.Working:          "WORKING",
		models.AlertBeforeBreak: "ALERT_BEFORE_BREAK",
		models.OnBreak:          "ON_BREAK",
		models.SessionState(42): "UNKNOWN",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(s), got, want)
		}
	}
}
