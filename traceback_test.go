package viterbi

import "testing"

func TestTerminalStateFlushIsZero(t *testing.T) {
	code := buildTestCode(5, 2, 10, Flush, []uint32{0x19, 0x1B})
	d, err := NewDecoder(code)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	state, err := d.terminalState()
	if err != nil {
		t.Fatalf("terminalState: %v", err)
	}
	if state != 0 {
		t.Fatalf("terminalState() = %d, want 0 for Flush", state)
	}
}

func TestTerminalStateTruncatePicksArgmax(t *testing.T) {
	code := buildTestCode(5, 2, 10, Truncate, []uint32{0x19, 0x1B})
	d, err := NewDecoder(code)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	d.sums[d.cur][3] = 50
	d.sums[d.cur][7] = 999
	state, err := d.terminalState()
	if err != nil {
		t.Fatalf("terminalState: %v", err)
	}
	if state != 7 {
		t.Fatalf("terminalState() = %d, want 7", state)
	}
}

func TestTerminalStateProtocolError(t *testing.T) {
	code := buildTestCode(5, 2, 10, Truncate, []uint32{0x19, 0x1B})
	d, err := NewDecoder(code)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	for i := range d.sums[d.cur] {
		d.sums[d.cur][i] = -1
	}
	if _, err := d.terminalState(); err == nil {
		t.Fatal("expected ErrProtocol when every metric is negative")
	}
}
