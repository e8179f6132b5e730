package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Input
	}{
		{"nothing", "", Input{}},
		{"left letter", "a", Input{Left: true}},
		{"left vim", "j", Input{Left: true}},
		{"right letter", "D", Input{Right: true}},
		{"right arrow", "\x1b[C", Input{Right: true}},
		{"left arrow", "\x1b[D", Input{Left: true}},
		{"up arrow ignored", "\x1b[A", Input{}},
		{"space fires and starts", " ", Input{Fire: true, Start: true}},
		{"enter starts", "\r", Input{Start: true}},
		{"pause", "p", Input{Pause: true}},
		{"quit", "q", Input{Quit: true}},
		{"ctrl-c quits", "\x03", Input{Quit: true}},
		{"move and fire", "a ", Input{Left: true, Fire: true, Start: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Stream{}
			got := s.parse([]byte(tt.in), time.Unix(100, 0))
			if got != tt.want {
				t.Errorf("parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitEscapeSequence(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   Input
	}{
		{"left arrow after ESC [", []string{"\x1b[", "D"}, Input{Left: true}},
		{"right arrow after ESC", []string{"\x1b", "[C"}, Input{Right: true}},
		{"lone escape then key", []string{"\x1b", "d"}, Input{Right: true}},
		{"up arrow after ESC [", []string{"\x1b[", "A"}, Input{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Stream{}
			now := time.Unix(100, 0)
			if got := s.parse([]byte(tt.chunks[0]), now); got != (Input{}) {
				t.Fatalf("first chunk %q = %+v, want nothing", tt.chunks[0], got)
			}
			if got := s.parse([]byte(tt.chunks[1]), now); got != tt.want {
				t.Errorf("second chunk %q = %+v, want %+v", tt.chunks[1], got, tt.want)
			}
		})
	}
}

func TestMovementIsHeldBriefly(t *testing.T) {
	s := &Stream{}
	start := time.Unix(100, 0)
	s.parse([]byte("d"), start)

	if in := s.parse(nil, start.Add(keyHoldDuration/2)); !in.Right {
		t.Error("right released before the hold window")
	}
	if in := s.parse(nil, start.Add(keyHoldDuration)); in.Right {
		t.Error("right still held after the hold window")
	}
}

func TestClosedStreamQuits(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("a")))

	deadline := time.Now().Add(2 * time.Second)
	var in Input
	for time.Now().Before(deadline) {
		in = s.Read(time.Now())
		if in.Closed {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !in.Closed || !in.Quit {
		t.Fatalf("input after EOF = %+v, want closed and quit", in)
	}
	if in := s.Read(time.Now()); !in.Closed {
		t.Error("closed flag not sticky")
	}
}
