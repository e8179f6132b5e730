// Package input turns raw terminal bytes into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a movement key counts as held after its last
// byte arrived. Terminals only send key repeats, so this bridges the gaps.
const keyHoldDuration = 30 * time.Millisecond

// Input is the key state for one frame. Left and Right are held keys; the
// rest report whether the key was pressed since the previous frame.
type Input struct {
	Left  bool
	Right bool
	Fire  bool
	Pause bool
	Start bool
	Quit  bool
	// Closed is set once the underlying reader has failed or hit EOF.
	Closed bool
}

type keyState struct {
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and remembers when movement keys
// were last seen.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
	// pending holds an escape sequence cut off at the end of the last drain.
	pending []byte
}

// StartStream spawns a goroutine that reads from r and feeds the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Read drains every byte available on the stream without blocking and
// returns the input for the frame starting at now.
func (s *Stream) Read(now time.Time) Input {
	var buf []byte
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := s.parse(buf, now)
	in.Closed = s.closed
	if s.closed {
		in.Quit = true
	}
	return in
}

// parse applies buf to the key state and reports the frame's keys.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	if len(s.pending) > 0 {
		buf = append(s.pending, buf...)
		s.pending = nil
	}

	var in Input
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI arrow keys: ESC [ C / ESC [ D
		if b == '\x1b' {
			rest := buf[i+1:]
			if len(rest) == 0 || (rest[0] == '[' && len(rest) == 1) {
				s.pending = append([]byte(nil), buf[i:]...)
				break
			}
			if rest[0] == '[' {
				switch rest[1] {
				case 'C':
					s.state.right = now
				case 'D':
					s.state.left = now
				}
				i += 2
			}
			continue
		}

		switch b {
		case 'q', 'Q', '\x03':
			in.Quit = true
		case 'a', 'A', 'j', 'J':
			s.state.left = now
		case 'd', 'D', 'l', 'L':
			s.state.right = now
		case ' ':
			in.Fire = true
			in.Start = true
		case '\n', '\r':
			in.Start = true
		case 'p', 'P':
			in.Pause = true
		}
	}

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	return in
}
