package audio

import (
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/pkg/errors"

	"git.lost.host/meutraa/scroller/internal/game"
)

// silence is an in-memory track of n samples
type silence struct {
	n, pos int
	closed bool
}

func (s *silence) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.n {
		return 0, false
	}
	n := len(samples)
	if s.n-s.pos < n {
		n = s.n - s.pos
	}
	for i := 0; i < n; i++ {
		samples[i] = [2]float64{}
	}
	s.pos += n
	return n, true
}

func (s *silence) Err() error    { return nil }
func (s *silence) Len() int      { return s.n }
func (s *silence) Position() int { return s.pos }
func (s *silence) Close() error  { s.closed = true; return nil }
func (s *silence) Seek(p int) error {
	s.pos = p
	return nil
}

var format = beep.Format{SampleRate: 1000, NumChannels: 2, Precision: 2}

func drain(s beep.Streamer, chunk int) int {
	buf := make([][2]float64, chunk)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestPlayerClock(t *testing.T) {
	track := &silence{n: 2500}
	p := NewPlayer(track, format)
	var queued []beep.Streamer
	p.play = func(s ...beep.Streamer) { queued = append(queued, s...) }

	if p.ClipDuration() != 2500*time.Millisecond {
		t.Fatalf("unexpected clip duration %v", p.ClipDuration())
	}
	if p.CurrentTime() != 0 || p.HasStopped() {
		t.Fatal("player should be idle")
	}

	p.Play()
	p.Play()
	if len(queued) != 1 {
		t.Fatalf("expected one queued stream, got %d", len(queued))
	}

	buf := make([][2]float64, 1000)
	queued[0].Stream(buf)
	if p.CurrentTime() != time.Second {
		t.Fatalf("expected 1s, got %v", p.CurrentTime())
	}
	if p.HasStopped() {
		t.Fatal("stopped too early")
	}

	drain(queued[0], 300)
	if !p.HasStopped() {
		t.Fatal("player should report stopped at the end of the track")
	}
	if err := p.Close(); nil != err || !track.closed {
		t.Fatal("track not closed")
	}
}

func TestOpenUnknownFormat(t *testing.T) {
	if _, err := Open("song.flac"); nil == err {
		t.Fatal("expected an error")
	}
	if _, err := Open("audio_test.go"); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestToneLength(t *testing.T) {
	for _, chunk := range []int{1, 7, 64, 512} {
		n := drain(Tone(44100, SuccessFreq, CueLength), chunk)
		if n != beep.SampleRate(44100).N(CueLength) {
			t.Log(chunk, n)
			t.Fail()
		}
	}
}

func TestToneRange(t *testing.T) {
	buf := make([][2]float64, 512)
	n, _ := Tone(44100, MissFreq, CueLength).Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] < -0.5 || buf[i][0] > 0.5 || buf[i][0] != buf[i][1] {
			t.Fatalf("sample %d out of range: %v", i, buf[i])
		}
	}
}

func TestCues(t *testing.T) {
	played := 0
	c := NewCues(1000, 1, false)
	c.play = func(s ...beep.Streamer) { played += len(s) }
	c.Success(game.Point{})
	c.Miss(game.Point{})
	if played != 2 {
		t.Fatalf("expected two cues, got %d", played)
	}

	muted := NewCues(1000, 1, true)
	muted.play = c.play
	muted.Success(game.Point{})
	if played != 2 {
		t.Fatal("muted cues should not play")
	}
}
