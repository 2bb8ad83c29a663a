package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"git.lost.host/meutraa/scroller/internal/game"
	"git.lost.host/meutraa/scroller/internal/log"
)

var keys = game.KeyRow("asdfghjkl")

func equalNotes(t *testing.T, got, expected []game.NoteSpec) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("expected %d notes, got %d: %+v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Log("note", i)
			t.Log("got     ", got[i])
			t.Log("expected", expected[i])
			t.Fail()
		}
	}
}

func TestLoadYAML(t *testing.T) {
	song, err := Load("testdata/song.yaml", Options{})
	if nil != err {
		t.Fatal(err)
	}
	if song.Name != "Barroom Nocturne" || song.Lanes != 5 || song.BPM != 96 {
		t.Fatalf("unexpected header %+v", song)
	}
	if song.Audio != filepath.Join("testdata", "nocturne.ogg") {
		t.Fatalf("audio not resolved against the song file: %s", song.Audio)
	}
	equalNotes(t, song.Notes, []game.NoteSpec{
		{Time: 2 * time.Second, Kind: game.Single, Key1: "A", Lane: 0},
		{Time: 3500 * time.Millisecond, Kind: game.Double, Key1: "A", Key2: "S", Lane: 2},
		{Time: 4250 * time.Millisecond, Kind: game.Double, Key1: "D", Key2: "F", Lane: 4},
	})
}

func TestDecodeYAMLErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"kind":   "lanes: 1\nnotes:\n  - {time: 1, kind: triple, key: a}\n",
		"syntax": "lanes: [\n",
	} {
		if _, err := DecodeYAML([]byte(doc)); nil == err {
			t.Log(name, "expected an error")
			t.Fail()
		}
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	song, err := Load("testdata/song.yaml", Options{})
	if nil != err {
		t.Fatal(err)
	}
	data, err := EncodeYAML(song, "testdata")
	if nil != err {
		t.Fatal(err)
	}
	again, err := DecodeYAML(data)
	if nil != err {
		t.Fatal(err)
	}
	if again.Audio != "nocturne.ogg" {
		t.Fatalf("expected a relative audio path, got %s", again.Audio)
	}
	equalNotes(t, again.Notes, song.Notes)
}

func TestParseSM(t *testing.T) {
	song, err := Load("testdata/chart.sm", Options{Keys: keys})
	if nil != err {
		t.Fatal(err)
	}
	if song.Name != "Nocturne" || song.Lanes != 4 || song.BPM != 120 {
		t.Fatalf("unexpected header %+v", song)
	}
	equalNotes(t, song.Notes, []game.NoteSpec{
		{Time: 0, Kind: game.Single, Key1: "A", Lane: 0},
		{Time: 500 * time.Millisecond, Kind: game.Single, Key1: "S", Lane: 1},
		{Time: time.Second, Kind: game.Single, Key1: "D", Lane: 2},
		{Time: 1500 * time.Millisecond, Kind: game.Double, Key1: "A", Key2: "F", Lane: 0},
		{Time: 3 * time.Second, Kind: game.Single, Key1: "A", Lane: 0},
	})
}

func TestParseSMChartSelection(t *testing.T) {
	song, err := Load("testdata/chart.sm", Options{Keys: keys, Chart: 1})
	if nil != err {
		t.Fatal(err)
	}
	equalNotes(t, song.Notes, []game.NoteSpec{
		{Time: 0, Kind: game.Single, Key1: "A", Lane: 0},
		{Time: 2 * time.Second, Kind: game.Single, Key1: "A", Lane: 0},
	})
	if _, err := Load("testdata/chart.sm", Options{Keys: keys, Chart: 2}); nil == err {
		t.Fatal("expected missing chart error")
	}
	if _, err := Load("testdata/chart.sm", Options{Keys: keys[:2]}); nil == err {
		t.Fatal("expected too few keys error")
	}
}

func TestSMBPMChange(t *testing.T) {
	p := &SMParser{Keys: keys}
	song, err := p.parse(`#BPMS:0.000=60.000,4.000=120.000;
#NOTES:
     dance-single:
     :
     Easy:
     1:
     0:
1000
,
1000
0100
;
`)
	if nil != err {
		t.Fatal(err)
	}
	// The first measure lasts four seconds at 60 bpm, the second two at 120
	equalNotes(t, song.Notes, []game.NoteSpec{
		{Time: 0, Kind: game.Single, Key1: "A", Lane: 0},
		{Time: 4 * time.Second, Kind: game.Single, Key1: "A", Lane: 0},
		{Time: 5 * time.Second, Kind: game.Single, Key1: "S", Lane: 1},
	})
}

func TestSMEarlyRowsDropped(t *testing.T) {
	var buf bytes.Buffer
	p := &SMParser{Keys: keys, Log: log.New(&buf, log.LevelWarn)}
	song, err := p.parse(`#OFFSET:1.500;
#BPMS:0.000=60.000;
#NOTES:
     dance-single:
     :
     Easy:
     1:
     0:
1000
0100
0010
0001
;
`)
	if nil != err {
		t.Fatal(err)
	}
	// Rows land at -1.5s, -0.5s, 0.5s and 1.5s
	equalNotes(t, song.Notes, []game.NoteSpec{
		{Time: 500 * time.Millisecond, Kind: game.Single, Key1: "D", Lane: 2},
		{Time: 1500 * time.Millisecond, Kind: game.Single, Key1: "F", Lane: 3},
	})
	if !strings.Contains(buf.String(), "2 rows of chart 0") {
		t.Fatalf("expected a warning about dropped rows, got %q", buf.String())
	}

	buf.Reset()
	if _, err := p.parse(`#BPMS:0.000=60.000;
#NOTES:
     dance-single:
     :
     Easy:
     1:
     0:
1000
;
`); nil != err {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected warning %q", buf.String())
	}
}

func writeMIDI(t *testing.T, dir string) string {
	t.Helper()
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	var tr smf.Track
	tr.Add(0, smf.MetaTempo(120))
	tr.Add(0, midi.NoteOn(0, 60, 100))
	tr.Add(480, midi.NoteOff(0, 60))
	tr.Add(0, midi.NoteOn(0, 64, 100))
	tr.Add(0, midi.NoteOn(0, 72, 100))
	tr.Add(480, midi.NoteOff(0, 64))
	tr.Add(0, midi.NoteOff(0, 72))
	tr.Add(0, midi.NoteOn(0, 67, 0)) // velocity zero is a note off
	tr.Add(480, midi.NoteOn(0, 72, 90))
	tr.Close(0)
	if err := s.Add(tr); nil != err {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); nil != err {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "riff.mid")
	if err := os.WriteFile(file, buf.Bytes(), 0o644); nil != err {
		t.Fatal(err)
	}
	return file
}

func TestParseMIDI(t *testing.T) {
	dir := t.TempDir()
	file := writeMIDI(t, dir)
	if err := os.WriteFile(filepath.Join(dir, "riff.ogg"), nil, 0o644); nil != err {
		t.Fatal(err)
	}

	song, err := Load(file, Options{Keys: keys, Lanes: 3})
	if nil != err {
		t.Fatal(err)
	}
	if song.Name != "riff" || song.Audio != filepath.Join(dir, "riff.ogg") || song.BPM != 120 {
		t.Fatalf("unexpected header %+v", song)
	}
	// Pitches 60, 64, 72 rank 0, 1, 2 over three lanes
	equalNotes(t, song.Notes, []game.NoteSpec{
		{Time: 0, Kind: game.Single, Key1: "A", Lane: 0},
		{Time: 500 * time.Millisecond, Kind: game.Double, Key1: "S", Key2: "D", Lane: 1},
		{Time: 1500 * time.Millisecond, Kind: game.Single, Key1: "D", Lane: 2},
	})
}

func TestForFile(t *testing.T) {
	for file, ok := range map[string]bool{
		"a.yaml": true, "a.YML": true, "a.sm": true, "a.mid": true, "a.ogg": false,
	} {
		_, err := ForFile(file, Options{})
		if ok != (nil == err) {
			t.Log(file, err)
			t.Fail()
		}
	}
}
