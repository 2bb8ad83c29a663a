package parser

import (
	"io"
	"sort"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"git.lost.host/meutraa/scroller/internal/game"
)

// MIDIParser turns the note-on events of a standard MIDI file into notes.
// Distinct pitches are ranked and spread over the lanes, low to high, and
// note-ons sharing a tick pair up into double notes. Only the first tempo
// event is honoured.
type MIDIParser struct {
	Keys  []game.Key // One per lane
	Lanes int        // Zero uses one lane per key, at most one per pitch
}

const defaultTempo = 120.0

type noteOn struct {
	tick uint32
	key  uint8
}

func (p *MIDIParser) Parse(file string) (*game.Song, error) {
	s, err := smf.ReadFile(file)
	if nil != err {
		return nil, err
	}
	song, err := p.convert(s)
	if nil != err {
		return nil, err
	}
	song.Name = songName(file)
	song.Audio = findAudio(file)
	return song, nil
}

// Read parses a MIDI stream. The song has no name or audio track.
func (p *MIDIParser) Read(r io.Reader) (*game.Song, error) {
	s, err := smf.ReadFrom(r)
	if nil != err {
		return nil, err
	}
	return p.convert(s)
}

func (p *MIDIParser) convert(s *smf.SMF) (*game.Song, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, errors.New("only metric time formats are supported")
	}
	if len(p.Keys) == 0 {
		return nil, errors.New("no keys to map lanes onto")
	}

	tempo := 0.0
	ons := []noteOn{}
	for _, track := range s.Tracks {
		var abs uint32
		for _, ev := range track {
			abs += ev.Delta
			var bpm float64
			if tempo == 0 && ev.Message.GetMetaTempo(&bpm) && bpm > 0 {
				tempo = bpm
			}
			var ch, key, vel uint8
			if midi.Message(ev.Message).GetNoteStart(&ch, &key, &vel) {
				ons = append(ons, noteOn{tick: abs, key: key})
			}
		}
	}
	if tempo == 0 {
		tempo = defaultTempo
	}
	sort.Slice(ons, func(i, j int) bool {
		if ons[i].tick != ons[j].tick {
			return ons[i].tick < ons[j].tick
		}
		return ons[i].key < ons[j].key
	})

	rank := map[uint8]int{}
	pitches := []uint8{}
	for _, on := range ons {
		if _, ok := rank[on.key]; !ok {
			rank[on.key] = 0
			pitches = append(pitches, on.key)
		}
	}
	sort.Slice(pitches, func(i, j int) bool { return pitches[i] < pitches[j] })
	for i, k := range pitches {
		rank[k] = i
	}

	lanes := p.Lanes
	if lanes <= 0 {
		lanes = len(p.Keys)
		if len(pitches) < lanes {
			lanes = len(pitches)
		}
	}
	if lanes < 1 {
		lanes = 1
	}
	if len(p.Keys) < lanes {
		return nil, errors.Errorf("%d keys for %d lanes", len(p.Keys), lanes)
	}
	lane := func(key uint8) int {
		if len(pitches) < 2 {
			return 0
		}
		return rank[key] * (lanes - 1) / (len(pitches) - 1)
	}

	song := &game.Song{BPM: tempo, Lanes: lanes}
	for i := 0; i < len(ons); {
		j := i + 1
		for j < len(ons) && ons[j].tick == ons[i].tick {
			j++
		}
		first := lane(ons[i].key)
		note := game.NoteSpec{
			Time: ticks.Duration(tempo, ons[i].tick),
			Kind: game.Single,
			Key1: p.Keys[first],
			Lane: first,
		}
		if j-i > 1 {
			note.Kind = game.Double
			note.Key2 = p.Keys[lane(ons[i+1].key)]
		}
		song.Notes = append(song.Notes, note)
		i = j
	}
	return song, nil
}
