package parser

import (
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"git.lost.host/meutraa/scroller/internal/game"
)

// YAMLParser reads authored song files:
//
//	name: Nocturne
//	audio: nocturne.ogg
//	bpm: 96
//	lanes: 5
//	notes:
//	  - {time: 2.0, key: A, lane: 0}
//	  - {time: 3.5, kind: double, key: A, key2: S, lane: 2}
type YAMLParser struct{}

type yamlSong struct {
	Name  string     `yaml:"name"`
	Audio string     `yaml:"audio,omitempty"`
	BPM   float64    `yaml:"bpm,omitempty"`
	Lanes int        `yaml:"lanes"`
	Notes []yamlNote `yaml:"notes"`
}

type yamlNote struct {
	Time float64 `yaml:"time"` // Seconds
	Kind string  `yaml:"kind,omitempty"`
	Key  string  `yaml:"key"`
	Key2 string  `yaml:"key2,omitempty"`
	Lane int     `yaml:"lane"`
}

func (p *YAMLParser) Parse(file string) (*game.Song, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	song, err := DecodeYAML(data)
	if nil != err {
		return nil, err
	}
	if song.Name == "" {
		song.Name = songName(file)
	}
	if song.Audio == "" {
		song.Audio = findAudio(file)
	} else {
		song.Audio = resolve(file, song.Audio)
	}
	return song, nil
}

func DecodeYAML(data []byte) (*game.Song, error) {
	var ys yamlSong
	if err := yaml.Unmarshal(data, &ys); nil != err {
		return nil, err
	}
	song := &game.Song{
		Name:  ys.Name,
		Audio: ys.Audio,
		BPM:   ys.BPM,
		Lanes: ys.Lanes,
		Notes: make([]game.NoteSpec, 0, len(ys.Notes)),
	}
	for i, n := range ys.Notes {
		kind := game.Single
		if n.Key2 != "" {
			kind = game.Double
		}
		if n.Kind != "" {
			k, err := game.ParseKind(n.Kind)
			if nil != err {
				return nil, errors.Wrapf(err, "note %d", i)
			}
			kind = k
		}
		if math.IsNaN(n.Time) || math.IsInf(n.Time, 0) {
			return nil, errors.Errorf("note %d: invalid time %v", i, n.Time)
		}
		song.Notes = append(song.Notes, game.NoteSpec{
			Time: time.Duration(math.Round(n.Time * float64(time.Second))),
			Kind: kind,
			Key1: game.NewKey(n.Key),
			Key2: game.NewKey(n.Key2),
			Lane: n.Lane,
		})
	}
	return song, nil
}

// EncodeYAML writes a song in the format read by YAMLParser. The audio path
// is made relative to dir when possible.
func EncodeYAML(song *game.Song, dir string) ([]byte, error) {
	audio := song.Audio
	if dir != "" && audio != "" {
		if rel, err := filepath.Rel(dir, audio); nil == err {
			audio = rel
		}
	}
	ys := yamlSong{
		Name:  song.Name,
		Audio: audio,
		BPM:   song.BPM,
		Lanes: song.Lanes,
		Notes: make([]yamlNote, 0, len(song.Notes)),
	}
	for _, n := range song.Notes {
		yn := yamlNote{
			Time: n.Time.Seconds(),
			Key:  string(n.Key1),
			Lane: n.Lane,
		}
		if n.Kind == game.Double {
			yn.Kind = n.Kind.String()
			yn.Key2 = string(n.Key2)
		}
		ys.Notes = append(ys.Notes, yn)
	}
	return yaml.Marshal(&ys)
}
