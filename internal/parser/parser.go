package parser

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/scroller/internal/game"
)

type Parser interface {
	Parse(file string) (*game.Song, error)
}

// Options apply to the chart formats that carry no key names.
type Options struct {
	Keys  []game.Key // One per column or lane
	Lanes int        // Zero lets the format decide
	Chart int        // Difficulty index for .sm files
}

// ForFile picks a parser by extension.
func ForFile(file string, opts Options) (Parser, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return &YAMLParser{}, nil
	case ".sm":
		return &SMParser{Keys: opts.Keys, Chart: opts.Chart}, nil
	case ".mid", ".midi":
		return &MIDIParser{Keys: opts.Keys, Lanes: opts.Lanes}, nil
	}
	return nil, errors.Errorf("unsupported song file %q", file)
}

// Load parses, normalizes and validates a song file.
func Load(file string, opts Options) (*game.Song, error) {
	p, err := ForFile(file, opts)
	if nil != err {
		return nil, err
	}
	song, err := p.Parse(file)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to parse %s", file)
	}
	song.Normalize()
	if err := song.Validate(); nil != err {
		return nil, errors.Wrapf(err, "invalid song in %s", file)
	}
	return song, nil
}

var audioExts = [...]string{".ogg", ".mp3", ".wav"}

// findAudio looks for an audio track sharing the song file's base name.
func findAudio(file string) string {
	base := strings.TrimSuffix(file, filepath.Ext(file))
	for _, ext := range audioExts {
		if _, err := os.Stat(base + ext); nil == err {
			return base + ext
		}
	}
	return ""
}

// resolve makes a path from inside a song file relative to that file.
func resolve(file, ref string) string {
	if ref == "" || filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(filepath.Dir(file), ref)
}

func songName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}
