package parser

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/scroller/internal/game"
	"git.lost.host/meutraa/scroller/internal/log"
)

// SMParser reads StepMania charts. Each column becomes a lane pressed with
// Keys[column]; a row with two or more taps becomes one double note made of
// its two left-most taps.
type SMParser struct {
	Keys  []game.Key
	Chart int
	Log   *log.Logger
}

type bpm struct {
	StartingBeat float64
	Value        float64
}

type difficulty struct {
	Name    string
	Meter   string
	Section string
	Columns int
}

var columnMap = map[string]int{
	"dance-single": 4,
	"dance-solo":   6,
	"dance-double": 8,
}

func (p *SMParser) getSecondsPerNote(rates []bpm, currentBeat float64, bpn float64) float64 {
	sel := 0.0
	for _, b := range rates {
		if currentBeat >= b.StartingBeat {
			sel = b.Value
		} else {
			break
		}
	}
	return bpn * 60.0 / sel
}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine (or other negative note)
// K – Automatic keysound
// L – Lift note
// F – Fake note

func isTap(c byte) bool {
	return c == '1' || c == '2' || c == '4'
}

func isRow(l string, columns int) bool {
	if len(l) != columns {
		return false
	}
	for i := 0; i < len(l); i++ {
		if !strings.ContainsRune("01234MKLF", rune(l[i])) {
			return false
		}
	}
	return true
}

func (p *SMParser) Parse(file string) (*game.Song, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	song, err := p.parse(string(data))
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

func (p *SMParser) parse(str string) (*game.Song, error) {
	str = strings.ReplaceAll(str, "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]
	difficulties := []difficulty{}
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			continue
		}
		chartType := strings.TrimSuffix(strings.TrimSpace(lines[1]), ":")
		columns, ok := columnMap[chartType]
		if !ok {
			continue
		}
		difficulties = append(difficulties, difficulty{
			Name:    strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"),
			Meter:   strings.TrimSuffix(strings.TrimSpace(lines[4]), ":"),
			Section: lines[6],
			Columns: columns,
		})
	}
	if p.Chart < 0 || p.Chart >= len(difficulties) {
		return nil, errors.Errorf("chart %d not found, %d playable charts", p.Chart, len(difficulties))
	}

	song := &game.Song{}
	offset := 0.0
	bpms := []bpm{}

	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimPrefix(strings.TrimSpace(mdl), "#")
		value := func(tag string) string {
			return strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(mdl, tag), ";"))
		}
		switch {
		case strings.HasPrefix(mdl, "TITLE:"):
			song.Name = value("TITLE:")
		case strings.HasPrefix(mdl, "MUSIC:"):
			song.Audio = value("MUSIC:")
		case strings.HasPrefix(mdl, "OFFSET:"):
			offs, err := strconv.ParseFloat(value("OFFSET:"), 64)
			if nil != err {
				return nil, errors.Wrap(err, "invalid offset")
			}
			offset = -offs
		case strings.HasPrefix(mdl, "BPMS:"):
			for _, b := range strings.Split(strings.ReplaceAll(value("BPMS:"), "\n", ""), ",") {
				as := strings.Split(b, "=")
				if len(as) != 2 {
					return nil, errors.Errorf("invalid bpm %q", b)
				}
				sb, err := strconv.ParseFloat(strings.TrimSpace(as[0]), 64)
				if nil != err {
					return nil, errors.Wrap(err, "invalid bpm beat")
				}
				v, err := strconv.ParseFloat(strings.TrimSpace(as[1]), 64)
				if nil != err {
					return nil, errors.Wrap(err, "invalid bpm value")
				}
				if v <= 0 {
					return nil, errors.Errorf("invalid bpm value %v", v)
				}
				bpms = append(bpms, bpm{StartingBeat: sb, Value: v})
			}
		}
	}
	if len(bpms) == 0 || bpms[0].StartingBeat > 0 {
		return nil, errors.New("no bpm at beat 0")
	}
	song.BPM = bpms[0].Value

	d := difficulties[p.Chart]
	if len(p.Keys) < d.Columns {
		return nil, errors.Errorf("%d keys for %d columns", len(p.Keys), d.Columns)
	}
	song.Lanes = d.Columns

	// Start time of first note
	seconds := offset
	currentBeat := 0.0
	early := 0

	for _, block := range strings.Split(d.Section, "\n,") {
		lines := []string{}
		for _, l := range strings.Split(block, "\n") {
			l = strings.TrimSpace(l)
			if i := strings.Index(l, "//"); i >= 0 {
				l = strings.TrimSpace(l[:i])
			}
			l = strings.TrimSuffix(l, ";")
			if isRow(l, d.Columns) {
				lines = append(lines, l)
			}
		}
		if len(lines) == 0 {
			continue
		}

		// Beat count is 4 per block
		beatsPerNote := 4.0 / float64(len(lines)) // 1/4, 1/8, 1/16, 1/24 etc

		for _, line := range lines {
			secondsPerNote := p.getSecondsPerNote(bpms, currentBeat, beatsPerNote)

			taps := []int{}
			for i := 0; i < len(line); i++ {
				if isTap(line[i]) {
					taps = append(taps, i)
				}
			}
			t := time.Duration(seconds * float64(time.Second))
			if len(taps) > 0 && t < 0 {
				early++
			} else if len(taps) > 0 {
				note := game.NoteSpec{Time: t, Kind: game.Single, Key1: p.Keys[taps[0]], Lane: taps[0]}
				if len(taps) > 1 {
					note.Kind = game.Double
					note.Key2 = p.Keys[taps[1]]
				}
				song.Notes = append(song.Notes, note)
			}

			seconds += secondsPerNote
			currentBeat += beatsPerNote
		}
	}

	if early > 0 {
		l := p.Log
		if nil == l {
			l = log.Default()
		}
		l.Warnf("%d rows of chart %d fall before the start of the song with offset %v and were dropped", early, p.Chart, -offset)
	}
	return song, nil
}
