// Package config parses the command line.
package config

import (
	"time"

	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"

	"git.lost.host/meutraa/scroller/internal/game"
)

const (
	CmdPlay   = "play"
	CmdImport = "import"
	CmdList   = "list"
	CmdCheck  = "check"
	CmdExport = "export"
	CmdDelete = "delete"
)

type Config struct {
	Command string

	Song    string // Path to a song file, or a catalog name with FromCatalog
	Catalog string
	// The song argument names a catalog entry rather than a file
	FromCatalog bool
	Output      string

	Audio       string
	ScrollSpeed float64 // Cells per second
	MinSpawnGap time.Duration
	Settle      time.Duration
	Delay       time.Duration
	Countdown   bool
	Phase       time.Duration
	Punch       float64
	Keys        string
	Lanes       int
	Chart       int
	FramePeriod time.Duration
	Volume      float64
	Mute        bool

	LogFile  string
	LogLevel string
}

func (c *Config) KeyMap() game.KeyMap {
	return game.NewKeyMap(c.Keys)
}

func (c *Config) KeyRow() []game.Key {
	return game.KeyRow(c.Keys)
}

// Parse reads args, not including the program name.
func Parse(args []string) (*Config, error) {
	c := &Config{}
	app := kingpin.New("scroller", "Horizontal scrolling rhythm note player")
	app.Version("0.3.0")
	app.Flag("catalog", "Song catalog database").Default("scroller.db").Short('c').StringVar(&c.Catalog)
	app.Flag("log-file", "Write logs to this file").Default("").StringVar(&c.LogFile)
	app.Flag("log-level", "debug, info, warn or error").Default("info").EnumVar(&c.LogLevel, "debug", "info", "warn", "error", "none")
	app.Flag("keys", "Key row, one key per lane").Default("asdfghjkl").Short('k').StringVar(&c.Keys)
	app.Flag("lanes", "Lane count for MIDI files").Default("3").IntVar(&c.Lanes)
	app.Flag("chart", "Chart index in .sm files").Default("0").IntVar(&c.Chart)

	play := app.Command(CmdPlay, "Play a song").Default()
	play.Arg("song", "Song file (.yaml, .sm, .mid) or catalog name").Required().StringVar(&c.Song)
	play.Flag("from-catalog", "Load the song from the catalog").Short('C').BoolVar(&c.FromCatalog)
	play.Flag("audio", "Audio file, overriding the song's").Short('a').StringVar(&c.Audio)
	play.Flag("scroll-speed", "Scroll speed in cells per second").Default("40").Short('s').Float64Var(&c.ScrollSpeed)
	play.Flag("min-spawn-gap", "Minimum time between spawns").Default("0s").DurationVar(&c.MinSpawnGap)
	play.Flag("settle", "Delay after the track stops before finishing").Default("1s").DurationVar(&c.Settle)
	play.Flag("delay", "Start delay without a countdown").Default("1.5s").Short('d').DurationVar(&c.Delay)
	play.Flag("countdown", "Show a Ready, Set, Go countdown").Default("true").BoolVar(&c.Countdown)
	play.Flag("phase", "Length of each countdown phase").Default("700ms").DurationVar(&c.Phase)
	play.Flag("punch", "Countdown scale punch").Default("1.5").Float64Var(&c.Punch)
	play.Flag("frame-period", "Render frame period").Default("8ms").Short('p').DurationVar(&c.FramePeriod)
	play.Flag("volume", "Linear volume").Default("1.0").Short('v').Float64Var(&c.Volume)
	play.Flag("mute", "Silence hit and miss cues").BoolVar(&c.Mute)

	imp := app.Command(CmdImport, "Parse a song file and store it in the catalog")
	imp.Arg("file", "Song file").Required().ExistingFileVar(&c.Song)

	app.Command(CmdList, "List catalog songs")

	check := app.Command(CmdCheck, "Validate a song and print spawn times")
	check.Arg("song", "Song file or catalog name").Required().StringVar(&c.Song)
	check.Flag("from-catalog", "Load the song from the catalog").Short('C').BoolVar(&c.FromCatalog)
	check.Flag("scroll-speed", "Scroll speed in cells per second").Default("40").Short('s').Float64Var(&c.ScrollSpeed)

	export := app.Command(CmdExport, "Write a catalog song as YAML")
	export.Arg("name", "Catalog name").Required().StringVar(&c.Song)
	export.Arg("file", "Output file").Required().StringVar(&c.Output)

	del := app.Command(CmdDelete, "Remove a song from the catalog")
	del.Arg("name", "Catalog name").Required().StringVar(&c.Song)

	cmd, err := app.Parse(args)
	if nil != err {
		return nil, err
	}
	c.Command = cmd
	if cmd == CmdExport {
		c.FromCatalog = true
	}
	return c, c.validate()
}

func (c *Config) validate() error {
	if len(c.KeyRow()) == 0 {
		return errors.New("--keys must name at least one key")
	}
	if c.Lanes < 1 {
		return errors.Errorf("--lanes must be at least 1, got %d", c.Lanes)
	}
	if c.Command == CmdPlay || c.Command == CmdCheck {
		if c.ScrollSpeed <= 0 {
			return errors.Errorf("--scroll-speed must be positive, got %v", c.ScrollSpeed)
		}
	}
	if c.Command == CmdPlay {
		if c.FramePeriod <= 0 {
			return errors.Errorf("--frame-period must be positive, got %v", c.FramePeriod)
		}
		if c.MinSpawnGap < 0 || c.Settle < 0 {
			return errors.New("--min-spawn-gap and --settle must not be negative")
		}
	}
	return nil
}
