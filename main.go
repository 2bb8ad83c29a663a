package main

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/scroller/internal/catalog"
	"git.lost.host/meutraa/scroller/internal/config"
	"git.lost.host/meutraa/scroller/internal/game"
	"git.lost.host/meutraa/scroller/internal/log"
	"git.lost.host/meutraa/scroller/internal/parser"
	"git.lost.host/meutraa/scroller/internal/scroller"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		stdlog.Fatalln(err)
	}
}

func run(args []string) error {
	cfg, err := config.Parse(args)
	if nil != err {
		return err
	}

	level := log.LevelFromString(cfg.LogLevel)
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if nil != err {
			return errors.Wrap(err, "unable to open log file")
		}
		defer f.Close()
		log.SetDefault(log.New(f, level))
	case cfg.Command == config.CmdPlay:
		// The HUD owns the terminal while playing
		log.SetDefault(log.Discard())
	default:
		log.Default().SetLevel(level)
	}

	switch cfg.Command {
	case config.CmdPlay:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		p := &Program{Config: cfg}
		defer p.Deinit()
		if err := p.Init(); nil != err {
			return err
		}
		if err := p.Run(ctx); nil != err {
			return err
		}
		p.Summary(os.Stdout)
		return nil
	case config.CmdImport:
		return importSong(cfg)
	case config.CmdList:
		return listSongs(cfg, os.Stdout)
	case config.CmdCheck:
		return checkSong(cfg, os.Stdout)
	case config.CmdExport:
		return exportSong(cfg)
	case config.CmdDelete:
		return deleteSong(cfg)
	}
	return errors.Errorf("unknown command %q", cfg.Command)
}

// loadSong reads a song from a file or, when asked, the catalog.
func loadSong(cfg *config.Config) (*game.Song, error) {
	var (
		song *game.Song
		err  error
	)
	if cfg.FromCatalog {
		c, err := catalog.Open(cfg.Catalog)
		if nil != err {
			return nil, err
		}
		defer c.Close()
		song, err = c.Load(cfg.Song)
		if nil != err {
			return nil, err
		}
	} else {
		song, err = parser.Load(cfg.Song, parser.Options{
			Keys:  cfg.KeyRow(),
			Lanes: cfg.Lanes,
			Chart: cfg.Chart,
		})
		if nil != err {
			return nil, err
		}
	}
	if cfg.Audio != "" {
		song.Audio = cfg.Audio
	}
	return song, nil
}

func importSong(cfg *config.Config) error {
	song, err := loadSong(cfg)
	if nil != err {
		return err
	}
	c, err := catalog.Open(cfg.Catalog)
	if nil != err {
		return err
	}
	defer c.Close()
	if err := c.Save(song); nil != err {
		return err
	}
	log.Default().Infof("imported %q with %d notes", song.Name, len(song.Notes))
	return nil
}

func deleteSong(cfg *config.Config) error {
	c, err := catalog.Open(cfg.Catalog)
	if nil != err {
		return err
	}
	defer c.Close()
	if err := c.Delete(cfg.Song); nil != err {
		return err
	}
	log.Default().Infof("deleted %q", cfg.Song)
	return nil
}

func listSongs(cfg *config.Config, out io.Writer) error {
	c, err := catalog.Open(cfg.Catalog)
	if nil != err {
		return err
	}
	defer c.Close()
	entries, err := c.List()
	if nil != err {
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(w, "%v\t%5v\t%v\t%v\n", e.Name, e.Notes, e.Sum[:8], e.Audio)
	}
	return w.Flush()
}

// checkSong prints when each note spawns for the configured scroll speed.
func checkSong(cfg *config.Config, out io.Writer) error {
	song, err := loadSong(cfg)
	if nil != err {
		return err
	}
	travel, err := scroller.TravelTime(Layout(cfg, 80, 24))
	if nil != err {
		return err
	}
	fmt.Fprintf(out, "%v: %d notes (%d double) over %d lanes, %v long, travel %v\n",
		song.Name, len(song.Notes), song.DoubleCount(), song.Lanes, song.Length(), travel)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	for i, n := range song.Notes {
		keys := string(n.Key1)
		if n.Kind == game.Double {
			keys += "+" + string(n.Key2)
		}
		fmt.Fprintf(w, "%d\t%v\t%v\t%v\t%d\t\n", i, n.Time, n.Time-travel, keys, n.Lane)
	}
	return w.Flush()
}

func exportSong(cfg *config.Config) error {
	song, err := loadSong(cfg)
	if nil != err {
		return err
	}
	data, err := parser.EncodeYAML(song, filepath.Dir(cfg.Output))
	if nil != err {
		return err
	}
	return os.WriteFile(cfg.Output, data, 0644)
}
