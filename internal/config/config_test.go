package config

import (
	"testing"
	"time"
)

func TestPlayDefaults(t *testing.T) {
	c, err := Parse([]string{"play", "song.yaml"})
	if nil != err {
		t.Fatal(err)
	}
	if c.Command != CmdPlay || c.Song != "song.yaml" {
		t.Fatalf("unexpected command %v %v", c.Command, c.Song)
	}
	if !c.Countdown || c.Phase != 700*time.Millisecond || c.Punch != 1.5 {
		t.Fatal("countdown defaults")
	}
	if c.ScrollSpeed != 40 || c.Settle != time.Second || c.Delay != 1500*time.Millisecond {
		t.Fatal("timing defaults")
	}
	if len(c.KeyRow()) != 9 || c.KeyMap()['a'] != "A" {
		t.Fatal("key defaults")
	}
}

func TestPlayFlags(t *testing.T) {
	c, err := Parse([]string{
		"play", "nocturne", "-C",
		"--no-countdown", "--delay", "2s", "--keys", "jkl",
		"--min-spawn-gap", "120ms", "-s", "25", "--mute", "--log-level", "debug",
	})
	if nil != err {
		t.Fatal(err)
	}
	if !c.FromCatalog || c.Countdown || c.Delay != 2*time.Second || !c.Mute {
		t.Fatalf("unexpected config %+v", c)
	}
	if c.MinSpawnGap != 120*time.Millisecond || c.ScrollSpeed != 25 || c.LogLevel != "debug" {
		t.Fatalf("unexpected config %+v", c)
	}
	if len(c.KeyRow()) != 3 {
		t.Fatal("expected three keys")
	}
}

func TestDefaultCommand(t *testing.T) {
	c, err := Parse([]string{"song.sm"})
	if nil != err {
		t.Fatal(err)
	}
	if c.Command != CmdPlay || c.Song != "song.sm" {
		t.Fatalf("unexpected command %v %v", c.Command, c.Song)
	}
}

func TestOtherCommands(t *testing.T) {
	c, err := Parse([]string{"list"})
	if nil != err || c.Command != CmdList {
		t.Fatal("list", err)
	}
	c, err = Parse([]string{"export", "nocturne", "out.yaml"})
	if nil != err || c.Command != CmdExport || !c.FromCatalog || c.Output != "out.yaml" {
		t.Fatal("export", err)
	}
	c, err = Parse([]string{"delete", "nocturne"})
	if nil != err || c.Command != CmdDelete || c.Song != "nocturne" {
		t.Fatal("delete", err)
	}
	c, err = Parse([]string{"check", "song.yaml", "-s", "10"})
	if nil != err || c.Command != CmdCheck || c.ScrollSpeed != 10 {
		t.Fatal("check", err)
	}
}

func TestInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"play", "song.yaml", "--keys", "   "},
		{"play", "song.yaml", "--scroll-speed", "0"},
		{"play", "song.yaml", "--frame-period", "0s"},
		{"play", "song.yaml", "--settle=-1s"},
		{"play", "song.yaml", "--lanes", "0"},
		{"play", "song.yaml", "--log-level", "loud"},
		{"import", "does-not-exist.yaml"},
		{"bogus", "command", "here"},
	} {
		if _, err := Parse(args); nil == err {
			t.Log(args)
			t.Fail()
		}
	}
}
