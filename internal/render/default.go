// Package render draws the play session status onto an ANSI terminal and
// drives the frame loop.
package render

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

type DefaultRenderer struct {
	out         io.Writer
	fd          int
	terminal    bool
	buffer      strings.Builder
	decorations []*decoration
}

type decoration struct {
	X, Y    int
	Content string
	Frames  int // remaining frames until removed
}

// NewRenderer writes frames to out. Terminal handling only applies when out
// is a terminal.
func NewRenderer(out io.Writer) *DefaultRenderer {
	r := &DefaultRenderer{out: out, fd: -1}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.fd = int(f.Fd())
		r.terminal = true
	}
	return r
}

func (r *DefaultRenderer) Init() error {
	if !r.terminal {
		return nil
	}
	_, err := io.WriteString(r.out, "\033[?1049h"+ // Enable alternate buffer
		"\033[?25l"+ // Make the cursor invisible
		"\033[2J", // Clear the screen
	)
	return err
}

func (r *DefaultRenderer) Deinit() error {
	if !r.terminal {
		return nil
	}
	_, err := io.WriteString(r.out, "\033[?1049l"+ // Disable alternate buffer
		"\033[?25h", // Make the cursor visible
	)
	return err
}

// Size is the terminal size, 80x24 when unknown.
func (r *DefaultRenderer) Size() (columns, rows int) {
	if r.terminal {
		if c, rw, err := term.GetSize(r.fd); nil == err {
			return c, rw
		}
	}
	return 80, 24
}

func (r *DefaultRenderer) AddDecoration(col, row int, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Frames:  frames,
	})
	r.Fill(row, col, content)
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			r.Fill(d.Y, d.X, strings.Repeat(" ", visibleLen(d.Content)))
			continue
		}
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

// RenderLoop calls render once per period with the time since the previous
// frame until render returns false or ctx is done.
func (r *DefaultRenderer) RenderLoop(ctx context.Context, period time.Duration, render func(dt time.Duration) bool) error {
	last := time.Now()
	for {
		now := time.Now()
		deadline := now.Add(period)

		cont := render(now.Sub(last))
		last = now

		r.tickDecorations()
		if err := r.flush(); nil != err {
			return err
		}
		if !cont {
			return nil
		}
		if err := ctx.Err(); nil != err {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(deadline)):
		}
	}
}

func (r *DefaultRenderer) Fill(row, column int, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(column))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

// visibleLen counts the cells a message covers, skipping escape sequences.
func visibleLen(s string) int {
	n := 0
	escape := false
	for _, c := range s {
		switch {
		case c == '\033':
			escape = true
		case escape:
			if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
				escape = false
			}
		default:
			n++
		}
	}
	return n
}

func (r *DefaultRenderer) flush() error {
	if r.buffer.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(r.out, r.buffer.String())
	r.buffer.Reset()
	return err
}
