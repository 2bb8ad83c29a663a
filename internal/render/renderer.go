package render

import (
	"context"
	"time"
)

type Renderer interface {
	Init() error
	Deinit() error
	Size() (columns, rows int)
	AddDecoration(col, row int, content string, frames int)
	RenderLoop(ctx context.Context, period time.Duration, render func(dt time.Duration) bool) error
	Fill(row, column int, message string)
}
