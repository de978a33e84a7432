package main

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/alexisbeaulieu97/snygg/internal/config"
	"github.com/alexisbeaulieu97/snygg/internal/preview"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/value"
)

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func (a *app) previewOptions(out io.Writer) preview.Options {
	tty := supportsUnicode(out)
	opts := preview.Options{Color: tty, Unicode: tty, Output: out}
	switch a.settings.Color {
	case config.ColorAlways:
		opts.Color = true
	case config.ColorNever:
		opts.Color = false
	}
	return opts
}

func (a *app) renderer(out io.Writer, defines map[string]value.Value) *preview.Renderer {
	return preview.New(defines, a.previewOptions(out))
}
