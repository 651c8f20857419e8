package main

import (
	"io"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// newLogger writes records at or above lvl to w: colored terminal output
// when w is a terminal, logfmt otherwise.
func newLogger(w io.Writer, lvl log15.Lvl) log15.Logger {
	format := log15.LogfmtFormat()
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = colorable.NewColorable(f)
		format = log15.TerminalFormat()
	}

	logger := log15.New()
	logger.SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(w, format)))
	return logger
}
