// plainsight hides text inside innocent-looking text generated from the
// n-gram statistics of a source corpus, and recovers it again.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/chronos-tachyon/plainsight/internal/config"
	"github.com/chronos-tachyon/plainsight/internal/keystore"
)

const envKey = "plainsight.env"

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "load settings from this TOML file",
		EnvVars: []string{"PLAINSIGHT_CONFIG"},
	}
	storeFlag = &cli.StringFlag{
		Name:  "store",
		Usage: "key store directory (overrides store.path)",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "log verbosity: crit, error, warn, info, debug (overrides log.level)",
	}
)

// env is the state shared by all commands, built once in setup.
type env struct {
	cfg    config.Config
	log    log15.Logger
	stdin  io.Reader
	stdout io.Writer
}

func (e *env) openStore() (*keystore.Store, error) {
	return keystore.Open(e.cfg.Store.Path, e.cfg.StoreOptions(e.log))
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "plainsight",
		Usage:    "hide text in plain sight",
		Flags:    []cli.Flag{configFlag, storeFlag, logLevelFlag},
		Before:   setup,
		Metadata: make(map[string]interface{}),
		Commands: []*cli.Command{
			hideCommand,
			unhideCommand,
			keyCommand,
			configCommand,
		},
	}
}

func setup(ctx *cli.Context) error {
	cfg := config.Default()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}
	if path := ctx.String(storeFlag.Name); path != "" {
		cfg.Store.Path = path
	}
	if level := ctx.String(logLevelFlag.Name); level != "" {
		cfg.Log.Level = level
	}
	if err := cfg.Validate(); err != nil {
		return errors.WithMessage(err, "invalid configuration")
	}

	lvl, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	stdin := ctx.App.Reader
	if stdin == nil {
		stdin = os.Stdin
	}
	ctx.App.Metadata[envKey] = &env{
		cfg:    cfg,
		log:    newLogger(ctx.App.ErrWriter, lvl),
		stdin:  stdin,
		stdout: ctx.App.Writer,
	}
	return nil
}

// getEnv finds the env stored by setup on the root App.
func getEnv(ctx *cli.Context) *env {
	for _, c := range ctx.Lineage() {
		if c.App == nil {
			continue
		}
		if e, ok := c.App.Metadata[envKey].(*env); ok {
			return e
		}
	}
	panic("plainsight: setup did not run")
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "plainsight:", err)
		os.Exit(1)
	}
}
