package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/chronos-tachyon/plainsight"
	"github.com/chronos-tachyon/plainsight/internal/runkey"
)

const (
	methodReverseHuffman = "reversehuffman"
	methodRunKey         = "runkey"
)

var (
	keyFlag = &cli.StringFlag{
		Name:    "key",
		Aliases: []string{"k"},
		Usage:   "name of a stored key",
	}
	corpusFlag = &cli.StringFlag{
		Name:  "corpus",
		Usage: "build the model from this text file instead of a stored key",
	}
	orderFlag = &cli.IntFlag{
		Name:  "order",
		Usage: "n-gram order for --corpus (default: codec.order)",
	}
	methodFlag = &cli.StringFlag{
		Name:  "method",
		Value: methodReverseHuffman,
		Usage: "algorithm: " + methodReverseHuffman + " or " + methodRunKey,
	}
	seedFlag = &cli.StringFlag{
		Name:  "seed",
		Usage: "start the cover text with these n-1 characters",
	}
	cleanFlag = &cli.BoolFlag{
		Name:  "clean",
		Usage: "normalize whitespace and strip HTML-reserved characters from the message first",
	}
	passthroughFlag = &cli.BoolFlag{
		Name:  "passthrough",
		Usage: "on failure, print the input unchanged instead of exiting with an error",
	}
)

var codecFlags = []cli.Flag{keyFlag, corpusFlag, orderFlag, methodFlag, passthroughFlag}

var hideCommand = &cli.Command{
	Name:      "hide",
	Usage:     "hide a message in generated cover text",
	ArgsUsage: "[MESSAGE...]",
	Flags:     append([]cli.Flag{seedFlag, cleanFlag}, codecFlags...),
	Action: func(ctx *cli.Context) error {
		return runCodec(ctx, true)
	},
}

var unhideCommand = &cli.Command{
	Name:      "unhide",
	Usage:     "recover a message from cover text",
	ArgsUsage: "[COVER TEXT...]",
	Flags:     codecFlags,
	Action: func(ctx *cli.Context) error {
		return runCodec(ctx, false)
	},
}

func runCodec(ctx *cli.Context, hide bool) error {
	e := getEnv(ctx)

	input, err := readInput(ctx, e.stdin)
	if err != nil {
		return err
	}
	if hide && ctx.Bool(cleanFlag.Name) {
		input = plainsight.CleanText(strings.TrimSpace(input))
	}

	output, err := transform(ctx, e, hide, input)
	if err != nil {
		if !ctx.Bool(passthroughFlag.Name) {
			return err
		}
		e.log.Error("Returning input unchanged", "hide", hide, "err", err)
		output = input
	}

	_, err = fmt.Fprintln(e.stdout, output)
	return err
}

func transform(ctx *cli.Context, e *env, hide bool, input string) (string, error) {
	switch method := ctx.String(methodFlag.Name); method {
	case methodReverseHuffman:
		table, err := loadTable(ctx, e)
		if err != nil {
			return "", err
		}
		codec := plainsight.New(table,
			plainsight.WithLogger(e.log.New("method", method)),
			plainsight.WithMaxIdleSteps(e.cfg.Codec.MaxIdleSteps))
		switch {
		case !hide:
			return codec.Decrypt(input)
		case ctx.IsSet(seedFlag.Name):
			return codec.EncryptWithSeed(input, ctx.String(seedFlag.Name))
		default:
			return codec.Encrypt(input)
		}

	case methodRunKey:
		path := ctx.String(corpusFlag.Name)
		if path == "" {
			return "", errors.New("--method runkey needs --corpus as the key text")
		}
		text, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrap(err, "read key text")
		}
		key := runkey.NormalizeKey(string(text))
		if hide {
			return runkey.Encrypt(input, key)
		}
		return runkey.Decrypt(input, key)

	default:
		return "", errors.Errorf("unknown method %q", method)
	}
}

// loadTable returns the model named by --key, or builds one from --corpus.
func loadTable(ctx *cli.Context, e *env) (*plainsight.Table, error) {
	if path := ctx.String(corpusFlag.Name); path != "" {
		order := e.cfg.Codec.Order
		if ctx.IsSet(orderFlag.Name) {
			order = ctx.Int(orderFlag.Name)
		}
		return buildTableFromFile(e, path, order)
	}

	name := ctx.String(keyFlag.Name)
	if name == "" {
		return nil, errors.New("one of --key or --corpus is required")
	}
	store, err := e.openStore()
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Get(name)
}

func buildTableFromFile(e *env, path string, order int) (*plainsight.Table, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read corpus")
	}
	table, err := plainsight.BuildTable(order, plainsight.CleanText(string(text)))
	if err != nil {
		return nil, err
	}
	e.log.Debug("Built model", "corpus", path, "order", order, "ngrams", table.Len())
	return table, nil
}

// readInput joins the positional arguments, or reads all of standard input
// when there are none.  One trailing line break is dropped from standard
// input.
func readInput(ctx *cli.Context, stdin io.Reader) (string, error) {
	if ctx.NArg() != 0 {
		return strings.Join(ctx.Args().Slice(), " "), nil
	}

	raw, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.Wrap(err, "read input")
	}
	text := strings.TrimSuffix(string(raw), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}
