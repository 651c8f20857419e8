package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/kr/pretty"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var dumpFlag = &cli.BoolFlag{
	Name:  "dump",
	Usage: "print every n-gram and its count",
}

var keyCommand = &cli.Command{
	Name:  "key",
	Usage: "manage stored keys (frequency tables built from a corpus)",
	Subcommands: []*cli.Command{
		{
			Name:      "add",
			Usage:     "build a key from a corpus file and store it",
			ArgsUsage: "NAME FILE",
			Flags:     []cli.Flag{orderFlag},
			Action:    keyAdd,
		},
		{
			Name:   "list",
			Usage:  "list stored keys",
			Action: keyList,
		},
		{
			Name:      "delete",
			Usage:     "delete a stored key",
			ArgsUsage: "NAME",
			Action:    keyDelete,
		},
		{
			Name:      "show",
			Usage:     "describe a stored key",
			ArgsUsage: "NAME",
			Flags:     []cli.Flag{dumpFlag},
			Action:    keyShow,
		},
	},
}

var configCommand = &cli.Command{
	Name:  "config",
	Usage: "print the effective configuration",
	Action: func(ctx *cli.Context) error {
		e := getEnv(ctx)
		_, err := pretty.Fprintf(e.stdout, "%# v\n", e.cfg)
		return err
	},
}

func keyAdd(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return errors.New("usage: key add [--order N] NAME FILE")
	}
	name, path := ctx.Args().Get(0), ctx.Args().Get(1)

	e := getEnv(ctx)
	order := e.cfg.Codec.Order
	if ctx.IsSet(orderFlag.Name) {
		order = ctx.Int(orderFlag.Name)
	}
	table, err := buildTableFromFile(e, path, order)
	if err != nil {
		return err
	}

	store, err := e.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Add(name, table); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(e.stdout, "Added key %q: %s\n", name, table)
	return nil
}

func keyList(ctx *cli.Context) error {
	e := getEnv(ctx)
	store, err := e.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	names, err := store.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		color.New(color.FgYellow).Fprintln(e.stdout, "(No keys found)")
		return nil
	}

	tw := tablewriter.NewWriter(e.stdout)
	tw.SetHeader([]string{"Name", "Order", "N-grams", "Total"})
	for _, name := range names {
		table, err := store.Get(name)
		if err != nil {
			return err
		}
		tw.Append([]string{
			name,
			strconv.Itoa(table.N()),
			strconv.Itoa(table.Len()),
			strconv.FormatUint(table.Total(), 10),
		})
	}
	tw.Render()

	_, err = fmt.Fprintf(e.stdout, "Storage used: %.1f%% of quota\n", 100*store.Usage())
	return err
}

func keyDelete(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("usage: key delete NAME")
	}
	name := ctx.Args().First()

	e := getEnv(ctx)
	store, err := e.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(name); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(e.stdout, "Deleted key %q\n", name)
	return nil
}

func keyShow(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("usage: key show [--dump] NAME")
	}
	name := ctx.Args().First()

	e := getEnv(ctx)
	store, err := e.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	table, err := store.Get(name)
	if err != nil {
		return err
	}
	if ctx.Bool(dumpFlag.Name) {
		_, err = table.Dump(e.stdout)
		return err
	}
	_, err = fmt.Fprintf(e.stdout, "%s: %s\n", name, table)
	return err
}
