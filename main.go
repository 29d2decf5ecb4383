package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/spell-pseudodata/internal/common"
	"github.com/dtnitsch/spell-pseudodata/internal/create"
	"github.com/dtnitsch/spell-pseudodata/internal/db"
	"github.com/dtnitsch/spell-pseudodata/internal/derive"
	"github.com/dtnitsch/spell-pseudodata/internal/human"
	"github.com/dtnitsch/spell-pseudodata/models"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// configFlags are shared by the root action and subcommands.
func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Value: models.DefaultConfigFile, Usage: "YAML config file", EnvVars: []string{"PSEUDODATA_CONFIG"}},
		&cli.StringFlag{Name: "table", Usage: "derivative table JSON document", EnvVars: []string{"PSEUDODATA_TABLE"}},
		&cli.StringFlag{Name: "db", Usage: "SQLite database mirroring the table and recording runs", EnvVars: []string{"PSEUDODATA_DB"}},
		&cli.StringFlag{Name: "store", Usage: "where to load the table from: json or sqlite"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		&cli.BoolFlag{Name: "verbose", Usage: "log debug output"},
	}
}

func newApp() *cli.App {
	flags := append(configFlags(),
		&cli.BoolFlag{Name: "derive", Usage: "get derivatives and their frequencies for each word in the data files at PATH"},
		&cli.BoolFlag{Name: "human", Usage: "write words, derivatives and frequencies as a human readable CSV report"},
		&cli.StringFlag{Name: "create", Usage: "two column input file, or directory of them, to generate pseudodata from", EnvVars: []string{"PSEUDODATA_CREATE"}},
		&cli.StringFlag{Name: "report", Usage: "human readable report path"},
		&cli.StringFlag{Name: "output-dir", Usage: "directory for pseudodata files"},
		&cli.StringFlag{Name: "prefix", Usage: "file name prefix for pseudodata files"},
		&cli.BoolFlag{Name: "global", Usage: "track derivatives across all files instead of per file"},
		&cli.StringFlag{Name: "policy", Usage: "sampling policy: uniform or weighted"},
		&cli.Uint64Flag{Name: "seed", Usage: "random seed for sampling (0 picks one)"},
		&cli.IntFlag{Name: "top", Usage: "number of most frequent misspellings to print after derive"},
	)

	return &cli.App{
		Name:      "spell-pseudodata",
		Usage:     "Analyse word derivatives of data and generate pseudodata for spelling correction",
		ArgsUsage: "PATH",
		Description: "PATH is the directory holding the data files. Every file in it is treated as data,\n" +
			"so only files to be analysed for derivatives may live there.",
		Flags:  flags,
		Action: rootAction,
		Commands: []*cli.Command{
			{
				Name:   "runs",
				Usage:  "List recorded pseudodata runs",
				Flags:  append(configFlags(), &cli.IntFlag{Name: "limit", Value: 20, Usage: "max runs to show (0 for all)"}),
				Action: db.RunsAction,
			},
		},
	}
}

// rootAction runs the requested modes in order: derive, human, create.
func rootAction(c *cli.Context) error {
	doDerive, doHuman, target := c.Bool("derive"), c.Bool("human"), c.String("create")
	if !doDerive && !doHuman && target == "" {
		return cli.ShowAppHelp(c)
	}

	cfg, err := common.BuildConfig(c)
	if err != nil {
		return err
	}
	env := &common.Env{
		Config: cfg,
		Logger: common.NewLogger(c),
		Out:    c.App.Writer,
	}

	if doDerive {
		path := c.Args().First()
		if path == "" {
			return fmt.Errorf("--derive requires PATH to the data directory")
		}
		if _, err := derive.Run(env, path); err != nil {
			return err
		}
	}

	if doHuman {
		if err := human.Run(env); err != nil {
			return err
		}
	}

	if target != "" {
		if _, err := create.Run(env, target); err != nil {
			return err
		}
	}

	return nil
}
