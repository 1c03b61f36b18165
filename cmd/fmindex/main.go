package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

// main is separated from the actual *cli.App to help with testing, the
// same split the teacher's poly/main.go uses.
func main() {
	run(os.Args)
}

// run executes app against args, logging and exiting non-zero on error.
func run(args []string) {
	app := application()
	if err := app.Run(args); err != nil {
		log.Fatal(err)
	}
}

// application defines the fmindex command line utility: build an index
// from a text file, then search it.
func application() *cli.App {
	return &cli.App{
		Name:  "fmindex",
		Usage: "Build and query BWT/FM-index full-text search indexes.",

		Commands: []*cli.Command{
			{
				Name:  "build",
				Usage: "Build an FM-index from an input file.",
				ArgsUsage: "<input-path> <index-path>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "oracle",
						Value: "checkpointed",
						Usage: "Rank oracle variant: naive, full, or checkpointed.",
					},
					&cli.IntFlag{
						Name:  "step",
						Value: defaultCheckpointStepFlag,
						Usage: "Checkpoint step for the checkpointed oracle.",
					},
					&cli.IntFlag{
						Name:  "sample-rate",
						Value: defaultSampleRateFlag,
						Usage: "Suffix-array sample rate used by Locate.",
					},
				},
				Action: func(c *cli.Context) error {
					return buildCommand(c)
				},
			},
			{
				Name:      "search",
				Usage:     "Search a previously built FM-index for a pattern.",
				ArgsUsage: "<index-path> <pattern>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "debug",
						Usage: "Dump the backward search's LF-mapping interval at each iteration.",
					},
				},
				Action: func(c *cli.Context) error {
					return searchCommand(c)
				},
			},
		},
	}
}
