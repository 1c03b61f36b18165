package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/bwtsearch/fmindex/fmindex"
	"github.com/urfave/cli/v2"
)

const (
	defaultCheckpointStepFlag = fmindex.DefaultCheckpointStep
	defaultSampleRateFlag     = fmindex.DefaultSampleRate
)

// buildCommand implements `fmindex build <input-path> <index-path>`.
// Exit codes follow spec.md §6: 0 on success, 2 if the input contains
// the terminator byte, 1 on any other I/O failure.
func buildCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: fmindex build <input-path> <index-path>", 1)
	}
	inputPath, indexPath := c.Args().Get(0), c.Args().Get(1)

	text, err := os.ReadFile(inputPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("reading %s: %s", inputPath, err), 1)
	}

	oracleOpt, err := oracleVariantOption(c.String("oracle"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	idx, err := fmindex.Build(text,
		oracleOpt,
		fmindex.WithCheckpointStep(c.Int("step")),
		fmindex.WithSampleRate(c.Int("sample-rate")),
	)
	if err != nil {
		if errors.Is(err, fmindex.ErrInputContainsTerminator) {
			return cli.Exit(fmt.Sprintf("%s contains the terminator byte", inputPath), 2)
		}
		return cli.Exit(err.Error(), 1)
	}

	out, err := os.Create(indexPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("creating %s: %s", indexPath, err), 1)
	}
	defer out.Close()

	if err := fmindex.Save(idx, out); err != nil {
		return cli.Exit(fmt.Sprintf("writing %s: %s", indexPath, err), 1)
	}

	return nil
}

// searchCommand implements `fmindex search <index-path> <pattern>`: loads
// the index, prints the decimal count on one line, then a
// space-separated ascending list of offsets. Exits 0 even when count is
// 0, per spec.md §6.
func searchCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: fmindex search <index-path> <pattern>", 1)
	}
	indexPath, pattern := c.Args().Get(0), c.Args().Get(1)

	f, err := os.Open(indexPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("opening %s: %s", indexPath, err), 1)
	}
	defer f.Close()

	idx, err := fmindex.Load(f)
	if err != nil {
		return cli.Exit(fmt.Sprintf("loading %s: %s", indexPath, err), 1)
	}
	idx.SetDebug(c.Bool("debug"))

	count, err := idx.Count([]byte(pattern))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	offsets, err := idx.Locate([]byte(pattern))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Println(count)
	fmt.Println(formatOffsets(offsets))
	return nil
}

func formatOffsets(offsets []int) string {
	out := ""
	for i, o := range offsets {
		if i > 0 {
			out += " "
		}
		out += strconv.Itoa(o)
	}
	return out
}

func oracleVariantOption(name string) (fmindex.Option, error) {
	switch name {
	case "naive":
		return fmindex.WithOracleVariant(fmindex.OracleNaive), nil
	case "full":
		return fmindex.WithOracleVariant(fmindex.OracleFull), nil
	case "checkpointed", "":
		return fmindex.WithOracleVariant(fmindex.OracleCheckpointed), nil
	default:
		return nil, fmt.Errorf("unknown oracle variant %q: want naive, full, or checkpointed", name)
	}
}
