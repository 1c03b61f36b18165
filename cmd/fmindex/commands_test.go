package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/urfave/cli/v2"
)

// captureOutput redirects stdout for the duration of f and returns what was
// written to it, the same pipe-and-copy trick the teacher's commands_test.go
// uses around os.Stdout.
func captureOutput(f func()) string {
	reader, writer, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	stdout := os.Stdout
	defer func() { os.Stdout = stdout }()
	os.Stdout = writer

	out := make(chan string)
	wg := new(sync.WaitGroup)
	wg.Add(1)
	go func() {
		var buf bytes.Buffer
		wg.Done()
		io.Copy(&buf, reader)
		out <- buf.String()
	}()
	wg.Wait()
	f()
	writer.Close()
	return <-out
}

func TestBuildAndSearchRoundTrip(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.txt")
	indexPath := filepath.Join(dir, "input.fmidx")

	if err := os.WriteFile(inputPath, []byte("banana"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	app := application()
	if err := app.Run([]string{"fmindex", "build", inputPath, indexPath}); err != nil {
		t.Fatalf("build: %v", err)
	}

	info, err := os.Stat(indexPath)
	if err != nil {
		t.Fatalf("Stat index: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("index file is empty")
	}

	out := captureOutput(func() {
		if err := app.Run([]string{"fmindex", "search", indexPath, "ana"}); err != nil {
			t.Errorf("search: %v", err)
		}
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("search output = %q, want 2 lines", out)
	}
	if lines[0] != "2" {
		t.Errorf("count = %q, want %q", lines[0], "2")
	}
	wantOffsets := map[string]bool{"1 3": true, "3 1": true}
	if !wantOffsets[lines[1]] {
		t.Errorf("offsets = %q, want one of %v", lines[1], wantOffsets)
	}
}

func TestSearchNoMatch(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.txt")
	indexPath := filepath.Join(dir, "input.fmidx")

	if err := os.WriteFile(inputPath, []byte("banana"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	app := application()
	if err := app.Run([]string{"fmindex", "build", inputPath, indexPath}); err != nil {
		t.Fatalf("build: %v", err)
	}

	out := captureOutput(func() {
		if err := app.Run([]string{"fmindex", "search", indexPath, "zzz"}); err != nil {
			t.Errorf("search: %v", err)
		}
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "0" {
		t.Errorf("count = %q, want %q", lines[0], "0")
	}
	if len(lines) > 1 && lines[1] != "" {
		t.Errorf("offsets = %q, want empty", lines[1])
	}
}

func TestBuildWithOracleVariantFlags(t *testing.T) {
	for _, variant := range []string{"naive", "full", "checkpointed"} {
		variant := variant
		t.Run(variant, func(t *testing.T) {
			dir := t.TempDir()
			inputPath := filepath.Join(dir, "input.txt")
			indexPath := filepath.Join(dir, "input.fmidx")

			if err := os.WriteFile(inputPath, []byte("mississippi"), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			app := application()
			args := []string{"fmindex", "build", "--oracle", variant, "--step", "2", "--sample-rate", "4", inputPath, indexPath}
			if err := app.Run(args); err != nil {
				t.Fatalf("build --oracle %s: %v", variant, err)
			}

			out := captureOutput(func() {
				if err := app.Run([]string{"fmindex", "search", indexPath, "issi"}); err != nil {
					t.Errorf("search: %v", err)
				}
			})
			lines := strings.Split(strings.TrimSpace(out), "\n")
			if lines[0] != "2" {
				t.Errorf("variant %s: count = %q, want %q", variant, lines[0], "2")
			}
		})
	}
}

func TestBuildRejectsTerminatorByte(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.txt")
	indexPath := filepath.Join(dir, "input.fmidx")

	if err := os.WriteFile(inputPath, []byte("has\x00null"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	app := application()
	// A cli.Exit error otherwise makes Run exit the process with its code.
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run([]string{"fmindex", "build", inputPath, indexPath})
	if err == nil {
		t.Fatalf("build with terminator byte in input: want error, got nil")
	}
}

func TestBuildUnknownOracleVariant(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.txt")
	indexPath := filepath.Join(dir, "input.fmidx")

	if err := os.WriteFile(inputPath, []byte("banana"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	app := application()
	// A cli.Exit error otherwise makes Run exit the process with its code.
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run([]string{"fmindex", "build", "--oracle", "bogus", inputPath, indexPath})
	if err == nil {
		t.Fatalf("build with unknown oracle variant: want error, got nil")
	}
}

func TestOracleVariantOption(t *testing.T) {
	if _, err := oracleVariantOption("naive"); err != nil {
		t.Errorf("oracleVariantOption(naive): %v", err)
	}
	if _, err := oracleVariantOption(""); err != nil {
		t.Errorf("oracleVariantOption(\"\"): %v", err)
	}
	if _, err := oracleVariantOption("not-a-variant"); err == nil {
		t.Errorf("oracleVariantOption(not-a-variant): want error, got nil")
	}
}

func TestFormatOffsets(t *testing.T) {
	cases := []struct {
		in   []int
		want string
	}{
		{nil, ""},
		{[]int{0}, "0"},
		{[]int{1, 3, 5}, "1 3 5"},
	}
	for _, tc := range cases {
		if got := formatOffsets(tc.in); got != tc.want {
			t.Errorf("formatOffsets(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
