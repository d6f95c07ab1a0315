// Command pollcat concatenates files through a pollio pipeline.
//
//	pollcat [-n bytes] [-buf size] [-o out] [-i] [-v] [file ...]
//
// Inputs are chained in order ("-" or no arguments reads stdin), optionally
// capped at -n bytes, and copied to stdout or -o. With -i a progress view is
// drawn on stderr while the copy runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/pollio"
	"github.com/wippyai/pollio/compat/stdio"
	"github.com/wippyai/pollio/op"
	"github.com/wippyai/pollio/stream"
)

type options struct {
	output      string
	inputs      []string
	limit       int64
	bufSize     int
	interactive bool
}

func main() {
	var (
		limit       = flag.Int64("n", -1, "Copy at most this many bytes (-1 for no limit)")
		bufSize     = flag.Int("buf", op.DefaultCopyBufferSize, "Relay buffer size in bytes")
		output      = flag.String("o", "", "Write to this file instead of stdout")
		interactive = flag.Bool("i", false, "Show a progress view on stderr")
		verbose     = flag.Bool("v", false, "Log pipeline events to stderr")
	)
	flag.Parse()

	if *bufSize <= 0 {
		fmt.Fprintln(os.Stderr, "Usage: pollcat [-n bytes] [-buf size] [-o out] [-i] [-v] [file ...]")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		pollio.SetLogger(logger)
	}

	opts := options{
		inputs:      flag.Args(),
		limit:       *limit,
		bufSize:     *bufSize,
		output:      *output,
		interactive: *interactive && term.IsTerminal(int(os.Stderr.Fd())),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n, err := run(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	pollio.Logger().Debug("pollcat done", zap.Int64("bytes", n))
}

func run(ctx context.Context, opts options) (int64, error) {
	src, total, closeInputs, err := openInputs(opts.inputs)
	if err != nil {
		return 0, err
	}
	defer closeInputs()

	if opts.limit >= 0 {
		src = stream.NewTake(src, uint64(opts.limit))
		if total < 0 || total > opts.limit {
			total = opts.limit
		}
	}

	var dst io.Writer = os.Stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return 0, fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		dst = f
	}

	sink := stdio.NewSink(dst)
	if opts.interactive {
		return runInteractive(ctx, src, sink, total, opts.bufSize)
	}
	return pollio.Block[int64](ctx, op.NewCopy(src, sink).WithBufferSize(opts.bufSize))
}

// openInputs chains the named files in order. The returned total is the sum
// of regular file sizes, or -1 when a size is unknown.
func openInputs(names []string) (pollio.Reader, int64, func(), error) {
	if len(names) == 0 {
		names = []string{"-"}
	}

	var (
		files []*os.File
		src   pollio.Reader
		total int64
	)
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	for _, name := range names {
		f := os.Stdin
		if name != "-" {
			var err error
			if f, err = os.Open(name); err != nil {
				closeAll()
				return nil, 0, nil, fmt.Errorf("open input: %w", err)
			}
			files = append(files, f)
		}

		if total >= 0 {
			if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() {
				total += fi.Size()
			} else {
				total = -1
			}
		}

		var next pollio.Reader = stdio.NewSource(f)
		if src == nil {
			src = next
		} else {
			src = stream.NewChain(src, next)
		}
	}

	return src, total, closeAll, nil
}
