package main

import (
	"bufio"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/arnodel/minify"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/encoding/htmlindex"
)

func main() {
	// Do not handle SIGPIPE, we'll do it ourselves (see error handling at the bottom of run).
	signal.Ignore(syscall.SIGPIPE)

	// Display a stack trace on panic
	defer func() {
		if e := recover(); e != nil {
			fmt.Fprintf(os.Stderr, "%s: %s", e, debug.Stack())
			os.Exit(2)
		}
	}()

	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run minifies stdin to stdout according to args and returns the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("minify", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() { printUsage(stderr) }

	// Parse the command line arguments
	var inputFormat string
	var charset string
	var bufferSize int
	var showStats bool
	var colorMode string

	flags.StringVar(&inputFormat, "in", "auto", "input format: auto, html, json")
	flags.StringVar(&charset, "charset", "utf-8", "character encoding of the input")
	flags.IntVar(&bufferSize, "buffer-size", 32*1024, "size of the buffer minified output is read into")
	flags.BoolVar(&showStats, "stats", false, "print input and output sizes to stderr")
	flags.StringVar(&colorMode, "color", "auto", "colorize stats: auto, always, never")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if flags.NArg() > 0 {
		return fatalError(stderr, "unexpected argument %q, use shell redirection instead: minify [options] < %[1]s", flags.Arg(0))
	}
	if bufferSize <= 0 {
		return fatalError(stderr, "invalid -buffer-size value: %d (must be positive)", bufferSize)
	}

	// Handle color mode
	var colorize bool
	switch colorMode {
	case "always":
		colorize = true
	case "never":
		colorize = false
	case "auto":
		colorize = isTerminal(stderr)
	default:
		return fatalError(stderr, "invalid -color value: %q (use auto, always, or never)", colorMode)
	}

	// Read from stdin, counting bytes for the stats
	counter := &countingReader{reader: stdin}
	var input io.Reader = counter

	// The UTF-8 decoder of x/text replaces invalid bytes with U+FFFD, the
	// minifiers drop them instead.
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return fatalError(stderr, "invalid -charset value: %q", charset)
	}
	if name, _ := htmlindex.Name(enc); name != "utf-8" {
		input = enc.NewDecoder().Reader(input)
	}

	// Choose the input format
	var format minify.Format
	if inputFormat == "auto" {
		var start = make([]byte, 40)
		n, err := io.ReadFull(input, start)
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return fatalError(stderr, "unable to read input: %s", err)
		}
		start = start[:n]
		switch {
		case n == 0:
			// Nothing to minify, any format will do.
			format = minify.JSON
		default:
			format = minify.GuessFormat(start)
			if format == minify.Unknown {
				return fatalError(stderr, "unable to guess input format, please specify -in FORMAT")
			}
		}
		input = io.MultiReader(bytes.NewReader(start), input)
	} else {
		format, err = minify.ParseFormat(inputFormat)
		if err != nil {
			return fatalError(stderr, "%s (use auto, html, or json)", err)
		}
	}

	minified, err := minify.NewReader(format, input)
	if err != nil {
		return fatalError(stderr, "error: %s", err)
	}

	// Write the output stream to stdout.  bufio.Writer is a ReaderFrom, hide
	// it so the copy goes through a buffer of the requested size.
	out := bufio.NewWriter(stdout)
	written, err := io.CopyBuffer(struct{ io.Writer }{out}, minified, make([]byte, bufferSize))
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		if errors.Is(err, syscall.EPIPE) {
			// stdout is a pipe and something closed it (e.g. 'head' or 'less').
			// In this case we don't want to complain.
			return 0
		}
		return fatalError(stderr, "error: %s", err)
	}

	if showStats {
		printStats(stderr, counter.count, written, colorize)
	}
	return 0
}

type countingReader struct {
	reader io.Reader
	count  int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.count += int64(n)
	return n, err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func printStats(w io.Writer, in, out int64, colorize bool) {
	var saved float64
	if in > 0 {
		saved = 100 * float64(in-out) / float64(in)
	}
	if !colorize {
		fmt.Fprintf(w, "%d -> %d bytes (%.1f%% saved)\n", in, out, saved)
		return
	}
	if f, ok := w.(*os.File); ok {
		w = colorable.NewColorable(f)
	}
	fmt.Fprintf(w, "%s%d%s -> %s%d%s bytes (%s%.1f%%%s saved)\n",
		dimWhite, in, reset,
		brightGreen, out, reset,
		yellow, saved, reset)
}

func fatalError(w io.Writer, msg string, args ...interface{}) int {
	fmt.Fprintf(w, msg+"\n", args...)
	return 1
}

// Some color ANSI codes
var (
	reset = []byte("\033[0m")

	yellow      = []byte("\033[33m")
	dimWhite    = []byte("\033[37;2m")
	brightGreen = []byte("\033[32;1m")
)

func printUsage(w io.Writer) {
	fmt.Fprint(w, `minify - HTML and JSON minifier

USAGE:
  minify [options] < input

DESCRIPTION:
  minify removes comments, control characters and redundant whitespace from
  HTML or JSON read on stdin and writes the result to stdout.  The input is
  processed as a stream: memory usage does not grow with the size of the
  input and output is produced as soon as input is available.

  HTML: comments are removed (conditional comments like <!--[if IE]> are
  kept), whitespace after '<' and before '>' is removed and runs of
  whitespace are collapsed.
  JSON: whitespace outside of strings is removed.
  In both formats ASCII control characters (including newlines and tabs) are
  removed, and bytes that are not valid in the input encoding are dropped.

OPTIONS:
  -in FORMAT        Input format (default: auto)
                    Formats: auto, html, json
  -charset NAME     Character encoding of the input (default: utf-8)
                    Any name from the WHATWG encoding standard, e.g. latin1,
                    windows-1252, shift_jis.  Output is always UTF-8.
  -buffer-size N    Size of the buffer minified output is read into
                    (default: 32768)
  -stats            Print input and output sizes to stderr
  -color MODE       Colorize stats (default: auto)
                    Modes: auto, always, never

EXAMPLES:
  # Minify an HTML page
  minify < index.html > index.min.html

  # Minify JSON from an API, reporting the savings
  curl -s https://api.example.com/data | minify -in json -stats

  # Minify a latin1 encoded page
  minify -charset latin1 < legacy.html
`)
}
