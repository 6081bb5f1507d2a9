package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/TACITVS/bin2imem/imem"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks failures caused by the command line rather than by I/O.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

type flags struct {
	words     int
	codec     string
	logLevel  string
	logFormat string
	checksum  bool
	quiet     bool
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "bin2imem [flags] <input.bin> <output.hex>",
		Short: "Convert a flat binary image into 32-bit hex words",
		Long: "Packs a flat little-endian binary image into 32-bit words and writes them\n" +
			"one per line as eight lowercase hex digits, for $readmemh-style loading into\n" +
			"a word-addressed memory. The final word is zero-padded; an empty result\n" +
			"produces an empty file.",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return usageError{err}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(f.logLevel, f.logFormat, stderr); err != nil {
				return usageError{err}
			}
			if f.quiet {
				clog.SetLevel(logrus.ErrorLevel)
			}
			opts, err := f.options(cmd)
			if err != nil {
				return usageError{err}
			}
			return convert(args[0], args[1], opts, f.checksum)
		},
	}

	fl := cmd.Flags()
	fl.IntVarP(&f.words, "words", "w", 0, "cap the output to `N` words")
	fl.StringVar(&f.codec, "codec", string(imem.CodecNone), "input codec: "+codecNames())
	fl.StringVar(&f.logLevel, "log-level", "info", "log level: trace, debug, info, warn or error")
	fl.StringVar(&f.logFormat, "log-format", "text", "log format: text or json")
	fl.BoolVar(&f.checksum, "checksum", false, "log the blake3-256 digest of the written output")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "only log errors")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
	return cmd
}

func codecNames() string {
	names := make([]string, len(imem.Codecs))
	for i, c := range imem.Codecs {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func (f *flags) options(cmd *cobra.Command) (imem.Options, error) {
	opts := imem.DefaultOptions()
	if cmd.Flags().Changed("words") {
		if f.words < 0 {
			return opts, fmt.Errorf("--words: %w: %d", imem.ErrNegativeLimit, f.words)
		}
		opts.Limit = f.words
	}
	codec, err := imem.ParseCodec(f.codec)
	if err != nil {
		return opts, err
	}
	opts.Codec = codec
	return opts, nil
}

func convert(src, dst string, opts imem.Options, checksum bool) error {
	log := clog.WithFields(logrus.Fields{"input": src, "output": dst})
	log.WithFields(logrus.Fields{"limit": opts.Limit, "codec": opts.Codec}).Debug("converting image")

	opts.OnProgress = func(p imem.Progress) {
		log.WithFields(logrus.Fields{"processed": p.Processed, "total": p.Total}).Trace("read input")
	}

	start := time.Now()
	stats, err := imem.ConvertFile(src, dst, opts)
	if err != nil {
		return err
	}

	fields := logrus.Fields{
		"bytes":   stats.BytesRead,
		"words":   stats.WordsWritten,
		"elapsed": time.Since(start).Round(time.Microsecond),
	}
	if stats.PadBytes > 0 {
		fields["pad"] = stats.PadBytes
	}
	if dropped := stats.Words - stats.WordsWritten; dropped > 0 {
		fields["dropped"] = dropped
		log.WithField("dropped", dropped).Warn("input exceeds word limit")
	}
	if checksum {
		sum, err := fileDigest(dst)
		if err != nil {
			return fmt.Errorf("checksum output: %w", err)
		}
		fields["blake3"] = sum
	}
	log.WithFields(fields).Info("wrote memory image")
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	clog.Out = stderr
	clog.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	clog.Level = logrus.InfoLevel

	cmd := newRootCmd(stderr)
	// cobra falls back to os.Args for a nil slice.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	var uerr usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &uerr):
		clog.Error(err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.Name())
		return exitUsage
	default:
		clog.Error(err)
		return exitFailure
	}
}
