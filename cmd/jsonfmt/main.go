// Command jsonfmt validates and reformats JSON documents.
//
//	jsonfmt [flags] [file|-]
//
// The document is read from the named file, or from standard input when no
// file or "-" is given, and written to standard output followed by a
// newline. Exit status is 0 on success, 2 for invalid input or usage and
// 10 for internal failures.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kingpin/v2"
	cyberphone "github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/KimNorgaard/go-jsonvalue"
)

const (
	exitSuccess  = 0
	exitInvalid  = 2
	exitInternal = 10
)

type config struct {
	file           string
	pretty         bool
	indent         int
	escapeNonASCII bool
	canonical      bool
	check          bool
	maxDepth       int
	maxInputSize   int
	logLevel       string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		cfg        config
		terminated bool
	)
	app := kingpin.New("jsonfmt", "Validate and reformat JSON documents.")
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)
	app.Terminate(func(int) { terminated = true })
	app.HelpFlag.Short('h')

	app.Flag("pretty", "Put every array element and object member on its own line.").Short('p').BoolVar(&cfg.pretty)
	app.Flag("indent", "Spaces per nesting level when pretty-printing.").Default(strconv.Itoa(jsonvalue.DefaultIndent)).IntVar(&cfg.indent)
	app.Flag("escape-non-ascii", "Write every codepoint above U+007F as a \\u escape.").BoolVar(&cfg.escapeNonASCII)
	app.Flag("canonical", "Write the RFC 8785 canonical form.").BoolVar(&cfg.canonical)
	app.Flag("check", "Only validate the input; write nothing on success.").BoolVar(&cfg.check)
	app.Flag("max-depth", "Maximum nesting depth of arrays and objects.").Default(strconv.Itoa(jsonvalue.DefaultMaxDepth)).IntVar(&cfg.maxDepth)
	app.Flag("max-input-size", "Maximum input size in bytes.").Default(strconv.Itoa(jsonvalue.DefaultMaxInputSize)).IntVar(&cfg.maxInputSize)
	app.Flag("log.level", "Only log messages with the given severity or above.").Default("warn").EnumVar(&cfg.logLevel, "debug", "info", "warn", "error")
	app.Arg("file", "Input file; standard input when omitted or '-'.").StringVar(&cfg.file)

	if _, err := app.Parse(args); err != nil {
		fmt.Fprintf(stderr, "jsonfmt: %v\n", err)
		return exitInvalid
	}
	if terminated {
		return exitSuccess
	}

	logger := newLogger(stderr, cfg.logLevel)
	if cfg.indent < 0 {
		level.Error(logger).Log("msg", "--indent must not be negative", "indent", cfg.indent)
		return exitInvalid
	}
	if cfg.canonical && (cfg.pretty || cfg.escapeNonASCII) {
		level.Error(logger).Log("msg", "--canonical cannot be combined with --pretty or --escape-non-ascii")
		return exitInvalid
	}

	v, err := decode(cfg, stdin)
	if err != nil {
		level.Error(logger).Log("msg", "invalid input", "source", source(cfg.file), "err", err)
		return exitInvalid
	}
	level.Debug(logger).Log("msg", "decoded input", "source", source(cfg.file), "type", v.Type(), "size", v.Size())
	if cfg.check {
		return exitSuccess
	}

	out, err := render(v, cfg)
	if err != nil {
		level.Error(logger).Log("msg", "rendering failed", "err", err)
		return exitInternal
	}
	if _, err := io.WriteString(stdout, out+"\n"); err != nil {
		level.Error(logger).Log("msg", "writing output failed", "err", errors.Wrap(err, "write"))
		return exitInternal
	}
	return exitSuccess
}

func newLogger(w io.Writer, lvl string) log.Logger {
	var allow level.Option
	switch lvl {
	case "debug":
		allow = level.AllowDebug()
	case "info":
		allow = level.AllowInfo()
	case "error":
		allow = level.AllowError()
	default:
		allow = level.AllowWarn()
	}
	return level.NewFilter(log.NewLogfmtLogger(log.NewSyncWriter(w)), allow)
}

func source(file string) string {
	if file == "" {
		return "-"
	}
	return file
}

func decode(cfg config, stdin io.Reader) (*jsonvalue.Value, error) {
	r := stdin
	if cfg.file != "" && cfg.file != "-" {
		f, err := os.Open(cfg.file)
		if err != nil {
			return nil, errors.Wrap(err, "open input")
		}
		defer f.Close()
		r = f
	}
	dec := jsonvalue.NewDecoder(r, jsonvalue.MaxDepth(cfg.maxDepth), jsonvalue.MaxInputSize(cfg.maxInputSize))
	v, err := dec.DecodeValue()
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", source(cfg.file))
	}
	return v, nil
}

func render(v *jsonvalue.Value, cfg config) (string, error) {
	if cfg.canonical {
		// The canonicalizer only accepts an array or object at the top level.
		out, err := cyberphone.Transform([]byte("[" + v.String() + "]"))
		if err != nil {
			return "", errors.Wrap(err, "canonicalize")
		}
		return string(out[1 : len(out)-1]), nil
	}

	opts := []jsonvalue.Option{}
	if cfg.pretty {
		opts = append(opts, jsonvalue.Indent(cfg.indent))
	}
	if cfg.escapeNonASCII {
		opts = append(opts, jsonvalue.EscapeNonASCII())
	}
	out, err := jsonvalue.Marshal(v, opts...)
	if err != nil {
		return "", errors.Wrap(err, "encode")
	}
	return string(out), nil
}
