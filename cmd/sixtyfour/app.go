package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	gol "github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/novemberborn/sixtyfour/internal/config"
	"github.com/novemberborn/sixtyfour/internal/input"
	"github.com/novemberborn/sixtyfour/internal/logging"
	"github.com/novemberborn/sixtyfour/pkg/base64"
	"github.com/novemberborn/sixtyfour/pkg/base64json"
)

const version = "0.1.0"

var (
	paddingFlag = cli.BoolFlag{
		Name:  "padding, p",
		Usage: "keep the trailing = padding",
	}
	rawFlag = cli.BoolFlag{
		Name:  "raw",
		Usage: "write the decoded bytes as they are",
	}
	strictFlag = cli.BoolFlag{
		Name:  "strict",
		Usage: "fail on invalid UTF-8 instead of replacing it",
	}
	indentFlag = cli.StringFlag{
		Name:  "indent, i",
		Usage: "indent JSON with `N` spaces, or with the given string",
	}
	keysFlag = cli.StringFlag{
		Name:  "keys, k",
		Usage: "comma separated `KEYS` of the object members to keep",
	}
	yamlFlag = cli.BoolFlag{
		Name:  "yaml",
		Usage: "read the value as a YAML document instead of JSON",
	}
)

// runner holds what the commands share.
type runner struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg *config.Config
	log *gol.Logger
}

func newApp(in io.Reader, out, errOut io.Writer) *cli.App {
	return newRunner(in, out, errOut).app()
}

func newRunner(in io.Reader, out, errOut io.Writer) *runner {
	return &runner{in: in, out: out, errOut: errOut}
}

// execute runs the command line and returns the exit code.
func execute(args []string, in io.Reader, out, errOut io.Writer) int {
	r := newRunner(in, out, errOut)
	if err := r.app().Run(args); err != nil {
		r.fail(err)
		return 1
	}
	return 0
}

// fail reports err through the logger, or straight to errOut when the
// logger could not be set up.
func (r *runner) fail(err error) {
	if r.log == nil {
		fmt.Fprintf(r.errOut, "sixtyfour: %v\n", err)
		return
	}
	r.log.Errorf("%v", err)
}

func (r *runner) app() *cli.App {
	app := cli.NewApp()
	app.Name = "sixtyfour"
	app.Usage = "convert text, binary data and JSON to and from base64 and base64url"
	app.Version = version
	app.Writer = r.out
	app.ErrWriter = r.errOut
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load configuration from `FILE`",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "log messages of `LEVEL` (debug, info, warning, error) and above",
		},
	}
	app.Before = r.before
	app.Commands = []cli.Command{
		{
			Name:      "encode",
			Usage:     "encode text or data as base64",
			ArgsUsage: "[TEXT]",
			Action:    r.action(r.encode),
		},
		{
			Name:      "decode",
			Usage:     "decode base64, padded or not",
			ArgsUsage: "[BASE64]",
			Flags:     []cli.Flag{rawFlag, strictFlag},
			Action:    r.action(r.decode),
		},
		{
			Name:      "urlify",
			Usage:     "map base64 to the base64url alphabet",
			ArgsUsage: "[BASE64]",
			Flags:     []cli.Flag{paddingFlag},
			Action:    r.action(r.urlify),
		},
		{
			Name:      "deurlify",
			Usage:     "map base64url to the base64 alphabet",
			ArgsUsage: "[BASE64URL]",
			Action:    r.action(r.deurlify),
		},
		{
			Name:      "urlencode",
			Usage:     "encode text or data as base64url",
			ArgsUsage: "[TEXT]",
			Flags:     []cli.Flag{paddingFlag},
			Action:    r.action(r.urlencode),
		},
		{
			Name:      "urldecode",
			Usage:     "decode base64url, padded or not",
			ArgsUsage: "[BASE64URL]",
			Flags:     []cli.Flag{rawFlag, strictFlag},
			Action:    r.action(r.urldecode),
		},
		{
			Name:      "encode-json",
			Usage:     "encode a JSON (or YAML) value as base64 JSON text",
			ArgsUsage: "[JSON]",
			Flags:     []cli.Flag{indentFlag, keysFlag, yamlFlag},
			Action:    r.action(r.encodeJSON),
		},
		{
			Name:      "decode-json",
			Usage:     "decode base64 JSON text",
			ArgsUsage: "[BASE64]",
			Flags:     []cli.Flag{indentFlag},
			Action:    r.action(r.decodeJSON),
		},
		{
			Name:      "urlencode-json",
			Usage:     "encode a JSON (or YAML) value as base64url JSON text",
			ArgsUsage: "[JSON]",
			Flags:     []cli.Flag{indentFlag, keysFlag, yamlFlag, paddingFlag},
			Action:    r.action(r.urlencodeJSON),
		},
		{
			Name:      "urldecode-json",
			Usage:     "decode base64url JSON text",
			ArgsUsage: "[BASE64URL]",
			Flags:     []cli.Flag{indentFlag},
			Action:    r.action(r.urldecodeJSON),
		},
	}
	return app
}

func (r *runner) before(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "config")
	}
	r.cfg = cfg

	level := cfg.Log.Level
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}
	r.log, err = logging.New(r.errOut, level)
	if err != nil {
		return errors.Wrap(err, "logging")
	}

	if cfg.File != "" {
		r.log.Debugf("using config file %s", cfg.File)
	}
	return nil
}

func (r *runner) action(fn func(c *cli.Context) error) func(c *cli.Context) error {
	return func(c *cli.Context) error {
		if err := fn(c); err != nil {
			return errors.Wrap(err, c.Command.Name)
		}
		return nil
	}
}

func (r *runner) padding(c *cli.Context) bool {
	if c.IsSet("padding") {
		return c.Bool("padding")
	}
	return r.cfg.Padding
}

func (r *runner) indent(c *cli.Context) string {
	if c.IsSet("indent") {
		return config.ParseIndent(c.String("indent"))
	}
	return config.ParseIndent(r.cfg.JSON.Indent)
}

func (r *runner) jsonOptions(c *cli.Context) *base64json.Options {
	opts := r.cfg.JSONOptions()
	opts.Indent = r.indent(c)
	opts.Padding = r.padding(c)
	if c.IsSet("keys") {
		opts.Keys = splitKeys(c.String("keys"))
	}
	return opts
}

func splitKeys(keys string) []string {
	out := []string{}
	for _, key := range strings.Split(keys, ",") {
		if key = strings.TrimSpace(key); key != "" {
			out = append(out, key)
		}
	}
	return out
}

func (r *runner) println(s string) error {
	_, err := fmt.Fprintln(r.out, s)
	return err
}

func (r *runner) encode(c *cli.Context) error {
	data, err := input.Read(c.Args(), r.in)
	if err != nil {
		return err
	}
	r.log.Debugf("encoding %d bytes", len(data))
	return r.println(base64.Encode(data))
}

func (r *runner) urlencode(c *cli.Context) error {
	data, err := input.Read(c.Args(), r.in)
	if err != nil {
		return err
	}
	padding := r.padding(c)
	r.log.Debugf("encoding %d bytes, padding %v", len(data), padding)
	return r.println(base64.URLEncode(data, padding))
}

func (r *runner) decode(c *cli.Context) error {
	text, err := input.ReadText(c.Args(), r.in)
	if err != nil {
		return err
	}
	return r.writeDecoded(c, text)
}

func (r *runner) urldecode(c *cli.Context) error {
	text, err := input.ReadText(c.Args(), r.in)
	if err != nil {
		return err
	}
	return r.writeDecoded(c, base64.Deurlify(text))
}

// writeDecoded decodes standard base64 text according to the --raw and
// --strict flags.
func (r *runner) writeDecoded(c *cli.Context, text string) error {
	if c.Bool("raw") {
		data, err := base64.DecodeAsBuffer(text)
		if err != nil {
			return err
		}
		r.log.Debugf("decoded %d bytes", len(data))
		_, err = r.out.Write(data)
		return err
	}

	decode := base64.DecodeAsUTF8
	if c.Bool("strict") {
		decode = base64.DecodeAsUTF8Strict
	}
	decoded, err := decode(text)
	if err != nil {
		return err
	}
	return r.println(decoded)
}

func (r *runner) urlify(c *cli.Context) error {
	text, err := input.ReadText(c.Args(), r.in)
	if err != nil {
		return err
	}
	return r.println(base64.Urlify(text, r.padding(c)))
}

func (r *runner) deurlify(c *cli.Context) error {
	text, err := input.ReadText(c.Args(), r.in)
	if err != nil {
		return err
	}
	return r.println(base64.Deurlify(text))
}

func (r *runner) value(c *cli.Context) (any, error) {
	data, err := input.Read(c.Args(), r.in)
	if err != nil {
		return nil, err
	}
	if c.Bool("yaml") {
		return input.YAML(data)
	}
	return input.JSON(data)
}

func (r *runner) encodeJSON(c *cli.Context) error {
	value, err := r.value(c)
	if err != nil {
		return err
	}
	encoded, err := base64json.Encode(value, r.jsonOptions(c))
	if err != nil {
		return err
	}
	return r.println(encoded)
}

func (r *runner) urlencodeJSON(c *cli.Context) error {
	value, err := r.value(c)
	if err != nil {
		return err
	}
	opts := r.jsonOptions(c)
	r.log.Debugf("encoding JSON with keys %v, padding %v", opts.Keys, opts.Padding)
	encoded, err := base64json.URLEncode(value, opts)
	if err != nil {
		return err
	}
	return r.println(encoded)
}

func (r *runner) decodeJSON(c *cli.Context) error {
	text, err := input.ReadText(c.Args(), r.in)
	if err != nil {
		return err
	}
	return r.writeJSON(c, func(raw *json.RawMessage) error {
		return base64json.Decode(text, raw)
	})
}

func (r *runner) urldecodeJSON(c *cli.Context) error {
	text, err := input.ReadText(c.Args(), r.in)
	if err != nil {
		return err
	}
	return r.writeJSON(c, func(raw *json.RawMessage) error {
		return base64json.URLDecode(text, raw)
	})
}

// writeJSON prints the decoded JSON text, keeping its member order.
func (r *runner) writeJSON(c *cli.Context, decode func(raw *json.RawMessage) error) error {
	var raw json.RawMessage
	if err := decode(&raw); err != nil {
		return err
	}

	data, err := base64json.Marshal(raw, &base64json.Options{Indent: r.indent(c)})
	if err != nil {
		return err
	}
	return r.println(string(data))
}
