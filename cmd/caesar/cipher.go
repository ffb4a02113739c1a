package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/text/transform"

	"github.com/paraglidehq/caesar"
)

// tryAgain is shown for an offset that is not an integer.
const tryAgain = "No! Try again!"

func offsetFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "offset",
		Aliases: []string{"k"},
		Usage:   "shift `N` (any integer)",
	}
}

func cipherCommand(mode caesar.Mode, usage string) *cli.Command {
	return &cli.Command{
		Name:      string(mode),
		Usage:     usage,
		ArgsUsage: "[TEXT...]",
		Flags: []cli.Flag{
			offsetFlag(),
			&cli.BoolFlag{
				Name:  "stream",
				Usage: "treat standard input as one text instead of a sequence of lines",
			},
		},
		Action: cipherAction,
	}
}

// offsetText returns the unparsed offset: the flag if given, else the config value.
func offsetText(c *cli.Context, cfg *Config) string {
	if c.IsSet("offset") {
		return c.String("offset")
	}
	return cfg.Offset
}

// commandCipher returns the cipher for --offset, or caesar.DefaultCipher
// when the flag is absent and setup installed one from the config.
func commandCipher(c *cli.Context, cfg *Config) (*caesar.Cipher, error) {
	if !c.IsSet("offset") && caesar.DefaultCipher != nil {
		return caesar.DefaultCipher, nil
	}
	offset, err := caesar.ParseOffset(offsetText(c, cfg))
	if err != nil {
		return nil, err
	}
	return caesar.NewCipher(offset.Int()), nil
}

func cipherAction(c *cli.Context) error {
	e := envFrom(c)

	mode, err := caesar.ParseMode(c.Command.Name)
	if err != nil {
		return err
	}
	cipher, err := commandCipher(c, e.cfg)
	if err != nil {
		e.log.Debug().Err(err).Str("mode", string(mode)).Msg("offset rejected")
		return cli.Exit(tryAgain, 1)
	}
	log := e.log.With().Str("mode", string(mode)).Int("offset", cipher.Offset().Int()).Logger()

	switch {
	case c.NArg() > 0:
		out, err := cipher.Apply(mode, strings.Join(c.Args().Slice(), " "))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.App.Writer, out)
		return err

	case c.Bool("stream"):
		r := transform.NewReader(c.App.Reader, cipher.Transformer(mode))
		n, err := io.Copy(c.App.Writer, r)
		if err != nil {
			return fmt.Errorf("%s: %w", mode, err)
		}
		log.Debug().Int64("bytes", n).Msg("stream done")
		return nil

	default:
		n, err := applyLines(c.App.Reader, c.App.Writer, cipher, mode)
		if err != nil {
			return fmt.Errorf("%s: %w", mode, err)
		}
		log.Debug().Int("lines", n).Msg("done")
		return nil
	}
}

// readLine returns the next line of br without its line ending. A final line
// without a newline is returned as is; io.EOF means no input was left.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// applyLines transforms r one line at a time, keeping the line breaks.
// Lines already transformed are written out even when reading fails.
func applyLines(r io.Reader, w io.Writer, cipher *caesar.Cipher, mode caesar.Mode) (n int, err error) {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	defer func() {
		if ferr := bw.Flush(); err == nil {
			err = ferr
		}
	}()

	for {
		line, rerr := readLine(br)
		if rerr == io.EOF {
			return n, nil
		}
		if rerr != nil {
			return n, rerr
		}
		out, aerr := cipher.Apply(mode, line)
		if aerr != nil {
			return n, aerr
		}
		bw.WriteString(out)
		bw.WriteByte('\n')
		n++
	}
}
