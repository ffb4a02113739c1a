package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/paraglidehq/caesar"
)

func formCommand() *cli.Command {
	return &cli.Command{
		Name:  "form",
		Usage: "interactive form with plain text, offset and cipher text fields",
		Flags: []cli.Flag{offsetFlag()},
		Action: func(c *cli.Context) error {
			e := envFrom(c)
			f := &form{offset: offsetText(c, e.cfg)}
			return runForm(c.App.Reader, c.App.Writer, e.log, f)
		},
	}
}

// form holds the three text fields of the cipher window. Encode reads the
// plain text field and fills the cipher text field; Decode does the reverse.
// Offset stays as typed until a button is pressed.
type form struct {
	plain  string
	offset string
	cipher string
}

func (f *form) encode() error {
	o, err := caesar.ParseOffset(f.offset)
	if err != nil {
		return err
	}
	f.cipher = caesar.Encode(f.plain, o.Int())
	return nil
}

func (f *form) decode() error {
	o, err := caesar.ParseOffset(f.offset)
	if err != nil {
		return err
	}
	f.plain = caesar.Decode(f.cipher, o.Int())
	return nil
}

const formHelp = `Commands:
  plain TEXT    set the Plain Text field
  offset N      set the Offset field
  cipher TEXT   set the Cipher Text field
  encode        Plain Text -> Cipher Text
  decode        Cipher Text -> Plain Text
  show          print all fields
  help          print this help
  quit          leave the form`

func (f *form) show(w io.Writer) {
	fmt.Fprintf(w, "Plain Text:  %s\n", f.plain)
	fmt.Fprintf(w, "Offset:      %s\n", f.offset)
	fmt.Fprintf(w, "Cipher Text: %s\n", f.cipher)
}

// runForm reads commands from r until quit or end of input.
func runForm(r io.Reader, w io.Writer, log zerolog.Logger, f *form) error {
	fmt.Fprintln(w, "Caesar Cipher")
	fmt.Fprintln(w, formHelp)

	br := bufio.NewReader(r)
	for {
		fmt.Fprint(w, "> ")
		line, err := readLine(br)
		if err != nil {
			fmt.Fprintln(w)
			if err == io.EOF {
				return nil
			}
			return err
		}
		cmd, arg, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")
		cmd = strings.ToLower(strings.TrimSpace(cmd))

		switch cmd {
		case "":
		case "plain":
			f.plain = arg
		case "offset":
			f.offset = arg
		case "cipher":
			f.cipher = arg
		case "encode":
			if err := f.encode(); err != nil {
				log.Debug().Err(err).Msg("encode rejected")
				fmt.Fprintln(w, tryAgain)
				continue
			}
			fmt.Fprintf(w, "Cipher Text: %s\n", f.cipher)
		case "decode":
			if err := f.decode(); err != nil {
				log.Debug().Err(err).Msg("decode rejected")
				fmt.Fprintln(w, tryAgain)
				continue
			}
			fmt.Fprintf(w, "Plain Text: %s\n", f.plain)
		case "show":
			f.show(w)
		case "help", "?":
			fmt.Fprintln(w, formHelp)
		case "quit", "exit", "q":
			return nil
		default:
			fmt.Fprintf(w, "unknown command %q, type help\n", cmd)
		}
	}
}
