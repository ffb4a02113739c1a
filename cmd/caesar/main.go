// Command caesar encodes and decodes text with the caesar cipher.
//
// Usage:
//
//	caesar [--config FILE] [--log-level LEVEL] encode [--offset N] [--stream] [TEXT...]
//	caesar [--config FILE] [--log-level LEVEL] decode [--offset N] [--stream] [TEXT...]
//	caesar [--config FILE] [--log-level LEVEL] form [--offset N]
//
// With TEXT arguments, the arguments are joined with single spaces and the
// result is printed on one line. Without them, standard input is processed
// line by line; with --stream it is processed as a single text, so newlines
// become spaces like every other character outside the alphabet.
//
// The offset comes from --offset, then CAESAR_OFFSET, then the "offset" key
// of caesar.yaml (searched in ., $HOME/.caesar and /etc/caesar).
// An offset that is not an integer prints "No! Try again!" and exits with status 1.
//
// The form command opens an interactive form with Plain Text, Offset and
// Cipher Text fields; type "help" at the prompt for its commands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/paraglidehq/caesar"
)

var Version = "dev"

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			os.Exit(ec.ExitCode())
		}
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "caesar",
		Usage:   "substitution cipher over a 94-character alphabet",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				EnvVars: []string{"CAESAR_LOG_LEVEL"},
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			cipherCommand(caesar.ModeEncode, "shift text forward by the offset"),
			cipherCommand(caesar.ModeDecode, "shift text back by the offset"),
			formCommand(),
		},
		// main reports errors and picks the exit status.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}
