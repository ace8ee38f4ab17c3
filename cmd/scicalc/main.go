// Command scicalc is a scientific calculator. Given expressions as arguments
// or in a file, it evaluates each in turn and prints the results; otherwise
// it starts an interactive session.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zephyrtronium/scicalc"
)

type options struct {
	mode     string
	degrees  bool
	prec     uint
	digits   int
	echo     bool
	file     string
	config   string
	logLevel string
}

func addFlags(fs *pflag.FlagSet, o *options) {
	fs.StringVarP(&o.mode, "mode", "m", "radians", "angle mode for trigonometric functions (radians or degrees)")
	fs.BoolVarP(&o.degrees, "degrees", "d", false, "shorthand for --mode=degrees")
	fs.UintVarP(&o.prec, "prec", "p", scicalc.DefaultPrec, "precision of calculations in bits")
	fs.IntVar(&o.digits, "digits", scicalc.DefaultDigits, "significant digits to print")
	fs.BoolVar(&o.echo, "echo", false, "print each expression before its result")
	fs.StringVarP(&o.file, "file", "f", "", "read expressions from a file, one per line (- for stdin)")
	fs.StringVar(&o.config, "config", "", "config file (default "+configPath()+")")
	fs.StringVar(&o.logLevel, "log-level", "warn", "log messages at or above this level (debug, info, warn, error)")
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "scicalc [expression...]",
		Short: "evaluate calculator expressions",
		Long: "scicalc evaluates arithmetic expressions with trigonometric, logarithmic, and\n" +
			"rounding functions. Each argument is one expression. With no arguments and\n" +
			"no --file, it starts an interactive session.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logrus.ParseLevel(o.logLevel)
			if err != nil {
				return errors.Wrapf(err, "bad --log-level")
			}
			logrus.SetLevel(lvl)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &o, args)
		},
	}
	addFlags(cmd.Flags(), &o)
	return cmd
}

func run(cmd *cobra.Command, o *options, args []string) error {
	path, must := o.config, true
	if path == "" {
		path, must = configPath(), false
	}
	cfg, err := loadConfig(path, must)
	if err != nil {
		return err
	}
	if err := cfg.merge(cmd.Flags(), o); err != nil {
		return err
	}
	mode, _ := scicalc.ParseMode(cfg.Mode)
	logrus.WithFields(logrus.Fields{"mode": mode, "prec": cfg.Prec, "digits": cfg.Digits}).Debug("starting session")
	a := &app{
		sess:   scicalc.NewSession(scicalc.Angle(mode), scicalc.Prec(cfg.Prec)),
		out:    cmd.OutOrStdout(),
		digits: cfg.Digits,
		echo:   o.echo,
	}

	if o.file == "" && len(args) == 0 {
		return runREPL(a, cfg.History)
	}
	if o.file != "" {
		if err := a.evalFile(o.file, cmd.InOrStdin()); err != nil {
			return err
		}
	}
	for _, arg := range args {
		a.eval(arg)
	}
	if a.failed {
		return errEvalFailed
	}
	return nil
}

var errEvalFailed = errors.New("some expressions could not be evaluated")

// evalFile evaluates each non-blank line of the named file, or of stdin if
// name is "-".
func (a *app) evalFile(name string, stdin io.Reader) error {
	var in io.Reader = stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return errors.Wrapf(err, "opening input")
		}
		defer f.Close()
		in = f
	}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		a.eval(text)
	}
	return errors.Wrapf(sc.Err(), "reading %s", name)
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if err != errEvalFailed {
			fmt.Fprintln(os.Stderr, "scicalc:", err)
		}
		os.Exit(1)
	}
}
