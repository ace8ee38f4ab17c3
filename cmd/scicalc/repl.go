package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"github.com/zephyrtronium/scicalc"
)

// app prints results of evaluations and meta commands.
type app struct {
	sess   *scicalc.Session
	out    io.Writer
	digits int
	echo   bool
	// failed is set once any evaluation fails.
	failed bool
}

// eval evaluates text in the session and prints the result.
func (a *app) eval(text string) {
	r := a.sess.Eval(text)
	if a.echo {
		fmt.Fprintf(a.out, "%s = ", text)
	}
	if !r.OK() {
		a.failed = true
		logrus.WithField("kind", r.Kind()).Debugf("evaluating %q: %v", text, r.Err)
		fmt.Fprintf(a.out, "error: %v\n", r)
		return
	}
	fmt.Fprintln(a.out, scicalc.Format(r.Value, a.digits))
}

// line handles one line of interactive input and reports whether the user
// asked to quit.
func (a *app) line(text string) (quit bool) {
	text = strings.TrimSpace(text)
	switch {
	case text == "":
		return false
	case strings.HasPrefix(text, ":"):
		return a.meta(text[1:])
	default:
		a.eval(text)
		return false
	}
}

const helpText = `Enter an expression to evaluate it, for example 2×(3+4)^2 or sin(30).
Ans is the last result. Commands:
  :deg, :rad        switch to degrees or radians
  :mode [name]      show or set the angle mode
  :digits [n]       show or set the number of significant digits
  :ans              show the last result
  :history          list previous results
  :names            list constants and functions
  :clear            forget the last result and history
  :help             show this message
  :quit             leave`

func (a *app) meta(text string) (quit bool) {
	args, err := shlex.Split(text)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return false
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, helpText)
		return false
	}
	switch cmd, args := args[0], args[1:]; cmd {
	case "q", "quit", "exit":
		return true
	case "h", "help", "?":
		fmt.Fprintln(a.out, helpText)
	case "deg", "degrees":
		a.sess.SetMode(scicalc.Degrees)
		fmt.Fprintln(a.out, "mode:", a.sess.Mode())
	case "rad", "radians":
		a.sess.SetMode(scicalc.Radians)
		fmt.Fprintln(a.out, "mode:", a.sess.Mode())
	case "mode":
		if len(args) > 0 {
			m, ok := scicalc.ParseMode(args[0])
			if !ok {
				fmt.Fprintf(a.out, "error: unknown angle mode %q\n", args[0])
				return false
			}
			a.sess.SetMode(m)
		}
		fmt.Fprintln(a.out, "mode:", a.sess.Mode())
	case "digits":
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				fmt.Fprintf(a.out, "error: digits must be a positive integer, not %q\n", args[0])
				return false
			}
			a.digits = n
		}
		fmt.Fprintln(a.out, "digits:", a.digits)
	case "ans":
		v := a.sess.Ans()
		if v == nil {
			fmt.Fprintln(a.out, "Ans has no value yet")
			return false
		}
		fmt.Fprintln(a.out, scicalc.Format(v, a.digits))
	case "history":
		for i, e := range a.sess.History() {
			fmt.Fprintf(a.out, "%d: %s = %s\n", i+1, e.Text, scicalc.Format(e.Value, a.digits))
		}
	case "names":
		consts, funcs := scicalc.NewEnv(scicalc.Angle(a.sess.Mode())).Names()
		fmt.Fprintln(a.out, "constants:", strings.Join(consts, " "))
		fmt.Fprintln(a.out, "functions:", strings.Join(funcs, " "))
	case "clear":
		a.sess.Reset()
	default:
		fmt.Fprintf(a.out, "error: unknown command :%s (try :help)\n", cmd)
	}
	return false
}

// complete suggests constant, function, and command names ending the line.
func complete(line string) []string {
	i := strings.LastIndexFunc(line, func(r rune) bool {
		return !(r == '_' || r == ':' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
	})
	head, word := line[:i+1], line[i+1:]
	if word == "" {
		return nil
	}
	consts, funcs := scicalc.NewEnv().Names()
	cands := append(consts, funcs...)
	if head == "" {
		cands = append(cands, ":deg", ":rad", ":mode", ":digits", ":ans", ":history", ":names", ":clear", ":help", ":quit")
	}
	var r []string
	for _, c := range cands {
		if strings.HasPrefix(c, word) {
			r = append(r, head+c)
		}
	}
	sort.Strings(r)
	return r
}

// runREPL reads lines from the terminal until the user quits or input ends.
// hist names the history file; empty disables it.
func runREPL(a *app, hist string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(complete)

	if hist != "" {
		if f, err := os.Open(hist); err == nil {
			if _, err := ln.ReadHistory(f); err != nil {
				logrus.Warnf("reading history %s: %v", hist, err)
			}
			f.Close()
		}
	}

	for {
		text, err := ln.Prompt("> ")
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			if err != io.EOF {
				logrus.Errorf("reading input: %v", err)
			}
			fmt.Fprintln(a.out)
			break
		}
		if strings.TrimSpace(text) != "" {
			ln.AppendHistory(text)
		}
		if a.line(text) {
			break
		}
	}

	if hist != "" {
		f, err := os.Create(hist)
		if err != nil {
			logrus.Warnf("saving history: %v", err)
			return nil
		}
		defer f.Close()
		if _, err := ln.WriteHistory(f); err != nil {
			logrus.Warnf("saving history %s: %v", hist, err)
		}
	}
	return nil
}
