package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/zephyrtronium/scicalc"
)

// config is the contents of the config file.
type config struct {
	// Mode is the initial angle mode, "radians" or "degrees".
	Mode string `toml:"mode"`
	// Prec is the precision of calculations in bits.
	Prec uint `toml:"prec"`
	// Digits is the number of significant digits to print.
	Digits int `toml:"digits"`
	// History is the interactive history file. Empty disables history.
	History string `toml:"history"`
}

func defaultConfig() config {
	c := config{
		Mode:   scicalc.Radians.String(),
		Prec:   scicalc.DefaultPrec,
		Digits: scicalc.DefaultDigits,
	}
	if home, err := os.UserHomeDir(); err == nil {
		c.History = filepath.Join(home, ".scicalc_history")
	}
	return c
}

// configPath is the default location of the config file.
func configPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "scicalc", "scicalc.toml")
}

// loadConfig reads the config file at path over the defaults. A missing file
// is an error only if must is true.
func loadConfig(path string, must bool) (config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !must {
			logrus.Debugf("no config file at %s", path)
			return c, nil
		}
		return c, errors.Wrapf(err, "reading config")
	}
	md, err := toml.Decode(string(b), &c)
	if err != nil {
		return c, errors.Wrapf(err, "decoding config %s", path)
	}
	for _, k := range md.Undecoded() {
		logrus.Warnf("unknown key %q in %s", k.String(), path)
	}
	if err := c.check(); err != nil {
		return c, errors.Wrapf(err, "config %s", path)
	}
	logrus.Debugf("loaded config from %s", path)
	return c, nil
}

func (c *config) check() error {
	if _, ok := scicalc.ParseMode(c.Mode); !ok {
		return errors.Errorf("unknown angle mode %q", c.Mode)
	}
	if c.Prec == 0 {
		return errors.New("precision must be positive")
	}
	if c.Digits <= 0 {
		return errors.Errorf("digits must be positive, not %d", c.Digits)
	}
	return nil
}

// merge overrides c with flags given explicitly on the command line.
func (c *config) merge(fs *pflag.FlagSet, o *options) error {
	if fs.Changed("mode") {
		c.Mode = o.mode
	}
	if fs.Changed("degrees") && o.degrees {
		c.Mode = scicalc.Degrees.String()
	}
	if fs.Changed("prec") {
		c.Prec = o.prec
	}
	if fs.Changed("digits") {
		c.Digits = o.digits
	}
	return c.check()
}
