// Package config collects runtime settings from defaults, a .env file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ogier/pflag"
)

// ErrHelp is returned by Load after printing usage for -h or --help
var ErrHelp = pflag.ErrHelp

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "ARENA_"

// Frontends
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
)

// Sound settings
const (
	SoundAuto = "auto" // on for waves, off for pursuit
	SoundOn   = "on"
	SoundOff  = "off"
)

// Config holds runtime settings
type Config struct {
	// Mode selects the variant: "waves" or "pursuit"
	Mode string

	// Frontend selects the render surface: "window" or "terminal"
	Frontend string

	// WindowWidth and WindowHeight size the desktop window in pixels
	WindowWidth  int
	WindowHeight int

	// ArenaWidth and ArenaHeight override the variant's arena; 0 keeps it
	ArenaWidth  float64
	ArenaHeight float64

	// Seed for the round's random source; 0 picks one from the clock
	Seed int64

	Sound  string
	Volume float64

	LogLevel string
	// LogFile receives log output; empty means stderr for the window and
	// nowhere for the terminal
	LogFile string

	// TPS is the number of simulation frames per second
	TPS int

	// ProfileDir enables CPU profiles on frame rate drops when set
	ProfileDir string
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Mode:         "waves",
		Frontend:     FrontendWindow,
		WindowWidth:  1280,
		WindowHeight: 720,
		Sound:        SoundAuto,
		Volume:       1,
		LogLevel:     "info",
		TPS:          60,
	}
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	switch c.Mode {
	case "waves", "pursuit":
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	switch c.Frontend {
	case FrontendWindow, FrontendTerminal:
	default:
		return fmt.Errorf("unknown frontend %q", c.Frontend)
	}
	switch c.Sound {
	case SoundAuto, SoundOn, SoundOff:
	default:
		return fmt.Errorf("unknown sound setting %q", c.Sound)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.WindowWidth, c.WindowHeight)
	}
	if c.ArenaWidth < 0 || c.ArenaHeight < 0 {
		return fmt.Errorf("arena size %gx%g must not be negative", c.ArenaWidth, c.ArenaHeight)
	}
	if (c.ArenaWidth == 0) != (c.ArenaHeight == 0) {
		return errors.New("arena width and height must be overridden together")
	}
	if c.TPS <= 0 {
		return fmt.Errorf("tps %d must be positive", c.TPS)
	}
	if c.Volume < 0 {
		return fmt.Errorf("volume %g must not be negative", c.Volume)
	}
	return nil
}

// SoundEnabled resolves the sound setting for the selected mode
func (c Config) SoundEnabled() bool {
	switch c.Sound {
	case SoundOn:
		return true
	case SoundOff:
		return false
	default:
		return c.Mode == "waves"
	}
}

// Load reads .env from the working directory, the process environment and
// args (without the program name)
func Load(args []string) (Config, error) {
	return LoadFrom(args, ".env", os.LookupEnv)
}

// LookupFunc finds an environment variable
type LookupFunc func(key string) (string, bool)

// LoadFrom is Load with an explicit .env path and environment. A missing
// .env file is skipped.
func LoadFrom(args []string, envFile string, lookup LookupFunc) (Config, error) {
	dotenv := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read %s: %w", envFile, err)
		}
	}
	env := func(key string) (string, bool) {
		if v, ok := lookup(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	cfg := DefaultConfig()
	if err := applyEnv(&cfg, env); err != nil {
		return Config{}, err
	}

	// Flags default to whatever the environment produced, so a flag only
	// wins when it is given
	flags := pflag.NewFlagSet("arena", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}
	flags.StringVarP(&cfg.Mode, "mode", "m", cfg.Mode, "variant to play: waves or pursuit")
	flags.StringVar(&cfg.Frontend, "frontend", cfg.Frontend, "render surface: window or terminal")
	flags.IntVar(&cfg.WindowWidth, "width", cfg.WindowWidth, "window width in pixels")
	flags.IntVar(&cfg.WindowHeight, "height", cfg.WindowHeight, "window height in pixels")
	flags.Float64Var(&cfg.ArenaWidth, "arena-width", cfg.ArenaWidth, "arena width override, 0 for the variant default")
	flags.Float64Var(&cfg.ArenaHeight, "arena-height", cfg.ArenaHeight, "arena height override, 0 for the variant default")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 for time based")
	flags.StringVar(&cfg.Sound, "sound", cfg.Sound, "sound: auto, on or off")
	flags.Float64Var(&cfg.Volume, "volume", cfg.Volume, "master volume, 1 is unchanged")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file")
	flags.IntVar(&cfg.TPS, "tps", cfg.TPS, "simulation frames per second")
	flags.StringVar(&cfg.ProfileDir, "profile-dir", cfg.ProfileDir, "capture CPU profiles on frame rate drops into this directory")
	if err := flags.Parse(joinLongValues(flags, args)); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			flags.SetOutput(os.Stderr)
			flags.PrintDefaults()
			return Config{}, ErrHelp
		}
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	if flags.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", flags.Args())
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// joinLongValues rewrites "--name value" as "--name=value" for every known
// non-boolean flag. pflag only reads a long flag's value after '='.
func joinLongValues(flags *pflag.FlagSet, args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		name, ok := strings.CutPrefix(arg, "--")
		if !ok || name == "" || strings.Contains(name, "=") || i+1 >= len(args) {
			out = append(out, arg)
			continue
		}
		f := flags.Lookup(name)
		if f == nil {
			out = append(out, arg)
			continue
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			out = append(out, arg)
			continue
		}
		out = append(out, arg+"="+args[i+1])
		i++
	}
	return out
}

func applyEnv(cfg *Config, env LookupFunc) error {
	cfg.Mode = GetEnv(env, "MODE", cfg.Mode)
	cfg.Frontend = GetEnv(env, "FRONTEND", cfg.Frontend)
	cfg.Sound = GetEnv(env, "SOUND", cfg.Sound)
	cfg.LogLevel = GetEnv(env, "LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = GetEnv(env, "LOG_FILE", cfg.LogFile)
	cfg.ProfileDir = GetEnv(env, "PROFILE_DIR", cfg.ProfileDir)

	ints := []struct {
		key string
		dst *int
	}{
		{"WIDTH", &cfg.WindowWidth},
		{"HEIGHT", &cfg.WindowHeight},
		{"TPS", &cfg.TPS},
	}
	for _, i := range ints {
		v, ok := env(EnvPrefix + i.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, i.key, err)
		}
		*i.dst = n
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"ARENA_WIDTH", &cfg.ArenaWidth},
		{"ARENA_HEIGHT", &cfg.ArenaHeight},
		{"VOLUME", &cfg.Volume},
	}
	for _, f := range floats {
		v, ok := env(EnvPrefix + f.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, f.key, err)
		}
		*f.dst = n
	}

	if v, ok := env(EnvPrefix + "SEED"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", EnvPrefix, err)
		}
		cfg.Seed = n
	}
	return nil
}

// GetEnv returns the prefixed variable, or fallback when it is unset or empty
func GetEnv(env LookupFunc, key, fallback string) string {
	if v, ok := env(EnvPrefix + key); ok && v != "" {
		return v
	}
	return fallback
}
