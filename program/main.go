package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strconv"

	tui "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/keilerkonzept/contextscale-tui-demo/contextscale"
)

type Config struct {
	// data
	DataPath string
	Tokens   int

	// input
	InputPath     string
	MaxInputBytes int
	Step          float64
	BigStep       float64
	Encoding      string
	TopWords      int

	// render
	ViewSplit     int
	Animate       bool
	AnimFPS       int
	LogScale      bool
	SearchEnabled bool

	StatsEnabled bool
	StatsWindow  int

	AltScreen bool
	LogFile   string
}

var config = Config{
	DataPath: "",
	Tokens:   contextscale.DefaultTokens,

	InputPath:     "",
	MaxInputBytes: 4 << 20,
	Step:          0.5,
	BigStep:       5,
	Encoding:      "",
	TopWords:      5,

	ViewSplit:     45,
	Animate:       true,
	AnimFPS:       30,
	LogScale:      false,
	SearchEnabled: true,

	StatsEnabled: false,
	StatsWindow:  256,

	AltScreen: true,
	LogFile:   "",
}

// Environment variables that override the built-in flag defaults.
const (
	envDataPath = "CONTEXTSCALE_DATA"
	envTokens   = "CONTEXTSCALE_TOKENS"
	envEncoding = "CONTEXTSCALE_ENCODING"
	envLogFile  = "CONTEXTSCALE_LOG_FILE"
)

func main() {
	log.SetOutput(os.Stderr)
	if err := loadEnvDefaults(".env"); err != nil {
		log.Fatal(err)
	}

	flag.StringVar(&config.DataPath, "data", config.DataPath, "Dataset file (.json, .yaml); empty uses the built-in dataset (env "+envDataPath+")")
	flag.IntVar(&config.Tokens, "tokens", config.Tokens, "Initial token budget (env "+envTokens+")")
	flag.StringVar(&config.InputPath, "in", config.InputPath, "Read estimator text from this file instead of stdin")
	flag.IntVar(&config.MaxInputBytes, "max-input-bytes", config.MaxInputBytes, "Read at most this many bytes of estimator text")
	flag.Float64Var(&config.Step, "step", config.Step, "Slider step for left/right (positions out of 100)")
	flag.Float64Var(&config.BigStep, "big-step", config.BigStep, "Slider step for shift+left/right")
	flag.StringVar(&config.Encoding, "encoding", config.Encoding, "tiktoken encoding for exact token counts, e.g. cl100k_base (empty = off; env "+envEncoding+")")
	flag.IntVar(&config.TopWords, "top-words", config.TopWords, "Show the N most frequent words of the estimator text (0 = off)")
	flag.IntVar(&config.ViewSplit, "view-split", config.ViewSplit, "Split the view at this % of the total screen width [20,80]")
	flag.BoolVar(&config.Animate, "animate", config.Animate, "Animate bar widths and comparison chips")
	flag.IntVar(&config.AnimFPS, "anim-fps", config.AnimFPS, "Animation refresh rate (frames per second)")
	flag.BoolVar(&config.LogScale, "log-scale", config.LogScale, "Start the scale curve with a logarithmic Y axis (default: linear)")
	flag.BoolVar(&config.SearchEnabled, "search", config.SearchEnabled, "Enable search/filtering in the model list")
	flag.BoolVar(&config.StatsEnabled, "stats", config.StatsEnabled, "Show render latency stats")
	flag.IntVar(&config.StatsWindow, "stats-window", config.StatsWindow, "Number of recent samples kept per metric")
	flag.BoolVar(&config.AltScreen, "alt-screen", config.AltScreen, "Use the terminal alternate screen buffer (recommended inside IDE terminals)")
	flag.StringVar(&config.LogFile, "log-file", config.LogFile, "Append logs to this file (env "+envLogFile+")")

	flag.Parse()

	if err := validateAndNormalizeConfig(); err != nil {
		log.Fatal(err)
	}

	if config.LogFile != "" {
		f, err := tui.LogToFile(config.LogFile, "contextscale")
		if err != nil {
			log.Fatal(err)
		}
		defer func() { _ = f.Close() }()
	} else {
		// The terminal belongs to the UI while it runs.
		log.SetOutput(io.Discard)
	}

	m := newModel()
	opts := []tui.ProgramOption{tui.WithInputTTY()}
	if config.AltScreen {
		opts = append(opts, tui.WithAltScreen())
	}
	final, err := tui.NewProgram(m, opts...).Run()
	log.SetOutput(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	if fm, ok := final.(*model); ok && fm.loadErr != nil {
		log.Fatal(fm.loadErr)
	}
}

// loadEnvDefaults reads an optional .env file and applies CONTEXTSCALE_* variables
// as flag defaults. Flags given on the command line still win.
func loadEnvDefaults(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if v, ok := os.LookupEnv(envDataPath); ok {
		config.DataPath = v
	}
	if v, ok := os.LookupEnv(envEncoding); ok {
		config.Encoding = v
	}
	if v, ok := os.LookupEnv(envLogFile); ok {
		config.LogFile = v
	}
	if v, ok := os.LookupEnv(envTokens); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", envTokens, err)
		}
		config.Tokens = n
	}
	return nil
}

func validateAndNormalizeConfig() error {
	if config.Tokens < 1 {
		return fmt.Errorf("-tokens must be >= 1")
	}
	if config.MaxInputBytes < 1 {
		return fmt.Errorf("-max-input-bytes must be >= 1")
	}
	if config.Step <= 0 || config.Step > 100 {
		return fmt.Errorf("-step must be in (0,100]")
	}
	if config.BigStep <= 0 || config.BigStep > 100 {
		return fmt.Errorf("-big-step must be in (0,100]")
	}
	if config.TopWords < 0 {
		return fmt.Errorf("-top-words must be >= 0")
	}
	if config.AnimFPS < 1 {
		return fmt.Errorf("-anim-fps must be >= 1")
	}
	if config.StatsWindow < 1 {
		return fmt.Errorf("-stats-window must be >= 1")
	}

	config.ViewSplit = max(20, config.ViewSplit)
	config.ViewSplit = min(80, config.ViewSplit)
	if config.StatsWindow < 16 {
		config.StatsWindow = 16
	}
	if config.Tokens < contextscale.MinTokens || config.Tokens > contextscale.MaxTokens {
		log.Printf("-tokens %d is outside [%d,%d], clamping", config.Tokens, contextscale.MinTokens, contextscale.MaxTokens)
		config.Tokens = contextscale.ClampTokens(config.Tokens)
	}
	return nil
}
