package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

var (
	// Set via LEXDFA_DEBUG in the environment
	Debug bool
	// Derived from LEXDFA_DEBUG: 1 or true is DEBUG, 2 is TRACE
	LogLevel slog.Level
	// Set via LEXDFA_MAX_STATES in the environment
	MaxStates int
	// Set via LEXDFA_LEXICON in the environment
	Lexicon string
)

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"LEXDFA_DEBUG":      {"LEXDFA_DEBUG", Debug, "Show additional debug information (e.g. LEXDFA_DEBUG=1, or 2 for trace)"},
		"LEXDFA_MAX_STATES": {"LEXDFA_MAX_STATES", MaxStates, "Maximum number of DFA states built per lexicon (default unlimited)"},
		"LEXDFA_LEXICON":    {"LEXDFA_LEXICON", Lexicon, "Lexicon used when --lexicon is not given (default \"json\")"},
	}
}

func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// clean quotes and spaces from the value
func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' ")
}

func init() {
	LoadConfig()
}

func LoadConfig() {
	Debug = false
	LogLevel = slog.LevelInfo
	if debug := clean("LEXDFA_DEBUG"); debug != "" {
		if d, err := strconv.ParseBool(debug); err == nil {
			Debug = d
		} else {
			Debug = true
		}
		if Debug {
			LogLevel = slog.LevelDebug
		}
		// each step above 1 lowers the level by 4, so 2 is TRACE (-8)
		if n, err := strconv.Atoi(debug); err == nil && n > 1 {
			LogLevel = slog.Level(n * -4)
		}
	}

	MaxStates = 0
	if max := clean("LEXDFA_MAX_STATES"); max != "" {
		n, err := strconv.Atoi(max)
		if err != nil || n < 0 {
			slog.Error("invalid setting, ignoring", "LEXDFA_MAX_STATES", max, "error", err)
		} else {
			MaxStates = n
		}
	}

	Lexicon = "json"
	if name := clean("LEXDFA_LEXICON"); name != "" {
		Lexicon = name
	}
}
