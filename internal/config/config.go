/*
Package config implements govox's ambient JSON configuration: prompt
text, color toggling, the `rand` sequence, and the -debug default,
loaded once at process start for the REPL and server entry points.

Grounded on go-mix/std/common.go's encoding/json usage for
json_encode/json_string_to_map — the strongest real signal in the
retrieved pack for data interchange. yaml appears in several go.mod
files but with zero direct imports anywhere in retrieved source, so JSON
is used here instead of inventing a grounding for an unused library.
*/
package config

import (
	"encoding/json"
	"io"
	"os"

	"github.com/govox-lang/govox/internal/session"
)

// Config is the on-disk shape of govox's optional config file.
type Config struct {
	Prompt       string    `json:"prompt"`
	Color        bool      `json:"color"`
	RandSequence []float64 `json:"rand_sequence,omitempty"`
	Debug        bool      `json:"debug"`
}

// Default returns the configuration used when no file is present: the
// classic "> " prompt, color on, the built-in deterministic rand
// sequence, debug off.
func Default() Config {
	return Config{
		Prompt:       "> ",
		Color:        true,
		RandSequence: append([]float64{}, session.DefaultRandSequence...),
		Debug:        false,
	}
}

// Load reads and JSON-decodes a config file at path, falling back to
// Default() if the file does not exist. A malformed file is a reported
// error, not a silent fallback, so a typo in a real config doesn't
// quietly run with defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, err
	}
	defer f.Close()
	return decode(f)
}

func decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := json.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
