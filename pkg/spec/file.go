package spec

import (
	"bytes"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/keyforge/pkg/errors"
)

// Parse decodes a TOML key spec. Groups and fields that are left out keep
// their defaults, so a file may hold only the values it changes:
//
//	[size]
//	units = { x = 2, y = 1 }
//
//	[mount]
//	mx_mount = false
func Parse(data []byte) (KeySpec, error) {
	s := Default()
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&s)
	if err != nil {
		return KeySpec{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode key spec")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return KeySpec{}, errors.New(errors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(names, ", "))
	}
	s = s.With()
	if err := s.Validate(); err != nil {
		return KeySpec{}, err
	}
	return s, nil
}

// Load reads and parses a TOML key spec file.
func Load(path string) (KeySpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return KeySpec{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return Parse(data)
}
