// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package envfile loads QTYPE_* settings from a dotenv file into the
// process environment before configuration is read, so a project can
// keep its lexicon location and classifier settings next to its data.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/joho/godotenv"
)

// DefaultFile is the dotenv file read when none is named.
const DefaultFile = ".env"

// Load reads the dotenv file at path and sets every variable that is not
// already present in the environment. Variables already set win over the
// file. A missing file is not an error. Load returns the keys it set, in
// sorted order.
func Load(path string) ([]string, error) {
	if path == "" {
		path = DefaultFile
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	var applied []string
	for key, value := range values {
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return applied, fmt.Errorf("setting %s: %w", key, err)
		}
		applied = append(applied, key)
	}
	sort.Strings(applied)
	return applied, nil
}
