// Package utils holds small helpers shared by the CLI commands and TUI.
package utils

import (
	"strings"
	"time"

	"github.com/goombaio/namegenerator"
)

// GenerateRunName creates a random, memorable name for a review run
func GenerateRunName() string {
	seed := time.Now().UTC().UnixNano()
	gen := namegenerator.NewNameGenerator(seed)

	// Some generated names contain underscores; normalize to hyphens
	return SanitizeName(gen.Generate())
}

// SanitizeName cleans up a string for use in file and directory names
func SanitizeName(name string) string {
	name = strings.ToLower(strings.ReplaceAll(name, " ", "-"))

	replacer := strings.NewReplacer(
		"_", "-",
		".", "-",
		",", "-",
		";", "-",
		":", "-",
		"/", "-",
		"\\", "-",
	)
	name = replacer.Replace(name)

	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}

	return strings.Trim(name, "-")
}
