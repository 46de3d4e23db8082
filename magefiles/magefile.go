// SPDX-License-Identifier: EPL-2.0

//go:build mage

// Package main contains Mage build targets for sampleprep.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "sampleprep"
	cmdPkg  = "./cmd/sampleprep"
)

// Default builds the CLI.
var Default = Build

// Build compiles the CLI binary into bin/, stamping the version from
// SAMPLEPREP_VERSION when set.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}

	version := os.Getenv("SAMPLEPREP_VERSION")
	if version == "" {
		version = "dev"
	}

	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Vet runs go vet on every package, the integration scenarios included.
func Vet() error {
	return sh.RunV("go", "vet", "-tags", "integration", "./...")
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Integration runs the godog scenarios in features/.
func Integration() error {
	mg.Deps(Test)
	return sh.RunV("go", "test", "-tags", "integration", "./features/...")
}

// Check vets and runs every test.
func Check() {
	mg.SerialDeps(Vet, Integration)
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}
