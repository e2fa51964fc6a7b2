// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"vsh-cli/pkg/platform"
)

// makeEnv lays out a well-formed environment tree rooted at dir.
func makeEnv(t *testing.T, dir string) {
	t.Helper()

	binDir := filepath.Join(dir, platform.BinDirName())
	for _, d := range []string{
		binDir,
		filepath.Join(dir, platform.IncludeDirName()),
	} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	var libDir string
	if runtime.GOOS == platform.Windows {
		libDir = filepath.Join(dir, "Lib", "site-packages")
	} else {
		libDir = filepath.Join(dir, "lib", "python3.11", "site-packages")
	}
	if err := os.MkdirAll(libDir, 0o755); err != nil {
		t.Fatal(err)
	}

	for _, f := range []string{"activate.sh", "python", "python3.11"} {
		if err := os.WriteFile(filepath.Join(binDir, f), []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

func TestValidate_WellFormed(t *testing.T) {
	dir := t.TempDir()
	makeEnv(t, dir)

	result := Validate(dir)
	if !result.Valid() {
		t.Errorf("Validate() = %v (rule %s), want valid", result.Validity, result.Rule)
	}
	if err := Check(dir); err != nil {
		t.Errorf("Check() error: %v", err)
	}
}

func TestValidate_MissingStructure(t *testing.T) {
	if runtime.GOOS == platform.Windows {
		t.Skip("rule set differs on Windows")
	}

	tests := []struct {
		name     string
		remove   string
		wantRule Rule
	}{
		{"missing binaries dir", "bin", RuleBinariesDir},
		{"missing headers dir", "include", RuleHeadersDir},
		{"missing library dir", "lib", RuleLibraryDir},
		{"missing activation scripts", filepath.Join("bin", "activate.sh"), RuleActivationScripts},
		{"missing interpreter", filepath.Join("bin", "python"), RuleInterpreter},
		{"missing build interpreter", filepath.Join("bin", "python3.11"), RuleBuildInterpreter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			makeEnv(t, dir)
			if err := os.RemoveAll(filepath.Join(dir, tt.remove)); err != nil {
				t.Fatal(err)
			}

			result := Validate(dir)
			if result.Valid() {
				t.Fatal("Validate() = valid, want invalid")
			}
			if result.Validity != ValidityInvalid {
				t.Errorf("Validity = %v, want ValidityInvalid", result.Validity)
			}
			if result.Rule != tt.wantRule {
				t.Errorf("Rule = %s, want %s", result.Rule, tt.wantRule)
			}

			err := Check(dir)
			var invalid *InvalidEnvironmentError
			if !errors.As(err, &invalid) {
				t.Fatalf("Check() error = %v, want InvalidEnvironmentError", err)
			}
			if invalid.Rule != tt.wantRule {
				t.Errorf("Check() rule = %s, want %s", invalid.Rule, tt.wantRule)
			}
			if invalid.Path != dir {
				t.Errorf("Check() path = %q, want %q", invalid.Path, dir)
			}
		})
	}
}

func TestValidate_EmptyDir(t *testing.T) {
	result := Validate(t.TempDir())
	if result.Valid() {
		t.Error("Validate() = valid for empty directory")
	}
}

func TestValidate_MissingPath(t *testing.T) {
	result := Validate(filepath.Join(t.TempDir(), "nope"))
	if result.Valid() {
		t.Error("Validate() = valid for missing directory")
	}
	if result.Rule != RuleBinariesDir {
		t.Errorf("Rule = %s, want %s", result.Rule, RuleBinariesDir)
	}
}

func TestValidate_ReadOnly(t *testing.T) {
	// Validation must not create or modify anything under the target.
	dir := t.TempDir()
	Validate(dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Validate() mutated the target directory: %v", entries)
	}
}
