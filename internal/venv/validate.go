// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"path/filepath"
	"regexp"

	"vsh-cli/pkg/fspath"
	"vsh-cli/pkg/platform"
)

// Rule identifies a structural validation rule. The zero value RuleNone
// means no rule was violated.
type Rule int

// Structural rules, in evaluation order.
const (
	RuleNone Rule = iota
	RuleBinariesDir
	RuleHeadersDir
	RuleLibraryDir
	RuleActivationScripts
	RuleInterpreter
	RuleBuildInterpreter
)

// String describes the violated rule for error messages.
func (r Rule) String() string {
	switch r {
	case RuleBinariesDir:
		return "missing " + platform.BinDirName() + " directory"
	case RuleHeadersDir:
		return "missing " + platform.IncludeDirName() + " directory"
	case RuleLibraryDir:
		return "missing site-packages directory"
	case RuleActivationScripts:
		return "missing activation scripts"
	case RuleInterpreter:
		return "missing interpreter executable"
	case RuleBuildInterpreter:
		return "missing versioned interpreter executable"
	case RuleNone:
		return "none"
	default:
		return "unknown rule"
	}
}

// Validity is the outcome of structural validation. ValidityUnknown exists
// only transiently during evaluation and is never returned to callers.
type Validity int

// Validity states.
const (
	ValidityUnknown Validity = iota
	ValidityValid
	ValidityInvalid
)

// ValidationResult reports whether a directory is a well-formed environment
// and, when it is not, the first violated rule.
type ValidationResult struct {
	Validity Validity
	Rule     Rule
}

// Valid reports whether validation passed.
func (r ValidationResult) Valid() bool {
	return r.Validity == ValidityValid
}

// buildNamePattern parses interpreter build identifiers such as
// "python3.11" or "pypy3.9" out of the library directory's parent name.
var buildNamePattern = regexp.MustCompile(`^(python|pypy)\.?(\d+)(?:\.?(\d+))?`)

// Validate inspects path read-only and reports whether it is a well-formed
// environment. On Windows only the directory-existence rules apply.
func Validate(path string) ValidationResult {
	return inspect(path)
}

// Check is the strict variant of Validate: the first failing rule is
// returned as an *InvalidEnvironmentError naming the missing element.
func Check(path string) error {
	result := inspect(path)
	if result.Valid() {
		return nil
	}
	return &InvalidEnvironmentError{Path: path, Rule: result.Rule}
}

func inspect(path string) ValidationResult {
	invalid := func(rule Rule) ValidationResult {
		return ValidationResult{Validity: ValidityInvalid, Rule: rule}
	}

	binDir := filepath.Join(path, platform.BinDirName())
	if !fspath.IsDir(binDir) {
		return invalid(RuleBinariesDir)
	}
	if !fspath.IsDir(filepath.Join(path, platform.IncludeDirName())) {
		return invalid(RuleHeadersDir)
	}
	libDir := globFirstDir(filepath.Join(path, platform.SitePackagesGlob()))
	if libDir == "" {
		return invalid(RuleLibraryDir)
	}

	// Windows environments are only checked for directory existence.
	if platform.IsWindows() {
		return ValidationResult{Validity: ValidityValid}
	}

	scripts, _ := filepath.Glob(filepath.Join(binDir, "activate.*"))
	if len(scripts) == 0 {
		return invalid(RuleActivationScripts)
	}

	// The library directory's parent names the interpreter build
	// (e.g. "python3.11"). When parseable, both the plain and the
	// build-specific executables must be present under bin.
	buildName := filepath.Base(filepath.Dir(libDir))
	if m := buildNamePattern.FindStringSubmatch(buildName); m != nil {
		if !fspath.Exists(filepath.Join(binDir, m[1])) {
			return invalid(RuleInterpreter)
		}
		if !fspath.Exists(filepath.Join(binDir, buildName)) {
			return invalid(RuleBuildInterpreter)
		}
	}

	return ValidationResult{Validity: ValidityValid}
}

// globFirstDir returns the first glob match that is a directory, or "".
func globFirstDir(pattern string) string {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return ""
	}
	for _, m := range matches {
		if fspath.IsDir(m) {
			return m
		}
	}
	return ""
}
