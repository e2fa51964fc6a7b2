// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"vsh-cli/pkg/fspath"
	"vsh-cli/pkg/platform"
)

type (
	// InterpreterSpec is a parsed name/version request such as
	// {python 3.7} or {pypy 3.5}. Version may be empty or partial.
	InterpreterSpec struct {
		Name    string
		Version string
	}

	// ResolvedInterpreter is an executable that existed at resolution time
	// together with its concrete version string. Never persisted: the
	// filesystem can change between runs, so specs are re-resolved on
	// every use.
	ResolvedInterpreter struct {
		Path    string
		Version string
	}
)

// interpreterAliases maps family aliases to canonical family names. New
// families or shorthands are added here, not in code paths.
var interpreterAliases = map[string]string{
	"":       "python",
	"p":      "python",
	"py":     "python",
	"python": "python",
	"pypy":   "pypy",
}

// tokenPattern splits a token into a leading alphabetic run and a trailing
// numeric/dot run.
var tokenPattern = regexp.MustCompile(`^(?P<name>[a-zA-Z]*)(?P<version>[0-9.]*)$`)

// versionPattern extracts a dotted version from a version-query response
// such as "Python 3.7.5".
var versionPattern = regexp.MustCompile(`\d+(?:\.\d+)*`)

// ParseInterpreterSpec parses a free-form token into an InterpreterSpec.
// The family alias table expands shorthands ("p37" -> python 3.7) and digit
// runs are re-joined with single dots ("375" -> "3.7.5"). A token whose
// letters are not a known family and that carries no digits cannot be
// resolved.
func ParseInterpreterSpec(token string) (InterpreterSpec, error) {
	m := tokenPattern.FindStringSubmatch(token)
	if m == nil {
		return InterpreterSpec{}, &InterpreterNotFoundError{Name: token}
	}
	name, version := m[1], m[2]

	if canonical, ok := interpreterAliases[strings.ToLower(name)]; ok {
		name = canonical
	} else if version == "" {
		return InterpreterSpec{}, &InterpreterNotFoundError{Name: token}
	}

	return InterpreterSpec{Name: name, Version: normalizeVersion(version)}, nil
}

// normalizeVersion strips existing dots from a digit run and re-joins the
// digits with single dots: "375" and "3.75" both become "3.7.5".
func normalizeVersion(version string) string {
	digits := strings.ReplaceAll(version, ".", "")
	if digits == "" {
		return ""
	}
	parts := make([]string, len(digits))
	for i, d := range digits {
		parts[i] = string(d)
	}
	return strings.Join(parts, ".")
}

// ResolveInterpreter resolves a user-supplied token to a concrete
// executable. An empty token resolves to the default interpreter on PATH;
// an existing filesystem path short-circuits the search. Otherwise the
// layered selection policy applies: exact filename match, then exact
// version-query match, then the most specific version-prefix match.
func ResolveInterpreter(ctx context.Context, token string) (ResolvedInterpreter, error) {
	if token == "" {
		return defaultInterpreter(ctx)
	}

	// Path (or symlink) supplied directly: resolve its target, skip search.
	if fspath.Exists(token) {
		abs, err := fspath.Absolute(token)
		if err != nil {
			return ResolvedInterpreter{}, &InvalidPathError{Path: token}
		}
		return ResolvedInterpreter{Path: abs, Version: queryVersion(ctx, abs)}, nil
	}

	spec, err := ParseInterpreterSpec(token)
	if err != nil {
		return ResolvedInterpreter{}, err
	}
	return resolveSpec(ctx, spec)
}

func resolveSpec(ctx context.Context, spec InterpreterSpec) (ResolvedInterpreter, error) {
	notFound := &InterpreterNotFoundError{Name: spec.Name, Version: spec.Version}

	candidates := candidatePaths(spec)
	if len(candidates) == 0 {
		return ResolvedInterpreter{}, notFound
	}

	// 1. Exact filename match on {name}{version} wins outright.
	exactName := spec.Name + spec.Version
	for _, path := range candidates {
		if filepath.Base(path) == exactName && spec.Version != "" {
			return ResolvedInterpreter{Path: path, Version: spec.Version}, nil
		}
	}

	// 2/3. Query each candidate for its reported version: exact equality
	// returns immediately, version-prefix matches are collected keyed by
	// {name}{reported-version}.
	prefixMatches := map[string]ResolvedInterpreter{}
	for _, path := range candidates {
		reported := queryVersion(ctx, path)
		if reported == "" {
			continue
		}
		if spec.Version != "" && reported == spec.Version {
			return ResolvedInterpreter{Path: path, Version: reported}, nil
		}
		if strings.HasPrefix(reported, spec.Version) {
			prefixMatches[spec.Name+reported] = ResolvedInterpreter{Path: path, Version: reported}
		}
	}

	// 4. Most specific prefix match wins. Keys are compared as strings in
	// reverse sorted order; lexicographic comparison is the documented
	// behavior even though multi-digit components sort unintuitively
	// ("3.10" below "3.9").
	if len(prefixMatches) > 0 {
		keys := make([]string, 0, len(prefixMatches))
		for k := range prefixMatches {
			keys = append(keys, k)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(keys)))
		return prefixMatches[keys[0]], nil
	}

	return ResolvedInterpreter{}, notFound
}

// candidatePaths builds the ordered list of existing candidate executables
// for a spec: pyenv installs filtered by version prefix, every PATH entry,
// and (on darwin) the Homebrew cellar. Each root contributes the
// {name}{version} and bare {name} filenames.
func candidatePaths(spec InterpreterSpec) []string {
	var roots []string

	// pyenv installs come first: they are the most version-specific.
	roots = append(roots, pyenvRoots(spec.Version)...)

	roots = append(roots, filepath.SplitList(os.Getenv("PATH"))...)

	roots = append(roots, cellarRoots()...)

	var (
		paths []string
		seen  = map[string]struct{}{}
	)
	for _, root := range roots {
		if root == "" {
			continue
		}
		for _, name := range []string{spec.Name + spec.Version, spec.Name} {
			path := filepath.Join(root, name)
			if _, dup := seen[path]; dup {
				continue
			}
			seen[path] = struct{}{}
			if fspath.IsFile(path) {
				paths = append(paths, path)
			}
		}
	}
	return paths
}

// cellarRoots returns the bin directories of Homebrew python installs. The
// cellar layout is a darwin convention; other platforms contribute nothing.
func cellarRoots() []string {
	if runtime.GOOS != platform.Darwin {
		return nil
	}
	matches, _ := filepath.Glob("/usr/local/Cellar/python/*/bin")
	return matches
}

// pyenvRoots returns the bin directories of pyenv installs whose version
// folder starts with the requested version.
func pyenvRoots(version string) []string {
	root := os.Getenv("PYENV_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		root = filepath.Join(home, ".pyenv")
	}
	entries, err := os.ReadDir(filepath.Join(root, "versions"))
	if err != nil {
		return nil
	}
	var roots []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), version) {
			roots = append(roots, filepath.Join(root, "versions", entry.Name(), "bin"))
		}
	}
	return roots
}

// queryVersion invokes the candidate with a version query and parses the
// reported dotted version. Candidates that fail to execute or report
// nothing parseable yield "".
func queryVersion(ctx context.Context, path string) string {
	cmd := exec.CommandContext(ctx, path, "--version")
	// Older interpreters print the version banner to stderr.
	out, err := cmd.CombinedOutput()
	if err != nil {
		return ""
	}
	return versionPattern.FindString(string(out))
}

// defaultInterpreter resolves an empty token to the interpreter the rest of
// the system would run: the first of python3/python found on PATH.
func defaultInterpreter(ctx context.Context) (ResolvedInterpreter, error) {
	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			abs, err := filepath.Abs(path)
			if err != nil {
				continue
			}
			return ResolvedInterpreter{Path: abs, Version: queryVersion(ctx, abs)}, nil
		}
	}
	return ResolvedInterpreter{}, &InterpreterNotFoundError{Name: "python"}
}
