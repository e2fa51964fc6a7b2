// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"vsh-cli/internal/config"
	"vsh-cli/pkg/fspath"
	"vsh-cli/pkg/platform"
)

func TestRemove_StrictMissingPath(t *testing.T) {
	config.SetDirOverride(t.TempDir())
	t.Cleanup(config.Reset)

	env := EnvironmentDescriptor{Name: "gone", Path: filepath.Join(t.TempDir(), "gone")}
	err := Remove(env, true)
	if !errors.Is(err, ErrPathNotFound) {
		t.Errorf("Remove(strict) error = %v, want ErrPathNotFound", err)
	}
}

func TestRemove_StrictInvalidEnvironment(t *testing.T) {
	config.SetDirOverride(t.TempDir())
	t.Cleanup(config.Reset)

	dir := t.TempDir() // exists but is not an environment
	err := Remove(EnvironmentDescriptor{Name: "bogus", Path: dir}, true)
	if !errors.Is(err, ErrInvalidEnvironment) {
		t.Errorf("Remove(strict) error = %v, want ErrInvalidEnvironment", err)
	}
	if !fspath.Exists(dir) {
		t.Error("strict removal of an invalid environment deleted the tree")
	}
}

func TestRemove_DeletesTreeAndConfig(t *testing.T) {
	config.SetDirOverride(t.TempDir())
	t.Cleanup(config.Reset)

	dir := filepath.Join(t.TempDir(), "demo")
	makeEnv(t, dir)
	if err := config.SaveEnvFile("demo", config.EnvSettings{VenvPath: dir}); err != nil {
		t.Fatal(err)
	}

	if err := Remove(EnvironmentDescriptor{Name: "demo", Path: dir}, false); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if fspath.Exists(dir) {
		t.Error("environment tree still exists")
	}
	cfgPath, err := config.EnvFilePath("demo")
	if err != nil {
		t.Fatal(err)
	}
	if fspath.Exists(cfgPath) {
		t.Error("config record still exists")
	}
}

func TestRemove_MissingPathNonStrict(t *testing.T) {
	config.SetDirOverride(t.TempDir())
	t.Cleanup(config.Reset)

	env := EnvironmentDescriptor{Name: "gone", Path: filepath.Join(t.TempDir(), "gone")}
	if err := Remove(env, false); err != nil {
		t.Errorf("Remove() error = %v, want nil for best-effort removal", err)
	}
}

func TestCreate_FailedBuildLeavesNoConfig(t *testing.T) {
	if runtime.GOOS == platform.Windows {
		t.Skip("stub interpreters are POSIX shell scripts")
	}
	config.SetDirOverride(t.TempDir())
	t.Cleanup(config.Reset)

	// A stub interpreter that always fails: the build aborts and the
	// config record must not be written.
	stubDir := t.TempDir()
	stub := filepath.Join(stubDir, "python")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 1\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	env := EnvironmentDescriptor{Name: "demo", Path: filepath.Join(t.TempDir(), "demo")}
	_, err := Create(context.Background(), CreateOptions{
		Env:    env,
		Python: stub, // path token short-circuits resolution
	})
	if err == nil {
		t.Fatal("Create() succeeded with a failing builder")
	}

	cfgPath, err := config.EnvFilePath("demo")
	if err != nil {
		t.Fatal(err)
	}
	if fspath.Exists(cfgPath) {
		t.Error("failed creation left a config record behind")
	}
}

func TestCreate_WritesConfigAfterBuild(t *testing.T) {
	if runtime.GOOS == platform.Windows {
		t.Skip("stub interpreters are POSIX shell scripts")
	}
	config.SetDirOverride(t.TempDir())
	t.Cleanup(config.Reset)

	// A stub interpreter that succeeds without building anything: enough
	// to drive the create/record sequence.
	stubDir := t.TempDir()
	stub := filepath.Join(stubDir, "python")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	env := EnvironmentDescriptor{Name: "demo", Path: filepath.Join(t.TempDir(), "demo")}
	_, err := Create(context.Background(), CreateOptions{
		Env:          env,
		Python:       stub,
		StartingPath: "/start/here",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	cfgPath, err := config.EnvFilePath("demo")
	if err != nil {
		t.Fatal(err)
	}
	settings, err := config.LoadEnvFile(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if settings.VenvPath != env.Path {
		t.Errorf("VenvPath = %q, want %q", settings.VenvPath, env.Path)
	}
	if settings.StartingPath != "/start/here" {
		t.Errorf("StartingPath = %q, want %q", settings.StartingPath, "/start/here")
	}
	if settings.Python != stub {
		t.Errorf("Python = %q, want the requested token %q", settings.Python, stub)
	}
}
