// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestResolveDescriptor(t *testing.T) {
	home := t.TempDir()

	t.Run("path wins over name", func(t *testing.T) {
		dir := t.TempDir()
		d, err := ResolveDescriptor("ignored", dir, home)
		if err != nil {
			t.Fatal(err)
		}
		if d.Name != filepath.Base(dir) {
			t.Errorf("Name = %q, want %q", d.Name, filepath.Base(dir))
		}
		if d.Path != dir {
			t.Errorf("Path = %q, want %q", d.Path, dir)
		}
	})

	t.Run("bare name placed under home", func(t *testing.T) {
		d, err := ResolveDescriptor("demo", "", home)
		if err != nil {
			t.Fatal(err)
		}
		if d.Path != filepath.Join(home, "demo") {
			t.Errorf("Path = %q, want under %q", d.Path, home)
		}
		if d.Name != "demo" {
			t.Errorf("Name = %q, want %q", d.Name, "demo")
		}
	})

	t.Run("neither name nor path", func(t *testing.T) {
		_, err := ResolveDescriptor("", "", home)
		if !errors.Is(err, ErrInvalidPath) {
			t.Errorf("error = %v, want ErrInvalidPath", err)
		}
	})

	t.Run("relative path made absolute", func(t *testing.T) {
		d, err := ResolveDescriptor("", "some-env", home)
		if err != nil {
			t.Fatal(err)
		}
		if !filepath.IsAbs(d.Path) {
			t.Errorf("Path = %q, want absolute", d.Path)
		}
	})
}

func TestEnvironmentsHome_WorkonOverride(t *testing.T) {
	t.Setenv("WORKON_HOME", "/custom/envs")
	if got := EnvironmentsHome(); got != "/custom/envs" {
		t.Errorf("EnvironmentsHome() = %q, want %q", got, "/custom/envs")
	}
}

func TestEnvironmentsHome_Default(t *testing.T) {
	t.Setenv("WORKON_HOME", "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	got := EnvironmentsHome()
	if filepath.Base(got) != ".virtualenvs" {
		t.Errorf("EnvironmentsHome() = %q, want a .virtualenvs directory", got)
	}
}

func TestBinDir(t *testing.T) {
	t.Parallel()

	d := EnvironmentDescriptor{Name: "demo", Path: filepath.Join("/envs", "demo")}
	if got := d.BinDir(); filepath.Dir(got) != d.Path {
		t.Errorf("BinDir() = %q, want directly under %q", got, d.Path)
	}
}
