// SPDX-License-Identifier: MPL-2.0

// Package venv implements the core of the virtual environment manager:
// structural validation of environment trees, interpreter resolution from
// fuzzy name/version tokens, cascading configuration lookup, activation
// environment construction, and environment creation/removal.
//
// Everything here is synchronous and re-reads the filesystem on each call:
// environments can be created or modified out of band, so results are never
// cached between operations.
package venv
