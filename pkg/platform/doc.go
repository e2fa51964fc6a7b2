// SPDX-License-Identifier: MPL-2.0

// Package platform centralizes the platform-specific naming conventions of
// virtual environment trees: the binaries/headers/library directory names and
// the separator used when composing the PATH variable.
package platform
