// SPDX-License-Identifier: MPL-2.0

// Package issue provides structured, user-facing errors. An ActionableError
// records what operation failed, which resource was involved, and concrete
// suggestions for fixing the problem, so the CLI can render helpful messages
// instead of bare error chains.
package issue
