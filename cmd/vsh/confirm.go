// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/huh"

// confirm prompts for a yes/no answer before destructive or creating
// operations. Cancelling the prompt counts as an error, not a "no".
func confirm(title string) (bool, error) {
	ok := false
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
