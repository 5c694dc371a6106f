package ui

import (
	"github.com/charmbracelet/huh"
)

func overwriteForm(path string, overwrite *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(path + " already exists. Overwrite it?").
				Affirmative("Overwrite").
				Negative("Cancel").
				Value(overwrite),
		),
	)
}

// ConfirmOverwrite asks whether an existing output file may be replaced.
func ConfirmOverwrite(path string) (bool, error) {
	var overwrite bool
	if err := overwriteForm(path, &overwrite).Run(); err != nil {
		return false, err
	}
	return overwrite, nil
}
