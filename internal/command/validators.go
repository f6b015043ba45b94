// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"

	"github.com/drush-go/drush/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func FormatValidator(value any) error {
	valid := []string{output.FormatTable, output.FormatJSON, output.FormatYAML}
	s, _ := value.(string)
	if !slices.Contains(valid, s) {
		return fmt.Errorf("must be one of %v", valid)
	}
	return nil
}

// BootstrapValidator checks the bootstrap level of a command file entry.
func BootstrapValidator(value any) error {
	valid := []string{BootstrapNone, BootstrapRoot}
	s, _ := value.(string)
	if !slices.Contains(valid, s) {
		return fmt.Errorf("bootstrap must be one of %v", valid)
	}
	return nil
}
