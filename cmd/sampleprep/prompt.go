// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"

	"github.com/ik5/sampleprep/batch"
)

// Prompter asks the operator questions. Tests replace it.
type Prompter interface {
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library.
type SurveyPrompter struct{}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if !isTerminal(os.Stdin) {
		return false, fmt.Errorf("%w: no terminal to confirm on, use --yes", batch.ErrAborted)
	}

	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// prompter is the prompter used by the commands.
var prompter Prompter = &SurveyPrompter{}

// confirmer asks p before a plan runs; the default answer is no.
func confirmer(p Prompter) batch.Confirmer {
	return batch.ConfirmFunc(func(prompt string) (bool, error) {
		return p.Confirm(prompt, false)
	})
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
