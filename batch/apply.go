// SPDX-License-Identifier: EPL-2.0

package batch

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

const (
	msgPlanHeader = "The following operations will be performed:"
	msgConfirm    = "The operation is not reversible. Do you wish to continue?"
	msgAborted    = "The operation was aborted"
	msgNothing    = "There is no operation to be performed"
	msgDryRun     = "Dry run: no file was changed"
)

// Confirmer asks the operator whether to go ahead with a plan.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

func (f ConfirmFunc) Confirm(prompt string) (bool, error) { return f(prompt) }

// AssumeYes approves every plan without asking.
var AssumeYes Confirmer = ConfirmFunc(func(string) (bool, error) { return true, nil })

// Options controls how a plan is reviewed and executed.
type Options struct {
	// Out receives the plan, the DONE lines and the summary. Nil discards them.
	Out io.Writer
	// Confirm is asked once per non-empty plan. Nil means AssumeYes.
	Confirm Confirmer
	// DryRun prints the plan and stops.
	DryRun bool
	// Progress, when set, receives a progress bar during execution.
	Progress io.Writer
}

// Status is how a pass ended.
type Status int

const (
	StatusNothing Status = iota // nothing to do
	StatusDryRun                // plan printed only
	StatusAborted               // operator declined
	StatusDone                  // every command executed
	StatusFailed                // a command failed part way
)

func (s Status) String() string {
	switch s {
	case StatusNothing:
		return "nothing to do"
	case StatusDryRun:
		return "dry run"
	case StatusAborted:
		return "aborted"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result summarizes one pass.
type Result struct {
	Pass     string
	Planned  int
	Executed int
	Status   Status
}

// Changed reports whether the pass touched the filesystem.
func (r Result) Changed() bool {
	return r.Executed > 0
}

// Apply reviews, confirms and executes cmds for the pass called name.
func Apply(name string, cmds []Command, opts Options) (Result, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	confirm := opts.Confirm
	if confirm == nil {
		confirm = AssumeYes
	}

	res := Result{Pass: name, Planned: len(cmds)}

	if len(cmds) == 0 {
		fmt.Fprintln(out, msgNothing)
		res.Status = StatusNothing
		return res, nil
	}

	fmt.Fprintln(out, msgPlanHeader)
	for _, cmd := range cmds {
		fmt.Fprintln(out, cmd.Description())
	}

	if opts.DryRun {
		fmt.Fprintln(out, msgDryRun)
		res.Status = StatusDryRun
		return res, nil
	}

	ok, err := confirm.Confirm(msgConfirm)
	if err != nil {
		return res, fmt.Errorf("confirming %s: %w", name, err)
	}
	if !ok {
		fmt.Fprintln(out, msgAborted)
		res.Status = StatusAborted
		return res, nil
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(cmds),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription(name),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for _, cmd := range cmds {
		if err := cmd.Execute(); err != nil {
			res.Status = StatusFailed
			return res, fmt.Errorf("%s: %w", cmd.Description(), err)
		}
		res.Executed++
		fmt.Fprintf(out, "DONE : %s\n", cmd.Description())
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}

	fmt.Fprintf(out, "%d operations were performed with success.\n", res.Executed)
	res.Status = StatusDone
	return res, nil
}

// Run discovers the files under root that keep accepts, plans them with c
// and applies the plan.
func Run(name, root string, keep Predicate, c Commander, opts Options) (Result, error) {
	paths, err := Discover(root, keep)
	if err != nil {
		return Result{Pass: name}, err
	}

	cmds, err := Plan(paths, c)
	if err != nil {
		return Result{Pass: name}, err
	}

	return Apply(name, cmds, opts)
}
