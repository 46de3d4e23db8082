// SPDX-License-Identifier: EPL-2.0

package sampleprep_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/sampleprep"
	"github.com/ik5/sampleprep/profile"
)

func Example_dryRun() {
	root, err := os.MkdirTemp("", "samples")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(root)

	// An empty file is enough for renaming.
	if err := os.WriteFile(filepath.Join(root, "snare_tight-02.WAV"), nil, 0o644); err != nil {
		fmt.Println(err)
		return
	}

	res, err := sampleprep.NormalizeFilenames(root, profile.Default, sampleprep.Options{DryRun: true})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%s: %d planned, %s\n", res.Pass, res.Planned, res.Status)
	// Output: normalize: 1 planned, dry run
}
