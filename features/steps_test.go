// SPDX-License-Identifier: EPL-2.0

//go:build integration

package features

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	"github.com/ik5/sampleprep"
	"github.com/ik5/sampleprep/batch"
	"github.com/ik5/sampleprep/formats/wav"
	"github.com/ik5/sampleprep/internal/audiotest"
	"github.com/ik5/sampleprep/metadata"
	"github.com/ik5/sampleprep/profile"
)

type sampleContext struct {
	root    string
	before  map[string][]byte
	out     *bytes.Buffer
	results []batch.Result
}

func initializeSampleScenario(ctx *godog.ScenarioContext) {
	s := &sampleContext{}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		root, err := os.MkdirTemp("", "sampleprep-feature-*")
		if err != nil {
			return c, err
		}
		*s = sampleContext{root: root, out: new(bytes.Buffer)}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if s.root != "" {
			os.RemoveAll(s.root)
		}
		return c, nil
	})

	ctx.Step(`^an empty sample directory$`, s.anEmptySampleDirectory)
	ctx.Step(`^a sample "([^"]*)" at (\d+) Hz, (\d+)-bit, (\d+) channels titled "([^"]*)"$`, s.aSample)
	ctx.Step(`^I run every pass answering "(yes|no)"$`, s.iRunEveryPassAnswering)
	ctx.Step(`^I run every pass as a dry run$`, s.iRunEveryPassAsADryRun)
	ctx.Step(`^I convert with profile "([^"]*)"$`, s.iConvertWithProfile)
	ctx.Step(`^the directory contains only "([^"]*)"$`, s.theDirectoryContainsOnly)
	ctx.Step(`^the directory is empty$`, s.theDirectoryIsEmpty)
	ctx.Step(`^the directory is unchanged$`, s.theDirectoryIsUnchanged)
	ctx.Step(`^"([^"]*)" is (\d+)-bit, (\d+) Hz, (\d+) channels$`, s.fileHasFormat)
	ctx.Step(`^"([^"]*)" carries no metadata$`, s.fileCarriesNoMetadata)
	ctx.Step(`^the last run planned nothing$`, s.theLastRunPlannedNothing)
	ctx.Step(`^the output says "([^"]*)"$`, s.theOutputSays)
}

func (s *sampleContext) snapshot() (map[string][]byte, error) {
	files := map[string][]byte{}
	err := filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, _ := filepath.Rel(s.root, path)
		files[rel], err = os.ReadFile(path)
		return err
	})
	return files, err
}

func (s *sampleContext) anEmptySampleDirectory() error {
	return nil
}

func (s *sampleContext) aSample(name string, rate, bits, channels int, title string) error {
	fixture := audiotest.WAV{
		SampleRate: rate,
		BitDepth:   bits,
		Channels:   channels,
		Frames:     rate / 10,
		Info:       map[string]string{"INAM": title},
	}
	if err := os.WriteFile(filepath.Join(s.root, name), fixture.Bytes(), 0o644); err != nil {
		return err
	}

	var err error
	s.before, err = s.snapshot()
	return err
}

func (s *sampleContext) run(target profile.Target, opts sampleprep.Options) error {
	s.out.Reset()
	opts.Out = s.out

	var err error
	s.results, err = sampleprep.Run(s.root, target, opts)
	return err
}

func (s *sampleContext) iRunEveryPassAnswering(answer string) error {
	confirm := batch.ConfirmFunc(func(string) (bool, error) { return answer == "yes", nil })
	return s.run(profile.Default, sampleprep.Options{Confirm: confirm})
}

func (s *sampleContext) iRunEveryPassAsADryRun() error {
	return s.run(profile.Default, sampleprep.Options{DryRun: true})
}

func (s *sampleContext) iConvertWithProfile(name string) error {
	target, err := profile.Lookup(name)
	if err != nil {
		return err
	}
	_, err = sampleprep.ConvertFormat(s.root, target, sampleprep.Options{Out: s.out})
	return err
}

func (s *sampleContext) theDirectoryContainsOnly(name string) error {
	files, err := s.snapshot()
	if err != nil {
		return err
	}
	if _, ok := files[name]; !ok || len(files) != 1 {
		names := make([]string, 0, len(files))
		for n := range files {
			names = append(names, n)
		}
		return fmt.Errorf("directory holds %q, want only %q", names, name)
	}
	return nil
}

func (s *sampleContext) theDirectoryIsEmpty() error {
	files, err := s.snapshot()
	if err != nil {
		return err
	}
	if len(files) != 0 {
		return fmt.Errorf("directory holds %d files", len(files))
	}
	return nil
}

func (s *sampleContext) theDirectoryIsUnchanged() error {
	after, err := s.snapshot()
	if err != nil {
		return err
	}
	if len(after) != len(s.before) {
		return fmt.Errorf("directory holds %d files, had %d", len(after), len(s.before))
	}
	for name, content := range s.before {
		if !bytes.Equal(after[name], content) {
			return fmt.Errorf("%s changed", name)
		}
	}
	return nil
}

func (s *sampleContext) fileHasFormat(name string, bits, rate, channels int) error {
	f, err := os.Open(filepath.Join(s.root, name))
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		return err
	}
	defer src.Close()

	if src.BitDepth() != bits || src.SampleRate() != rate || src.Channels() != channels {
		return fmt.Errorf("%s is %d-bit, %d Hz, %d channels", name, src.BitDepth(), src.SampleRate(), src.Channels())
	}
	return nil
}

func (s *sampleContext) fileCarriesNoMetadata(name string) error {
	fields, err := metadata.NewWAVStripper().Inspect(filepath.Join(s.root, name))
	if err != nil {
		return err
	}
	if len(fields) != 0 {
		return fmt.Errorf("%s still carries %v", name, fields)
	}
	return nil
}

func (s *sampleContext) theLastRunPlannedNothing() error {
	for _, res := range s.results {
		if res.Planned != 0 {
			return fmt.Errorf("%s planned %d operations", res.Pass, res.Planned)
		}
	}
	if strings.Count(s.out.String(), "There is no operation to be performed") != 3 {
		return fmt.Errorf("output:\n%s", s.out)
	}
	return nil
}

func (s *sampleContext) theOutputSays(text string) error {
	if !strings.Contains(s.out.String(), text) {
		return fmt.Errorf("output lacks %q:\n%s", text, s.out)
	}
	return nil
}
