// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/sampleprep/batch"
	"github.com/ik5/sampleprep/internal/audiotest"
	"github.com/ik5/sampleprep/internal/config"
	"github.com/ik5/sampleprep/metadata"
)

// mockPrompter answers confirmations from a list and records the questions.
type mockPrompter struct {
	answers []bool
	asked   []string
}

func (m *mockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	m.asked = append(m.asked, message)
	if len(m.answers) == 0 {
		return defaultValue, nil
	}
	answer := m.answers[0]
	m.answers = m.answers[1:]
	return answer, nil
}

func usePrompter(t *testing.T, p Prompter) {
	t.Helper()

	saved := prompter
	prompter = p
	t.Cleanup(func() { prompter = saved })
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the CLI with args and an empty config file unless args
// already name one.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "sampleprep.yaml")
	cfg := config.Default()
	cfg.Color = "never"
	require.NoError(t, config.Save(&cfg, cfgPath))

	resetFlags(rootCmd)
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := rootCmd.Execute()
	require.NoError(t, closeApp())
	return out.String(), errOut.String(), err
}

func hiResSample(t *testing.T, path string) string {
	t.Helper()

	return audiotest.WAV{
		SampleRate: 48000,
		BitDepth:   24,
		Channels:   2,
		Frames:     480,
		Info:       map[string]string{"INAM": "My Sample"},
	}.Write(t, path)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sampleprep dev\n", out)
}

func TestProfiles(t *testing.T) {
	out, _, err := execute(t, "profiles")
	require.NoError(t, err)
	assert.Contains(t, out, "* alesis-strike-multipad: WAV, 16-bit, <= 44100 Hz, mono/stereo\n")
	assert.Contains(t, out, "  lofi-mono: WAV, 8-bit, <= 22050 Hz, mono\n")
}

func TestRunAssumeYes(t *testing.T) {
	root := t.TempDir()
	hiResSample(t, filepath.Join(root, "My Sample.WAV"))

	out, _, err := execute(t, "run", "--yes", root)
	require.NoError(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "My Sample.wav", entries[0].Name())

	assert.Contains(t, out, "DONE : Convert audio : 24-bit|48000Hz|2ch -> 16-bit|44100Hz|2ch (My Sample.wav)")
}

func TestNormalizeDeclined(t *testing.T) {
	root := t.TempDir()
	hiResSample(t, filepath.Join(root, "kick_01.wav"))

	p := &mockPrompter{answers: []bool{false}}
	usePrompter(t, p)

	out, stderr, err := execute(t, "normalize", root)
	require.NoError(t, err)

	assert.Equal(t, []string{"The operation is not reversible. Do you wish to continue?"}, p.asked)
	assert.Contains(t, out, "The operation was aborted")
	assert.Contains(t, stderr, "[WARN] normalize: aborted")
	assert.FileExists(t, filepath.Join(root, "kick_01.wav"))
}

func TestNormalizeConfirmed(t *testing.T) {
	root := t.TempDir()
	hiResSample(t, filepath.Join(root, "kick_01.wav"))
	usePrompter(t, &mockPrompter{answers: []bool{true}})

	_, stderr, err := execute(t, "normalize", root)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, "Kick 01.wav"))
	assert.Contains(t, stderr, "[SUCCESS] normalize: 1 of 1 files changed")
}

func TestDryRun(t *testing.T) {
	root := t.TempDir()
	path := hiResSample(t, filepath.Join(root, "pad.wav"))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	out, _, err := execute(t, "convert", "--dry-run", root)
	require.NoError(t, err)

	assert.Contains(t, out, "Dry run: no file was changed")
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStripFormatFlag(t *testing.T) {
	root := t.TempDir()
	wavPath := hiResSample(t, filepath.Join(root, "pad.wav"))
	mp3Path := audiotest.TaggedMP3{Frames: map[string]string{"TIT2": "Pad"}}.Write(t, filepath.Join(root, "pad.mp3"))

	_, _, err := execute(t, "strip", "--yes", "--format", "mp3", root)
	require.NoError(t, err)

	fields, err := metadata.ID3Stripper{}.Inspect(mp3Path)
	require.NoError(t, err)
	assert.Empty(t, fields)

	fields, err = metadata.NewWAVStripper().Inspect(wavPath)
	require.NoError(t, err)
	assert.NotEmpty(t, fields, "wav files are left alone with --format mp3")

	_, _, err = execute(t, "strip", "--yes", "--format", "ogg", root)
	assert.ErrorIs(t, err, metadata.ErrUnsupportedFormat)
}

func TestNoTerminalRefusesToAsk(t *testing.T) {
	root := t.TempDir()
	hiResSample(t, filepath.Join(root, "kick_01.wav"))

	_, _, err := execute(t, "normalize", root)
	assert.ErrorIs(t, err, batch.ErrAborted)
	assert.FileExists(t, filepath.Join(root, "kick_01.wav"))
}

func TestCommandErrors(t *testing.T) {
	_, _, err := execute(t, "normalize")
	assert.Error(t, err)

	_, _, err = execute(t, "normalize", "--yes", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, batch.ErrRootNotDirectory)

	_, _, err = execute(t, "convert", "--profile", "mpc-live", t.TempDir())
	assert.Error(t, err)
}

func TestLogFile(t *testing.T) {
	root := t.TempDir()
	hiResSample(t, filepath.Join(root, "kick_01.wav"))
	logPath := filepath.Join(t.TempDir(), "sampleprep.log")

	_, _, err := execute(t, "normalize", "--yes", "--log-file", logPath, root)
	require.NoError(t, err)

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[SUCCESS] normalize: 1 of 1 files changed")
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "sampleprep.yaml")

	out, _, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Config written to "+path)
	assert.FileExists(t, path)

	require.NoError(t, os.WriteFile(path, []byte("profile: lofi-mono\n"), 0o644))

	usePrompter(t, &mockPrompter{answers: []bool{false}})
	out, _, err = execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Config init cancelled.")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "profile: lofi-mono\n", string(b))

	out, _, err = execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# "+path)
	assert.Contains(t, out, "# target lofi-mono: WAV, 8-bit, <= 22050 Hz, mono")
	assert.Contains(t, out, "profile: lofi-mono")
}

func TestConvertSkipsUnsupportedEncoding(t *testing.T) {
	root := t.TempDir()
	hiResSample(t, filepath.Join(root, "Kick.wav"))
	odd := audiotest.WAV{
		SampleRate: 44100, Channels: 1, BitDepth: 16, Frames: 64,
		Extensible: true, SubFormat: 2,
	}.Write(t, filepath.Join(root, "Odd.wav"))
	before, err := os.ReadFile(odd)
	require.NoError(t, err)

	out, stderr, err := execute(t, "convert", "--yes", root)
	require.NoError(t, err)

	assert.Contains(t, stderr, "[WARN] skipping "+odd)
	assert.Contains(t, out, "DONE : Convert audio : 24-bit|48000Hz|2ch -> 16-bit|44100Hz|2ch (Kick.wav)")

	after, err := os.ReadFile(odd)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
