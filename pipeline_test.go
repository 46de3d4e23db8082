// SPDX-License-Identifier: EPL-2.0

package sampleprep

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/sampleprep/audio"
	"github.com/ik5/sampleprep/batch"
	"github.com/ik5/sampleprep/formats/wav"
	"github.com/ik5/sampleprep/internal/audiotest"
	"github.com/ik5/sampleprep/metadata"
	"github.com/ik5/sampleprep/naming"
	"github.com/ik5/sampleprep/profile"
)

var decline = batch.ConfirmFunc(func(string) (bool, error) { return false, nil })

func hiResSample() audiotest.WAV {
	return audiotest.WAV{
		SampleRate: 48000,
		BitDepth:   24,
		Channels:   2,
		Frames:     4800,
		Info:       map[string]string{"INAM": "My Sample", "ISFT": "Some DAW"},
	}
}

// snapshot maps every file under root to its content.
func snapshot(t *testing.T, root string) map[string][]byte {
	t.Helper()

	files := map[string][]byte{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		files[rel], err = os.ReadFile(path)
		return err
	})
	require.NoError(t, err)
	return files
}

func statuses(results []batch.Result) []batch.Status {
	out := make([]batch.Status, len(results))
	for i, r := range results {
		out[i] = r.Status
	}
	return out
}

func TestRunPreparesSample(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	hiResSample().Write(t, filepath.Join(root, "My Sample.WAV"))

	out := new(bytes.Buffer)
	results, err := Run(root, profile.AlesisStrikeMultipad, Options{Out: out})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []batch.Status{batch.StatusDone, batch.StatusDone, batch.StatusDone}, statuses(results))

	files := snapshot(t, root)
	require.Len(t, files, 1)
	require.Contains(t, files, "My Sample.wav")

	path := filepath.Join(root, "My Sample.wav")
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	src, err := wav.Decoder{}.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 44100, src.SampleRate())
	assert.Equal(t, 16, src.BitDepth())
	assert.Equal(t, 2, src.Channels())

	samples, err := audio.ReadAll(src, 4096)
	require.NoError(t, err)
	assert.InDelta(t, 4410, len(samples)/2, 4)

	fields, err := metadata.NewWAVStripper().Inspect(path)
	require.NoError(t, err)
	assert.Empty(t, fields)

	transcript := out.String()
	assert.Contains(t, transcript, "My Sample.WAV' -> 'My Sample.wav'")
	assert.Contains(t, transcript, "Delete metadata : [Title=My Sample, Software=Some DAW] (My Sample.wav)")
	assert.Contains(t, transcript, "Convert audio : 24-bit|48000Hz|2ch -> 16-bit|44100Hz|2ch (My Sample.wav)")
	assert.Equal(t, 3, strings.Count(transcript, "1 operations were performed with success."))
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	hiResSample().Write(t, filepath.Join(root, "kits", "808", "kick_01-HARD.wav"))
	hiResSample().Write(t, filepath.Join(root, "kits", "808", "Kick 01 Hard.aiff.wav"))

	_, err := Run(root, profile.AlesisStrikeMultipad, Options{})
	require.NoError(t, err)
	before := snapshot(t, root)

	out := new(bytes.Buffer)
	results, err := Run(root, profile.AlesisStrikeMultipad, Options{Out: out})
	require.NoError(t, err)

	assert.Equal(t, []batch.Status{batch.StatusNothing, batch.StatusNothing, batch.StatusNothing}, statuses(results))
	assert.Equal(t, before, snapshot(t, root))
	assert.Equal(t, 3, strings.Count(out.String(), "There is no operation to be performed"))
}

func TestRunEmptyRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	out := new(bytes.Buffer)

	results, err := Run(root, profile.AlesisStrikeMultipad, Options{Out: out})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Empty(t, snapshot(t, root))
	assert.Contains(t, out.String(), "There is no operation to be performed")
}

func TestRunDeclined(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	hiResSample().Write(t, filepath.Join(root, "My Sample.WAV"))
	before := snapshot(t, root)

	out := new(bytes.Buffer)
	results, err := Run(root, profile.AlesisStrikeMultipad, Options{Out: out, Confirm: decline})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, batch.StatusAborted, results[0].Status)
	assert.Contains(t, out.String(), "The operation was aborted")
	assert.Equal(t, before, snapshot(t, root))
}

func TestRunDryRun(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	hiResSample().Write(t, filepath.Join(root, "My Sample.WAV"))
	before := snapshot(t, root)

	out := new(bytes.Buffer)
	results, err := Run(root, profile.AlesisStrikeMultipad, Options{Out: out, DryRun: true, Confirm: decline})
	require.NoError(t, err)

	assert.Equal(t, []batch.Status{batch.StatusDryRun, batch.StatusDryRun, batch.StatusDryRun}, statuses(results))
	assert.Equal(t, before, snapshot(t, root))
	assert.NotContains(t, out.String(), "DONE")
}

func TestRunRejectsBadInput(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	hiResSample().Write(t, filepath.Join(root, "a.wav"))
	before := snapshot(t, root)

	_, err := Run(filepath.Join(root, "missing"), profile.AlesisStrikeMultipad, Options{})
	assert.ErrorIs(t, err, batch.ErrRootNotDirectory)

	_, err = Run(filepath.Join(root, "a.wav"), profile.AlesisStrikeMultipad, Options{})
	assert.ErrorIs(t, err, batch.ErrRootNotDirectory)

	bad := profile.AlesisStrikeMultipad
	bad.MaxBitDepth = 12
	_, err = Run(root, bad, Options{})
	assert.ErrorIs(t, err, profile.ErrInvalidBitDepth)

	_, err = Run(root, profile.AlesisStrikeMultipad, Options{StripFormat: "ogg"})
	assert.ErrorIs(t, err, metadata.ErrUnsupportedFormat)

	assert.Equal(t, before, snapshot(t, root))
}

func TestNormalizeFilenamesWithRules(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	audiotest.Touch(t, filepath.Join(root, "SN_tight.wav"))
	audiotest.Touch(t, filepath.Join(root, "SN_loose.wav"))
	audiotest.Touch(t, filepath.Join(root, "readme.txt"))

	rule, err := naming.NewRule(`^SN_.*$`, "Snare {count}")
	require.NoError(t, err)

	res, err := NormalizeFilenames(root, profile.Default, Options{
		Formatters: []naming.Formatter{naming.RegexReplace{Rules: []naming.Rule{rule}}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Executed)

	files := snapshot(t, root)
	assert.Contains(t, files, "Snare 1.wav")
	assert.Contains(t, files, "Snare 2.wav")
	assert.Contains(t, files, "readme.txt")
}

func TestStripMetadataOnlyTouchesFormat(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	tagged := hiResSample().Write(t, filepath.Join(root, "pad.wav"))
	mp3 := audiotest.TaggedMP3{Frames: map[string]string{"TIT2": "Pad"}}.Write(t, filepath.Join(root, "pad.mp3"))
	mp3Before, err := os.ReadFile(mp3)
	require.NoError(t, err)

	res, err := StripMetadata(root, profile.Default, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Executed)

	fields, err := metadata.NewWAVStripper().Inspect(tagged)
	require.NoError(t, err)
	assert.Empty(t, fields)

	mp3After, err := os.ReadFile(mp3)
	require.NoError(t, err)
	assert.Equal(t, mp3Before, mp3After)

	res, err = StripMetadata(root, profile.Default, Options{StripFormat: "mp3"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Executed)

	mp3After, err = os.ReadFile(mp3)
	require.NoError(t, err)
	assert.Equal(t, audiotest.DefaultBody, mp3After)
}
