// SPDX-License-Identifier: EPL-2.0

// Command sampleprep prepares sample libraries for hardware samplers: it
// normalizes file names, strips embedded metadata and converts audio to the
// format a sampler accepts.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ik5/sampleprep"
	"github.com/ik5/sampleprep/batch"
	"github.com/ik5/sampleprep/internal/config"
	"github.com/ik5/sampleprep/internal/logging"
	"github.com/ik5/sampleprep/profile"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the sampleprep CLI.
var rootCmd = &cobra.Command{
	Use:   "sampleprep",
	Short: "Prepare audio samples for hardware samplers",
	Long: `sampleprep works on a directory of samples in place. Each pass lists what
it is about to change and asks before touching anything:

  normalize  give every audio file a canonical name
  strip      remove embedded metadata (RIFF INFO, ID3, ...)
  convert    re-encode files the sampler cannot play
  run        all three, in that order

The default profile targets the Alesis Strike MultiPad: 16-bit WAV at up
to 44.1 kHz, mono or stereo. The passes cannot be undone; use --dry-run
to review a plan first.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeApp()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./sampleprep.yaml or ~/.config/sampleprep/sampleprep.yaml)")
	flags.String("profile", "", "target profile (see 'sampleprep profiles')")
	flags.BoolP("yes", "y", false, "do not ask for confirmation")
	flags.BoolP("dry-run", "n", false, "print the plan without changing files")
	flags.String("color", "", "color output: auto, always or never")
	flags.String("log-file", "", "append log lines to this file")
	flags.BoolP("verbose", "v", false, "log debug details")
	flags.Bool("no-progress", false, "hide progress bars")
}

// app is the state shared by the commands of one invocation.
type app struct {
	cfg     *config.Config
	cfgFile string
	target  profile.Target
	log     *logging.Logger
}

var current *app

// loadApp reads the configuration with the command line flags applied on
// top and opens the logger.
func loadApp(cmd *cobra.Command) (*app, error) {
	v := viper.New()
	flags := cmd.Flags()
	for key, flag := range map[string]string{
		"profile":  "profile",
		"color":    "color",
		"log_file": "log-file",
		"verbose":  "verbose",
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	cfgFile, _ := flags.GetString("config")
	cfg, used, err := config.Load(v, cfgFile, config.SearchPaths()...)
	if err != nil {
		return nil, err
	}
	if noProgress, _ := flags.GetBool("no-progress"); noProgress {
		cfg.Progress = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	target, err := cfg.Target()
	if err != nil {
		return nil, err
	}

	color, _ := logging.ParseColorMode(cfg.Color)
	log, err := logging.New(logging.Options{
		Color:   color,
		File:    cfg.LogFile,
		Verbose: cfg.Verbose,
		Out:     cmd.ErrOrStderr(),
		Err:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}

	if used != "" {
		log.Debug("using config file %s", used)
	}
	log.Debug("target %s", target)

	current = &app{cfg: cfg, cfgFile: used, target: target, log: log}
	return current, nil
}

func closeApp() error {
	if current == nil {
		return nil
	}
	err := current.log.Close()
	current = nil
	return err
}

// options builds the pipeline options for cmd.
func (a *app) options(cmd *cobra.Command) (sampleprep.Options, error) {
	formatters, err := a.cfg.Formatters()
	if err != nil {
		return sampleprep.Options{}, err
	}

	opts := sampleprep.Options{
		Formatters:  formatters,
		Keep:        a.cfg.Metadata.Keep,
		StripFormat: a.cfg.Metadata.Format,
		Out:         cmd.OutOrStdout(),
		Confirm:     confirmer(prompter),
	}
	opts.Skipped = func(path string, err error) {
		a.log.Warn("skipping %s: %v", path, err)
	}

	flags := cmd.Flags()
	if yes, _ := flags.GetBool("yes"); yes {
		opts.Confirm = batch.AssumeYes
	}
	opts.DryRun, _ = flags.GetBool("dry-run")
	if format, _ := flags.GetString("format"); format != "" {
		opts.StripFormat = format
	}
	if a.cfg.Progress && isTerminal(os.Stderr) {
		opts.Progress = os.Stderr
	}

	return opts, nil
}

// report logs the outcome of a pass.
func (a *app) report(res batch.Result) {
	switch res.Status {
	case batch.StatusDone:
		a.log.Success("%s: %d of %d files changed", res.Pass, res.Executed, res.Planned)
	case batch.StatusAborted:
		a.log.Warn("%s: aborted, no file changed", res.Pass)
	case batch.StatusFailed:
		a.log.Error("%s: failed after %d of %d files", res.Pass, res.Executed, res.Planned)
	default:
		a.log.Debug("%s: %s", res.Pass, res.Status)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		closeApp()
		os.Exit(1)
	}
}
