package app

import (
	"fmt"
	"io"

	"github.com/Xarlan/zigbee/internal/errors"
	"github.com/Xarlan/zigbee/internal/ui"
)

// ComposeOptions configures an interactive compose session.
type ComposeOptions struct {
	ConfigPath string
	Output     OutputOverrides
	PcapPath   string
	Stdout     io.Writer
	Stderr     io.Writer
}

// RunCompose runs the interactive form and prints the frame it produced.
func RunCompose(opts ComposeOptions) error {
	env, err := openEnvironment("compose", opts.ConfigPath, opts.Output, opts.Stdout, opts.Stderr)
	if err != nil {
		return err
	}
	defer env.Close()

	result, err := ui.RunCompose(env.cfg.Output.FCS)
	if err != nil {
		return fmt.Errorf("compose: %w", err)
	}
	if result == nil {
		fmt.Fprintln(env.stdout, "No frame composed")
		return nil
	}

	kind := ""
	if result.Frame != nil {
		kind = string(result.Frame.Kind())
	}
	env.logger.LogFrame(kind, "", result.Data, result.Err)
	if result.Err != nil {
		return errors.WrapBuildError(result.Err, kind)
	}

	built := builtFrame{key: kind, frame: result.Frame, data: result.Data}
	if err := writeFrame(env.stdout, env.cfg, built, false); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if opts.PcapPath != "" {
		if err := writeCapture(opts.PcapPath, env.cfg, []builtFrame{built}); err != nil {
			return err
		}
		env.logger.Info("Wrote %s", opts.PcapPath)
	}
	return nil
}
