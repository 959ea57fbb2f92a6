package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Xarlan/zigbee/internal/errors"
	"github.com/Xarlan/zigbee/internal/pcap"
	"github.com/Xarlan/zigbee/internal/zigbee/catalog"
	"github.com/Xarlan/zigbee/internal/zigbee/frame"
)

// BuildOptions describes one frame built from the command line.
type BuildOptions struct {
	ConfigPath   string
	Kind         string
	CommandID    int
	NWKFrameType int
	Layout       string
	// Sets holds name=value assignments applied in order.
	Sets     []string
	Output   OutputOverrides
	PcapPath string
	Copy     bool
	// SavePath records the frame in a catalog file under SaveKey, creating
	// the file when it does not exist.
	SavePath string
	SaveKey  string
	Stdout   io.Writer
	Stderr   io.Writer

	copyToClipboard func(string) error
}

// ParseAssignment splits "name=value".
func ParseAssignment(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid assignment %q (want name=value)", s)
	}
	return name, strings.TrimSpace(value), nil
}

// RunBuild builds one frame and prints it.
func RunBuild(opts BuildOptions) error {
	env, err := openEnvironment("build", opts.ConfigPath, opts.Output, opts.Stdout, opts.Stderr)
	if err != nil {
		return err
	}
	defer env.Close()

	f, err := frame.New(opts.Kind, frame.Args{
		NWKFrameType: opts.NWKFrameType,
		CommandID:    opts.CommandID,
		Layout:       opts.Layout,
	})
	if err != nil {
		env.logger.LogFrame(opts.Kind, "", nil, err)
		return errors.WrapBuildError(err, opts.Kind)
	}

	for _, s := range opts.Sets {
		name, value, err := ParseAssignment(s)
		if err != nil {
			return err
		}
		if err := f.Set(name, value); err != nil {
			env.logger.LogFrame(opts.Kind, "", nil, err)
			return errors.WrapBuildError(err, opts.Kind)
		}
		env.logger.Debug("set %s = %s", name, value)
	}

	data, err := frame.Serialize(f)
	env.logger.LogFrame(opts.Kind, "", data, err)
	if err != nil {
		return errors.WrapBuildError(err, opts.Kind)
	}

	built := builtFrame{key: opts.Kind, frame: f, data: data}
	if err := writeFrame(env.stdout, env.cfg, built, false); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if opts.PcapPath != "" {
		if err := writeCapture(opts.PcapPath, env.cfg, []builtFrame{built}); err != nil {
			return err
		}
		env.logger.Info("Wrote %s", opts.PcapPath)
	}

	if opts.SavePath != "" {
		if err := saveToCatalog(opts, data); err != nil {
			return errors.WrapCatalogError(err, opts.SavePath)
		}
		env.logger.Info("Saved %s to %s", opts.SaveKey, opts.SavePath)
	}

	if opts.Copy {
		copyFn := opts.copyToClipboard
		if copyFn == nil {
			copyFn = clipboard.WriteAll
		}
		if err := copyFn(pcap.FormatHex(built.wire(env.cfg.Output.FCS))); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		env.logger.Info("Frame copied to clipboard")
	}
	return nil
}

// saveToCatalog adds the built frame to the catalog at opts.SavePath with
// its octets as expect_hex. An entry with the same key is replaced.
func saveToCatalog(opts BuildOptions, data []byte) error {
	if opts.SaveKey == "" {
		return fmt.Errorf("save: a catalog key is required")
	}

	file := &catalog.File{
		Version: 1,
		Name:    strings.TrimSuffix(filepath.Base(opts.SavePath), filepath.Ext(opts.SavePath)),
	}
	if _, err := os.Stat(opts.SavePath); err == nil {
		file, err = catalog.LoadAndValidate(opts.SavePath)
		if err != nil {
			return err
		}
	}

	entry := &catalog.Entry{
		Key:       opts.SaveKey,
		Kind:      opts.Kind,
		ExpectHex: pcap.FormatHex(data),
	}
	if opts.Kind == string(frame.KindData) {
		entry.NWKFrameType = opts.NWKFrameType
	}
	if opts.Kind == string(frame.KindCommand) {
		entry.CommandID = opts.CommandID
		if opts.Layout != "" && opts.Layout != "standard" {
			entry.Layout = opts.Layout
		}
	}
	if len(opts.Sets) > 0 {
		entry.Fields = make(map[string]any, len(opts.Sets))
		for _, s := range opts.Sets {
			name, value, err := ParseAssignment(s)
			if err != nil {
				return err
			}
			entry.Fields[name] = value
		}
	}

	replaced := false
	for i, e := range file.Frames {
		if e.Key == entry.Key {
			file.Frames[i] = entry
			replaced = true
		}
	}
	if !replaced {
		file.Frames = append(file.Frames, entry)
	}

	if err := file.Validate(); err != nil {
		return err
	}
	return catalog.Save(opts.SavePath, file)
}
