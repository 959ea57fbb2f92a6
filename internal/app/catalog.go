package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/Xarlan/zigbee/internal/errors"
	"github.com/Xarlan/zigbee/internal/zigbee/catalog"
	"github.com/Xarlan/zigbee/internal/zigbee/frame"
)

// CatalogOptions selects what to do with a catalog file.
type CatalogOptions struct {
	ConfigPath string
	File       string
	// Keys limits the frames built; empty builds every frame.
	Keys []string
	// Kind limits the frames built or listed to one frame kind.
	Kind     string
	Search   string
	List     bool
	Check    bool
	PcapPath string
	Output   OutputOverrides
	Stdout   io.Writer
	Stderr   io.Writer
}

// RunCatalog lists, checks or builds the frames of a catalog.
func RunCatalog(opts CatalogOptions) error {
	env, err := openEnvironment("catalog", opts.ConfigPath, opts.Output, opts.Stdout, opts.Stderr)
	if err != nil {
		return err
	}
	defer env.Close()

	file, err := catalog.LoadAndValidate(opts.File)
	if err != nil {
		return errors.WrapCatalogError(err, opts.File)
	}
	cat := catalog.NewCatalog(file)
	env.logger.Verbose("Loaded catalog %q with %d frames", cat.Name(), len(cat.ListAll()))

	switch {
	case opts.List:
		return listCatalog(env.stdout, selectEntries(cat, opts.Search, opts.Kind))
	case opts.Check:
		return checkCatalog(env, cat, opts.File)
	}

	entries, err := resolveEntries(cat, opts)
	if err != nil {
		return err
	}

	built := make([]builtFrame, 0, len(entries))
	for _, e := range entries {
		f, err := e.Build()
		var data []byte
		if err == nil {
			data, err = frame.Serialize(f)
		}
		env.logger.LogFrame(e.Kind, e.Key, data, err)
		if err != nil {
			return errors.WrapBuildError(err, e.Key)
		}
		built = append(built, builtFrame{key: e.Key, frame: f, data: data})
	}

	for _, b := range built {
		if err := writeFrame(env.stdout, env.cfg, b, true); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	if opts.PcapPath != "" {
		if err := writeCapture(opts.PcapPath, env.cfg, built); err != nil {
			return err
		}
		env.logger.Info("Wrote %d frames to %s", len(built), opts.PcapPath)
	}
	return nil
}

func selectEntries(cat *catalog.Catalog, search, kind string) []*catalog.Entry {
	matches := cat.Search(search)
	if kind == "" {
		return matches
	}
	if search == "" {
		return cat.ListByKind(kind)
	}
	var filtered []*catalog.Entry
	for _, e := range cat.ListByKind(kind) {
		for _, m := range matches {
			if m == e {
				filtered = append(filtered, e)
				break
			}
		}
	}
	return filtered
}

func resolveEntries(cat *catalog.Catalog, opts CatalogOptions) ([]*catalog.Entry, error) {
	if len(opts.Keys) == 0 {
		return selectEntries(cat, opts.Search, opts.Kind), nil
	}
	entries := make([]*catalog.Entry, 0, len(opts.Keys))
	for _, key := range opts.Keys {
		e, ok := cat.Lookup(key)
		if !ok {
			return nil, fmt.Errorf("catalog key not found: %s (available: %s)", key, strings.Join(cat.Keys(), ", "))
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func listCatalog(w io.Writer, entries []*catalog.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found")
		return nil
	}

	fmt.Fprintf(w, "%-10s %-28s %-4s %-8s %s\n", "KIND", "KEY", "CMD", "LAYOUT", "DESCRIPTION")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, e := range entries {
		cmd := "-"
		layout := "-"
		if e.Kind == string(frame.KindCommand) {
			cmd = fmt.Sprintf("%d", e.CommandID)
			layout = e.Layout
			if layout == "" {
				layout = "standard"
			}
		}
		fmt.Fprintf(w, "%-10s %-28s %-4s %-8s %s\n", e.Kind, e.Key, cmd, layout, e.Description)
	}
	fmt.Fprintf(w, "\n%d entries\n", len(entries))
	return nil
}

func checkCatalog(env *environment, cat *catalog.Catalog, path string) error {
	result := catalog.Check(cat)
	w := env.stdout

	for _, key := range result.Passed {
		fmt.Fprintf(w, "  ok        %s\n", key)
	}
	for _, key := range result.Unchecked {
		fmt.Fprintf(w, "  built     %s (no expect_hex)\n", key)
	}
	for _, ce := range result.Errors {
		fmt.Fprintf(w, "  FAIL      %s\n", ce.Error())
		if ce.Err != nil {
			fmt.Fprintf(w, "            %v\n", ce.Err)
		}
		env.logger.Error("check %s: %s", ce.Key, ce.Message)
	}
	fmt.Fprintf(w, "\n%d passed, %d unchecked, %d failed\n", len(result.Passed), len(result.Unchecked), len(result.Errors))

	if !result.IsValid() {
		return errors.WrapCatalogError(fmt.Errorf("check catalog: %d frame(s) failed", len(result.Errors)), path)
	}
	return nil
}
