package app

import (
	"fmt"
	"io"
	"os"

	"github.com/Xarlan/zigbee/internal/pcap"
)

// PcapDumpOptions selects the capture to dump.
type PcapDumpOptions struct {
	// Input is a pcap file or a directory searched for .pcap files.
	Input string
	// MaxFrames stops each file after this many frames; 0 dumps all.
	MaxFrames int
	Stdout    io.Writer
}

// RunPcapDump prints every frame of an 802.15.4 capture as a hex dump and
// verifies the FCS of with-FCS captures.
func RunPcapDump(opts PcapDumpOptions) error {
	w := opts.Stdout
	if w == nil {
		w = os.Stdout
	}

	files, err := pcap.CollectPcapFiles(opts.Input)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .pcap files found in %s", opts.Input)
	}

	badFCS := 0
	for _, path := range files {
		capture, err := pcap.ReadFrames(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fcsLabel := "no FCS"
		if capture.HasFCS() {
			fcsLabel = "with FCS"
		}
		fmt.Fprintf(w, "%s: link type %d (%s), %d frames\n\n", path, capture.LinkType, fcsLabel, len(capture.Frames))

		for i, data := range capture.Frames {
			if opts.MaxFrames > 0 && i >= opts.MaxFrames {
				break
			}
			body := data
			status := ""
			if capture.HasFCS() {
				var ok bool
				body, ok = pcap.CheckFCS(data)
				status = "  FCS ok"
				if !ok {
					status = "  FCS BAD"
					badFCS++
				}
			}
			fmt.Fprintf(w, "Frame %d (%d bytes)%s\n", i+1, len(body), status)
			fmt.Fprint(w, pcap.HexDump(body, 16))
			fmt.Fprintln(w)
		}
	}

	if badFCS > 0 {
		return fmt.Errorf("%d frame(s) with a bad FCS", badFCS)
	}
	return nil
}
