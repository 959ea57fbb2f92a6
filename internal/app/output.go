package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Xarlan/zigbee/internal/config"
	"github.com/Xarlan/zigbee/internal/pcap"
	"github.com/Xarlan/zigbee/internal/zigbee/codec"
	"github.com/Xarlan/zigbee/internal/zigbee/command"
	"github.com/Xarlan/zigbee/internal/zigbee/dump"
	"github.com/Xarlan/zigbee/internal/zigbee/frame"
)

// builtFrame is one serialized frame ready for output.
type builtFrame struct {
	key   string
	frame frame.Frame
	data  []byte
}

// frameJSON is the json output record, one per line.
type frameJSON struct {
	Key    string `json:"key,omitempty"`
	Kind   string `json:"kind"`
	Layout string `json:"layout,omitempty"`
	Length int    `json:"length"`
	Hex    string `json:"hex"`
	FCS    bool   `json:"fcs,omitempty"`
}

// wire returns the octets to print: the frame plus its FCS when enabled.
func (b builtFrame) wire(fcs bool) []byte {
	if fcs {
		return codec.AppendFCS(b.data)
	}
	return b.data
}

func writeFrame(w io.Writer, cfg *config.Config, b builtFrame, labelled bool) error {
	data := b.wire(cfg.Output.FCS)

	switch cfg.Output.Format {
	case config.FormatJSON:
		rec := frameJSON{
			Key:    b.key,
			Kind:   string(b.frame.Kind()),
			Length: len(data),
			Hex:    pcap.FormatHex(data),
			FCS:    cfg.Output.FCS,
		}
		if c, ok := b.frame.(*frame.Command); ok {
			rec.Layout = c.LayoutName
		}
		return json.NewEncoder(w).Encode(rec)
	case config.FormatDump:
		styles := dump.PlainStyles()
		if cfg.Output.Color {
			styles = dump.ColorStyles()
		}
		if labelled {
			fmt.Fprintf(w, "== %s ==\n", b.key)
		}
		dump.NewPrinter(w, styles).Frame(b.frame)
		fmt.Fprint(w, pcap.FormatFrameHex(b.data, headerLen(b)))
		_, err := fmt.Fprintf(w, "%d bytes: %s\n\n", len(data), pcap.FormatHex(data))
		return err
	default:
		if labelled {
			_, err := fmt.Fprintf(w, "%s: %s\n", b.key, pcap.FormatHex(data))
			return err
		}
		_, err := fmt.Fprintln(w, pcap.FormatHex(data))
		return err
	}
}

// headerLen returns the MAC header length of a command frame. Other kinds
// are all header and return 0.
func headerLen(b builtFrame) int {
	c, ok := b.frame.(*frame.Command)
	if !ok {
		return 0
	}
	payload, err := command.Encode(c.Payload)
	if err != nil {
		return 0
	}
	return len(b.data) - len(payload)
}

func writeCapture(path string, cfg *config.Config, frames []builtFrame) error {
	records := make([]pcap.Frame, 0, len(frames))
	for _, b := range frames {
		records = append(records, pcap.Frame{Name: b.key, Data: b.data})
	}
	return pcap.WriteFrames(path, records, pcap.WriteOptions{
		FCS:     cfg.Output.FCS,
		Snaplen: uint32(cfg.Pcap.Snaplen),
	})
}
