package pcap

// Capture files of serialized 802.15.4 frames

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/Xarlan/zigbee/internal/zigbee/codec"
)

// Link types for IEEE 802.15.4 captures.
const (
	LinkTypeIEEE802154WithFCS layers.LinkType = 195
	LinkTypeIEEE802154NoFCS   layers.LinkType = 230
)

// DefaultSnaplen is used when WriteOptions leaves Snaplen zero.
const DefaultSnaplen = 65535

// Frame is one captured frame.
type Frame struct {
	Name string
	Data []byte
}

// WriteOptions controls capture output.
type WriteOptions struct {
	// FCS appends the frame check sequence to every frame and marks the
	// capture with the with-FCS link type.
	FCS     bool
	Snaplen uint32
	// Start is the timestamp of the first frame; frames are spaced 1ms
	// apart. Zero means now.
	Start time.Time
}

// WriteFrames writes frames to a classic pcap file.
func WriteFrames(path string, frames []Frame, opts WriteOptions) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pcap: %w", err)
	}
	defer file.Close()

	if err := WriteFramesTo(file, frames, opts); err != nil {
		return err
	}
	return file.Close()
}

// WriteFramesTo writes a pcap stream to w.
func WriteFramesTo(w io.Writer, frames []Frame, opts WriteOptions) error {
	snaplen := opts.Snaplen
	if snaplen == 0 {
		snaplen = DefaultSnaplen
	}
	linkType := LinkTypeIEEE802154NoFCS
	if opts.FCS {
		linkType = LinkTypeIEEE802154WithFCS
	}
	start := opts.Start
	if start.IsZero() {
		start = time.Now()
	}

	writer := pcapgo.NewWriter(w)
	if err := writer.WriteFileHeader(snaplen, linkType); err != nil {
		return fmt.Errorf("write pcap header: %w", err)
	}

	for i, f := range frames {
		data := f.Data
		if opts.FCS {
			data = codec.AppendFCS(data)
		}
		captured := data
		if uint32(len(captured)) > snaplen {
			captured = captured[:snaplen]
		}
		ci := gopacket.CaptureInfo{
			Timestamp:     start.Add(time.Duration(i) * time.Millisecond),
			CaptureLength: len(captured),
			Length:        len(data),
		}
		if err := writer.WritePacket(ci, captured); err != nil {
			return fmt.Errorf("write frame %d (%s): %w", i, f.Name, err)
		}
	}
	return nil
}

// Capture is a decoded capture file.
type Capture struct {
	LinkType layers.LinkType
	Frames   [][]byte
}

// HasFCS reports whether frames carry a trailing FCS.
func (c *Capture) HasFCS() bool {
	return c.LinkType == LinkTypeIEEE802154WithFCS
}

// ReadFrames reads every frame from a classic pcap file.
func ReadFrames(path string) (*Capture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pcap: %w", err)
	}
	defer file.Close()

	reader, err := pcapgo.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("read pcap header: %w", err)
	}

	capture := &Capture{LinkType: reader.LinkType()}
	for {
		data, _, err := reader.ReadPacketData()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read frame %d: %w", len(capture.Frames), err)
		}
		capture.Frames = append(capture.Frames, data)
	}
	return capture, nil
}

// CheckFCS verifies the trailing FCS of a frame read from a with-FCS
// capture and returns the frame without it.
func CheckFCS(data []byte) ([]byte, bool) {
	if len(data) < 2 {
		return data, false
	}
	body := data[:len(data)-2]
	want := codec.FCS(body)
	got := uint16(data[len(data)-2]) | uint16(data[len(data)-1])<<8
	return body, got == want
}

// CollectPcapFiles returns sorted pcap files under root. A file path is
// returned as is.
func CollectPcapFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var pcaps []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".pcap") {
			pcaps = append(pcaps, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk pcaps: %w", err)
	}
	sort.Strings(pcaps)
	return pcaps, nil
}
