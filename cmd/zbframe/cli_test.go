package main

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	globalFlags.configPath = ""
	globalFlags.logLevel = ""
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "help",
			args: []string{"--help"},
			want: []string{"Available Commands:", "build", "catalog", "describe", "compose", "pcap-dump", "version"},
		},
		{
			name: "version",
			args: []string{"version"},
			want: []string{"zbframe version dev"},
		},
		{
			name: "build beacon",
			args: []string{"build", "--kind", "mac_beacon", "--set", "mac_seq_num=0x42"},
			want: []string{"00 00 42\n"},
		},
		{
			name: "build data",
			args: []string{"build", "--kind", "data",
				"--set", "nwk_fc_discover_route=1", "--set", "nwk_fc_multicast=0", "--set", "nwk_fc_security=1",
				"--set", "nwk_fc_source_route=0", "--set", "nwk_fc_dst_ieee_addr=0", "--set", "nwk_fc_src_ieee_addr=1",
				"--set", "nwk_dst_addr=0x0102"},
			want: []string{"40 12 02 01\n"},
		},
		{
			name: "describe field",
			args: []string{"describe", "mac_intra_pan"},
			want: []string{"mac_intra_pan (mac)", "control word bits: 6"},
		},
		{
			name: "describe commands",
			args: []string{"describe", "--commands"},
			want: []string{"Association request", "GTS request"},
		},
		{
			name: "catalog check",
			args: []string{"catalog", "--file", "../../catalogs/samples.yaml", "--check"},
			want: []string{"0 failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runRoot(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in output:\n%s", want, out)
				}
			}
		})
	}
}

func TestBuildErrorHints(t *testing.T) {
	_, err := runRoot(t, "build", "--kind", "mac_beacon", "--set", "mac_seq_num=300")
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"Failed to build frame mac_beacon", "Try: zbframe describe mac_seq_num"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in error:\n%v", want, err)
		}
	}
}

func TestCatalogPcapRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pcap")
	if _, err := runRoot(t, "catalog", "--file", "../../catalogs/samples.yaml", "--key", "beacon", "--pcap", path); err != nil {
		t.Fatalf("catalog error = %v", err)
	}
	out, err := runRoot(t, "pcap-dump", path)
	if err != nil {
		t.Fatalf("pcap-dump error = %v", err)
	}
	if !strings.Contains(out, "link type 230 (no FCS), 1 frames") {
		t.Errorf("unexpected dump:\n%s", out)
	}
}
