// Package zigbee holds the error taxonomy shared by the IEEE 802.15.4 / Zigbee
// frame builders in its subpackages.
//
// The builders turn partially populated header objects into wire octets:
//
//   - spec: field metadata, range validation and the Optional wrapper
//   - address: short / extended address values and their wire order
//   - mac: MAC header, control word packing, standard and extended layouts
//   - nwk: NWK header and control word packing
//   - command: MAC command payloads, one type per command id
//   - frame: Data, Beacon, MAC command and Ack frame assembly
//
// Nothing here performs I/O. Every failure is an *Error scoped to one call.
package zigbee
