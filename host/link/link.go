// Package link is the host-side client for the robot's wire protocol:
// it opens a serial port, frames movement commands for the MCU, and
// decodes whatever it sends back. This link's command set is fixed
// and compile-time known, not negotiated at runtime, so there is no
// dictionary retrieval handshake on connect.
package link

import (
	"fmt"
	"time"

	"omni3/host/serial"
	"omni3/protocol"
)

// Link is an open connection to the robot's MCU.
type Link struct {
	port    serial.Port
	decoder protocol.Decoder
}

// Open opens a serial connection to the MCU at device, using the
// package's default baud rate and read timeout.
func Open(device string) (*Link, error) {
	return OpenWithConfig(serial.DefaultConfig(device))
}

// OpenWithConfig opens a serial connection using a caller-supplied
// configuration.
func OpenWithConfig(cfg *serial.Config) (*Link, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("link: open %s: %w", cfg.Device, err)
	}

	// Give the MCU time to finish booting if it just powered on.
	time.Sleep(100 * time.Millisecond)

	return &Link{port: port}, nil
}

// Close closes the underlying serial port.
func (l *Link) Close() error {
	return l.port.Close()
}

// Send frames and writes one wire command.
func (l *Link) Send(cmdByte byte, args []float64) error {
	framed, err := protocol.EncodeCommand(cmdByte, args)
	if err != nil {
		return fmt.Errorf("link: encode command: %w", err)
	}
	if _, err := l.port.Write(framed); err != nil {
		return fmt.Errorf("link: write: %w", err)
	}
	return l.port.Flush()
}

// Poll reads whatever bytes are currently available (bounded by the
// port's read timeout) and returns any complete commands the MCU sent
// back, such as telemetry framed the same way as outgoing commands.
func (l *Link) Poll() ([]protocol.Command, error) {
	buf := make([]byte, 256)
	n, err := l.port.Read(buf)
	if n == 0 {
		return nil, err
	}
	return l.decoder.Feed(buf[:n]), nil
}
