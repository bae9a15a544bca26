package transport

import (
	"fmt"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// OpenSerial opens a serial device as a Stream, grounded on the same
// go.bug.st/serial mode configuration the flight-control serial actuator
// protocol in this repository's ancestry used (8 data bits, no parity,
// one stop bit).
func OpenSerial(device string, baud int) (Stream, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", device, err)
	}
	return port, nil
}

// ListSerialPorts enumerates detailed serial port descriptors, useful for
// a configuration-discovery CLI subcommand.
func ListSerialPorts() ([]*enumerator.PortDetails, error) {
	return enumerator.GetDetailedPortsList()
}
