package main

import (
	"fmt"
	"time"

	"github.com/avionics-go/mavrouter/internal/obs"
)

// runWaitDiagnostic polls every attached connection until one yields a
// packet or d elapses, then prints a one-line verdict and returns. It is
// meant for interface wiring smoke tests ("did anything arrive on any
// configured link"), not for production operation.
func runWaitDiagnostic(router *Router, d time.Duration) {
	const pollInterval = 50 * time.Millisecond
	deadline := time.Now().Add(d)

	for time.Now().Before(deadline) {
		for name, c := range router.Connections() {
			if pkt := c.NextPacket(pollInterval); pkt != nil {
				obs.WithInterface(name).Info("diagnostic: packet received")
				fmt.Printf("received a packet on interface %q (message %s)\n", name, pkt.Name())
				return
			}
		}
	}

	obs.Log.WithField("timeout", d.String()).Warn("diagnostic: no packet received before timeout")
	fmt.Printf("no packet received on any interface within %s\n", d)
}
