package discovery

import (
	"fmt"
	"sync"

	"github.com/enbility/zeroconf/v3"
)

// Service parameters for gateway advertisement on the local network.
const (
	ServiceType = "_fieldgate._tcp"
	Domain      = "local."

	// DefaultPort is advertised when the gateway exposes no listener of
	// its own; discovery only needs the instance and TXT records.
	DefaultPort = 8883
)

// Info describes the advertised gateway.
type Info struct {
	// DeviceID is the assigned device id ("" before registration).
	DeviceID string

	// Name is the human-readable device name.
	Name string

	// Port overrides DefaultPort when non-zero.
	Port int
}

// EncodeTXT renders the TXT records for an advertisement.
func EncodeTXT(info Info) []string {
	txt := []string{
		"name=" + info.Name,
	}
	if info.DeviceID != "" {
		txt = append(txt, "id="+info.DeviceID)
	}
	return txt
}

// Advertiser announces the gateway over mDNS so operators can locate it
// without knowing its address.
type Advertiser struct {
	mu     sync.Mutex
	server *zeroconf.Server
}

// NewAdvertiser creates a silent advertiser.
func NewAdvertiser() *Advertiser {
	return &Advertiser{}
}

// Advertise starts (or replaces) the gateway announcement.
func (a *Advertiser) Advertise(info Info) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	port := info.Port
	if port == 0 {
		port = DefaultPort
	}

	instance := info.Name
	if instance == "" {
		instance = "fieldgate"
	}

	server, err := zeroconf.Register(
		instance,
		ServiceType,
		Domain,
		port,
		EncodeTXT(info),
		nil, // all interfaces
	)
	if err != nil {
		return fmt.Errorf("failed to register mdns service: %w", err)
	}

	a.server = server
	return nil
}

// Stop withdraws the announcement. Safe to call when not advertising.
func (a *Advertiser) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}
