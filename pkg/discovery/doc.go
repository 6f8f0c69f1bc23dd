// Package discovery announces the gateway on the local network via mDNS.
package discovery
