// Package connection provides link supervision shared by the gateway's
// external links: exponential backoff with jitter and a Manager that owns
// the connect / loss-detect / reconnect cycle around a ConnectFunc.
package connection
