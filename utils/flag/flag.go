package flag

import (
	"flag"
)

var (
	// ServiceName is attached to every log line so multiple binaries sharing
	// the log stream stay distinguishable.
	ServiceName = flag.String("service", "network_backend", "name of the service")

	// ServerAddr is the listen address of the HTTP server.
	ServerAddr = flag.String("addr", ":8080", "address the server listens on")
)

func ParseFlags() {
	if !flag.Parsed() {
		flag.Parse()
	}
}
