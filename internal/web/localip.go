package web

import "net"

// LocalIP returns the primary outbound IPv4 address of this host. The
// UDP dial never sends a packet; it only forces the kernel to pick the
// egress interface. Falls back to loopback when the host is offline.
func LocalIP() string {
	conn, err := net.Dial("udp", "10.255.255.255:1")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "127.0.0.1"
	}
	return addr.IP.String()
}
