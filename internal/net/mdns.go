package net

import (
	"fmt"
	"net"
	"os"

	"github.com/hashicorp/mdns"
)

const serviceType = "_colorbook._tcp"

// Advertise announces the mirror on the local network so viewers can find
// it without typing an address.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	var ips []net.IP
	if ip := localIP(); !ip.IsLoopback() {
		ips = []net.IP{ip}
	}
	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, ips,
		[]string{"ws=/ws", "frame=/frame.png"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// localIP picks the address viewers on the LAN should use: the source
// address of the default route, else the first up non-loopback IPv4
// interface, else loopback.
func localIP() net.IP {
	if conn, err := net.Dial("udp", "8.8.8.8:80"); err == nil {
		defer conn.Close()
		if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
			return addr.IP
		}
	}
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	return net.IPv4(127, 0, 0, 1)
}

// ShareURL is the address shown to the user for watching the drawing.
func ShareURL(port int) string {
	return fmt.Sprintf("http://%s:%d/frame.png", localIP(), port)
}
