package main

import (
	"errors"
	"fmt"
	"net"
	"slices"
	"strconv"
	"strings"
)

// guessIpAddress completes a partial address typed by a player: the octets
// given replace the trailing octets of baseAddress, so on a /24 network
// typing "42" is enough.
func guessIpAddress(baseAddress net.IP, partialAddr string) (net.IP, error) {
	ip := slices.Clone(baseAddress)
	if v4 := ip.To4(); v4 != nil {
		ip = v4
	}
	if partialAddr == "" {
		return ip, nil
	}
	octets := strings.Split(partialAddr, ".")
	offset := len(ip) - len(octets)
	if offset < 0 {
		return net.IP{}, fmt.Errorf("too many octets in %q", partialAddr)
	}
	for i, octet := range octets {
		b, err := strconv.ParseUint(octet, 10, 8)
		if err != nil {
			return net.IP{}, err
		}
		ip[offset+i] = byte(b)
	}
	return ip, nil
}

// subnetOf returns the network of the local interface address ip belongs
// to.
func subnetOf(ip net.IP) (net.IPNet, error) {
	if ip == nil || ip.IsUnspecified() {
		return net.IPNet{}, fmt.Errorf("unspecified IP %v", ip)
	}
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return net.IPNet{}, err
	}
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if ok && ipnet.Contains(ip) {
			return *ipnet, nil
		}
	}
	return net.IPNet{}, fmt.Errorf("no interface found for ip %v", ip)
}

// localIP is the address other players can reach a listener bound to ip
// at. An unspecified ip is replaced by the first IPv4 address of an
// interface that is up and not a loopback.
func localIP(ip net.IP) (net.IP, error) {
	if ip != nil && !ip.IsUnspecified() {
		return ip, nil
	}
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	for _, ifi := range ifaces {
		if ifi.Flags&net.FlagUp == 0 || ifi.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := ifi.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4(), nil
			}
		}
	}
	return nil, errors.New("no network interface is up")
}

// splitHostPort splits addr into host and port, falling back to
// defaultPort when addr has none.
func splitHostPort(addr string, defaultPort int) (string, string, error) {
	if host, port, err := net.SplitHostPort(addr); err == nil {
		return host, port, nil
	}
	return net.SplitHostPort(net.JoinHostPort(addr, strconv.Itoa(defaultPort)))
}

// peerAddress completes what a player typed into the address of a mesh:
// missing octets come from local and a missing port is defaultPort.
func peerAddress(local net.IP, typed string, defaultPort int) (string, error) {
	host, port, err := splitHostPort(typed, defaultPort)
	if err != nil {
		return "", fmt.Errorf("invalid address %q: %w", typed, err)
	}
	ip, err := guessIpAddress(local, host)
	if err != nil {
		return "", fmt.Errorf("could not guess address for %q: %w", typed, err)
	}
	tcpAddr, err := net.ResolveTCPAddr("tcp", net.JoinHostPort(ip.String(), port))
	if err != nil {
		return "", fmt.Errorf("invalid address %q: %w", typed, err)
	}
	return net.JoinHostPort(ip.String(), strconv.Itoa(tcpAddr.Port)), nil
}
