package discovery

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	multicastIpAddress = "239.0.0.1"
	keySize            = 16
	maxPacketSize      = 1024
)

// Discover announces Info every IntervalBetweenAnnouncements on Port and
// reports the announcements of others on Entries. Configure the exported
// fields before calling Start.
type Discover struct {
	Info                         []byte
	Port                         uint16
	IntervalBetweenAnnouncements time.Duration
	Logger                       *slog.Logger
	Entries                      chan Entry
	conn                         *net.UDPConn
	sendConn                     *net.UDPConn
	key                          []byte
	done                         chan struct{}
	wg                           sync.WaitGroup
}

// Entry is an announcement received from another device.
type Entry struct {
	Info []byte
	Time time.Time
}

// Start joins the multicast group and starts announcing and listening.
func (d *Discover) Start() error {
	if len(d.Info) > maxPacketSize-keySize {
		return fmt.Errorf("announcement of %d bytes does not fit a packet", len(d.Info))
	}
	if d.IntervalBetweenAnnouncements <= 0 {
		d.IntervalBetweenAnnouncements = time.Second
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	key := uuid.New()
	d.key = key[:]
	d.Entries = make(chan Entry, 10)
	d.done = make(chan struct{})
	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", multicastIpAddress, d.Port))
	if err != nil {
		return err
	}
	d.conn, err = net.ListenMulticastUDP("udp", nil, addr)
	if err != nil {
		return err
	}
	d.sendConn, err = net.DialUDP("udp", nil, addr)
	if err != nil {
		return errors.Join(err, d.conn.Close())
	}
	d.wg.Add(2)
	go d.listen()
	go d.announce()
	return nil
}

// Close stops announcing and listening.
func (d *Discover) Close() error {
	close(d.done)
	err1 := d.conn.Close()
	err2 := d.sendConn.Close()
	d.wg.Wait()
	return errors.Join(err1, err2)
}

func (d *Discover) listen() {
	defer d.wg.Done()
	defer close(d.Entries)
	buffer := make([]byte, maxPacketSize)
	for {
		n, _, err := d.conn.ReadFromUDP(buffer)
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				d.Logger.Error("discovery listener stopped", "error", err)
			}
			return
		}
		info, ok := parsePacket(d.key, buffer[:n])
		if !ok {
			continue
		}
		select {
		case d.Entries <- Entry{Info: info, Time: time.Now()}:
		case <-d.done:
			return
		}
	}
}

func (d *Discover) announce() {
	defer d.wg.Done()
	packet := append(append([]byte{}, d.key...), d.Info...)
	ticker := time.NewTicker(d.IntervalBetweenAnnouncements)
	defer ticker.Stop()
	for {
		if _, err := d.sendConn.Write(packet); err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			d.Logger.Debug("announcement failed", "error", err)
		}
		select {
		case <-ticker.C:
		case <-d.done:
			return
		}
	}
}

// parsePacket returns the payload of a packet sent by someone other than
// the owner of key.
func parsePacket(key, packet []byte) ([]byte, bool) {
	if len(packet) < keySize || bytes.Equal(packet[:keySize], key) {
		return nil, false
	}
	return bytes.Clone(packet[keySize:]), true
}
