package discovery

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestParsePacket(t *testing.T) {
	own := uuid.New()
	other := uuid.New()
	tests := []struct {
		name   string
		packet []byte
		want   []byte
		wantOk bool
	}{
		{name: "from another device", packet: append(other[:], "bob"...), want: []byte("bob"), wantOk: true},
		{name: "empty payload", packet: other[:], want: []byte{}, wantOk: true},
		{name: "own announcement", packet: append(own[:], "alice"...), wantOk: false},
		{name: "too short", packet: []byte("short"), wantOk: false},
		{name: "empty packet", packet: nil, wantOk: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parsePacket(own[:], tt.packet)
			if ok != tt.wantOk {
				t.Fatalf("expected ok=%v, got %v", tt.wantOk, ok)
			}
			if ok && !bytes.Equal(got, tt.want) {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParsePacketCopiesPayload(t *testing.T) {
	key := uuid.New()
	buf := append(append([]byte{}, make([]byte, keySize)...), "bob"...)
	info, ok := parsePacket(key[:], buf)
	if !ok {
		t.Fatal("expected the packet to be accepted")
	}
	buf[keySize] = 'r'
	if string(info) != "bob" {
		t.Fatalf("payload aliases the read buffer: %q", info)
	}
}

var errUnavailable = errors.New("multicast unavailable")

func TestDiscover(t *testing.T) {
	n := 3
	fatal := make(chan error, n)
	for i := range n {
		go func() {
			discover := Discover{
				Info:                         []byte(fmt.Sprint(i)),
				IntervalBetweenAnnouncements: 100 * time.Millisecond,
				Port:                         53552,
			}
			if err := discover.Start(); err != nil {
				fatal <- fmt.Errorf("%w: %v", errUnavailable, err)
				return
			}
			defer discover.Close()
			set := make(map[string]struct{})
			timeout := time.After(5 * time.Second)
			for len(set) < n-1 {
				select {
				case entry := <-discover.Entries:
					set[string(entry.Info)] = struct{}{}
				case <-timeout:
					fatal <- fmt.Errorf("%w: node %d found only %v", errUnavailable, i, set)
					return
				}
			}
			if _, ok := set[fmt.Sprint(i)]; ok {
				fatal <- fmt.Errorf("node %d found itself", i)
				return
			}
			fatal <- nil
		}()
	}
	for range n {
		if err := <-fatal; err != nil {
			if errors.Is(err, errUnavailable) {
				t.Skip(err)
			}
			t.Fatal(err)
		}
	}
}
