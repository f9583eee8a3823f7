package main

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"go.dedis.ch/protobuf"
)

var errNoMulticast = errors.New("multicast unavailable")

func TestDecodeInfo(t *testing.T) {
	info := Info{Name: "alice", Address: "192.168.0.4:5000"}
	data, err := protobuf.Encode(&info)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := decodeInfo(data)
	if err != nil {
		t.Fatal(err)
	}
	if decoded != info {
		t.Fatalf("expected %+v, actual %+v", info, decoded)
	}
	if _, err := decodeInfo([]byte{0xff}); err == nil {
		t.Fatal("expected an error for a truncated announcement")
	}
}

func TestPingerInfos(t *testing.T) {
	n := 4
	fatal := make(chan error, n)
	for i := range n {
		go func() {
			p, err := NewPinger(
				Info{Name: fmt.Sprint(i), Address: fmt.Sprintf("127.0.0.1:%d", 5000+i)},
				53553,
				50*time.Millisecond,
				slog.New(slog.DiscardHandler),
			)
			if err != nil {
				fatal <- err
				return
			}
			if err := p.Start(); err != nil {
				fatal <- fmt.Errorf("%w: %v", errNoMulticast, err)
				return
			}
			defer p.Close()
			found := map[string]string{}
			timeout := time.After(5 * time.Second)
			for len(found) < n-1 {
				select {
				case info := <-p.Infos:
					found[info.Name] = info.Address
				case <-timeout:
					fatal <- fmt.Errorf("%w: node %d found only %v", errNoMulticast, i, found)
					return
				}
			}
			for j := range n {
				address, ok := found[fmt.Sprint(j)]
				if i == j {
					if ok {
						fatal <- fmt.Errorf("node %d found itself", i)
						return
					}
					continue
				}
				if address != fmt.Sprintf("127.0.0.1:%d", 5000+j) {
					fatal <- fmt.Errorf("node %d found %d at %q", i, j, address)
					return
				}
			}
			fatal <- nil
		}()
	}
	for range n {
		if err := <-fatal; err != nil {
			if errors.Is(err, errNoMulticast) {
				t.Skip(err)
			}
			t.Fatal(err)
		}
	}
}
