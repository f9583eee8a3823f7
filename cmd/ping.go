package main

import (
	"log/slog"
	"time"

	"go.dedis.ch/protobuf"

	"github.com/luca-patrignani/cards-against/discovery"
)

// Pinger announces this player on the local network and reports every
// other player it hears about once.
type Pinger struct {
	Infos    chan Info
	discover *discovery.Discover
	logger   *slog.Logger
	done     chan struct{}
}

// Info is what a player announces: its name and the address its mesh
// listens on.
type Info struct {
	Name    string
	Address string
}

func NewPinger(info Info, port uint16, intervalBetweenPings time.Duration, logger *slog.Logger) (*Pinger, error) {
	encoded, err := protobuf.Encode(&info)
	if err != nil {
		return nil, err
	}
	discover := discovery.Discover{
		Info:                         encoded,
		Port:                         port,
		IntervalBetweenAnnouncements: intervalBetweenPings,
		Logger:                       logger,
	}
	p := Pinger{
		Infos:    make(chan Info),
		discover: &discover,
		logger:   logger,
		done:     make(chan struct{}),
	}
	return &p, nil
}

func (p *Pinger) Start() error {
	if err := p.discover.Start(); err != nil {
		return err
	}
	go func() {
		defer close(p.Infos)
		seen := map[Info]time.Time{}
		for entry := range p.discover.Entries {
			info, err := decodeInfo(entry.Info)
			if err != nil {
				p.logger.Debug("ignoring announcement", "error", err)
				continue
			}
			if _, ok := seen[info]; ok {
				continue
			}
			seen[info] = entry.Time
			select {
			case p.Infos <- info:
			case <-p.done:
				return
			}
		}
	}()
	return nil
}

// Close stops announcing. Infos is closed afterwards.
func (p *Pinger) Close() error {
	close(p.done)
	return p.discover.Close()
}

func decodeInfo(data []byte) (Info, error) {
	info := Info{}
	if err := protobuf.Decode(data, &info); err != nil {
		return Info{}, err
	}
	return info, nil
}
