package application

//go:generate mockgen -package=mocks -destination=mocks/mock_transport.go github.com/luca-patrignani/cards-against/application Transport

import "github.com/luca-patrignani/cards-against/domain/player"

// Transport is the peer mesh. Implementations must deliver the messages
// sent to a peer in the order they were sent, and must not call the
// callbacks concurrently for the same peer.
type Transport interface {
	// Broadcast sends data to every connected peer.
	Broadcast(data []byte) error
	// Send sends data to a single peer.
	Send(to player.Player, data []byte) error
	OnPeerConnected(func(p player.Player))
	OnPeerDisconnected(func(p player.Player))
	OnMessage(func(from player.Player, data []byte))
}
