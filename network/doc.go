// Package network links the players of a table with websockets.
//
// # Core Components
//
// Mesh: one websocket link per peer, accepted on /mesh of the local HTTP
// server or dialed by address. The player names are exchanged during the
// upgrade, so a link is bound to a player from its first message.
//
// # Ordering
//
// Every link has a single writer and a single reader goroutine, so the
// messages sent to a peer arrive in the order they were sent. Messages
// from different peers are not ordered with respect to each other.
//
// # Duplicate Links
//
// Two players dialing each other at the same time end up with a single
// link: the one dialed by the lower-sorting player.
//
// # TLS
//
// WithCertificate and WithLimitedCAs switch the mesh to wss with mutual
// authentication against a shared pool of certificates.
package network
