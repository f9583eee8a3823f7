package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"github.com/luca-patrignani/cards-against/domain/player"
)

// PlayerHeader carries the player name in both directions of the
// handshake: as a query parameter of the dial and as a response header of
// the upgrade.
const PlayerHeader = "X-Cards-Player"

var (
	ErrNotConnected = errors.New("peer not connected")
	ErrSlowPeer     = errors.New("peer is not keeping up")
	ErrClosed       = errors.New("mesh closed")

	errAlreadyLinked = errors.New("already linked")
)

// link is one websocket connection to a peer. The connection has a single
// writer goroutine fed by send and a single reader goroutine.
type link struct {
	peer   player.Player
	dialer player.Player
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once
}

func (l *link) close() {
	l.once.Do(func() {
		close(l.done)
		_ = l.conn.Close()
	})
}

// Mesh is a fully connected set of websocket links to the other players.
// It accepts links on its listener and dials the addresses it is given.
type Mesh struct {
	Local    player.Player
	settings meshSettings
	server   *http.Server
	upgrader websocket.Upgrader
	dialer   *websocket.Dialer

	mu             sync.RWMutex
	links          map[player.Player]*link
	closed         bool
	onConnected    func(player.Player)
	onDisconnected func(player.Player)
	onMessage      func(player.Player, []byte)

	wg sync.WaitGroup
}

// NewMesh creates the mesh of local. Links are accepted once Serve is
// called.
func NewMesh(local player.Player, opts ...MeshOption) *Mesh {
	s := defaultMeshSettings()
	for _, opt := range opts {
		s = opt(s)
	}
	m := &Mesh{
		Local:    local,
		settings: s,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: s.timeout,
			CheckOrigin:      func(*http.Request) bool { return true },
		},
		dialer: &websocket.Dialer{
			HandshakeTimeout: s.timeout,
			TLSClientConfig:  s.tlsConfig,
		},
		links:          make(map[player.Player]*link),
		onConnected:    func(player.Player) {},
		onDisconnected: func(player.Player) {},
		onMessage:      func(player.Player, []byte) {},
	}
	router := httprouter.New()
	router.GET("/mesh", m.accept)
	router.GET("/healthz", m.health)
	m.server = &http.Server{Handler: router}
	return m
}

// Serve accepts links on l until Close is called.
func (m *Mesh) Serve(l net.Listener) {
	if m.settings.tlsConfig != nil {
		l = newTLSListener(l, m.settings.tlsConfig)
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.settings.logger.Error("mesh server stopped", "error", err)
		}
	}()
}

func (m *Mesh) OnPeerConnected(f func(player.Player)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onConnected = f
}

func (m *Mesh) OnPeerDisconnected(f func(player.Player)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDisconnected = f
}

func (m *Mesh) OnMessage(f func(player.Player, []byte)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onMessage = f
}

// Peers returns the players currently linked, sorted by name.
func (m *Mesh) Peers() []player.Player {
	m.mu.RLock()
	defer m.mu.RUnlock()
	peers := make([]player.Player, 0, len(m.links))
	for p := range m.links {
		peers = append(peers, p)
	}
	return player.Sorted(peers)
}

// Dial links to the mesh listening at address and returns the player found
// there. Dialing a player that is already linked is not an error.
func (m *Mesh) Dial(ctx context.Context, address string) (player.Player, error) {
	scheme := "ws"
	if m.settings.tlsConfig != nil {
		scheme = "wss"
	}
	u := url.URL{
		Scheme:   scheme,
		Host:     address,
		Path:     "/mesh",
		RawQuery: url.Values{PlayerHeader: {m.Local.Name}}.Encode(),
	}
	conn, resp, err := m.dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusConflict {
			if name := resp.Header.Get(PlayerHeader); name != m.Local.Name {
				return player.Player{Name: name}, nil
			}
			return player.Player{}, fmt.Errorf("dial %s: name %s already taken", address, m.Local.Name)
		}
		return player.Player{}, fmt.Errorf("dial %s: %w", address, err)
	}
	peer, err := player.New(resp.Header.Get(PlayerHeader))
	if err != nil {
		_ = conn.Close()
		return player.Player{}, fmt.Errorf("dial %s: %w", address, err)
	}
	if peer == m.Local {
		_ = conn.Close()
		return player.Player{}, fmt.Errorf("dial %s: reached ourselves", address)
	}
	if err := m.add(&link{peer: peer, dialer: m.Local, conn: conn}); err != nil && !errors.Is(err, errAlreadyLinked) {
		return player.Player{}, err
	}
	return peer, nil
}

func (m *Mesh) accept(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set(PlayerHeader, m.Local.Name)
	peer, err := player.New(r.URL.Query().Get(PlayerHeader))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if peer == m.Local {
		http.Error(w, "same name as this player", http.StatusConflict)
		return
	}
	m.mu.RLock()
	existing, linked := m.links[peer]
	m.mu.RUnlock()
	// Simultaneous dials are settled in favour of the link dialed by the
	// lower-sorting player; an accepted link is only kept if it wins.
	if linked && player.Compare(existing.dialer, peer) <= 0 {
		http.Error(w, "already linked", http.StatusConflict)
		return
	}
	conn, err := m.upgrader.Upgrade(w, r, http.Header{PlayerHeader: {m.Local.Name}})
	if err != nil {
		m.settings.logger.Warn("upgrade failed", "peer", peer.Name, "error", err)
		return
	}
	if err := m.add(&link{peer: peer, dialer: peer, conn: conn}); err != nil {
		m.settings.logger.Debug("link refused", "peer", peer.Name, "error", err)
	}
}

func (m *Mesh) health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set(PlayerHeader, m.Local.Name)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(m.Local.Name))
}

// add registers l and starts its goroutines. When a link to the same peer
// exists, the one dialed by the lower-sorting player survives.
func (m *Mesh) add(l *link) error {
	l.send = make(chan []byte, m.settings.queueSize)
	l.done = make(chan struct{})

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		l.close()
		return ErrClosed
	}
	existing, replacing := m.links[l.peer]
	if replacing && player.Compare(existing.dialer, l.dialer) <= 0 {
		m.mu.Unlock()
		l.close()
		return fmt.Errorf("%s: %w", l.peer.Name, errAlreadyLinked)
	}
	m.links[l.peer] = l
	onConnected := m.onConnected
	m.wg.Add(2)
	m.mu.Unlock()

	if replacing {
		existing.close()
	} else {
		m.settings.logger.Debug("peer linked", "peer", l.peer.Name)
		onConnected(l.peer)
	}
	go m.write(l)
	go m.read(l)
	return nil
}

// remove forgets l if it is still the link to its peer.
func (m *Mesh) remove(l *link) {
	l.close()
	m.mu.Lock()
	current, ok := m.links[l.peer]
	if !ok || current != l {
		m.mu.Unlock()
		return
	}
	delete(m.links, l.peer)
	onDisconnected := m.onDisconnected
	closed := m.closed
	m.mu.Unlock()
	m.settings.logger.Debug("peer unlinked", "peer", l.peer.Name)
	if !closed {
		onDisconnected(l.peer)
	}
}

func (m *Mesh) write(l *link) {
	defer m.wg.Done()
	defer m.remove(l)
	for {
		select {
		case <-l.done:
			return
		case data := <-l.send:
			if err := l.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				m.settings.logger.Debug("write failed", "peer", l.peer.Name, "error", err)
				return
			}
		}
	}
}

func (m *Mesh) read(l *link) {
	defer m.wg.Done()
	defer m.remove(l)
	for {
		kind, data, err := l.conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.BinaryMessage {
			continue
		}
		m.mu.RLock()
		current := m.links[l.peer] == l
		onMessage := m.onMessage
		m.mu.RUnlock()
		if current {
			onMessage(l.peer, data)
		}
	}
}

// Send queues data for to.
func (m *Mesh) Send(to player.Player, data []byte) error {
	m.mu.RLock()
	l, ok := m.links[to]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotConnected, to.Name)
	}
	return m.enqueue(l, data)
}

// Broadcast queues data for every linked peer.
func (m *Mesh) Broadcast(data []byte) error {
	m.mu.RLock()
	links := make([]*link, 0, len(m.links))
	for _, l := range m.links {
		links = append(links, l)
	}
	m.mu.RUnlock()
	var errs []error
	for _, l := range links {
		if err := m.enqueue(l, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Mesh) enqueue(l *link, data []byte) error {
	select {
	case l.send <- data:
		return nil
	case <-l.done:
		return fmt.Errorf("%w: %s", ErrNotConnected, l.peer.Name)
	default:
		m.remove(l)
		return fmt.Errorf("%w: %s", ErrSlowPeer, l.peer.Name)
	}
}

// Close stops accepting links, drops every link and waits for the mesh
// goroutines to return.
func (m *Mesh) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	links := make([]*link, 0, len(m.links))
	for _, l := range m.links {
		links = append(links, l)
	}
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), m.settings.timeout)
	defer cancel()
	err := m.server.Shutdown(ctx)
	for _, l := range links {
		l.close()
	}
	m.wg.Wait()
	return err
}

// CreateListeners opens n listeners on free localhost ports.
func CreateListeners(n int) ([]net.Listener, []string) {
	listeners := make([]net.Listener, n)
	addresses := make([]string, n)
	for i := range n {
		l, err := net.Listen("tcp", "localhost:0")
		if err != nil {
			panic(err)
		}
		listeners[i] = l
		addresses[i] = l.Addr().String()
	}
	return listeners, addresses
}
