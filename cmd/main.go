package main

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/luca-patrignani/cards-against/application"
	"github.com/luca-patrignani/cards-against/catalog"
	"github.com/luca-patrignani/cards-against/domain/player"
	"github.com/luca-patrignani/cards-against/domain/round"
	"github.com/luca-patrignani/cards-against/network"
)

const releaseVersion = "0.1.0"

const (
	actionRefresh = "Refresh"
	actionWait    = "Wait for the others"
	actionConnect = "Connect to a player"
	actionStart   = "Start the game"
	actionPlace   = "Place a card"
	actionRetract = "Take back the last card"
	actionVote    = "Vote for the best answer"
	actionTie     = "Break the tie"
	actionStats   = "Scores and history"
	actionQuit    = "End the game"
	actionLeave   = "Leave"
)

func main() {
	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}

func newLogger(verbose bool) *slog.Logger {
	level := pterm.LogLevelInfo
	if verbose {
		level = pterm.LogLevelDebug
	}
	return slog.New(pterm.NewSlogHandler(pterm.DefaultLogger.WithLevel(level)))
}

func meshOptions(cfg *Config, logger *slog.Logger) ([]network.MeshOption, error) {
	opts := []network.MeshOption{network.WithLogger(logger)}
	if cfg.tlsCert == "" {
		return opts, nil
	}
	cert, err := tls.LoadX509KeyPair(cfg.tlsCert, cfg.tlsKey)
	if err != nil {
		return nil, err
	}
	pem, err := os.ReadFile(cfg.tlsCA)
	if err != nil {
		return nil, err
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificate found in %s", cfg.tlsCA)
	}
	return append(opts, network.WithCertificate(cert), network.WithLimitedCAs(pool)), nil
}

func run(ctx context.Context, cfg *Config) error {
	logger := newLogger(cfg.verbose)

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("C", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("ards ", pterm.FgDarkGray.ToStyle()),
		putils.LettersFromStringWithStyle("A", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("gainst", pterm.FgDarkGray.ToStyle()),
	).Render()

	name := cfg.name
	for name == "" {
		name, _ = pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your username").Show()
		name = strings.TrimSpace(name)
		pterm.Println()
	}
	local, err := player.New(name)
	if err != nil {
		return err
	}
	pterm.Info.Printfln("Your username: %s", local.Name)

	cards, err := catalog.Load(cfg.dataset)
	if err != nil {
		return fmt.Errorf("loading dataset %s: %w", cfg.dataset, err)
	}

	l, err := net.Listen("tcp", net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port)))
	if err != nil {
		logger.Error("failed to listen on address", "address", cfg.bind, "error", err)
		return err
	}
	tcpAddr := l.Addr().(*net.TCPAddr)
	ip, err := localIP(tcpAddr.IP)
	if err != nil {
		_ = l.Close()
		return err
	}
	address := net.JoinHostPort(ip.String(), strconv.Itoa(tcpAddr.Port))

	opts, err := meshOptions(cfg, logger)
	if err != nil {
		_ = l.Close()
		return err
	}
	mesh := network.NewMesh(local, opts...)
	defer mesh.Close()

	game, err := application.New(local, cards, mesh,
		application.WithHandSize(cfg.handSize),
		application.WithLogger(logger),
	)
	if err != nil {
		_ = l.Close()
		return err
	}
	// The game has to be listening to the mesh before the first link.
	mesh.Serve(l)

	pterm.Info.Printfln("Listening on %s", address)
	if qr, err := qrcode.New(address, qrcode.Medium); err == nil {
		pterm.DefaultBox.WithTitle("Scan to join").Println(qr.ToSmallString(false))
	} else {
		logger.Debug("no qr code", "error", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stopped := make(chan error, 1)
	go func() {
		stopped <- game.Run(ctx)
	}()

	pinger, err := NewPinger(Info{Name: local.Name, Address: address}, uint16(cfg.discoveryPort), cfg.announceInterval, logger)
	if err != nil {
		return err
	}
	if err := pinger.Start(); err != nil {
		logger.Warn("discovery unavailable, connect to the other players by address", "error", err)
	} else {
		defer pinger.Close()
		go func() {
			for info := range pinger.Infos {
				if info.Name == local.Name {
					continue
				}
				connect(ctx, mesh, info.Address, logger)
			}
		}()
	}
	for _, addr := range cfg.peers {
		typed, err := peerAddress(ip, addr, tcpAddr.Port)
		if err != nil {
			logger.Error(err.Error())
			continue
		}
		connect(ctx, mesh, typed, logger)
	}

	err = play(ctx, game, mesh, ip, tcpAddr.Port, logger)
	cancel()
	if runErr := <-stopped; runErr != nil && !errors.Is(runErr, context.Canceled) {
		err = errors.Join(err, runErr)
	}
	return err
}

func connect(ctx context.Context, mesh *network.Mesh, address string, logger *slog.Logger) {
	peer, err := mesh.Dial(ctx, address)
	if err != nil {
		logger.Warn("could not connect", "address", address, "error", err)
		return
	}
	logger.Info("connected", "player", peer.Name, "address", address)
}

// actions lists what the local player can do in v.
func actions(v application.View) []string {
	switch {
	case v.Ended:
		return []string{actionStats, actionLeave}
	case !v.Started:
		return []string{actionRefresh, actionConnect, actionStart, actionLeave}
	}
	var opts []string
	r := v.Round
	switch r.Phase {
	case round.PickingCard:
		opts = append(opts, actionPlace)
		if len(r.Placed) > 0 {
			opts = append(opts, actionRetract)
		}
	case round.WaitingForOthers:
		opts = append(opts, actionWait, actionRetract)
	case round.PickingWinner:
		if v.TieBreak {
			opts = append(opts, actionTie)
		}
		if !r.Voted {
			opts = append(opts, actionVote)
		} else if !v.TieBreak {
			opts = append(opts, actionWait)
		}
	}
	return append(opts, actionRefresh, actionStats, actionQuit)
}

func play(ctx context.Context, game *application.Game, mesh *network.Mesh, ip net.IP, port int, logger *slog.Logger) error {
	var notes []string
	for {
		notes = append(notes, drainNotices(game)...)
		if len(notes) > 5 {
			notes = notes[len(notes)-5:]
		}
		v := game.Snapshot()
		printState(v, notes)

		choice, _ := pterm.DefaultInteractiveSelect.WithDefaultText("Select your next action").WithOptions(actions(v)).Show()
		var err error
		switch choice {
		case actionRefresh:
		case actionWait:
			if note, ok := waitForNotice(ctx, game); ok {
				notes = append(notes, note)
			}
		case actionConnect:
			typed, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter the address in ipaddr:port format").Show()
			pterm.Println()
			addr, perr := peerAddress(ip, typed, port)
			if perr != nil {
				logger.Error(perr.Error())
				continue
			}
			host, _, _ := net.SplitHostPort(addr)
			if subnet, serr := subnetOf(ip); serr == nil && !subnet.Contains(net.ParseIP(host)) {
				logger.Warn("address is outside the local network", "address", addr, "subnet", subnet.String())
			}
			connect(ctx, mesh, addr, logger)
		case actionStart:
			err = game.Start(ctx)
		case actionPlace:
			err = placeCard(ctx, game, v)
		case actionRetract:
			err = game.Retract(ctx)
		case actionVote:
			err = vote(ctx, game, v)
		case actionTie:
			err = breakTie(ctx, game, v)
		case actionStats:
			printStats(v)
		case actionQuit:
			confirm, _ := pterm.DefaultInteractiveConfirm.WithDefaultText("End the game for everyone?").WithDefaultValue(false).Show()
			if confirm {
				err = game.Quit(ctx)
			}
		case actionLeave:
			return nil
		}
		if errors.Is(err, application.ErrStopped) || ctx.Err() != nil {
			return err
		}
		if err != nil {
			pterm.Error.Printfln("Invalid action: %s", err.Error())
		}
	}
}

func drainNotices(game *application.Game) []string {
	var notes []string
	local := game.Local()
	for {
		select {
		case e := <-game.Notices():
			if note, ok := describe(e, local); ok {
				notes = append(notes, note)
			}
		default:
			return notes
		}
	}
}

func waitForNotice(ctx context.Context, game *application.Game) (string, bool) {
	spinner, _ := pterm.DefaultSpinner.Start("Waiting for the other players ...")
	for {
		select {
		case <-ctx.Done():
			spinner.Fail()
			return "", false
		case e := <-game.Notices():
			if note, ok := describe(e, game.Local()); ok {
				spinner.Success(note)
				return note, true
			}
		}
	}
}

func placeCard(ctx context.Context, game *application.Game, v application.View) error {
	options := make([]string, len(v.Round.Hand))
	for i, c := range v.Round.Hand {
		options[i] = pterm.Sprintf("%2d. %s", i+1, c.Content)
	}
	selected, _ := pterm.DefaultInteractiveSelect.WithDefaultText(promptText(v.Round)).WithOptions(options).WithMaxHeight(12).Show()
	index := indexOf(options, selected)
	if index < 0 {
		return nil
	}
	return game.Place(ctx, index)
}

func vote(ctx context.Context, game *application.Game, v application.View) error {
	options := make([]string, len(v.Round.Answers))
	for i, a := range v.Round.Answers {
		options[i] = pterm.Sprintf("%d. %s", i+1, a.Content.String())
	}
	selected, _ := pterm.DefaultInteractiveSelect.WithDefaultText("Which answer wins " + roundTitle(v.Round) + "?").WithOptions(options).Show()
	index := indexOf(options, selected)
	if index < 0 {
		return nil
	}
	return game.Vote(ctx, v.Round.Answers[index].Sender)
}

func breakTie(ctx context.Context, game *application.Game, v application.View) error {
	counts := round.Count(v.Round.Votes)
	best := 0
	for _, n := range counts {
		best = max(best, n)
	}
	var candidates []round.Answer
	for _, a := range v.Round.Answers {
		if counts[a.Sender] == best {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		candidates = v.Round.Answers
	}
	options := make([]string, len(candidates))
	for i, a := range candidates {
		options[i] = pterm.Sprintf("%s (%s)", a.Content.String(), round.VoteCountString(counts[a.Sender]))
	}
	selected, _ := pterm.DefaultInteractiveSelect.WithDefaultText("The vote is tied, pick the winner").WithOptions(options).Show()
	index := indexOf(options, selected)
	if index < 0 {
		return nil
	}
	return game.ResolveTie(ctx, candidates[index].Sender)
}

func indexOf(options []string, selected string) int {
	for i, o := range options {
		if o == selected {
			return i
		}
	}
	return -1
}
