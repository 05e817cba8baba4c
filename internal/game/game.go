// Package game runs the navigation simulation: a set of independent bots,
// each a full player character talking to its own loopback map server.
package game

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-nav/internal/config"
	"github.com/Faultbox/midgard-nav/internal/game/dialect"
	"github.com/Faultbox/midgard-nav/internal/game/player"
	"github.com/Faultbox/midgard-nav/internal/game/world"
	"github.com/Faultbox/midgard-nav/internal/logger"
	"github.com/Faultbox/midgard-nav/pkg/grf"
)

// ErrNoWalkableTile is returned when a map has nowhere to stand.
var ErrNoWalkableTile = errors.New("no walkable tile")

// Game is the simulation instance.
type Game struct {
	cfg      *config.Config
	maps     *world.Manager
	profile  dialect.Profile
	settings player.Settings
	log      *zap.Logger
}

// New prepares a simulation: resolves the dialect and settings and loads
// or builds the map.
func New(cfg *config.Config) (*Game, error) {
	profile, err := dialect.ForName(cfg.Server.Dialect)
	if err != nil {
		return nil, fmt.Errorf("resolving dialect: %w", err)
	}
	settings, err := player.SettingsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	g := &Game{
		cfg:      cfg,
		maps:     world.NewManager(),
		profile:  profile,
		settings: settings,
		log:      logger.Named("navsim"),
	}
	g.maps.OnChange(func(_, current *world.TileMap) {
		g.log.Info("map loaded",
			zap.String("name", current.Name()),
			zap.Int("width", current.Width()),
			zap.Int("height", current.Height()))
	})

	if err := g.loadMap(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) loadMap() error {
	m := g.cfg.Map
	if m.GRFPath != "" {
		arch, err := grf.Open(m.GRFPath)
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer arch.Close()
		return g.maps.LoadFromArchive(arch, m.Name)
	}
	if m.GATPath != "" {
		name := strings.TrimSuffix(filepath.Base(m.GATPath), filepath.Ext(m.GATPath))
		return g.maps.LoadGAT(name, m.GATPath)
	}

	tm, err := world.NewTileMap("open", m.Width, m.Height)
	if err != nil {
		return fmt.Errorf("building open map: %w", err)
	}
	if m.Border {
		for x := 0; x < m.Width; x++ {
			tm.Block(x, 0, world.BlockWall)
			tm.Block(x, m.Height-1, world.BlockWall)
		}
		for y := 0; y < m.Height; y++ {
			tm.Block(0, y, world.BlockWall)
			tm.Block(m.Width-1, y, world.BlockWall)
		}
	}
	g.maps.Set(tm)
	return nil
}

// Map returns the shared base map. Bots work on clones.
func (g *Game) Map() *world.TileMap { return g.maps.Current() }

// Run starts every bot on its own goroutine and waits for them. The
// first failing bot cancels the rest.
func (g *Game) Run(ctx context.Context) ([]Summary, error) {
	n := g.cfg.Sim.Bots
	summaries := make([]Summary, n)

	g.log.Info("starting simulation",
		zap.Int("bots", n),
		zap.Int("ticks", g.cfg.Sim.Ticks),
		zap.Stringer("dialect", g.profile),
		zap.Stringer("crazy_move", g.settings.CrazyMove),
		zap.Bool("automation", g.settings.Automation))

	eg, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			b, err := g.newBot(i)
			if err != nil {
				return err
			}
			s, err := b.run(ctx, g.cfg.Sim.Ticks, g.cfg.Sim.TickRate)
			summaries[i] = s
			g.log.Info("bot finished",
				zap.Int("bot", i),
				zap.Int("ticks", s.Ticks),
				zap.Stringer("start", s.Start),
				zap.Stringer("final", s.Final),
				zap.Int("walked", s.Walked),
				zap.Int("moves", s.Moves),
				zap.Int("attacks", s.Attacks),
				zap.Int("kills", s.Kills),
				zap.Int("pickups", s.Pickups))
			return err
		})
	}

	if err := eg.Wait(); err != nil {
		return summaries, fmt.Errorf("simulation: %w", err)
	}
	return summaries, nil
}
