package main

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
	"github.com/milk9111/topdown/ecs/system"
	"github.com/milk9111/topdown/prefabs"
	"golang.org/x/image/font/basicfont"
)

type Config struct {
	Arena    string
	Players  int
	Seed     uint64
	Debug    bool
	WatchDir string
}

type Game struct {
	cfg    Config
	frames int

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	modifiers *system.ScriptModifiers
	arena     entity.Arena
	camera    camera

	input   *Input
	watcher *prefabs.Watcher

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
	face    ebtext.Face
}

func NewGame(cfg Config) (*Game, error) {
	if cfg.Players < 1 {
		cfg.Players = 1
	}
	g := &Game{
		cfg:       cfg,
		physics:   system.NewPhysicsSystem(),
		modifiers: system.NewScriptModifiers(),
		input:     NewInput(),
		face:      ebtext.NewGoXFace(basicfont.Face7x13),
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	g.scheduler = system.NewCombatScheduler(system.Config{
		Rand:      rng,
		Modifiers: g.modifiers,
		Physics:   g.physics,
	})

	if err := g.resetArena("start"); err != nil {
		return nil, err
	}

	if cfg.WatchDir != "" {
		watcher, err := prefabs.NewWatcher(cfg.WatchDir)
		if err != nil {
			slog.Warn("prefab hot reload disabled", "dir", cfg.WatchDir, "err", err)
		} else {
			g.watcher = watcher
		}
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

// resetArena swaps in a freshly built world. On failure the current world
// stays in play.
func (g *Game) resetArena(reason string) error {
	world := ecs.NewWorld()
	arena, err := entity.BuildArena(world, g.cfg.Arena, g.cfg.Players)
	if err != nil {
		return fmt.Errorf("reset arena: %w", err)
	}
	g.world = world
	g.arena = arena
	g.camera = newCamera(arena.Width, arena.Height)
	g.physics.Reset()
	slog.Info("arena reset", "arena", arena.Name, "reason", reason)
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	g.pollWatcher()
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.frames++
	g.input.Update(g.world, g.camera, g.cfg.Players)
	g.scheduler.Step(g.world, 1/float64(ebiten.TPS()))

	if e, ok := g.world.First(component.ArenaResetRequestComponent.Kind()); ok {
		reason := "requested"
		if req, ok := ecs.Get(g.world, e, component.ArenaResetRequestComponent.Kind()); ok && req.Reason != "" {
			reason = req.Reason
		}
		if err := g.resetArena(reason); err != nil {
			slog.Warn("arena reset failed", "err", err)
			ecs.DestroyEntity(g.world, e)
		}
	}
	return nil
}

// pollWatcher drains pending file changes without blocking. A script change
// drops the compiled item scripts; a YAML change also rebuilds the arena.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	var scripts, specs bool
	for drained := false; !drained; {
		select {
		case c, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			slog.Info("prefab changed", "file", c.Path, "kind", c.Kind)
			switch c.Kind {
			case prefabs.ChangeScript:
				scripts = true
			default:
				specs = true
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				slog.Warn("prefab watcher", "err", err)
			}
		default:
			drained = true
		}
	}
	if scripts || specs {
		g.modifiers.Invalidate()
	}
	if specs {
		clear(colorCache)
		entity.RequestArenaReset(g.world, "prefabs changed")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawWorld(screen, g.world, g.camera)
	if g.cfg.Debug {
		drawPhysicsDebug(screen, g.physics.Space(), g.camera)
	}
	drawHUD(screen, g.world, g.face, g.frames)

	if g.paused {
		g.pauseUI.Draw(screen)
		return
	}
	drawCrosshair(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// camera maps arena coordinates onto the logical screen, scaled to fit and
// centered.
type camera struct {
	zoom   float64
	offset common.Vec2
}

func newCamera(width, height float64) camera {
	if width <= 0 || height <= 0 {
		return camera{zoom: 1}
	}
	zoom := math.Min(common.BaseWidth/width, common.BaseHeight/height)
	return camera{
		zoom: zoom,
		offset: common.Vec2{
			X: (common.BaseWidth - width*zoom) / 2,
			Y: (common.BaseHeight - height*zoom) / 2,
		},
	}
}

func (c camera) toScreen(p common.Vec2) (float32, float32) {
	return float32(p.X*c.zoom + c.offset.X), float32(p.Y*c.zoom + c.offset.Y)
}

func (c camera) toWorld(sx, sy float64) common.Vec2 {
	return common.Vec2{X: (sx - c.offset.X) / c.zoom, Y: (sy - c.offset.Y) / c.zoom}
}
