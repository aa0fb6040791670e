package main

import (
	"errors"
	"flag"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and the physics overlay")
	seed := flag.Uint64("seed", 0, "seed for bullet spread (0 picks a random one)")
	arenaName := flag.String("arena", "training", "arena layout in prefabs/ (basename, .yaml optional)")
	players := flag.Int("players", 1, "number of players, 1 or 2")
	prefabDir := flag.String("prefabs", "", "directory whose prefabs override the embedded ones; watched for changes")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *prefabDir != "" {
		prefabs.SetDiskRoot(*prefabDir)
	}
	if *seed == 0 {
		*seed = rand.Uint64()
	}
	slog.Info("starting", "arena", *arenaName, "players", *players, "seed", *seed)

	game, err := NewGame(Config{
		Arena:    *arenaName,
		Players:  *players,
		Seed:     *seed,
		Debug:    *debug,
		WatchDir: *prefabDir,
	})
	if err != nil {
		slog.Error("start game", "err", err)
		os.Exit(1)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth*2, common.BaseHeight*2)
	ebiten.SetWindowTitle("topdown")
	// The crosshair replaces the OS cursor.
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("run game", "err", err)
		os.Exit(1)
	}
}
