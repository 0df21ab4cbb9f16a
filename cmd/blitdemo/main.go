// Command blitdemo is a small catch-the-blocks game built on blit.
//
// It runs in a window by default, in the terminal with -term, or
// headless with -output, which simulates a number of frames and saves the
// last one as a PNG.
package main

import (
	"context"
	"embed"
	"flag"
	"io/fs"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/font"
	"github.com/gogpu/blit/host/ebitenhost"
	"github.com/gogpu/blit/host/termhost"
	"github.com/gogpu/blit/input"
	"github.com/gogpu/blit/mixer"
	"github.com/gogpu/blit/mixer/beepaudio"
	"github.com/gogpu/blit/mixer/ebitenaudio"
)

//go:embed assets
var embedded embed.FS

type config struct {
	assets   fs.FS
	dims     blit.Dimensions
	seed     uint64
	mute     bool
	fontSize float64
}

func main() {
	var (
		term     = flag.Bool("term", false, "run in the terminal")
		output   = flag.String("output", "", "render headless and save the last frame to this PNG file")
		frames   = flag.Int("frames", 180, "frames to simulate with -output")
		scale    = flag.Int("scale", 2, "window scale")
		touch    = flag.Bool("touch", false, "on-screen buttons respond to touch instead of the mouse")
		assetDir = flag.String("assets", "", "asset directory (default: built in)")
		manifest = flag.String("manifest", "", "asset manifest (default: assets.yaml in the asset directory)")
		mute     = flag.Bool("mute", false, "disable audio")
		seed     = flag.Uint64("seed", 1, "random seed")
		verbose  = flag.Bool("v", false, "log to stderr")
	)
	flag.Parse()

	if *verbose {
		blit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	assets, err := openAssets(*assetDir)
	if err != nil {
		log.Fatalf("Failed to open assets: %v", err)
	}
	dims, err := loadDimensions(assets, *manifest)
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}
	cfg := config{assets: assets, dims: dims, seed: *seed, mute: *mute, fontSize: 24}

	switch {
	case *output != "":
		err = runHeadless(cfg, *frames, *output)
	case *term:
		err = runTerm(cfg)
	default:
		err = runWindow(cfg, *scale, *touch)
	}
	if err != nil {
		log.Fatalf("blitdemo: %v", err)
	}
}

func openAssets(dir string) (fs.FS, error) {
	if dir != "" {
		return os.DirFS(dir), nil
	}
	return fs.Sub(embedded, "assets")
}

func loadDimensions(assets fs.FS, manifest string) (blit.Dimensions, error) {
	if manifest != "" {
		return blit.LoadManifestFile(manifest)
	}
	f, err := assets.Open("assets.yaml")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return blit.LoadManifest(f)
}

// session is one game wired to a window, key table and mixer.
type session struct {
	game   *game
	loader *blit.Loader
	mixer  *mixer.Mixer
}

func newSession(cfg config, w blit.Window, keys input.Pressed, audio mixer.Backend) (*session, error) {
	display := blit.NewDisplay(w)
	display.SetCaption("blit demo")
	screen, err := display.SetMode(screenWidth, screenHeight)
	if err != nil {
		return nil, err
	}

	f, err := font.New("", cfg.fontSize)
	if err != nil {
		return nil, err
	}

	s := &session{
		game:   newGame(screen, keys, f, rand.New(rand.NewPCG(cfg.seed, cfg.seed))),
		loader: blit.NewLoader(blit.WithDecoder(blit.NewFSDecoder(cfg.assets))),
	}
	s.loader.Init(cfg.dims)
	if s.game.img.player, err = s.loader.Load("images/player.png"); err != nil {
		return nil, err
	}
	if s.game.img.block, err = s.loader.Load("images/block.png"); err != nil {
		return nil, err
	}

	if audio != nil && !cfg.mute {
		s.openAudio(audio)
	}
	display.Update()
	return s, nil
}

// openAudio loads the sounds. Audio is optional: failures are logged and
// the game stays silent.
func (s *session) openAudio(b mixer.Backend) {
	s.mixer = mixer.New(b)

	hit, err := s.mixer.LoadSound("sounds/hit.wav")
	if err != nil {
		blit.Logger().Warn("audio disabled", "err", err)
		return
	}
	s.game.sfx.hit = hit

	music, err := s.mixer.LoadMusic("sounds/music.wav")
	if err != nil {
		blit.Logger().Warn("music disabled", "err", err)
		return
	}
	s.game.sfx.music = music
	music.Play(mixer.Loop)
}

func (s *session) close() {
	if s.mixer != nil {
		_ = s.mixer.StopMusic()
		_ = s.mixer.Close()
	}
	_ = s.game.font.Close()
}

func runWindow(cfg config, scale int, touch bool) error {
	h := ebitenhost.New(
		ebitenhost.WithScale(scale),
		ebitenhost.WithTouch(touch),
		ebitenhost.WithButton("btnleft", blit.NewRect(0, screenHeight-40, 60, 40)),
		ebitenhost.WithButton("btnspc", blit.NewRect((screenWidth-60)/2, screenHeight-40, 60, 40)),
		ebitenhost.WithButton("btnright", blit.NewRect(screenWidth-60, screenHeight-40, 60, 40)),
	)
	keys := input.New(h)

	s, err := newSession(cfg, h, keys.GetPressed(), ebitenaudio.New(ebitenaudio.WithFS(cfg.assets)))
	if err != nil {
		return err
	}
	defer s.close()

	return h.Run(s.game.step)
}

func runTerm(cfg config) error {
	h := termhost.New()
	keys := input.New(h)

	s, err := newSession(cfg, h, keys.GetPressed(), beepaudio.New(beepaudio.WithFS(cfg.assets)))
	if err != nil {
		return err
	}
	defer s.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return h.Run(ctx, s.game.step)
}

func runHeadless(cfg config, frames int, output string) error {
	w := blit.NewHeadlessWindow()
	keys := input.NewState()

	s, err := newSession(cfg, w, keys.GetPressed(), nil)
	if err != nil {
		return err
	}
	defer s.close()
	s.loader.Wait()

	for i := 0; i < frames; i++ {
		steer(keys, i)
		if err := s.game.step(); err != nil {
			return err
		}
	}

	if err := s.game.screen.SavePNG(output); err != nil {
		return err
	}
	log.Printf("Frame saved to %s (%dx%d), score %d\n", output, screenWidth, screenHeight, s.game.score)
	return nil
}

// steer sweeps the paddle left and right in the headless run.
func steer(keys *input.State, frame int) {
	if (frame/40)%2 == 0 {
		keys.Release(input.KeyLeft)
		keys.Press(input.KeyRight)
	} else {
		keys.Release(input.KeyRight)
		keys.Press(input.KeyLeft)
	}
}
