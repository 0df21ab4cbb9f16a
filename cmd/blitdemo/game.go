package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/font"
	"github.com/gogpu/blit/input"
	"github.com/gogpu/blit/mixer"
)

const (
	screenWidth  = 320
	screenHeight = 240

	playerSpeed = 4
	blockSpeed  = 2
	blockSize   = 16
	spawnEvery  = 24
	lives       = 3
)

var (
	background = blit.ColorName("NAVY")
	blockColor = blit.ColorName("YELLOW")
	overColor  = blit.ColorRGBA(0, 0, 0, 160)
)

// sprites are the images the game blits. Any of them may still be
// decoding; blits of images that are not ready are skipped.
type sprites struct {
	player *blit.Image
	block  *blit.Image
}

// sounds are optional; nil entries stay silent.
type sounds struct {
	hit   *mixer.Sound
	music *mixer.Music
}

type game struct {
	screen *blit.Surface
	keys   input.Pressed
	font   *font.Font
	rng    *rand.Rand
	img    sprites
	sfx    sounds

	player blit.Rect
	blocks []blit.Rect
	tick   int
	score  int
	missed int

	label     *blit.Surface
	labelText string
	overMsg   *blit.Surface
}

func newGame(screen *blit.Surface, keys input.Pressed, f *font.Font, rng *rand.Rand) *game {
	g := &game{
		screen: screen,
		keys:   keys,
		font:   f,
		rng:    rng,
	}
	g.reset()
	return g
}

func (g *game) reset() {
	g.player = blit.NewRect(0, 0, 48, 12)
	g.player.SetTopLeft(float64(screenWidth-48)/2, screenHeight-24)
	g.blocks = g.blocks[:0]
	g.tick = 0
	g.score = 0
	g.missed = 0
}

func (g *game) over() bool {
	return g.missed >= lives
}

// step advances the game by one frame and draws it.
func (g *game) step() error {
	if g.keys.Get(input.KeyEscape) {
		return blit.ErrQuit
	}
	if g.over() {
		if g.keys.Get(input.KeySpace) {
			g.reset()
		}
		return g.draw()
	}

	g.update()
	return g.draw()
}

func (g *game) update() {
	x, y := g.player.TopLeft()
	if g.keys.Get(input.KeyLeft) {
		x -= playerSpeed
	}
	if g.keys.Get(input.KeyRight) {
		x += playerSpeed
	}
	x = min(max(x, 0), screenWidth-g.player.W)
	g.player.SetTopLeft(x, y)

	if g.tick%spawnEvery == 0 {
		bx := float64(g.rng.IntN(screenWidth - blockSize))
		g.blocks = append(g.blocks, blit.NewRect(bx, -blockSize, blockSize, blockSize))
	}
	g.tick++

	kept := g.blocks[:0]
	for _, b := range g.blocks {
		b = b.Move(0, blockSpeed)
		switch {
		case b.Colliderect(g.player):
			g.score++
			g.play(g.sfx.hit)
		case b.Y > screenHeight:
			g.missed++
		default:
			kept = append(kept, b)
		}
	}
	g.blocks = kept
}

func (g *game) play(s *mixer.Sound) {
	if s == nil {
		return
	}
	if err := s.Play(); err != nil {
		blit.Logger().Warn("play sound", "path", s.Path(), "err", err)
	}
}

func (g *game) draw() error {
	g.screen.Fill(blit.MustColor(background))

	for _, b := range g.blocks {
		if err := blit.DrawRect(g.screen, blockColor, b); err != nil {
			return err
		}
		g.screen.Blit(g.img.block, blit.Into(b))
	}

	if err := blit.DrawRect(g.screen, blit.Green, g.player); err != nil {
		return err
	}
	g.screen.Blit(g.img.player, blit.At(g.player.TopLeft()))

	if err := g.drawScore(); err != nil {
		return err
	}

	if g.over() {
		if err := blit.DrawRect(g.screen, overColor, blit.Box{0, 0, screenWidth, screenHeight}); err != nil {
			return err
		}
		if g.overMsg == nil {
			msg, err := g.font.Render("GAME OVER - space", true, blit.Red)
			if err != nil {
				return err
			}
			g.overMsg = msg
		}
		g.screen.Blit(g.overMsg, blit.At(float64(screenWidth-g.overMsg.Width())/2, screenHeight/2))
	}
	return nil
}

func (g *game) drawScore() error {
	text := fmt.Sprintf("Score: %d  Lives: %d", g.score, lives-g.missed)
	if g.label == nil || g.labelText != text {
		label, err := g.font.Render(text, true, blit.White)
		if err != nil {
			return err
		}
		if g.label != nil {
			_ = g.label.Close()
		}
		g.label, g.labelText = label, text
	}
	g.screen.Blit(g.label, blit.At(4, 4))
	return nil
}
