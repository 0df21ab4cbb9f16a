// Package font renders text onto transparent blit surfaces.
//
// A Font couples two views of one OpenType file: golang.org/x/image draws
// the glyphs and go-text/typesetting shapes the string to measure it.
// Without a file the Go Regular face is used.
//
//	f, err := font.New("", 36)
//	label, err := f.Render("Score: 10", true, blit.White)
//	screen.Blit(label, blit.At(10, 10))
package font

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io/fs"
	"math"
	"os"
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/internal/cache"
)

const (
	// SizeScale converts a nominal font size to the pixel size glyphs are
	// drawn at.
	SizeScale = 0.65

	// baselineRatio places the baseline below the top of the surface,
	// relative to the pixel size.
	baselineRatio = 0.8

	// DefaultCacheSize is the number of rasterized strings a Font keeps.
	DefaultCacheSize = 64
)

// Errors returned by New.
var (
	ErrInvalidSize = errors.New("font: invalid size")
	ErrParse       = errors.New("font: parse")
)

// Font is a typeface at one size. It is safe for concurrent use.
type Font struct {
	source string
	size   float64

	sfnt  *opentype.Font
	shape *gotext.Font

	masks *cache.LRU[maskKey, *image.Alpha]

	mu   sync.Mutex
	face xfont.Face
	hb   shaping.HarfbuzzShaper
}

type maskKey struct {
	text      string
	antialias bool
}

// Option configures New.
type Option func(*options)

type options struct {
	fsys      fs.FS
	cacheSize int
}

// WithFS sets the file system font files are read from. The default is the
// working directory.
func WithFS(fsys fs.FS) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// WithCacheSize sets how many rasterized strings are kept for reuse.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// New loads the font file at source, or Go Regular when source is empty,
// at the nominal size. Glyphs are drawn at size*SizeScale pixels.
func New(source string, size float64, opts ...Option) (*Font, error) {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}

	o := options{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fsys == nil {
		o.fsys = os.DirFS(".")
	}

	data := goregular.TTF
	if source != "" {
		var err error
		if data, err = fs.ReadFile(o.fsys, source); err != nil {
			return nil, err
		}
	}
	return newFont(source, data, size*SizeScale, o.cacheSize)
}

// Parse returns a Font from font file data at the nominal size.
func Parse(data []byte, size float64) (*Font, error) {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	return newFont("", data, size*SizeScale, DefaultCacheSize)
}

func newFont(source string, data []byte, px float64, cacheSize int) (*Font, error) {
	sf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	face, err := opentype.NewFace(sf, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: xfont.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	gf, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		_ = face.Close()
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	blit.Logger().Debug("font: loaded", "source", source, "pixels", px)
	return &Font{
		source: source,
		size:   px,
		sfnt:   sf,
		shape:  gf.Font,
		face:   face,
		masks:  cache.New[maskKey, *image.Alpha](cacheSize),
	}, nil
}

// Source returns the file the font was loaded from, empty for the default.
func (f *Font) Source() string { return f.source }

// Size returns the pixel size glyphs are drawn at.
func (f *Font) Size() float64 { return f.size }

// Measure returns the shaped advance width of text in pixels.
func (f *Font) Measure(text string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.measure(norm.NFC.String(text))
}

// measure is called with f.mu held.
func (f *Font) measure(text string) float64 {
	if text == "" {
		return 0
	}
	runes := []rune(text)
	out := f.hb.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: direction(runes),
		Face:      gotext.NewFace(f.shape),
		Size:      fixed.Int26_6(f.size * 64),
		Script:    script(runes),
		Language:  language.NewLanguage("en"),
	})

	var adv fixed.Int26_6
	for _, g := range out.Glyphs {
		adv += g.Advance
	}
	return math.Abs(float64(adv) / 64)
}

// Render draws text in c onto a new transparent surface with the baseline
// at 0.8 of the pixel size. The surface is as wide as the text and
// ceil(Size()) tall. Without antialiasing every pixel is either fully
// covered or empty.
func (f *Font) Render(text string, antialias bool, c blit.Color) (*blit.Surface, error) {
	mask := f.Mask(text, antialias)

	b := mask.Bounds()
	s, err := blit.NewSurface(b.Dx(), b.Dy(), blit.WithAlpha())
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(b)
	draw.DrawMask(img, b, image.NewUniform(c), image.Point{}, mask, b.Min, draw.Src)
	s.DrawImage(img, 0, 0)
	return s, nil
}

// Mask returns the coverage of text, sized like the surface Render
// returns. Masks are cached and shared: callers must not modify them.
func (f *Font) Mask(text string, antialias bool) *image.Alpha {
	text = norm.NFC.String(text)
	return f.masks.GetOrCreate(maskKey{text, antialias}, func() *image.Alpha {
		return f.rasterize(text, antialias)
	})
}

func (f *Font) rasterize(text string, antialias bool) *image.Alpha {
	f.mu.Lock()
	defer f.mu.Unlock()

	w := xfont.MeasureString(f.face, text).Ceil()
	if shaped := int(math.Ceil(f.measure(text))); shaped > w {
		w = shaped
	}

	mask := image.NewAlpha(image.Rect(0, 0, max(w, 1), max(int(math.Ceil(f.size)), 1)))
	d := &xfont.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: f.face,
		Dot:  fixed.Point26_6{Y: fixed.Int26_6(math.Round(f.size * baselineRatio * 64))},
	}
	d.DrawString(text)

	if !antialias {
		for i, a := range mask.Pix {
			if a >= 0x80 {
				mask.Pix[i] = 0xff
			} else {
				mask.Pix[i] = 0
			}
		}
	}
	return mask
}

// Close releases the drawing face.
func (f *Font) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face.Close()
}

// direction is RTL when the first strong character is right-to-left.
func direction(runes []rune) di.Direction {
	for _, r := range runes {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.R, bidi.AL:
			return di.DirectionRTL
		case bidi.L:
			return di.DirectionLTR
		}
	}
	return di.DirectionLTR
}

func script(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
