package blit

import (
	"image"
	"io/fs"
	"os"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Decoder turns an asset path into pixels. Decode is called from a
// background goroutine, once per Load.
//
// A failing decode is not retried: the image simply never becomes ready.
type Decoder interface {
	Decode(path string) (image.Image, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(path string) (image.Image, error)

// Decode implements Decoder.
func (f DecoderFunc) Decode(path string) (image.Image, error) {
	return f(path)
}

// FSDecoder decodes PNG, JPEG, GIF, BMP and WebP files from a file system.
type FSDecoder struct {
	fsys fs.FS
}

// NewFSDecoder returns a decoder reading from fsys. A nil fsys reads from
// the current working directory.
func NewFSDecoder(fsys fs.FS) *FSDecoder {
	if fsys == nil {
		fsys = os.DirFS(".")
	}
	return &FSDecoder{fsys: fsys}
}

// Decode implements Decoder.
func (d *FSDecoder) Decode(path string) (image.Image, error) {
	f, err := d.fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	img, _, err := image.Decode(f)
	return img, err
}
