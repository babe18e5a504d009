// Package debug writes frame captures and noise bakes to PNG files.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Capture names and writes PNG files into one directory.
type Capture struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewCapture creates a capture writing to dir ("" is the working directory).
func NewCapture(dir, prefix string) *Capture {
	return &Capture{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the timestamped path the next frame capture would use.
func (c *Capture) Filename() string {
	return c.path(fmt.Sprintf("%s_%s.png", c.prefix, c.now().Format("2006-01-02_15-04-05")))
}

func (c *Capture) path(name string) string {
	if c.dir == "" {
		return name
	}
	return filepath.Join(c.dir, name)
}

// SaveFrame writes bottom-up RGBA pixels as read back from OpenGL.
func (c *Capture) SaveFrame(pixels []byte, width, height int) (string, error) {
	img, err := FlipRGBA(pixels, width, height)
	if err != nil {
		return "", err
	}
	name := c.Filename()
	return name, c.write(name, img)
}

// SaveGray writes a row-major grayscale bake under name.png.
func (c *Capture) SaveGray(name string, pixels []uint8, width, height int) (string, error) {
	if len(pixels) != width*height {
		return "", fmt.Errorf("gray data size mismatch: expected %d, got %d", width*height, len(pixels))
	}
	img := image.NewGray(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)

	path := c.path(name + ".png")
	return path, c.write(path, img)
}

func (c *Capture) write(path string, img image.Image) error {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return file.Close()
}

// FlipRGBA converts bottom-up RGBA rows (OpenGL origin) to a top-down image.
func FlipRGBA(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}
