package preview

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Encode writes img in the format named by ext (".png", ".tif", ".tiff" or
// ".bmp").
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png", "":
		return png.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case ".bmp":
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("unsupported preview format %q", ext)
}

// BoardPath derives the per-board file name from a base path:
// "out/preview.png" becomes "out/preview-face.png".
func BoardPath(base, boardName string) string {
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "-" + boardName + ext
}

// WriteFiles renders every board and writes one image per board next to
// base. It returns the written paths in board order.
func (r Renderer) WriteFiles(ctx context.Context, src Source, base string) ([]string, error) {
	imgs, err := r.RenderAll(ctx, src)
	if err != nil {
		return nil, err
	}
	ext := filepath.Ext(base)
	paths := make([]string, len(imgs))
	for i, img := range imgs {
		path := BoardPath(base, r.Panel.Boards[i].Name)
		if err := writeImage(path, img, ext); err != nil {
			return nil, err
		}
		paths[i] = path
	}
	return paths, nil
}

func writeImage(path string, img image.Image, ext string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preview: %w", err)
	}
	if err := Encode(f, img, ext); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return f.Close()
}
