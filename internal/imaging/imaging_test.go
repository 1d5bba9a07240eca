package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodeJPEG(w, h int) []byte {
	var buf bytes.Buffer
	jpeg.Encode(&buf, solid(w, h, color.RGBA{255, 0, 0, 255}), &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func encodePNG(w, h int) []byte {
	var buf bytes.Buffer
	png.Encode(&buf, solid(w, h, color.RGBA{0, 0, 255, 255}))
	return buf.Bytes()
}

func TestProcessAlwaysOutputsJPEG(t *testing.T) {
	for name, data := range map[string][]byte{
		"jpeg": encodeJPEG(100, 100),
		"png":  encodePNG(100, 100),
	} {
		result, err := Process(bytes.NewReader(data), ProductPhoto)
		if err != nil {
			t.Fatalf("Process %s: %v", name, err)
		}
		if result.MIME != "image/jpeg" {
			t.Errorf("%s: expected image/jpeg, got %s", name, result.MIME)
		}
		if _, err := jpeg.Decode(bytes.NewReader(result.Data)); err != nil {
			t.Errorf("%s: output is not a JPEG: %v", name, err)
		}
	}
}

func TestProcessDownscaleKeepsAspect(t *testing.T) {
	opts := Options{MaxDimension: 200, Quality: 80}
	result, err := Process(bytes.NewReader(encodeJPEG(800, 400)), opts)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.Width != 200 || result.Height != 100 {
		t.Errorf("expected 200x100, got %dx%d", result.Width, result.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("decoded size %dx%d", b.Dx(), b.Dy())
	}
}

func TestProcessSmallImageNotUpscaled(t *testing.T) {
	result, err := Process(bytes.NewReader(encodePNG(50, 30)), ProductPhoto)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.Width != 50 || result.Height != 30 {
		t.Errorf("small image should not be resized: got %dx%d", result.Width, result.Height)
	}
}

func TestProcessRejects(t *testing.T) {
	tests := map[string][]byte{
		"text": []byte("not an image"),
		"gif":  []byte("GIF89a..."),
		"huge": bytes.Repeat([]byte{0xff}, MaxUploadBytes+10),
	}
	for name, data := range tests {
		if _, err := Process(bytes.NewReader(data), ProductPhoto); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
