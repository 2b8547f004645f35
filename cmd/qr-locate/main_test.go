package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/qr-locate/internal/detection"
)

func TestParseRect(t *testing.T) {
	tests := []struct {
		in      string
		want    detection.Rect
		wantErr bool
	}{
		{"10,30,70,50", detection.Rect{X: 10, Y: 30, Width: 70, Height: 50}, false},
		{" 1, 2 ,3,4", detection.Rect{X: 1, Y: 2, Width: 3, Height: 4}, false},
		{"1,2,3", detection.Rect{}, true},
		{"a,2,3,4", detection.Rect{}, true},
		{"", detection.Rect{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseRect(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRect(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseRect(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestFormatRectRoundTrip(t *testing.T) {
	got, err := parseRect(formatRect(detection.DefaultOverlay))
	if err != nil {
		t.Fatal(err)
	}
	if got != detection.DefaultOverlay {
		t.Errorf("got %+v, want %+v", got, detection.DefaultOverlay)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")

	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			if x >= 20 {
				img.Set(x, y, color.White)
			} else {
				img.Set(x, y, color.Black)
			}
		}
	}
	f, err := os.Create(in)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out := filepath.Join(dir, "out.png")
	fig := filepath.Join(dir, "fig.png")
	if err := run(in, detection.DefaultConfig(), nil, sinks(out, fig, "#00FF00")...); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, p := range []string{out, fig} {
		st, err := os.Stat(p)
		if err != nil {
			t.Fatalf("expected %s: %v", p, err)
		}
		if st.Size() == 0 {
			t.Errorf("%s is empty", p)
		}
	}

	r, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	decoded, err := png.Decode(r)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("output bounds: got %v, want %v", decoded.Bounds(), img.Bounds())
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	if err := run(filepath.Join(dir, "missing.png"), detection.DefaultConfig(), nil); err == nil {
		t.Error("expected error for missing input")
	}

	cfg := detection.DefaultConfig()
	cfg.SmoothingPasses = -1
	if err := run(filepath.Join(dir, "missing.png"), cfg, nil); err == nil {
		t.Error("expected error for invalid config")
	}
}
