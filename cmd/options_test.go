package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nailtryon/tryon/internal/hand"
	"github.com/nailtryon/tryon/internal/render"
	"github.com/nailtryon/tryon/internal/tryon"
)

func TestSourceOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    SourceOptions
		kind    tryon.SourceKind
		photo   hand.PhotoID
		wantErr bool
	}{
		{name: "reference", opts: SourceOptions{Photo: 3, Slider: -1}, kind: tryon.Reference, photo: 3},
		{name: "placeholder", opts: SourceOptions{Photo: 7, Slider: -1, Placeholder: true}, kind: tryon.Placeholder, photo: 7},
		{name: "slider overrides photo", opts: SourceOptions{Photo: 1, Slider: 95}, kind: tryon.Reference, photo: 10},
		{name: "captured", opts: SourceOptions{Photo: 1, Slider: -1, Captured: "me.jpg", Depth: "dark"}, kind: tryon.Captured},
		{name: "photo out of range", opts: SourceOptions{Photo: 11, Slider: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := tt.opts.source(tryon.Assets{})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %v", src)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if src.Kind != tt.kind {
				t.Errorf("kind %v, want %v", src.Kind, tt.kind)
			}
			if tt.kind != tryon.Captured && src.Photo != tt.photo {
				t.Errorf("photo %v, want %v", src.Photo, tt.photo)
			}
			if tt.kind == tryon.Captured && src.Depth != hand.DepthDark {
				t.Errorf("depth %v", src.Depth)
			}
		})
	}
}

func TestBuildRequest(t *testing.T) {
	lo := LookOptions{Color: "#3d1a36", Coats: 3, TopCoat: "matte", Shape: "oval", Length: "long"}
	req, err := buildRequest(tryon.ReferenceSource(2, nil), &lo)
	if err != nil {
		t.Fatal(err)
	}
	if req.Color == nil || req.Color.Hex() != "#3D1A36" {
		t.Errorf("colour %v", req.Color)
	}
	want := render.Finish{Coats: 3, TopCoat: render.TopCoatMatte}
	if req.Finish != want || req.Shape != render.ShapeOval || req.Length != render.LengthLong {
		t.Errorf("request %+v", req)
	}

	for _, bad := range []string{"", "#3D1A3", "#GGGGGG", "berry"} {
		lo.Color = bad
		if _, err := buildRequest(tryon.ReferenceSource(2, nil), &lo); err == nil {
			t.Errorf("colour %q accepted", bad)
		}
	}
}

func TestRunBatch(t *testing.T) {
	comp = tryon.NewCompositor(nil, 1)
	assets = tryon.Assets{}
	batchOut = t.TempDir()
	batchLook = LookOptions{Color: "#C2185B", Coats: 2, TopCoat: "glossy"}

	if failed := runBatch(context.Background(), 4); failed != 0 {
		t.Fatalf("%d photographs failed", failed)
	}
	for _, photo := range hand.Photos() {
		path := filepath.Join(batchOut, tryon.Filename(photo, false))
		if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
			t.Errorf("%s: %v", path, err)
		}
	}
}

func TestRunBatchCancelled(t *testing.T) {
	comp = tryon.NewCompositor(nil, 1)
	assets = tryon.Assets{}
	batchOut = t.TempDir()
	batchLook = LookOptions{Color: "#C2185B", Coats: 2, TopCoat: "glossy"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if failed := runBatch(ctx, 2); failed == 0 {
		t.Error("a cancelled batch should not report success")
	}
}
