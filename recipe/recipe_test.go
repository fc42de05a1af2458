package recipe

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/pixelshader"
	"github.com/gogpu/pixelshader/bitmap"
)

const sample = `
luminance: [218, 732, 74]
workers: 2
steps:
  - exposure: 0.5
  - contrast: 1.25
  - whitebalance: -0.5
  - preset: film.lut
  - saturation: 0.5
  - vignette:
      image: mask.png
      mode: luminance-inv
`

func TestParse(t *testing.T) {
	r, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := &Recipe{
		Luminance: []int{218, 732, 74},
		Workers:   2,
		Steps: []Step{
			Exposure(0.5),
			Contrast(1.25),
			WhiteBalance(-0.5),
			Preset("film.lut"),
			Saturation(0.5),
			VignetteStep("mask.png", "luminance-inv"),
		},
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}

	var ops []string
	for _, s := range r.Steps {
		ops = append(ops, s.Op())
	}
	wantOps := []string{"exposure", "contrast", "whitebalance", "preset", "saturation", "vignette"}
	if diff := cmp.Diff(wantOps, ops); diff != "" {
		t.Errorf("Op() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Empty(t *testing.T) {
	r, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if len(r.Steps) != 0 {
		t.Errorf("Steps = %v, want none", r.Steps)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"two operations", "steps:\n  - exposure: 1\n    contrast: 2\n", ErrInvalidStep},
		{"empty step", "steps:\n  - {}\n", ErrInvalidStep},
		{"bad luminance", "luminance: [1, 2]\nsteps: []\n", ErrLuminance},
		{"bad mode", "steps:\n  - vignette: {image: a.png, mode: screen}\n", pixelshader.ErrInvalidCompose},
		{"unknown key", "steps:\n  - exposre: 1\n", nil},
		{"not yaml", "steps: [", nil},
		{"vignette without image", "steps:\n  - vignette: {mode: over}\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("Parse() error = nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "look.yaml")

	r := &Recipe{
		Workers: 3,
		Steps: []Step{
			Temperature(4200),
			Brightness(-0.1),
			VignetteStep("mask.png", ""),
		},
	}
	if err := r.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.BaseDir != dir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, dir)
	}
	got.BaseDir = ""
	if diff := cmp.Diff(r, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
}

func TestResolve(t *testing.T) {
	r := &Recipe{BaseDir: filepath.Join("looks", "warm")}
	if got, want := r.Resolve("film.lut"), filepath.Join("looks", "warm", "film.lut"); got != want {
		t.Errorf("Resolve(relative) = %q, want %q", got, want)
	}
	abs, _ := filepath.Abs("film.lut")
	if got := r.Resolve(abs); got != abs {
		t.Errorf("Resolve(absolute) = %q, want %q", got, abs)
	}
	if got := (&Recipe{}).Resolve("film.lut"); got != "film.lut" {
		t.Errorf("Resolve without BaseDir = %q", got)
	}
}

func writeFixtures(t *testing.T, dir string) {
	t.Helper()
	lut := make([]byte, pixelshader.PresetSize)
	for i := range lut {
		lut[i] = byte(255 - i%256)
	}
	if err := os.WriteFile(filepath.Join(dir, "film.lut"), lut, 0o600); err != nil {
		t.Fatal(err)
	}

	mask, err := bitmap.New(2, 2, bitmap.FormatRGBA8)
	if err != nil {
		t.Fatal(err)
	}
	mask.Fill(0, 0, 0, 255)
	if err := mask.Save(filepath.Join(dir, "mask.png")); err != nil {
		t.Fatal(err)
	}
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)
	if err := os.WriteFile(filepath.Join(dir, "look.yaml"), []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}

	r, err := Load(filepath.Join(dir, "look.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	s, err := r.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// exposure+contrast+whitebalance merge, preset appends, saturation
	// appends after the preset, vignette appends.
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
}

func TestBuild_MatchesDirectCalls(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)

	r := &Recipe{
		BaseDir: dir,
		Steps: []Step{
			Brightness(0.1),
			Preset("film.lut"),
			VignetteStep("mask.png", "luminance-inv"),
		},
	}
	fromRecipe, err := r.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	direct := pixelshader.New()
	_ = direct.Brightness(0.1)
	_ = direct.PresetFile(filepath.Join(dir, "film.lut"))
	mask, _ := bitmap.Load(filepath.Join(dir, "mask.png"))
	_ = direct.Vignette(mask, pixelshader.ComposeLuminanceInv)

	run := func(s *pixelshader.Shader) []byte {
		img, _ := bitmap.New(2, 2, bitmap.FormatRGBA8)
		img.Fill(100, 150, 200, 255)
		if err := s.ApplyToImage(img); err != nil {
			t.Fatalf("ApplyToImage() error = %v", err)
		}
		return img.Buffer()
	}
	if diff := cmp.Diff(run(direct), run(fromRecipe)); diff != "" {
		t.Errorf("recipe result differs (-direct +recipe):\n%s", diff)
	}
}

func TestBuild_MissingFile(t *testing.T) {
	r := &Recipe{BaseDir: t.TempDir(), Steps: []Step{Exposure(1), Preset("nope.lut")}}
	_, err := r.Build()
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Build() error = %v, want ErrNotExist", err)
	}
}

func TestBuild_AppliesOptions(t *testing.T) {
	r := &Recipe{Steps: []Step{Exposure(0.5), Exposure(0.5)}}
	s, err := r.Build(pixelshader.WithWorkers(1))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestBuild_SharesAssets(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)
	mask := filepath.Join(dir, "mask.png")

	a := newAssets()
	first, err := a.overlay(mask)
	if err != nil {
		t.Fatalf("overlay() error = %v", err)
	}
	second, err := a.overlay(filepath.Join(dir, ".", "mask.png"))
	if err != nil {
		t.Fatalf("overlay() error = %v", err)
	}
	if first != second {
		t.Error("same overlay path loaded twice")
	}

	if _, err := a.preset(filepath.Join(dir, "film.lut")); err != nil {
		t.Fatalf("preset() error = %v", err)
	}
	if _, err := a.preset(filepath.Join(dir, "film.lut")); err != nil {
		t.Fatalf("preset() error = %v", err)
	}
	if st := a.presets.Stats(); st.Hits != 1 || st.Misses != 1 {
		t.Errorf("preset stats = %+v, want 1 hit 1 miss", st)
	}

	r := &Recipe{
		BaseDir: dir,
		Steps: []Step{
			VignetteStep("mask.png", "over"),
			VignetteStep("mask.png", "mult"),
		},
	}
	s, err := r.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}
