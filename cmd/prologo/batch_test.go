package main

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shinya/prologo/pkg/prologo"
	"github.com/shinya/prologo/pkg/prologo/config"
	"github.com/shinya/prologo/pkg/prologo/font"
	"github.com/shinya/prologo/pkg/prologo/logger"
)

func testOptions() prologo.Options {
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	return prologo.Options{Fonts: font.NewManager(font.WithLogger(lg)), Logger: lg}
}

func writeBatch(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "logos.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBatch_DefaultNames(t *testing.T) {
	path := writeBatch(t, t.TempDir(), `
[[logo]]
name = "Acme"
primary = "#4A90E2"
secondary = "#50E3C2"

[[logo]]
name = "Zephyr"
primary = "#000000"
secondary = "#FFFFFF"
out = "zephyr.png"
`)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	entries, err := loadBatch(path, now)
	if err != nil {
		t.Fatalf("loadBatch: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d", len(entries))
	}
	if entries[0].Out != "001_prologo_20240102030405.png" {
		t.Errorf("default out = %q", entries[0].Out)
	}
	if entries[1].Out != "zephyr.png" {
		t.Errorf("out = %q", entries[1].Out)
	}
}

func TestLoadBatch_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":     "",
		"stdout":    "[[logo]]\nname = \"A\"\nout = \"-\"\n",
		"duplicate": "[[logo]]\nout = \"a.png\"\n[[logo]]\nout = \"a.png\"\n",
		"malformed": "[[logo]\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := loadBatch(writeBatch(t, t.TempDir(), body), time.Now()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "acme.png")
	bad := filepath.Join(dir, "bad.png")
	path := writeBatch(t, dir, `
[[logo]]
name = "Acme"
icon = "tech"
primary = "#4A90E2"
secondary = "#50E3C2"
out = "`+filepath.ToSlash(good)+`"

[[logo]]
name = "Broken"
primary = "#GGG"
secondary = "#50E3C2"
out = "`+filepath.ToSlash(bad)+`"
`)

	err := runBatch(path, 2, 100, testOptions())
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Fatalf("err = %v, want one failure", err)
	}

	data, err := os.ReadFile(good)
	if err != nil {
		t.Fatalf("good entry not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not PNG")
	}
	if _, err := os.Stat(thumbnailPath(good)); err != nil {
		t.Errorf("thumbnail not written: %v", err)
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Errorf("failed entry should not be written, stat err = %v", err)
	}
}

func TestThumbnailPath(t *testing.T) {
	if got := thumbnailPath("out/acme.png"); got != "out/acme_thumb.png" {
		t.Errorf("thumbnailPath = %q", got)
	}
}

func TestPrintDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	printDiagnostics(&buf, prologo.Diagnostics{
		Warnings:     []string{"unknown icon choice \"x\""},
		MissingFonts: []string{"DejaVu Sans"},
	})
	out := buf.String()
	if !strings.Contains(out, "unknown icon choice") || !strings.Contains(out, "DejaVu Sans") {
		t.Errorf("output = %q", out)
	}
}

func TestRun_UsesConfigLayout(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "prologo.toml")
	if err := os.WriteFile(cfgPath, []byte("[canvas]\nwidth = 400\nheight = 300\n\n[layout]\nicon_center_y = 100\nicon_size = 50\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}

	out := filepath.Join(dir, "acme.png")
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	err = run(cfg, lg, runFlags{
		fields: prologo.Fields{
			CompanyName:    "Acme",
			PrimaryColor:   "#4A90E2",
			SecondaryColor: "#50E3C2",
			IconChoice:     "minimal",
		},
		out: out,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("size = %v, want 400x300 from config", b)
	}
}

func TestRun_ErrorLeavesLogClosable(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "prologo.log")
	lg, closer := logger.New(logger.Options{Level: "debug", File: logPath})

	err := run(config.DefaultConfig(), lg, runFlags{
		fields: prologo.Fields{
			CompanyName:    "Acme",
			PrimaryColor:   "#GGG",
			SecondaryColor: "#50E3C2",
		},
		out: filepath.Join(dir, "bad.png"),
	})
	if !errors.Is(err, prologo.ErrInvalidColor) {
		t.Fatalf("err = %v, want ErrInvalidColor", err)
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "[DEBUG] fonts available") {
		t.Errorf("log file missing records: %q", data)
	}
}
