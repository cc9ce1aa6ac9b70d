package main

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/sync/errgroup"

	"github.com/shinya/prologo/pkg/prologo"
	"github.com/shinya/prologo/pkg/prologo/export"
)

// batchFile は一括生成ファイルの内容です
//
//	[[logo]]
//	name = "Acme"
//	tagline = "Build Better"
//	primary = "#4A90E2"
//	secondary = "#50E3C2"
//	font = "sans-serif"
//	icon = "geometric"
//	out = "acme.png"
type batchFile struct {
	Logos []batchEntry `toml:"logo"`
}

type batchEntry struct {
	Name      string `toml:"name"`
	Tagline   string `toml:"tagline"`
	Primary   string `toml:"primary"`
	Secondary string `toml:"secondary"`
	Font      string `toml:"font"`
	Icon      string `toml:"icon"`
	// 省略時は <番号>_prologo_<YYYYMMDDHHMMSS>.png
	Out string `toml:"out"`
}

func (e batchEntry) fields() prologo.Fields {
	return prologo.Fields{
		CompanyName:    e.Name,
		Tagline:        e.Tagline,
		PrimaryColor:   e.Primary,
		SecondaryColor: e.Secondary,
		FontStyle:      e.Font,
		IconChoice:     e.Icon,
	}
}

// loadBatch はTOMLの一括生成ファイルを読み込み、出力先を確定します
func loadBatch(path string, now time.Time) ([]batchEntry, error) {
	var bf batchFile
	if _, err := toml.DecodeFile(path, &bf); err != nil {
		return nil, fmt.Errorf("parse batch %s: %w", filepath.Base(path), err)
	}
	if len(bf.Logos) == 0 {
		return nil, fmt.Errorf("batch %s: no [[logo]] entries", filepath.Base(path))
	}

	seen := make(map[string]int, len(bf.Logos))
	for i := range bf.Logos {
		e := &bf.Logos[i]
		if e.Out == "" {
			e.Out = fmt.Sprintf("%03d_%s", i+1, export.Filename(now))
		}
		if e.Out == pipeName {
			return nil, fmt.Errorf("batch entry %d: stdout output is not supported", i+1)
		}
		if j, ok := seen[e.Out]; ok {
			return nil, fmt.Errorf("batch entries %d and %d both write %s", j+1, i+1, e.Out)
		}
		seen[e.Out] = i
	}
	return bf.Logos, nil
}

// runBatch はリクエストを最大jobs並列で生成します
// 失敗したエントリがあっても他のエントリは生成を続けます
func runBatch(path string, jobs, thumbWidth int, opts prologo.Options) error {
	entries, err := loadBatch(path, time.Now())
	if err != nil {
		return err
	}
	if jobs <= 0 {
		jobs = 1
	}

	var (
		mu     sync.Mutex
		failed int
		g      errgroup.Group
	)
	g.SetLimit(jobs)

	for i, e := range entries {
		g.Go(func() error {
			diag, err := renderOne(e.fields(), e.Out, thumbWidth, opts)
			if err != nil {
				opts.Logger.Error("batch entry failed", "index", i+1, "out", e.Out, "error", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}
			opts.Logger.Info("logo written", "index", i+1, "out", e.Out,
				"warnings", len(diag.Warnings), "missing_fonts", len(diag.MissingFonts))
			return nil
		})
	}
	_ = g.Wait()

	if failed > 0 {
		return fmt.Errorf("%d of %d logos failed", failed, len(entries))
	}
	fmt.Printf("一括生成完了: %d件\n", len(entries))
	return nil
}
