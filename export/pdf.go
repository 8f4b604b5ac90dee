package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/ozcanhakn/retailmindai-sub000/kpi"
	"github.com/ozcanhakn/retailmindai-sub000/model"
	"github.com/ozcanhakn/retailmindai-sub000/report"
)

// BrowserRenderer prints report HTML through headless Chromium. Format
// "pdf" uses print-to-PDF, "png" a full-page screenshot.
type BrowserRenderer struct {
	Dir       string
	Format    string // pdf | png
	Formatter *kpi.Formatter
}

// Render implements report.Renderer.
func (r *BrowserRenderer) Render(content report.Content, opts model.ExportOptions) (string, int64, error) {
	htmlDoc := RenderHTML(content, r.Formatter)

	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return "", 0, fmt.Errorf("出力フォルダの作成に失敗: %w", err)
	}

	// Chromiumにはファイル経由で渡す
	htmlPath := filepath.Join(r.Dir, opts.Filename+".html")
	if err := os.WriteFile(htmlPath, []byte(htmlDoc), 0644); err != nil {
		return "", 0, fmt.Errorf("HTMLの書き込みに失敗: %w", err)
	}
	defer os.Remove(htmlPath)

	data, err := r.capture(htmlPath, opts.Landscape)
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate %s report: %w", r.Format, err)
	}

	path := filepath.Join(r.Dir, opts.Filename+"."+r.Format)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", 0, fmt.Errorf("出力ファイルの書き込みに失敗: %w", err)
	}
	return path, int64(len(data)), nil
}

func (r *BrowserRenderer) capture(htmlPath string, landscape bool) (data []byte, err error) {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return nil, err
	}

	err = rod.Try(func() {
		u := launcher.New().
			Headless(true).
			Leakless(false).
			MustLaunch()

		browser := rod.New().ControlURL(u).MustConnect()
		defer browser.MustClose()

		page := browser.MustPage("file://" + abs)
		page.MustWaitStable()

		if r.Format == "png" {
			data = page.MustScreenshotFullPage()
			return
		}

		stream, pdfErr := page.PDF(&proto.PagePrintToPDF{
			Landscape:       landscape,
			PrintBackground: true,
		})
		if pdfErr != nil {
			panic(pdfErr)
		}
		out, readErr := io.ReadAll(stream)
		if readErr != nil {
			panic(readErr)
		}
		data = out
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
