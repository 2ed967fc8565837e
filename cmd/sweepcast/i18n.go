// Package main provides localization for the sweepcast CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Record how a web page responds across viewport widths": "ビューポート幅ごとのWebページの見え方を記録",
		"Show version information":                              "バージョン情報を表示",

		// Capture flags
		"Narrowest viewport width":                             "最小のビューポート幅",
		"Widest viewport width":                                "最大のビューポート幅",
		"Capture height in pixels, or full for the whole page": "キャプチャの高さ（ピクセル、fullでページ全体）",
		"Stamp the viewport width onto each frame":             "各フレームにビューポート幅を表示",

		// Output flags
		"Directory for frames and videos (default: new temporary directory)": "フレームと動画の出力先（デフォルト: 新しい一時ディレクトリ）",
		"Encode an MP4 video":                              "MP4動画を出力",
		"Encode an animated PNG":                           "アニメーションPNGを出力",
		"Encode an animated GIF":                           "アニメーションGIFを出力",
		"Encode a WebM video":                              "WebM動画を出力",
		"Frames per second of the videos":                  "動画のフレームレート",
		"Path to ffmpeg executable":                        "ffmpeg実行ファイルのパス",
		"Print the run summary as JSON on stdout":          "実行サマリーをJSONで標準出力に表示",
		"Write the run summary to a file (.json or .yaml)": "実行サマリーをファイルに出力（.json または .yaml）",

		// Browser flags
		"Browser kind (chromium, firefox, webkit)":       "ブラウザの種類（chromium, firefox, webkit）",
		"Automation engine (auto, chromedp, playwright)": "自動化エンジン（auto, chromedp, playwright）",
		"Path to Chrome executable":                      "Chrome実行ファイルのパス",
		"Run browser in non-headless mode":               "ブラウザを非ヘッドレスモードで実行",
		"Ignore HTTPS certificate errors":                "HTTPS証明書エラーを無視",
		"HTTP proxy server (e.g., http://proxy:8080)":    "HTTPプロキシサーバー（例: http://proxy:8080）",

		// Logging flags
		"Show progress bars":                 "進捗バーを表示",
		"Suppress all log output":            "全てのログ出力を抑制",
		"Log every capture and encoder line": "キャプチャとエンコーダーの出力を全て記録",
		"YAML configuration file":            "YAML設定ファイル",

		// Runtime messages
		"Summary saved to %s":         "サマリーを %s に保存しました",
		"Failed to write summary: %s": "サマリーの書き込みに失敗しました: %s",
	})
}
