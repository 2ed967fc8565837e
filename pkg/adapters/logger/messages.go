package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Capturing %s at widths %d-%d with %s":        "%s を幅 %d-%d で %s によりキャプチャ中",
		"Output directory: %s":                        "出力ディレクトリ: %s",
		"Captured %d frames, canvas %dx%d":            "%d フレームをキャプチャしました。キャンバス %dx%d",
		"Encoding %d outputs: %s":                     "%d 個の出力をエンコード中: %s",
		"Wrote %s":                                    "%s を書き出しました",
		"No video formats requested, skipping encode": "動画形式が指定されていないため、エンコードを省略します",
		"Run completed successfully":                  "正常に完了しました",
		"Interrupted, shutting down...":               "中断されました。シャットダウン中...",

		// Capture stage
		"Launching %s browser":                                "%s ブラウザを起動中",
		"Navigating to %s":                                    "%s へ移動中",
		"Captured width %d: %dx%d (bound %d)":                 "幅 %d をキャプチャ: %dx%d (上限 %d)",
		"Width %d truncated at %d px, retrying with bound %d": "幅 %d が %d px で切り詰められました。上限 %d で再試行します",
		"Captured %d frames, tallest %d px, widest %d px":     "%d フレームをキャプチャ。最大高さ %d px、最大幅 %d px",
		"Browser closed":                                      "ブラウザを閉じました",

		// Encode stage
		"Running encoder: %s":             "エンコーダを実行中: %s",
		"Input stream: %s %dx%d":          "入力ストリーム: %s %dx%d",
		"Encoder finished with status %d": "エンコーダが終了しました (ステータス %d)",

		// Warnings
		"Pages taller than the initial height bound of %d px; consider raising the probe height": "ページが初期の高さ上限 %d px を超えています。プローブ高さを上げることを検討してください",
		"%s has %d frames, expected %d": "%s のフレーム数は %d です (期待値 %d)",
		"%s is %dx%d, expected %dx%d":   "%s のサイズは %dx%d です (期待値 %dx%d)",
		"Could not verify %s: %s":       "%s を検証できませんでした: %s",

		// Errors
		"warning":             "警告",
		"error":               "エラー",
		"Capture failed: %s":  "キャプチャに失敗しました: %s",
		"Assembly failed: %s": "エンコード準備に失敗しました: %s",
		"Encode failed: %s":   "エンコードに失敗しました: %s",
	})
}
