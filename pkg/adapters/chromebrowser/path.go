// Package chromebrowser drives Chromium through the DevTools protocol.
package chromebrowser

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// chromeEnvVars are consulted in order when no explicit path is given.
var chromeEnvVars = []string{"SWEEPCAST_CHROME_PATH", "CHROME_PATH"}

// ResolveChromePath picks the Chromium binary for a sweep.
// An explicit path wins, then the environment, then well-known install
// locations. An empty result leaves the lookup to chromedp.
func ResolveChromePath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}
	for _, name := range chromeEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	for _, candidate := range chromeCandidates(runtime.GOOS, os.Getenv) {
		if path := resolveExecutable(candidate); path != "" {
			return path
		}
	}
	return ""
}

// chromeCandidates lists Chromium builds before branded Chrome.
func chromeCandidates(goos string, getenv func(string) string) []string {
	switch goos {
	case "darwin":
		return []string{
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Google Chrome Canary.app/Contents/MacOS/Google Chrome Canary",
		}
	case "windows":
		var out []string
		for _, root := range []string{getenv("PROGRAMFILES"), getenv("PROGRAMFILES(X86)"), getenv("LOCALAPPDATA")} {
			if root == "" {
				continue
			}
			out = append(out,
				root+`\Chromium\Application\chrome.exe`,
				root+`\Google\Chrome\Application\chrome.exe`,
			)
		}
		return out
	default:
		return []string{
			"chromium",
			"chromium-browser",
			"google-chrome-stable",
			"google-chrome",
			"/snap/bin/chromium",
		}
	}
}

// resolveExecutable stats absolute paths and searches PATH for bare names.
func resolveExecutable(nameOrPath string) string {
	if filepath.IsAbs(nameOrPath) || (len(nameOrPath) > 1 && nameOrPath[1] == ':') {
		if info, err := os.Stat(nameOrPath); err == nil && !info.IsDir() {
			return nameOrPath
		}
		return ""
	}
	if path, err := exec.LookPath(nameOrPath); err == nil {
		return path
	}
	return ""
}
