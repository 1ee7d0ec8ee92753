package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner to stderr.
func PrintBanner(config *Config) {
	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 70
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		` .d8888b.   .d8888b.   .d88888b.  888     888 88888888888`,
		`d88P  Y88b d88P  Y88b d88P" "Y88b 888     888     888`,
		`Y88b.      888    888 888     888 888     888     888`,
		` "Y888b.   888        888     888 888     888     888`,
		`    "Y88b. 888        888     888 888     888     888`,
		`      "888 888    888 888     888 888     888     888`,
		`Y88b  d88P Y88b  d88P Y88b. .d88P Y88b. .d88P     888`,
		` "Y8888P"   "Y8888P"   "Y88888P"   "Y88888P"      888`,
	}

	fmt.Fprintf(os.Stderr, "\n%s\n\n", hr)
	for _, line := range art {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n%s  Intraday Momentum Scanner%s\n\n%s\n\n", textColor, banner.ColorReset, hr)

	kvPad := 16
	kvLines := [][2]string{
		{"Version", GetFullVersion()},
		{"Environment", config.Environment},
		{"Source", config.Scan.Source},
		{"Workers", fmt.Sprintf("%d", config.Scan.Concurrency)},
		{"Cache TTL", config.Scan.GetCacheTTL().String()},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(os.Stderr, "%s  %-*s %s%s\n", textColor, kvPad, kv[0], kv[1], banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n")
}
