package output

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"
)

// BannerOptions configures the startup banner display.
type BannerOptions struct {
	ShowBanner  bool // Show ASCII art logo
	ShowVersion bool // Show version information
	ShowSource  bool // Show the configured source directory
}

// DefaultBannerOptions returns default banner configuration.
func DefaultBannerOptions() BannerOptions {
	return BannerOptions{
		ShowBanner:  true,
		ShowVersion: true,
		ShowSource:  true,
	}
}

// PrintBanner displays the tool's logo and run information.
func PrintBanner(w io.Writer, version, sourceDir string, opts BannerOptions) {
	if w == nil {
		return
	}

	if !opts.ShowBanner {
		if opts.ShowVersion {
			fmt.Fprintf(w, "autosar-calltree v%s\n", version)
		}
		if opts.ShowSource && sourceDir != "" {
			fmt.Fprintf(w, "source: %s\n", sourceDir)
		}
		fmt.Fprintln(w)
		return
	}

	asciiArt := GetASCIILogo()
	fmt.Fprintln(w, asciiArt)

	if opts.ShowVersion {
		fmt.Fprintf(w, "autosar-calltree v%s\n", version)
	}

	if opts.ShowSource && sourceDir != "" {
		fmt.Fprintf(w, "source: %s\n", sourceDir)
	}

	fmt.Fprintln(w)
}

// GetASCIILogo generates the ASCII art logo for "Calltree".
func GetASCIILogo() string {
	fig := figure.NewFigure("Calltree", "standard", true)
	return fig.String()
}

// GetCompactBanner returns a single-line banner for non-TTY output.
func GetCompactBanner(version string) string {
	return fmt.Sprintf("autosar-calltree v%s", version)
}

// ShouldShowBanner determines if the banner should be displayed.
func ShouldShowBanner(isTTY bool, noBannerFlag bool) bool {
	if noBannerFlag {
		return false
	}
	return isTTY
}
