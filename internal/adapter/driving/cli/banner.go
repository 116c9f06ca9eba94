package cli

import (
	"fmt"

	"github.com/epharg/eph-dashboard-go/pkg/console"
	"github.com/epharg/eph-dashboard-go/pkg/version"
)

// displayWelcomeBanner prints the banner and the running version.
func displayWelcomeBanner() {
	banner := `
         /$$$$$$$$ /$$$$$$$  /$$   /$$
        | $$_____/| $$__  $$| $$  | $$
        | $$      | $$  \ $$| $$  | $$
        | $$$$$   | $$$$$$$/| $$$$$$$$
        | $$__/   | $$____/ | $$__  $$
        | $$      | $$      | $$  | $$
        | $$$$$$$$| $$      | $$  | $$
        |________/|__/      |__/  |__/
        `
	fmt.Println(console.BrightCyan(banner))
	fmt.Println(console.BrightBlue(fmt.Sprintf("EPH Dashboard CLI (v%s)", version.FormatVersion())))
}
