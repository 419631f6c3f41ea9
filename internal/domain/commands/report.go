package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
	"github.com/rios0rios0/studiocms-upgrade/internal/domain/repositories"
)

const (
	symbolMinor     = "●"
	symbolMajor     = "▲"
	symbolChangelog = " "
	wrapIndent      = "    "

	upgradeLinePadding   = 12
	changelogLinePadding = 12
)

//nolint:gochecknoglobals // shared color styles
var (
	minorStyle = color.New(color.FgGreen)
	majorStyle = color.New(color.FgYellow)
	majorBadge = color.New(color.BgYellow, color.FgBlack)
	dimStyle   = color.New(color.Faint)
	linkStyle  = color.New(color.FgCyan, color.Underline)
	boldStyle  = color.New(color.Bold)
)

// pluralize picks the singular form for exactly one item and the plural form otherwise.
func pluralize(singular, plural string, n int) string {
	if n == 1 {
		return singular
	}
	return plural
}

// reportCurrent prints one line per package already on its target version.
func reportCurrent(terminal repositories.TerminalRepository, records []entities.PackageRecord) {
	for _, record := range records {
		terminal.Info(fmt.Sprintf("%s is up to date on v%s", record.Name, record.StrippedTargetVersion()))
	}
}

// reportUpgrade prints the "from vX to vY" line of a pending package,
// splitting it over two rows when it does not fit the terminal.
func reportUpgrade(terminal repositories.TerminalRepository, record entities.PackageRecord, text string) {
	style, symbol := minorStyle, symbolMinor
	version := fmt.Sprintf("from v%s to v%s", record.StrippedCurrentVersion(), record.StrippedTargetVersion())
	badge := minorStyle.Sprint(version)
	if record.IsMajorBump {
		style, symbol = majorStyle, symbolMajor
		badge = majorBadge.Sprint(" " + version + " ")
	}

	length := upgradeLinePadding + len(record.Name) + len(text) + len(version)
	if length > terminal.Width() {
		terminal.Info(fmt.Sprintf("%s  %s", style.Sprint(symbol), record.Name))
		terminal.Info(fmt.Sprintf("%s%s %s", wrapIndent, dimStyle.Sprint(text), badge))
		return
	}
	terminal.Info(fmt.Sprintf("%s  %s %s %s", style.Sprint(symbol), record.Name, dimStyle.Sprint(text), badge))
}

// reportChangelog prints the changelog reference of a major package.
func reportChangelog(terminal repositories.TerminalRepository, record entities.PackageRecord) {
	rendered, visible := terminal.Link(record.ChangelogTitle, record.ChangelogURL)
	link := linkStyle.Sprint(rendered)

	length := changelogLinePadding + len(record.Name) + visible
	if length > terminal.Width() {
		terminal.Info(fmt.Sprintf("%s  %s", symbolChangelog, record.Name))
		terminal.Info(wrapIndent + link)
		return
	}
	terminal.Info(fmt.Sprintf("%s  %s %s", symbolChangelog, record.Name, link))
}

// manualInstallMessage is the remediation text printed after a failed install.
func manualInstallMessage(command string) string {
	return strings.Join([]string{
		"Dependencies failed to install, please run the following command manually:",
		boldStyle.Sprint(command),
	}, "\n")
}
