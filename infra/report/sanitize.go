package report

import "strings"

// maxNameLen bounds per-train file names, matching the 31-character sheet
// name limit of the spreadsheet tools planners open these reports with.
const maxNameLen = 31

var nameReplacer = strings.NewReplacer(
	"[", "_", "]", "_", ":", "_", "*", "_",
	"?", "_", "/", "_", "\\", "_",
)

// SanitizeName makes a train identifier safe to use as a file name.
func SanitizeName(name string) string {
	s := nameReplacer.Replace(name)
	runes := []rune(s)
	if len(runes) > maxNameLen {
		s = string(runes[:maxNameLen])
	}
	return s
}
