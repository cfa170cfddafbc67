package syncer

import (
	_ "embed"
	"strings"
)

//go:embed scripts/launch.sh.tmpl
var launchScriptTemplate string

// renderLaunchScript substitutes the core and rom placeholders into the
// launch script template and normalizes newlines.
func renderLaunchScript(coreFileName, romFileName string) string {
	script := strings.ReplaceAll(launchScriptTemplate, "{core}", coreFileName)
	script = strings.ReplaceAll(script, "{rom}", romFileName)
	return strings.ReplaceAll(script, "\r", "")
}
