package main

import (
	"os"
	"strings"

	"auralis-cli/internal/cli"
)

// lookupCommands maps an id prefix to the command group that shows it.
var lookupCommands = map[string]string{
	"inbox_":   "inbox",
	"task_":    "tasks",
	"project_": "projects",
	"area_":    "areas",
	"note_":    "notes",
}

func lookupGroup(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for prefix, group := range lookupCommands {
		if strings.HasPrefix(s, prefix) && len(s) > len(prefix) {
			return group, true
		}
	}
	return "", false
}

// rewriteDirectLookupArgs turns `auralis <id>` into `auralis <group> get <id>`.
// Persistent flags may come before the id, so the first positional token is used.
func rewriteDirectLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}
	valueFlags := map[string]bool{
		"--dir":       true,
		"--format":    true,
		"--log-level": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) {
				if group, ok := lookupGroup(argv[i+1]); ok {
					return splice(argv, i, group)
				}
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if group, ok := lookupGroup(a); ok {
			return splice(argv, i, group)
		}
		return argv
	}
	return argv
}

func splice(argv []string, at int, group string) []string {
	out := make([]string, 0, len(argv)+2)
	out = append(out, argv[:at]...)
	out = append(out, group, "get")
	return append(out, argv[at:]...)
}

func main() {
	os.Args = rewriteDirectLookupArgs(os.Args)
	os.Exit(cli.Execute(cli.NewRootCmd()))
}
