// Package flagx holds helpers for parsing a subset of command-line flags
// without disturbing flags owned by other loaders.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// Filter returns the arguments from args that belong to one of the known
// flag names, together with their values. Both "-f value" and "-f=value"
// forms are recognised; a following token starting with "-" is never taken
// as a value.
func Filter(args []string, known ...string) []string {
	names := make(map[string]struct{}, len(known))
	for _, k := range known {
		names[k] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, ok := names[name]; ok {
				out = append(out, arg)
			}
			continue
		}

		if _, ok := names[arg]; !ok {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigPath extracts the JSON config file path given with -c or -config.
// An empty string means no file was requested.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(Filter(args, "-c", "-config", "--config"))

	return path
}
