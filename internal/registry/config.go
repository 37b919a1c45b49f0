package registry

import (
	"os"
	"strings"
)

// TagApp is the config section listing the quiz sources a host serves.
const TagApp = "app"

// ParseConfig reads the quiz configuration format: a "tag:" line opens
// a section, the non-blank lines after it are file paths, and a blank
// line closes the section. Lines outside any section are ignored.
func ParseConfig(data []byte) map[string][]string {
	out := map[string][]string{}
	tag := ""
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			tag = ""
		case strings.HasSuffix(line, ":"):
			tag = strings.TrimSuffix(line, ":")
		case tag != "":
			out[tag] = append(out[tag], line)
		}
	}
	return out
}

// LoadConfig parses the configuration file at path.
func LoadConfig(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data), nil
}
