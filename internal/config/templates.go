package config

import (
	"fmt"
	"os"
)

// Template returns the starter format definition.
func Template() string {
	return formatTemplate
}

// WriteTemplate writes the starter definition to path.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(formatTemplate), 0o600)
}

const formatTemplate = `name = "ping"

[[nodes]]
id = "root"
kind = "agg"
children = ["magic", "separator", "payload"]

[[nodes]]
id = "magic"
kind = "data"
value = "50494e47" # "PING"

[[nodes]]
id = "separator"
kind = "data"
value = "20"

[[nodes]]
id = "payload"
kind = "data"
min_size = 1
max_size = 8
learn = true
`
