package internal

import (
	"fmt"
	"os"
)

// DataDir returns the directory awspx stores its working state in,
// honoring XDG_DATA_HOME when set.
func DataDir() string {
	dataDir, ok := os.LookupEnv("XDG_DATA_HOME")
	if ok {
		dataDir = fmt.Sprintf("%s/awspx", dataDir)
	} else {
		dataDir = os.ExpandEnv("$HOME/.local/share/awspx")
	}
	return dataDir
}

// ConfigDir returns the directory awspx looks for its config file in,
// honoring XDG_CONFIG_HOME when set.
func ConfigDir() string {
	configDir, ok := os.LookupEnv("XDG_CONFIG_HOME")
	if ok {
		configDir = fmt.Sprintf("%s/awspx", configDir)
	} else {
		configDir = os.ExpandEnv("$HOME/.config/awspx")
	}
	return configDir
}
