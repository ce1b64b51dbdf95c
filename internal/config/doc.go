// Package config manages editor settings.
//
// Settings are stored as a JSON file. Load returns defaults when the file
// does not exist, so a fresh install works without any setup:
//
//	settings, err := config.Load(path)
//	if err != nil {
//	    // file exists but is unreadable or malformed
//	}
//
// Save writes the settings back, creating parent directories as needed.
package config
