package instance

import "os"

// GetID returns the process instance identifier or a default value.
func GetID() string {
	if id := os.Getenv("DYNO"); id != "" {
		return id
	}
	if id := os.Getenv("INSTANCE_ID"); id != "" {
		return id
	}
	return "local"
}
