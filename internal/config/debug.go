package config

import "os"

func IsDebug() bool {
	return os.Getenv("ANJALI_DEBUG") == "1"
}
