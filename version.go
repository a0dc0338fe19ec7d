package main

import "fmt"

var (
	gitSHA1   string = "unknown"
	gitDirty  string = "unknown"
	buildDate string = "unknown"
)

const probesetVersion = "0.1.0"

func versionString() string {
	version := fmt.Sprintf("probeset %s (git:%s", probesetVersion, gitSHA1)
	if gitDirty != "unknown" && gitDirty != "0" {
		version += "-dirty"
	}
	return version + ", built " + buildDate + ")"
}
