package handler

import (
	"net/http"
	"os"
)

// Build information, injected via ldflags at build time
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionInfo holds build metadata
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
}

func getVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}
	if v := os.Getenv("APP_VERSION"); v != "" && info.Version == "dev" {
		info.Version = v
	}
	return info
}

// HandleVersion returns build metadata for the running binary
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, getVersionInfo())
	}
}
