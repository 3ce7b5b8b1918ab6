package handler

import (
	"net/http"
	"runtime"
)

// VersionInfo contains version and build information
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	GitCommit string `json:"git_commit,omitempty"`
}

// Build-time variables (injected via ldflags)
var (
	Version   = "dev"
	GitCommit = "unset"
)

// HandleVersion reports which build is deployed
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, VersionInfo{
			Version:   Version,
			GoVersion: runtime.Version(),
			GitCommit: GitCommit,
		})
	}
}
