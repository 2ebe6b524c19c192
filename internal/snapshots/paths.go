package snapshots

import (
	"path/filepath"
)

const (
	healthDir      = "health"
	pamDir         = "pam"
	spectatingFile = "spectating.txt"
)

// HealthImagePath is <base>/<team>/health/<player>.png.
func HealthImagePath(basePath, team, player string) string {
	return filepath.Join(basePath, team, healthDir, player+".png")
}

// PAMPath is <base>/<team>/pam/<player>.pam.
func PAMPath(basePath, team, player string) string {
	return filepath.Join(basePath, team, pamDir, player+".pam")
}

// PointsPath is <base>/<team>/<team>.points.
func PointsPath(basePath, team string) string {
	return filepath.Join(basePath, team, team+".points")
}

// SpectatingPath is <base>/spectating.txt.
func SpectatingPath(basePath string) string {
	return filepath.Join(basePath, spectatingFile)
}
