// Package assets embeds the level files shared by the pedestrian runtime
// and the feed simulator.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/automoto/pedsync/shared/leveldata"
)

//go:embed all:levels
var assetFS embed.FS

// FS returns the embedded assets. Level files live under levels/.
func FS() fs.FS {
	return assetFS
}

// Open returns dir as a filesystem, or the embedded assets when dir is
// empty.
func Open(dir string) (fs.FS, error) {
	if dir == "" {
		return assetFS, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("assets dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("assets dir %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

// LoadLevel parses levels/<name>.tmx from fsys.
func LoadLevel(fsys fs.FS, name string) (*leveldata.CollisionData, error) {
	data, err := leveldata.LoadCollisionData(fsys, "levels/"+name+".tmx")
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", name, err)
	}
	return data, nil
}

// LevelNames lists the levels found in fsys, sorted.
func LevelNames(fsys fs.FS) ([]string, error) {
	_, names, err := leveldata.LoadAllLevels(fsys, "levels")
	return names, err
}
