package tiles

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed assets/*.svg
var assetFS embed.FS

// TileImage is one entry of the fixed decorative art pool
type TileImage struct {
	// Name is the asset file name, used to build the public image URL
	Name string
	// Hash is the sha256 of the asset bytes, hex encoded
	Hash string
	// Content is the raw SVG bytes
	Content []byte
}

// ImagePool is the fixed, ordered pool of tile art. Selection is a modulo of
// the total tiles created so far, so the same index always yields the same
// image and hash. Two concurrent locks may read the same count and pick the
// same image; image choice is cosmetic, so that collision is accepted.
type ImagePool struct {
	images []TileImage
}

// LoadImagePool reads the embedded assets and computes their content hashes once.
// The pool order is the lexicographic file order, which is stable across builds.
func LoadImagePool() (*ImagePool, error) {
	entries, err := fs.ReadDir(assetFS, "assets")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded assets: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	pool := &ImagePool{}
	for _, name := range names {
		content, err := assetFS.ReadFile("assets/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read asset %s: %w", name, err)
		}
		sum := sha256.Sum256(content)
		pool.images = append(pool.images, TileImage{
			Name:    name,
			Hash:    hex.EncodeToString(sum[:]),
			Content: content,
		})
	}

	if len(pool.images) == 0 {
		return nil, fmt.Errorf("embedded asset pool is empty")
	}

	return pool, nil
}

// Pick returns the image for the given total tile count
func (p *ImagePool) Pick(totalTiles int64) TileImage {
	idx := totalTiles % int64(len(p.images))
	if idx < 0 {
		idx = 0
	}
	return p.images[idx]
}

// Size returns the pool size
func (p *ImagePool) Size() int {
	return len(p.images)
}

// Images returns the pool entries in order
func (p *ImagePool) Images() []TileImage {
	return p.images
}
