// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
)

//go:embed data/*.json
var embedded embed.FS

// Embedded loads the card batches compiled into the binary.
func Embedded() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("catalog: embedded data: %w", err)
	}
	return Load(sub)
}

// Open loads batches from dir, or the embedded data when dir is empty.
func Open(dir string) (*Catalog, error) {
	if dir == "" {
		return Embedded()
	}
	return Load(os.DirFS(dir))
}
