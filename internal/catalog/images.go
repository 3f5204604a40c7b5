package catalog

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
)

// ImageResolver finds the image set of a product.
type ImageResolver interface {
	Resolve(ctx context.Context, name, category string, suffixes []string, max int) ([]string, error)
}

// NoImages resolves every product to an empty image set.
type NoImages struct{}

func (NoImages) Resolve(context.Context, string, string, []string, int) ([]string, error) {
	return []string{}, nil
}

// FSImageResolver looks for "<Root>/<category>/<name><suffix>" files and
// returns the ones that exist as URL paths under URLPrefix.
type FSImageResolver struct {
	Root      string
	URLPrefix string
}

func (r FSImageResolver) Resolve(ctx context.Context, name, category string, suffixes []string, max int) ([]string, error) {
	images := []string{}
	for _, suffix := range suffixes {
		if max > 0 && len(images) >= max {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file := name + suffix
		_, err := os.Stat(filepath.Join(r.Root, category, file))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		images = append(images, path.Join(r.URLPrefix, url.PathEscape(category), url.PathEscape(file)))
	}
	return images, nil
}
