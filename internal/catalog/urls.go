// internal/catalog/urls.go
package catalog

import (
	"strings"
)

// BuildEntityURL substitutes the slug into a path template like
// "/san-pham/{slug}" and prefixes the frontend origin when configured.
// An empty slug yields an empty URL so callers can skip the link.
func BuildEntityURL(slug, pathTemplate, origin string) string {
	if slug == "" {
		return ""
	}
	path := strings.ReplaceAll(pathTemplate, "{slug}", slug)
	if origin == "" {
		return path
	}
	if path != "" && path[0] != '/' {
		path = "/" + path
	}
	return strings.TrimRight(origin, "/") + path
}

// BuildImageURL resolves a stored thumbnail path against the asset origin.
// Absolute http(s) URLs pass through untouched.
func BuildImageURL(path, assetOrigin string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	trimmed := strings.TrimLeft(path, "/")
	if assetOrigin == "" {
		return "/" + trimmed
	}
	return strings.TrimRight(assetOrigin, "/") + "/" + trimmed
}

// LinkBuilder bundles the configured origins and path templates.
type LinkBuilder struct {
	Origin       string
	ProductPath  string
	CategoryPath string
	AssetOrigin  string
}

func (b *LinkBuilder) ProductURL(slug string) string {
	return BuildEntityURL(slug, b.ProductPath, b.Origin)
}

func (b *LinkBuilder) CategoryURL(slug string) string {
	return BuildEntityURL(slug, b.CategoryPath, b.Origin)
}

func (b *LinkBuilder) ImageURL(path string) string {
	return BuildImageURL(path, b.AssetOrigin)
}
