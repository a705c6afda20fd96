package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// uncompressedPaths are scraped or polled often and stay small.
var uncompressedPaths = []string{"/metrics", "/healthz", "/readyz"}

// Compression gzips responses for clients that accept it, except on probe and
// scrape endpoints and on the extra paths given.
func Compression(skip ...string) gin.HandlerFunc {
	excluded := append(append([]string(nil), uncompressedPaths...), skip...)
	return gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths(excluded))
}
