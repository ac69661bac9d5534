// Package loader reads page documents for pagesource: files on disk, entries
// of an fs.FS, and http(s) URLs when remote loading is enabled.
package loader
