// Package pagesource locates page documents (files, fs.FS entries or HTTP
// URLs) and decodes them into blocks.PageData. JSON and YAML documents are
// both accepted.
package pagesource
