// Package blocks defines the canonical page composition model: a page is an
// ordered collection of ContentBlock values, each carrying a type tag, a
// free-form content payload, and optional style settings. The package owns
// decoding of the raw `content_blocks` representation (structured arrays or
// JSON-encoded strings), stable ordering, the typed payload variants renderers
// and editors consume, and the collection helpers used to write edited blocks
// back into a page. Payload shapes are never validated here; Decode maps every
// wrong-shaped field to "absent" instead of failing.
package blocks
