// Package minify removes superfluous characters from HTML and JSON text in a
// single forward pass, without building a document tree.
//
// The package is organized into several sub-packages:
//
// - stream: lookahead window filtering a stream of scalars, and the reader
//   turning such a stream back into bytes
// - html: HTML rules (comments, whitespace around tags, control characters)
// - json: JSON rules (whitespace outside of strings, control characters)
//
// Each format can be minified in memory or as a stream:
//
//    s := html.Minify(page)
//    r := json.NewReader(os.Stdin)
//
// The streaming form keeps a constant amount of memory regardless of the size
// of the input: each scalar is kept or dropped by looking at the few scalars
// following it only, so output is available as soon as input arrives.
//
// The CLI utility is in the directory cmd/minify. You can install it with:
//
//  go install github.com/arnodel/minify/cmd/minify
//
package minify
