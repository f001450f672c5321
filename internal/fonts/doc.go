// Package fonts locates the TrueType font used to render source text.
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - Go fonts compiled into the binary
//	    ├── FilesystemLoader  - a font file given by path
//	    ├── SystemLoader      - a font searched by name in the OS font directories
//	    └── Resolver          - picks a loader for the request, falls back to embedded
//
// A request that looks like a path (see fileutil.LooksLikeFontPath) goes to
// FilesystemLoader; any other name is tried against the embedded fonts, then
// the system directories. When nothing usable is found the Resolver returns
// the bundled Go Mono font and reports FailProvided, so rendering can always
// proceed.
//
// Every loaded font is parsed once with golang.org/x/image/font/sfnt before
// being returned; collections and non-TrueType outlines are rejected.
package fonts
