// Package app contains the host application: it loads manifests, populates a
// registry Environment with Go and JavaScript factories, requires the entry
// identifiers and renders their exports. It is decoupled from any specific
// entrypoint like a CLI.
package app
