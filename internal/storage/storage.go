// Package storage locates library clips and places output files for the
// edit service. It defines the Library interface and implementations for
// plain local disk and local disk with S3 publication.
package storage

import "context"

// Library defines the interface for clip lookup and output placement.
type Library interface {
	// Resolve maps a library clip name to an absolute path on disk.
	Resolve(ctx context.Context, name string) (string, error)

	// OutputPath returns the absolute path a new output should be
	// written to. An empty name generates a unique one carrying the
	// given extension.
	OutputPath(name, ext string) (string, error)

	// Publish uploads a finished output file and returns its public URL.
	// Returns ErrS3NotConfigured when no remote store is configured.
	Publish(ctx context.Context, path string) (url string, err error)

	// Cleanup removes the given files. It continues past individual
	// failures and returns the first error encountered.
	Cleanup(ctx context.Context, paths []string) error
}
