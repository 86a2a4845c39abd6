package ports

// Hasher defines the interface for computing build input digests.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashFiles computes a deterministic digest over the given files'
	// relative paths and contents. The extra strings are mixed into the
	// digest verbatim so non-file inputs can invalidate it.
	HashFiles(root string, files []string, extra ...string) (string, error)
}
