package ports

// Scanner defines the interface for collecting build inputs from the
// project tree.
//
//go:generate go run go.uber.org/mock/mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type Scanner interface {
	// JavaSources walks the given directories beneath root and returns
	// every .java file, sorted by path.
	JavaSources(root string, dirs []string) ([]string, error)

	// Collect resolves the given paths beneath root to regular files,
	// walking directories recursively. The result is sorted by path.
	Collect(root string, paths []string) ([]string, error)
}
