package ports

// Scaffolder defines the interface for creating new projects.
//
//go:generate go run go.uber.org/mock/mockgen -source=scaffold.go -destination=mocks/mock_scaffold.go -package=mocks
type Scaffolder interface {
	// Create materializes a new project directory under parent with a
	// starter manifest and source layout, and returns the project root.
	// The minimal flag strips the starter manifest down to bare tables.
	Create(parent, name string, minimal bool) (string, error)
}
