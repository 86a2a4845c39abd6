package ports

import (
	"context"

	"github.com/Khyonie/Wisteria/internal/core/domain"
)

// Compiler defines the interface for compiling a project's sources.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Compile runs the compiler over the job's source files and writes the
	// class files into the job's output directory.
	Compile(ctx context.Context, job domain.CompileJob) error
}
