// Package javac invokes the system Java compiler.
package javac

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"github.com/Khyonie/Wisteria/internal/core/domain"
	"github.com/Khyonie/Wisteria/internal/core/ports"
)

var _ ports.Compiler = (*Compiler)(nil)

// Compiler implements ports.Compiler by shelling out to javac.
type Compiler struct {
	logger ports.Logger
	binary string
}

// NewCompiler creates a compiler using the javac found on PATH.
func NewCompiler(logger ports.Logger) *Compiler {
	return &Compiler{logger: logger, binary: "javac"}
}

// Compile runs the compiler over the job's source files and writes the
// class files into the job's output directory. Warnings on a clean exit
// are logged; a failing exit is classified by its diagnostics.
func (c *Compiler) Compile(ctx context.Context, job domain.CompileJob) error {
	if err := os.MkdirAll(job.OutputDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create class directory"), "path", job.OutputDir)
	}

	cmd := exec.CommandContext(ctx, c.binary, c.arguments(job)...) //nolint:gosec // Binary is the configured compiler

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := strings.TrimSpace(stderr.String())

	if err == nil {
		if output != "" {
			c.logger.Warn(output)
		}
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	wrapped := errors.Join(classify(job, output), err)
	wrapped = zerr.With(wrapped, "exit_code", exitCode)
	if output != "" {
		wrapped = zerr.With(wrapped, "compiler_output", output)
	}
	return wrapped
}

// arguments renders the javac invocation for a job.
func (c *Compiler) arguments(job domain.CompileJob) []string {
	args := []string{"-d", job.OutputDir}
	if job.Release > 0 {
		args = append(args, "--release", strconv.Itoa(job.Release))
	}
	if len(job.SourceRoots) > 0 {
		args = append(args, "--source-path", strings.Join(job.SourceRoots, string(os.PathListSeparator)))
	}
	if len(job.Classpath) > 0 {
		args = append(args, "--class-path", strings.Join(job.Classpath, string(os.PathListSeparator)))
	}
	return append(args, job.Files...)
}

// classify maps a failed run to its sentinel. javac reports language
// constructs above the targeted release through source/release
// diagnostics; everything else is an ordinary compile failure.
func classify(job domain.CompileJob, stderr string) error {
	if job.Release > 0 && (strings.Contains(stderr, "source release") || strings.Contains(stderr, "-source ")) {
		return domain.ErrIncompatibleSource
	}
	return domain.ErrCompile
}
