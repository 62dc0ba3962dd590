// Package buildtool shells out to the dotnet toolchain for build validation.
// Only the exit status and captured stderr cross back into the core; a hung
// restore or build is cut off by a hard timeout and reported as a failure.
package buildtool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/cpmkit/cpmkit/internal/domain"
)

// Runner implements domain.BuildRunner with `dotnet restore` followed by
// `dotnet build --no-restore`.
type Runner struct {
	tool           string
	restoreTimeout time.Duration
	buildTimeout   time.Duration
}

func New(build domain.BuildConfig) *Runner {
	return &Runner{
		tool:           "dotnet",
		restoreTimeout: build.RestoreTimeout,
		buildTimeout:   build.BuildTimeout,
	}
}

// NewWithTool overrides the toolchain binary. Used by tests.
func NewWithTool(tool string, build domain.BuildConfig) *Runner {
	r := New(build)
	r.tool = tool
	return r
}

// RestoreAndBuild runs both toolchain steps in dir. Any failure or timeout
// produces a failed BuildResult with the toolchain's stderr attached; it
// never raises a crash or hangs past the configured bounds.
func (r *Runner) RestoreAndBuild(ctx context.Context, dir string) domain.BuildResult {
	result := domain.BuildResult{}

	if detail, ok := r.run(ctx, dir, r.restoreTimeout, "restore"); !ok {
		result.Details = append(result.Details, fmt.Sprintf("%s restore failed", r.tool), detail)
		return result
	}
	result.Details = append(result.Details, fmt.Sprintf("%s restore succeeded", r.tool))

	if detail, ok := r.run(ctx, dir, r.buildTimeout, "build", "--no-restore"); !ok {
		result.Details = append(result.Details, fmt.Sprintf("%s build failed", r.tool), detail)
		return result
	}
	result.Details = append(result.Details, fmt.Sprintf("%s build succeeded", r.tool))
	result.Succeeded = true
	return result
}

func (r *Runner) run(ctx context.Context, dir string, timeout time.Duration, args ...string) (string, bool) {
	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(stepCtx, r.tool, args...)
	cmd.Dir = dir
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return "", true
	}
	if errors.Is(stepCtx.Err(), context.DeadlineExceeded) {
		return fmt.Sprintf("%s %s timed out after %s", r.tool, args[0], timeout), false
	}
	return fmt.Sprintf("Error: %s", stderr.String()), false
}
