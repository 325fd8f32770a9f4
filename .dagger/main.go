// Cogniz CI/CD
//
// Package main provides reproducible builds and tests locally and in GitHub actions.
package main

import (
	"context"

	"dagger/cogniz/internal/dagger"
)

// Cogniz is the main module for the Cogniz CI/CD pipeline
type Cogniz struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New creates a new Cogniz CI/CD module instance
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".direnv", "build", "tmp", "_examples"]
	source *dagger.Directory,
) *Cogniz {
	return &Cogniz{
		Source: source,
	}
}

// goContainer returns a Go container with the Go caches and the project
// source mounted. The CLI is pure Go, so CGO stays off.
func (c *Cogniz) goContainer() *dagger.Container {
	return dag.Container().
		From("golang:1.25-bookworm").
		WithEnvVariable("CGO_ENABLED", "0").
		WithEnvVariable("PATH", "/go/bin:$PATH", dagger.ContainerWithEnvVariableOpts{Expand: true}).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", c.Source)
}

// Test runs the cogniz unit tests via "go test"
func (c *Cogniz) Test(ctx context.Context) (string, error) {
	return c.goContainer().
		WithExec([]string{"go", "test", "-v", "./..."}).
		Stdout(ctx)
}
