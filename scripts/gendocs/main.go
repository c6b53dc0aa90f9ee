// Package main provides a generator that extracts CLI, configuration and
// lint rule metadata from sqlfluff source code and generates markdown
// documentation.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=config -outdir=docs/concepts
//	go run ./scripts/gendocs -gen=lint -outdir=docs/linting
//	go run ./scripts/gendocs -gen=all
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

var (
	genFlag    = flag.String("gen", "all", "what to generate: cli, config, lint, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

// generator writes one documentation section into a directory.
type generator struct {
	name       string
	defaultDir string // relative to docs/
	run        func(outDir string) error
}

var generators = []generator{
	{name: "cli", defaultDir: "cli", run: generateCLIDocs},
	{name: "config", defaultDir: "concepts", run: generateSchemaDocs},
	{name: "lint", defaultDir: "linting", run: generateLintDocs},
}

func main() {
	flag.Parse()

	// Find project root (where go.mod is)
	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}

	log.Printf("Project root: %s", projectRoot)

	if err := generate(*genFlag, *outDirFlag, filepath.Join(projectRoot, "docs")); err != nil {
		log.Fatal(err)
	}

	log.Println("Done!")
}

// generate runs the generator named gen, or all of them. outDir overrides
// the destination of a single generator.
func generate(gen, outDir, docsDir string) error {
	if gen == "all" {
		for _, g := range generators {
			if err := g.run(filepath.Join(docsDir, g.defaultDir)); err != nil {
				return fmt.Errorf("failed to generate %s docs: %w", g.name, err)
			}
		}
		return nil
	}

	for _, g := range generators {
		if g.name != gen {
			continue
		}
		if outDir == "" {
			outDir = filepath.Join(docsDir, g.defaultDir)
		}
		if err := g.run(outDir); err != nil {
			return fmt.Errorf("failed to generate %s docs: %w", g.name, err)
		}
		return nil
	}
	return fmt.Errorf("unknown -gen value: %s (use: cli, config, lint, all)", gen)
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
