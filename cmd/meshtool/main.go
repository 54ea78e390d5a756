// meshtool is a CLI utility for inspecting Wavefront mesh files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/racer/pkg/obj"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(os.Stdout, args)
	case "validate", "check":
		err = cmdValidate(os.Stdout, args)
	case "dump":
		err = cmdDump(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - Wavefront mesh utility

Usage:
  meshtool <command> [options]

Commands:
  info <file.obj>...                 Show vertex, triangle and bounds info
  validate [-j N] <file|dir>...      Parse every .obj file, report failures
  dump [-n N] <file.obj>             Print interleaved vertices

Examples:
  meshtool info assets/car.obj assets/wheel.obj
  meshtool validate -j 8 assets
  meshtool dump -n 6 assets/wheel.obj`)
}

func cmdInfo(w io.Writer, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: meshtool info <file.obj>...")
	}

	for i, path := range args {
		mesh, err := obj.ParseFile(path)
		if err != nil {
			return err
		}

		if i > 0 {
			fmt.Fprintln(w)
		}
		b := mesh.Bounds()
		size := b.Size()
		fmt.Fprintf(w, "File:      %s\n", path)
		fmt.Fprintf(w, "Vertices:  %d\n", mesh.VertexCount())
		fmt.Fprintf(w, "Triangles: %d\n", mesh.TriangleCount())
		fmt.Fprintf(w, "Bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
			b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
		fmt.Fprintf(w, "Size:      %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	}
	return nil
}

// validation is the outcome of parsing one file.
type validation struct {
	path      string
	triangles int
	err       error
}

func cmdValidate(w io.Writer, args []string) error {
	flags := flag.NewFlagSet("validate", flag.ContinueOnError)
	jobs := flags.Int("j", 4, "Parse N files in parallel")
	quiet := flags.Bool("q", false, "Hide the progress bar")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() < 1 {
		return errors.New("usage: meshtool validate [-j N] <file|dir>...")
	}

	paths, err := collectMeshes(flags.Args())
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if !*quiet {
		bar = progressbar.Default(int64(len(paths)), "validating")
		defer bar.Close()
	}

	results := validateAll(paths, *jobs, func() {
		if bar != nil {
			_ = bar.Add(1)
		}
	})

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(w, "FAIL %v\n", r.err)
		}
	}
	fmt.Fprintf(w, "%d files, %d failed\n", len(results), failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(results))
	}
	return nil
}

// validateAll parses paths with at most jobs concurrent parsers. Results are
// returned in path order.
func validateAll(paths []string, jobs int, progress func()) []validation {
	results := make([]validation, len(paths))

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(max(1, jobs))

	for i, path := range paths {
		g.Go(func() error {
			mesh, err := obj.ParseFile(path)
			r := validation{path: path, err: err}
			if err == nil {
				r.triangles = mesh.TriangleCount()
			}
			results[i] = r

			mu.Lock()
			progress()
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// collectMeshes expands directories into the .obj files they contain.
func collectMeshes(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".obj") {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(paths)
	return paths, nil
}

func cmdDump(w io.Writer, args []string) error {
	flags := flag.NewFlagSet("dump", flag.ContinueOnError)
	limit := flags.Int("n", 0, "Limit output to N vertices (0 = all)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() < 1 {
		return errors.New("usage: meshtool dump [-n N] <file.obj>")
	}

	mesh, err := obj.ParseFile(flags.Arg(0))
	if err != nil {
		return err
	}

	data := mesh.Interleave()
	fmt.Fprintln(w, "#     px       py       pz       nx       ny       nz       u        v")
	for i := 0; i*obj.FloatsPerVertex < len(data); i++ {
		if *limit > 0 && i >= *limit {
			fmt.Fprintf(w, "... %d more\n", mesh.VertexCount()-i)
			break
		}
		v := data[i*obj.FloatsPerVertex : (i+1)*obj.FloatsPerVertex]
		fmt.Fprintf(w, "%-5d", i)
		for _, f := range v {
			fmt.Fprintf(w, " %8.4f", f)
		}
		fmt.Fprintln(w)
	}
	return nil
}
