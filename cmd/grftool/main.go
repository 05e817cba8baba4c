// grftool inspects the maps stored in Ragnarok Online GRF archives.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-nav/internal/game/world"
	"github.com/Faultbox/midgard-nav/pkg/formats"
	"github.com/Faultbox/midgard-nav/pkg/grf"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "info":
		return cmdInfo(args, out)
	case "maps", "ls":
		return cmdMaps(args, out)
	case "map":
		return cmdMap(args, out)
	case "route":
		return cmdRoute(args, out)
	case "extract", "x":
		return cmdExtract(args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `grftool - GRF map utility

Usage:
  grftool <command> [options]

Commands:
  info <file.grf>                          Show archive information
  maps <file.grf>                          List map names
  map <file.grf> <name>                    Show walkability of a map
  route <file.grf> <name> <x1> <y1> <x2> <y2>
                                           Find a walking path between tiles
  extract <file.grf> <path> [output_dir]   Extract one file

Examples:
  grftool maps data.grf
  grftool map data.grf prt_fild08
  grftool route data.grf prontera 150 150 160 180`)
}

func openArchive(args []string, n int) (*grf.Archive, error) {
	if len(args) < n {
		return nil, errUsage
	}
	return grf.Open(args[0])
}

func cmdInfo(args []string, out io.Writer) error {
	archive, err := openArchive(args, 1)
	if err != nil {
		return err
	}
	defer archive.Close()

	extCount := make(map[string]int)
	var total uint64
	for _, name := range archive.List() {
		ext := strings.ToLower(path.Ext(name))
		if ext == "" {
			ext = "(no ext)"
		}
		extCount[ext]++
		if e, err := archive.Stat(name); err == nil {
			total += uint64(e.UncompressedSize)
		}
	}

	fmt.Fprintf(out, "Archive: %s\n", args[0])
	fmt.Fprintf(out, "Version: 0x%x\n", archive.Header().Version)
	fmt.Fprintf(out, "Files:   %d\n", archive.Len())
	fmt.Fprintf(out, "Size:    %.2f MB\n", float64(total)/(1024*1024))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Files by type:")

	exts := make([]string, 0, len(extCount))
	for ext := range extCount {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		if extCount[exts[i]] != extCount[exts[j]] {
			return extCount[exts[i]] > extCount[exts[j]]
		}
		return exts[i] < exts[j]
	})
	for _, ext := range exts {
		fmt.Fprintf(out, "  %-10s %d\n", ext, extCount[ext])
	}
	return nil
}

// mapNames returns the names of data/<name>.gat entries.
func mapNames(archive *grf.Archive) []string {
	var names []string
	for _, name := range archive.List() {
		dir, file := path.Split(name)
		if dir == "data/" && path.Ext(file) == ".gat" {
			names = append(names, strings.TrimSuffix(file, ".gat"))
		}
	}
	return names
}

func cmdMaps(args []string, out io.Writer) error {
	archive, err := openArchive(args, 1)
	if err != nil {
		return err
	}
	defer archive.Close()

	for _, name := range mapNames(archive) {
		fmt.Fprintln(out, name)
	}
	return nil
}

func readGAT(archive *grf.Archive, name string) (*formats.GAT, error) {
	data, err := archive.Read(world.GATPath(name))
	if err != nil {
		return nil, err
	}
	return formats.ParseGAT(data)
}

func cmdMap(args []string, out io.Writer) error {
	archive, err := openArchive(args, 2)
	if err != nil {
		return err
	}
	defer archive.Close()

	name := args[1]
	gat, err := readGAT(archive, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Map:     %s\n", name)
	fmt.Fprintf(out, "Version: %s\n", gat.Version)
	fmt.Fprintf(out, "Size:    %dx%d\n", gat.Width, gat.Height)

	counts := gat.CountByType()
	types := make([]formats.GATCellType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	walkable := 0
	fmt.Fprintln(out, "Cells:")
	for _, t := range types {
		fmt.Fprintf(out, "  %-16s %d\n", t, counts[t])
		if !t.IsWall() && !t.IsDeepWater() {
			walkable += counts[t]
		}
	}
	fmt.Fprintf(out, "Walkable: %.1f%%\n", 100*float64(walkable)/float64(len(gat.Cells)))
	return nil
}

func cmdRoute(args []string, out io.Writer) error {
	if len(args) < 6 {
		return errUsage
	}
	var coords [4]int
	for i := range coords {
		v, err := strconv.Atoi(args[2+i])
		if err != nil {
			return fmt.Errorf("%w: bad coordinate %q", errUsage, args[2+i])
		}
		coords[i] = v
	}

	archive, err := openArchive(args, 2)
	if err != nil {
		return err
	}
	defer archive.Close()

	maps := world.NewManager()
	if err := maps.LoadFromArchive(archive, args[1]); err != nil {
		return err
	}

	from, to := world.Tile(coords[0], coords[1]), world.Tile(coords[2], coords[3])
	p := maps.Current().FindPath(from, to, world.WalkMaskPlayer, 0)
	if p.Empty() {
		fmt.Fprintf(out, "No path from %s to %s\n", from, to)
		return nil
	}

	fmt.Fprintf(out, "Path from %s to %s: %d steps\n", from, to, p.Len())
	steps := make([]string, len(p))
	for i, t := range p {
		steps[i] = t.String()
	}
	fmt.Fprintln(out, strings.Join(steps, " "))
	return nil
}

func cmdExtract(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errUsage
	}

	archive, err := grf.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer archive.Close()

	filePath := fs.Arg(1)
	outputDir := "."
	if fs.NArg() > 2 {
		outputDir = fs.Arg(2)
	}

	data, err := archive.Read(filePath)
	if err != nil {
		return err
	}

	outputPath := filepath.Join(outputDir, path.Base(strings.ReplaceAll(filePath, "\\", "/")))
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	fmt.Fprintf(out, "Extracted: %s (%d bytes)\n", outputPath, len(data))
	return nil
}
