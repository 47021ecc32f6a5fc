package main

import (
	"fmt"
	"os"

	"github.com/loaderkit/bootmem/mem"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <image>",
		Short: "Show the firmware memory map and bootstrap allocator state",
		Long: `The info command reads a physical-memory image, decodes the firmware
memory map at its fixed address, and shows where the allocator would
bootstrap its allocation table. The image itself is never modified; the
bootstrap runs on an in-memory copy.

Example:
  memctl info boot.img
  memctl info boot.img --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
	return cmd
}

func runInfo(path string) error {
	printVerbose("Reading image: %s\n", path)

	m, err := loadMap(path)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(mapSummary(m, path))
	}

	printInfo("Image: %s (%d bytes)\n\n", path, m.Phys().Size())
	if !quiet {
		if err := mem.Dump(m, os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

// loadMap reads the image into memory and bootstraps an allocator over the
// copy, leaving the file untouched.
func loadMap(path string) (*mem.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	m := mem.NewMap(mem.WrapPhys(data))
	m.Init()
	return m, nil
}

func mapSummary(m *mem.Map, path string) map[string]any {
	return map[string]any{
		"image":        path,
		"size":         m.Phys().Size(),
		"tableAddr":    m.TableAddr(),
		"records":      m.Count(),
		"bootstrapped": m.TableAddr() != 0,
	}
}
