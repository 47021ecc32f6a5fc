package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/loaderkit/bootmem/internal/format"
	"github.com/loaderkit/bootmem/mem"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCreateCmd())
}

func newCreateCmd() *cobra.Command {
	var (
		size     uint64
		usable   []string
		reserved []string
	)
	cmd := &cobra.Command{
		Use:   "create <image>",
		Short: "Create a synthetic physical-memory image",
		Long: `The create command writes a zeroed image of the given size with a
firmware memory map at its fixed address. Regions are base:length pairs;
values accept 0x prefixes.

Example:
  memctl create boot.img --size 0x1000000 --usable 0x60000:0xFA0000
  memctl create boot.img --usable 0:0x9F000 --reserved 0x9F000:0x61000 --usable 0x100000:0xF00000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0], size, usable, reserved)
		},
	}
	cmd.Flags().Uint64Var(&size, "size", 0x1000000, "Image size in bytes")
	cmd.Flags().StringArrayVar(&usable, "usable", nil, "Usable region as base:length (repeatable)")
	cmd.Flags().StringArrayVar(&reserved, "reserved", nil, "Reserved region as base:length (repeatable)")
	return cmd
}

func runCreate(path string, size uint64, usable, reserved []string) error {
	img, err := mem.CreateImage(path, size)
	if err != nil {
		return err
	}
	defer img.Close()

	off := format.MapAddr
	write := func(specs []string, typ uint32) error {
		for _, s := range specs {
			base, length, err := parseRegion(s)
			if err != nil {
				return err
			}
			e := format.E820Entry{Base: base, Length: length, Type: typ, Attr: 1}
			if err := format.PutE820Entry(img.Bytes(), off, e); err != nil {
				return fmt.Errorf("region %s: %w", s, err)
			}
			off += format.E820EntrySize
		}
		return nil
	}
	if err := write(usable, format.E820TypeUsable); err != nil {
		return err
	}
	if err := write(reserved, format.E820TypeReserved); err != nil {
		return err
	}
	if err := img.Sync(); err != nil {
		return err
	}
	printInfo("created %s: %d bytes, %d map entries\n",
		path, size, (off-format.MapAddr)/format.E820EntrySize)
	return nil
}

func parseRegion(s string) (base, length uint64, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("region %q: want base:length", s)
	}
	if base, err = strconv.ParseUint(parts[0], 0, 64); err != nil {
		return 0, 0, err
	}
	if length, err = strconv.ParseUint(parts[1], 0, 64); err != nil {
		return 0, 0, err
	}
	return base, length, nil
}
