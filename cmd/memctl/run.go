package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/loaderkit/bootmem/mem"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	var commit bool
	cmd := &cobra.Command{
		Use:   "run <image> <script>",
		Short: "Replay an allocation script against an image",
		Long: `The run command bootstraps the allocator and replays a line-based
allocation script, printing the address each operation yields. Earlier
results are referenced by index.

Script syntax (sizes and addresses accept 0x prefixes; '#' starts a comment):

  malloc <size>
  realloc <idx> <size>
  free <idx>

By default the image is left untouched; --commit maps it read-write and
persists the resulting memory state.

Example:
  memctl run boot.img ops.txt
  memctl run boot.img ops.txt --commit`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args[0], args[1], commit)
		},
	}
	cmd.Flags().BoolVar(&commit, "commit", false, "Write the resulting memory state back to the image")
	return cmd
}

func runRun(path, script string, commit bool) error {
	var m *mem.Map
	if commit {
		img, err := mem.OpenImage(path)
		if err != nil {
			return err
		}
		defer img.Close()
		m = mem.NewMap(img.Phys)
		m.Init()
		defer func() {
			if err := img.Sync(); err != nil {
				fmt.Fprintf(os.Stderr, "sync: %v\n", err)
			}
		}()
	} else {
		var err error
		if m, err = loadMap(path); err != nil {
			return err
		}
	}
	if m.TableAddr() == 0 {
		return fmt.Errorf("bootstrap found no usable region in %s", path)
	}

	results, err := replayScript(m, script)
	if err != nil {
		return err
	}
	printVerbose("replayed %d operations, %d live records\n", len(results), m.Count())
	return mem.Verify(m)
}

// replayScript executes the script against m, printing one line per
// operation, and returns the address produced by each line.
func replayScript(m *mem.Map, path string) ([]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	var results []uint64
	sc := bufio.NewScanner(f)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		fail := func(err error) ([]uint64, error) {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}

		switch fields[0] {
		case "malloc":
			if len(fields) != 2 {
				return fail(fmt.Errorf("malloc wants one size argument"))
			}
			size, err := strconv.ParseUint(fields[1], 0, 64)
			if err != nil {
				return fail(err)
			}
			addr, err := m.Malloc(size)
			if err != nil {
				return fail(err)
			}
			printInfo("#%-3d malloc %#x -> %#x\n", len(results), size, addr)
			results = append(results, addr)

		case "realloc":
			if len(fields) != 3 {
				return fail(fmt.Errorf("realloc wants index and size"))
			}
			idx, err := scriptIndex(fields[1], len(results))
			if err != nil {
				return fail(err)
			}
			size, err := strconv.ParseUint(fields[2], 0, 64)
			if err != nil {
				return fail(err)
			}
			addr, err := m.Realloc(results[idx], size)
			if err != nil {
				return fail(err)
			}
			printInfo("#%-3d realloc #%d %#x -> %#x\n", len(results), idx, size, addr)
			results[idx] = addr
			results = append(results, addr)

		case "free":
			if len(fields) != 2 {
				return fail(fmt.Errorf("free wants one index argument"))
			}
			idx, err := scriptIndex(fields[1], len(results))
			if err != nil {
				return fail(err)
			}
			m.Free(results[idx])
			printInfo("#%-3d free #%d (%#x)\n", len(results), idx, results[idx])
			results = append(results, 0)

		default:
			return fail(fmt.Errorf("unknown operation %q", fields[0]))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func scriptIndex(s string, n int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("index %d out of range (have %d results)", idx, n)
	}
	return idx, nil
}
