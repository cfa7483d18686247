package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"thumbdisasm/internal/capdecode"
	"thumbdisasm/internal/config"
	"thumbdisasm/internal/model"
	"thumbdisasm/internal/tui"
)

// Execute runs the thumbdisasm command tree. It is the sole entry point
// cmd/thumbdisasm/main.go calls, grounded on reverse/internal/reverse/cmd.Execute
// in the example pack.
func Execute() {
	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt)); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "thumbdisasm <image>",
	Short: "Recursive-descent Thumb disassembler and reassembler",
	Long: `thumbdisasm walks an ARM Thumb binary from a set of entry points,
following direct and indirect control flow to build a listing that
reassembles byte-for-byte with GNU as.`,
	Example: `
# Disassemble from a single named entry point
thumbdisasm -b 0x08000000 -e 0x08000100:main rom.bin

# Seed entry points from an annotation file
thumbdisasm -b 0x08000000 -c rom.cfg rom.bin
  `,
	Args: cobra.ExactArgs(1),
	RunE: runRoot,
}

func init() {
	rootCmd.Flags().StringP("base", "b", "", "load address of the image, hex (e.g. 0x08000000)")
	rootCmd.Flags().StringP("config", "c", "", "annotation file path (thumb_func/entry directives)")
	rootCmd.Flags().StringArrayP("entry", "e", nil, "entry point as addr or addr:name, hex; repeatable")
	rootCmd.Flags().StringP("out", "o", "", "output file (default stdout)")
	rootCmd.Flags().Bool("view", false, "open the listing in an interactive viewer instead of writing it out")
	rootCmd.Flags().BoolP("debug", "d", false, "enable debug logging")
	rootCmd.MarkFlagRequired("base")
}

func runRoot(cmd *cobra.Command, args []string) error {
	baseStr, _ := cmd.Flags().GetString("base")
	configPath, _ := cmd.Flags().GetString("config")
	entryFlags, _ := cmd.Flags().GetStringArray("entry")
	outPath, _ := cmd.Flags().GetString("out")
	view, _ := cmd.Flags().GetBool("view")
	debug, _ := cmd.Flags().GetBool("debug")

	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{ReportTimestamp: false})
	logger.SetLevel(charmlog.InfoLevel)
	if debug {
		logger.SetLevel(charmlog.DebugLevel)
	}
	logger = logger.WithPrefix("thumbdisasm")

	base, err := parseHexAddr(baseStr)
	if err != nil {
		return fmt.Errorf("--base: %w", err)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	decoder, err := capdecode.New()
	if err != nil {
		return fmt.Errorf("opening decoder: %w", err)
	}
	defer decoder.Close()

	m := model.New(decoder, newModelLogger(logger))
	m.LoadImage(data, base)

	if configPath != "" {
		f, err := os.Open(configPath)
		if err != nil {
			return fmt.Errorf("opening config: %w", err)
		}
		annotations, err := config.Parse(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
		for _, a := range annotations {
			m.AddEntry(a.Addr, a.Label)
		}
	}

	for _, raw := range entryFlags {
		addr, name, err := parseEntryFlag(raw)
		if err != nil {
			return fmt.Errorf("--entry %q: %w", raw, err)
		}
		m.AddEntry(addr, name)
	}

	text := m.MakeCode()

	if view {
		return tui.Run(text)
	}

	if outPath == "" {
		fmt.Print(text)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func parseEntryFlag(raw string) (addr uint64, name string, err error) {
	parts := strings.SplitN(raw, ":", 2)
	addr, err = parseHexAddr(parts[0])
	if err != nil {
		return 0, "", err
	}
	if len(parts) == 2 {
		name = parts[1]
	}
	return addr, name, nil
}

func parseHexAddr(s string) (uint64, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hex address %q: %w", s, err)
	}
	return v, nil
}
