package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/2cute2die/netzob/internal/config"
	"github.com/2cute2die/netzob/internal/logging"
)

func main() {
	formatPath := flag.String("format", "", "path to a TOML format definition")
	initPath := flag.String("init", "", "write a starter format definition and exit")
	force := flag.Bool("force", false, "overwrite an existing file with -init")
	read := flag.String("read", "", "hex payload to parse against the format")
	write := flag.Bool("write", false, "generate one message from the format")
	seed := flag.Uint64("seed", 0, "seed for -write (0 = nondeterministic)")
	showPattern := flag.Bool("pattern", false, "print the derived pattern")
	locate := flag.String("locate", "", "hex buffer to scan for format instances")
	flag.Parse()

	logging.ConfigureRuntime()

	if err := run(*formatPath, *initPath, *force, *read, *write, *seed, *showPattern, *locate); err != nil {
		fmt.Fprintf(os.Stderr, "netzob: %v\n", err)
		os.Exit(1)
	}
}

func run(formatPath, initPath string, force bool, read string, write bool, seed uint64, showPattern bool, locate string) error {
	if initPath != "" {
		if err := config.WriteTemplate(initPath, force); err != nil {
			return err
		}
		fmt.Printf("wrote starter format to %s\n", initPath)
		return nil
	}

	if formatPath == "" {
		return fmt.Errorf("-format is required (or -init to create one)")
	}
	cfg, err := config.Load(formatPath)
	if err != nil {
		return err
	}
	f, err := config.Build(cfg)
	if err != nil {
		return err
	}

	switch {
	case read != "":
		data, err := hex.DecodeString(read)
		if err != nil {
			return fmt.Errorf("-read expects hex: %w", err)
		}
		n, err := f.ReadBytes(data)
		if err != nil {
			return err
		}
		fmt.Printf("matched %s: consumed %d of %d bytes\n", f.Name(), n, len(data))

	case write:
		var out []byte
		if seed != 0 {
			out, err = f.WriteSeeded(seed)
		} else {
			out, err = f.WriteBytes()
		}
		if err != nil {
			return err
		}
		fmt.Println(hex.EncodeToString(out))

	case showPattern:
		fmt.Println(f.BuildPattern().Expr())

	case locate != "":
		data, err := hex.DecodeString(locate)
		if err != nil {
			return fmt.Errorf("-locate expects hex: %w", err)
		}
		spans, err := f.Locate(data)
		if err != nil {
			return err
		}
		for _, s := range spans {
			fmt.Printf("%s at [%d:%d]\n", f.Name(), s.Start, s.End)
		}
		fmt.Printf("%d instance(s)\n", len(spans))

	default:
		return fmt.Errorf("nothing to do: pass -read, -write, -pattern, or -locate")
	}
	return nil
}
