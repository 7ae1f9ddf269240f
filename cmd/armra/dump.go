package main

import (
	"flag"
	"fmt"
	"os"

	"armra/internal/elfx"
	"armra/internal/objdump"
	"armra/internal/output"
)

func cmdDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	out := fs.String("out", "", "file to write the listing to")
	tool := fs.String("objdump", "", "disassembler executable")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("--out is required")
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("exactly one ELF file is required, after the flags")
	}

	info, err := elfx.Probe(fs.Arg(0))
	if err != nil {
		return err
	}
	if *tool == "" {
		*tool = objdump.DefaultTool(info.Arch)
	}
	text, err := objdump.Run(*tool, info.Path)
	if err != nil {
		return err
	}
	if err := output.WriteText(*out, text); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d bytes, %s)\n", *out, len(text), info.Arch)
	return nil
}
