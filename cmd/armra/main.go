package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "stack":
		err = cmdStack(os.Args[2:])
	case "dump":
		err = cmdDump(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `armra: ARM stack resource analyzer

Usage:
  armra stack [flags] <elf>                Worst-case stack usage per function
  armra stack --listing <file> [flags]     Same, from a saved objdump listing
  armra dump  --out <file> <elf>           Save the objdump listing for reuse

Flags must come before the ELF file.

Flags (stack):
  --cfg <file>          Write the call graph in DOT format
  --objdump <path>      Disassembler to run (default: cross objdump for the ELF class)
  --edges <file>        caller:callee pairs to add to the call graph
  --functions <file>    Restrict the DOT graph to paths reaching these functions
  --objdump-out <file>  Save the objdump listing
  --listing <file>      Analyze a saved listing instead of running objdump
  --arch <32|64>        Word size for --listing when its header lacks one
  --config <file>       YAML configuration
  --json <file>         Write per-function summary JSON
  --overview <file>     Write an overview DOT of the pruned call graph
  --svg                 Also render --cfg to SVG with graphviz dot
  -v, --verbose         Debug output
`)
}
