package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"armra/internal/callgraph"
	"armra/internal/config"
	"armra/internal/disasm"
	"armra/internal/elfx"
	"armra/internal/objdump"
	"armra/internal/output"
	"armra/internal/render"
)

func cmdStack(args []string) error {
	fs := flag.NewFlagSet("stack", flag.ExitOnError)
	cfgOut := fs.String("cfg", "", "file to write the call graph to (DOT)")
	tool := fs.String("objdump", "", "disassembler executable")
	edgesFile := fs.String("edges", "", "file of caller:callee pairs")
	funcsFile := fs.String("functions", "", "file of functions restricting the DOT graph")
	listingOut := fs.String("objdump-out", "", "file to save the objdump listing to")
	listingIn := fs.String("listing", "", "saved objdump listing to analyze")
	arch := fs.Int("arch", 0, "word size of --listing (32 or 64)")
	cfgFile := fs.String("config", "", "YAML configuration file")
	jsonOut := fs.String("json", "", "file to write the per-function summary to")
	overviewOut := fs.String("overview", "", "file to write the overview DOT to")
	svg := fs.Bool("svg", false, "render --cfg to SVG with graphviz dot")
	verbose := fs.Bool("verbose", false, "debug output")
	fs.BoolVar(verbose, "v", false, "debug output (shorthand)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("unexpected arguments after %s: %s (flags must come before the ELF file)",
			fs.Arg(0), strings.Join(fs.Args()[1:], " "))
	}

	cfg := config.NewDefault()
	if *cfgFile != "" {
		var err error
		if cfg, err = config.Load(*cfgFile); err != nil {
			return err
		}
	}
	if *tool != "" {
		cfg.Objdump = *tool
	}
	if *edgesFile != "" {
		cfg.EdgesFile = *edgesFile
	}
	if *funcsFile != "" {
		cfg.FunctionsFile = *funcsFile
	}
	if *arch != 0 {
		cfg.Arch = *arch
	}
	if *verbose && cfg.LogLevel < int(config.DebugLevel) {
		cfg.LogLevel = int(config.DebugLevel)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := config.NewLogGroup(cfg)

	text, wordArch, err := loadListing(cfg, *listingIn, fs.Arg(0), log)
	if err != nil {
		return err
	}
	if *listingOut != "" {
		if err := output.WriteText(*listingOut, text); err != nil {
			return err
		}
		log.Infof("wrote listing %s (%d bytes)", *listingOut, len(text))
	}

	g, out, err := analyze(text, wordArch, cfg, log)
	if err != nil {
		return err
	}
	fmt.Print(out.Report)

	if *cfgOut != "" {
		if err := output.WriteText(*cfgOut, out.DOT); err != nil {
			return err
		}
		log.Infof("wrote %s (%d bytes)", *cfgOut, len(out.DOT))
		if *svg {
			svgPath := strings.TrimSuffix(*cfgOut, ".dot") + ".svg"
			if err := runDot(*cfgOut, svgPath, "svg"); err != nil {
				log.Warnf("SVG rendering failed: %v", err)
			} else {
				log.Infof("wrote %s", svgPath)
			}
		}
	}
	if *overviewOut != "" {
		dot := render.Overview(g, "stack usage from "+g.Root())
		if err := output.WriteText(*overviewOut, dot); err != nil {
			return err
		}
		log.Infof("wrote %s (%d bytes)", *overviewOut, len(dot))
	}
	if *jsonOut != "" {
		if err := output.WriteSummaryJSON(*jsonOut, render.Summary(g)); err != nil {
			return err
		}
		log.Infof("wrote %s", *jsonOut)
	}
	return nil
}

// loadListing returns the disassembly text and its word size, either from a
// saved listing or by running objdump on the ELF file.
func loadListing(cfg *config.Config, listingPath, elfPath string, log *config.LogGroup) (string, elfx.Arch, error) {
	if listingPath != "" {
		text, err := objdump.Load(listingPath)
		if err != nil {
			return "", 0, err
		}
		arch := objdump.ArchOf(text)
		if cfg.Arch != 0 {
			if arch, err = elfx.ParseArch(cfg.Arch); err != nil {
				return "", 0, err
			}
		}
		if arch == elfx.ArchUnknown {
			return "", 0, fmt.Errorf("%w: listing %s has no file format header, pass --arch", elfx.ErrUnknownArch, listingPath)
		}
		log.Debugf("listing %s: %s", listingPath, arch)
		return text, arch, nil
	}

	if elfPath == "" {
		return "", 0, fmt.Errorf("an ELF file or --listing is required")
	}
	info, err := elfx.Probe(elfPath)
	if err != nil {
		return "", 0, err
	}
	tool := cfg.Objdump
	if tool == "" {
		tool = objdump.DefaultTool(info.Arch)
	}
	log.Debugf("%s: %s %v, disassembling with %s", elfPath, info.Arch, info.Machine, tool)
	text, err := objdump.Run(tool, elfPath)
	if err != nil {
		return "", 0, err
	}
	return text, info.Arch, nil
}

// analyze runs the full pipeline over a listing: build, inject user edges,
// pick the root, break cycles, evaluate and render.
func analyze(text string, arch elfx.Arch, cfg *config.Config, log *config.LogGroup) (*callgraph.Graph, render.Output, error) {
	g := callgraph.Build(disasm.NewListing(text), arch.WordBytes(), log)

	var edges []callgraph.Edge
	if cfg.EdgesFile != "" {
		f, err := os.Open(cfg.EdgesFile)
		if err != nil {
			return nil, render.Output{}, fmt.Errorf("open edges file: %w", err)
		}
		edges, err = callgraph.ParseEdges(f)
		f.Close()
		if err != nil {
			return nil, render.Output{}, fmt.Errorf("%s: %w", cfg.EdgesFile, err)
		}
	}
	for _, s := range cfg.Edges {
		e, err := callgraph.ParseEdge(s)
		if err != nil {
			return nil, render.Output{}, err
		}
		edges = append(edges, e)
	}
	if err := g.InjectEdges(edges); err != nil {
		return nil, render.Output{}, err
	}
	if len(edges) > 0 {
		log.Debugf("injected %d user edges", len(edges))
	}

	if log.Level() >= config.DebugLevel {
		for _, group := range g.RecursionGroups() {
			log.Debugf("recursion: %s", strings.Join(group, " <-> "))
		}
	}

	root := g.ResolveRoot()
	log.Debugf("root: %s", root)
	g.ResolveCycles(root, log)
	if err := g.VerifyAcyclic(root); err != nil {
		return nil, render.Output{}, err
	}
	if err := g.Evaluate(root); err != nil {
		return nil, render.Output{}, err
	}

	allow, err := cfg.AllowList()
	if err != nil {
		return nil, render.Output{}, err
	}
	g.SetFilter(allow)

	if f := g.Lookup(root); f != nil {
		log.Infof("%d functions, %d cycle edges suppressed, worst case %d B from %s",
			g.Len(), len(g.Suppressed()), f.TotalSize, root)
	} else {
		log.Warnf("no entry point found: %s is not defined", root)
	}
	return g, render.Stack(g), nil
}

func runDot(dotPath, outPath, format string) error {
	cmd := exec.Command("dot", "-T"+format, "-o", outPath, dotPath)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
