package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fiesterovishwa12/eseasm/api"
	"github.com/fiesterovishwa12/eseasm/assembler"
	"github.com/fiesterovishwa12/eseasm/config"
	"github.com/fiesterovishwa12/eseasm/debugger"
	"github.com/fiesterovishwa12/eseasm/disassembler"
	"github.com/fiesterovishwa12/eseasm/loader"
	"github.com/fiesterovishwa12/eseasm/simulator"
	"github.com/fiesterovishwa12/eseasm/tools"
	"github.com/fiesterovishwa12/eseasm/vm"
)

// Version is overridden at build time with -ldflags "-X main.Version=v1.2.3".
var Version = "dev"

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		configPath  = flag.String("config", "", "path to config.toml (default: platform config dir)")
		maxCycles   = flag.Uint64("max-cycles", 0, "maximum instructions before forced halt (0 = config default)")
		entry       = flag.String("entry", "", "entry step number (ignored: execution always starts at step 0)")
		apiServer   = flag.Bool("api-server", false, "start the HTTP/WebSocket API server instead of running a file")
		apiPort     = flag.Int("port", 8080, "API server port (used with -api-server)")
		tuiMode     = flag.Bool("tui", false, "start the interactive TUI debugger instead of running to completion")
		xrefMode    = flag.Bool("xref", false, "print a label cross-reference table instead of running the file")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("eseasm", Version)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	if *maxCycles == 0 {
		*maxCycles = cfg.Execution.MaxCycles
	}

	if *apiServer {
		runAPIServer(*apiPort, cfg)
		return
	}

	path := flag.Arg(0)
	if path == "" {
		path = "multiplication.s"
	}

	source, err := loader.ReadSource(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if *tuiMode {
		runTUI(source)
		return
	}

	if *xrefMode {
		if err := runXref(source); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	if err := runReport(path, source, *maxCycles); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	_ = entry
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func runAPIServer(port int, cfg *config.Config) {
	server := api.NewServer(port, cfg)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- server.Start() }()

	select {
	case err := <-errc:
		if err != nil {
			fmt.Fprintln(os.Stderr, "api server error:", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}
}

func runTUI(source string) {
	d, err := debugger.New(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	tui := debugger.NewTUI(d)
	if err := tui.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "tui error:", err)
		os.Exit(1)
	}
}

// runXref prints a label cross-reference table: every label, the step it
// is defined at, and every instruction that targets it symbolically
// (SPEC_FULL.md §4.3).
func runXref(source string) error {
	a := assembler.New()
	result, err := a.Parse(source)
	if err != nil {
		return err
	}

	symbols := tools.Generate(result)
	for _, name := range tools.SortedNames(symbols) {
		sym := symbols[name]
		defStep := -1
		if sym.Definition != nil {
			defStep = sym.Definition.StepNo
		}
		fmt.Printf("%s (defined at step %d):\n", name, defStep)
		for _, ref := range sym.References {
			fmt.Printf("  %s at step %d\n", ref.Type, ref.StepNo)
		}
	}
	return nil
}

// runReport assembles, disassembles, re-assembles, and runs source,
// printing the four labeled sections plus the simulation result (spec.md
// §6): Loaded File, Assembly Result, Disassembly Result, Re-Assembly
// Result, Simulation Result.
func runReport(path, source string, maxCycles uint64) error {
	fmt.Println("=== Loaded File ===")
	fmt.Println(path)
	fmt.Println()

	a := assembler.New()
	result, err := a.Parse(source)
	if err != nil {
		return err
	}
	image, err := a.Encode(result)
	if err != nil {
		return err
	}
	fmt.Println("=== Assembly Result ===")
	fmt.Print(image)
	fmt.Println()

	decoded, err := disassembler.Decode(image)
	if err != nil {
		return err
	}
	fmt.Println("=== Disassembly Result ===")
	fmt.Println(disassembler.Disassemble(decoded))
	fmt.Println()

	reassembled, err := reassemble(decoded, result.Labels.Snapshot())
	if err != nil {
		return err
	}
	fmt.Println("=== Re-Assembly Result ===")
	fmt.Print(reassembled)
	fmt.Println()

	sim := simulator.New()
	if err := sim.LoadImage(image); err != nil {
		return err
	}
	if err := sim.RunWithLimit(maxCycles); err != nil {
		return err
	}

	fmt.Println("=== Simulation Result ===")
	fmt.Println("PC:", sim.GetPc())
	snap := sim.GetRegfile().Snapshot()
	for i, v := range snap {
		fmt.Printf("%-5s $%-2d = %d\n", vm.RegisterName(i), i, v)
	}
	return nil
}

// reassemble re-encodes an already-decoded instruction list, used to
// verify the disassemble-then-reassemble round trip in the CLI report.
func reassemble(insts []vm.Instruction, labels map[string]int) (string, error) {
	errs := &vm.ErrorList{}
	out := ""
	for _, ins := range insts {
		hex, err := ins.Encode(labels)
		if err != nil {
			errs.Add(err)
			continue
		}
		out += hex + "\n"
	}
	if errs.HasErrors() {
		return "", errs
	}
	return out, nil
}
