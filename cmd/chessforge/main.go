// Command chessforge is the UCI-lite entry point: it reads a config
// file, wires up logging, and either drops into the interactive UCI
// loop or runs the standalone perft diagnostic the teacher's main.go
// also exposes as a command-line flag.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chessforge/chessforge/internal/config"
	"github.com/chessforge/chessforge/internal/logging"
	"github.com/chessforge/chessforge/internal/movegen"
	"github.com/chessforge/chessforge/internal/position"
	"github.com/chessforge/chessforge/internal/uci"
)

var out = message.NewPrinter(language.German)

func main() {
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	fen := flag.String("fen", position.StartFen, "fen to use for -perft")
	perftDepth := flag.Int("perft", 0, "runs perft to the given depth on -fen and exits")
	cpuProfile := flag.Bool("profile", false, "writes a CPU profile of this run to ./cpu.pprof")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if err := config.Setup(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
	}
	log := logging.GetLog("main")

	if *perftDepth > 0 {
		pf := movegen.NewPerft()
		elapsed, err := pf.Run(*fen, *perftDepth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "perft: %v\n", err)
			os.Exit(1)
		}
		out.Printf("FEN          : %s\n", *fen)
		out.Printf("Depth        : %d\n", *perftDepth)
		out.Printf("Time         : %s\n", elapsed)
		out.Printf("Nodes        : %d\n", pf.Nodes)
		out.Printf("Captures     : %d\n", pf.CaptureCounter)
		out.Printf("En Passant   : %d\n", pf.EnpassantCounter)
		out.Printf("Castles      : %d\n", pf.CastleCounter)
		out.Printf("Promotions   : %d\n", pf.PromotionCounter)
		out.Printf("Checks       : %d\n", pf.CheckCounter)
		return
	}

	log.Info("chessforge starting UCI loop")
	h := uci.NewHandler()
	h.Loop()
}

func printVersionInfo() {
	out.Println("chessforge")
	out.Println("Environment:")
	out.Printf("  Using GO version %s\n", runtime.Version())
	out.Printf("  Running %s using %s as a compiler\n", runtime.GOARCH, runtime.Compiler)
	out.Printf("  Number of CPU: %d\n", runtime.NumCPU())
	cwd, _ := os.Getwd()
	out.Printf("  Working directory: %s\n", cwd)
}
