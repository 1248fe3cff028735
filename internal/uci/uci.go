// Package uci implements a small UCI-lite command loop: enough of the
// Universal Chess Interface protocol to drive chessforge's search from
// a GUI or a terminal (position/go/stop/quit, a minimal setoption, and
// search-progress "info" lines), without the book/ponder/multi-PV
// surface a full UCI implementation would add.
//
// Grounded on frankkopp/FrankyGo's internal/uci package: the
// read-a-line/tokenize/dispatch loop, the position/go token grammar,
// and sending "info"/"bestmove" lines back over the same writer.
package uci

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/chessforge/chessforge/internal/logging"
	"github.com/chessforge/chessforge/internal/movegen"
	"github.com/chessforge/chessforge/internal/position"
	"github.com/chessforge/chessforge/internal/search"
	"github.com/chessforge/chessforge/internal/types"
)

var log = logging.GetLog("uci")

const engineName = "chessforge"
const engineAuthor = "the chessforge contributors"

var regexWhiteSpace = regexp.MustCompile(`\s+`)

// Handler owns one UCI session: the current position, the one Search
// instance reused across "go" commands, and the input/output streams
// (replaceable for testing).
type Handler struct {
	in  *bufio.Scanner
	out *bufio.Writer

	pos   *position.Position
	srch  *search.Search
	perft *movegen.Perft
}

// NewHandler returns a Handler wired to stdin/stdout with a fresh
// search and the start position loaded.
func NewHandler() *Handler {
	pos, _ := position.FromFen(position.StartFen)
	h := &Handler{
		in:    bufio.NewScanner(os.Stdin),
		out:   bufio.NewWriter(os.Stdout),
		pos:   pos,
		srch:  search.NewSearch(),
		perft: movegen.NewPerft(),
	}
	h.srch.OnInfo(h.sendInfo)
	return h
}

// Loop reads commands from stdin until "quit" is received.
func (h *Handler) Loop() {
	for h.in.Scan() {
		if h.handle(h.in.Text()) {
			return
		}
	}
}

// handle processes one line of input, returning true when "quit" was
// received and the loop should stop.
func (h *Handler) handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	log.Debugf("<< %s", line)
	tokens := regexWhiteSpace.Split(line, -1)
	switch tokens[0] {
	case "quit":
		return true
	case "uci":
		h.uci()
	case "isready":
		h.send("readyok")
	case "ucinewgame":
		h.srch.ClearTables()
		h.pos, _ = position.FromFen(position.StartFen)
	case "position":
		h.position(tokens)
	case "go":
		h.goCommand(tokens)
	case "stop":
		h.srch.StopSearch(false)
		h.perft.Stop()
	case "setoption":
		// Engine options are read from config.toml; setoption is
		// accepted and ignored so GUIs that always send a default
		// set don't see an error.
	case "perft":
		h.perftCommand(tokens)
	case "register", "debug", "ponderhit":
		// accepted, no-op
	default:
		log.Warningf("unknown command: %s", line)
	}
	return false
}

func (h *Handler) uci() {
	h.send(fmt.Sprintf("id name %s", engineName))
	h.send(fmt.Sprintf("id author %s", engineAuthor))
	h.send("option name Hash type spin default 128 min 1 max 4096")
	h.send("option name Threads type spin default 1 min 1 max 64")
	h.send("uciok")
}

func (h *Handler) position(tokens []string) {
	if len(tokens) < 2 {
		return
	}
	i := 1
	var pos *position.Position
	var err error
	switch tokens[i] {
	case "startpos":
		i++
		pos, err = position.FromFen(position.StartFen)
	case "fen":
		i++
		var b strings.Builder
		for i < len(tokens) && tokens[i] != "moves" {
			b.WriteString(tokens[i])
			b.WriteString(" ")
			i++
		}
		pos, err = position.FromFen(strings.TrimSpace(b.String()))
	default:
		return
	}
	if err != nil {
		log.Warningf("position: %v", err)
		return
	}

	if i < len(tokens) && tokens[i] == "moves" {
		i++
		for ; i < len(tokens); i++ {
			move := findMove(pos, tokens[i])
			if move == types.MoveNone {
				log.Warningf("position: illegal move %s", tokens[i])
				break
			}
			pos.DoMove(move)
		}
	}
	h.pos = pos
}

// findMove resolves a UCI move string (e.g. "e2e4", "e7e8q") against
// the legal moves of pos, since the bare from/to/promotion encoding a
// GUI sends doesn't carry the move-type bit a castling or en-passant
// move needs.
func findMove(pos *position.Position, uci string) types.Move {
	for _, m := range movegen.GenerateLegalMoves(pos) {
		if strings.EqualFold(m.StringUci(), uci) {
			return m
		}
	}
	return types.MoveNone
}

func (h *Handler) goCommand(tokens []string) {
	limits := search.NewLimits()
	limits.Infinite = false
	us := h.pos.NextPlayer()

	for i := 1; i < len(tokens); i++ {
		switch tokens[i] {
		case "infinite":
			limits.Infinite = true
		case "depth":
			i++
			if i < len(tokens) {
				limits.Depth, _ = strconv.Atoi(tokens[i])
			}
		case "nodes":
			i++
			if i < len(tokens) {
				n, _ := strconv.ParseUint(tokens[i], 10, 64)
				limits.Nodes = n
			}
		case "movetime":
			i++
			if i < len(tokens) {
				ms, _ := strconv.Atoi(tokens[i])
				limits.MoveTime = time.Duration(ms) * time.Millisecond
			}
		case "wtime":
			i++
			if i < len(tokens) {
				ms, _ := strconv.Atoi(tokens[i])
				limits.WhiteTime = time.Duration(ms) * time.Millisecond
			}
		case "btime":
			i++
			if i < len(tokens) {
				ms, _ := strconv.Atoi(tokens[i])
				limits.BlackTime = time.Duration(ms) * time.Millisecond
			}
		case "winc":
			i++
			if i < len(tokens) {
				ms, _ := strconv.Atoi(tokens[i])
				limits.WhiteInc = time.Duration(ms) * time.Millisecond
			}
		case "binc":
			i++
			if i < len(tokens) {
				ms, _ := strconv.Atoi(tokens[i])
				limits.BlackInc = time.Duration(ms) * time.Millisecond
			}
		case "movestogo":
			i++
			if i < len(tokens) {
				limits.MovesToGo, _ = strconv.Atoi(tokens[i])
			}
		}
	}
	_ = us

	if err := h.srch.StartSearch(nil, h.pos, limits); err != nil {
		log.Warningf("go: %v", err)
	}
}

func (h *Handler) perftCommand(tokens []string) {
	depth := 4
	if len(tokens) > 1 {
		if d, err := strconv.Atoi(tokens[1]); err == nil {
			depth = d
		}
	}
	go func() {
		elapsed, err := h.perft.Run(h.pos.Fen(), depth)
		if err != nil {
			log.Warningf("perft: %v", err)
			return
		}
		h.send(fmt.Sprintf("info string perft depth %d nodes %d time %s", depth, h.perft.Nodes, elapsed))
	}()
}

func (h *Handler) sendInfo(info search.Info) {
	pvStr := make([]string, len(info.PV))
	for i, m := range info.PV {
		pvStr[i] = m.StringUci()
	}
	h.send(fmt.Sprintf("info depth %d score cp %d nodes %d time %d pv %s",
		info.Depth, int(info.Score), info.Nodes, info.Time.Milliseconds(), strings.Join(pvStr, " ")))
	h.send(fmt.Sprintf("bestmove %s", h.srch.BestMove().StringUci()))
}

func (h *Handler) send(s string) {
	log.Debugf(">> %s", s)
	_, _ = h.out.WriteString(s + "\n")
	_ = h.out.Flush()
}
