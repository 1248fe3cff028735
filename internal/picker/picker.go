// Package picker implements the phased move selector the main search
// and quiescence search pull moves from one at a time: TT move, then
// SEE-ordered winning/equal captures, killers, the counter move,
// history-ordered quiets, and finally SEE-ordered losing captures.
// Each pseudo-legal move is yielded at most once regardless of which
// phase would otherwise produce it twice.
//
// Grounded on frankkopp/FrankyGo's internal/movegen on-demand phase
// state machine (fillOnDemandMoveList's odNew/odPv/od1..od8/odEnd
// stages) for the lazy, phase-by-phase generation idiom, restructured
// to the spec's exact phase order and SEE-based capture split — the
// teacher itself only re-sorts captures by MVV-LVA and never splits
// winning from losing captures around the quiet phases.
package picker

import (
	"sort"

	"github.com/chessforge/chessforge/internal/history"
	"github.com/chessforge/chessforge/internal/movegen"
	"github.com/chessforge/chessforge/internal/position"
	"github.com/chessforge/chessforge/internal/types"
)

type phase int

const (
	phaseTT phase = iota
	phaseGoodCaptures
	phaseKiller0
	phaseKiller1
	phaseCounter
	phaseQuiets
	phaseBadCaptures
	phaseDone

	qsPhaseTT
	qsPhaseCaptures
	qsPhaseEvasions
	qsPhaseDone
)

// Picker yields pseudo-legal moves for one search node in phased
// order. Create one per node (they are cheap: no allocation beyond a
// small emitted-move set and the lazily generated move slices).
type Picker struct {
	pos     *position.Position
	tables  *history.Tables
	ply     int
	ttMove  types.Move
	lastMv  types.Move
	inCheck bool
	qsearch bool

	phase phase

	goodCaptures []types.Move
	badCaptures  []types.Move
	quiets       []types.Move
	evasions     []types.Move
	idx          int

	emitted map[types.Move]bool
}

// New returns a picker for a main-search node.
func New(pos *position.Position, tables *history.Tables, ply int, ttMove types.Move, lastMove types.Move) *Picker {
	return &Picker{
		pos:     pos,
		tables:  tables,
		ply:     ply,
		ttMove:  ttMove,
		lastMv:  lastMove,
		inCheck: pos.InCheck(),
		emitted: make(map[types.Move]bool, 8),
	}
}

// NewQuiescence returns a picker for a quiescence node: TT move, then
// captures, or - if the side to move is in check - every evasion.
func NewQuiescence(pos *position.Position, ttMove types.Move) *Picker {
	p := &Picker{
		pos:     pos,
		ttMove:  ttMove,
		inCheck: pos.InCheck(),
		qsearch: true,
		emitted: make(map[types.Move]bool, 8),
	}
	p.phase = qsPhaseTT
	return p
}

func (p *Picker) mark(m types.Move) bool {
	mv := m.MoveOf()
	if p.emitted[mv] {
		return false
	}
	p.emitted[mv] = true
	return true
}

// Next returns the next move to search, or types.MoveNone once the
// picker is exhausted.
func (p *Picker) Next() types.Move {
	if p.qsearch {
		return p.nextQuiescence()
	}
	for {
		switch p.phase {
		case phaseTT:
			p.phase = phaseGoodCaptures
			if p.ttMove != types.MoveNone && p.mark(p.ttMove) {
				return p.ttMove.MoveOf()
			}
		case phaseGoodCaptures:
			if p.goodCaptures == nil {
				p.generateCaptures()
				p.idx = 0
			}
			if p.idx < len(p.goodCaptures) {
				m := p.goodCaptures[p.idx]
				p.idx++
				if p.mark(m) {
					return m.MoveOf()
				}
				continue
			}
			p.phase = phaseKiller0
			p.idx = 0
		case phaseKiller0:
			p.phase = phaseKiller1
			k0, _ := p.tables.Killers(p.ply)
			if k0 != types.MoveNone && p.isPseudoLegalQuiet(k0) && p.mark(k0) {
				return k0.MoveOf()
			}
		case phaseKiller1:
			p.phase = phaseCounter
			_, k1 := p.tables.Killers(p.ply)
			if k1 != types.MoveNone && p.isPseudoLegalQuiet(k1) && p.mark(k1) {
				return k1.MoveOf()
			}
		case phaseCounter:
			p.phase = phaseQuiets
			cm := p.tables.CounterMove(p.pos.NextPlayer(), p.lastMv)
			if cm != types.MoveNone && p.isPseudoLegalQuiet(cm) && p.mark(cm) {
				return cm.MoveOf()
			}
		case phaseQuiets:
			if p.quiets == nil {
				p.generateQuiets()
				p.idx = 0
			}
			if p.idx < len(p.quiets) {
				m := p.quiets[p.idx]
				p.idx++
				if p.mark(m) {
					return m.MoveOf()
				}
				continue
			}
			p.phase = phaseBadCaptures
			p.idx = 0
		case phaseBadCaptures:
			if p.idx < len(p.badCaptures) {
				m := p.badCaptures[p.idx]
				p.idx++
				if p.mark(m) {
					return m.MoveOf()
				}
				continue
			}
			p.phase = phaseDone
		case phaseDone:
			return types.MoveNone
		}
	}
}

func (p *Picker) nextQuiescence() types.Move {
	for {
		switch p.phase {
		case qsPhaseTT:
			p.phase = qsPhaseCaptures
			if p.ttMove != types.MoveNone && p.mark(p.ttMove) {
				return p.ttMove.MoveOf()
			}
		case qsPhaseCaptures:
			if p.inCheck {
				p.phase = qsPhaseEvasions
				continue
			}
			if p.goodCaptures == nil {
				p.generateCaptures()
				p.goodCaptures = append(p.goodCaptures, p.badCaptures...)
				p.idx = 0
			}
			if p.idx < len(p.goodCaptures) {
				m := p.goodCaptures[p.idx]
				p.idx++
				if p.mark(m) {
					return m.MoveOf()
				}
				continue
			}
			p.phase = qsPhaseDone
		case qsPhaseEvasions:
			if p.evasions == nil {
				moves := make([]types.Move, 0, types.MaxMoves)
				movegen.GeneratePseudoLegalMoves(p.pos, movegen.GenAll, &moves)
				p.evasions = moves
				p.idx = 0
			}
			if p.idx < len(p.evasions) {
				m := p.evasions[p.idx]
				p.idx++
				if p.mark(m) {
					return m.MoveOf()
				}
				continue
			}
			p.phase = qsPhaseDone
		case qsPhaseDone:
			return types.MoveNone
		}
	}
}

func (p *Picker) generateCaptures() {
	moves := make([]types.Move, 0, 32)
	movegen.GeneratePseudoLegalMoves(p.pos, movegen.GenCap, &moves)
	type scored struct {
		m   types.Move
		see types.Value
		mvv types.Value
	}
	buf := make([]scored, 0, len(moves))
	for _, m := range moves {
		see := movegen.See(p.pos, m)
		mvv := mvvLva(p.pos, m)
		buf = append(buf, scored{m, see, mvv})
	}
	sort.SliceStable(buf, func(i, j int) bool {
		if buf[i].see != buf[j].see {
			return buf[i].see > buf[j].see
		}
		return buf[i].mvv > buf[j].mvv
	})
	for _, s := range buf {
		if s.see >= 0 {
			p.goodCaptures = append(p.goodCaptures, s.m)
		} else {
			p.badCaptures = append(p.badCaptures, s.m)
		}
	}
	sort.SliceStable(p.badCaptures, func(i, j int) bool {
		return movegen.See(p.pos, p.badCaptures[i]) < movegen.See(p.pos, p.badCaptures[j])
	})
}

func mvvLva(pos *position.Position, m types.Move) types.Value {
	victim := pos.PieceAt(m.To())
	if m.MoveType() == types.EnPassant {
		return types.Pawn.ValueOf()*16 - pos.PieceAt(m.From()).TypeOf().ValueOf()
	}
	return victim.TypeOf().ValueOf()*16 - pos.PieceAt(m.From()).TypeOf().ValueOf()
}

func (p *Picker) generateQuiets() {
	moves := make([]types.Move, 0, 64)
	movegen.GeneratePseudoLegalMoves(p.pos, movegen.GenNonCap, &moves)
	us := p.pos.NextPlayer()
	sort.SliceStable(moves, func(i, j int) bool {
		return p.tables.HistoryScore(us, moves[i].From(), moves[i].To()) >
			p.tables.HistoryScore(us, moves[j].From(), moves[j].To())
	})
	p.quiets = moves
}

// isPseudoLegalQuiet reports whether a stored killer/counter move is
// still a pseudo-legal quiet move in this position: the table entries persist
// across positions at the same ply/last-move and can go stale.
func (p *Picker) isPseudoLegalQuiet(m types.Move) bool {
	if p.pos.PieceAt(m.From()) == types.PieceNone {
		return false
	}
	if p.pos.PieceAt(m.From()).ColorOf() != p.pos.NextPlayer() {
		return false
	}
	if p.pos.PieceAt(m.To()) != types.PieceNone {
		return false
	}
	moves := make([]types.Move, 0, 32)
	movegen.GeneratePseudoLegalMoves(p.pos, movegen.GenNonCap, &moves)
	for _, cand := range moves {
		if cand.MoveOf() == m.MoveOf() {
			return true
		}
	}
	return false
}
