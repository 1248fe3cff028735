// Package tt implements the shared transposition table: a fixed-size
// array of 4-entry buckets, probed and stored by every search worker
// concurrently without a lock. Each slot is written as two 64-bit
// words (key^data, data) so a concurrent torn read can be detected and
// rejected by XORing them back together and comparing against the
// probed key, the classic SMP hash-table trick used by engines that
// share one table across worker goroutines instead of copying it.
//
// Grounded on frankkopp/FrankyGo's internal/transpositiontable
// package for the bit-packed entry shape and the parallel-goroutine
// clear/age idiom, restructured into buckets with the lock-free
// storage scheme the spec calls for (the teacher's table is a single
// non-bucketed, mutex-free-but-not-lock-free entry per slot).
package tt

import (
	"sync/atomic"

	"github.com/chessforge/chessforge/internal/types"
)

// Bound records whether a stored score is exact or a bound, reusing
// the search-wide ValueType the teacher's TT and search code share.
type Bound = types.ValueType

const (
	BoundNone  = types.Vnone
	BoundExact = types.EXACT
	BoundUpper = types.ALPHA // fail-low, score is an upper bound
	BoundLower = types.BETA  // fail-high, score is a lower bound
)

// entriesPerBucket matches the spec's cache-line-sized cluster: four
// 16-byte slots share one bucket, picked over for replacement together.
const entriesPerBucket = 4

type slot struct {
	keyXorData uint64
	data       uint64
}

// data word layout (low to high bit):
//
//	move      32 bits (the bare from/to/promotion/type move, sort value stripped)
//	score     16 bits, signed, biased
//	depth      8 bits, signed, biased
//	bound      2 bits
//	age        5 bits
//	used       1 bit  (slot occupied at all, distinguishes from a zeroed bucket)
const (
	moveBits  = 32
	moveShift = 0

	scoreBits  = 16
	scoreShift = moveShift + moveBits
	scoreBias  = 1 << 15

	depthShift = scoreShift + scoreBits
	depthBits  = 8
	depthBias  = 1 << 7

	boundShift = depthShift + depthBits
	boundMask  = 0x3

	ageShift = boundShift + 2
	ageBits  = 5
	ageMask  = uint64(1<<ageBits) - 1

	usedShift = ageShift + ageBits
)

func packData(move types.Move, score types.Value, depth int8, bound Bound, age uint8) uint64 {
	d := uint64(move.MoveOf())
	d |= uint64(uint16(int32(score)+scoreBias)) << scoreShift
	d |= uint64(uint8(int16(depth)+depthBias)) << depthShift
	d |= uint64(bound&boundMask) << boundShift
	d |= (uint64(age) & ageMask) << ageShift
	d |= 1 << usedShift
	return d
}

func unpackData(d uint64) (move types.Move, score types.Value, depth int8, bound Bound, age uint8, used bool) {
	move = types.Move(d>>moveShift) & 0xFFFFFFFF
	score = types.Value(int32(uint16(d>>scoreShift)) - scoreBias)
	depth = int8(int16(uint8(d>>depthShift)) - depthBias)
	bound = Bound((d >> boundShift) & boundMask)
	age = uint8((d >> ageShift) & ageMask)
	used = (d>>usedShift)&1 != 0
	return
}

type bucket [entriesPerBucket]slot

// Table is the shared, lock-free(-ish) transposition table. The zero
// value is not usable; construct with New.
type Table struct {
	buckets []bucket
	mask    uint64
	curAge  uint32

	hits   uint64
	misses uint64
	stores uint64
}

// New allocates a table sized to roughly sizeMb megabytes, rounded
// down to a power of two bucket count the way the teacher's Resize
// does it so the index can be computed with a mask instead of a
// modulo.
func New(sizeMb int) *Table {
	if sizeMb < 1 {
		sizeMb = 1
	}
	bytesWanted := uint64(sizeMb) * 1024 * 1024
	bucketSize := uint64(entriesPerBucket * 16)
	count := bytesWanted / bucketSize
	count = nextPowerOfTwoFloor(count)
	if count == 0 {
		count = 1
	}
	return &Table{
		buckets: make([]bucket, count),
		mask:    count - 1,
	}
}

func nextPowerOfTwoFloor(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	p := uint64(1)
	for p<<1 <= n {
		p <<= 1
	}
	return p
}

// Resize reallocates the table, discarding its contents.
func (t *Table) Resize(sizeMb int) {
	nt := New(sizeMb)
	t.buckets = nt.buckets
	t.mask = nt.mask
	t.curAge = 0
	atomic.StoreUint64(&t.hits, 0)
	atomic.StoreUint64(&t.misses, 0)
	atomic.StoreUint64(&t.stores, 0)
}

// Clear zeroes every slot without reallocating, used between games.
func (t *Table) Clear() {
	for i := range t.buckets {
		b := &t.buckets[i]
		for j := range b {
			atomic.StoreUint64(&b[j].keyXorData, 0)
			atomic.StoreUint64(&b[j].data, 0)
		}
	}
	t.curAge = 0
}

// NewSearch bumps the generation counter so entries from a previous
// search age out of the replacement policy's preference without being
// physically cleared, matching the teacher's AgeEntries idiom.
func (t *Table) NewSearch() {
	t.curAge++
}

func (t *Table) index(key types.Key) uint64 {
	return uint64(key) & t.mask
}

// Probe looks up key. found is false on a miss or on a detected torn
// read (treated as a miss, never trusted). ply is the current search
// ply, used to translate a stored mate score back to "plies from root"
// the way it must be when crossing a TT boundary.
func (t *Table) Probe(key types.Key, ply int) (move types.Move, score types.Value, depth int8, bound Bound, found bool) {
	b := &t.buckets[t.index(key)]
	for i := range b {
		kx := atomic.LoadUint64(&b[i].keyXorData)
		d := atomic.LoadUint64(&b[i].data)
		if kx^d != uint64(key) {
			continue
		}
		mv, sc, dp, bd, _, used := unpackData(d)
		if !used {
			continue
		}
		atomic.AddUint64(&t.hits, 1)
		return mv, valueFromTT(sc, ply), dp, bd, true
	}
	atomic.AddUint64(&t.misses, 1)
	return types.MoveNone, 0, 0, BoundNone, false
}

// Store writes an entry for key, replacing the slot in the bucket that
// is empty, already holds key, or otherwise has the least claim to
// stay: older generation first, then shallower depth.
func (t *Table) Store(key types.Key, move types.Move, score types.Value, depth int8, bound Bound, ply int) {
	atomic.AddUint64(&t.stores, 1)
	b := &t.buckets[t.index(key)]

	ttScore := valueToTT(score, ply)
	age := uint8(t.curAge & ageMask)

	replace := -1
	var replaceRank int64 = 1 << 62
	for i := range b {
		kx := atomic.LoadUint64(&b[i].keyXorData)
		d := atomic.LoadUint64(&b[i].data)
		_, _, dp, _, slotAge, used := unpackData(d)
		if !used {
			replace = i
			break
		}
		if kx^d == uint64(key) {
			// Keep a same-generation entry that is deeper than the new
			// one; otherwise overwrite it.
			if dp > depth && slotAge == age {
				return
			}
			replace = i
			break
		}
		rank := -int64((age-slotAge)&uint8(ageMask))*1000 + int64(dp)
		if rank < replaceRank {
			replaceRank = rank
			replace = i
		}
	}
	if replace == -1 {
		replace = 0
	}

	data := packData(move, ttScore, depth, bound, age)
	atomic.StoreUint64(&b[replace].data, data)
	atomic.StoreUint64(&b[replace].keyXorData, uint64(key)^data)
}

// Hashfull reports table occupancy in permille, sampling the first
// 1000 buckets the way UCI engines report it without walking the
// whole table.
func (t *Table) Hashfull() int {
	sample := len(t.buckets)
	if sample > 1000 {
		sample = 1000
	}
	if sample == 0 {
		return 0
	}
	used := 0
	for i := 0; i < sample; i++ {
		b := &t.buckets[i]
		for j := range b {
			d := atomic.LoadUint64(&b[j].data)
			if _, _, _, _, age, u := unpackData(d); u && uint32(age) == t.curAge&ageMask {
				used++
				break
			}
		}
	}
	return used * 1000 / sample
}

// Stats returns cumulative probe/store counters for UCI-style info
// reporting.
func (t *Table) Stats() (hits, misses, stores uint64) {
	return atomic.LoadUint64(&t.hits), atomic.LoadUint64(&t.misses), atomic.LoadUint64(&t.stores)
}

// valueToTT normalizes a mate score found at ply plies from the root
// into a mate score counted from the current position, so it is valid
// however deep the next probe happens to hit it.
func valueToTT(v types.Value, ply int) types.Value {
	if v >= types.ValueCheckMateThreshold {
		return v + types.Value(ply)
	}
	if v <= -types.ValueCheckMateThreshold {
		return v - types.Value(ply)
	}
	return v
}

// valueFromTT reverses valueToTT when reading a stored mate score back
// into "plies from root" terms for the probing node.
func valueFromTT(v types.Value, ply int) types.Value {
	if v >= types.ValueCheckMateThreshold {
		return v - types.Value(ply)
	}
	if v <= -types.ValueCheckMateThreshold {
		return v + types.Value(ply)
	}
	return v
}
