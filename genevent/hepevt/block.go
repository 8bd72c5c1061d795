package hepevt

import (
	"errors"
	"fmt"
	"io"
)

// MaxEntries is the default capacity of a Block (NMXHEP).
const MaxEntries = 10000

var ErrBlockOverflow = errors.New("number of entries exceeds the block size")
var ErrIndexOutOfRange = errors.New("entry index out of range")
var ErrNegativeEntryCount = errors.New("negative number of entries supplied")

// Entry is one particle row of the block.
type Entry struct {
	Status   int
	ID       int
	Parents  [2]int     // first and last mother
	Children [2]int     // first and last daughter
	Momentum [5]float64 // px, py, pz, e, m
	Position [4]float64 // x, y, z, t
}

// Block is a HEPEVT record of one event.
type Block struct {
	eventNumber int
	entries     []Entry
	maxEntries  int
}

// Option defines a functional option for configuring a Block.
type Option func(*Block) error

// WithMaxEntries changes the capacity of the block.
func WithMaxEntries(maxEntries int) Option {
	return func(b *Block) error {
		if maxEntries <= 0 {
			return fmt.Errorf("%w: capacity %d", ErrIndexOutOfRange, maxEntries)
		}

		b.maxEntries = maxEntries

		return nil
	}
}

// NewBlock creates an empty Block with capacity MaxEntries unless configured otherwise.
func NewBlock(options ...Option) (*Block, error) {
	b := &Block{maxEntries: MaxEntries}

	for _, option := range options {
		if err := option(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func (b *Block) MaxEntries() int {
	return b.maxEntries
}

func (b *Block) EventNumber() int {
	return b.eventNumber
}

func (b *Block) SetEventNumber(number int) {
	b.eventNumber = number
}

func (b *Block) NumberEntries() int {
	return len(b.entries)
}

// SetNumberEntries resizes the block; new entries are zeroed, surplus entries are dropped.
func (b *Block) SetNumberEntries(n int) error {
	if n < 0 {
		return ErrNegativeEntryCount
	}

	if n > b.maxEntries {
		return fmt.Errorf("%w: %d > %d", ErrBlockOverflow, n, b.maxEntries)
	}

	if n <= len(b.entries) {
		b.entries = b.entries[:n]
		return nil
	}

	b.entries = append(b.entries, make([]Entry, n-len(b.entries))...)

	return nil
}

// Zero clears the event number and all entries.
func (b *Block) Zero() {
	b.eventNumber = 0
	b.entries = nil
}

// Entry returns a copy of the entry at the 1-based index.
func (b *Block) Entry(index int) (Entry, bool) {
	if !b.valid(index) {
		return Entry{}, false
	}

	return b.entries[index-1], true
}

/***** Getters, returning zero values for invalid indices *****/

func (b *Block) Status(index int) int      { return b.get(index).Status }
func (b *Block) ID(index int) int          { return b.get(index).ID }
func (b *Block) FirstParent(index int) int { return b.get(index).Parents[0] }
func (b *Block) LastParent(index int) int  { return b.get(index).Parents[1] }
func (b *Block) FirstChild(index int) int  { return b.get(index).Children[0] }
func (b *Block) LastChild(index int) int   { return b.get(index).Children[1] }
func (b *Block) Px(index int) float64      { return b.get(index).Momentum[0] }
func (b *Block) Py(index int) float64      { return b.get(index).Momentum[1] }
func (b *Block) Pz(index int) float64      { return b.get(index).Momentum[2] }
func (b *Block) E(index int) float64       { return b.get(index).Momentum[3] }
func (b *Block) M(index int) float64       { return b.get(index).Momentum[4] }
func (b *Block) X(index int) float64       { return b.get(index).Position[0] }
func (b *Block) Y(index int) float64       { return b.get(index).Position[1] }
func (b *Block) Z(index int) float64       { return b.get(index).Position[2] }
func (b *Block) T(index int) float64       { return b.get(index).Position[3] }

/***** Setters *****/

func (b *Block) SetStatus(index int, status int) error {
	return b.update(index, func(e *Entry) { e.Status = status })
}

func (b *Block) SetID(index int, id int) error {
	return b.update(index, func(e *Entry) { e.ID = id })
}

func (b *Block) SetParents(index int, first, last int) error {
	return b.update(index, func(e *Entry) { e.Parents = [2]int{first, last} })
}

func (b *Block) SetChildren(index int, first, last int) error {
	return b.update(index, func(e *Entry) { e.Children = [2]int{first, last} })
}

func (b *Block) SetMomentum(index int, px, py, pz, e float64) error {
	return b.update(index, func(entry *Entry) {
		entry.Momentum[0], entry.Momentum[1], entry.Momentum[2], entry.Momentum[3] = px, py, pz, e
	})
}

func (b *Block) SetMass(index int, mass float64) error {
	return b.update(index, func(e *Entry) { e.Momentum[4] = mass })
}

func (b *Block) SetPosition(index int, x, y, z, t float64) error {
	return b.update(index, func(e *Entry) { e.Position = [4]float64{x, y, z, t} })
}

/***** Relations *****/

// NumberParents returns the size of the mother range of the entry.
func (b *Block) NumberParents(index int) int {
	return rangeSize(b.FirstParent(index), b.LastParent(index))
}

// NumberChildren returns the size of the daughter range of the entry.
// Not every entry in the range needs to be a daughter.
func (b *Block) NumberChildren(index int) int {
	return rangeSize(b.FirstChild(index), b.LastChild(index))
}

// NumberChildrenExact counts the entries whose mother range contains index.
func (b *Block) NumberChildrenExact(index int) int {
	count := 0
	for i := range b.entries {
		if i+1 != index && b.isParentOf(index, i+1) {
			count++
		}
	}

	return count
}

// FixDaughters rebuilds the daughter ranges from the mother ranges.
// The record must have correct mother ranges; it reports whether every daughter range
// afterwards contains exactly the entries that name the particle as a mother.
func (b *Block) FixDaughters() bool {
	for i := range b.entries {
		b.entries[i].Children = [2]int{}
	}

	for k := 1; k <= len(b.entries); k++ {
		first, last := b.parentRange(k)
		if first == 0 {
			continue
		}

		// Mother indices outside the block name no entry.
		first, last = max(first, 1), min(last, len(b.entries))

		for i := first; i <= last; i++ {
			if i == k || !b.valid(i) {
				continue
			}

			children := &b.entries[i-1].Children
			if children[0] == 0 || k < children[0] {
				children[0] = k
			}

			if children[1] == 0 || k > children[1] {
				children[1] = k
			}
		}
	}

	for i := 1; i <= len(b.entries); i++ {
		if b.NumberChildrenExact(i) != b.NumberChildren(i) {
			return false
		}
	}

	return true
}

/***** Printing *****/

// Print writes the whole block in the classic tabular HEPEVT format.
func (b *Block) Print(w io.Writer) error {
	if _, err := fmt.Fprintf(w, " Event No.: %d\n", b.eventNumber); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "  Nr   Type   Parent(s)  Daughter(s)      Px       Py       Pz       E    Inv. M."); err != nil {
		return err
	}

	for i := 1; i <= len(b.entries); i++ {
		if err := b.PrintParticle(w, i); err != nil {
			return err
		}
	}

	return nil
}

// PrintParticle writes one entry.
func (b *Block) PrintParticle(w io.Writer, index int) error {
	e, ok := b.Entry(index)
	if !ok {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	_, err := fmt.Fprintf(w, "%5d %6d%4d - %4d  %4d - %4d %8.2f %8.2f %8.2f %8.2f %8.2f\n",
		index, e.ID,
		e.Parents[0], e.Parents[1],
		e.Children[0], e.Children[1],
		e.Momentum[0], e.Momentum[1], e.Momentum[2], e.Momentum[3], e.Momentum[4])

	return err
}

/***** Internals *****/

func (b *Block) valid(index int) bool {
	return index >= 1 && index <= len(b.entries)
}

func (b *Block) get(index int) Entry {
	e, _ := b.Entry(index)
	return e
}

func (b *Block) update(index int, change func(*Entry)) error {
	if !b.valid(index) {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrIndexOutOfRange, index, len(b.entries))
	}

	change(&b.entries[index-1])

	return nil
}

// parentRange returns the normalized mother range of the entry, a missing last mother means a single one.
func (b *Block) parentRange(index int) (int, int) {
	first, last := b.FirstParent(index), b.LastParent(index)
	if first == 0 {
		return 0, 0
	}

	if last < first {
		last = first
	}

	return first, last
}

func (b *Block) isParentOf(parent, child int) bool {
	first, last := b.parentRange(child)
	return first != 0 && first <= parent && parent <= last
}

func rangeSize(first, last int) int {
	switch {
	case first == 0:
		return 0
	case last < first:
		return 1
	default:
		return last - first + 1
	}
}
