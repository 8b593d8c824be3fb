package cost

import (
	"fmt"
	"math/rand/v2"

	"github.com/Coyote-git/Better-keyboard/pkg/freq"
)

// Arrangement is a bijection between the 26 letters and the 26 slots,
// kept in both directions so that lookups and swaps are O(1).
type Arrangement struct {
	slotLetter [freq.AlphabetSize]int // slot index -> letter index
	letterSlot [freq.AlphabetSize]int // letter index -> slot index
}

// IdentityArrangement places letter i on slot i.
func IdentityArrangement() *Arrangement {
	var a Arrangement
	for i := 0; i < freq.AlphabetSize; i++ {
		a.slotLetter[i] = i
		a.letterSlot[i] = i
	}
	return &a
}

// RandomArrangement draws a uniform random bijection from rng.
func RandomArrangement(rng *rand.Rand) *Arrangement {
	var a Arrangement
	perm := rng.Perm(freq.AlphabetSize)
	for slot, letter := range perm {
		a.slotLetter[slot] = letter
		a.letterSlot[letter] = slot
	}
	return &a
}

// LetterAt returns the letter index occupying a slot.
func (a *Arrangement) LetterAt(slot int) int {
	return a.slotLetter[slot]
}

// SlotOf returns the slot occupied by a letter index.
func (a *Arrangement) SlotOf(letter int) int {
	return a.letterSlot[letter]
}

// Swap exchanges the letters on two slots. Swapping preserves bijectivity,
// so this is the only mutation Arrangement offers.
func (a *Arrangement) Swap(s1, s2 int) {
	l1, l2 := a.slotLetter[s1], a.slotLetter[s2]
	a.slotLetter[s1], a.slotLetter[s2] = l2, l1
	a.letterSlot[l1], a.letterSlot[l2] = s2, s1
}

// Clone returns an independent copy. Best-so-far states must be cloned,
// never aliased, because the working arrangement keeps mutating.
func (a *Arrangement) Clone() *Arrangement {
	c := *a
	return &c
}

// Letters renders the arrangement in slot order, e.g. "QWERTY...".
func (a *Arrangement) Letters() string {
	out := make([]byte, freq.AlphabetSize)
	for slot, letter := range a.slotLetter {
		out[slot] = freq.Letter(letter)
	}
	return string(out)
}

// Validate checks the bijection invariant: every slot holds exactly one
// letter, every letter sits on exactly one slot, and the two directions
// agree.
func (a *Arrangement) Validate() error {
	var seen [freq.AlphabetSize]bool
	for slot, letter := range a.slotLetter {
		if letter < 0 || letter >= freq.AlphabetSize {
			return fmt.Errorf("cost: slot %d holds invalid letter index %d", slot, letter)
		}
		if seen[letter] {
			return fmt.Errorf("cost: letter %c occupies more than one slot", freq.Letter(letter))
		}
		seen[letter] = true
		if a.letterSlot[letter] != slot {
			return fmt.Errorf("cost: slot %d and letter %c maps disagree", slot, freq.Letter(letter))
		}
	}
	return nil
}

// Equal reports whether two arrangements place every letter identically.
func (a *Arrangement) Equal(b *Arrangement) bool {
	return a.slotLetter == b.slotLetter
}
