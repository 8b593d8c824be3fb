// Package freq holds the letter and bigram frequency tables the energy
// model is weighted by. Tables are immutable after construction and safe
// to share across concurrent optimization runs.
package freq

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// AlphabetSize is the number of symbols being arranged.
const AlphabetSize = 26

// Letter returns the symbol for an alphabet index (0 -> 'A').
func Letter(i int) byte {
	return 'A' + byte(i)
}

// Index returns the alphabet index for a symbol, or -1 if the byte is not
// an uppercase letter.
func Index(b byte) int {
	if b < 'A' || b > 'Z' {
		return -1
	}
	return int(b - 'A')
}

// Alphabet returns the symbols in index order.
func Alphabet() string {
	return "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
}

// Tables bundles per-letter usage frequencies and directional bigram
// frequencies. Bigram (A,B) and (B,A) are distinct entries.
type Tables struct {
	letters [AlphabetSize]float64
	bigrams *mat.Dense // 26x26, row = first letter, col = second
}

// New builds Tables from a per-letter array and a sparse ordered-pair map
// keyed by two-letter strings like "TH". Unknown keys are ignored.
func New(letters [AlphabetSize]float64, bigrams map[string]float64) *Tables {
	t := &Tables{
		letters: letters,
		bigrams: mat.NewDense(AlphabetSize, AlphabetSize, nil),
	}
	for pair, f := range bigrams {
		if len(pair) != 2 || f < 0 {
			continue
		}
		i, j := Index(pair[0]), Index(pair[1])
		if i < 0 || j < 0 {
			continue
		}
		t.bigrams.Set(i, j, f)
	}
	return t
}

// English returns the built-in English frequency tables.
func English() *Tables {
	return New(englishLetterFreq, englishBigramFreq)
}

// LetterFreq returns the usage frequency of letter index i.
func (t *Tables) LetterFreq(i int) float64 {
	return t.letters[i]
}

// LetterFreqs returns a copy of the per-letter frequency array in
// alphabet order.
func (t *Tables) LetterFreqs() []float64 {
	out := make([]float64, AlphabetSize)
	copy(out, t.letters[:])
	return out
}

// Bigram returns the directional frequency of the ordered pair (i, j).
func (t *Tables) Bigram(i, j int) float64 {
	return t.bigrams.At(i, j)
}

// BigramMatrix returns a copy of the dense 26x26 bigram matrix.
func (t *Tables) BigramMatrix() *mat.Dense {
	return mat.DenseCopyOf(t.bigrams)
}

// AllZeroLetters reports whether every letter frequency is zero. Such a
// table leaves the center and ergonomic energy terms inert.
func (t *Tables) AllZeroLetters() bool {
	for _, f := range t.letters {
		if f != 0 {
			return false
		}
	}
	return true
}

// AllZeroBigrams reports whether every bigram frequency is zero. Such a
// table leaves the separation energy term inert.
func (t *Tables) AllZeroBigrams() bool {
	for i := 0; i < AlphabetSize; i++ {
		for j := 0; j < AlphabetSize; j++ {
			if t.bigrams.At(i, j) != 0 {
				return false
			}
		}
	}
	return true
}

// Asymmetry lists ordered pairs recorded in only one direction, e.g. "TH"
// present but "HT" absent. The energy sum is strictly directional, so a
// one-sided table weights that pair asymmetrically; callers should surface
// this rather than symmetrize silently.
func (t *Tables) Asymmetry() []string {
	var pairs []string
	for i := 0; i < AlphabetSize; i++ {
		for j := 0; j < AlphabetSize; j++ {
			if i == j {
				continue
			}
			if t.bigrams.At(i, j) > 0 && t.bigrams.At(j, i) == 0 {
				pairs = append(pairs, string([]byte{Letter(i), Letter(j)}))
			}
		}
	}
	return pairs
}

// Pair is a bigram with its frequency, used for reporting.
type Pair struct {
	First  byte
	Second byte
	Freq   float64
}

func (p Pair) String() string {
	return string([]byte{p.First, p.Second})
}

// TopBigrams returns the n most frequent ordered pairs, descending. Ties
// break alphabetically so the order is stable.
func (t *Tables) TopBigrams(n int) []Pair {
	all := make([]Pair, 0, AlphabetSize*AlphabetSize)
	for i := 0; i < AlphabetSize; i++ {
		for j := 0; j < AlphabetSize; j++ {
			if f := t.bigrams.At(i, j); f > 0 {
				all = append(all, Pair{First: Letter(i), Second: Letter(j), Freq: f})
			}
		}
	}
	sort.Slice(all, func(a, b int) bool {
		if all[a].Freq != all[b].Freq {
			return all[a].Freq > all[b].Freq
		}
		return all[a].String() < all[b].String()
	})
	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}

// TopLetters returns the n most frequent letters, descending, ties
// alphabetical.
func (t *Tables) TopLetters(n int) []byte {
	idx := make([]int, AlphabetSize)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		if t.letters[idx[a]] != t.letters[idx[b]] {
			return t.letters[idx[a]] > t.letters[idx[b]]
		}
		return idx[a] < idx[b]
	})
	if n > AlphabetSize {
		n = AlphabetSize
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = Letter(idx[i])
	}
	return out
}
