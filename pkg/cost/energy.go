package cost

// Energy computes the full objective for an arrangement:
//
//	-bigram_term + Center*center_term + Ergo*ergo_term
//
// where bigram_term sums freq(i,j)*distance(slot(i),slot(j)) over ordered
// pairs, and the center/ergo terms sum letter frequency against slot
// center distance and reach cost. The bigram term enters negated so that
// minimizing energy pushes frequent pairs apart while pulling frequent
// letters toward cheap central slots. O(n^2); use Delta inside loops.
func (m *Model) Energy(a *Arrangement) float64 {
	n := m.n
	var bigram float64
	for i := 0; i < n; i++ {
		si := a.SlotOf(i)
		row := m.bigramFlat[i*n : i*n+n]
		drow := m.distFlat[si*n : si*n+n]
		for j := 0; j < n; j++ {
			if f := row[j]; f > 0 {
				bigram += f * drow[a.SlotOf(j)]
			}
		}
	}

	var center, ergo float64
	for i := 0; i < n; i++ {
		s := a.SlotOf(i)
		center += m.letters[i] * m.center[s]
		ergo += m.letters[i] * m.reach[s]
	}

	return -bigram + m.weights.Center*center + m.weights.Ergo*ergo
}

// Delta computes the exact energy change of swapping the letters on slots
// s1 and s2, without touching the arrangement. For the two letters moved,
// the center and ergo terms depend only on their own reassignment; the
// bigram term changes against every other letter k by the frequency of
// both directions times the induced distance difference. The pair between
// the two moved letters needs no correction since a transposition leaves
// their mutual distance unchanged. O(n) per call.
//
// Contract: Delta(a, s1, s2) == Energy(after swap) - Energy(before swap)
// up to floating-point tolerance, for any arrangement and any slot pair.
func (m *Model) Delta(a *Arrangement, s1, s2 int) float64 {
	if s1 == s2 {
		return 0
	}
	n := m.n
	l1 := a.LetterAt(s1)
	l2 := a.LetterAt(s2)

	row1 := m.bigramFlat[l1*n : l1*n+n]
	row2 := m.bigramFlat[l2*n : l2*n+n]
	d1 := m.distFlat[s1*n : s1*n+n]
	d2 := m.distFlat[s2*n : s2*n+n]

	var bigram float64
	for k := 0; k < n; k++ {
		if k == l1 || k == l2 {
			continue
		}
		sk := a.SlotOf(k)

		f1 := row1[k] + m.bigramFlat[k*n+l1]
		if f1 > 0 {
			bigram += f1 * (d2[sk] - d1[sk])
		}
		f2 := row2[k] + m.bigramFlat[k*n+l2]
		if f2 > 0 {
			bigram += f2 * (d1[sk] - d2[sk])
		}
	}

	center := m.letters[l1]*(m.center[s2]-m.center[s1]) +
		m.letters[l2]*(m.center[s1]-m.center[s2])
	ergo := m.letters[l1]*(m.reach[s2]-m.reach[s1]) +
		m.letters[l2]*(m.reach[s1]-m.reach[s2])

	return -bigram + m.weights.Center*center + m.weights.Ergo*ergo
}
