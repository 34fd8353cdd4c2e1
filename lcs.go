package jsondiffpatch

// LCS returns a longest common subsequence of a and b under Equivalent. The
// elements are taken from a.
//
// When several subsequences have maximal length the one found by scanning
// both arrays front to back, taking a match whenever it keeps the result
// optimal, wins. Common head and tail runs are matched first; the rest is a
// dynamic programming table over suffixes, so the cost is O(n*m).
func LCS(a, b []any) []any {
	head := 0
	for head < len(a) && head < len(b) && Equivalent(a[head], b[head]) {
		head++
	}
	tail := 0
	for tail < len(a)-head && tail < len(b)-head &&
		Equivalent(a[len(a)-1-tail], b[len(b)-1-tail]) {
		tail++
	}

	out := make([]any, 0, head+tail)
	out = append(out, a[:head]...)
	out = append(out, lcsTable(a[head:len(a)-tail], b[head:len(b)-tail])...)
	return append(out, a[len(a)-tail:]...)
}

func lcsTable(a, b []any) []any {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return nil
	}

	// lengths[i][j] is the LCS length of a[i:] and b[j:].
	lengths := make([][]int, n+1)
	for i := range lengths {
		lengths[i] = make([]int, m+1)
	}
	match := make([][]bool, n)
	for i := n - 1; i >= 0; i-- {
		match[i] = make([]bool, m)
		for j := m - 1; j >= 0; j-- {
			if Equivalent(a[i], b[j]) {
				match[i][j] = true
				lengths[i][j] = lengths[i+1][j+1] + 1
			} else if lengths[i+1][j] >= lengths[i][j+1] {
				lengths[i][j] = lengths[i+1][j]
			} else {
				lengths[i][j] = lengths[i][j+1]
			}
		}
	}

	out := make([]any, 0, lengths[0][0])
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case match[i][j]:
			out = append(out, a[i])
			i++
			j++
		case lengths[i+1][j] >= lengths[i][j+1]:
			i++
		default:
			j++
		}
	}
	return out
}
