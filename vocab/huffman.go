package vocab

import "sort"

// BuildHuffman assigns a Huffman code to every word,
// weighting words by their counts.
//
// The sentence boundary token at index 0 may have any
// count; leaves are merged in count order regardless of
// their position in the vocabulary.
func (v *Vocab) BuildHuffman() error {
	n := len(v.Entries)
	if n < 2 {
		return ErrTooSmall
	}

	// Leaf k of the tree is the word order[k].
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return v.Entries[order[i]].Count > v.Entries[order[j]].Count
	})

	// Nodes [0, n) are leaves and nodes [n, 2n-1) are
	// internal nodes in creation order.
	count := make([]int64, n*2+1)
	binary := make([]byte, n*2+1)
	parent := make([]int, n*2+1)
	for k, idx := range order {
		count[k] = v.Entries[idx].Count
	}
	for i := n; i < len(count); i++ {
		count[i] = 1e15
	}

	// Leaves are consumed from the end of the list and
	// internal nodes from the start of theirs, so both
	// sequences are visited in increasing order.
	pos1, pos2 := n-1, n
	popMin := func() int {
		if pos1 >= 0 && count[pos1] < count[pos2] {
			pos1--
			return pos1 + 1
		}
		pos2++
		return pos2 - 1
	}
	for i := 0; i < n-1; i++ {
		min1 := popMin()
		min2 := popMin()
		count[n+i] = count[min1] + count[min2]
		parent[min1] = n + i
		parent[min2] = n + i
		binary[min2] = 1
	}

	root := n*2 - 2
	var code []byte
	var point []int
	for k, idx := range order {
		code = code[:0]
		point = point[:0]
		for node := k; node != root; node = parent[node] {
			code = append(code, binary[node])
			point = append(point, node)
		}
		length := len(code)
		if length > MaxCodeLength {
			return ErrCodeTooLong
		}
		e := &v.Entries[idx]
		e.Code = make([]byte, length)
		e.Point = make([]int32, length)
		e.Point[0] = int32(n - 2)
		for j := 0; j < length; j++ {
			e.Code[length-j-1] = code[j]
			if j > 0 {
				e.Point[length-j] = int32(point[j] - n)
			}
		}
	}
	return nil
}
