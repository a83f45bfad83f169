package corpus

import (
	"strconv"
	"strings"
)

// A Link aligns a source position with a target position.
// Positions count every token of a sentence, including
// tokens that training skips.
type Link struct {
	Src int
	Tgt int
}

// ParseAlignment parses one alignment line, a list of
// whitespace-separated "src tgt" integer pairs.
//
// Parsing is best-effort: it stops at the first field
// that is not a non-negative integer, and a dangling
// final integer is ignored.
func ParseAlignment(line string) []Link {
	fields := strings.Fields(line)
	var res []Link
	for i := 0; i+1 < len(fields); i += 2 {
		src, err1 := strconv.Atoi(fields[i])
		tgt, err2 := strconv.Atoi(fields[i+1])
		if err1 != nil || err2 != nil || src < 0 || tgt < 0 {
			break
		}
		res = append(res, Link{Src: src, Tgt: tgt})
	}
	return res
}

// AlignMap maps each source position of a sentence with
// srcLen tokens to an aligned target position, or -1.
//
// A source position without a link borrows the average
// target position of its linked neighbors.
// Links that fall outside [0, srcLen) or [0, tgtLen) are
// ignored.
func AlignMap(links []Link, srcLen, tgtLen int) []int {
	direct := make([]int, srcLen)
	for i := range direct {
		direct[i] = -1
	}
	for _, l := range links {
		if l.Src < srcLen && l.Tgt < tgtLen {
			direct[l.Src] = l.Tgt
		}
	}
	res := make([]int, srcLen)
	for i := range res {
		if direct[i] != -1 {
			res[i] = direct[i]
			continue
		}
		var sum, count int
		if i > 0 && direct[i-1] != -1 {
			sum += direct[i-1]
			count++
		}
		if i+1 < srcLen && direct[i+1] != -1 {
			sum += direct[i+1]
			count++
		}
		if count > 0 {
			res[i] = sum / count
		} else {
			res[i] = -1
		}
	}
	return res
}

// UniformMap maps source positions onto target positions
// in proportion to the sentence lengths.
func UniformMap(srcLen, tgtLen int) []int {
	res := make([]int, srcLen)
	for i := range res {
		if tgtLen == 0 {
			res[i] = -1
		} else {
			res[i] = i * tgtLen / srcLen
		}
	}
	return res
}
