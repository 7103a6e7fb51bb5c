package localsolver

import "context"

// twoOpt runs a bounded number of improving 2-opt passes per route: for every
// pair of edges (i-1,i) and (j,j+1) it tries reversing the segment between
// them, keeping the reversal only if it both lowers cost and keeps every
// node's arrival within its window and every precedence constraint intact.
// This mirrors the teacher tsp package's two_opt.go "swap then re-evaluate"
// structure, generalized to stop at the first window/precedence violation
// instead of only checking tour cost.
const maxTwoOptPasses = 25

func (b *builder) twoOpt(ctx context.Context) {
	for _, r := range b.routes {
		for pass := 0; pass < maxTwoOptPasses; pass++ {
			if ctx.Err() != nil {
				return
			}
			if !b.twoOptPass(r) {
				break
			}
		}
	}
}

// twoOptPass performs one improving swap if one exists, returning true if it
// applied a change.
func (b *builder) twoOptPass(r *route) bool {
	v := b.m.Vehicles[r.vehicle]
	n := len(r.nodes)
	for i := 1; i < n-2; i++ {
		for j := i + 1; j < n-1; j++ {
			a, bN := r.nodes[i-1], r.nodes[i]
			c, d := r.nodes[j], r.nodes[j+1]
			if !b.m.Precedence.IsValid(a, c) || !b.m.Precedence.IsValid(bN, d) {
				continue
			}
			before := v.CostMatrix.At(a, bN) + v.CostMatrix.At(c, d)
			after := v.CostMatrix.At(a, c) + v.CostMatrix.At(bN, d)
			// cost matrices are asymmetric, so the reversed segment's own arcs change cost too.
			for k := i; k < j; k++ {
				before += v.CostMatrix.At(r.nodes[k], r.nodes[k+1])
				after += v.CostMatrix.At(r.nodes[k+1], r.nodes[k])
			}
			if after >= before {
				continue
			}
			if !precedenceHoldsWithinReversedSegment(b, r, i, j) {
				continue
			}
			reverseSegment(r.nodes, i, j)
			if !windowsFeasible(b, r) {
				reverseSegment(r.nodes, i, j) // undo
				continue
			}
			b.recomputeFinish(r)
			return true
		}
	}
	return false
}

func reverseSegment(nodes []int, i, j int) {
	for i < j {
		nodes[i], nodes[j] = nodes[j], nodes[i]
		i++
		j--
	}
}

func precedenceHoldsWithinReversedSegment(b *builder, r *route, i, j int) bool {
	seg := append([]int(nil), r.nodes[i:j+1]...)
	reverseSegment(seg, 0, len(seg)-1)
	for k := 1; k < len(seg); k++ {
		if !b.m.Precedence.IsValid(seg[k-1], seg[k]) {
			return false
		}
	}
	return true
}

func windowsFeasible(b *builder, r *route) bool {
	v := b.m.Vehicles[r.vehicle]
	finish := r.startBound
	for i := 1; i < len(r.nodes); i++ {
		finish += v.TimeMatrix.At(r.nodes[i-1], r.nodes[i])
		if w := b.m.Graph.Nodes[r.nodes[i]].Window; w != nil {
			if finish > w.CloseSeconds {
				return false
			}
			if finish < w.OpenSeconds {
				finish = w.OpenSeconds
			}
		}
		if i == len(r.nodes)-1 && finish > r.endBound {
			return false
		}
	}
	return true
}
