package bots

import "fmt"

type SearchStats struct {
	Nodes     uint64 // #positions visited, leaves included
	Leaves    uint64 // #positions scored by the evaluator
	Terminals uint64 // #positions with no legal move
	Cutoffs   uint64 // #nodes that stopped early on beta <= alpha
}

func (s SearchStats) String() string {
	return fmt.Sprintf("nodes %d leaves %d terminals %d cutoffs %d",
		s.Nodes, s.Leaves, s.Terminals, s.Cutoffs)
}
