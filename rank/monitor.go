package rank

import "github.com/poiesic/rankit/core"

// RankMonitor provides hooks to observe a ranking call.
// Implement this interface to track intermediate steps and results.
type RankMonitor interface {
	Start(query string, strategy Strategy)
	AfterTokenize(tokens []string)
	AfterScore(entries []core.ScoreEntry)
	Finish(results []core.ScoreEntry)
}

// noopMonitor is a no-op implementation of RankMonitor
type noopMonitor struct{}

var _ RankMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ Strategy)      {}
func (n *noopMonitor) AfterTokenize(_ []string)        {}
func (n *noopMonitor) AfterScore(_ []core.ScoreEntry)  {}
func (n *noopMonitor) Finish(_ []core.ScoreEntry)      {}
