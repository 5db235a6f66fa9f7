package ai

import (
	gocontext "context"
	"os"

	"github.com/memocli/memo/internal/pkg/analyzer"
	"github.com/memocli/memo/internal/pkg/config"
	apperrors "github.com/memocli/memo/internal/pkg/errors"
	"github.com/memocli/memo/internal/pkg/git"
)

// historyWindow is how many recent commits feed the convention analysis.
const historyWindow = 10

// CommitContext carries everything the prompt template needs.
type CommitContext struct {
	Diff      string
	Stats     analyzer.DiffStats
	Rules     config.CommitRules
	History   analyzer.HistoryInsights
	Structure string
}

// ContextBuilder assembles a CommitContext from the repository state and
// the effective configuration.
type ContextBuilder struct {
	git git.Client
	cfg config.Config
}

// NewContextBuilder creates a ContextBuilder.
func NewContextBuilder(gitClient git.Client, cfg config.Config) *ContextBuilder {
	return &ContextBuilder{git: gitClient, cfg: cfg}
}

// Build gathers the staged diff and optional history and structure context.
// Context gathering is best effort; only a missing diff is fatal.
func (b *ContextBuilder) Build(ctx gocontext.Context) (*CommitContext, error) {
	diff, err := b.git.StagedDiff(ctx)
	if err != nil {
		return nil, err
	}

	commitCtx := &CommitContext{
		Diff:  diff,
		Stats: analyzer.AnalyzeDiff(diff),
		Rules: b.cfg.CommitRules,
	}

	if b.cfg.CommitHistoryAnalysis {
		subjects, err := b.git.RecentSubjects(ctx, historyWindow)
		if err != nil {
			apperrors.Debug("skipping history analysis: %v", err)
		} else {
			commitCtx.History = analyzer.AnalyzeHistory(subjects)
		}
	}

	if b.cfg.ProjectStructureContext {
		root, err := os.Getwd()
		if err == nil {
			commitCtx.Structure = analyzer.ProjectStructure(root)
		}
	}
	return commitCtx, nil
}
