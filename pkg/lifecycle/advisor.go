package lifecycle

import (
	"context"

	"github.com/gnames/roomdb/pkg/advisor"
)

// Advisor inspects execution plans and database statistics.
// It never fails: problems are reported inside results or as empty
// results.
type Advisor interface {
	// AnalyzePerformance explains the query and suggests optimizations.
	AnalyzePerformance(ctx context.Context, query string, args ...any) advisor.Analysis

	// TableStatistics returns statistics of rooms and students tables.
	TableStatistics(ctx context.Context) []advisor.TableStat

	// IndexUsageStatistics returns usage of indexes on rooms and students.
	IndexUsageStatistics(ctx context.Context) []advisor.IndexStat

	// AnalyzeAnalytics analyzes every analytical query and adds statistics.
	AnalyzeAnalytics(ctx context.Context) *advisor.Report

	// Recommendations returns general schema advice.
	Recommendations() []string
}
