// Package advisor turns query execution plans into optimization
// suggestions. It understands JSON plans of PostgreSQL
// (EXPLAIN (FORMAT JSON)) and of MySQL (EXPLAIN FORMAT=JSON).
package advisor

import (
	"errors"
	"fmt"

	"github.com/gnames/gnfmt"
)

const (
	// PostgreSQL plan dialect.
	PostgreSQL = "postgres"
	// MySQL plan dialect.
	MySQL = "mysql"

	// FullScanAccess is the access type of a full table scan.
	FullScanAccess = "ALL"
)

const (
	FullScanSuggestion   = "Consider adding indexes - full table scan detected"
	NestedLoopSuggestion = "Consider optimizing join conditions and adding composite indexes"
	FilesortSuggestion   = "Consider adding index for ORDER BY clause to avoid filesort"
	TempTableSuggestion  = "Query uses temporary table - consider query restructuring"
	OptimizedMessage     = "Query execution plan looks optimized"
	UnanalyzableMessage  = "Unable to analyze execution plan"
)

// Analysis is the outcome of analyzing one query.
type Analysis struct {
	// Name of a known query, empty for ad-hoc ones.
	Name          string   `json:"name,omitempty"`
	Query         string   `json:"query"`
	ExecutionPlan any      `json:"execution_plan"`
	Suggestions   []string `json:"optimization_suggestions"`
	Error         string   `json:"error,omitempty"`
}

// Plan is a dialect-independent summary of an execution plan.
type Plan struct {
	// Dialect is PostgreSQL or MySQL.
	Dialect string

	// AccessType of the driving table, "ALL" for a full scan.
	// For PostgreSQL it is taken from the first relation scan of the plan.
	AccessType string

	// Table scanned with AccessType, if known.
	Table string

	// NestedLoop is true when the plan joins with nested loops.
	NestedLoop bool

	// Filesort is true when rows are sorted outside of an index.
	Filesort bool

	// TempTable is true when intermediate results are materialized.
	// For PostgreSQL it is set by Materialize nodes and by sorts that
	// spill to disk. Hashed aggregation (the usual plan of GROUP BY) is
	// kept in memory and does not set it, unlike MySQL where GROUP BY
	// often reports using_temporary_table.
	TempTable bool

	// Raw is the decoded plan as returned by the database.
	Raw any
}

var pgAccessTypes = map[string]string{
	"Seq Scan":         FullScanAccess,
	"Bitmap Heap Scan": "range",
	"Index Scan":       "ref",
	"Index Only Scan":  "index",
}

// ParsePlan decodes a JSON execution plan of PostgreSQL or MySQL.
func ParsePlan(data []byte) (*Plan, error) {
	var raw any
	enc := gnfmt.GNjson{}
	if err := enc.Decode(data, &raw); err != nil {
		return nil, fmt.Errorf("cannot decode execution plan: %w", err)
	}

	switch v := raw.(type) {
	case []any:
		if len(v) == 0 {
			return nil, errors.New("execution plan is empty")
		}
		if top, ok := v[0].(map[string]any); ok {
			if node, ok := top["Plan"].(map[string]any); ok {
				return parsePostgres(node, raw), nil
			}
		}
	case map[string]any:
		if qb, ok := v["query_block"].(map[string]any); ok {
			return parseMySQL(qb, raw), nil
		}
		if node, ok := v["Plan"].(map[string]any); ok {
			return parsePostgres(node, raw), nil
		}
	}
	return nil, errors.New("unknown execution plan format")
}

// Suggest applies rules to the plan in fixed order: full scan, nested
// loop, filesort, temporary table. A plan that triggers none of them
// gets OptimizedMessage.
func Suggest(p *Plan) []string {
	if p == nil {
		return []string{UnanalyzableMessage}
	}
	var res []string
	if p.AccessType == FullScanAccess {
		res = append(res, FullScanSuggestion)
	}
	if p.NestedLoop {
		res = append(res, NestedLoopSuggestion)
	}
	if p.Filesort {
		res = append(res, FilesortSuggestion)
	}
	if p.TempTable {
		res = append(res, TempTableSuggestion)
	}
	if len(res) == 0 {
		res = append(res, OptimizedMessage)
	}
	return res
}

// Recommendations returns general schema advice for the analytical
// workload.
func Recommendations() []string {
	return []string{
		"Composite index on (room_id, sex, age_years) for mixed gender analysis",
		"Index on age_years column for age-based queries",
		"Index on room_id for student-room relationship queries",
		"Store-maintained age column to avoid runtime computation",
		"Consider partitioning students table by room_id for large datasets",
		"Monitor query execution plans regularly",
		"Use EXPLAIN ANALYZE to identify bottlenecks",
		"Consider materialized views for frequently accessed analytics",
	}
}

func parseMySQL(qb map[string]any, raw any) *Plan {
	res := &Plan{Dialect: MySQL, Raw: raw}
	if tbl, ok := qb["table"].(map[string]any); ok {
		res.AccessType, _ = tbl["access_type"].(string)
		res.Table, _ = tbl["table_name"].(string)
	}
	_, res.NestedLoop = qb["nested_loop"]
	res.Filesort, _ = qb["using_filesort"].(bool)
	res.TempTable, _ = qb["using_temporary_table"].(bool)
	return res
}

func parsePostgres(root map[string]any, raw any) *Plan {
	res := &Plan{Dialect: PostgreSQL, Raw: raw}

	var walk func(map[string]any)
	walk = func(node map[string]any) {
		typ, _ := node["Node Type"].(string)
		switch typ {
		case "Nested Loop":
			res.NestedLoop = true
		case "Sort", "Incremental Sort":
			res.Filesort = true
		case "Materialize":
			res.TempTable = true
		}
		if space, _ := node["Sort Space Type"].(string); space == "Disk" {
			res.TempTable = true
		}
		if access, ok := pgAccessTypes[typ]; ok && res.AccessType == "" {
			res.AccessType = access
			res.Table, _ = node["Relation Name"].(string)
		}

		plans, _ := node["Plans"].([]any)
		for _, p := range plans {
			if child, ok := p.(map[string]any); ok {
				walk(child)
			}
		}
	}
	walk(root)
	return res
}
