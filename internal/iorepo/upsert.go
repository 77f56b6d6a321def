package iorepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// maxParams is the limit of bind parameters in one PostgreSQL statement.
const maxParams = 65535

// column is a target column of an upsert with an optional type cast
// applied to its placeholder.
type column struct {
	name string
	cast string
}

// upsertSQL returns the head and the tail of a multi-row upsert
// statement by id. Values go between them.
func upsertSQL(table string, cols []column) (string, string) {
	names := make([]string, len(cols))
	var sets []string
	for i, c := range cols {
		names[i] = c.name
		if c.name != "id" {
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c.name, c.name))
		}
	}
	sets = append(sets, "updated_at = now()")

	head := fmt.Sprintf("INSERT INTO %s (%s) VALUES ", table, strings.Join(names, ", "))
	tail := " ON CONFLICT (id) DO UPDATE SET " + strings.Join(sets, ", ")
	return head, tail
}

// valuesRow returns a placeholders tuple like '($1, $2::date)' for the
// row that starts at offset in the arguments list.
func valuesRow(cols []column, offset int) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("$%d%s", offset+i+1, c.cast)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// batchRows limits rows per statement by the parameters limit.
func batchRows(batchSize, colsNum int) int {
	limit := maxParams / colsNum
	if batchSize <= 0 || batchSize > limit {
		return limit
	}
	return batchSize
}

// upsert writes rows with statements of at most batch rows inside tx and
// returns the sum of affected rows. The progress callback, if given,
// receives the number of rows sent by every successful statement.
func upsert(
	ctx context.Context,
	tx pgx.Tx,
	table string,
	cols []column,
	rows [][]any,
	batchSize int,
	progress func(int),
) (int64, error) {
	head, tail := upsertSQL(table, cols)
	batch := batchRows(batchSize, len(cols))

	var res int64
	for start := 0; start < len(rows); start += batch {
		end := min(start+batch, len(rows))
		chunk := rows[start:end]

		valueStrings := make([]string, 0, len(chunk))
		args := make([]any, 0, len(chunk)*len(cols))
		for _, row := range chunk {
			valueStrings = append(valueStrings, valuesRow(cols, len(args)))
			args = append(args, row...)
		}

		query := head + strings.Join(valueStrings, ", ") + tail
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return 0, err
		}
		res += tag.RowsAffected()
		if progress != nil {
			progress(len(chunk))
		}
	}
	return res, nil
}

// dedupByID keeps the last version of every id. PostgreSQL refuses to
// update one row twice within a statement, while repeated ids in input
// mean 'last one wins'. Order of first appearance is kept.
func dedupByID[T any](items []T, id func(T) int) []T {
	pos := make(map[int]int, len(items))
	res := make([]T, 0, len(items))
	for _, v := range items {
		if i, ok := pos[id(v)]; ok {
			res[i] = v
			continue
		}
		pos[id(v)] = len(res)
		res = append(res, v)
	}
	return res
}
