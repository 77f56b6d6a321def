package iorepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpsertSQL(t *testing.T) {
	head, tail := upsertSQL("students", studentColumns)
	assert.Equal(t,
		"INSERT INTO students (id, name, birthday, sex, room_id) VALUES ", head)
	assert.Equal(t,
		" ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, "+
			"birthday = EXCLUDED.birthday, sex = EXCLUDED.sex, "+
			"room_id = EXCLUDED.room_id, updated_at = now()",
		tail)
}

func TestValuesRow(t *testing.T) {
	assert.Equal(t, "($1, $2)", valuesRow(roomColumns, 0))
	assert.Equal(t, "($6, $7, $8::date, $9::student_sex, $10::int)",
		valuesRow(studentColumns, 5))
}

func TestBatchRows(t *testing.T) {
	tests := []struct {
		msg        string
		batch, col int
		res        int
	}{
		{"configured", 1000, 5, 1000},
		{"zero", 0, 5, 13107},
		{"negative", -3, 2, 32767},
		{"above limit", 100_000, 5, 13107},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			assert.Equal(t, v.res, batchRows(v.batch, v.col))
		})
	}
}

func TestDedupByID(t *testing.T) {
	type item struct {
		id  int
		val string
	}
	id := func(i item) int { return i.id }

	res := dedupByID([]item{
		{1, "a"}, {2, "b"}, {1, "c"}, {3, "d"}, {2, "e"},
	}, id)
	assert.Equal(t, []item{{1, "c"}, {2, "e"}, {3, "d"}}, res)

	assert.Empty(t, dedupByID(nil, id))
}

func TestRepoOptions(t *testing.T) {
	assert.Nil(t, newRepoOptions(nil).progress)

	var total int
	opts := newRepoOptions([]Option{
		OptProgress(func(rows int) { total += rows }),
	})
	opts.progress(3)
	opts.progress(2)
	assert.Equal(t, 5, total)
}
