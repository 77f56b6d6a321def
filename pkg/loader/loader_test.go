package loader_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/roomdb/pkg/errcode"
	"github.com/gnames/roomdb/pkg/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct{ format string }

func (f fakeLoader) Format() string { return f.format }

func (f fakeLoader) LoadStudents(string) ([]loader.Record, error) {
	return nil, nil
}

func (f fakeLoader) LoadRooms(string) ([]loader.Record, error) {
	return nil, nil
}

func TestRegistry(t *testing.T) {
	reg := loader.NewRegistry(fakeLoader{"json"}, fakeLoader{"yaml"})

	t.Run("returns registered loader", func(t *testing.T) {
		l, err := reg.Get("json")
		require.NoError(t, err)
		assert.Equal(t, "json", l.Format())
	})

	t.Run("format is case insensitive", func(t *testing.T) {
		l, err := reg.Get(" YAML ")
		require.NoError(t, err)
		assert.Equal(t, "yaml", l.Format())
	})

	t.Run("lists formats sorted", func(t *testing.T) {
		assert.Equal(t, []string{"json", "yaml"}, reg.Formats())
	})

	t.Run("unknown format", func(t *testing.T) {
		l, err := reg.Get("xml")
		assert.Nil(t, l)
		require.Error(t, err)

		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, "error should be *gn.Error")
		assert.Equal(t, errcode.UnsupportedFormatError, gnErr.Code)
		assert.NotEmpty(t, gnErr.Msg)
		assert.Contains(t, gnErr.Err.Error(), "json, yaml")
	})

	t.Run("new variant is discoverable", func(t *testing.T) {
		reg.Register(fakeLoader{"sqlite"})
		_, err := reg.Get("sqlite")
		assert.NoError(t, err)
		assert.Len(t, reg.Formats(), 3)
	})
}

func TestParseRooms(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		recs := []loader.Record{
			{"id": float64(1), "name": "Room #1"},
			{"id": 2, "name": " Room #2 "},
		}
		rooms, err := loader.ParseRooms(recs)
		require.NoError(t, err)
		require.Len(t, rooms, 2)
		assert.Equal(t, 1, rooms[0].ID)
		assert.Equal(t, "Room #2", rooms[1].Name)
	})

	tests := []struct {
		msg string
		rec loader.Record
	}{
		{"missing id", loader.Record{"name": "a"}},
		{"zero id", loader.Record{"id": 0, "name": "a"}},
		{"fractional id", loader.Record{"id": 1.5, "name": "a"}},
		{"string id", loader.Record{"id": "1", "name": "a"}},
		{"empty name", loader.Record{"id": 1, "name": "  "}},
		{"numeric name", loader.Record{"id": 1, "name": 5}},
	}
	for _, v := range tests {
		_, err := loader.ParseRooms([]loader.Record{v.rec})
		require.Error(t, err, v.msg)
		assert.Equal(t, errcode.ValidationError, errcode.Of(err), v.msg)
	}
}

func TestParseStudents(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		recs := []loader.Record{
			{"id": float64(1), "name": "Ann", "sex": "F",
				"birthday": "2011-08-22T00:00:00.000000", "room": float64(3)},
			{"id": int64(2), "name": "Bob", "sex": "M",
				"birthday": "2004-01-07", "room": nil},
			{"id": json.Number("3"), "name": "Cid", "sex": "M",
				"birthday": time.Date(2001, 5, 1, 13, 0, 0, 0, time.UTC)},
			{"id": 4, "name": "Dee", "sex": "F",
				"birthday": "1999-12-31T10:11:12", "room_id": int64(7)},
		}
		ss, err := loader.ParseStudents(recs)
		require.NoError(t, err)
		require.Len(t, ss, 4)

		assert.Equal(t, "2011-08-22", ss[0].Birthday.Format("2006-01-02"))
		require.NotNil(t, ss[0].RoomID)
		assert.Equal(t, 3, *ss[0].RoomID)
		assert.Nil(t, ss[1].RoomID)
		assert.Nil(t, ss[2].RoomID)
		assert.Equal(t, 0, ss[2].Birthday.Hour())
		require.NotNil(t, ss[3].RoomID)
		assert.Equal(t, 7, *ss[3].RoomID)
	})

	base := func() loader.Record {
		return loader.Record{
			"id": 1, "name": "Ann", "sex": "F", "birthday": "2000-01-01",
		}
	}
	tests := []struct {
		msg   string
		field string
		val   any
	}{
		{"lowercase sex", "sex", "f"},
		{"other sex", "sex", "X"},
		{"bad date", "birthday", "01/02/2000"},
		{"numeric date", "birthday", 20000101},
		{"negative room", "room", -1},
		{"string room", "room", "3"},
		{"negative id", "id", -3},
	}
	for _, v := range tests {
		rec := base()
		rec[v.field] = v.val
		_, err := loader.ParseStudents([]loader.Record{base(), rec})
		require.Error(t, err, v.msg)

		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, errcode.ValidationError, gnErr.Code, v.msg)
		assert.Contains(t, gnErr.Err.Error(), "record 1", v.msg)
	}

	t.Run("missing birthday", func(t *testing.T) {
		rec := base()
		delete(rec, "birthday")
		err := loader.ValidateStudents([]loader.Record{rec})
		assert.Equal(t, errcode.ValidationError, errcode.Of(err))
	})

	t.Run("empty input", func(t *testing.T) {
		ss, err := loader.ParseStudents(nil)
		require.NoError(t, err)
		assert.Empty(t, ss)
	})
}
