package loader

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/gnames/roomdb/pkg/schema"
)

var birthdayLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	schema.DateFormat,
}

// ParseRooms validates room records and converts them to models.
// The first invalid record stops processing with ValidationError.
func ParseRooms(recs []Record) ([]schema.Room, error) {
	res := make([]schema.Room, 0, len(recs))
	for i, rec := range recs {
		id, err := positiveInt("room", i, rec, "id")
		if err != nil {
			return nil, err
		}
		name, err := nonEmptyString("room", i, rec, "name")
		if err != nil {
			return nil, err
		}
		res = append(res, schema.Room{ID: id, Name: name})
	}
	return res, nil
}

// ParseStudents validates student records and converts them to models.
// The first invalid record stops processing with ValidationError.
func ParseStudents(recs []Record) ([]schema.Student, error) {
	res := make([]schema.Student, 0, len(recs))
	for i, rec := range recs {
		s, err := parseStudent(i, rec)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, nil
}

// ValidateRooms checks that records can be stored as rooms.
func ValidateRooms(recs []Record) error {
	_, err := ParseRooms(recs)
	return err
}

// ValidateStudents checks that records can be stored as students.
func ValidateStudents(recs []Record) error {
	_, err := ParseStudents(recs)
	return err
}

func parseStudent(i int, rec Record) (schema.Student, error) {
	var res schema.Student
	var err error
	const entity = "student"

	if res.ID, err = positiveInt(entity, i, rec, "id"); err != nil {
		return res, err
	}
	if res.Name, err = nonEmptyString(entity, i, rec, "name"); err != nil {
		return res, err
	}

	val, ok := rec["birthday"]
	if !ok || val == nil {
		return res, ValidationError(entity, i, "birthday", val, "is required")
	}
	if res.Birthday, ok = toDate(val); !ok {
		return res, ValidationError(entity, i, "birthday", val,
			"is not a recognized date")
	}

	val = rec["sex"]
	sex, _ := val.(string)
	if sex != schema.SexMale && sex != schema.SexFemale {
		return res, ValidationError(entity, i, "sex", val, "must be 'M' or 'F'")
	}
	res.Sex = sex

	val, ok = rec["room"]
	if !ok {
		val, ok = rec["room_id"]
	}
	if ok && val != nil {
		room, isInt := toInt(val)
		if !isInt || room <= 0 {
			return res, ValidationError(entity, i, "room", val,
				"must be a positive integer")
		}
		res.RoomID = &room
	}
	return res, nil
}

func positiveInt(entity string, i int, rec Record, field string) (int, error) {
	val, ok := rec[field]
	if !ok || val == nil {
		return 0, ValidationError(entity, i, field, val, "is required")
	}
	res, ok := toInt(val)
	if !ok || res <= 0 {
		return 0, ValidationError(entity, i, field, val,
			"must be a positive integer")
	}
	return res, nil
}

func nonEmptyString(entity string, i int, rec Record, field string) (string, error) {
	val, ok := rec[field]
	if !ok || val == nil {
		return "", ValidationError(entity, i, field, val, "is required")
	}
	s, ok := val.(string)
	s = strings.TrimSpace(s)
	if !ok || s == "" {
		return "", ValidationError(entity, i, field, val,
			"must be a non-empty string")
	}
	return s, nil
}

// toInt accepts integer kinds and floats without a fractional part,
// which is how JSON decoders deliver numbers.
func toInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		return int(v), true
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case json.Number:
		i, err := v.Int64()
		return int(i), err == nil
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// toDate keeps only the calendar date of a timestamp.
func toDate(val any) (time.Time, bool) {
	var t time.Time
	switch v := val.(type) {
	case time.Time:
		t = v
	case string:
		s := strings.TrimSpace(v)
		var err error
		for _, l := range birthdayLayouts {
			if t, err = time.Parse(l, s); err == nil {
				break
			}
		}
		if err != nil {
			return t, false
		}
	default:
		return t, false
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
}
