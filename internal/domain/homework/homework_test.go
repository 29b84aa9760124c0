package homework

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return v
}

func TestValidateResponse(t *testing.T) {
	testCases := []struct {
		name      string
		body      string
		wantLen   int
		wantField string
		wantGot   string
	}{
		{name: "array_top_level", body: `[{"homeworks": []}]`, wantGot: "array"},
		{name: "string_top_level", body: `"homeworks"`, wantGot: "string"},
		{name: "null_top_level", body: `null`, wantGot: "null"},
		{name: "missing_homeworks", body: `{"current_date": 1}`, wantField: "homeworks", wantGot: "missing key"},
		{name: "homeworks_not_array", body: `{"homeworks": {"status": "approved"}}`, wantField: "homeworks", wantGot: "object"},
		{name: "homeworks_null", body: `{"homeworks": null}`, wantField: "homeworks", wantGot: "null"},
		{name: "empty_homeworks", body: `{"homeworks": [], "current_date": 1}`, wantLen: 0},
		{name: "entries_are_not_inspected", body: `{"homeworks": [1, "x", {}]}`, wantLen: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			records, err := ValidateResponse(decode(t, tc.body))
			if tc.wantGot != "" {
				var schemaErr *SchemaError
				require.ErrorAs(t, err, &schemaErr)
				assert.Equal(t, tc.wantField, schemaErr.Field)
				assert.Equal(t, tc.wantGot, schemaErr.Got)
				assert.Nil(t, records)
				return
			}
			require.NoError(t, err)
			assert.Len(t, records, tc.wantLen)
		})
	}
}

func TestValidateResponseReturnsSameSlice(t *testing.T) {
	homeworks := []any{map[string]any{"status": "approved"}}
	records, err := ValidateResponse(map[string]any{"homeworks": homeworks})
	require.NoError(t, err)
	assert.Same(t, &homeworks[0], &records[0])
}

func TestDescribe(t *testing.T) {
	approved, _ := StatusApproved.Verdict()
	reviewing, _ := StatusReviewing.Verdict()

	testCases := []struct {
		name        string
		records     []any
		wantMessage string
		wantOK      bool
		wantNoUpd   bool
	}{
		{
			name:      "empty_records",
			records:   []any{},
			wantNoUpd: true,
		},
		{
			name:        "approved",
			records:     []any{map[string]any{"status": "approved", "homework_name": "X"}},
			wantMessage: `Changed review status for "X". ` + approved,
			wantOK:      true,
		},
		{
			name: "only_first_record_is_used",
			records: []any{
				map[string]any{"status": "reviewing", "homework_name": "HW1"},
				map[string]any{"status": "approved", "homework_name": "HW0"},
			},
			wantMessage: `Changed review status for "HW1". ` + reviewing,
			wantOK:      true,
		},
		{
			name:      "empty_status",
			records:   []any{map[string]any{"status": "", "homework_name": "X"}},
			wantNoUpd: true,
		},
		{
			name:      "missing_status",
			records:   []any{map[string]any{"homework_name": "X"}},
			wantNoUpd: true,
		},
		{
			name:    "empty_name_is_silent",
			records: []any{map[string]any{"status": "approved", "homework_name": ""}},
		},
		{
			name:    "missing_name_is_silent",
			records: []any{map[string]any{"status": "rejected"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			message, ok, err := Describe(tc.records)
			if tc.wantNoUpd {
				assert.ErrorIs(t, err, ErrNoUpdate)
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantMessage, message)
		})
	}
}

func TestDescribeUnknownStatus(t *testing.T) {
	_, ok, err := Describe([]any{map[string]any{"status": "lost", "homework_name": "X"}})
	assert.False(t, ok)

	var unknown *UnknownStatusError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "lost", unknown.Status)
	assert.False(t, errors.Is(err, ErrNoUpdate))
}

func TestDescribeRecordNotObject(t *testing.T) {
	_, _, err := Describe([]any{"approved"})
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "homeworks[0]", schemaErr.Field)
}

func TestDescribeIsPure(t *testing.T) {
	records := []any{map[string]any{"status": "rejected", "homework_name": "HW2"}}

	first, firstOK, firstErr := Describe(records)
	second, secondOK, secondErr := Describe(records)

	assert.Equal(t, first, second)
	assert.Equal(t, firstOK, secondOK)
	assert.Equal(t, firstErr, secondErr)
	assert.Equal(t, map[string]any{"status": "rejected", "homework_name": "HW2"}, records[0])
}

func TestCurrentDate(t *testing.T) {
	date, ok := CurrentDate(decode(t, `{"homeworks": [], "current_date": 1600}`))
	assert.True(t, ok)
	assert.Equal(t, int64(1600), date)

	_, ok = CurrentDate(decode(t, `{"homeworks": []}`))
	assert.False(t, ok)

	_, ok = CurrentDate(decode(t, `[]`))
	assert.False(t, ok)
}
