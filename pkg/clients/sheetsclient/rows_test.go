package sheetsclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRow struct {
	Name    string   `sheet:"Name"`
	Age     int      `sheet:"Age"`
	Rating  float64  `sheet:"Rating"`
	Active  bool     `sheet:"Active"`
	Tags    []string `sheet:"Tags"`
	Ignored string
}

func TestDecodeRows(t *testing.T) {
	raw := [][]interface{}{
		{"Tags", "Name", "Age", "Rating", "Active", "Extra"},
		{"a, b,", "Ava", "8", "4.5", "TRUE", "x"},
		{"", "", "", "", "", "only extra"},
		{},
		{nil, "Ben"},
	}

	rows, err := DecodeRows[testRow](raw)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, testRow{Name: "Ava", Age: 8, Rating: 4.5, Active: true, Tags: []string{"a", "b"}}, rows[0])
	assert.Equal(t, testRow{Name: "Ben"}, rows[1])
}

func TestDecodeRows_NonStringCells(t *testing.T) {
	raw := [][]interface{}{
		{"Name", "Age", "Rating", "Active", "Tags"},
		{"Ava", float64(8), 4.5, true},
	}

	rows, err := DecodeRows[testRow](raw)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 8, rows[0].Age)
	assert.Equal(t, 4.5, rows[0].Rating)
	assert.True(t, rows[0].Active)
}

func TestDecodeRows_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     [][]interface{}
		wantErr string
	}{
		{
			name:    "no header",
			raw:     [][]interface{}{},
			wantErr: "no header row found",
		},
		{
			name:    "missing column",
			raw:     [][]interface{}{{"Name", "Age", "Rating", "Active"}},
			wantErr: "missing required field in header: Tags",
		},
		{
			name: "bad int",
			raw: [][]interface{}{
				{"Name", "Age", "Rating", "Active", "Tags"},
				{"Ava", "eight"},
			},
			wantErr: "row 2, column Age",
		},
		{
			name: "bad bool",
			raw: [][]interface{}{
				{"Name", "Age", "Rating", "Active", "Tags"},
				{"Ava", "8", "1", "maybe"},
			},
			wantErr: "row 2, column Active",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRows[testRow](tt.raw)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecodeRows_NonStruct(t *testing.T) {
	_, err := DecodeRows[string]([][]interface{}{{"Name"}})
	assert.Error(t, err)
}

type optionalRow struct {
	Name  string `sheet:"Name"`
	Grade *int   `sheet:"Grade"`
}

func TestDecodeRows_PointerFields(t *testing.T) {
	raw := [][]interface{}{
		{"Name", "Grade"},
		{"Ava", "3"},
		{"Ben", ""},
		{"Cal", "0"},
	}

	rows, err := DecodeRows[optionalRow](raw)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.NotNil(t, rows[0].Grade)
	assert.Equal(t, 3, *rows[0].Grade)
	assert.Nil(t, rows[1].Grade)
	require.NotNil(t, rows[2].Grade)
	assert.Equal(t, 0, *rows[2].Grade)

	_, err = DecodeRows[optionalRow]([][]interface{}{{"Name", "Grade"}, {"Ava", "third"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2, column Grade")
}
