package ioschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCollationSQL(t *testing.T) {
	template := `ALTER TABLE %s ALTER COLUMN %s TYPE TEXT COLLATE "C"`

	tests := []struct {
		name     string
		table    string
		column   string
		expected string
	}{
		{
			name:     "aliases title",
			table:    "aliases",
			column:   "title",
			expected: `ALTER TABLE aliases ALTER COLUMN title TYPE TEXT COLLATE "C"`,
		},
		{
			name:     "aimai member",
			table:    "aimai",
			column:   "member",
			expected: `ALTER TABLE aimai ALTER COLUMN member TYPE TEXT COLLATE "C"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatCollationSQL(template, tt.table, tt.column)
			assert.Equal(t, tt.expected, result)
		})
	}
}
