package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGranularity(t *testing.T) {
	tests := []struct {
		in      string
		want    Granularity
		wantErr bool
	}{
		{in: "", want: GranularityMonth},
		{in: "month", want: GranularityMonth},
		{in: "quarter", want: GranularityQuarter},
		{in: "year", want: GranularityYear},
		{in: "week", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGranularity(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldKnown(t *testing.T) {
	for _, c := range ExpenseCategories {
		assert.True(t, c.Field.Known(), c.Field)
	}
	assert.True(t, FieldNOI.Known())
	assert.False(t, Field("rent").Known())
}
