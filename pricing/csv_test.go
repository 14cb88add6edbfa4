package pricing

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    []Bar
		wantErr bool
	}{
		{
			name: "header and volume",
			in:   "time,open,high,low,close,volume\n1,10,11,9,10.5,100\n2,10.5,12,10,11,200\n",
			want: []Bar{
				{Time: 1, Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 100},
				{Time: 2, Open: 10.5, High: 12, Low: 10, Close: 11, Volume: 200},
			},
		},
		{
			name: "no header, no volume, whitespace",
			in:   " 1 , 10 , 11 , 9 , 10 \n",
			want: []Bar{{Time: 1, Open: 10, High: 11, Low: 9, Close: 10}},
		},
		{
			name: "rfc3339 times",
			in:   "2026-01-24T09:30:00Z,1,1,1,1\n2026-01-24T09:31:00.5Z,1,1,1,1\n",
			want: []Bar{
				{Time: 1769247000, Open: 1, High: 1, Low: 1, Close: 1},
				{Time: 1769247060, Open: 1, High: 1, Low: 1, Close: 1},
			},
		},
		{
			name: "short rows skipped",
			in:   "time,open\n1,2,3\n\n2,1,1,1,1\n",
			want: []Bar{{Time: 2, Open: 1, High: 1, Low: 1, Close: 1}},
		},
		{
			name:    "bad price",
			in:      "1,x,1,1,1\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadCSV(strings.NewReader(tt.in))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	bars := []Bar{
		{Time: 1, Open: 1.5, High: 2.25, Low: 1, Close: 2, Volume: 10},
		{Time: 2, Open: 2, High: 3, Low: 1.75, Close: 2.5, Volume: 0},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, bars))
	assert.True(t, strings.HasPrefix(buf.String(), "time,open,high,low,close,volume\n"))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, bars, got)
}
