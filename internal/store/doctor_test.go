package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(r DoctorReport) []string {
	out := []string{}
	for _, it := range r.Issues {
		out = append(out, it.Code)
	}
	return out
}

func TestDoctor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		raw       *string
		wantCodes []string
		wantErr   bool
		wantTasks int
	}{
		{name: "missing", wantCodes: []string{"missing"}},
		{name: "healthy", raw: ptr(`[{"id":"a","text":"Buy milk","completed":false}]`), wantCodes: []string{}, wantTasks: 1},
		{name: "invalid json", raw: ptr(`[{"id":`), wantCodes: []string{"invalid_json"}, wantErr: true},
		{
			name:      "duplicates and blanks",
			raw:       ptr(`[{"id":"a","text":"x"},{"id":"a","text":" y "},{"id":"","text":""}]`),
			wantCodes: []string{"duplicate_id", "untrimmed_text", "missing_id", "empty_text"},
			wantErr:   true,
			wantTasks: 3,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			kv := NewMemoryKV()
			if tc.raw != nil {
				require.NoError(t, kv.Set(ctx, DefaultKey, *tc.raw))
			}
			rep := Doctor(ctx, kv, DefaultKey)
			assert.Equal(t, tc.wantCodes, codes(rep))
			assert.Equal(t, tc.wantErr, rep.HasErrors())
			assert.Equal(t, tc.wantTasks, rep.Tasks)
		})
	}
}

func TestDoctor_ReadError(t *testing.T) {
	t.Parallel()
	rep := Doctor(context.Background(), failingGetKV{NewMemoryKV()}, DefaultKey)
	assert.Equal(t, []string{"read_failed"}, codes(rep))
	assert.True(t, rep.HasErrors())
}

func ptr(s string) *string { return &s }
