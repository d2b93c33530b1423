package docsync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"홍길동", "홍길동"},
		{"홍 길동", "홍_길동"},
		{`a/b\c:d*e?f"g<h>i|j`, "a_b_c_d_e_f_g_h_i_j"},
		{"tab\there", "tab_here"},
		{"", "unknown"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeName(tc.in))
	}
}

func TestPDFFileName(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "홍_길동-20240301.pdf", PDFFileName("홍 길동", created, now))

	// Unset creation time falls back to now.
	assert.Equal(t, "홍길동-20240601.pdf", PDFFileName("홍길동", time.Time{}, now))
}
