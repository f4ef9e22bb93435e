package gdrive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/drive/v3"

	"github.com/charleseiq/eiq-manager-tools/internal/domain"
)

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "Design_ Claims Scoring v2", SafeFileName(`Design: Claims Scoring v2`))
	assert.Equal(t, "a_b_c_d_e_f_g_h_i", SafeFileName(`a<b>c:d"e/f\g|h?i`))
	assert.Equal(t, "plain title", SafeFileName("plain title"))
}

func TestCreatedInWindow(t *testing.T) {
	p := domain.Period{
		Start: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, createdInWindow(p.Start, p))
	assert.True(t, createdInWindow(time.Date(2025, 12, 31, 18, 30, 0, 0, time.UTC), p))
	assert.False(t, createdInWindow(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), p))
	assert.False(t, createdInWindow(time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC), p))
}

func TestOwnedBy(t *testing.T) {
	f := &drive.File{Owners: []*drive.User{
		{EmailAddress: "Varun.Sundar@evolutioniq.com"},
		{EmailAddress: "shared-drive@evolutioniq.com"},
	}}
	assert.True(t, ownedBy(f, "varun.sundar@evolutioniq.com"), "owner match is case-insensitive")
	assert.False(t, ownedBy(f, "someone.else@evolutioniq.com"))
	assert.False(t, ownedBy(&drive.File{}, "varun.sundar@evolutioniq.com"))
}
