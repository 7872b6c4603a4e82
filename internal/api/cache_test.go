package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rpgo/rothtrad/internal/domain"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte(`{"current_age":30}`))
	assert.Equal(t, a, Fingerprint([]byte(`{"current_age":30}`)))
	assert.NotEqual(t, a, Fingerprint([]byte(`{"current_age":31}`)))
	assert.Len(t, a, 36)
}

func TestComparisonCache(t *testing.T) {
	cc := NewComparisonCache(time.Minute)
	_, ok := cc.Get("missing")
	assert.False(t, ok)

	result := &domain.ComparisonResult{PlanYear: 2024}
	cc.Set("k", result)
	got, ok := cc.Get("k")
	assert.True(t, ok)
	assert.Same(t, result, got)
	assert.Equal(t, 1, cc.ItemCount())

	cc.Flush()
	assert.Equal(t, 0, cc.ItemCount())
}
