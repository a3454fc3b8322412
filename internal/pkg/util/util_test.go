package util

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentAndRatio(t *testing.T) {
	assert.Equal(t, 0.0, Percent(5, 0))
	assert.Equal(t, 33.33, Percent(1, 3))
	assert.Equal(t, 0.0, Ratio(10, 0))
	assert.Equal(t, 2.5, Ratio(5, 2))
}

func TestDayBoundaries(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	// 本地时间 1 月 1 日 02:00 对应 UTC 12 月 31 日 18:00
	ts := time.Date(2026, 1, 1, 2, 0, 0, 0, loc)

	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(ts))
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), NextMidnight(ts))
}

func TestValidateDTO(t *testing.T) {
	type req struct {
		HealthStatus string `json:"health_status" validate:"required,oneof=healthy warning error unknown"`
	}

	err := ValidateDTO(&req{HealthStatus: "bogus"})
	require.Error(t, err)
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "health_status", fe.Field)
	assert.Equal(t, "oneof", fe.Rule)

	assert.NoError(t, ValidateDTO(&req{HealthStatus: "healthy"}))
}

func TestValidateEnum(t *testing.T) {
	assert.NoError(t, ValidateEnum("status", "active", []string{"active", "inactive"}))
	err := ValidateEnum("status", "gone", []string{"active", "inactive"})
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "status", fe.Field)
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "health_status", ToSnakeCase("HealthStatus"))
	assert.Equal(t, "citing_work_title", ToSnakeCase("CitingWorkTitle"))
	assert.Equal(t, "api_endpoint", ToSnakeCase("APIEndpoint"))
	assert.Equal(t, "name", ToSnakeCase("Name"))
}

func TestNormalizePage(t *testing.T) {
	p, pp := NormalizePage(0, 0)
	assert.Equal(t, 1, p)
	assert.Equal(t, DefaultPerPage, pp)

	_, pp = NormalizePage(3, 1000)
	assert.Equal(t, MaxPerPage, pp)

	assert.Equal(t, 3, TotalPages(41, 20))
	assert.Equal(t, 0, TotalPages(0, 20))
}
