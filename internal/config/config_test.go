package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := New()
	s, err := materialize(v)
	require.NoError(t, err)

	assert.Equal(t, "acnode", s.Prefix)
	assert.Equal(t, 250*time.Millisecond, s.Poll)
	assert.Equal(t, 120.0, s.BaselineCm)
	assert.Equal(t, 30.0, s.MarginCm)
	assert.Equal(t, 5*time.Minute, s.VacancyTimeout)
	assert.Equal(t, 16, s.TargetTemp)
	assert.Equal(t, ":80", s.HTTPAddr)
}

func TestRejectsNonPositivePoll(t *testing.T) {
	v := New()
	v.Set("poll", "0s")
	_, err := materialize(v)
	assert.Error(t, err)
}

func TestRejectsMarginAboveBaseline(t *testing.T) {
	v := New()
	v.Set("margin_cm", 150.0)
	_, err := materialize(v)
	assert.Error(t, err)
}

func TestRejectsTargetTempOutOfRange(t *testing.T) {
	for _, temp := range []int{15, 26, 0} {
		v := New()
		v.Set("target_temp", temp)
		_, err := materialize(v)
		assert.Error(t, err, "target_temp %d", temp)
	}
}

func TestOverrides(t *testing.T) {
	v := New()
	v.Set("broker", "tcp://10.0.0.5:1883")
	v.Set("vacancy_timeout", "90s")

	s, err := materialize(v)
	require.NoError(t, err)
	assert.Equal(t, "tcp://10.0.0.5:1883", s.Broker)
	assert.Equal(t, 90*time.Second, s.VacancyTimeout)
}
