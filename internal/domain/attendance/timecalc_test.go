package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
}

func atPtr(hour, min int) *time.Time {
	t := at(hour, min)
	return &t
}

func TestBreakMinutes(t *testing.T) {
	cases := []struct {
		name   string
		breaks []BreakInterval
		want   int
	}{
		{"empty", nil, 0},
		{"single hour", []BreakInterval{{Start: at(12, 0), End: atPtr(13, 0)}}, 60},
		{"two breaks", []BreakInterval{
			{Start: at(12, 0), End: atPtr(13, 0)},
			{Start: at(15, 0), End: atPtr(15, 15)},
		}, 75},
		{"open break contributes zero", []BreakInterval{{Start: at(12, 0)}}, 0},
		{"open plus closed", []BreakInterval{
			{Start: at(12, 0), End: atPtr(12, 45)},
			{Start: at(16, 0)},
		}, 45},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, BreakMinutes(c.breaks))
		})
	}
}

func TestNetWorkMinutes(t *testing.T) {
	t.Run("missing punches", func(t *testing.T) {
		assert.Nil(t, NetWorkMinutes(nil, nil, 0))
		assert.Nil(t, NetWorkMinutes(atPtr(9, 0), nil, 0))
		assert.Nil(t, NetWorkMinutes(nil, atPtr(18, 0), 0))
	})

	t.Run("full day minus break", func(t *testing.T) {
		got := NetWorkMinutes(atPtr(9, 0), atPtr(18, 0), 60)
		if assert.NotNil(t, got) {
			assert.Equal(t, 480, *got)
		}
	})

	t.Run("floored at zero", func(t *testing.T) {
		// breaks exceeding the shift never surface as negative time
		got := NetWorkMinutes(atPtr(9, 0), atPtr(18, 0), 540)
		if assert.NotNil(t, got) {
			assert.Equal(t, 0, *got)
		}
	})
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{60, "1:00"},
		{75, "1:15"},
		{480, "8:00"},
		{605, "10:05"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatMinutes(c.minutes))
	}
}

func TestFormatMinutesBlank(t *testing.T) {
	zero := 0
	sixty := 60

	assert.Equal(t, "", FormatMinutesBlank(nil))
	assert.Equal(t, "", FormatMinutesBlank(&zero))
	assert.Equal(t, "1:00", FormatMinutesBlank(&sixty))
}
