package event

import (
	"testing"

	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		seconds int
		wantErr bool
	}{
		{input: "00:00", seconds: 0},
		{input: "08:30", seconds: 8*3600 + 30*60},
		{input: "8:05", seconds: 8*3600 + 5*60},
		{input: "23:59:59", seconds: 86399},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "12:00:60", wantErr: true},
		{input: "noon", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.seconds, got)
		})
	}
}

func TestNormalizeClock(t *testing.T) {
	got, err := NormalizeClock("8:05")
	require.NoError(t, err)
	assert.Equal(t, "08:05:00", got)

	got, err = NormalizeClock("23:59:30")
	require.NoError(t, err)
	assert.Equal(t, "23:59:30", got)
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2024-01-15", NormalizeDate("2024-01-15T00:00:00.000Z"))
	assert.Equal(t, "2024-01-15", NormalizeDate("2024-01-15 00:00:00"))
	assert.Equal(t, "2024-01-15", NormalizeDate("2024-01-15"))
	assert.Equal(t, "garbage", NormalizeDate("garbage"))
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2024-02-29")
	assert.NoError(t, err)

	_, err = ParseDate("2023-02-29")
	assert.True(t, apperror.IsValidation(err))

	_, err = ParseDate("2024/01/01")
	assert.True(t, apperror.IsValidation(err))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		start, end string
		want       string
	}{
		{"08:00", "09:30", "1小时30分钟"},
		{"08:00", "08:45", "45分钟"},
		{"23:30", "00:15", "45分钟"},
		{"22:00", "01:00", "3小时0分钟"},
	}
	for _, tt := range tests {
		got, err := FormatDuration(tt.start, tt.end)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s-%s", tt.start, tt.end)
	}

	_, err := FormatDuration("bad", "09:00")
	assert.Error(t, err)
}

func TestInputValidate(t *testing.T) {
	e, err := Input{
		Date:      "2024-01-15T00:00:00.000Z",
		StartTime: "8:00",
		EndTime:   "09:15",
		EventName: "  reading ",
	}.Validate()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", e.Date)
	assert.Equal(t, "08:00:00", e.StartTime)
	assert.Equal(t, "09:15:00", e.EndTime)
	assert.Equal(t, "reading", e.EventName)
	assert.Equal(t, "", e.Notes)

	_, err = Input{Date: "2024-01-15", StartTime: "08:00", EndTime: "09:00"}.Validate()
	assert.True(t, apperror.IsValidation(err))

	_, err = Input{Date: "2024-01-15", StartTime: "25:00", EndTime: "09:00", EventName: "x"}.Validate()
	var ve *apperror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "start_time", ve.Field)
}
