package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(180, 80)
	require.NoError(t, err)
	assert.InDelta(t, 24.69, bmi, 0.01)

	bmi, err = CalculateBMI(160, 47.5)
	require.NoError(t, err)
	assert.InDelta(t, 18.55, bmi, 0.01)

	for _, in := range [][2]float64{{0, 80}, {180, 0}, {-170, 70}, {40, 70}, {180, 500}} {
		_, err := CalculateBMI(in[0], in[1])
		assert.Error(t, err, "height=%v weight=%v", in[0], in[1])
	}
}

func TestBMICategory(t *testing.T) {
	tests := []struct {
		bmi  float64
		want string
	}{
		{16.0, "Underweight"},
		{18.5, "Normal weight"},
		{24.9, "Normal weight"},
		{25.0, "Overweight"},
		{29.9, "Overweight"},
		{30.0, "Obesity class I"},
		{35.0, "Obesity class II"},
		{40.0, "Obesity class III"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BMICategory(tt.bmi), "bmi=%v", tt.bmi)
	}
}

func TestBMIDistanceFromNormal(t *testing.T) {
	assert.InDelta(t, 0.0, BMIDistanceFromNormal(22), 0.001)
	assert.InDelta(t, 0.0, BMIDistanceFromNormal(18.5), 0.001)
	assert.InDelta(t, 2.0, BMIDistanceFromNormal(27), 0.001)
	assert.InDelta(t, 2.0, BMIDistanceFromNormal(16.5), 0.001)
}

func TestCalculateAge(t *testing.T) {
	now := time.Now()

	assert.Equal(t, 30, CalculateAge(now.AddDate(-30, -1, 0)), "birthday passed last month")
	assert.Equal(t, 29, CalculateAge(now.AddDate(-30, 1, 0)), "birthday next month")
	assert.Equal(t, 0, CalculateAge(now.AddDate(1, 0, 0)), "future birthday clamps to 0")
}
