package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func validInput() Input {
	return Input{
		Sex:          SexMale,
		AgeYears:     25,
		HeightFeet:   5,
		HeightInches: 7,
		Frame:        FrameMedium,
	}
}

func TestComputeRejectsOutOfDomainInput(t *testing.T) {
	cases := map[string]func(*Input){
		"zero age":          func(in *Input) { in.AgeYears = 0 },
		"negative age":      func(in *Input) { in.AgeYears = -4 },
		"negative feet":     func(in *Input) { in.HeightFeet = -1 },
		"negative inches":   func(in *Input) { in.HeightInches = -0.5 },
		"inches over limit": func(in *Input) { in.HeightInches = 12 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)

			result, err := Compute(in)
			require.ErrorIs(t, err, ErrInvalidInput)
			require.Zero(t, result, "invalid input must not partially populate a result")
		})
	}
}

func TestComputeZeroAgeInvalidRegardlessOfOtherFields(t *testing.T) {
	for _, sex := range []Sex{SexMale, SexFemale} {
		for _, frame := range []Frame{FrameSmall, FrameMedium, FrameLarge} {
			in := Input{Sex: sex, AgeYears: 0, HeightFeet: 6, HeightInches: 2, Frame: frame}
			_, err := Compute(in)
			require.ErrorIs(t, err, ErrInvalidInput)
		}
	}
}

func TestComputeKnownMaleScenario(t *testing.T) {
	result, err := Compute(validInput())
	require.NoError(t, err)

	// 5 ft 7 in: 7 inches above reference at 6 lbs each.
	require.InDelta(t, 148.0, result.BaseHamwiWeightLbs, 1e-9)
	require.InDelta(t, 148.0, result.AdjustedFrameWeightLbs, 1e-9)
	require.InDelta(t, 136.16, result.MinHealthyWeightLbs, 1e-9)
	require.InDelta(t, 159.84, result.MaxHealthyWeightLbs, 1e-9)
}

func TestComputeKnownFemaleScenario(t *testing.T) {
	result, err := Compute(Input{
		Sex:          SexFemale,
		AgeYears:     30,
		HeightFeet:   5,
		HeightInches: 0,
		Frame:        FrameSmall,
	})
	require.NoError(t, err)

	require.InDelta(t, 100.0, result.BaseHamwiWeightLbs, 1e-9)
	require.InDelta(t, 93.0, result.AdjustedFrameWeightLbs, 1e-9)
	require.InDelta(t, 85.56, result.MinHealthyWeightLbs, 1e-9)
	require.InDelta(t, 100.44, result.MaxHealthyWeightLbs, 1e-9)
}

func TestFrameFactorExactness(t *testing.T) {
	expected := map[Frame]float64{
		FrameSmall:  0.93,
		FrameMedium: 1.0,
		FrameLarge:  1.07,
	}

	for frame, factor := range expected {
		in := validInput()
		in.Frame = frame

		result, err := Compute(in)
		require.NoError(t, err)
		require.InDelta(t, factor, result.AdjustedFrameWeightLbs/result.BaseHamwiWeightLbs, 1e-12)
	}
}

func TestRangeSymmetryAroundAdjustedWeight(t *testing.T) {
	for _, in := range []Input{
		validInput(),
		{Sex: SexFemale, AgeYears: 52, HeightFeet: 4, HeightInches: 9, Frame: FrameLarge},
		{Sex: SexMale, AgeYears: 19, HeightFeet: 6, HeightInches: 4, Frame: FrameSmall},
	} {
		result, err := Compute(in)
		require.NoError(t, err)
		require.InDelta(t, 0.92, result.MinHealthyWeightLbs/result.AdjustedFrameWeightLbs, 1e-12)
		require.InDelta(t, 1.08, result.MaxHealthyWeightLbs/result.AdjustedFrameWeightLbs, 1e-12)
	}
}

func TestBaseWeightMonotonicInHeight(t *testing.T) {
	for _, sex := range []Sex{SexMale, SexFemale} {
		previous := math.Inf(-1)
		for feet := 3; feet <= 7; feet++ {
			for inches := 0; inches <= 11; inches++ {
				result, err := Compute(Input{
					Sex:          sex,
					AgeYears:     40,
					HeightFeet:   float64(feet),
					HeightInches: float64(inches),
					Frame:        FrameMedium,
				})
				require.NoError(t, err)
				require.GreaterOrEqual(t, result.BaseHamwiWeightLbs, previous,
					"base weight must not decrease as height grows (%s %d ft %d in)", sex, feet, inches)
				previous = result.BaseHamwiWeightLbs
			}
		}
	}
}

func TestBaseWeightContinuousAtReferenceHeight(t *testing.T) {
	// Both arms of the formula must agree at exactly 60 total inches.
	male, err := Compute(Input{Sex: SexMale, AgeYears: 30, HeightFeet: 5, HeightInches: 0, Frame: FrameMedium})
	require.NoError(t, err)
	require.InDelta(t, 106.0, male.BaseHamwiWeightLbs, 1e-9)

	female, err := Compute(Input{Sex: SexFemale, AgeYears: 30, HeightFeet: 5, HeightInches: 0, Frame: FrameMedium})
	require.NoError(t, err)
	require.InDelta(t, 100.0, female.BaseHamwiWeightLbs, 1e-9)

	// Just below and just above the boundary, one increment step apart.
	below, err := Compute(Input{Sex: SexMale, AgeYears: 30, HeightFeet: 4, HeightInches: 11, Frame: FrameMedium})
	require.NoError(t, err)
	require.InDelta(t, 100.0, below.BaseHamwiWeightLbs, 1e-9)

	above, err := Compute(Input{Sex: SexMale, AgeYears: 30, HeightFeet: 5, HeightInches: 1, Frame: FrameMedium})
	require.NoError(t, err)
	require.InDelta(t, 112.0, above.BaseHamwiWeightLbs, 1e-9)
}

func TestClassifyBMIBoundaries(t *testing.T) {
	cases := []struct {
		bmi  float64
		want BMIClassification
	}{
		{14.0, BMIUnderweight},
		{18.499, BMIUnderweight},
		{18.5, BMINormal},
		{22.0, BMINormal},
		{24.9, BMINormal},
		{24.901, BMIOverweight},
		{29.9, BMIOverweight},
		{29.901, BMIObese},
		{35.0, BMIObese},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, ClassifyBMI(tc.bmi), "bmi %.3f", tc.bmi)
	}
}

func TestHealthStatusSpansStandardBand(t *testing.T) {
	// 5 ft 6 in medium-frame male: BMI span roughly 21.1 to 24.8, inside
	// the standard band.
	within, err := Compute(Input{Sex: SexMale, AgeYears: 30, HeightFeet: 5, HeightInches: 6, Frame: FrameMedium})
	require.NoError(t, err)
	require.Equal(t, StatusWithin, within.HealthStatus)

	// One inch taller pushes the top of the span just past 24.9.
	above, err := Compute(validInput())
	require.NoError(t, err)
	require.Equal(t, StatusPartiallyOutside, above.HealthStatus)
	require.Greater(t, above.BMIAtMaxWeight, 24.9)
	require.GreaterOrEqual(t, above.BMIAtMinWeight, 18.5)

	// A small-framed 5 ft subject overlaps the band but spills below it.
	below, err := Compute(Input{Sex: SexFemale, AgeYears: 30, HeightFeet: 5, HeightInches: 0, Frame: FrameSmall})
	require.NoError(t, err)
	require.Equal(t, StatusPartiallyOutside, below.HealthStatus)
	require.Less(t, below.BMIAtMinWeight, 18.5)
	require.GreaterOrEqual(t, below.BMIAtMaxWeight, 18.5)

	// At 4 ft the entire Hamwi span sits far below BMI 18.5.
	disjoint, err := Compute(Input{Sex: SexFemale, AgeYears: 30, HeightFeet: 4, HeightInches: 0, Frame: FrameSmall})
	require.NoError(t, err)
	require.Equal(t, StatusFullyOutside, disjoint.HealthStatus)
	require.Less(t, disjoint.BMIAtMaxWeight, 18.5)
}

func TestBMIBandWeightsIndependentOfFrame(t *testing.T) {
	small := validInput()
	small.Frame = FrameSmall
	large := validInput()
	large.Frame = FrameLarge

	a, err := Compute(small)
	require.NoError(t, err)
	b, err := Compute(large)
	require.NoError(t, err)

	require.InDelta(t, a.BMIHealthyMinLbs, b.BMIHealthyMinLbs, 1e-12)
	require.InDelta(t, a.BMIHealthyMaxLbs, b.BMIHealthyMaxLbs, 1e-12)
}

func TestAdultThreshold(t *testing.T) {
	in := validInput()

	in.AgeYears = 17.9
	require.False(t, in.Adult())

	in.AgeYears = 18
	require.True(t, in.Adult())

	in.AgeYears = 64
	require.True(t, in.Adult())
}

func TestParseSexAndFrame(t *testing.T) {
	sex, err := ParseSex(" Male ")
	require.NoError(t, err)
	require.Equal(t, SexMale, sex)

	_, err = ParseSex("other")
	require.ErrorIs(t, err, ErrInvalidInput)

	frame, err := ParseFrame("LARGE")
	require.NoError(t, err)
	require.Equal(t, FrameLarge, frame)

	_, err = ParseFrame("")
	require.ErrorIs(t, err, ErrInvalidInput)
}
