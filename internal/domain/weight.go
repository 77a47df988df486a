// Package domain implements the healthy-weight-range calculation.
package domain

import (
	"errors"
	"strings"

	"github.com/brandondoesreviews-afk/healthy-weight-range/internal/observability"
)

// Sex is the biological sex used by the Hamwi reference formula.
type Sex string

// Frame is the reported bone/body-frame size.
type Frame string

// BMIClassification buckets a BMI value into the standard categories.
type BMIClassification string

// HealthStatus describes how the frame-adjusted weight range's BMI span
// relates to the standard 18.5-24.9 band.
type HealthStatus string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"

	FrameSmall  Frame = "small"
	FrameMedium Frame = "medium"
	FrameLarge  Frame = "large"

	BMIUnderweight BMIClassification = "Underweight"
	BMINormal      BMIClassification = "Normal"
	BMIOverweight  BMIClassification = "Overweight"
	BMIObese       BMIClassification = "Obese"

	StatusWithin           HealthStatus = "within"
	StatusPartiallyOutside HealthStatus = "partially_outside"
	StatusFullyOutside     HealthStatus = "fully_outside"
)

// AdultAgeYears is the age from which a successful calculation counts
// toward the usage counter. Callers apply it; the calculator does not.
const AdultAgeYears = 18

const (
	lbsPerKg         = 2.20462
	metersPerInch    = 0.0254
	referenceInches  = 60
	bmiHealthyMin    = 18.5
	bmiHealthyMax    = 24.9
	bmiOverweightMax = 29.9
	rangeLowFactor   = 0.92
	rangeHighFactor  = 1.08
)

// ErrInvalidInput signals out-of-domain input. It means "no result
// available", not a fault; callers should not surface it as a failure.
var ErrInvalidInput = errors.New("invalid calculation input")

// Input carries the values one calculation needs. Heights are imperial,
// feet plus residual inches.
type Input struct {
	Sex          Sex
	AgeYears     float64
	HeightFeet   float64
	HeightInches float64
	Frame        Frame
}

// Validate reports whether the input is inside the calculator's domain.
func (in Input) Validate() error {
	if in.AgeYears <= 0 {
		return ErrInvalidInput
	}
	if in.HeightFeet < 0 {
		return ErrInvalidInput
	}
	if in.HeightInches < 0 || in.HeightInches > 11 {
		return ErrInvalidInput
	}
	return nil
}

// Adult reports whether the subject counts toward usage tracking.
func (in Input) Adult() bool {
	return in.AgeYears >= AdultAgeYears
}

// WeightResult holds every derived value for one valid Input. All weights
// are pounds; every field is a pure function of the Input.
type WeightResult struct {
	BaseHamwiWeightLbs     float64           `json:"base_hamwi_weight_lbs"`
	AdjustedFrameWeightLbs float64           `json:"adjusted_frame_weight_lbs"`
	MinHealthyWeightLbs    float64           `json:"min_healthy_weight_lbs"`
	MaxHealthyWeightLbs    float64           `json:"max_healthy_weight_lbs"`
	BMIAtMinWeight         float64           `json:"bmi_at_min_weight"`
	BMIAtMaxWeight         float64           `json:"bmi_at_max_weight"`
	BMIHealthyMinLbs       float64           `json:"bmi_healthy_min_lbs"`
	BMIHealthyMaxLbs       float64           `json:"bmi_healthy_max_lbs"`
	HealthStatus           HealthStatus      `json:"health_status"`
	BMIClassification      BMIClassification `json:"bmi_classification"`
}

// Compute derives the healthy weight range for the input using the Hamwi
// reference formula, a frame-size adjustment and a comparison against the
// standard BMI band. The only failure is ErrInvalidInput.
func Compute(in Input) (WeightResult, error) {
	if err := in.Validate(); err != nil {
		observability.RecordInvalidInput()
		return WeightResult{}, err
	}

	totalInches := in.HeightFeet*12 + in.HeightInches
	heightMeters := totalInches * metersPerInch
	metersSquared := heightMeters * heightMeters

	base := hamwiBase(in.Sex, totalInches)
	adjusted := base * frameFactor(in.Frame)

	minLbs := adjusted * rangeLowFactor
	maxLbs := adjusted * rangeHighFactor

	result := WeightResult{
		BaseHamwiWeightLbs:     base,
		AdjustedFrameWeightLbs: adjusted,
		MinHealthyWeightLbs:    minLbs,
		MaxHealthyWeightLbs:    maxLbs,
		BMIAtMinWeight:         lbsToKg(minLbs) / metersSquared,
		BMIAtMaxWeight:         lbsToKg(maxLbs) / metersSquared,
		BMIHealthyMinLbs:       bmiHealthyMin * metersSquared * lbsPerKg,
		BMIHealthyMaxLbs:       bmiHealthyMax * metersSquared * lbsPerKg,
	}

	midpointBMI := lbsToKg((minLbs+maxLbs)/2) / metersSquared
	result.BMIClassification = ClassifyBMI(midpointBMI)
	result.HealthStatus = healthStatus(result.BMIAtMinWeight, result.BMIAtMaxWeight)

	observability.RecordCalculation()
	return result, nil
}

// ClassifyBMI buckets a BMI value. The band edges are inclusive on the
// Normal and Overweight side: 18.5 and 24.9 are Normal, 29.9 is Overweight.
func ClassifyBMI(bmi float64) BMIClassification {
	switch {
	case bmi < bmiHealthyMin:
		return BMIUnderweight
	case bmi <= bmiHealthyMax:
		return BMINormal
	case bmi <= bmiOverweightMax:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// hamwiBase returns the reference weight in pounds: a fixed base at 60
// inches, adjusted per inch above or below. Both branches agree at exactly
// 60 inches.
func hamwiBase(sex Sex, totalInches float64) float64 {
	baseAt60, perInch := 106.0, 6.0
	if sex == SexFemale {
		baseAt60, perInch = 100.0, 5.0
	}
	if totalInches < referenceInches {
		return baseAt60 - (referenceInches-totalInches)*perInch
	}
	return baseAt60 + (totalInches-referenceInches)*perInch
}

func frameFactor(frame Frame) float64 {
	switch frame {
	case FrameSmall:
		return 0.93
	case FrameLarge:
		return 1.07
	default:
		return 1.0
	}
}

// healthStatus compares the adjusted range's BMI span against the standard
// band: disjoint spans are fully outside, spans that spill past either edge
// are partially outside, the rest sit within.
func healthStatus(bmiAtMin, bmiAtMax float64) HealthStatus {
	switch {
	case bmiAtMin > bmiHealthyMax || bmiAtMax < bmiHealthyMin:
		return StatusFullyOutside
	case bmiAtMin < bmiHealthyMin || bmiAtMax > bmiHealthyMax:
		return StatusPartiallyOutside
	default:
		return StatusWithin
	}
}

// ParseSex maps a wire value onto Sex.
func ParseSex(raw string) (Sex, error) {
	switch Sex(strings.ToLower(strings.TrimSpace(raw))) {
	case SexMale:
		return SexMale, nil
	case SexFemale:
		return SexFemale, nil
	default:
		return "", ErrInvalidInput
	}
}

// ParseFrame maps a wire value onto Frame.
func ParseFrame(raw string) (Frame, error) {
	switch Frame(strings.ToLower(strings.TrimSpace(raw))) {
	case FrameSmall:
		return FrameSmall, nil
	case FrameMedium:
		return FrameMedium, nil
	case FrameLarge:
		return FrameLarge, nil
	default:
		return "", ErrInvalidInput
	}
}

func lbsToKg(lbs float64) float64 {
	return lbs / lbsPerKg
}
