package model

// FeatureName identifies one of the six numeric inputs of the prediction form.
type FeatureName string

// Feature names in form order.
const (
	FeatureLowBirthWeight     FeatureName = "BayiBBLR"
	FeaturePostpartumVitaminA FeatureName = "IbuNifasVitA"
	FeatureAntenatalK4        FeatureName = "K4"
	FeatureHDI                FeatureName = "IPM"
	FeatureDrinkingWater      FeatureName = "MinumLayak"
	FeatureSanitation         FeatureName = "SanitasiLayak"
)

// FeatureNames lists every feature in the order the form presents them.
var FeatureNames = []FeatureName{
	FeatureLowBirthWeight,
	FeaturePostpartumVitaminA,
	FeatureAntenatalK4,
	FeatureHDI,
	FeatureDrinkingWater,
	FeatureSanitation,
}

// Label returns the human readable form label for a feature.
func (f FeatureName) Label() string {
	switch f {
	case FeatureLowBirthWeight:
		return "Bayi BBLR (%)"
	case FeaturePostpartumVitaminA:
		return "Ibu Nifas Mendapatkan Vitamin A (%)"
	case FeatureAntenatalK4:
		return "Cakupan K4 (%)"
	case FeatureHDI:
		return "Indeks Pembangunan Manusia (IPM)"
	case FeatureDrinkingWater:
		return "Rumah Tangga dengan Akses Minum Layak (%)"
	case FeatureSanitation:
		return "Rumah Tangga dengan Sanitasi Layak (%)"
	default:
		return string(f)
	}
}

// InputFeatures is one user-submitted candidate record. Values returned by
// query.ValidateInputs are all positive; the zero value stands for "no inputs"
// on paths that skip the check, such as export.
type InputFeatures struct {
	LowBirthWeight     float64
	PostpartumVitaminA float64
	AntenatalK4        float64
	HDI                float64
	DrinkingWater      float64
	Sanitation         float64
}

// Get returns the value of the named feature.
func (f InputFeatures) Get(name FeatureName) float64 {
	switch name {
	case FeatureLowBirthWeight:
		return f.LowBirthWeight
	case FeaturePostpartumVitaminA:
		return f.PostpartumVitaminA
	case FeatureAntenatalK4:
		return f.AntenatalK4
	case FeatureHDI:
		return f.HDI
	case FeatureDrinkingWater:
		return f.DrinkingWater
	case FeatureSanitation:
		return f.Sanitation
	default:
		return 0
	}
}

// Set assigns the value of the named feature.
func (f *InputFeatures) Set(name FeatureName, v float64) {
	switch name {
	case FeatureLowBirthWeight:
		f.LowBirthWeight = v
	case FeaturePostpartumVitaminA:
		f.PostpartumVitaminA = v
	case FeatureAntenatalK4:
		f.AntenatalK4 = v
	case FeatureHDI:
		f.HDI = v
	case FeatureDrinkingWater:
		f.DrinkingWater = v
	case FeatureSanitation:
		f.Sanitation = v
	}
}

// FeatureRow is one record of the raw-features table.
type FeatureRow struct {
	Region string
	Values InputFeatures
	Year   int
}

// Features strips the identifying columns and returns only the numeric inputs.
func (r FeatureRow) Features() InputFeatures {
	return r.Values
}
