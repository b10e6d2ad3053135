package termdict

import "github.com/AIDMI-DataHub/heatscan/internal/types"

// DefaultSeed returns a representative, non-exhaustive term dictionary
// covering Hindi and English across all eight heat categories, plus a
// narrower set for the other supported languages. A fuller dictionary
// can be passed to Load; there is no config option for it, and the CLI
// and SDK always load DefaultSeed.
func DefaultSeed() []Entry {
	return []Entry{
		{Language: "en", Category: types.CategoryHeatwave, Terms: []types.HeatTerm{
			{Text: "heatwave", Register: types.RegisterFormal},
			{Text: "heat wave", Register: types.RegisterJournalistic},
			{Text: "severe heat", Register: types.RegisterFormal},
			{Text: "scorching heat", Register: types.RegisterColloquial},
		}},
		{Language: "en", Category: types.CategoryDeathStroke, Terms: []types.HeatTerm{
			{Text: "heatstroke death", Register: types.RegisterFormal},
			{Text: "heat stroke", Register: types.RegisterJournalistic},
			{Text: "sunstroke", Register: types.RegisterColloquial},
		}},
		{Language: "en", Category: types.CategoryWaterCrisis, Terms: []types.HeatTerm{
			{Text: "water crisis", Register: types.RegisterFormal},
			{Text: "water shortage", Register: types.RegisterFormal},
			{Text: "drought", Register: types.RegisterJournalistic},
		}},
		{Language: "en", Category: types.CategoryPowerCuts, Terms: []types.HeatTerm{
			{Text: "power cuts", Register: types.RegisterColloquial},
			{Text: "electricity outage", Register: types.RegisterFormal},
			{Text: "load shedding", Register: types.RegisterJournalistic},
		}},
		{Language: "en", Category: types.CategoryCropDamage, Terms: []types.HeatTerm{
			{Text: "crop damage", Register: types.RegisterFormal},
			{Text: "crop failure", Register: types.RegisterFormal},
			{Text: "farmers heat loss", Register: types.RegisterColloquial},
		}},
		{Language: "en", Category: types.CategoryHumanImpact, Terms: []types.HeatTerm{
			{Text: "heat related illness", Register: types.RegisterFormal},
			{Text: "heat exhaustion", Register: types.RegisterFormal},
			{Text: "heat casualties", Register: types.RegisterJournalistic},
		}},
		{Language: "en", Category: types.CategoryGovernmentResponse, Terms: []types.HeatTerm{
			{Text: "heat action plan", Register: types.RegisterFormal},
			{Text: "school closure heat", Register: types.RegisterJournalistic},
			{Text: "heat advisory", Register: types.RegisterFormal},
		}},
		{Language: "en", Category: types.CategoryTemperature, Terms: []types.HeatTerm{
			{Text: "record temperature", Register: types.RegisterJournalistic},
			{Text: "highest temperature", Register: types.RegisterFormal},
			{Text: "mercury soars", Register: types.RegisterBorrowed},
		}},

		{Language: "hi", Category: types.CategoryHeatwave, Terms: []types.HeatTerm{
			{Text: "लू", Register: types.RegisterFormal},
			{Text: "भीषण गर्मी", Register: types.RegisterJournalistic},
			{Text: "गर्मी का प्रकोप", Register: types.RegisterColloquial},
		}},
		{Language: "hi", Category: types.CategoryDeathStroke, Terms: []types.HeatTerm{
			{Text: "लू से मौत", Register: types.RegisterFormal},
			{Text: "गर्मी से मौत", Register: types.RegisterJournalistic},
		}},
		{Language: "hi", Category: types.CategoryWaterCrisis, Terms: []types.HeatTerm{
			{Text: "जल संकट", Register: types.RegisterFormal},
			{Text: "पानी की किल्लत", Register: types.RegisterColloquial},
		}},
		{Language: "hi", Category: types.CategoryPowerCuts, Terms: []types.HeatTerm{
			{Text: "बिजली कटौती", Register: types.RegisterFormal},
		}},
		{Language: "hi", Category: types.CategoryCropDamage, Terms: []types.HeatTerm{
			{Text: "फसल नुकसान", Register: types.RegisterFormal},
		}},
		{Language: "hi", Category: types.CategoryHumanImpact, Terms: []types.HeatTerm{
			{Text: "लू का प्रभाव", Register: types.RegisterFormal},
		}},
		{Language: "hi", Category: types.CategoryGovernmentResponse, Terms: []types.HeatTerm{
			{Text: "हीट एक्शन प्लान", Register: types.RegisterBorrowed},
			{Text: "स्कूल बंद गर्मी", Register: types.RegisterJournalistic},
		}},
		{Language: "hi", Category: types.CategoryTemperature, Terms: []types.HeatTerm{
			{Text: "रिकॉर्ड तापमान", Register: types.RegisterJournalistic},
		}},

		{Language: "mr", Category: types.CategoryHeatwave, Terms: []types.HeatTerm{
			{Text: "उष्णतेची लाट", Register: types.RegisterFormal},
		}},
		{Language: "ta", Category: types.CategoryHeatwave, Terms: []types.HeatTerm{
			{Text: "வெப்ப அலை", Register: types.RegisterFormal},
		}},
		{Language: "te", Category: types.CategoryHeatwave, Terms: []types.HeatTerm{
			{Text: "వడగాలులు", Register: types.RegisterFormal},
		}},
		{Language: "bn", Category: types.CategoryHeatwave, Terms: []types.HeatTerm{
			{Text: "তাপপ্রবাহ", Register: types.RegisterFormal},
		}},
		{Language: "gu", Category: types.CategoryHeatwave, Terms: []types.HeatTerm{
			{Text: "ગરમીનું મોજું", Register: types.RegisterFormal},
		}},
		{Language: "kn", Category: types.CategoryHeatwave, Terms: []types.HeatTerm{
			{Text: "ಶಾಖದ ಅಲೆ", Register: types.RegisterFormal},
		}},
		{Language: "ml", Category: types.CategoryHeatwave, Terms: []types.HeatTerm{
			{Text: "ഉഷ്ണതരംഗം", Register: types.RegisterFormal},
		}},
		{Language: "pa", Category: types.CategoryHeatwave, Terms: []types.HeatTerm{
			{Text: "ਗਰਮੀ ਦੀ ਲਹਿਰ", Register: types.RegisterFormal},
		}},
		{Language: "or", Category: types.CategoryHeatwave, Terms: []types.HeatTerm{
			{Text: "ଗରମ ପବନ", Register: types.RegisterFormal},
		}},
		{Language: "as", Category: types.CategoryHeatwave, Terms: []types.HeatTerm{
			{Text: "তাপ প্ৰবাহ", Register: types.RegisterFormal},
		}},
		{Language: "ur", Category: types.CategoryHeatwave, Terms: []types.HeatTerm{
			{Text: "لو", Register: types.RegisterFormal},
		}},
		{Language: "mni", Category: types.CategoryHeatwave, Terms: []types.HeatTerm{
			{Text: "heat wave", Register: types.RegisterBorrowed},
		}},
	}
}
