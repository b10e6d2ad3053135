package geocatalog

import "github.com/AIDMI-DataHub/heatscan/internal/types"

// DefaultSeed is the built-in catalogue of Indian states and union
// territories most exposed to heat-related reporting, with a
// representative district list per region and the languages in which
// that region's news is normally published. This is deliberately not
// exhaustive of all 28 states and 8 UTs — operators running against the
// full administrative map pass their own seed to Load; there is no
// config option for it, and the CLI and SDK always load DefaultSeed.
func DefaultSeed() []types.Region {
	return []types.Region{
		{
			Slug: "rajasthan", DisplayName: "Rajasthan", Kind: types.RegionKindState,
			Languages: []string{"hi", "en"},
			Districts: []types.DistrictName{"Jaipur", "Jodhpur", "Kota", "Bikaner", "Udaipur", "Ajmer", "Churu", "Barmer"},
		},
		{
			Slug: "uttar-pradesh", DisplayName: "Uttar Pradesh", Kind: types.RegionKindState,
			Languages: []string{"hi", "en", "ur"},
			Districts: []types.DistrictName{"Lucknow", "Kanpur", "Varanasi", "Agra", "Prayagraj", "Gorakhpur", "Meerut", "Bareilly"},
		},
		{
			Slug: "bihar", DisplayName: "Bihar", Kind: types.RegionKindState,
			Languages: []string{"hi", "en", "ur"},
			Districts: []types.DistrictName{"Patna", "Gaya", "Bhagalpur", "Muzaffarpur", "Darbhanga", "Purnia"},
		},
		{
			Slug: "madhya-pradesh", DisplayName: "Madhya Pradesh", Kind: types.RegionKindState,
			Languages: []string{"hi", "en"},
			Districts: []types.DistrictName{"Bhopal", "Indore", "Gwalior", "Jabalpur", "Ujjain", "Sagar"},
		},
		{
			Slug: "maharashtra", DisplayName: "Maharashtra", Kind: types.RegionKindState,
			Languages: []string{"mr", "hi", "en"},
			Districts: []types.DistrictName{"Mumbai", "Pune", "Nagpur", "Nashik", "Aurangabad", "Vidarbha", "Akola"},
		},
		{
			Slug: "gujarat", DisplayName: "Gujarat", Kind: types.RegionKindState,
			Languages: []string{"gu", "hi", "en"},
			Districts: []types.DistrictName{"Ahmedabad", "Surat", "Vadodara", "Rajkot", "Bhuj", "Gandhinagar"},
		},
		{
			Slug: "andhra-pradesh", DisplayName: "Andhra Pradesh", Kind: types.RegionKindState,
			Languages: []string{"te", "en"},
			Districts: []types.DistrictName{"Visakhapatnam", "Vijayawada", "Guntur", "Nellore", "Kurnool", "Tirupati"},
		},
		{
			Slug: "telangana", DisplayName: "Telangana", Kind: types.RegionKindState,
			Languages: []string{"te", "hi", "en", "ur"},
			Districts: []types.DistrictName{"Hyderabad", "Warangal", "Nizamabad", "Karimnagar", "Khammam"},
		},
		{
			Slug: "tamil-nadu", DisplayName: "Tamil Nadu", Kind: types.RegionKindState,
			Languages: []string{"ta", "en"},
			Districts: []types.DistrictName{"Chennai", "Coimbatore", "Madurai", "Tiruchirappalli", "Salem", "Erode"},
		},
		{
			Slug: "karnataka", DisplayName: "Karnataka", Kind: types.RegionKindState,
			Languages: []string{"kn", "en"},
			Districts: []types.DistrictName{"Bengaluru", "Mysuru", "Hubballi", "Belagavi", "Kalaburagi"},
		},
		{
			Slug: "kerala", DisplayName: "Kerala", Kind: types.RegionKindState,
			Languages: []string{"ml", "en"},
			Districts: []types.DistrictName{"Thiruvananthapuram", "Kochi", "Kozhikode", "Thrissur", "Palakkad"},
		},
		{
			Slug: "west-bengal", DisplayName: "West Bengal", Kind: types.RegionKindState,
			Languages: []string{"bn", "hi", "en"},
			Districts: []types.DistrictName{"Kolkata", "Howrah", "Siliguri", "Durgapur", "Asansol"},
		},
		{
			Slug: "odisha", DisplayName: "Odisha", Kind: types.RegionKindState,
			Languages: []string{"or", "hi", "en"},
			Districts: []types.DistrictName{"Bhubaneswar", "Cuttack", "Rourkela", "Berhampur", "Balasore"},
		},
		{
			Slug: "punjab", DisplayName: "Punjab", Kind: types.RegionKindState,
			Languages: []string{"pa", "hi", "en"},
			Districts: []types.DistrictName{"Amritsar", "Ludhiana", "Jalandhar", "Patiala", "Bathinda"},
		},
		{
			Slug: "haryana", DisplayName: "Haryana", Kind: types.RegionKindState,
			Languages: []string{"hi", "en"},
			Districts: []types.DistrictName{"Gurugram", "Faridabad", "Hisar", "Rohtak", "Panipat"},
		},
		{
			Slug: "assam", DisplayName: "Assam", Kind: types.RegionKindState,
			Languages: []string{"as", "hi", "en"},
			Districts: []types.DistrictName{"Guwahati", "Silchar", "Dibrugarh", "Jorhat", "Tezpur"},
		},
		{
			Slug: "chhattisgarh", DisplayName: "Chhattisgarh", Kind: types.RegionKindState,
			Languages: []string{"hi", "en"},
			Districts: []types.DistrictName{"Raipur", "Bilaspur", "Durg", "Korba", "Raigarh"},
		},
		{
			Slug: "jharkhand", DisplayName: "Jharkhand", Kind: types.RegionKindState,
			Languages: []string{"hi", "en"},
			Districts: []types.DistrictName{"Ranchi", "Jamshedpur", "Dhanbad", "Bokaro", "Hazaribagh"},
		},
		{
			Slug: "delhi", DisplayName: "Delhi", Kind: types.RegionKindUT,
			Languages: []string{"hi", "en", "ur"},
			Districts: []types.DistrictName{"New Delhi", "North Delhi", "South Delhi", "East Delhi", "West Delhi"},
		},
		{
			Slug: "jammu-and-kashmir", DisplayName: "Jammu and Kashmir", Kind: types.RegionKindUT,
			Languages: []string{"ur", "hi", "en"},
			Districts: []types.DistrictName{"Srinagar", "Jammu", "Anantnag", "Baramulla"},
		},
		{
			Slug: "chandigarh", DisplayName: "Chandigarh", Kind: types.RegionKindUT,
			Languages: []string{"pa", "hi", "en"},
			Districts: []types.DistrictName{"Chandigarh"},
		},
		{
			Slug: "puducherry", DisplayName: "Puducherry", Kind: types.RegionKindUT,
			Languages: []string{"ta", "en"},
			Districts: []types.DistrictName{"Puducherry", "Karaikal", "Mahe", "Yanam"},
		},
		{
			Slug: "manipur", DisplayName: "Manipur", Kind: types.RegionKindState,
			Languages: []string{"mni", "en"},
			Districts: []types.DistrictName{"Imphal East", "Imphal West", "Thoubal", "Churachandpur"},
		},
	}
}
