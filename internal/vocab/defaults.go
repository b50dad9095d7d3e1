package vocab

// Default returns the built-in vocabulary. The enumerations are the closed
// sets the corpus is constrained to; the rule tables encode the curated
// keyword knowledge the attribute classifier runs on.
func Default() Vocabulary {
	return Vocabulary{
		PlantTypes: []string{
			"flowering-plant", "conifer", "fern", "spikemoss", "moss",
			"liverwort", "algae", "fungus",
		},
		GrowthPatterns: []string{
			"upright-columnar", "upright-bushy", "upright-single-stem",
			"vining-climbing", "vining-trailing", "rosette", "clumping",
			"carpeting", "spreading", "pendent",
		},
		GrowthHabits: []string{
			"ground-dwelling", "tree-dwelling", "rock-dwelling",
			"fully-aquatic", "emergent-aquatic", "semi-aquatic",
			"semi-epiphytic",
		},
		Hazards:          []string{"non-toxic", "toxic-if-ingested", "handle-with-care"},
		Rarities:         []string{"common", "uncommon", "rare", "very-rare"},
		FloweringPeriods: []string{"seasonal", "year-round", "irregular", "does-not-flower", "does-not-flower-in-cultivation"},
		CO2Levels:        []string{"not-required", "beneficial", "recommended", "required"},
		Propagations: []string{
			"Stem cuttings", "Leaf cuttings", "Division", "Offsets", "Pups",
			"Runners", "Layering", "Spores", "Seed", "Fragmentation",
			"Plantlets", "Rhizomes", "Mycelial culture",
		},

		FamilyOverrides: map[string]FamilyOverride{
			"orchidaceae":      {PlantType: "flowering-plant", GrowthHabit: "tree-dwelling", FloweringPeriod: "irregular"},
			"bromeliaceae":     {PlantType: "flowering-plant", GrowthHabit: "tree-dwelling"},
			"araceae":          {PlantType: "flowering-plant", Hazard: "toxic-if-ingested"},
			"cactaceae":        {PlantType: "flowering-plant", Hazard: "handle-with-care"},
			"crassulaceae":     {PlantType: "flowering-plant"},
			"begoniaceae":      {PlantType: "flowering-plant"},
			"gesneriaceae":     {PlantType: "flowering-plant"},
			"marantaceae":      {PlantType: "flowering-plant", Hazard: "non-toxic"},
			"piperaceae":       {PlantType: "flowering-plant", Hazard: "non-toxic"},
			"urticaceae":       {PlantType: "flowering-plant"},
			"moraceae":         {PlantType: "flowering-plant"},
			"polypodiaceae":    {PlantType: "fern", FloweringPeriod: "does-not-flower"},
			"aspleniaceae":     {PlantType: "fern", FloweringPeriod: "does-not-flower"},
			"pteridaceae":      {PlantType: "fern", FloweringPeriod: "does-not-flower"},
			"dryopteridaceae":  {PlantType: "fern", FloweringPeriod: "does-not-flower"},
			"davalliaceae":     {PlantType: "fern", FloweringPeriod: "does-not-flower", GrowthHabit: "semi-epiphytic"},
			"hymenophyllaceae": {PlantType: "fern", FloweringPeriod: "does-not-flower"},
			"selaginellaceae":  {PlantType: "spikemoss", FloweringPeriod: "does-not-flower", GrowthHabit: "ground-dwelling"},
			"sphagnaceae":      {PlantType: "moss", FloweringPeriod: "does-not-flower"},
			"hypnaceae":        {PlantType: "moss", FloweringPeriod: "does-not-flower"},
			"dicranaceae":      {PlantType: "moss", FloweringPeriod: "does-not-flower"},
			"pottiaceae":       {PlantType: "moss", FloweringPeriod: "does-not-flower"},
			"marchantiaceae":   {PlantType: "liverwort", FloweringPeriod: "does-not-flower"},
			"ricciaceae":       {PlantType: "liverwort", FloweringPeriod: "does-not-flower", GrowthHabit: "fully-aquatic"},
			"pinaceae":         {PlantType: "conifer", FloweringPeriod: "does-not-flower"},
			"cupressaceae":     {PlantType: "conifer", FloweringPeriod: "does-not-flower"},
		},

		Keywords: KeywordTables{
			PlantType: []KeywordRule{
				{Keywords: []string{"spikemoss", "selaginella"}, Value: "spikemoss"},
				{Keywords: []string{"liverwort", "riccia", "marchantia"}, Value: "liverwort"},
				{Keywords: []string{"moss ball", "marimo"}, Value: "algae"},
				{Keywords: []string{"moss"}, Value: "moss"},
				{Keywords: []string{"fern", "maidenhair"}, Value: "fern"},
				{Keywords: []string{"algae"}, Value: "algae"},
				{Keywords: []string{"fungus", "mushroom", "mycelium"}, Value: "fungus"},
				{Keywords: []string{"conifer", "cypress", "juniper"}, Value: "conifer"},
				{Keywords: []string{"flower", "bloom", "orchid", "begonia"}, Value: "flowering-plant"},
			},
			GrowthPattern: []KeywordRule{
				{Keywords: []string{"climbing", "climber", "vining up", "shingling"}, Value: "vining-climbing"},
				{Keywords: []string{"trailing", "cascading", "string of"}, Value: "vining-trailing"},
				{Keywords: []string{"rosette"}, Value: "rosette"},
				{Keywords: []string{"carpeting", "carpet"}, Value: "carpeting"},
				{Keywords: []string{"clumping", "clump-forming", "tussock"}, Value: "clumping"},
				{Keywords: []string{"creeping", "spreading", "ground cover", "groundcover"}, Value: "spreading"},
				{Keywords: []string{"pendent", "pendant", "hanging"}, Value: "pendent"},
				{Keywords: []string{"columnar"}, Value: "upright-columnar"},
				{Keywords: []string{"bushy", "shrubby", "shrub"}, Value: "upright-bushy"},
				{Keywords: []string{"single stem", "single-stemmed", "solitary stem"}, Value: "upright-single-stem"},
			},
			GrowthHabit: []KeywordRule{
				{Keywords: []string{"submerged", "fully aquatic", "underwater"}, Value: "fully-aquatic"},
				{Keywords: []string{"emergent", "emersed"}, Value: "emergent-aquatic"},
				{Keywords: []string{"semi-aquatic", "semi aquatic", "riparium", "bog plant", "marginal"}, Value: "semi-aquatic"},
				{Keywords: []string{"hemiepiphyte", "hemi-epiphyte", "semi-epiphytic"}, Value: "semi-epiphytic"},
				{Keywords: []string{"epiphyte", "epiphytic", "air plant", "mounted"}, Value: "tree-dwelling"},
				{Keywords: []string{"lithophyte", "lithophytic", "on rocks", "rock-dwelling"}, Value: "rock-dwelling"},
				{Keywords: []string{"terrestrial", "ground-dwelling", "forest floor"}, Value: "ground-dwelling"},
			},
			Hazard: []KeywordRule{
				{Keywords: []string{"non-toxic", "non toxic", "pet safe", "pet-safe", "pet friendly"}, Value: "non-toxic"},
				{Keywords: []string{"toxic", "poisonous", "calcium oxalate"}, Value: "toxic-if-ingested"},
				{Keywords: []string{"spines", "thorns", "irritant", "sap may irritate", "prickly"}, Value: "handle-with-care"},
			},
			Rarity: []KeywordRule{
				{Keywords: []string{"very rare", "ultra rare", "extremely rare", "grail"}, Value: "very-rare"},
				{Keywords: []string{"rare", "hard to find", "collector"}, Value: "rare"},
				{Keywords: []string{"uncommon", "unusual"}, Value: "uncommon"},
				{Keywords: []string{"common", "widely available", "beginner"}, Value: "common"},
			},
			FloweringPeriod: []KeywordRule{
				{Keywords: []string{"does not flower in cultivation", "rarely flowers in cultivation"}, Value: "does-not-flower-in-cultivation"},
				{Keywords: []string{"does not flower", "non-flowering", "never flowers"}, Value: "does-not-flower"},
				{Keywords: []string{"year-round", "year round", "everblooming", "continuously"}, Value: "year-round"},
				{Keywords: []string{"seasonal", "in spring", "in summer", "in autumn", "in winter"}, Value: "seasonal"},
				{Keywords: []string{"irregular", "sporadic", "unpredictable bloom"}, Value: "irregular"},
			},
			CO2: []KeywordRule{
				{Keywords: []string{"co2 required", "requires co2", "co2 injection required"}, Value: "required"},
				{Keywords: []string{"co2 recommended", "recommend co2"}, Value: "recommended"},
				{Keywords: []string{"co2 beneficial", "benefits from co2", "appreciates co2"}, Value: "beneficial"},
				{Keywords: []string{"no co2", "without co2", "co2 not required", "co2 not needed"}, Value: "not-required"},
			},
		},

		PropagationRules: []PropagationRule{
			{PlantType: "moss", Methods: []string{"Division", "Spores"}},
			{PlantType: "fern", Methods: []string{"Spores", "Division"}},
			{PlantType: "spikemoss", Methods: []string{"Stem cuttings", "Division"}},
			{PlantType: "liverwort", Methods: []string{"Division", "Fragmentation"}},
			{PlantType: "algae", Methods: []string{"Fragmentation", "Division"}},
			{PlantType: "fungus", Methods: []string{"Mycelial culture", "Spores"}},
			{CategoryAny: []string{"succulent", "cactus", "cacti"}, Methods: []string{"Leaf cuttings", "Stem cuttings", "Offsets"}},
			{CategoryAny: []string{"orchid", "orchids"}, Methods: []string{"Division", "Plantlets", "Seed"}},
			{CategoryAny: []string{"bromeliad", "air plant", "tillandsia"}, Methods: []string{"Pups", "Seed"}},
			{GrowthHabit: "fully-aquatic", Methods: []string{"Stem cuttings", "Division"}},
			{GrowthPattern: "rosette", Methods: []string{"Offsets", "Division"}},
			{GrowthPattern: "vining-climbing", Methods: []string{"Stem cuttings", "Layering"}},
			{GrowthPattern: "vining-trailing", Methods: []string{"Stem cuttings", "Layering"}},
			{GrowthPattern: "carpeting", Methods: []string{"Division", "Runners"}},
			{GrowthPattern: "spreading", Methods: []string{"Division", "Runners"}},
			{GrowthPattern: "clumping", Methods: []string{"Division", "Rhizomes"}},
		},
		PropagationFallback: []string{"Stem cuttings", "Division"},

		NonPlantPatterns: []string{
			"bundle", "kit", "set", "starter", "gift", "voucher",
			"accessory", "accessories", "tool", "tools", "tweezers",
			"scissors", "fertilizer", "fertiliser", "plant food",
			"potting mix", "substrate", "soil", "spray", "mister",
			"pot", "pots", "planter", "heat mat", "grow light",
			"decor", "hardscape", "background", "glue", "mesh", "wire",
		},
		NonPlantExceptions: []string{
			// Real plants whose trade names collide with product words.
			"wire vine",
			"monkey pot",
		},

		CarePlaceholders: []string{
			"unknown", "n/a", "na", "tbd", "todo", "-", "varies",
			"see description", "not specified",
		},
	}
}
