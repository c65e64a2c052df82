package tables

// Hex-grid and terrain tables for icosahedral world maps. Water feature
// tables are indexed by the water roll (2d6 + UWP hydrographic, 2..22);
// land feature tables by the land roll minus LandRollBase (16..36 → 0..20).

const EarthDiameterKM = 12742.0

const (
	MaxWorldSizeIndex = 30
	MaxHexesPerSide   = 19
	MaxWaterRoll      = 22
	LandRollBase      = 16
	LandRollOffset    = 14
)

// Hexes along one triangle edge, indexed by round(diameter km / 1000).
var hexesPerSide = [MaxWorldSizeIndex + 1]int{
	1, 1, 1, 2, 3, 3, 4, 4, 5, 6,
	6, 7, 8, 8, 9, 9, 10, 11, 11, 12,
	13, 13, 14, 14, 15, 16, 16, 17, 18, 18,
	19,
}

// Total hexes on the map (10n² + 2), indexed by hexes per side.
var totalHexes = [MaxHexesPerSide + 1]int{
	0, 12, 42, 92, 162, 252, 362, 492, 642, 812,
	1002, 1212, 1442, 1692, 1962, 2252, 2562, 2892, 3242, 3612,
}

func HexesPerSide(sizeIndex int) int {
	return hexesPerSide[Clamp(sizeIndex, 0, MaxWorldSizeIndex)]
}

func TotalHexes(perSide int) int {
	return totalHexes[Clamp(perSide, 0, MaxHexesPerSide)]
}

var uwpSize = FloatLadder[int]{
	Rungs: []FloatRung[int]{
		{Below: 800, Value: 0},
		{Below: 2400, Value: 1},
		{Below: 4000, Value: 2},
		{Below: 5600, Value: 3},
		{Below: 7200, Value: 4},
		{Below: 8800, Value: 5},
		{Below: 10400, Value: 6},
		{Below: 12000, Value: 7},
		{Below: 13600, Value: 8},
		{Below: 15200, Value: 9},
		{Below: 16800, Value: 10},
		{Below: 18400, Value: 11},
	},
	Top: 12,
}

// UWPSize maps a diameter in km onto the 0..12 size digit.
func UWPSize(diameterKM float64) int {
	return uwpSize.Lookup(diameterKM)
}

var uwpHydrographic = Ladder[int]{
	Rungs: []Rung[int]{
		{UpTo: 5, Value: 0},
		{UpTo: 15, Value: 1},
		{UpTo: 25, Value: 2},
		{UpTo: 35, Value: 3},
		{UpTo: 45, Value: 4},
		{UpTo: 55, Value: 5},
		{UpTo: 65, Value: 6},
		{UpTo: 75, Value: 7},
		{UpTo: 85, Value: 8},
		{UpTo: 95, Value: 9},
	},
	Top: 10,
}

// UWPHydrographic maps a coverage percentage onto the 0..10 hydrographic digit.
func UWPHydrographic(percent int) int {
	return uwpHydrographic.Lookup(percent)
}

var majorOceanAddition = [MaxWaterRoll + 1]int{
	0, 0, 0, 0, 0, 0, 0, 5, 5, 4,
	4, 3, 3, 3, 2, 2, 2, 1, 1, 0,
	0, 0, 0,
}

var minorOceanMultiplier = [MaxWaterRoll + 1]int{
	0, 0, 0, 0, 0, 0, 0, 1, 1, 1,
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	1, 1, 1,
}

var minorOceanAddition = [MaxWaterRoll + 1]int{
	0, 0, 0, 0, 0, 0, 0, 5, 4, 3,
	6, 5, 4, 4, 3, 3, 3, 4, 5, 6,
	3, 4, 5,
}

func MajorOceanAddition(waterRoll int) int {
	return majorOceanAddition[Clamp(waterRoll, 0, MaxWaterRoll)]
}

func MinorOceanCoefficients(waterRoll int) (multiplier, addition int) {
	i := Clamp(waterRoll, 0, MaxWaterRoll)
	return minorOceanMultiplier[i], minorOceanAddition[i]
}

// ContinentRolls is the number of land rolls (from LandRollBase) that can
// produce continents at all.
const ContinentRolls = 15

var majorContinentMultiplier = [ContinentRolls]int{1, 1, 2, 2, 2, 2, 2, 1, 1, 1, 1, 1, 1, 1, 1}
var majorContinentAddition = [ContinentRolls]int{-3, -3, -4, -4, -4, -4, -4, -2, -2, -3, -3, -4, -4, -5, -5}

var minorContinentMultiplier = [ContinentRolls]int{1, 1, 1, 2, 2, 2, 2, 2, 2, 1, 1, 1, 1, 1, 1}
var minorContinentAddition = [ContinentRolls]int{-2, -2, -1, -3, -3, -2, -2, -2, -3, -1, -1, -2, -2, -3, -4}

// MajorContinentCoefficients returns the dice count and addition for a land
// roll offset; ok is false once the world is too wet for continents.
func MajorContinentCoefficients(offset int) (multiplier, addition int, ok bool) {
	if offset < 0 || offset >= ContinentRolls {
		return 0, 0, false
	}
	return majorContinentMultiplier[offset], majorContinentAddition[offset], true
}

func MinorContinentCoefficients(offset int) (multiplier, addition int, ok bool) {
	if offset < 0 || offset >= ContinentRolls {
		return 0, 0, false
	}
	return minorContinentMultiplier[offset], minorContinentAddition[offset], true
}

var plateSizeCoefficient = [6]int{5, 10, 15, 20, 25, 30}

// PlateSizeCoefficient is indexed by a 1d6 face.
func PlateSizeCoefficient(face int) int {
	return plateSizeCoefficient[Clamp(face, 1, 6)-1]
}
