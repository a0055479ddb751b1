package baseline

// Kerbol returns the stock Kerbol system. Bodies are listed in the stock
// iteration order, which is also the order random draws are made in.
func Kerbol() *Baseline {
	return &Baseline{
		Name: "kerbol",
		Home: "Kerbin",
		Star: Body{
			Name:           "Sun",
			Mass:           1.7565459e28,
			Radius:         261_600_000,
			RotationPeriod: 432_000,
		},
		Bodies: []Body{
			{
				Name: "Kerbin", Parent: "Sun", Mass: 5.2915158e22, Radius: 600_000, RotationPeriod: 21_549.425, Atmosphere: true,
				SemiMajorAxis: 13_599_840_256, MeanAnomalyAtEpoch: 3.14, SphereOfInfluence: 84_159_286,
			},
			{
				Name: "Mun", Parent: "Kerbin", Mass: 9.7599066e20, Radius: 200_000, RotationPeriod: 138_984.38,
				SemiMajorAxis: 12_000_000, MeanAnomalyAtEpoch: 1.7, SphereOfInfluence: 2_429_559.1,
			},
			{
				Name: "Minmus", Parent: "Kerbin", Mass: 2.6457580e19, Radius: 60_000, RotationPeriod: 40_400,
				SemiMajorAxis: 47_000_000, Inclination: 6, MeanAnomalyAtEpoch: 0.9,
				LongitudeAscendingNode: 78, ArgumentOfPeriapsis: 38, SphereOfInfluence: 2_247_428.4,
			},
			{
				Name: "Moho", Parent: "Sun", Mass: 2.5263314e21, Radius: 250_000, RotationPeriod: 1_210_000,
				SemiMajorAxis: 5_263_138_304, Eccentricity: 0.2, Inclination: 7, MeanAnomalyAtEpoch: 3.14,
				LongitudeAscendingNode: 70, ArgumentOfPeriapsis: 15, SphereOfInfluence: 9_646_663,
			},
			{
				Name: "Eve", Parent: "Sun", Mass: 1.2243980e23, Radius: 700_000, RotationPeriod: 80_500, Atmosphere: true,
				SemiMajorAxis: 9_832_684_544, Eccentricity: 0.01, Inclination: 2.1, MeanAnomalyAtEpoch: 3.14,
				LongitudeAscendingNode: 15, SphereOfInfluence: 85_109_365,
			},
			{
				Name: "Duna", Parent: "Sun", Mass: 4.5154270e21, Radius: 320_000, RotationPeriod: 65_517.859, Atmosphere: true,
				SemiMajorAxis: 20_726_155_264, Eccentricity: 0.051, Inclination: 0.06, MeanAnomalyAtEpoch: 3.14,
				LongitudeAscendingNode: 135.5, SphereOfInfluence: 47_921_949,
			},
			{
				Name: "Ike", Parent: "Duna", Mass: 2.7821615e20, Radius: 130_000, RotationPeriod: 65_517.862,
				SemiMajorAxis: 3_200_000, Eccentricity: 0.03, Inclination: 0.2, MeanAnomalyAtEpoch: 1.7,
				SphereOfInfluence: 1_049_598.9,
			},
			{
				Name: "Jool", Parent: "Sun", Mass: 4.2332127e24, Radius: 6_000_000, RotationPeriod: 36_000, Atmosphere: true,
				SemiMajorAxis: 68_773_560_320, Eccentricity: 0.05, Inclination: 1.304, MeanAnomalyAtEpoch: 0.1,
				LongitudeAscendingNode: 52, SphereOfInfluence: 2_455_985_200,
			},
			{
				Name: "Laythe", Parent: "Jool", Mass: 2.9397311e22, Radius: 500_000, RotationPeriod: 52_980.879, Atmosphere: true,
				SemiMajorAxis: 27_184_000, MeanAnomalyAtEpoch: 3.14, SphereOfInfluence: 3_723_645.8,
			},
			{
				Name: "Vall", Parent: "Jool", Mass: 3.1087655e21, Radius: 300_000, RotationPeriod: 105_962.09,
				SemiMajorAxis: 43_152_000, MeanAnomalyAtEpoch: 0.9, SphereOfInfluence: 2_406_401.4,
			},
			{
				Name: "Bop", Parent: "Jool", Mass: 3.7261090e19, Radius: 65_000, RotationPeriod: 544_507.43,
				SemiMajorAxis: 128_500_000, Eccentricity: 0.235, Inclination: 15, MeanAnomalyAtEpoch: 0.9,
				LongitudeAscendingNode: 10, ArgumentOfPeriapsis: 25, SphereOfInfluence: 1_221_060.9,
			},
			{
				Name: "Tylo", Parent: "Jool", Mass: 4.2332127e22, Radius: 600_000, RotationPeriod: 211_926.36,
				SemiMajorAxis: 68_500_000, Inclination: 0.025, MeanAnomalyAtEpoch: 3.14, SphereOfInfluence: 10_856_518,
			},
			{
				Name: "Gilly", Parent: "Eve", Mass: 1.2420363e17, Radius: 13_000, RotationPeriod: 28_255,
				SemiMajorAxis: 31_500_000, Eccentricity: 0.55, Inclination: 12, MeanAnomalyAtEpoch: 0.9,
				LongitudeAscendingNode: 80, ArgumentOfPeriapsis: 10, SphereOfInfluence: 126_123.27,
			},
			{
				Name: "Pol", Parent: "Jool", Mass: 1.0813507e19, Radius: 44_000, RotationPeriod: 901_902.62,
				SemiMajorAxis: 179_890_000, Eccentricity: 0.171, Inclination: 4.25, MeanAnomalyAtEpoch: 0.9,
				LongitudeAscendingNode: 2, ArgumentOfPeriapsis: 15, SphereOfInfluence: 1_042_138.9,
			},
			{
				Name: "Dres", Parent: "Sun", Mass: 3.2190937e20, Radius: 138_000, RotationPeriod: 34_800,
				SemiMajorAxis: 40_839_348_203, Eccentricity: 0.145, Inclination: 5, MeanAnomalyAtEpoch: 3.14,
				LongitudeAscendingNode: 280, ArgumentOfPeriapsis: 90, SphereOfInfluence: 32_832_840,
			},
			{
				Name: "Eeloo", Parent: "Sun", Mass: 1.1149224e21, Radius: 210_000, RotationPeriod: 19_460,
				SemiMajorAxis: 90_118_820_000, Eccentricity: 0.26, Inclination: 6.15, MeanAnomalyAtEpoch: 3.14,
				LongitudeAscendingNode: 50, ArgumentOfPeriapsis: 260, SphereOfInfluence: 119_082_940,
			},
		},
	}
}
