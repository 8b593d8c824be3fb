package freq

// englishLetterFreq is relative letter frequency in English text (percent),
// indexed A..Z.
var englishLetterFreq = [AlphabetSize]float64{
	8.167,  // A
	1.492,  // B
	2.782,  // C
	4.253,  // D
	12.702, // E
	2.228,  // F
	2.015,  // G
	6.094,  // H
	6.966,  // I
	0.153,  // J
	0.772,  // K
	4.025,  // L
	2.406,  // M
	6.749,  // N
	7.507,  // O
	1.929,  // P
	0.095,  // Q
	5.987,  // R
	6.327,  // S
	9.056,  // T
	2.758,  // U
	0.978,  // V
	2.360,  // W
	0.150,  // X
	1.974,  // Y
	0.074,  // Z
}

// englishBigramFreq holds the most frequent English ordered letter pairs
// (percent of all bigrams). The table is directional: a pair appears under
// the direction it was measured, and the reverse direction is a separate
// entry when it was measured too.
var englishBigramFreq = map[string]float64{
	"TH": 3.556, "HE": 3.075, "IN": 2.433, "ER": 2.048, "AN": 1.985,
	"RE": 1.854, "ON": 1.758, "AT": 1.487, "EN": 1.454, "ND": 1.352,
	"TI": 1.343, "ES": 1.339, "OR": 1.277, "TE": 1.205, "OF": 1.175,
	"ED": 1.168, "IS": 1.128, "IT": 1.123, "AL": 1.087, "AR": 1.075,
	"ST": 1.053, "TO": 1.041, "NT": 1.041, "NG": 0.953, "SE": 0.932,
	"HA": 0.926, "AS": 0.871, "OU": 0.870, "IO": 0.835, "LE": 0.829,
	"VE": 0.825, "CO": 0.794, "ME": 0.793, "DE": 0.765, "HI": 0.763,
	"RI": 0.728, "RO": 0.727, "IC": 0.699, "NE": 0.692, "EA": 0.688,
	"RA": 0.686, "CE": 0.651, "LI": 0.624, "CH": 0.598, "LL": 0.577,
	"BE": 0.576, "MA": 0.565, "SI": 0.550, "OM": 0.546, "UR": 0.543,
	"CA": 0.538, "EL": 0.530, "TA": 0.530, "LA": 0.528, "NS": 0.509,
	"DI": 0.493, "FO": 0.488, "HO": 0.485, "PE": 0.478, "EC": 0.477,
	"PR": 0.474, "NO": 0.465, "CT": 0.461, "US": 0.454, "AC": 0.448,
	"OT": 0.442, "IL": 0.432, "TR": 0.426, "LY": 0.425, "NC": 0.416,
	"ET": 0.413, "UT": 0.405, "SS": 0.405, "SO": 0.398, "RS": 0.397,
	"UN": 0.394, "LO": 0.387, "WA": 0.385, "GE": 0.385, "IE": 0.385,
	"WH": 0.379, "EE": 0.378, "WI": 0.374, "EM": 0.374, "AD": 0.368,
	"OL": 0.365, "RT": 0.362, "PO": 0.361, "WE": 0.361, "NA": 0.347,
	"UL": 0.346, "NI": 0.339, "TS": 0.337, "MO": 0.337, "OW": 0.330,
	"PA": 0.324, "IM": 0.318, "MI": 0.318, "AI": 0.316, "SH": 0.315,
}
