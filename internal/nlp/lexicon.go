package nlp

// Lexicon is the versioned sentiment resource bound at pipeline
// construction. Entries containing a space are matched as bigrams.
// Instances are treated as immutable after construction.
type Lexicon struct {
	Version      string
	Positive     map[string]float64
	Negative     map[string]float64
	Intensifiers map[string]float64
	Negations    map[string]struct{}
}

// DefaultLexicon returns the built-in Indonesian financial-news lexicon.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Version: "idn-finance-1",
		Positive: map[string]float64{
			// Strong positive.
			"untung": 1.0, "laba": 1.0, "profit": 1.0, "surplus": 1.0,
			"melonjak": 1.0, "meroket": 1.0, "melejit": 1.0, "melesat": 1.0,
			"rekor": 1.0, "tertinggi": 1.0, "terbaik": 1.0, "optimal": 1.0,
			"sukses": 1.0, "berhasil": 1.0, "prestasi": 1.0, "keberhasilan": 1.0,
			// Moderate positive.
			"naik": 0.7, "meningkat": 0.7, "tumbuh": 0.7, "berkembang": 0.7,
			"menguat": 0.7, "positif": 0.7, "optimis": 0.7, "prospek": 0.7,
			"potensi": 0.7, "peluang": 0.7, "ekspansi": 0.7, "investasi": 0.6,
			"dividen": 0.7, "bonus": 0.7, "akuisisi": 0.6, "merger": 0.5,
			// Mild positive.
			"stabil": 0.5, "solid": 0.5, "konsisten": 0.5, "bagus": 0.5,
			"baik": 0.5, "mendukung": 0.5, "apresiasi": 0.5, "pulih": 0.5,
			"recovery": 0.5, "rebound": 0.6, "breakout": 0.6, "rally": 0.7,
			// Analyst recommendation terms.
			"beli": 0.8, "buy": 0.8, "accumulate": 0.7, "akumulasi": 0.7,
			"overweight": 0.6, "outperform": 0.7, "rekomen": 0.5,
			// Technical terms.
			"support": 0.4, "bullish": 0.8, "uptrend": 0.7, "golden cross": 0.8,
		},
		Negative: map[string]float64{
			// Strong negative.
			"rugi": -1.0, "kerugian": -1.0, "loss": -1.0, "defisit": -1.0,
			"anjlok": -1.0, "ambruk": -1.0, "jatuh": -0.9, "terjun": -0.9,
			"kolaps": -1.0, "bangkrut": -1.0, "pailit": -1.0, "gagal": -0.9,
			"terburuk": -1.0, "terendah": -0.9, "krisis": -1.0, "resesi": -1.0,
			// Moderate negative.
			"turun": -0.7, "menurun": -0.7, "melemah": -0.7, "merosot": -0.7,
			"susut": -0.7, "negatif": -0.7, "pesimis": -0.7, "khawatir": -0.6,
			"risiko": -0.5, "ancaman": -0.7, "tekanan": -0.6, "beban": -0.5,
			"hutang": -0.5, "utang": -0.5, "koreksi": -0.5, "pelemahan": -0.6,
			// Mild negative.
			"lambat": -0.4, "stagnan": -0.5, "flat": -0.3, "tertahan": -0.4,
			"terbatas": -0.3, "tantangan": -0.4, "kendala": -0.5, "hambatan": -0.5,
			"volatil": -0.4, "fluktuatif": -0.3, "tidak pasti": -0.5,
			// Analyst recommendation terms.
			"jual": -0.8, "sell": -0.8, "reduce": -0.7, "kurangi": -0.6,
			"underweight": -0.6, "underperform": -0.7, "hindari": -0.7,
			// Technical terms.
			"resistance": -0.3, "bearish": -0.8, "downtrend": -0.7, "death cross": -0.8,
			"breakdown": -0.6, "overbought": -0.4, "oversold": -0.3,
			// Event terms.
			"fraud": -1.0, "korupsi": -1.0, "manipulasi": -0.9, "skandal": -0.9,
			"investigasi": -0.6, "gugatan": -0.7, "sengketa": -0.6,
		},
		Intensifiers: map[string]float64{
			"sangat": 1.5, "amat": 1.5, "sekali": 1.3, "begitu": 1.3,
			"paling": 1.5, "sungguh": 1.4, "benar": 1.3,
			"lumayan": 1.2, "cukup": 1.1, "agak": 0.8, "sedikit": 0.7,
			"kurang": 0.6, "hampir": 0.9, "nyaris": 0.9,
		},
		Negations: map[string]struct{}{
			"tidak": {}, "bukan": {}, "belum": {}, "tanpa": {}, "jangan": {},
			"tak": {}, "tiada": {}, "enggan": {}, "mustahil": {},
		},
	}
}
