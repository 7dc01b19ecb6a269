package nlp

// stopWords is the fixed Indonesian stop-word set: common function words
// plus noise terms specific to financial news pages (outlet names, day and
// month names, boilerplate verbs).
var stopWords = map[string]struct{}{}

func init() {
	words := []string{
		// Function words.
		"yang", "dan", "di", "ke", "dari", "ini", "itu", "untuk", "dengan",
		"pada", "dalam", "adalah", "ada", "tidak", "juga", "sudah", "saya",
		"anda", "dia", "mereka", "kita", "kami", "akan", "bisa", "dapat",
		"harus", "perlu", "serta", "atau", "maupun", "hingga", "oleh",
		"terhadap", "seperti", "bahwa", "karena", "sehingga", "namun",
		"tetapi", "saat", "telah", "secara", "lebih", "para", "sebagai",
		"masih", "tersebut", "yakni", "yaitu", "agar", "jika", "kalau",
		"hal", "per", "bagi", "antara", "sementara", "setelah", "sebelum",
		// News outlet and page boilerplate.
		"kompas", "kontan", "detik", "cnbc", "indonesia", "jakarta",
		"wartawan", "editor", "redaksi", "foto", "gambar", "video",
		"baca", "lihat", "klik", "share", "bagikan",
		// Time expressions.
		"kemarin", "besok", "lusa", "senin", "selasa", "rabu", "kamis",
		"jumat", "sabtu", "minggu", "januari", "februari", "maret",
		"april", "mei", "juni", "juli", "agustus", "september",
		"oktober", "november", "desember", "wib", "wita", "wit",
	}
	for _, w := range words {
		stopWords[w] = struct{}{}
	}
}

// sentimentStopWords is the lighter set used before sentiment scoring:
// only bare function words, so negations and intensifiers survive.
var sentimentStopWords = map[string]struct{}{
	"yang": {}, "dan": {}, "di": {}, "ke": {}, "dari": {},
	"ini": {}, "itu": {}, "untuk": {}, "dengan": {},
}
