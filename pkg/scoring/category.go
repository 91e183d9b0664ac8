package scoring

import (
	"sort"
	"strings"

	"callcenter-analysis-be/internal/protocol"
)

// categoryKeywords maps archive categories to lower-cased stems seen in
// customer turns. Order matters only for ties, which go to the earlier entry.
var categoryKeywords = []struct {
	category string
	stems    []string
}{
	{"billing_installment", []string{"taksit"}},
	{"billing_error", []string{"fatura", "ekstra ücret", "fazla ücret", "yanlış ücret"}},
	{"billing_setup", []string{"e-fatura", "otomatik ödeme", "fatura adres"}},
	{"internet_speed", []string{"yavaş", "mbps", "speedtest", "hız"}},
	{"fiber_installation", []string{"fiber kurulum", "altyapı", "kurulum"}},
	{"number_portability", []string{"numara taşıma", "taşıma"}},
	{"signal_coverage", []string{"sinyal", "çekmiyor", "kapsama", "baz istasyon"}},
	{"call_dropping", []string{"arama düş", "aramalar düş", "kesiliyor"}},
	{"data_package", []string{"paket", "gb", "kota"}},
	{"tariff_change", []string{"tarife"}},
	{"roaming", []string{"yurtdışı", "roaming", "dolaşım"}},
	{"corporate_sales", []string{"kurumsal", "şirket", "firma"}},
	{"device_problem", []string{"telefon bozul", "cihaz", "ekran", "şarj"}},
	{"sms_issue", []string{"sms", "mesaj gelmiyor"}},
	{"app_connectivity", []string{"uygulama", "giriş yapamıyorum", "şifre"}},
	{"sim_card", []string{"sim kart", "simkart", "pin", "puk"}},
	{"campaign", []string{"kampanya", "indirim"}},
	{"5g_upgrade", []string{"5g"}},
	{"line_suspension", []string{"hat kapat", "hattımı kapat", "iptal"}},
	{"voicemail", []string{"sesli mesaj", "telesekreter"}},
	{"live_support", []string{"canlı destek", "temsilci"}},
}

// Categorize picks the category whose stems occur most often in the customer
// turns. It returns "" when nothing matches.
func Categorize(turns []protocol.Turn) string {
	category, _ := classify(turns)
	return category
}

// Keywords lists the stems that matched, sorted.
func Keywords(turns []protocol.Turn) []string {
	_, matched := classify(turns)
	return matched
}

func classify(turns []protocol.Turn) (string, []string) {
	var b strings.Builder
	for _, t := range turns {
		if t.Role != protocol.RoleCustomer {
			continue
		}
		b.WriteString(strings.ToLower(t.Text))
		b.WriteByte('\n')
	}
	text := b.String()
	if text == "" {
		return "", nil
	}

	best, bestHits := "", 0
	seen := make(map[string]struct{})
	for _, entry := range categoryKeywords {
		hits := 0
		for _, stem := range entry.stems {
			if n := strings.Count(text, stem); n > 0 {
				hits += n
				seen[stem] = struct{}{}
			}
		}
		if hits > bestHits {
			best, bestHits = entry.category, hits
		}
	}

	matched := make([]string, 0, len(seen))
	for stem := range seen {
		matched = append(matched, stem)
	}
	sort.Strings(matched)
	return best, matched
}

// EmotionCode converts the engine's customerEmotion label to the archive code.
func EmotionCode(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "pozitif", "positive":
		return "satisfied"
	case "negatif", "negative":
		return "frustrated"
	case "":
		return ""
	default:
		return "neutral"
	}
}

// EmpathyCode converts the engine's empathyLevel label to the archive code.
func EmpathyCode(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "yüksek", "high":
		return "high"
	case "düşük", "low":
		return "low"
	case "orta", "medium":
		return "medium"
	default:
		return ""
	}
}
