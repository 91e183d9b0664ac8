package client

// Display names for the codes the scoring engine and the archive use.
var (
	EmotionLabels = map[string]string{
		"frustrated":   "Sinirli",
		"angry":        "Kızgın",
		"neutral":      "Nötr",
		"satisfied":    "Memnun",
		"happy":        "Mutlu",
		"disappointed": "Hayal Kırıklığı",
		"anxious":      "Endişeli",
		"confused":     "Şaşkın",
		"interested":   "İlgili",
		"professional": "Profesyonel",
		"relieved":     "Rahatlamış",
	}

	EmpathyLabels = map[string]string{
		"high":   "Yüksek",
		"medium": "Orta",
		"low":    "Düşük",
	}

	CategoryLabels = map[string]string{
		"internet_speed":      "İnternet Hızı",
		"billing_error":       "Fatura Hatası",
		"number_portability":  "Numara Taşıma",
		"signal_coverage":     "Sinyal Kapsama",
		"data_package":        "İnternet Paketi",
		"tariff_change":       "Tarife Değişikliği",
		"roaming":             "Yurtdışı Dolaşım",
		"corporate_sales":     "Kurumsal Satış",
		"device_problem":      "Cihaz Sorunu",
		"sms_issue":           "SMS Sorunu",
		"fiber_installation":  "Fiber Kurulum",
		"billing_setup":       "Fatura Ayarları",
		"app_connectivity":    "Uygulama Bağlantısı",
		"sim_card":            "SIM Kart",
		"campaign":            "Kampanya",
		"5g_upgrade":          "5G Yükseltme",
		"line_suspension":     "Hat Kapatılması",
		"call_dropping":       "Arama Düşmesi",
		"voicemail":           "Sesli Mesaj",
		"billing_installment": "Fatura Taksitlendirme",
		"live_support":        "Canlı Destek",
	}
)

// Label looks a code up in table, falling back to the code itself.
func Label(table map[string]string, code string) string {
	if v, ok := table[code]; ok {
		return v
	}
	return code
}
