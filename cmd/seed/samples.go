package main

type sampleMessage struct {
	customer bool
	text     string
}

type sample struct {
	messages  []sampleMessage
	sentiment float64
	resolved  bool
	emotion   string
	category  string
	tags      []string
}

func fromCustomer(text string) sampleMessage { return sampleMessage{customer: true, text: text} }
func fromAgent(text string) sampleMessage { return sampleMessage{text: text} }

// samples are realistic telecom support conversations.
var samples = []sample{
	{
		messages: []sampleMessage{
			fromCustomer("Merhaba, internetim çok yavaş. Speedtest yaptım 2 Mbps gösteriyor ama 100 Mbps fiber paketim var."),
			fromAgent("Merhaba! Modem ışıkları yanıyor mu? Modemi resetlemeyi denediniz mi?"),
			fromCustomer("Evet, ışıklar yanıyor. 3 kez resetledim ama değişen bir şey olmadı. Bu 1 haftadır böyle."),
			fromAgent("Anladım. Teknik ekibimizle irtibata geçiyorum, yarın sabah teknisyen göndereceğiz. Sorun çözülene kadar internet ücretinizi iade edeceğim."),
		},
		sentiment: 0.65, resolved: true, emotion: "frustrated", category: "internet_speed",
		tags: []string{"fiber", "yavaşlık", "teknik_destek"},
	},
	{
		messages: []sampleMessage{
			fromCustomer("Bu ay faturamda 450 TL ekstra ücret var! Ne bu?"),
			fromAgent("Faturanızı inceliyorum. Ekstra ücret 15 Aralık'ta yapılan 200 dakikalık yurtdışı aramadan kaynaklanıyor."),
			fromCustomer("Yurtdışı aramam yok ki! Türkiye'den çıkmadım."),
			fromAgent("Özür dilerim, bu teknik bir hata. Ücreti iptal ediyorum ve 50 TL indirim kuponu tanımlıyorum."),
		},
		sentiment: 0.55, resolved: true, emotion: "angry", category: "billing_error",
		tags: []string{"fatura", "hata", "ücret_iadesi"},
	},
	{
		messages: []sampleMessage{
			fromCustomer("Merhaba, numara taşıma için başvurmuştum. Ne zaman tamamlanır?"),
			fromAgent("Merhaba! Başvuru numaranız nedir?"),
			fromCustomer("NT123456"),
			fromAgent("Teşekkürler! Başvurunuz onaylandı ve 2 gün içinde taşıma işlemi tamamlanacak."),
		},
		sentiment: 0.85, resolved: true, emotion: "neutral", category: "number_portability",
		tags: []string{"numara_taşıma", "başvuru"},
	},
	{
		messages: []sampleMessage{
			fromCustomer("Evde hiç sinyal çekmiyor! Her arama düşüyor."),
			fromAgent("Bu çok rahatsız edici olmalı. Hangi ilçedesiniz?"),
			fromCustomer("Kadıköy, Moda'da oturuyorum."),
			fromAgent("Bölgenizde baz istasyonu bakımı var, bugün saat 18:00'de bitecek. Rahatsızlık için özür dilerim."),
		},
		sentiment: 0.70, resolved: true, emotion: "frustrated", category: "signal_coverage",
		tags: []string{"sinyal", "kapsama", "baz_istasyonu"},
	},
	{
		messages: []sampleMessage{
			fromCustomer("10GB internet paketim bitti. Ek paket nasıl alırım?"),
			fromAgent("*123*1# tuşlayarak veya mobil uygulamamızdan paket satın alabilirsiniz."),
			fromCustomer("Uygulamadan aldım teşekkürler!"),
			fromAgent("Rica ederim! İyi günler dilerim."),
		},
		sentiment: 0.95, resolved: true, emotion: "satisfied", category: "data_package",
		tags: []string{"internet_paketi", "ek_paket"},
	},
	{
		messages: []sampleMessage{
			fromCustomer("Tarifemi değiştirmek istiyorum. Daha uygun bir şey var mı?"),
			fromAgent("Şu an hangi tarifeyi kullanıyorsunuz ve ne kadar internet/konuşma kullanıyorsunuz?"),
			fromCustomer("Ayda 20GB internet ve 500 dakika konuşma kullanıyorum. 150 TL ödüyorum."),
			fromAgent("25GB internet, sınırsız konuşma, 125 TL. Geçiş yapalım mı?"),
		},
		sentiment: 0.80, resolved: false, emotion: "interested", category: "tariff_change",
		tags: []string{"tarife", "kampanya", "değişiklik"},
	},
	{
		messages: []sampleMessage{
			fromCustomer("Yurtdışında internet çalışmıyor. Almanya'dayım."),
			fromAgent("Veri dolaşımı aktif mi? Ayarlar > Mobil Veri > Veri Dolaşımı açık olmalı."),
			fromCustomer("Evet açık. Ama yine de bağlanmıyor."),
			fromAgent("Manuel operatör seçimi yapın: Ayarlar > Mobil Ağ > Ağ Operatörleri."),
			fromCustomer("Olmadı yine. Çok acil ihtiyacım var!"),
			fromAgent("Anlıyorum, teknik ekip inceliyor. 1 saat içinde dönüş yapacağız."),
		},
		sentiment: 0.35, resolved: false, emotion: "anxious", category: "roaming",
		tags: []string{"yurtdışı", "dolaşım", "teknik_sorun"},
	},
	{
		messages: []sampleMessage{
			fromCustomer("Modemim sürekli yeniden başlıyor. Gün içinde 10 kez kopuyor internet."),
			fromAgent("Bu kesinlikle normal değil. Modem garanti kapsamında mı?"),
			fromCustomer("2 yıllık, garantisi bitti sanırım."),
			fromAgent("Modem arızalı görünüyor. Size yeni modem gönderelim mi? 24 saat içinde kargoya verilir."),
		},
		sentiment: 0.60, resolved: true, emotion: "frustrated", category: "device_problem",
		tags: []string{"modem", "arıza", "değişim"},
	},
	{
		messages: []sampleMessage{
			fromCustomer("SMS gönderemiyorum. Mesaj merkezi numarası kaybolmuş."),
			fromAgent("Ayarlar > Mesajlar > Mesaj Merkezi kısmından numarayı tekrar girebilirsiniz."),
			fromCustomer("Harika! Düzeldi, çok teşekkürler!"),
			fromAgent("Sevindim! Başka bir sorun olursa buradayız."),
		},
		sentiment: 0.95, resolved: true, emotion: "satisfied", category: "sms_issue",
		tags: []string{"sms", "mesaj_merkezi", "ayar"},
	},
	{
		messages: []sampleMessage{
			fromCustomer("Fiber internet başvurum ne durumda? 2 hafta oldu."),
			fromAgent("Başvuru numaranızı alabilir miyim?"),
			fromCustomer("FB987654"),
			fromAgent("Maalesef bölgenizde fiber altyapı hazır değil. Altyapı 3 ay içinde tamamlanacak."),
		},
		sentiment: 0.45, resolved: false, emotion: "disappointed", category: "fiber_installation",
		tags: []string{"fiber", "altyapı", "kurulum"},
	},
	{
		messages: []sampleMessage{
			fromCustomer("Hattımı kaybettim, çalındı sanırım. Kapatabilir misiniz?"),
			fromAgent("Hemen kapatıyorum! Kimlik doğrulaması için TC kimlik numaranız?"),
			fromCustomer("12345678901"),
			fromAgent("Hattınız askıya alındı. Yeni SIM kart için en yakın mağazaya kimliğinizle gelebilirsiniz."),
		},
		sentiment: 0.65, resolved: true, emotion: "anxious", category: "line_suspension",
		tags: []string{"hırsızlık", "hat_kapatma", "sim_değişim"},
	},
	{
		messages: []sampleMessage{
			fromCustomer("Faturamı taksit yapmak istiyorum. Mümkün mü?"),
			fromAgent("Fatura tutarınız 500 TL'nin üzerindeyse 3 taksit imkanı sunuyoruz. Faturanız kaç TL?"),
			fromCustomer("850 TL"),
			fromAgent("3 taksit yapabiliriz. Aylık 283 TL olarak yansıyacak. Onaylıyor musunuz?"),
			fromCustomer("Evet lütfen, çok teşekkürler!"),
		},
		sentiment: 0.88, resolved: true, emotion: "relieved", category: "billing_installment",
		tags: []string{"fatura", "taksit", "ödeme"},
	},
}
