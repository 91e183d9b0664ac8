package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"callcenter-analysis-be/internal/protocol"
)

func customer(texts ...string) []protocol.Turn {
	turns := make([]protocol.Turn, 0, len(texts))
	for i, text := range texts {
		turns = append(turns, protocol.Turn{Seq: i + 1, Role: protocol.RoleCustomer, Text: text})
	}
	return turns
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name  string
		turns []protocol.Turn
		want  string
	}{
		{name: "slow internet", turns: customer("İnternetim çok yavaş, speedtest 2 Mbps gösteriyor"), want: "internet_speed"},
		{name: "bill", turns: customer("Bu ay faturamda ekstra ücret var!"), want: "billing_error"},
		{name: "roaming", turns: customer("Yurtdışına çıkıyorum, roaming açık mı?"), want: "roaming"},
		{name: "nothing matches", turns: customer("merhaba"), want: ""},
		{
			name: "agent turns are ignored",
			turns: []protocol.Turn{
				{Role: protocol.RoleAgent, Text: "5g paketimizi önerebilirim"},
				{Role: protocol.RoleCustomer, Text: "sim kart pin kodumu unuttum"},
			},
			want: "sim_card",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.turns))
		})
	}
}

func TestKeywordsAreSorted(t *testing.T) {
	got := Keywords(customer("speedtest yavaş", "yine yavaş"))
	assert.Equal(t, []string{"speedtest", "yavaş"}, got)
	assert.Empty(t, Keywords(nil))
}

func TestArchiveCodes(t *testing.T) {
	assert.Equal(t, "satisfied", EmotionCode("Pozitif"))
	assert.Equal(t, "frustrated", EmotionCode("Negatif"))
	assert.Equal(t, "neutral", EmotionCode("Nötr"))
	assert.Equal(t, "", EmotionCode(""))
	assert.Equal(t, "high", EmpathyCode("Yüksek"))
	assert.Equal(t, "low", EmpathyCode("Düşük"))
	assert.Equal(t, "", EmpathyCode("?"))
}
