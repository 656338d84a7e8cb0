package currency

import (
	_ "embed"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-metrics-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed rates.json
var bundledSnapshot []byte

// Snapshot é a tabela de câmbio empacotada com a aplicação (valor de cada moeda por 1 USD)
type Snapshot struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// Normalizer converte valores entre moedas usando uma tabela somente leitura.
// Pode ser compartilhado entre requisições concorrentes.
type Normalizer struct {
	rates        map[string]decimal.Decimal
	snapshotDate string
}

// LoadBundled carrega a tabela de câmbio embutida no binário
func LoadBundled() (*Normalizer, error) {
	return Load(bundledSnapshot)
}

// Load carrega uma tabela de câmbio no formato do snapshot empacotado
func Load(data []byte) (*Normalizer, error) {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("currency: erro ao decodificar tabela de câmbio: %w", err)
	}

	normalizer, err := NewNormalizer(snapshot.Rates)
	if err != nil {
		return nil, err
	}
	normalizer.snapshotDate = snapshot.Date

	logrus.WithFields(logrus.Fields{
		"base":       snapshot.Base,
		"date":       snapshot.Date,
		"currencies": len(normalizer.rates),
	}).Info("currency: exchange rate table loaded")

	return normalizer, nil
}

func NewNormalizer(rates map[string]decimal.Decimal) (*Normalizer, error) {
	table := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		if !rate.IsPositive() {
			return nil, fmt.Errorf("currency: taxa inválida para %s: %s", code, rate)
		}
		table[normalizeCode(code)] = rate
	}

	return &Normalizer{rates: table}, nil
}

func (n *Normalizer) SnapshotDate() string {
	return n.snapshotDate
}

// Has informa se a moeda existe na tabela
func (n *Normalizer) Has(code string) bool {
	_, ok := n.rates[normalizeCode(code)]
	return ok
}

// Convert converte amount da moeda from para to passando por USD. Moedas iguais
// retornam o valor intacto; moedas desconhecidas geram um aviso e o valor não é convertido.
func (n *Normalizer) Convert(amount float64, from, to string) float64 {
	if from == to {
		return amount
	}

	from, to = normalizeCode(from), normalizeCode(to)
	if from == to {
		return amount
	}

	fromRate, ok := n.rates[from]
	if !ok {
		logMissingCurrency(from, from, to)
		return amount
	}

	toRate, ok := n.rates[to]
	if !ok {
		logMissingCurrency(to, from, to)
		return amount
	}

	converted, _ := decimal.NewFromFloat(amount).Div(fromRate).Mul(toRate).Float64()
	return converted
}

// NormalizeBatch devolve uma cópia do lote com todos os valores monetários na moeda to
func (n *Normalizer) NormalizeBatch(batch domain.SourceBatch, to string) domain.SourceBatch {
	normalized := domain.SourceBatch{
		Source:          batch.Source,
		Currency:        to,
		Timezone:        batch.Timezone,
		Records:         make([]domain.RawDailyRecord, 0, len(batch.Records)),
		UniqueCustomers: batch.UniqueCustomers,
	}

	if len(batch.Records) == 0 {
		return normalized
	}

	from := batch.Currency
	if from == "" {
		logrus.WithField("source", batch.Source).Warn("currency: source did not report its currency, amounts kept as-is")
		from = to
	}

	for _, record := range batch.Records {
		record.Revenue = n.Convert(record.Revenue, from, to)
		record.RevenueExTax = n.Convert(record.RevenueExTax, from, to)
		record.TotalTax = n.Convert(record.TotalTax, from, to)
		record.TotalRefunds = n.Convert(record.TotalRefunds, from, to)
		record.Spend = n.Convert(record.Spend, from, to)
		record.ConversionValue = n.Convert(record.ConversionValue, from, to)

		normalized.Records = append(normalized.Records, record)
	}

	return normalized
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func logMissingCurrency(missing, from, to string) {
	logrus.WithFields(logrus.Fields{
		"currency": missing,
		"from":     from,
		"to":       to,
	}).Warn("currency: currency not found in exchange table, amount kept unconverted")
}
