package metadomain

import "strconv"

// PurchaseActionTypes em ordem de preferência. Só o primeiro presente é contado, pois
// os tipos se sobrepõem.
var PurchaseActionTypes = []string{
	"omni_purchase",
	"purchase",
	"offsite_conversion.fb_pixel_purchase",
}

type AdAccount struct {
	ID           string `json:"id"`
	AccountID    string `json:"account_id"`
	Name         string `json:"name"`
	Currency     string `json:"currency"`
	TimezoneName string `json:"timezone_name"`
}

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// DailyInsight é uma linha de insights com time_increment=1 no nível da conta
type DailyInsight struct {
	AccountID    string   `json:"account_id"`
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
	Spend        string   `json:"spend"`
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	Actions      []Action `json:"actions"`
	ActionValues []Action `json:"action_values"`
}

type InsightsPage struct {
	Data   []DailyInsight `json:"data"`
	Paging Paging         `json:"paging"`
}

// Purchases retorna a quantidade e o valor das compras do dia usando o primeiro tipo de
// ação de compra disponível
func (i *DailyInsight) Purchases() (count float64, value float64) {
	for _, actionType := range PurchaseActionTypes {
		c, hasCount := findAction(i.Actions, actionType)
		v, hasValue := findAction(i.ActionValues, actionType)
		if hasCount || hasValue {
			return c, v
		}
	}
	return 0, 0
}

func findAction(actions []Action, actionType string) (float64, bool) {
	for _, action := range actions {
		if action.ActionType != actionType {
			continue
		}

		value, err := strconv.ParseFloat(action.Value, 64)
		if err != nil {
			return 0, false
		}
		return value, true
	}
	return 0, false
}
