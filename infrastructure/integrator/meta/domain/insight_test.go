package metadomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDailyInsight_Purchases(t *testing.T) {
	tests := []struct {
		name      string
		insight   DailyInsight
		wantCount float64
		wantValue float64
	}{
		{
			name: "prefere omni_purchase e não soma os demais",
			insight: DailyInsight{
				Actions: []Action{
					{ActionType: "purchase", Value: "3"},
					{ActionType: "omni_purchase", Value: "4"},
					{ActionType: "offsite_conversion.fb_pixel_purchase", Value: "3"},
				},
				ActionValues: []Action{
					{ActionType: "purchase", Value: "300"},
					{ActionType: "omni_purchase", Value: "410.5"},
				},
			},
			wantCount: 4,
			wantValue: 410.5,
		},
		{
			name: "usa purchase sem omni_purchase",
			insight: DailyInsight{
				Actions:      []Action{{ActionType: "link_click", Value: "80"}, {ActionType: "purchase", Value: "2"}},
				ActionValues: []Action{{ActionType: "purchase", Value: "99.9"}},
			},
			wantCount: 2,
			wantValue: 99.9,
		},
		{
			name: "cai no pixel",
			insight: DailyInsight{
				Actions: []Action{{ActionType: "offsite_conversion.fb_pixel_purchase", Value: "1"}},
			},
			wantCount: 1,
		},
		{
			name:    "sem compras",
			insight: DailyInsight{Actions: []Action{{ActionType: "link_click", Value: "10"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, value := tt.insight.Purchases()

			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestAPIError_Classification(t *testing.T) {
	expired := &APIError{StatusCode: 400, Details: ErrorDetails{Code: 190, Type: "OAuthException"}}
	session := &APIError{StatusCode: 400, Details: ErrorDetails{Code: 102, Type: "OAuthException", ErrorSubcode: 463}}
	throttled := &APIError{StatusCode: 400, Details: ErrorDetails{Code: 17}}

	assert.True(t, expired.IsTokenExpired())
	assert.True(t, session.IsTokenExpired())
	assert.False(t, throttled.IsTokenExpired())
	assert.True(t, throttled.IsRateLimited())
}
