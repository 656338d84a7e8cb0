package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/meta/domain"
)

const (
	insightsPageLimit = 500
	maxInsightsPages  = 100
)

// ErrMalformedResponse indica um corpo de resposta que não pôde ser decodificado
var ErrMalformedResponse = errors.New("metaclient: malformed response")

// GetDailyInsights busca os insights diários da conta seguindo paging.next até o fim
func (c *MetaClient) GetDailyInsights(ctx context.Context, accountID, accessToken string, since, until time.Time) ([]metadomain.DailyInsight, error) {
	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", since.Format(time.DateOnly), until.Format(time.DateOnly))

	params := url.Values{}
	params.Add("level", "account")
	params.Add("time_increment", "1")
	params.Add("time_range", timeRange)
	params.Add("fields", "account_id,date_start,date_stop,spend,impressions,clicks,actions,action_values")
	params.Add("limit", fmt.Sprintf("%d", insightsPageLimit))
	params.Add("access_token", accessToken)

	next := fmt.Sprintf("%s/act_%s/insights?%s", c.baseURL, NormalizeAccountID(accountID), params.Encode())

	insights := make([]metadomain.DailyInsight, 0)
	for page := 0; next != ""; page++ {
		if page >= maxInsightsPages {
			return nil, errors.Errorf("metaclient: mais de %d páginas de insights para a conta %s", maxInsightsPages, accountID)
		}

		body, err := c.get(ctx, next)
		if err != nil {
			return nil, err
		}

		var response metadomain.InsightsPage
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, errors.Wrap(ErrMalformedResponse, err.Error())
		}

		insights = append(insights, response.Data...)
		next = response.Paging.Next
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"rows":       len(insights),
	}).Debug("insights: daily insights retrieved")

	return insights, nil
}
