package metaclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pkg/errors"
	metadomain "github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/meta/domain"
)

func (c *MetaClient) GetAdAccount(ctx context.Context, accountID, accessToken string) (*metadomain.AdAccount, error) {
	params := url.Values{}
	params.Add("fields", "id,account_id,name,currency,timezone_name")
	params.Add("access_token", accessToken)

	rawURL := fmt.Sprintf("%s/act_%s?%s", c.baseURL, NormalizeAccountID(accountID), params.Encode())

	body, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	var account metadomain.AdAccount
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, errors.Wrap(ErrMalformedResponse, err.Error())
	}

	return &account, nil
}
