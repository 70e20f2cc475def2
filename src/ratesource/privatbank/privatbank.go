package privatbank

import (
	"context"
	"encoding/json"

	"rate-relay/src/helpers"
	"rate-relay/src/interfaces"
	"rate-relay/src/logger"
	"rate-relay/src/models"

	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------

type PrivatBankSource struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

// exchangeRatesResponse mirrors the provider payload:
// {date, exchangeRate: [{currency, saleRateNB, purchaseRateNB, ...}, ...]}
type exchangeRatesResponse struct {
	Date         string         `json:"date"`
	ExchangeRate []exchangeRate `json:"exchangeRate"`
}

type exchangeRate struct {
	Currency       string          `json:"currency"`
	SaleRateNB     decimal.Decimal `json:"saleRateNB"`
	PurchaseRateNB decimal.Decimal `json:"purchaseRateNB"`
}

// -----------------------------------------------------------------------------

func NewPrivatBankSource(cfg *models.MConfig, netMgr interfaces.INetworkManager) *PrivatBankSource {
	return &PrivatBankSource{
		Config:  cfg,
		Network: netMgr,
		Logger:  logger.NewLogger("PrivatBankSource"),
	}
}

// -----------------------------------------------------------------------------

func (s *PrivatBankSource) Name() string {
	return "privatbank"
}

// -----------------------------------------------------------------------------

// Fetch performs one GET against the archive endpoint and reshapes the entry
// list into a date-keyed record holding only the requested currencies.
func (s *PrivatBankSource) Fetch(ctx context.Context, dateKey string, currencies []string) (*models.MRateRecord, error) {
	body, err := s.Network.Get(ctx, s.Config.Exchange.APIURL, map[string]string{
		"json": "",
		"date": dateKey,
	})
	if err != nil {
		return nil, helpers.NewFetchError("exchange rates request failed", err)
	}

	var resp exchangeRatesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, helpers.NewFetchError("exchange rates response is not valid JSON", err)
	}

	date := resp.Date
	if date == "" {
		date = dateKey
	}

	record := &models.MRateRecord{
		Date:  date,
		Rates: make(map[string]models.MCurrencyRate),
	}

	for _, code := range currencies {
		for _, el := range resp.ExchangeRate {
			if el.Currency == code {
				record.Rates[code] = models.MCurrencyRate{
					Sale:     el.SaleRateNB,
					Purchase: el.PurchaseRateNB,
				}
				break
			}
		}
		// A requested currency absent from the response is simply omitted.
	}

	return record, nil
}
