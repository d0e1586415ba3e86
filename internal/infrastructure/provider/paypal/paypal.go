package paypal

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/VINCLARIFY/payment-service/internal/domain/provider"
	"go.uber.org/zap"
)

const oauthTokenPath = "/v1/oauth2/token"

// PayPalProvider implements the PaymentProvider interface against the PayPal
// REST Orders v2 API. Every operation performs its own client-credentials
// exchange; tokens are not cached across requests.
type PayPalProvider struct {
	clientID     string
	clientSecret string
	baseURL      string
	client       *http.Client
	logger       *zap.Logger
}

// NewPayPalProvider creates a new PayPal provider. baseURL selects the
// sandbox or live host and is fixed for the life of the process.
func NewPayPalProvider(clientID, clientSecret, baseURL string, logger *zap.Logger) *PayPalProvider {
	return &PayPalProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       &http.Client{Timeout: 25 * time.Second},
		logger:       logger,
	}
}

// GetProviderName returns the provider name
func (p *PayPalProvider) GetProviderName() string {
	return string(provider.ProviderTypePayPal)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// getAccessToken performs the OAuth2 client-credentials exchange.
// POST /v1/oauth2/token
func (p *PayPalProvider) getAccessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+oauthTokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &provider.ProviderError{
			Code:    provider.CodeTransportFailed,
			Message: "Failed to create token request",
			Details: err.Error(),
		}
	}

	basic := base64.StdEncoding.EncodeToString([]byte(p.clientID + ":" + p.clientSecret))
	httpReq.Header.Set("Authorization", "Basic "+basic)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		p.logger.Error("PayPalProvider: token request failed", zap.Error(err))
		return "", &provider.ProviderError{
			Code:    provider.CodeTransportFailed,
			Message: "PayPal token request failed",
			Details: err.Error(),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &provider.ProviderError{
			Code:    provider.CodeTransportFailed,
			Message: "Failed to read token response",
			Details: err.Error(),
		}
	}

	if resp.StatusCode != http.StatusOK {
		p.logger.Error("PayPalProvider: token exchange rejected",
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(respBody)))
		return "", &provider.ProviderError{
			Code:       provider.CodeAuthFailed,
			Message:    "PayPal rejected the client credentials",
			Details:    string(respBody),
			HTTPStatus: resp.StatusCode,
		}
	}

	var token tokenResponse
	if err := json.Unmarshal(respBody, &token); err != nil {
		return "", &provider.ProviderError{
			Code:    provider.CodeAuthFailed,
			Message: "Failed to parse token response",
			Details: err.Error(),
		}
	}
	if token.AccessToken == "" {
		return "", &provider.ProviderError{
			Code:    provider.CodeAuthFailed,
			Message: "PayPal token response contained no access token",
			Details: string(respBody),
		}
	}

	return token.AccessToken, nil
}
