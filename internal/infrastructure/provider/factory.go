package provider

import (
	"fmt"

	"github.com/VINCLARIFY/payment-service/internal/config"
	"github.com/VINCLARIFY/payment-service/internal/domain/provider"
	paypalProvider "github.com/VINCLARIFY/payment-service/internal/infrastructure/provider/paypal"
	"go.uber.org/zap"
)

// Factory creates payment providers based on the provider type
type Factory struct {
	config *config.Config
	logger *zap.Logger
}

// NewFactory creates a new provider factory
func NewFactory(config *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		config: config,
		logger: logger,
	}
}

// GetProvider returns a payment provider based on the provider type
func (f *Factory) GetProvider(providerType provider.ProviderType) (provider.PaymentProvider, error) {
	switch providerType {
	case provider.ProviderTypePayPal:
		return f.createPayPalProvider()
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}

// createPayPalProvider creates a new PayPal provider instance
func (f *Factory) createPayPalProvider() (provider.PaymentProvider, error) {
	if f.config.PayPal.ClientID == "" || f.config.PayPal.ClientSecret == "" {
		return nil, fmt.Errorf("PayPal credentials not configured")
	}

	return paypalProvider.NewPayPalProvider(
		f.config.PayPal.ClientID,
		f.config.PayPal.ClientSecret,
		f.config.PayPal.BaseURL(),
		f.logger,
	), nil
}
