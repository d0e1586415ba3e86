package config

const (
	PayPalEnvSandbox    = "sandbox"
	PayPalEnvLive       = "live"
	PayPalEnvProduction = "production"
)

const (
	payPalSandboxBaseURL = "https://api-m.sandbox.paypal.com"
	payPalLiveBaseURL    = "https://api-m.paypal.com"
)

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type PayPalConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	Environment  string `yaml:"environment"`
}

// BaseURL resolves the environment selector to the PayPal REST host. The
// selection happens once at process start; request handling never re-reads it.
func (p PayPalConfig) BaseURL() string {
	switch p.Environment {
	case PayPalEnvLive, PayPalEnvProduction:
		return payPalLiveBaseURL
	default:
		return payPalSandboxBaseURL
	}
}

// PolicyConfig selects the strict validation variant. When RequireVIN is set,
// create requires a 17-character VIN plus a plan label; when
// RequireCustomerDetails is set, capture requires the full customer record.
type PolicyConfig struct {
	RequireVIN             bool `yaml:"require_vin"`
	RequireCustomerDetails bool `yaml:"require_customer_details"`
}

type SheetsConfig struct {
	WebhookURL string `yaml:"webhook_url"`
}
