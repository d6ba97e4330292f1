package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Cognito Auth
	CognitoUserPoolID string `envconfig:"COGNITO_USER_POOL_ID"`
	CognitoClientID   string `envconfig:"COGNITO_CLIENT_ID"`
	CognitoIssuerURL  string `envconfig:"COGNITO_ISSUER_URL"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	// Donations. The org-controlled wallet donors are instructed to pay,
	// and the fallback contribution limits used until campaign_settings
	// rows exist.
	WalletAddress      string  `envconfig:"WALLET_ADDRESS" default:"3DCpcAACrKMQr2uXc2T5q4KATKzaCp3TGWUrcRgQwTpY"`
	DefaultMinDonation float64 `envconfig:"DEFAULT_MIN_DONATION" default:"25"`
	DefaultMaxDonation float64 `envconfig:"DEFAULT_MAX_DONATION" default:"500"`
}
