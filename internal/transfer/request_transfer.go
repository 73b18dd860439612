package transfer

type CreateFeedRequest struct {
	Platform  string `json:"platform"`
	AccountID string `json:"account_id"`
	Label     string `json:"label"`
}

// PlatformConfigInput carries a team administrator's OAuth app registration.
// A nil ClientSecret means "keep the stored secret"; empty strings on the
// URL/scope fields fall back to adapter defaults.
type PlatformConfigInput struct {
	Platform     string            `json:"platform"`
	ClientID     string            `json:"client_id"`
	ClientSecret *string           `json:"client_secret"`
	AuthURL      string            `json:"auth_url"`
	TokenURL     string            `json:"token_url"`
	Scopes       string            `json:"scopes"`
	RedirectURI  string            `json:"redirect_uri"`
	Extras       map[string]string `json:"extras"`
}
