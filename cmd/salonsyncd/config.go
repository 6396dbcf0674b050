package main

type OwnerConfig struct {
	// "hair" or "relax"; selects the portal skin
	SalonType string `json:"salon_type"`
}

type Config struct {
	Port        int    `json:"port"`
	AccessToken string `json:"access_token"`

	PortalBaseUrl string `json:"portal_base_url"`
	// base64-encoded 32-byte key sealing credentials and sessions at rest
	CredentialKey string `json:"credential_key"`

	KeychainDatabase string `json:"keychain_database"`
	SyncDatabase     string `json:"sync_database"`

	Owners map[string]OwnerConfig `json:"owners"`

	BackfillDays  int `json:"backfill_days"`
	LookaheadDays int `json:"lookahead_days"`
}
