package model

// TenantCredential is the per-workspace install record, one per team id.
// A reinstall by any member of the same team overwrites the record; last
// write wins, there is no support for multiple concurrent installs.
type TenantCredential struct {
	TeamID          string `json:"team_id"`
	UserAccessToken string `json:"user_access_token"`
	BotUserID       string `json:"bot_user_id"`
	BotAccessToken  string `json:"bot_access_token"`
}
