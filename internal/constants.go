package internal

const (
	COOKIE_ACCESS_TOKEN_NAME = "pf_access_token"
	COOKIE_REDIRECT_NAME     = "pf_redirect_to"
)
