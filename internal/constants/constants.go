package constants

const (
	EnvDevelopment      = "development"
	EnvProduction       = "production"
	EnvTest             = "test"
	CsrfInputName       = "_csrf"
	CsrfTokenContextKey = "csrf.token"
	SessionRecordKey    = "auth.record"
	FormIDInputName     = "form_id"
	SessionCookieName   = "skillbridge_session_id"
	CsrfCookieName      = "skillbridge_csrf"
)
