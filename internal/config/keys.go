package config

const (
	KeyLoginURL        = "salesforce_login_url"
	KeyUsername        = "salesforce_username"
	KeyPassword        = "salesforce_password"
	KeySecurityToken   = "salesforce_security_token"
	KeyClientID        = "salesforce_client_id"
	KeyClientSecret    = "salesforce_client_secret"
	KeyAPIVersion      = "salesforce_api_version"
	KeyRequestTimeout  = "salesforce_timeout"
	KeyLogLevel        = "log_level"
	KeyPostgresURL     = "postgres_url"
	KeyDBDebug         = "db_debug"
	KeyAuditRetain     = "audit_retain"
	KeyTransport       = "transport"
	KeyHost            = "host"
	KeyPort            = "port"
	KeyEndpointPath    = "endpoint_path"
	KeyConnectOnStart  = "connect_on_start"
	KeyAllowedOrigins  = "cors_allowed_origins"
	DefaultLoginURL    = "https://login.salesforce.com"
	DefaultAPIVersion  = "59.0"
	DefaultEndpointURL = "/mcp"
)
