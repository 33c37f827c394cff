package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load(".env")
	if root != nil {
		bindFlag(root, KeyLoginURL, "login-url")
		bindFlag(root, KeyLogLevel, "log-level")
		bindFlag(root, KeyPostgresURL, "postgres-url")
		bindFlag(root, KeyTransport, "transport")
		bindFlag(root, KeyHost, "host")
		bindFlag(root, KeyPort, "port")
		bindFlag(root, KeyEndpointPath, "endpoint-path")
		bindFlag(root, KeyConnectOnStart, "connect-on-start")
	}
	setDefaults()
}

// bindFlag binds a persistent flag to key when the command defines it.
func bindFlag(root *cobra.Command, key, flag string) {
	if f := root.PersistentFlags().Lookup(flag); f != nil {
		_ = viper.BindPFlag(key, f)
	}
}

func setDefaults() {
	viper.SetDefault(KeyLoginURL, DefaultLoginURL)
	viper.SetDefault(KeyAPIVersion, DefaultAPIVersion)
	viper.SetDefault(KeyRequestTimeout, "30s")
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyTransport, "stdio")
	viper.SetDefault(KeyHost, "0.0.0.0")
	viper.SetDefault(KeyPort, 8000)
	viper.SetDefault(KeyEndpointPath, DefaultEndpointURL)
	viper.SetDefault(KeyConnectOnStart, true)
	viper.SetDefault(KeyAllowedOrigins, "*")
	viper.SetDefault(KeyAuditRetain, 10000)
}

func LoginURL() string      { return viper.GetString(KeyLoginURL) }
func Username() string      { return viper.GetString(KeyUsername) }
func Password() string      { return viper.GetString(KeyPassword) }
func SecurityToken() string { return viper.GetString(KeySecurityToken) }
func ClientID() string      { return viper.GetString(KeyClientID) }
func ClientSecret() string  { return viper.GetString(KeyClientSecret) }
func APIVersion() string    { return viper.GetString(KeyAPIVersion) }
func LogLevel() string      { return viper.GetString(KeyLogLevel) }
func PostgresURL() string   { return viper.GetString(KeyPostgresURL) }
func DBDebug() bool         { return viper.GetBool(KeyDBDebug) }
func AuditRetain() int      { return viper.GetInt(KeyAuditRetain) }
func Transport() string     { return strings.ToLower(viper.GetString(KeyTransport)) }
func Host() string          { return viper.GetString(KeyHost) }
func Port() int             { return viper.GetInt(KeyPort) }
func EndpointPath() string  { return viper.GetString(KeyEndpointPath) }
func ConnectOnStart() bool  { return viper.GetBool(KeyConnectOnStart) }

// RequestTimeout falls back to 30s when the configured value does not parse.
func RequestTimeout() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(viper.GetString(KeyRequestTimeout)))
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

func AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(viper.GetString(KeyAllowedOrigins), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
