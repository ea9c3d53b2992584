package utils

const (
	OrganizationName                      = "Poof"
	DefaultAppName                        = "phone-validator-service"
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"
)
