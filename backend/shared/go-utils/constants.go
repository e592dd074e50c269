package utils

const (
	OrganizationName                      = "Hijibiji Society"
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	// JWT role claims issued by the auth collaborator.
	RoleAdmin = "admin"
	RoleStaff = "staff"
)
