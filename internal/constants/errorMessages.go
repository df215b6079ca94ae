package constants

const (
	MsgMissingClaims       = "Unauthorized: missing credentials"
	MsgInvalidJSON         = "Invalid JSON body"
	MsgMissingUserID       = "user_id is required"
	MsgMissingProjectID    = "project_id is required"
	MsgUnknownRole         = "Unknown role"
	MsgNotScopedRole       = "Role is not granted per project"
	MsgInternal            = "Internal server error"
	MsgRateLimited         = "Too many requests"
	MsgInvalidAPIKey       = "Unauthorized. Invalid API Key"
	MsgInactiveAPIKey      = "Unauthorized. Inactive API Key"
	MsgInvalidBearerToken  = "Unauthorized. Invalid bearer token"
	MsgMissingCredentials  = "Unauthorized. Missing API Key or bearer token"
	MsgMissingActingUserID = "Unauthorized. Missing X-User-Id header"
)

const (
	MsgMembershipGranted  = "Membership granted"
	MsgMembershipUpdated  = "Membership updated"
	MsgMembershipRevoked  = "Membership revoked"
	MsgMembershipsFetched = "Memberships fetched"
	MsgMembershipFetched  = "Membership fetched"
	MsgAdotanteGranted    = "Adotante role granted"
	MsgAdotanteRevoked    = "Adotante role revoked"
	MsgUserPromoted       = "User promoted to SuperAdmin"
	MsgRolesReconciled    = "Role list reconciled"
	MsgUserRegistered     = "User registered"
	MsgUserFetched        = "User fetched"
	MsgProjectCreated     = "Project created"
	MsgProjectUpdated     = "Project updated"
	MsgProjectDeactivated = "Project deactivated"
	MsgProjectFetched     = "Project fetched"
	MsgProjectsFetched    = "Projects fetched"
)
