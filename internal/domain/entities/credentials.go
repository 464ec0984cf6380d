package entities

import "time"

// TemporaryCredentials are short-lived keys obtained through role assumption
type TemporaryCredentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Expiration      time.Time
}

// RoleAssumption describes the role to assume for remote persistence
type RoleAssumption struct {
	RoleARN     string
	ExternalID  string // sent only when non-empty
	SessionName string
}
