package types

import "time"

// Operation names a mutation recorded in the activity journal
type Operation string

const (
	OpCreateResource Operation = "create"
	OpUpdateResource Operation = "update"
	OpDeleteResource Operation = "delete"
	OpUpdateProfile  Operation = "profile"
	OpChangePassword Operation = "password"
)

// Outcome is the result of a recorded mutation
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// ActivityEntry is one row of the local activity journal
type ActivityEntry struct {
	ID         string    `json:"id" yaml:"id"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	Server     string    `json:"server" yaml:"server"`
	Username   string    `json:"username,omitempty" yaml:"username,omitempty"`
	Operation  Operation `json:"operation" yaml:"operation"`
	TargetID   string    `json:"target_id,omitempty" yaml:"target_id,omitempty"`
	TargetName string    `json:"target_name,omitempty" yaml:"target_name,omitempty"`
	Outcome    Outcome   `json:"outcome" yaml:"outcome"`
	Message    string    `json:"message,omitempty" yaml:"message,omitempty"`
}

// TLSConfig holds TLS/mTLS settings for the backend transport
type TLSConfig struct {
	CertFile           string `json:"cert_file,omitempty" yaml:"cert_file,omitempty"`
	KeyFile            string `json:"key_file,omitempty" yaml:"key_file,omitempty"`
	CAFile             string `json:"ca_file,omitempty" yaml:"ca_file,omitempty"`
	InsecureSkipVerify bool   `json:"insecure_skip_verify,omitempty" yaml:"insecure_skip_verify,omitempty"`
}
