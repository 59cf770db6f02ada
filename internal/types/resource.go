package types

import (
	"encoding/json"
	"strings"
)

// Method is the HTTP method an API resource is exposed under
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodPatch  Method = "PATCH"
)

// Methods lists the selectable methods in display order
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch}

// Valid reports whether m is one of the enumerated methods
func (m Method) Valid() bool {
	for _, known := range Methods {
		if m == known {
			return true
		}
	}
	return false
}

// ParseMethod normalizes user input to a Method. Unknown input is returned
// upper-cased with ok=false.
func ParseMethod(s string) (Method, bool) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	return m, m.Valid()
}

// Status is the lifecycle state of an API resource
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Statuses lists the selectable statuses in display order
var Statuses = []Status{StatusActive, StatusInactive}

// Valid reports whether s is one of the enumerated statuses
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// ParseStatus normalizes user input to a Status
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	return st, st.Valid()
}

// ApiResource is one API record managed by the console
type ApiResource struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Endpoint    string    `json:"endpoint" yaml:"endpoint"`
	Method      Method    `json:"method" yaml:"method"`
	Status      Status    `json:"status" yaml:"status"`
	CreatedAt   Timestamp `json:"created_at" yaml:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at" yaml:"updated_at"`
}

// UnmarshalJSON accepts both "_id" and "id" keys
func (r *ApiResource) UnmarshalJSON(data []byte) error {
	type plain ApiResource
	var aux struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = ApiResource(aux.plain)
	if r.ID == "" {
		r.ID = aux.MongoID
	}
	return nil
}

// Input returns the writable fields of r as they would be submitted on update
func (r ApiResource) Input() ResourceInput {
	return ResourceInput{
		Name:        r.Name,
		Description: r.Description,
		Endpoint:    r.Endpoint,
		Method:      r.Method,
		Status:      r.Status,
	}
}

// ResourceInput is the payload for create and update requests.
// Status is omitted on create so the server applies its default.
type ResourceInput struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Endpoint    string `json:"endpoint" yaml:"endpoint"`
	Method      Method `json:"method" yaml:"method"`
	Status      Status `json:"status,omitempty" yaml:"status,omitempty"`
}

// Page is one page of a paginated listing. It is replaced wholesale on
// every fetch.
type Page[T any] struct {
	Items      []T `json:"items" yaml:"items"`
	Page       int `json:"page" yaml:"page"`
	TotalPages int `json:"total_pages" yaml:"total_pages"`
}

// Empty reports whether the page holds no items
func (p Page[T]) Empty() bool {
	return len(p.Items) == 0
}

// Clone returns a copy whose Items slice does not alias p's
func (p Page[T]) Clone() Page[T] {
	items := make([]T, len(p.Items))
	copy(items, p.Items)
	return Page[T]{Items: items, Page: p.Page, TotalPages: p.TotalPages}
}
