package models

import "encoding/json"

// ColumnRole is the semantic purpose assigned to a column.
type ColumnRole int

const (
	RoleUnknown ColumnRole = iota
	RoleName
	RolePhone
	RoleDate
	RoleProcedure
)

// Roles lists the assignable roles in classification order.
var Roles = []ColumnRole{RoleName, RolePhone, RoleDate, RoleProcedure}

func (r ColumnRole) String() string {
	switch r {
	case RoleName:
		return "name"
	case RolePhone:
		return "phone"
	case RoleDate:
		return "date"
	case RoleProcedure:
		return "procedure"
	}
	return "unknown"
}

// ColumnMapping binds roles to column keys. Roles without a confident
// match are absent. The zero value is an empty mapping.
type ColumnMapping struct {
	keys map[ColumnRole]ColumnKey
}

// NewColumnMapping builds a mapping from the given bindings.
func NewColumnMapping(bindings map[ColumnRole]ColumnKey) ColumnMapping {
	keys := make(map[ColumnRole]ColumnKey, len(bindings))
	for role, key := range bindings {
		if role == RoleUnknown || key == "" {
			continue
		}
		keys[role] = key
	}
	return ColumnMapping{keys: keys}
}

// Get returns the column bound to role.
func (m ColumnMapping) Get(role ColumnRole) (ColumnKey, bool) {
	k, ok := m.keys[role]
	return k, ok
}

// Len returns the number of bound roles.
func (m ColumnMapping) Len() int {
	return len(m.keys)
}

// MarshalJSON renders the mapping as {"name": "E", ...}.
func (m ColumnMapping) MarshalJSON() ([]byte, error) {
	out := make(map[string]ColumnKey, len(m.keys))
	for role, key := range m.keys {
		out[role.String()] = key
	}
	return json.Marshal(out)
}
