package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// UserRole decides which routes a user may call
type UserRole int

const (
	UserRoleUser  UserRole = 0
	UserRoleAdmin UserRole = 1
)

func (r UserRole) String() string {
	names := [...]string{"user", "admin"}
	if int(r) < 0 || int(r) >= len(names) {
		return "user"
	}
	return names[r]
}

// IsValid reports whether r is a known role
func (r UserRole) IsValid() bool {
	return r == UserRoleUser || r == UserRoleAdmin
}

// ParseUserRole maps a role name to its value
func ParseUserRole(s string) (UserRole, error) {
	switch s {
	case "user":
		return UserRoleUser, nil
	case "admin":
		return UserRoleAdmin, nil
	}
	return UserRoleUser, fmt.Errorf("unknown role %q", s)
}

func (r UserRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *UserRole) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*r = UserRole(i)
		return nil
	}
	role, err := ParseUserRole(str)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

func (r UserRole) Value() (driver.Value, error) {
	return int64(r), nil
}

func (r *UserRole) Scan(value interface{}) error {
	if value == nil {
		*r = UserRoleUser
		return nil
	}
	switch v := value.(type) {
	case int64:
		*r = UserRole(v)
	case int:
		*r = UserRole(v)
	}
	return nil
}
