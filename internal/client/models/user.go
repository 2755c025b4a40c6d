// Package models defines the user record exchanged with the remote user
// service and the draft shape edited by the form controllers.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Address is the part of a user's postal address the front end manages.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
}

// Company is the optional employer of a user.
type Company struct {
	Name string `json:"name"`
}

// UnmarshalJSON accepts both the object form {"name": "..."} and a bare
// string, which some services echo back when a flat company name was posted.
func (c *Company) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		c.Name = name
		return nil
	}

	type plain Company
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("company: %w", err)
	}
	*c = Company(p)
	return nil
}

// User is one record of the remote collection. ID is assigned by the remote
// service and never changes; Username is derived once at creation time.
type User struct {
	ID       int64    `json:"id,omitempty"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Address  Address  `json:"address"`
	Company  *Company `json:"company,omitempty"`
	Website  string   `json:"website,omitempty"`
}

// CompanyName returns the company display name or "" when absent.
func (u User) CompanyName() string {
	if u.Company == nil {
		return ""
	}
	return u.Company.Name
}

// Clone returns a deep copy, so callers never share the Company pointer.
func (u User) Clone() User {
	if u.Company != nil {
		c := *u.Company
		u.Company = &c
	}
	return u
}

// FormatID renders an identifier the way routes and prompts show it.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ParseID parses an identifier typed by the operator or taken from a route.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}

// Draft is a candidate user not yet confirmed by the remote service.
// Company is flattened to its display name.
type Draft struct {
	Name     string
	Email    string
	Phone    string
	Username string
	Address  Address
	Company  string
	Website  string
}

// DraftFromUser seeds a draft from an existing record.
func DraftFromUser(u User) Draft {
	return Draft{
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		Username: u.Username,
		Address:  u.Address,
		Company:  u.CompanyName(),
		Website:  u.Website,
	}
}

// ToUser builds the wire payload for the draft. An id of 0 is left out of
// the JSON body, which is what a create call sends.
func (d Draft) ToUser(id int64) User {
	u := User{
		ID:       id,
		Name:     d.Name,
		Username: d.Username,
		Email:    d.Email,
		Phone:    d.Phone,
		Address:  d.Address,
		Website:  d.Website,
	}
	if d.Company != "" {
		u.Company = &Company{Name: d.Company}
	}
	return u
}
