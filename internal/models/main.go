// Package models defines the request and response shapes shared by the
// console client and the firmware API server.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// HardCategory is the kind of hardware a device type describes.
type HardCategory string

const (
	// CategoryLock is a lock device.
	CategoryLock HardCategory = "Lock"
	// CategoryBox is a box device.
	CategoryBox HardCategory = "Box"
)

// CategoryFromCode maps the stored integer code to a category.
// Unknown codes read back as CategoryLock.
func CategoryFromCode(code int) HardCategory {
	if code == 2 {
		return CategoryBox
	}
	return CategoryLock
}

// Code returns the integer code a category is stored as.
func (c HardCategory) Code() int {
	if c == CategoryBox {
		return 2
	}
	return 1
}

// UnmarshalJSON accepts only "Lock" and "Box".
func (c *HardCategory) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("hardware category: %w", err)
	}
	switch v := HardCategory(s); v {
	case CategoryLock, CategoryBox:
		*c = v
		return nil
	}
	return fmt.Errorf("unknown hardware category %q", s)
}

// DeviceHardInput is the payload for registering a hardware type.
type DeviceHardInput struct {
	HardVersion string       `json:"hard_version"`
	Name        string       `json:"name"`
	Category    HardCategory `json:"category"`
	HasBLE      bool         `json:"has_ble"`
	HasFinger   bool         `json:"has_finger"`
	HasSTM32    bool         `json:"has_stm32"`
	Desc        string       `json:"desc"`
}

// DeviceHard is a hardware type catalog entry.
type DeviceHard struct {
	ID int `json:"id"`
	DeviceHardInput
}

// DeviceSoftInput is the payload for registering a software type.
type DeviceSoftInput struct {
	Name string `json:"name"`
}

// DeviceSoft is a software type catalog entry.
type DeviceSoft struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// BaseInfo is a snapshot of the whole hardware and software catalog.
type BaseInfo struct {
	Hard []DeviceHard `json:"hard"`
	Soft []DeviceSoft `json:"soft"`
}

// FirmInput is the payload for publishing a firmware release.
type FirmInput struct {
	// HardVersion is the id of the hardware type the release targets.
	HardVersion   int    `json:"hard_version"`
	VersionName   string `json:"version_name"`
	VersionFormat string `json:"version_format"`
	VersionType   int    `json:"version_type"`
	FingerLevel   int    `json:"finger_level"`
	URL           string `json:"url"`
	Desc          string `json:"desc"`
	// UpdateTime is a unix timestamp in seconds.
	UpdateTime      int64   `json:"update_time"`
	RelyVersionType *int    `json:"rely_version_type,omitempty"`
	Min             *string `json:"min,omitempty"`
	Max             *string `json:"max,omitempty"`
	DesEn           string  `json:"des_en"`
	DesKo           string  `json:"des_ko"`
	DesSp           string  `json:"des_sp"`
}

// Normalized drops a dangling Max bound: bounds only apply when
// RelyVersionType or Min is set.
func (f FirmInput) Normalized() FirmInput {
	if f.RelyVersionType != nil || f.Min != nil {
		return f
	}
	f.Max = nil
	return f
}

// Firm is a firmware release record.
type Firm struct {
	ID int `json:"id"`
	FirmInput
}

// Normalized returns f with its dependency bounds normalized.
func (f Firm) Normalized() Firm {
	f.FirmInput = f.FirmInput.Normalized()
	return f
}

// Login holds console credentials.
type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordUpdate is the payload for changing the current user's password.
type PasswordUpdate struct {
	OldPass string `json:"old_pass"`
	NewPass string `json:"new_pass"`
}

// User is the public profile of a console user.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Mail string `json:"mail"`
	// Ticker is the unix time of the last credential change. Tokens carrying
	// an older ticker are rejected.
	Ticker int64 `json:"ticker"`
}

// Token is returned by a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// Account is a stored console user.
type Account struct {
	ID           int
	Name         string
	Mail         string
	PasswordHash string
	UpdateTime   time.Time
}

// Profile returns the public view of the account.
func (a Account) Profile() User {
	return User{ID: a.ID, Name: a.Name, Mail: a.Mail, Ticker: a.UpdateTime.Unix()}
}

// APIResponse acknowledges a mutation.
type APIResponse struct {
	Message string `json:"message"`
}

// Upload is the result of a media upload.
type Upload struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
}
