package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/atinyakov/FirmAdmin/internal/models"
)

const (
	pathLogin      = "/login"
	pathUpdatePass = "/user/updatePass"
	pathDevices    = "/devices"
	pathSoftTypes  = "/softTypes"
	pathBaseInfo   = "/baseInfo"
	pathFirms      = "/firms"
)

// Login exchanges credentials for a token and stores the access token in
// the session. The request carries no token header.
func (c *Client) Login(ctx context.Context, in models.Login) (models.Token, error) {
	req, err := c.newRequest(ctx, http.MethodPost, pathLogin, in)
	if err != nil {
		return models.Token{}, err
	}
	tok, err := send[models.Token](c, req)
	if err != nil {
		return models.Token{}, err
	}
	c.session.UpdateToken(tok.AccessToken)
	return tok, nil
}

// UpdatePass changes the password of the logged in user.
func (c *Client) UpdatePass(ctx context.Context, in models.PasswordUpdate) (models.APIResponse, error) {
	return request[models.APIResponse](ctx, c, http.MethodPost, pathUpdatePass, in)
}

// ListDeviceHard returns the hardware type catalog.
func (c *Client) ListDeviceHard(ctx context.Context) ([]models.DeviceHard, error) {
	return listOf[models.DeviceHard](request[[]models.DeviceHard](ctx, c, http.MethodGet, pathDevices, nil))
}

// AddDeviceHard registers a hardware type.
func (c *Client) AddDeviceHard(ctx context.Context, in models.DeviceHardInput) (models.APIResponse, error) {
	return request[models.APIResponse](ctx, c, http.MethodPost, pathDevices, in)
}

// UpdateDeviceHard replaces a hardware type. The server identifies the
// record by the id inside the body.
func (c *Client) UpdateDeviceHard(ctx context.Context, d models.DeviceHard) (models.APIResponse, error) {
	return request[models.APIResponse](ctx, c, http.MethodPut, pathDevices, d)
}

// ListDeviceSoft returns the software type catalog.
func (c *Client) ListDeviceSoft(ctx context.Context) ([]models.DeviceSoft, error) {
	return listOf[models.DeviceSoft](request[[]models.DeviceSoft](ctx, c, http.MethodGet, pathSoftTypes, nil))
}

// AddDeviceSoft registers a software type.
func (c *Client) AddDeviceSoft(ctx context.Context, in models.DeviceSoftInput) (models.APIResponse, error) {
	return request[models.APIResponse](ctx, c, http.MethodPost, pathSoftTypes, in)
}

// UpdateDeviceSoft replaces a software type, identified by the id inside
// the body.
func (c *Client) UpdateDeviceSoft(ctx context.Context, d models.DeviceSoft) (models.APIResponse, error) {
	return request[models.APIResponse](ctx, c, http.MethodPut, pathSoftTypes, d)
}

// FetchBaseInfo returns the full catalog snapshot and stores it in the
// session.
func (c *Client) FetchBaseInfo(ctx context.Context) (models.BaseInfo, error) {
	info, err := request[models.BaseInfo](ctx, c, http.MethodGet, pathBaseInfo, nil)
	if err != nil {
		return models.BaseInfo{}, err
	}
	info.Hard = nonNil(info.Hard)
	info.Soft = nonNil(info.Soft)
	c.session.SetBaseInfo(info)
	return info, nil
}

// ListFirms returns every firmware release, newest first.
func (c *Client) ListFirms(ctx context.Context) ([]models.Firm, error) {
	return listOf[models.Firm](request[[]models.Firm](ctx, c, http.MethodGet, pathFirms, nil))
}

// AddFirm publishes a firmware release.
func (c *Client) AddFirm(ctx context.Context, in models.FirmInput) (models.APIResponse, error) {
	return request[models.APIResponse](ctx, c, http.MethodPost, pathFirms, in)
}

// UpdateFirm replaces a firmware release.
func (c *Client) UpdateFirm(ctx context.Context, f models.Firm) (models.APIResponse, error) {
	return request[models.APIResponse](ctx, c, http.MethodPut, pathFirms, f)
}

// DeleteFirm removes the release with f.ID. Only the id is sent.
func (c *Client) DeleteFirm(ctx context.Context, f models.Firm) (models.APIResponse, error) {
	return request[models.APIResponse](ctx, c, http.MethodDelete, fmt.Sprintf("%s/%d", pathFirms, f.ID), nil)
}

// ListFirmsForDevice returns the releases of one hardware type.
func (c *Client) ListFirmsForDevice(ctx context.Context, deviceID int) ([]models.Firm, error) {
	return listOf[models.Firm](request[[]models.Firm](ctx, c, http.MethodGet, fmt.Sprintf("%s/%d", pathFirms, deviceID), nil))
}
