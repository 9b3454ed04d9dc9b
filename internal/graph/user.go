package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// UserInfo contains the user's basic profile information from Microsoft Graph.
type UserInfo struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
}

// GetUserInfo fetches the signed-in user's profile.
func (c *Client) GetUserInfo(ctx context.Context, token string) (*UserInfo, error) {
	body, err := c.do(ctx, http.MethodGet,
		"/me?$select=id,displayName,mail,userPrincipalName", token, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}

	var userInfo UserInfo
	if err := json.Unmarshal(body, &userInfo); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}

	return &userInfo, nil
}

// Email returns the user's email address.
// Falls back to userPrincipalName if mail is not set.
func (u *UserInfo) Email() string {
	if u.Mail != "" {
		return u.Mail
	}
	return u.UserPrincipalName
}
