// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// TokenTypeBearer is the only token type issued by the server.
const TokenTypeBearer = "bearer"

// TokenPair is the response body of a successful login or refresh.
//
// RefreshToken is omitted from JSON when empty so that deployments issuing
// only access tokens produce the short form of the response.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
