package api

import "encoding/json"

type RegisterRequest struct {
	Email    string `json:"email"`
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

type GetSaltRequest struct {
	Email string `json:"email"`
}

type GetSaltResponse struct {
	Salt []byte `json:"salt"`
}

type LoginRequest struct {
	Email             string `json:"email"`
	VerifierCandidate []byte `json:"verifier_candidate"`
}

type LoginResponse struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Rows travel as raw JSON objects; the collection decides their shape.

type ListRequest struct {
	Collection string `json:"collection"`
}

type ListResponse struct {
	Rows []json.RawMessage `json:"rows"`
}

type InsertRequest struct {
	Collection string          `json:"collection"`
	Row        json.RawMessage `json:"row"`
}

type InsertResponse struct {
	Row json.RawMessage `json:"row"`
}

type UpdateRequest struct {
	Collection string          `json:"collection"`
	ID         string          `json:"id"`
	Patch      json.RawMessage `json:"patch"`
}

type UpdateResponse struct {
	Row json.RawMessage `json:"row"`
}

type DeleteRequest struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}
