// Package client contains the client-side building blocks for talking to
// the HopeKeeper backend and opening the local database.
//
// # Overview
//
//  1. Client is the RPC contract: Register/GetSalt/Login, Ping and the
//     generic record calls List/Insert/Update/Delete.
//  2. GRPCClient implements it over gRPC with the JSON codec. An interceptor
//     sends the api key on every call and the access token on record calls,
//     refreshes an expired token once and retries. Status codes are mapped to
//     sentinel errors.
//  3. InitDatabase opens the SQLite file and applies the embedded schema.
//
// # Error Handling
//
// Callers match ErrUnavailable, ErrUnauthorized and ErrNotLoggedIn with
// errors.Is. NotFound and AlreadyExists map to the common sentinels.
package client
