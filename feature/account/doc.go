// Package account handles users and their API tokens.
//
// POST /auth/login exchanges a username and password for the user's token. Users
// are created and deleted from the CLI; deletion removes everything they own.
package account
