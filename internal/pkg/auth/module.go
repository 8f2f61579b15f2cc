package auth

import "go.uber.org/fx"

// Module provides the password hashing strategy.
var Module = fx.Provide(func() PasswordHasher { return NewBcryptHasher(0) })
