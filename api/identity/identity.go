// Package identity carries who is calling through the request context.
// A caller is either a guest bound to a device key or a signed in account.
package identity

import "context"

type Kind string

const (
	KindGuest   Kind = "guest"
	KindAccount Kind = "account"
)

type Identity struct {
	Kind      Kind   `json:"kind"`
	UserID    string `json:"user_id"`
	DeviceKey string `json:"device_key,omitempty"`
	Email     string `json:"email,omitempty"`
}

func Guest(userID, deviceKey string) Identity {
	return Identity{Kind: KindGuest, UserID: userID, DeviceKey: deviceKey}
}

func Account(userID, email string) Identity {
	return Identity{Kind: KindAccount, UserID: userID, Email: email}
}

func (i Identity) IsAccount() bool { return i.Kind == KindAccount && i.UserID != "" }

func (i Identity) IsGuest() bool { return i.Kind == KindGuest && i.UserID != "" }

// Owns reports whether ownerID belongs to this identity.
func (i Identity) Owns(ownerID string) bool {
	return i.UserID != "" && ownerID == i.UserID
}

type contextKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	if !ok || id.UserID == "" {
		return Identity{}, false
	}
	return id, true
}
