package domain

import "time"

// User is a document in the users collection. Every field is optional and
// owned by other services; nil means the field is not set.
type User struct {
	ID         string     `firestore:"-" json:"id"`
	FCMToken   *string    `firestore:"fcmToken" json:"fcmToken,omitempty"`
	LastActive *time.Time `firestore:"lastActive" json:"lastActive,omitempty"`
	Nickname   *string    `firestore:"nickname" json:"nickname,omitempty"`
}

// Token returns the device registration token. An empty token counts as unset.
func (u *User) Token() (string, bool) {
	if u == nil || u.FCMToken == nil || *u.FCMToken == "" {
		return "", false
	}
	return *u.FCMToken, true
}

// DisplayName returns the nickname, or fallback when it is unset or empty.
func (u *User) DisplayName(fallback string) string {
	if u == nil || u.Nickname == nil || *u.Nickname == "" {
		return fallback
	}
	return *u.Nickname
}

// LastActiveOr returns LastActive, or def when the user never reported activity.
func (u *User) LastActiveOr(def time.Time) time.Time {
	if u == nil || u.LastActive == nil {
		return def
	}
	return *u.LastActive
}
