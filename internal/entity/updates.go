package entity

import "time"

// UserUpdates are the account fields the repository may mutate. Pointer
// fields distinguish "leave alone" from "set". TokenSet forces Token to be
// written even when nil, which is how a confirmation clears it.
type UserUpdates struct {
	Password        *string
	Salt            *string
	Token           *string
	TokenSet        bool
	ScreenID        *string
	Nickname        *string
	Intro           *string
	ProfileImage    *string
	BannerImage     *string
	DisplayLanguage *int
	Country         *int
	IsConfirmed     *bool
	DeactivatedAt   **time.Time
}

// ToMap converts to a gorm updates map.
func (u UserUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Password != nil {
		updates["password"] = *u.Password
	}
	if u.Salt != nil {
		updates["salt"] = *u.Salt
	}
	if u.Token != nil || u.TokenSet {
		if u.Token == nil {
			updates["token"] = nil
		} else {
			updates["token"] = *u.Token
		}
	}
	if u.ScreenID != nil {
		updates["screen_id"] = *u.ScreenID
	}
	if u.Nickname != nil {
		updates["nickname"] = *u.Nickname
	}
	if u.Intro != nil {
		updates["intro"] = *u.Intro
	}
	if u.ProfileImage != nil {
		updates["profile_image"] = *u.ProfileImage
	}
	if u.BannerImage != nil {
		updates["banner_image"] = *u.BannerImage
	}
	if u.DisplayLanguage != nil {
		updates["display_language"] = *u.DisplayLanguage
	}
	if u.Country != nil {
		updates["country"] = *u.Country
	}
	if u.IsConfirmed != nil {
		updates["is_confirmed"] = *u.IsConfirmed
	}
	if u.DeactivatedAt != nil {
		updates["deactivated_at"] = *u.DeactivatedAt
	}
	return updates
}

// IsEmpty reports whether no field would be written.
func (u UserUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// BoardUpdates are the mutable board fields. A successful edit always sets
// Edited.
type BoardUpdates struct {
	Title    *string
	Body     *string
	Images   *StringArray
	Category *string
	Pub      *string
	Language *string
	Edited   *bool
}

// ToMap converts to a gorm updates map.
func (u BoardUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Title != nil {
		updates["title"] = *u.Title
	}
	if u.Body != nil {
		updates["body"] = *u.Body
	}
	if u.Images != nil {
		updates["images"] = *u.Images
	}
	if u.Category != nil {
		updates["category"] = *u.Category
	}
	if u.Pub != nil {
		updates["pub"] = *u.Pub
	}
	if u.Language != nil {
		updates["language"] = *u.Language
	}
	if u.Edited != nil {
		updates["edited"] = *u.Edited
	}
	return updates
}

// IsEmpty reports whether no field would be written.
func (u BoardUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// FeedbackUpdates edits a feedback or reply body.
type FeedbackUpdates struct {
	Body   *string
	Edited *bool
}

// ToMap converts to a gorm updates map.
func (u FeedbackUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Body != nil {
		updates["body"] = *u.Body
	}
	if u.Edited != nil {
		updates["edited"] = *u.Edited
	}
	return updates
}

// IsEmpty reports whether no field would be written.
func (u FeedbackUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
