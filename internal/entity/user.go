package entity

import "time"

const (
	SnsTypeNormal   = "normal"
	SnsTypeGoogle   = "google"
	SnsTypeFacebook = "facebook"
)

// Display languages and countries share the same small enum.
const (
	LangKorean             = 0
	LangJapanese           = 1
	LangEnglish            = 2
	LangChineseSimplified  = 3
	LangChineseTraditional = 4
)

// DbUser represents a persisted account.
//
// Password is the base64 PBKDF2 digest derived with Salt; Token is only
// present while an email confirmation or password reset is pending. A nil
// DeactivatedAt means the account may log in.
type DbUser struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email    string  `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string  `gorm:"column:password;type:varchar(255);not null" json:"-"`
	Salt     string  `gorm:"column:salt;type:varchar(255)" json:"-"`
	Token    *string `gorm:"column:token;type:varchar(64)" json:"-"`

	ScreenID        string `gorm:"column:screen_id;type:varchar(32);index" json:"screen_id"`
	Nickname        string `gorm:"column:nickname;type:varchar(255);not null" json:"nickname"`
	Intro           string `gorm:"column:intro;type:varchar(1000)" json:"intro"`
	ProfileImage    string `gorm:"column:profile_image;type:varchar(512)" json:"profile_image"`
	BannerImage     string `gorm:"column:banner_image;type:varchar(512)" json:"banner_image"`
	DisplayLanguage int    `gorm:"column:display_language;default:0" json:"display_language"`
	Country         int    `gorm:"column:country;default:0" json:"country"`

	IsConfirmed   bool       `gorm:"column:is_confirmed;not null;default:false" json:"is_confirmed"`
	DeactivatedAt *time.Time `gorm:"column:deactivated_at" json:"-"`

	SnsID   string `gorm:"column:sns_id;type:varchar(255);index:idx_sns,priority:1" json:"-"`
	SnsType string `gorm:"column:sns_type;type:varchar(20);index:idx_sns,priority:2;default:normal" json:"sns_type"`

	FollowerCount  int64 `gorm:"column:follower_count;not null;default:0" json:"follower_count"`
	FollowingCount int64 `gorm:"column:following_count;not null;default:0" json:"following_count"`
}

// TableName overrides the default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// IsActive reports whether the account can authenticate.
func (u *DbUser) IsActive() bool {
	return u != nil && u.DeactivatedAt == nil
}

// UserProfile is the redacted public view of an account. Credentials and
// state fields never appear here.
type UserProfile struct {
	ID              uint      `json:"id"`
	Email           string    `json:"email"`
	ScreenID        string    `json:"screen_id"`
	Nickname        string    `json:"nickname"`
	Intro           string    `json:"intro"`
	ProfileImage    string    `json:"profile_image"`
	BannerImage     string    `json:"banner_image"`
	DisplayLanguage int       `json:"display_language"`
	Country         int       `json:"country"`
	IsConfirmed     bool      `json:"is_confirmed"`
	FollowerCount   int64     `json:"follower_count"`
	FollowingCount  int64     `json:"following_count"`
	JoinDate        time.Time `json:"join_date"`
}

// JoinRequest is the signup payload.
type JoinRequest struct {
	Email    string `json:"email" binding:"required"`
	UserPw   string `json:"userPw" binding:"required"`
	UserPwRe string `json:"userPwRe" binding:"required"`
	UserNick string `json:"userNick" binding:"required"`
	UserLang int    `json:"userLang"`
}

// LoginRequest is the credential login payload.
type LoginRequest struct {
	Email  string `json:"email" binding:"required"`
	UserPw string `json:"userPw" binding:"required"`
}

// ChangePasswordRequest resets the password after a mail challenge.
type ChangePasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	UserPwNew   string `json:"userPwNew" binding:"required"`
	UserPwNewRe string `json:"userPwNewRe" binding:"required"`
}

// FindPassRequest asks for a password-reset mail.
type FindPassRequest struct {
	Email string `json:"email" binding:"required"`
}

// GoogleProfile is the Google variant of an SNS login payload.
type GoogleProfile struct {
	GoogleID string `json:"googleId"`
	Email    string `json:"email"`
	ImageURL string `json:"imageUrl"`
	Name     string `json:"name"`
}

// FacebookProfile is the Facebook variant of an SNS login payload.
type FacebookProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SnsData is a tagged union over the provider payload variants; SnsType on
// the enclosing request selects which branch is read.
type SnsData struct {
	Google   *GoogleProfile   `json:"google,omitempty"`
	Facebook *FacebookProfile `json:"facebook,omitempty"`
}

// SnsLoginRequest is the SNS login payload.
type SnsLoginRequest struct {
	SnsData  SnsData `json:"snsData"`
	SnsType  string  `json:"snsType" binding:"required"`
	UserLang int     `json:"userLang"`
}

// SnsJoinData is the normalised provider identity handed to the auth
// service when an SNS login has no existing account.
type SnsJoinData struct {
	UID             string
	Email           string
	Name            string
	ProfileImage    string
	SnsType         string
	DisplayLanguage int
}

// LoginResponse carries the minted session token.
type LoginResponse struct {
	AuthToken       string `json:"authToken"`
	Nick            string `json:"nick"`
	ScreenID        string `json:"screenId"`
	DisplayLanguage int    `json:"displayLanguage"`
}

// ProfileUpdateRequest carries the profile-only mutable fields. Pointer
// fields distinguish "absent" from "set to zero value".
type ProfileUpdateRequest struct {
	ScreenID        *string `json:"screenId,omitempty"`
	Intro           *string `json:"intro,omitempty"`
	Nickname        *string `json:"nickname,omitempty"`
	BannerImage     *string `json:"banner,omitempty"`
	ProfileImage    *string `json:"profile,omitempty"`
	DisplayLanguage *int    `json:"displayLanguage,omitempty"`
}

// UserQuery supports listing users with pagination.
type UserQuery struct {
	BaseParams
	Keyword string `json:"keyword" form:"keyword" query:"keyword"`
}
