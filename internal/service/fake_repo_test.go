package service

import (
	"context"
	"sort"
	"strings"

	"penlog/internal/entity"

	"gorm.io/gorm"
)

// fakeRepo is an in-memory Repository for service tests. It mirrors the
// store contract: lookups return (nil, nil) on miss, duplicate unique keys
// surface gorm.ErrDuplicatedKey.
type fakeRepo struct {
	users     map[uint]*entity.DbUser
	boards    map[uint]*entity.DbBoard
	feedbacks map[uint]*entity.DbFeedback
	replies   map[uint]*entity.DbReply
	likes     map[uint]*entity.DbLike
	bookmarks map[uint]*entity.DbBookmark
	follows   map[uint]*entity.DbFollow
	nextID    uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:     make(map[uint]*entity.DbUser),
		boards:    make(map[uint]*entity.DbBoard),
		feedbacks: make(map[uint]*entity.DbFeedback),
		replies:   make(map[uint]*entity.DbReply),
		likes:     make(map[uint]*entity.DbLike),
		bookmarks: make(map[uint]*entity.DbBookmark),
		follows:   make(map[uint]*entity.DbFollow),
	}
}

func (f *fakeRepo) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) CreateUser(_ context.Context, user *entity.DbUser) error {
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = f.id()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeRepo) UpdateUser(_ context.Context, id uint, updates entity.UserUpdates) error {
	user, ok := f.users[id]
	if !ok {
		return nil
	}
	if updates.Password != nil {
		user.Password = *updates.Password
	}
	if updates.Salt != nil {
		user.Salt = *updates.Salt
	}
	if updates.Token != nil || updates.TokenSet {
		user.Token = updates.Token
	}
	if updates.ScreenID != nil {
		user.ScreenID = *updates.ScreenID
	}
	if updates.Nickname != nil {
		user.Nickname = *updates.Nickname
	}
	if updates.Intro != nil {
		user.Intro = *updates.Intro
	}
	if updates.ProfileImage != nil {
		user.ProfileImage = *updates.ProfileImage
	}
	if updates.BannerImage != nil {
		user.BannerImage = *updates.BannerImage
	}
	if updates.DisplayLanguage != nil {
		user.DisplayLanguage = *updates.DisplayLanguage
	}
	if updates.Country != nil {
		user.Country = *updates.Country
	}
	if updates.IsConfirmed != nil {
		user.IsConfirmed = *updates.IsConfirmed
	}
	if updates.DeactivatedAt != nil {
		user.DeactivatedAt = *updates.DeactivatedAt
	}
	return nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, id uint) (*entity.DbUser, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*entity.DbUser, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetUserBySnsID(_ context.Context, snsID, snsType string) (*entity.DbUser, error) {
	for _, user := range f.users {
		if user.SnsID == snsID && user.SnsType == snsType {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetUserByEmailAndToken(_ context.Context, email, token string) (*entity.DbUser, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) && user.Token != nil && *user.Token == token {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListUsers(_ context.Context, _ *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error) {
	out := make([]entity.DbUser, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, *user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	meta := &entity.Meta{Page: 1, PageSize: int64(len(out)), Total: int64(len(out))}
	return out, meta, nil
}

func (f *fakeRepo) DeleteUser(_ context.Context, id uint) (bool, error) {
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	return true, nil
}

func (f *fakeRepo) CountUsers(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeRepo) AdjustFollowCounts(_ context.Context, followerID, followedID uint, delta int) error {
	if follower, ok := f.users[followerID]; ok {
		follower.FollowingCount += int64(delta)
	}
	if followed, ok := f.users[followedID]; ok {
		followed.FollowerCount += int64(delta)
	}
	return nil
}

func (f *fakeRepo) CreateBoard(_ context.Context, board *entity.DbBoard) error {
	board.ID = f.id()
	copied := *board
	f.boards[board.ID] = &copied
	return nil
}

func (f *fakeRepo) GetBoardByID(_ context.Context, id uint) (*entity.DbBoard, error) {
	board, ok := f.boards[id]
	if !ok {
		return nil, nil
	}
	copied := *board
	return &copied, nil
}

func (f *fakeRepo) UpdateBoard(_ context.Context, id uint, updates entity.BoardUpdates) error {
	board, ok := f.boards[id]
	if !ok {
		return nil
	}
	if updates.Title != nil {
		board.Title = *updates.Title
	}
	if updates.Body != nil {
		board.Body = *updates.Body
	}
	if updates.Images != nil {
		board.Images = *updates.Images
	}
	if updates.Category != nil {
		board.Category = *updates.Category
	}
	if updates.Pub != nil {
		board.Pub = *updates.Pub
	}
	if updates.Language != nil {
		board.Language = *updates.Language
	}
	if updates.Edited != nil {
		board.Edited = *updates.Edited
	}
	return nil
}

func (f *fakeRepo) DeleteBoard(_ context.Context, id uint) (bool, error) {
	if _, ok := f.boards[id]; !ok {
		return false, nil
	}
	delete(f.boards, id)
	return true, nil
}

func (f *fakeRepo) ListBoards(_ context.Context, params *entity.BoardQuery) ([]entity.DbBoard, *entity.Meta, error) {
	out := make([]entity.DbBoard, 0, len(f.boards))
	for _, board := range f.boards {
		if params != nil && params.Category != "" && board.Category != params.Category {
			continue
		}
		out = append(out, *board)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	meta := &entity.Meta{Page: 1, PageSize: int64(len(out)), Total: int64(len(out))}
	return out, meta, nil
}

func (f *fakeRepo) ListBoardsByUser(_ context.Context, uid uint) ([]entity.DbBoard, error) {
	out := make([]entity.DbBoard, 0)
	for _, board := range f.boards {
		if board.UID == uid {
			out = append(out, *board)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeRepo) SearchBoards(_ context.Context, keyword string) ([]entity.DbBoard, error) {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	out := make([]entity.DbBoard, 0)
	if needle == "" {
		return out, nil
	}
	for _, board := range f.boards {
		if strings.Contains(strings.ToLower(board.Title), needle) {
			out = append(out, *board)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) AdjustBoardCounter(_ context.Context, boardID uint, column string, delta int) error {
	board, ok := f.boards[boardID]
	if !ok {
		return nil
	}
	switch column {
	case entity.BoardHeartCount:
		board.HeartCount += int64(delta)
	case entity.BoardFeedbackCount:
		board.FeedbackCount += int64(delta)
	case entity.BoardBookmarkCount:
		board.BookmarkCount += int64(delta)
	}
	return nil
}

func (f *fakeRepo) CreateFeedback(_ context.Context, feedback *entity.DbFeedback) error {
	feedback.ID = f.id()
	copied := *feedback
	f.feedbacks[feedback.ID] = &copied
	return nil
}

func (f *fakeRepo) GetFeedbackByID(_ context.Context, id uint) (*entity.DbFeedback, error) {
	feedback, ok := f.feedbacks[id]
	if !ok {
		return nil, nil
	}
	copied := *feedback
	return &copied, nil
}

func (f *fakeRepo) UpdateFeedback(_ context.Context, id uint, updates entity.FeedbackUpdates) error {
	feedback, ok := f.feedbacks[id]
	if !ok {
		return nil
	}
	if updates.Body != nil {
		feedback.Body = *updates.Body
	}
	if updates.Edited != nil {
		feedback.Edited = *updates.Edited
	}
	return nil
}

func (f *fakeRepo) DeleteFeedback(_ context.Context, id uint) (bool, error) {
	if _, ok := f.feedbacks[id]; !ok {
		return false, nil
	}
	delete(f.feedbacks, id)
	return true, nil
}

func (f *fakeRepo) ListFeedbackByBoard(_ context.Context, boardID uint) ([]entity.DbFeedback, error) {
	out := make([]entity.DbFeedback, 0)
	for _, feedback := range f.feedbacks {
		if feedback.BoardID == boardID {
			out = append(out, *feedback)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) AdjustFeedbackCounter(_ context.Context, feedbackID uint, column string, delta int) error {
	feedback, ok := f.feedbacks[feedbackID]
	if !ok {
		return nil
	}
	switch column {
	case entity.FeedbackHeartCount:
		feedback.HeartCount += int64(delta)
	case entity.FeedbackReplyCount:
		feedback.ReplyCount += int64(delta)
	}
	return nil
}

func (f *fakeRepo) CreateReply(_ context.Context, reply *entity.DbReply) error {
	reply.ID = f.id()
	copied := *reply
	f.replies[reply.ID] = &copied
	return nil
}

func (f *fakeRepo) GetReplyByID(_ context.Context, id uint) (*entity.DbReply, error) {
	reply, ok := f.replies[id]
	if !ok {
		return nil, nil
	}
	copied := *reply
	return &copied, nil
}

func (f *fakeRepo) UpdateReply(_ context.Context, id uint, updates entity.FeedbackUpdates) error {
	reply, ok := f.replies[id]
	if !ok {
		return nil
	}
	if updates.Body != nil {
		reply.Body = *updates.Body
	}
	if updates.Edited != nil {
		reply.Edited = *updates.Edited
	}
	return nil
}

func (f *fakeRepo) DeleteReply(_ context.Context, id uint) (bool, error) {
	if _, ok := f.replies[id]; !ok {
		return false, nil
	}
	delete(f.replies, id)
	return true, nil
}

func (f *fakeRepo) ListRepliesByFeedback(_ context.Context, feedbackID uint) ([]entity.DbReply, error) {
	out := make([]entity.DbReply, 0)
	for _, reply := range f.replies {
		if reply.FeedbackID == feedbackID {
			out = append(out, *reply)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) CreateLike(_ context.Context, like *entity.DbLike) error {
	for _, existing := range f.likes {
		if existing.UID == like.UID && existing.TargetType == like.TargetType && existing.TargetID == like.TargetID {
			return gorm.ErrDuplicatedKey
		}
	}
	like.ID = f.id()
	copied := *like
	f.likes[like.ID] = &copied
	return nil
}

func (f *fakeRepo) DeleteLike(_ context.Context, uid uint, targetType string, targetID uint) (bool, error) {
	for id, like := range f.likes {
		if like.UID == uid && like.TargetType == targetType && like.TargetID == targetID {
			delete(f.likes, id)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) GetLike(_ context.Context, uid uint, targetType string, targetID uint) (*entity.DbLike, error) {
	for _, like := range f.likes {
		if like.UID == uid && like.TargetType == targetType && like.TargetID == targetID {
			copied := *like
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListLikesByUser(_ context.Context, uid uint, targetType string) ([]entity.DbLike, error) {
	out := make([]entity.DbLike, 0)
	for _, like := range f.likes {
		if like.UID != uid {
			continue
		}
		if targetType != "" && like.TargetType != targetType {
			continue
		}
		out = append(out, *like)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeRepo) CountLikes(_ context.Context, targetType string, targetID uint) (int64, error) {
	var count int64
	for _, like := range f.likes {
		if like.TargetType == targetType && like.TargetID == targetID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) CreateBookmark(_ context.Context, bookmark *entity.DbBookmark) error {
	for _, existing := range f.bookmarks {
		if existing.UID == bookmark.UID && existing.BoardID == bookmark.BoardID {
			return gorm.ErrDuplicatedKey
		}
	}
	bookmark.ID = f.id()
	copied := *bookmark
	f.bookmarks[bookmark.ID] = &copied
	return nil
}

func (f *fakeRepo) DeleteBookmark(_ context.Context, uid, boardID uint) (bool, error) {
	for id, bookmark := range f.bookmarks {
		if bookmark.UID == uid && bookmark.BoardID == boardID {
			delete(f.bookmarks, id)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) GetBookmark(_ context.Context, uid, boardID uint) (*entity.DbBookmark, error) {
	for _, bookmark := range f.bookmarks {
		if bookmark.UID == uid && bookmark.BoardID == boardID {
			copied := *bookmark
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListBookmarksByUser(_ context.Context, uid uint) ([]entity.DbBookmark, error) {
	out := make([]entity.DbBookmark, 0)
	for _, bookmark := range f.bookmarks {
		if bookmark.UID == uid {
			out = append(out, *bookmark)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) CreateFollow(_ context.Context, follow *entity.DbFollow) error {
	for _, existing := range f.follows {
		if existing.UID == follow.UID && existing.TargetUID == follow.TargetUID {
			return gorm.ErrDuplicatedKey
		}
	}
	follow.ID = f.id()
	copied := *follow
	f.follows[follow.ID] = &copied
	return nil
}

func (f *fakeRepo) DeleteFollow(_ context.Context, uid, targetUID uint) (bool, error) {
	for id, follow := range f.follows {
		if follow.UID == uid && follow.TargetUID == targetUID {
			delete(f.follows, id)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) GetFollow(_ context.Context, uid, targetUID uint) (*entity.DbFollow, error) {
	for _, follow := range f.follows {
		if follow.UID == uid && follow.TargetUID == targetUID {
			copied := *follow
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListFollowers(_ context.Context, uid uint) ([]entity.DbFollow, error) {
	out := make([]entity.DbFollow, 0)
	for _, follow := range f.follows {
		if follow.TargetUID == uid {
			out = append(out, *follow)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) ListFollowing(_ context.Context, uid uint) ([]entity.DbFollow, error) {
	out := make([]entity.DbFollow, 0)
	for _, follow := range f.follows {
		if follow.UID == uid {
			out = append(out, *follow)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
