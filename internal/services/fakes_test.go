package services

import (
	"context"

	"github.com/PranamRaj/football-connect/internal/store"
	"github.com/PranamRaj/football-connect/types"
)

// In-memory fakes backing the service tests. IDs are assigned
// sequentially; email uniqueness spans both profile kinds like the
// accounts table does.

type fakeAccounts struct {
	byEmail map[string]types.Account
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byEmail: map[string]types.Account{}}
}

func (f *fakeAccounts) GetByID(ctx context.Context, id int) (types.Account, error) {
	for _, account := range f.byEmail {
		if account.ID == id {
			return account, nil
		}
	}
	return types.Account{}, store.ErrNotFound
}

func (f *fakeAccounts) GetByEmail(ctx context.Context, email string) (types.Account, error) {
	account, ok := f.byEmail[email]
	if !ok {
		return types.Account{}, store.ErrNotFound
	}
	return account, nil
}

type fakeRegistry struct {
	accounts *fakeAccounts
	nextID   int
	players  map[int]types.Player
	clubs    map[int]types.Club
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		accounts: newFakeAccounts(),
		nextID:   1,
		players:  map[int]types.Player{},
		clubs:    map[int]types.Club{},
	}
}

func (f *fakeRegistry) allocate(account types.Account) (types.Account, error) {
	if _, exists := f.accounts.byEmail[account.Email]; exists {
		return types.Account{}, store.ErrDuplicate
	}
	account.ID = f.nextID
	f.nextID++
	f.accounts.byEmail[account.Email] = account
	return account, nil
}

func (f *fakeRegistry) CreateWithAccount(ctx context.Context, account types.Account, player types.Player) (types.Account, types.Player, error) {
	created, err := f.allocate(account)
	if err != nil {
		return types.Account{}, types.Player{}, err
	}
	player.ID = f.nextID
	f.nextID++
	player.AccountID = created.ID
	f.players[player.ID] = player
	return created, player, nil
}

type fakeClubRegistry struct {
	*fakeRegistry
}

func (f *fakeClubRegistry) CreateWithAccount(ctx context.Context, account types.Account, club types.Club) (types.Account, types.Club, error) {
	created, err := f.allocate(account)
	if err != nil {
		return types.Account{}, types.Club{}, err
	}
	club.ID = f.nextID
	f.nextID++
	club.AccountID = created.ID
	f.clubs[club.ID] = club
	return created, club, nil
}

type fakeBlobs struct {
	stored []string
	keys   []string
}

func (f *fakeBlobs) Store(ctx context.Context, data []byte, originalName string) (string, error) {
	key := originalName
	f.stored = append(f.stored, originalName)
	f.keys = append(f.keys, key)
	return key, nil
}

type fakePlayers struct {
	byID        map[int]types.Player
	byAccountID map[int]types.Player
	skills      map[int]map[string]float64
	memberships map[int]map[int]string
}

func newFakePlayers() *fakePlayers {
	return &fakePlayers{
		byID:        map[int]types.Player{},
		byAccountID: map[int]types.Player{},
		skills:      map[int]map[string]float64{},
		memberships: map[int]map[int]string{},
	}
}

func (f *fakePlayers) add(player types.Player) {
	f.byID[player.ID] = player
	f.byAccountID[player.AccountID] = player
}

func (f *fakePlayers) GetByID(ctx context.Context, id int) (types.Player, error) {
	player, ok := f.byID[id]
	if !ok {
		return types.Player{}, store.ErrNotFound
	}
	return player, nil
}

func (f *fakePlayers) GetByAccountID(ctx context.Context, accountID int) (types.Player, error) {
	player, ok := f.byAccountID[accountID]
	if !ok {
		return types.Player{}, store.ErrNotFound
	}
	return player, nil
}

func (f *fakePlayers) UpsertSkill(ctx context.Context, playerID int, skill types.Skill) error {
	if f.skills[playerID] == nil {
		f.skills[playerID] = map[string]float64{}
	}
	f.skills[playerID][skill.SkillName] = skill.Rating
	return nil
}

func (f *fakePlayers) ListSkills(ctx context.Context, playerID int) ([]types.Skill, error) {
	skills := make([]types.Skill, 0, len(f.skills[playerID]))
	for name, rating := range f.skills[playerID] {
		skills = append(skills, types.Skill{SkillName: name, Rating: rating})
	}
	return skills, nil
}

func (f *fakePlayers) RequestMembership(ctx context.Context, playerID, clubID int) error {
	if f.memberships[playerID] == nil {
		f.memberships[playerID] = map[int]string{}
	}
	if _, exists := f.memberships[playerID][clubID]; exists {
		return nil
	}
	f.memberships[playerID][clubID] = "pending"
	return nil
}

func (f *fakePlayers) ListMemberships(ctx context.Context, playerID int) ([]types.Membership, error) {
	memberships := make([]types.Membership, 0, len(f.memberships[playerID]))
	for clubID, status := range f.memberships[playerID] {
		memberships = append(memberships, types.Membership{ClubID: clubID, Status: status})
	}
	return memberships, nil
}

type fakeClubs struct {
	byID    map[int]types.Club
	members map[int][]types.ClubMember
}

func newFakeClubs() *fakeClubs {
	return &fakeClubs{byID: map[int]types.Club{}, members: map[int][]types.ClubMember{}}
}

func (f *fakeClubs) GetByID(ctx context.Context, id int) (types.Club, error) {
	club, ok := f.byID[id]
	if !ok {
		return types.Club{}, store.ErrNotFound
	}
	return club, nil
}

func (f *fakeClubs) ListMembers(ctx context.Context, clubID int) ([]types.ClubMember, error) {
	return f.members[clubID], nil
}

type fakeMatches struct {
	matches []types.Match
	counts  map[string]int
}

func newFakeMatches() *fakeMatches {
	return &fakeMatches{counts: map[string]int{}}
}

func (f *fakeMatches) Create(ctx context.Context, match types.Match) (types.Match, error) {
	match.ID = len(f.matches) + 1
	f.matches = append(f.matches, match)
	return match, nil
}

func (f *fakeMatches) List(ctx context.Context, limit int) ([]types.Match, error) {
	if limit > len(f.matches) {
		limit = len(f.matches)
	}
	return f.matches[:limit], nil
}

func (f *fakeMatches) CountForTeamName(ctx context.Context, name string) (int, error) {
	return f.counts[name], nil
}

type fakeSocial struct {
	posts    map[int]types.Post
	nextID   int
	likes    map[int]map[int]bool
	comments map[int][]types.Comment
}

func newFakeSocial() *fakeSocial {
	return &fakeSocial{
		posts:    map[int]types.Post{},
		nextID:   1,
		likes:    map[int]map[int]bool{},
		comments: map[int][]types.Comment{},
	}
}

func (f *fakeSocial) CreatePost(ctx context.Context, post types.Post) (types.Post, error) {
	post.ID = f.nextID
	f.nextID++
	f.posts[post.ID] = post
	return post, nil
}

func (f *fakeSocial) ListPosts(ctx context.Context, limit int) ([]types.Post, error) {
	posts := make([]types.Post, 0, len(f.posts))
	for _, post := range f.posts {
		posts = append(posts, post)
	}
	if limit < len(posts) {
		posts = posts[:limit]
	}
	return posts, nil
}

func (f *fakeSocial) GetPost(ctx context.Context, id int) (types.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return types.Post{}, store.ErrNotFound
	}
	return post, nil
}

func (f *fakeSocial) LikePost(ctx context.Context, postID, accountID int) error {
	if f.likes[postID] == nil {
		f.likes[postID] = map[int]bool{}
	}
	f.likes[postID][accountID] = true
	return nil
}

func (f *fakeSocial) CountLikes(ctx context.Context, postID int) (int, error) {
	return len(f.likes[postID]), nil
}

func (f *fakeSocial) AddComment(ctx context.Context, comment types.Comment) (types.Comment, error) {
	comment.ID = len(f.comments[comment.PostID]) + 1
	f.comments[comment.PostID] = append(f.comments[comment.PostID], comment)
	return comment, nil
}

func (f *fakeSocial) ListComments(ctx context.Context, postID int) ([]types.Comment, error) {
	return f.comments[postID], nil
}
