package ports

import (
	"context"
	"io"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
)

// ListActorsQuery carries the roster listing filters forwarded upstream.
type ListActorsQuery struct {
	Page          int
	PageSize      int
	Name          string
	TagIDs        []int
	TagSearchMode string
	Status        string
}

// ActorInput is the writable subset of an actor record.
type ActorInput struct {
	RealName  string `json:"real_name,omitempty"`
	StageName string `json:"stage_name,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Age       int    `json:"age,omitempty"`
	HeightCm  int    `json:"height,omitempty"`
	WeightKg  int    `json:"weight,omitempty"`
	Status    string `json:"status,omitempty"`
}

// ActorClient wraps the upstream /actors/basic sub-area. List results are
// already normalized to the uniform page shape.
type ActorClient interface {
	List(ctx context.Context, token string, q ListActorsQuery) (domain.ActorPage, error)
	ListUnassigned(ctx context.Context, token string, q ListActorsQuery) (domain.ActorPage, error)
	Get(ctx context.Context, token, actorID string) (*domain.Actor, error)
	Create(ctx context.Context, token string, in ActorInput) (*domain.Actor, error)
	Update(ctx context.Context, token, actorID string, in ActorInput) (*domain.Actor, error)
	Delete(ctx context.Context, token, actorID string) error
	SelfUpdate(ctx context.Context, token string, in ActorInput) (*domain.Actor, error)
}

// TagInput is the writable subset of a tag.
type TagInput struct {
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// TagClient wraps the upstream tag taxonomy and the actor-tag join.
type TagClient interface {
	List(ctx context.Context, token string) ([]domain.Tag, error)
	Get(ctx context.Context, token string, tagID int) (*domain.Tag, error)
	Create(ctx context.Context, token string, in TagInput) (*domain.Tag, error)
	Update(ctx context.Context, token string, tagID int, in TagInput) (*domain.Tag, error)
	Delete(ctx context.Context, token string, tagID int) error

	// ForActors is the batched lookup used by tag backfill: one call keyed
	// by the full id set, returning tags grouped by actor id.
	ForActors(ctx context.Context, token string, actorIDs []string) (map[string][]domain.Tag, error)
	ActorTags(ctx context.Context, token, actorID string) ([]domain.Tag, error)
	AttachTags(ctx context.Context, token, actorID string, tagIDs []int) error
	ReplaceTags(ctx context.Context, token, actorID string, tagIDs []int) error
	DetachTag(ctx context.Context, token, actorID string, tagID int) error
}

// LoginResult is what the upstream login endpoints return. User may be nil;
// callers then resolve the profile separately.
type LoginResult struct {
	AccessToken string
	User        *domain.UserProfile
}

// CreateUserInput covers upstream user-creation endpoints (register,
// admin create-manager).
type CreateUserInput struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Phone      string `json:"phone,omitempty"`
	InviteCode string `json:"invite_code,omitempty"`
}

// AuthClient wraps the upstream /system/auth sub-area.
type AuthClient interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, in CreateUserInput) (*domain.UserProfile, error)
	// Me is the "who am I" call; it is also the 401 re-validation probe.
	Me(ctx context.Context, token string) (*domain.UserProfile, error)
	CreateManager(ctx context.Context, token string, in CreateUserInput) (*domain.UserProfile, error)
	ListUsers(ctx context.Context, token string, page, pageSize int) ([]domain.UserProfile, error)
}

// AgentClient wraps agent-to-actor assignment.
type AgentClient interface {
	Assign(ctx context.Context, token, actorID string, agentID int) error
	Actors(ctx context.Context, token string, agentID int) (domain.ActorPage, error)
	Unassign(ctx context.Context, token, actorID string) error
}

// MediaUpload is a file being forwarded to the upstream.
type MediaUpload struct {
	Kind        domain.MediaKind
	FileName    string
	ContentType string
	Body        io.Reader
}

// MediaClient wraps actor media management, including the self-service
// endpoints performers use on their own record.
type MediaClient interface {
	List(ctx context.Context, token, actorID string) ([]domain.MediaItem, error)
	Upload(ctx context.Context, token, actorID string, up MediaUpload) (*domain.MediaItem, error)
	Delete(ctx context.Context, token, actorID, mediaID string) error

	SelfList(ctx context.Context, token string) ([]domain.MediaItem, error)
	SelfUpload(ctx context.Context, token string, up MediaUpload) (*domain.MediaItem, error)
	SelfDelete(ctx context.Context, token, mediaID string) error
}

// InviteClient wraps invite-code management and verification.
type InviteClient interface {
	List(ctx context.Context, token string) ([]domain.InviteCode, error)
	Create(ctx context.Context, token string) (*domain.InviteCode, error)
	Update(ctx context.Context, token, codeID string, status domain.InviteCodeStatus) (*domain.InviteCode, error)
	Delete(ctx context.Context, token, codeID string) error
	Verify(ctx context.Context, code string) (*domain.InviteCode, error)
}
