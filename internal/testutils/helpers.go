package testutils

import (
	"context"
	"fmt"
	"sync"

	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
)

// Reply is a response captured by FakePlatform. Edited marks a reply that
// filled in a deferred acknowledgement.
type Reply struct {
	Interaction domain.Interaction
	Response    domain.Response
	Edited      bool
}

// Message is a channel message captured by FakePlatform.
type Message struct {
	ChannelID string
	Text      string
}

// FakePlatform is an in-memory guild and responder. Zero value is not usable;
// call NewFakePlatform.
type FakePlatform struct {
	mu sync.Mutex

	Guilds map[string]*FakeGuild

	Replies  []Reply
	Deferred []domain.Interaction
	Channels []domain.ChannelSpec
	Messages []Message

	// CreateErr, SendErr, DeferErr and ReplyErr make the matching call fail.
	// ReplyErr also fails Edit.
	CreateErr error
	SendErr   error
	DeferErr  error
	ReplyErr  error

	// BeforeCreate runs before a channel is created, outside the lock.
	BeforeCreate func(ctx context.Context)

	nextID int
}

// FakeGuild is the channel and role graph of one guild.
type FakeGuild struct {
	Categories []domain.Category
	Roles      []domain.Role
}

// NewFakePlatform returns a platform with no guilds.
func NewFakePlatform() *FakePlatform {
	return &FakePlatform{Guilds: make(map[string]*FakeGuild)}
}

// AddGuild registers a guild and returns it for further setup.
func (f *FakePlatform) AddGuild(id string, categories []domain.Category, roles []domain.Role) *FakeGuild {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := &FakeGuild{Categories: categories, Roles: roles}
	f.Guilds[id] = g
	return g
}

func (f *FakePlatform) guild(id string) (*FakeGuild, error) {
	g, ok := f.Guilds[id]
	if !ok {
		return nil, fmt.Errorf("unknown guild %q", id)
	}
	return g, nil
}

func (f *FakePlatform) Categories(ctx context.Context, guildID string) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, err := f.guild(guildID)
	if err != nil {
		return nil, err
	}
	return append([]domain.Category(nil), g.Categories...), nil
}

func (f *FakePlatform) Roles(ctx context.Context, guildID string) ([]domain.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, err := f.guild(guildID)
	if err != nil {
		return nil, err
	}
	return append([]domain.Role(nil), g.Roles...), nil
}

func (f *FakePlatform) CreateChannel(ctx context.Context, guildID string, spec domain.ChannelSpec) (domain.Channel, error) {
	if f.BeforeCreate != nil {
		f.BeforeCreate(ctx)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return domain.Channel{}, f.CreateErr
	}
	if _, err := f.guild(guildID); err != nil {
		return domain.Channel{}, err
	}
	f.nextID++
	f.Channels = append(f.Channels, spec)
	return domain.Channel{ID: fmt.Sprintf("chan-%d", f.nextID), Name: spec.Name}, nil
}

func (f *FakePlatform) SendMessage(ctx context.Context, channelID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		return f.SendErr
	}
	f.Messages = append(f.Messages, Message{ChannelID: channelID, Text: text})
	return nil
}

func (f *FakePlatform) Reply(ctx context.Context, in domain.Interaction, resp domain.Response) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Replies = append(f.Replies, Reply{Interaction: in, Response: resp})
	return f.ReplyErr
}

func (f *FakePlatform) Defer(ctx context.Context, in domain.Interaction, private bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeferErr != nil {
		return f.DeferErr
	}
	f.Deferred = append(f.Deferred, in)
	return nil
}

func (f *FakePlatform) Edit(ctx context.Context, in domain.Interaction, resp domain.Response) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Replies = append(f.Replies, Reply{Interaction: in, Response: resp, Edited: true})
	return f.ReplyErr
}

// DeferredCount returns the number of deferred acknowledgements so far.
func (f *FakePlatform) DeferredCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Deferred)
}

// LastReply returns the most recent captured response.
func (f *FakePlatform) LastReply() (domain.Response, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Replies) == 0 {
		return domain.Response{}, false
	}
	return f.Replies[len(f.Replies)-1].Response, true
}

// CreatedChannels returns the number of channels created so far.
func (f *FakePlatform) CreatedChannels() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Channels)
}
