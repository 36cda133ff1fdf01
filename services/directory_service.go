//go:generate go run go.uber.org/mock/mockgen -source=directory_service.go -destination=../mocks/mock_directory_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"
	"wa-directory/contract"
	"wa-directory/domain"
	"wa-directory/domain/event"
	"wa-directory/domain/picture"
	"wa-directory/errors"
	"wa-directory/runtime"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const emitTimeout = 5 * time.Second

type IDirectoryService interface {
	OnWhatsApp(ctx context.Context, str string) (domain.Existence, bool, error)
	OnWhatsAppNoConn(ctx context.Context, str string) (domain.Existence, bool, error)
	UpdatePresence(ctx context.Context, jid string, presence domain.PresenceType) (domain.Response, error)
	RequestPresenceUpdate(ctx context.Context, jid string) (domain.Response, error)
	GetStatus(ctx context.Context, jid string) (domain.Response, error)
	SetStatus(ctx context.Context, status string) (domain.Response, error)
	UpdateProfileName(ctx context.Context, name string) (domain.Response, error)
	UpdateProfilePicture(ctx context.Context, jid string, img []byte) (domain.Response, error)
	GetContacts(ctx context.Context) (domain.Response, error)
	GetStories(ctx context.Context) ([]domain.Story, error)
	GetChats(ctx context.Context) (domain.Response, error)
	LoadChats(ctx context.Context, count int, before *domain.Cursor, options domain.LoadChatsOptions) (domain.ChatPage, error)
	GetBroadcastListInfo(ctx context.Context, jid string) (domain.Response, error)
	BlockUser(ctx context.Context, jid string, action domain.BlockAction) (domain.Response, error)
	GetBusinessProfile(ctx context.Context, jid string) (domain.BusinessProfile, bool, error)
	Blocklist() []domain.JID
}

// Dependencies are the collaborators a DirectoryService reads from and writes to.
// Blocklist and Chats are shared with the rest of the process, never copied.
type Dependencies struct {
	Gateway   contract.QueryGateway
	Session   contract.Session
	Prober    contract.Prober
	Chats     contract.ChatStore
	Notifier  contract.Notifier
	Blocklist *domain.Blocklist
	Locks     *runtime.KeyedMutex
}

type DirectoryService struct {
	log          *slog.Logger
	gateway      contract.QueryGateway
	session      contract.Session
	prober       contract.Prober
	chats        contract.ChatStore
	notifier     contract.Notifier
	blocklist    *domain.Blocklist
	locks        *runtime.KeyedMutex
	probeBaseURL string
	now          func() time.Time
	newTag       func() string
}

func NewDirectoryService(log *slog.Logger, deps Dependencies, probeBaseURL string) *DirectoryService {
	if deps.Locks == nil {
		deps.Locks = runtime.NewKeyedMutex()
	}
	if deps.Blocklist == nil {
		deps.Blocklist = domain.NewBlocklist()
	}
	return &DirectoryService{
		log:          log,
		gateway:      deps.Gateway,
		session:      deps.Session,
		prober:       deps.Prober,
		chats:        deps.Chats,
		notifier:     deps.Notifier,
		blocklist:    deps.Blocklist,
		locks:        deps.Locks,
		probeBaseURL: probeBaseURL,
		now:          func() time.Time { return time.Now().UTC() },
		newTag:       uuid.NewString,
	}
}

// UpdatePresence tells jid about our presence: online, typing, offline...
// The frame is sent without waiting for a status.
func (s *DirectoryService) UpdatePresence(ctx context.Context, jid string, presence domain.PresenceType) (domain.Response, error) {
	if err := domain.Validate(domain.PresenceCommand{JID: jid, Presence: presence}); err != nil {
		return domain.Response{}, err
	}
	to, err := normalize(jid)
	if err != nil {
		return domain.Response{}, err
	}
	return s.gateway.Query(ctx, domain.Request{
		Payload: s.action("set", domain.Node{
			Tag:   "presence",
			Attrs: map[string]any{"type": string(presence), "to": string(to)},
		}),
		Tags:   &domain.BinaryTags{Metric: domain.MetricPresence, Flag: domain.PresenceFlag(presence)},
		Binary: true,
	})
}

// RequestPresenceUpdate subscribes to the presence of jid.
func (s *DirectoryService) RequestPresenceUpdate(ctx context.Context, jid string) (domain.Response, error) {
	to, err := normalize(jid)
	if err != nil {
		return domain.Response{}, err
	}
	return s.gateway.Query(ctx, domain.Request{
		Payload:             []any{"action", "presence", "subscribe", string(to)},
		RequiresLiveSession: true,
	})
}

// GetStatus queries the status text of jid, or of the account when jid is empty.
func (s *DirectoryService) GetStatus(ctx context.Context, jid string) (domain.Response, error) {
	target := s.session.Self().JID()
	if jid != "" {
		var err error
		if target, err = normalize(jid); err != nil {
			return domain.Response{}, err
		}
	}
	return s.gateway.Query(ctx, domain.Request{
		Payload:             []any{"query", "Status", string(target)},
		RequiresLiveSession: false,
	})
}

func (s *DirectoryService) SetStatus(ctx context.Context, status string) (domain.Response, error) {
	if err := domain.Validate(domain.StatusCommand{Status: status}); err != nil {
		return domain.Response{}, err
	}
	response, err := s.setQuery(ctx, []domain.Node{{Tag: "status", Content: []byte(status)}}, nil, "")
	if err != nil || !response.OK() {
		return response, err
	}
	s.emit(ctx, event.ContactUpdated{
		JID:    s.session.Self().JID(),
		Status: lo.ToPtr(status),
		At:     s.now(),
	})
	return response, nil
}

func (s *DirectoryService) UpdateProfileName(ctx context.Context, name string) (domain.Response, error) {
	if err := domain.Validate(domain.ProfileNameCommand{Name: name}); err != nil {
		return domain.Response{}, err
	}
	response, err := s.setQuery(ctx, []domain.Node{{Tag: "profile", Attrs: map[string]any{"name": name}}}, nil, "")
	if err != nil || !response.OK() {
		return response, err
	}
	self := s.session.Self()
	self.SetName(lo.CoalesceOrEmpty(response.String("pushname"), name))
	s.emit(ctx, event.ContactUpdated{
		JID:  self.JID(),
		Name: lo.ToPtr(name),
		At:   s.now(),
	})
	return response, nil
}

// UpdateProfilePicture uploads img as the picture of jid (the account or a group)
// and caches the returned image URL. Concurrent updates of one jid run in call order.
func (s *DirectoryService) UpdateProfilePicture(ctx context.Context, jid string, img []byte) (domain.Response, error) {
	if err := domain.Validate(domain.ProfilePictureCommand{JID: jid, Image: img}); err != nil {
		return domain.Response{}, err
	}
	target, err := normalize(jid)
	if err != nil {
		return domain.Response{}, err
	}
	data, err := picture.Generate(img)
	if err != nil {
		return domain.Response{}, err
	}

	var response domain.Response
	err = s.locks.WithLock(ctx, target.String(), func(ctx context.Context) error {
		var err error
		tag := s.newTag()
		response, err = s.setQuery(ctx, []domain.Node{{
			Tag:   "picture",
			Attrs: map[string]any{"jid": string(target), "id": tag, "type": "set"},
			Content: []domain.Node{
				{Tag: "image", Content: data.Img},
				{Tag: "preview", Content: data.Preview},
			},
		}}, &domain.BinaryTags{Metric: domain.MetricPicture, Flag: domain.FlagOther}, tag)
		if err != nil {
			return err
		}
		if !response.OK() {
			return nil
		}
		return s.applyPicture(ctx, target, response.String("eurl"))
	})
	return response, err
}

func (s *DirectoryService) applyPicture(ctx context.Context, jid domain.JID, imgURL string) error {
	self := s.session.Self()
	if jid == self.JID() {
		self.SetImgURL(imgURL)
		s.emit(ctx, event.ContactUpdated{JID: jid, ImgURL: lo.ToPtr(imgURL), At: s.now()})
		return nil
	}
	_, found, err := s.chats.Get(ctx, jid)
	if err != nil {
		return err
	}
	if !found {
		s.log.Debug("Picture updated for a chat we do not hold", "jid", jid)
		return nil
	}
	if err = s.chats.UpdateImage(ctx, jid, imgURL); err != nil {
		return err
	}
	s.emit(ctx, event.ChatUpdated{JID: jid, ImgURL: lo.ToPtr(imgURL), At: s.now()})
	return nil
}

// GetContacts fetches the address book. The query is encrypted end to end,
// so the phone has to be connected.
func (s *DirectoryService) GetContacts(ctx context.Context) (domain.Response, error) {
	return s.gateway.Query(ctx, domain.Request{
		Payload:             s.epochQuery("contacts"),
		Tags:                &domain.BinaryTags{Metric: domain.MetricQueryContact, Flag: domain.FlagIgnore},
		ExpectSuccess:       true,
		RequiresLiveSession: true,
	})
}

// GetStories fetches the status stories of the contacts.
func (s *DirectoryService) GetStories(ctx context.Context) ([]domain.Story, error) {
	response, err := s.gateway.Query(ctx, domain.Request{
		Payload:             s.epochQuery("status"),
		Tags:                &domain.BinaryTags{Metric: domain.MetricQueryStatus, Flag: domain.FlagIgnore},
		ExpectSuccess:       true,
		RequiresLiveSession: true,
	})
	if err != nil {
		return nil, err
	}
	return toStories(response.Content), nil
}

func (s *DirectoryService) GetChats(ctx context.Context) (domain.Response, error) {
	return s.gateway.Query(ctx, domain.Request{
		Payload:             s.epochQuery("chat"),
		Tags:                &domain.BinaryTags{Metric: domain.MetricQueryChat, Flag: domain.FlagIgnore},
		ExpectSuccess:       true,
		RequiresLiveSession: true,
	})
}

func (s *DirectoryService) GetBroadcastListInfo(ctx context.Context, jid string) (domain.Response, error) {
	target, err := normalize(jid)
	if err != nil {
		return domain.Response{}, err
	}
	return s.gateway.Query(ctx, domain.Request{
		Payload:             []any{"query", "contact", string(target)},
		ExpectSuccess:       true,
		RequiresLiveSession: true,
	})
}

// BlockUser adds jid to, or removes it from, the blocklist. The local list only
// changes once the remote side acknowledged; concurrent calls for one jid run in call order.
func (s *DirectoryService) BlockUser(ctx context.Context, jid string, action domain.BlockAction) (domain.Response, error) {
	if action == "" {
		action = domain.BlockAdd
	}
	if err := domain.Validate(domain.BlockUserCommand{JID: jid, Action: action}); err != nil {
		return domain.Response{}, err
	}
	target, err := normalize(jid)
	if err != nil {
		return domain.Response{}, err
	}

	var response domain.Response
	err = s.locks.WithLock(ctx, target.String(), func(ctx context.Context) error {
		var err error
		response, err = s.setQuery(ctx, []domain.Node{{
			Tag:   "block",
			Attrs: map[string]any{"type": string(action)},
			Content: []domain.Node{
				{Tag: "user", Attrs: map[string]any{"jid": string(target)}},
			},
		}}, &domain.BinaryTags{Metric: domain.MetricBlock, Flag: domain.FlagIgnore}, "")
		if err != nil {
			return err
		}
		if !response.OK() {
			return nil
		}
		update := event.BlocklistUpdated{Added: []domain.JID{}, Removed: []domain.JID{}, At: s.now()}
		if action == domain.BlockAdd {
			s.blocklist.Add(target)
			update.Added = []domain.JID{target}
		} else {
			s.blocklist.Remove(target)
			update.Removed = []domain.JID{target}
		}
		s.emit(ctx, update)
		return nil
	})
	return response, err
}

func (s *DirectoryService) Blocklist() []domain.JID {
	return s.blocklist.List()
}

// GetBusinessProfile queries the business profile of jid. The bool is false
// when the account is not a business one.
func (s *DirectoryService) GetBusinessProfile(ctx context.Context, jid string) (domain.BusinessProfile, bool, error) {
	target, err := normalize(jid)
	if err != nil {
		return domain.BusinessProfile{}, false, err
	}
	response, err := s.gateway.Query(ctx, domain.Request{
		Payload: []any{"query", "businessProfile", []any{
			map[string]any{"wid": domain.WithLegacyServer(target)},
		}, 84},
		ExpectSuccess:       true,
		RequiresLiveSession: false,
	})
	if err != nil {
		return domain.BusinessProfile{}, false, err
	}
	profiles := response.Slice("profiles")
	if len(profiles) == 0 {
		return domain.BusinessProfile{}, false, nil
	}
	first, ok := profiles[0].(map[string]any)
	if !ok {
		return domain.BusinessProfile{}, false, fmt.Errorf("%w: business profile entry", errors.ErrMalformedResponse)
	}
	wid, _ := first["wid"].(string)
	if wid == "" {
		return domain.BusinessProfile{}, false, fmt.Errorf("%w: business profile without wid", errors.ErrMalformedResponse)
	}
	profile, _ := first["profile"].(map[string]any)
	return domain.BusinessProfile{
		JID:     domain.WhatsAppID(wid),
		Profile: profile,
	}, true, nil
}

// setQuery wraps nodes in a "set" action frame. The status is left to the caller.
func (s *DirectoryService) setQuery(ctx context.Context, nodes []domain.Node,
	tags *domain.BinaryTags, tag string) (domain.Response, error) {
	return s.gateway.Query(ctx, domain.Request{
		Payload:             s.action("set", nodes...),
		Tags:                tags,
		MessageTag:          tag,
		RequiresLiveSession: true,
	})
}

func (s *DirectoryService) action(kind string, nodes ...domain.Node) []any {
	return domain.Node{
		Tag:     "action",
		Attrs:   map[string]any{"epoch": s.session.NextEpoch(), "type": kind},
		Content: nodes,
	}.Tuple()
}

func (s *DirectoryService) epochQuery(kind string) []any {
	return domain.Node{
		Tag:   "query",
		Attrs: map[string]any{"epoch": s.session.NextEpoch(), "type": kind},
	}.Tuple()
}

// emit reports a change the remote side already confirmed. It is detached from
// the caller's context and never fails the call: the change has happened.
func (s *DirectoryService) emit(ctx context.Context, e event.DomainEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), emitTimeout)
	defer cancel()
	if err := s.notifier.Emit(ctx, e); err != nil {
		s.log.Error("Event lost", "kind", e.Kind(), "error", err)
	}
}

func normalize(jid string) (domain.JID, error) {
	normalized, ok := domain.NormalizeJID(jid)
	if !ok {
		return "", fmt.Errorf("%w: %q", errors.ErrInvalidJID, jid)
	}
	return normalized, nil
}

// toStories reads rows shaped [tag, {unread, count}, [[tag, attrs, message]...]].
func toStories(content []any) []domain.Story {
	if len(content) < 3 {
		return []domain.Story{}
	}
	rows, ok := content[2].([]any)
	if !ok {
		return []domain.Story{}
	}
	return lo.Map(rows, func(item any, _ int) domain.Story {
		row, _ := item.([]any)
		story := domain.Story{Messages: []any{}}
		if len(row) > 1 {
			attrs, _ := row[1].(map[string]any)
			story.Unread = toInt(attrs["unread"])
			story.Count = toInt(attrs["count"])
		}
		if len(row) > 2 {
			messages, _ := row[2].([]any)
			story.Messages = lo.FilterMap(messages, func(m any, _ int) (any, bool) {
				message, ok := m.([]any)
				if !ok || len(message) < 3 {
					return nil, false
				}
				return message[2], true
			})
		}
		return story
	})
}

func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		i, _ := strconv.Atoi(n)
		return i
	default:
		return 0
	}
}
