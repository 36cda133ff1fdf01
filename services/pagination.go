package services

import (
	"context"
	"fmt"
	"strings"
	"wa-directory/domain"
	"wa-directory/errors"

	"golang.org/x/text/cases"
)

// LoadChats returns up to count chats after before, filtered by options, and the
// cursor of the next page. The cursor is only set when the page is full, as a
// hint that more chats may follow.
func (s *DirectoryService) LoadChats(ctx context.Context, count int, before *domain.Cursor,
	options domain.LoadChatsOptions) (domain.ChatPage, error) {
	if count <= 0 {
		return domain.ChatPage{}, fmt.Errorf("%w: got %d", errors.ErrInvalidCount, count)
	}
	if err := domain.Validate(domain.LoadChatsCommand{Count: count, Before: before, Search: options.Search}); err != nil {
		return domain.ChatPage{}, err
	}
	chats, err := s.chats.Paginated(ctx, before, count, ChatFilter(options))
	if err != nil {
		return domain.ChatPage{}, err
	}
	page := domain.ChatPage{Chats: chats}
	if len(chats) > 0 && len(chats) >= count {
		cursor := domain.ChatOrderingKey(chats[len(chats)-1])
		page.Cursor = &cursor
	}
	return page, nil
}

// ChatFilter combines the custom predicate and the search string of options.
// A chat passes when both accept it; a missing name or JID never matches a search.
func ChatFilter(options domain.LoadChatsOptions) domain.ChatPredicate {
	custom := options.Custom
	if options.Search == "" {
		if custom == nil {
			return nil
		}
		return custom
	}
	folder := cases.Fold()
	search := folder.String(options.Search)
	return func(chat domain.ChatRecord) bool {
		if custom != nil && !custom(chat) {
			return false
		}
		return contains(folder, chat.Name, search) || contains(folder, string(chat.JID), search)
	}
}

func contains(folder cases.Caser, field, search string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(folder.String(field), search)
}
