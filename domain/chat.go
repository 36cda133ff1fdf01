package domain

import "fmt"

// ChatRecord is the directory's view of one entry of the chat store.
// The store owns its lifecycle; this layer only reads it and updates ImgURL.
type ChatRecord struct {
	JID       JID
	Name      string
	ImgURL    string
	Timestamp int64
	Unread    int
	Archived  bool
	Pinned    bool
}

// Cursor is the opaque resume point of a chat page.
type Cursor string

// ChatOrderingKey is the canonical ordering key of the chat collection.
// The timestamp is shifted into the unsigned range and zero padded to 20 digits
// so that lexicographic order equals timestamp order, negatives included.
// The JID breaks ties between chats sharing a timestamp.
func ChatOrderingKey(chat ChatRecord) Cursor {
	biased := uint64(chat.Timestamp) ^ (1 << 63)
	return Cursor(fmt.Sprintf("%020d:%s", biased, chat.JID))
}

// ChatPredicate selects chats during pagination.
type ChatPredicate func(chat ChatRecord) bool

type LoadChatsOptions struct {
	// Search is matched case-insensitively against the display name or the JID.
	Search string
	Custom ChatPredicate
}

type ChatPage struct {
	Chats []ChatRecord
	// Cursor is nil when the page is not full.
	Cursor *Cursor
}
