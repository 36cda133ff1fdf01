package repositories

import (
	"fmt"
	"strconv"
	"time"
	"wa-directory/domain"

	"github.com/samber/lo"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Records are stored as protobuf Struct values. Integers are kept as decimal
// strings so that timestamps survive the float64 number representation.

func marshalFields(fields map[string]any) ([]byte, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("struct conversion failed: %w", err)
	}
	return proto.Marshal(s)
}

func unmarshalFields(data []byte) (map[string]*structpb.Value, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal failed: %w", err)
	}
	return s.GetFields(), nil
}

func encodeChat(chat domain.ChatRecord) ([]byte, error) {
	return marshalFields(map[string]any{
		"jid":       string(chat.JID),
		"name":      chat.Name,
		"img_url":   chat.ImgURL,
		"timestamp": strconv.FormatInt(chat.Timestamp, 10),
		"unread":    strconv.Itoa(chat.Unread),
		"archived":  chat.Archived,
		"pinned":    chat.Pinned,
	})
}

func decodeChat(data []byte) (domain.ChatRecord, error) {
	fields, err := unmarshalFields(data)
	if err != nil {
		return domain.ChatRecord{}, err
	}
	ts, err := strconv.ParseInt(fields["timestamp"].GetStringValue(), 10, 64)
	if err != nil {
		return domain.ChatRecord{}, fmt.Errorf("invalid timestamp: %w", err)
	}
	unread, _ := strconv.Atoi(fields["unread"].GetStringValue())
	return domain.ChatRecord{
		JID:       domain.JID(fields["jid"].GetStringValue()),
		Name:      fields["name"].GetStringValue(),
		ImgURL:    fields["img_url"].GetStringValue(),
		Timestamp: ts,
		Unread:    unread,
		Archived:  fields["archived"].GetBoolValue(),
		Pinned:    fields["pinned"].GetBoolValue(),
	}, nil
}

func encodeContact(contact domain.Contact) ([]byte, error) {
	return marshalFields(map[string]any{
		"jid":        string(contact.JID),
		"name":       contact.Name,
		"status":     contact.Status,
		"img_url":    contact.ImgURL,
		"updated_at": strconv.FormatInt(contact.UpdatedAt.UnixNano(), 10),
	})
}

func decodeContact(data []byte) (domain.Contact, error) {
	fields, err := unmarshalFields(data)
	if err != nil {
		return domain.Contact{}, err
	}
	updatedAt, _ := strconv.ParseInt(fields["updated_at"].GetStringValue(), 10, 64)
	return domain.Contact{
		JID:       domain.JID(fields["jid"].GetStringValue()),
		Name:      fields["name"].GetStringValue(),
		Status:    fields["status"].GetStringValue(),
		ImgURL:    fields["img_url"].GetStringValue(),
		UpdatedAt: time.Unix(0, updatedAt).UTC(),
	}, nil
}

func encodeJIDs(jids []domain.JID) ([]byte, error) {
	list, err := structpb.NewList(lo.Map(jids, func(jid domain.JID, _ int) any {
		return string(jid)
	}))
	if err != nil {
		return nil, err
	}
	return proto.Marshal(list)
}

func decodeJIDs(data []byte) ([]domain.JID, error) {
	var list structpb.ListValue
	if err := proto.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("unmarshal failed: %w", err)
	}
	return lo.Map(list.GetValues(), func(v *structpb.Value, _ int) domain.JID {
		return domain.JID(v.GetStringValue())
	}), nil
}
