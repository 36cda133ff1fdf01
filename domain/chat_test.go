package domain

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChatOrderingKey_Sorts_Like_Timestamps(t *testing.T) {
	req := require.New(t)

	// Given timestamps on both sides of zero, listed in order
	timestamps := []int64{math.MinInt64, -1_700_000_000, -2, -1, 0, 1, 9, 10, 1_700_000_000, math.MaxInt64}
	keys := make([]string, 0, len(timestamps))
	for _, ts := range timestamps {
		keys = append(keys, string(ChatOrderingKey(ChatRecord{JID: "a", Timestamp: ts})))
	}

	// Then lexicographic order keeps them in order
	req.True(sort.StringsAreSorted(keys), "keys: %v", keys)
}

func TestChatOrderingKey_JID_Breaks_Ties(t *testing.T) {
	req := require.New(t)

	a := ChatOrderingKey(ChatRecord{JID: "1@s.whatsapp.net", Timestamp: 5})
	b := ChatOrderingKey(ChatRecord{JID: "2@s.whatsapp.net", Timestamp: 5})

	req.Less(string(a), string(b))
	req.Equal(Cursor("09223372036854775813:1@s.whatsapp.net"), a)
}
