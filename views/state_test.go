package views

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	none := url.Values{}

	cases := []struct {
		name     string
		fragment string
		query    url.Values
		want     State
		wantErr  bool
	}{
		{"empty defaults to main", "", none, State{Kind: KindBoard, Category: "main", SortBy: "date"}, false},
		{"freeboard", "freeboard", none, State{Kind: KindBoard, Category: "freeboard", SortBy: "date"}, false},
		{"notice sorted by likes", "notice", url.Values{"sortBy": {"likes"}}, State{Kind: KindBoard, Category: "notice", SortBy: "likes"}, false},
		{"bogus sort falls back to date", "freeboard", url.Values{"sortBy": {"bogus"}}, State{Kind: KindBoard, Category: "freeboard", SortBy: "date"}, false},
		{"room list", "rooms", none, State{Kind: KindRoomList}, false},
		{"room posts", "rooms-humor-room", none, State{Kind: KindRoomPosts, RoomSlug: "humor-room", SortBy: "date"}, false},
		{"room posts by likes", "rooms-game-room", url.Values{"sortBy": {"likes"}}, State{Kind: KindRoomPosts, RoomSlug: "game-room", SortBy: "likes"}, false},
		{"post detail", "post-12", none, State{Kind: KindPostDetail, PostID: 12}, false},
		{"search", "search", url.Values{"q": {"점심"}}, State{Kind: KindSearch, Query: "점심"}, false},
		{"unknown falls back to main", "whatever", none, State{Kind: KindBoard, Category: "main", SortBy: "date"}, false},
		{"bad post id", "post-abc", none, State{}, true},
		{"zero post id", "post-0", none, State{}, true},
		{"empty room slug", "rooms-", none, State{}, true},
		{"search without query", "search", none, State{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseState(tc.fragment, tc.query)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
