package views

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/banjiha/community/models"
)

// Kind enumerates the closed set of views the board can show.
type Kind int

const (
	// KindBoard lists one of the plain categories (main, freeboard,
	// notice).
	KindBoard Kind = iota
	// KindRoomList shows all rooms.
	KindRoomList
	// KindRoomPosts lists the posts of a single room.
	KindRoomPosts
	// KindPostDetail shows one post with its comments.
	KindPostDetail
	// KindSearch shows posts matching a search term.
	KindSearch
)

// State is one fully resolved view of the board.
type State struct {
	Kind     Kind
	Category string // KindBoard
	RoomSlug string // KindRoomPosts
	PostID   uint   // KindPostDetail
	Query    string // KindSearch
	SortBy   string // KindBoard, KindRoomPosts
}

// ParseState resolves a location fragment and its query values into a
// view state. The grammar: "post-<id>", "rooms-<slug>", "rooms",
// "search" (with q), or a category name. Unrecognized plain fragments
// fall back to the main board.
func ParseState(fragment string, query url.Values) (State, error) {
	sortBy := query.Get("sortBy")
	if sortBy != models.SortByLikes {
		sortBy = models.SortByDate
	}

	switch {
	case strings.HasPrefix(fragment, "post-"):
		raw := fragment[len("post-"):]
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return State{}, fmt.Errorf("invalid post id %q", raw)
		}
		return State{Kind: KindPostDetail, PostID: uint(id)}, nil

	case strings.HasPrefix(fragment, "rooms-"):
		slug := fragment[len("rooms-"):]
		if slug == "" {
			return State{}, fmt.Errorf("missing room slug")
		}
		return State{Kind: KindRoomPosts, RoomSlug: slug, SortBy: sortBy}, nil

	case fragment == "rooms":
		return State{Kind: KindRoomList}, nil

	case fragment == "search":
		q := query.Get("q")
		if q == "" {
			return State{}, fmt.Errorf("search query is required")
		}
		return State{Kind: KindSearch, Query: q}, nil

	case fragment == models.CategoryFreeboard, fragment == models.CategoryNotice:
		return State{Kind: KindBoard, Category: fragment, SortBy: sortBy}, nil

	default:
		return State{Kind: KindBoard, Category: models.CategoryMain, SortBy: sortBy}, nil
	}
}
