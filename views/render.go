package views

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"

	"github.com/banjiha/community/models"
	"github.com/banjiha/community/utils"
)

// Renderer turns view states into HTML pages. All user text is escaped;
// only post bodies pass through the sanitizer allowlist as markup.
type Renderer struct {
	src   Source
	rooms *RoomCache
}

// NewRenderer creates a Renderer over the given data source, sharing the
// room-name cache with whoever invalidates it on room creation.
func NewRenderer(src Source, rooms *RoomCache) *Renderer {
	return &Renderer{src: src, rooms: rooms}
}

// Render produces the page for a state along with the HTTP status it
// should be served with. Fetch failures yield an inline error page.
func (r *Renderer) Render(state State) (string, int) {
	switch state.Kind {
	case KindRoomList:
		return r.renderRoomList()
	case KindRoomPosts:
		return r.renderRoomPosts(state)
	case KindPostDetail:
		return r.renderPostDetail(state)
	case KindSearch:
		return r.renderSearch(state)
	default:
		return r.renderBoard(state)
	}
}

// ErrorPage renders a standalone error page.
func ErrorPage(message string) string {
	return page("오류", errorHTML(message))
}

func (r *Renderer) renderBoard(state State) (string, int) {
	title := boardTitle(state.Category)

	posts, err := r.src.ListPosts(models.PostFilter{Category: state.Category, SortBy: state.SortBy})
	if err != nil {
		return page(title, errorHTML("게시물 목록을 불러오는데 실패했습니다.")), http.StatusInternalServerError
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(title))
	if state.Category == models.CategoryFreeboard {
		b.WriteString(r.sortLinks("/b/"+state.Category, state.SortBy))
	}
	b.WriteString(r.postList(posts))

	if state.Category == models.CategoryFreeboard {
		b.WriteString(r.latestSection())
	}
	return page(title, b.String()), http.StatusOK
}

func (r *Renderer) renderRoomPosts(state State) (string, int) {
	title := state.RoomSlug + " 게시물"
	if name := r.rooms.Name(r.src, state.RoomSlug); name != "" {
		title = name + " 게시물"
	}

	posts, err := r.src.ListPosts(models.PostFilter{
		Category: models.CategoryRooms,
		RoomSlug: state.RoomSlug,
		SortBy:   state.SortBy,
	})
	if err != nil {
		return page(title, errorHTML("게시물 목록을 불러오는데 실패했습니다.")), http.StatusInternalServerError
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(title))
	b.WriteString(`<p><a class="back-button" href="/b/rooms">방 목록으로</a></p>` + "\n")
	b.WriteString(r.sortLinks("/b/rooms-"+url.PathEscape(state.RoomSlug), state.SortBy))
	b.WriteString(r.postList(posts))
	return page(title, b.String()), http.StatusOK
}

func (r *Renderer) renderRoomList() (string, int) {
	const title = "여러 방 들"

	rooms, err := r.rooms.Rooms(r.src)
	if err != nil {
		return page(title, errorHTML("방 목록을 불러오는데 실패했습니다.")), http.StatusInternalServerError
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2>\n", title)
	if len(rooms) == 0 {
		b.WriteString(`<p class="no-posts">개설된 방이 아직 없습니다. 새 방을 만들어보세요!</p>` + "\n")
	} else {
		b.WriteString(`<div class="room-list">` + "\n")
		for _, room := range rooms {
			fmt.Fprintf(&b,
				`<a class="room-card" href="/b/rooms-%s"><h3>%s</h3><p>%s</p></a>`+"\n",
				url.PathEscape(room.Slug),
				html.EscapeString(room.Name),
				html.EscapeString(room.Description),
			)
		}
		b.WriteString("</div>\n")
	}
	return page(title, b.String()), http.StatusOK
}

func (r *Renderer) renderPostDetail(state State) (string, int) {
	post, comments, err := r.src.GetPost(state.PostID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return page("게시물", errorHTML("게시물을 찾을 수 없습니다.")), http.StatusNotFound
		}
		return page("게시물", errorHTML("게시물 상세 정보를 불러오는데 실패했습니다.")), http.StatusInternalServerError
	}

	backHref := "/"
	if post.Category == models.CategoryRooms && post.RoomSlug != nil {
		backHref = "/b/rooms-" + url.PathEscape(*post.RoomSlug)
	} else if post.Category != models.CategoryMain {
		backHref = "/b/" + post.Category
	}

	title := html.EscapeString(post.Title)
	if post.RoomSlug != nil {
		if name := r.rooms.Name(r.src, *post.RoomSlug); name != "" {
			title = "[" + html.EscapeString(name) + "] " + title
		}
	}

	var b strings.Builder
	b.WriteString(`<div class="post-detail">` + "\n")
	fmt.Fprintf(&b, `<p><a class="back-button" href="%s">목록으로 돌아가기</a></p>`+"\n", backHref)
	fmt.Fprintf(&b, "<h2>%s</h2>\n", title)
	fmt.Fprintf(&b,
		`<p class="post-meta">%s | %s | 좋아요 %d · 싫어요 %d</p>`+"\n",
		html.EscapeString(post.Author),
		post.Date.Time().Format("2006-01-02 15:04:05"),
		post.Likes,
		post.Dislikes,
	)
	fmt.Fprintf(&b, `<div class="post-content-detail">%s</div>`+"\n", utils.SanitizeContent(post.Content))

	b.WriteString(`<div class="comments-section"><h3>댓글</h3><ul class="comments-list">` + "\n")
	if len(comments) == 0 {
		b.WriteString("<li>아직 댓글이 없습니다. 첫 댓글을 남겨보세요!</li>\n")
	}
	for _, comment := range comments {
		fmt.Fprintf(&b,
			`<li><div class="comment-meta">%s | %s</div><span>%s</span></li>`+"\n",
			html.EscapeString(comment.Author),
			comment.Date.Time().Format("2006-01-02 15:04:05"),
			html.EscapeString(comment.CommentText),
		)
	}
	b.WriteString("</ul></div>\n</div>\n")
	return page(post.Title, b.String()), http.StatusOK
}

func (r *Renderer) renderSearch(state State) (string, int) {
	title := fmt.Sprintf("'%s' 검색 결과", state.Query)

	posts, err := r.src.SearchPosts(state.Query)
	if err != nil {
		return page(title, errorHTML("검색 결과를 불러오는데 실패했습니다.")), http.StatusInternalServerError
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(title))
	if len(posts) == 0 {
		fmt.Fprintf(&b, `<p class="no-posts">'%s'에 대한 검색 결과가 없습니다.</p>`+"\n", html.EscapeString(state.Query))
	} else {
		b.WriteString(r.postList(posts))
	}
	return page(title, b.String()), http.StatusOK
}

func (r *Renderer) postList(posts []models.PostSummary) string {
	if len(posts) == 0 {
		return `<p class="no-posts">아직 작성된 게시물이 없습니다. 첫 글을 작성해보세요!</p>` + "\n"
	}
	var b strings.Builder
	b.WriteString(`<ul class="post-list">` + "\n")
	for _, post := range posts {
		fmt.Fprintf(&b,
			`<li><a href="/b/post-%d"><div class="title">%s%s</div><div class="meta">%s | %s | ❤️ %d</div></a></li>`+"\n",
			post.ID,
			r.roomPrefix(post.RoomSlug),
			html.EscapeString(post.Title),
			html.EscapeString(post.Author),
			post.Date.Time().Format("2006-01-02"),
			post.Likes,
		)
	}
	b.WriteString("</ul>\n")
	return b.String()
}

func (r *Renderer) latestSection() string {
	posts, err := r.src.LatestPosts()
	if err != nil {
		return errorHTML("최신 글 불러오기에 실패했습니다.")
	}
	var b strings.Builder
	b.WriteString(`<div class="latest-posts"><h3>최신 글</h3>` + "\n")
	if len(posts) == 0 {
		b.WriteString(`<p class="no-posts">아직 작성된 글이 없습니다.</p>` + "\n")
	} else {
		b.WriteString("<ul>\n")
		for _, post := range posts {
			fmt.Fprintf(&b,
				`<li><a href="/b/post-%d">%s%s</a></li>`+"\n",
				post.ID,
				r.roomPrefix(post.RoomSlug),
				html.EscapeString(post.Title),
			)
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</div>\n")
	return b.String()
}

func (r *Renderer) roomPrefix(slug *string) string {
	if slug == nil {
		return ""
	}
	name := r.rooms.Name(r.src, *slug)
	if name == "" {
		return ""
	}
	return "[" + html.EscapeString(name) + "] "
}

func (r *Renderer) sortLinks(base, active string) string {
	link := func(sort, label string) string {
		class := "sort-button"
		if sort == active {
			class += " active"
		}
		return fmt.Sprintf(`<a class="%s" href="%s?sortBy=%s">%s</a>`, class, base, sort, label)
	}
	return `<div class="sort-options">` +
		link(models.SortByDate, "최신순") + " " +
		link(models.SortByLikes, "좋아요순") +
		"</div>\n"
}

func boardTitle(category string) string {
	switch category {
	case models.CategoryFreeboard:
		return "자유 게시판"
	case models.CategoryNotice:
		return "공지사항"
	default:
		return "최신 게시물"
	}
}

func errorHTML(message string) string {
	return `<p class="error-message">` + html.EscapeString(message) + "</p>\n"
}

func page(title, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"ko\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s - 반지하 커뮤니티</title>\n", html.EscapeString(title))
	b.WriteString("</head>\n<body>\n")
	b.WriteString(`<nav><ul>` +
		`<li><a href="/">홈</a></li>` +
		`<li><a href="/b/freeboard">자유 게시판</a></li>` +
		`<li><a href="/b/rooms">여러 방 들</a></li>` +
		`<li><a href="/b/notice">공지사항</a></li>` +
		`</ul>` +
		`<form action="/b/search" method="get"><input type="text" name="q" placeholder="검색어"><button type="submit">검색</button></form>` +
		"</nav>\n<main>\n")
	b.WriteString(body)
	b.WriteString("</main>\n</body>\n</html>\n")
	return b.String()
}
