package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/banjiha/community/models"
)

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Post{}, &models.Comment{}, &models.Room{}))

	return SetupRouter(db)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, "success", env.Message)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func createPost(t *testing.T, r *gin.Engine, body map[string]interface{}) models.Post {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/posts", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var post models.Post
	decodeData(t, w, &post)
	require.NotZero(t, post.ID)
	return post
}

func TestCreateAndGetPostRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	created := createPost(t, r, map[string]interface{}{
		"title":    "T",
		"content":  "<p>C</p>",
		"category": "freeboard",
	})

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/posts/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail struct {
		Post     models.Post      `json:"post"`
		Comments []models.Comment `json:"comments"`
	}
	decodeData(t, w, &detail)

	require.Equal(t, "T", detail.Post.Title)
	require.Equal(t, "<p>C</p>", detail.Post.Content)
	require.Equal(t, "freeboard", detail.Post.Category)
	require.Equal(t, "익명", detail.Post.Author)
	require.Equal(t, 0, detail.Post.Likes)
	require.Equal(t, 0, detail.Post.Dislikes)
	require.Nil(t, detail.Post.RoomSlug)
	require.Empty(t, detail.Comments)
}

func TestGetPostNotFound(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/posts/9999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotEmpty(t, env.Error)
}

func TestCreatePostValidation(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/posts", map[string]interface{}{"title": "only title"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/posts", map[string]interface{}{
		"title": "t", "content": "c", "category": "bogus",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Room posts must name their room.
	w = doJSON(t, r, http.MethodPost, "/api/posts", map[string]interface{}{
		"title": "t", "content": "c", "category": "rooms",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPostsCategoryFiltering(t *testing.T) {
	r := newTestRouter(t)

	free := createPost(t, r, map[string]interface{}{
		"title": "free post", "content": "c", "category": "freeboard",
	})
	roomed := createPost(t, r, map[string]interface{}{
		"title": "room post", "content": "c", "category": "rooms", "roomSlug": "humor-room",
	})

	var posts []models.PostSummary

	w := doJSON(t, r, http.MethodGet, "/api/posts?category=freeboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &posts)
	require.Len(t, posts, 1)
	require.Equal(t, free.ID, posts[0].ID)

	// A room slug combined with a plain category matches nothing.
	w = doJSON(t, r, http.MethodGet, "/api/posts?category=freeboard&roomSlug=humor-room", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &posts)
	require.Empty(t, posts)

	w = doJSON(t, r, http.MethodGet, "/api/posts?category=rooms&roomSlug=humor-room", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &posts)
	require.Len(t, posts, 1)
	require.Equal(t, roomed.ID, posts[0].ID)
}

func TestListPostsSortByLikes(t *testing.T) {
	r := newTestRouter(t)

	first := createPost(t, r, map[string]interface{}{"title": "one", "content": "c"})
	second := createPost(t, r, map[string]interface{}{"title": "two", "content": "c"})
	third := createPost(t, r, map[string]interface{}{"title": "three", "content": "c"})

	like := func(id uint, n int) {
		for i := 0; i < n; i++ {
			w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", id), nil)
			require.Equal(t, http.StatusOK, w.Code)
		}
	}
	like(first.ID, 2)
	like(second.ID, 5)
	// third stays at zero and ties with nothing.

	var posts []models.PostSummary
	w := doJSON(t, r, http.MethodGet, "/api/posts?category=main&sortBy=likes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &posts)
	require.Len(t, posts, 3)
	require.Equal(t, second.ID, posts[0].ID)
	require.Equal(t, first.ID, posts[1].ID)
	require.Equal(t, third.ID, posts[2].ID)

	// Default sort is newest-first by id.
	w = doJSON(t, r, http.MethodGet, "/api/posts?category=main", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &posts)
	require.Equal(t, []uint{third.ID, second.ID, first.ID}, []uint{posts[0].ID, posts[1].ID, posts[2].ID})
}

func TestReactionIncrements(t *testing.T) {
	r := newTestRouter(t)

	post := createPost(t, r, map[string]interface{}{"title": "t", "content": "c"})

	var last struct {
		ID    uint `json:"id"`
		Likes int  `json:"likes"`
	}
	for i := 1; i <= 3; i++ {
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", post.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		decodeData(t, w, &last)
		require.Equal(t, i, last.Likes)
	}

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/dislike", post.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dis struct {
		Dislikes int `json:"dislikes"`
	}
	decodeData(t, w, &dis)
	require.Equal(t, 1, dis.Dislikes)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/upvote", post.ID), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/posts/9999/like", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateComment(t *testing.T) {
	r := newTestRouter(t)

	post := createPost(t, r, map[string]interface{}{"title": "t", "content": "c"})

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", post.ID), map[string]interface{}{
		"comment_text": "first",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var comment models.Comment
	decodeData(t, w, &comment)
	require.Equal(t, post.ID, comment.PostID)
	require.Equal(t, "first", comment.CommentText)
	require.Equal(t, "익명", comment.Author)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", post.ID), map[string]interface{}{
		"comment_text": "second", "author": "홍길동",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		Comments []models.Comment `json:"comments"`
	}
	decodeData(t, w, &detail)
	require.Len(t, detail.Comments, 2)
	require.Equal(t, "first", detail.Comments[0].CommentText)
	require.Equal(t, "second", detail.Comments[1].CommentText)
	require.Equal(t, "홍길동", detail.Comments[1].Author)

	// Missing text and missing post are both rejected.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", post.ID), map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/posts/9999/comments", map[string]interface{}{"comment_text": "x"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchPosts(t *testing.T) {
	r := newTestRouter(t)

	target := createPost(t, r, map[string]interface{}{
		"title": "오늘의 점심 메뉴 추천해주세요!", "content": "<p>맛집 추천 부탁드려요.</p>",
	})
	createPost(t, r, map[string]interface{}{"title": "unrelated", "content": "nothing here"})

	var posts []models.PostSummary

	w := doJSON(t, r, http.MethodGet, "/api/search/posts?q="+url.QueryEscape("점심"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &posts)
	require.Len(t, posts, 1)
	require.Equal(t, target.ID, posts[0].ID)

	w = doJSON(t, r, http.MethodGet, "/api/search/posts?q=zzz-no-match", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &posts)
	require.Empty(t, posts)

	w = doJSON(t, r, http.MethodGet, "/api/search/posts", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLatestPostsBound(t *testing.T) {
	r := newTestRouter(t)

	var ids []uint
	categories := []string{"main", "freeboard", "notice"}
	for i := 0; i < 7; i++ {
		post := createPost(t, r, map[string]interface{}{
			"title":    fmt.Sprintf("post %d", i),
			"content":  "c",
			"category": categories[i%len(categories)],
		})
		ids = append(ids, post.ID)
	}

	var posts []models.PostSummary
	w := doJSON(t, r, http.MethodGet, "/api/latest_posts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &posts)
	require.Len(t, posts, 5)
	for i, post := range posts {
		require.Equal(t, ids[len(ids)-1-i], post.ID)
	}
}

func TestRooms(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/rooms", map[string]interface{}{
		"name": "Cool Room", "description": "desc",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var room models.Room
	decodeData(t, w, &room)
	require.Equal(t, "cool-room", room.Slug)

	// A second name deriving the same slug conflicts.
	w = doJSON(t, r, http.MethodPost, "/api/rooms", map[string]interface{}{"name": "cool  room"})
	require.Equal(t, http.StatusConflict, w.Code)

	// A name with no slug-safe characters is rejected.
	w = doJSON(t, r, http.MethodPost, "/api/rooms", map[string]interface{}{"name": "유머방"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/rooms", map[string]interface{}{"name": "Another Room"})
	require.Equal(t, http.StatusCreated, w.Code)

	var rooms []models.Room
	w = doJSON(t, r, http.MethodGet, "/api/rooms", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &rooms)
	require.Len(t, rooms, 2)
	require.Equal(t, "Another Room", rooms[0].Name)
	require.Equal(t, "Cool Room", rooms[1].Name)
}

func TestUploadRequiresFile(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestViewPages(t *testing.T) {
	r := newTestRouter(t)

	post := createPost(t, r, map[string]interface{}{
		"title": "환영합니다", "content": "<p>본문</p><script>alert(1)</script>",
	})

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := get("/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "최신 게시물")
	require.Contains(t, w.Body.String(), "환영합니다")

	w = get(fmt.Sprintf("/b/post-%d", post.ID))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "<p>본문</p>")
	require.NotContains(t, body, "<script>")

	w = get("/b/post-99999")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "게시물을 찾을 수 없습니다")

	// Rooms created after the first render show up: the view cache is
	// invalidated on creation.
	w = get("/b/rooms")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "새로운방")

	resp := doJSON(t, r, http.MethodPost, "/api/rooms", map[string]interface{}{"name": "New Room 새로운방"})
	require.Equal(t, http.StatusCreated, resp.Code)

	w = get("/b/rooms")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "New Room 새로운방")

	w = get("/b/search?q=" + url.QueryEscape("환영"))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "검색 결과")
	require.Contains(t, strings.ToLower(w.Body.String()), "post-")
}
