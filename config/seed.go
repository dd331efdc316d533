package config

import (
	"log"

	"gorm.io/gorm"

	"github.com/banjiha/community/models"
)

// SeedDatabase applies the configured seed policy. "missing" fills empty
// tables with the default data set, "reset" clears and reinserts the
// rooms (posts are only inserted when absent), "off" leaves everything
// alone. Resetting rooms is a development convenience, not something the
// API surface can ever do.
func SeedDatabase(db *gorm.DB) error {
	switch Get().SeedMode {
	case SeedOff:
		return nil
	case SeedReset:
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Room{}).Error; err != nil {
			return err
		}
		rooms := seedRooms()
		if err := db.Create(&rooms).Error; err != nil {
			return err
		}
		return seedPostsIfEmpty(db)
	default: // SeedMissing
		if err := seedRoomsIfEmpty(db); err != nil {
			return err
		}
		return seedPostsIfEmpty(db)
	}
}

func seedRoomsIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Room{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	log.Println("seeding default rooms")
	rooms := seedRooms()
	return db.Create(&rooms).Error
}

func seedPostsIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Post{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	log.Println("seeding default posts")
	posts := seedPosts()
	return db.Create(&posts).Error
}

func seedRooms() []models.Room {
	return []models.Room{
		{Name: "유머방", Slug: "humor-room", Description: "웃긴 이야기, 짤방 등 유머 코드를 공유하는 공간입니다."},
		{Name: "학교방", Slug: "school-room", Description: "학교 생활, 학업 고민 등을 나누는 공간입니다."},
		{Name: "게임방", Slug: "game-room", Description: "최신 게임 소식, 전략, 함께 할 친구를 찾아요."},
		{Name: "일상방", Slug: "daily-room", Description: "소소한 일상, 오늘 있었던 일 등을 편하게 이야기해요."},
		{Name: "질문방", Slug: "qna-room", Description: "궁금한 것을 질문하고 답을 얻는 공간입니다."},
		{Name: "수다방", Slug: "chat-room", Description: "자유롭게 수다 떨고 친목을 다지는 공간입니다."},
	}
}

func seedPosts() []models.Post {
	anon := Get().AnonymousAuthor
	slug := func(s string) *string { return &s }
	post := func(title, content, category string, roomSlug *string, likes int) models.Post {
		return models.Post{Title: title, Content: content, Author: anon, Category: category, RoomSlug: roomSlug, Likes: likes}
	}
	return []models.Post{
		post("안녕하세요! 반지하 익명 커뮤니티에 오신 것을 환영합니다!", "<p>자유롭게 의견을 나누고 소통해보세요. <strong>강조된 텍스트</strong>도 사용할 수 있습니다.</p>", models.CategoryMain, nil, 15),
		post("오늘의 점심 메뉴 추천해주세요!", "<p>오늘 점심으로 뭘 먹어야 할지 고민되네요. 혹시 맛집 추천해주실 분 계신가요?</p>", models.CategoryMain, nil, 8),
		post("반지하의 첫 자유 게시글", "<p>익명으로 자유롭게 이야기 나누는 공간입니다. 다들 편하게 글 남겨주세요!</p>", models.CategoryFreeboard, nil, 22),
		post("요즘 볼만한 드라마/영화 추천받아요!", "<p>혹시 요즘 재밌게 본 드라마나 영화 있으신가요? <em>추천 부탁드려요!</em></p>", models.CategoryFreeboard, nil, 12),
		post("오늘의 유머! ㅋㅋㅋ", "<p>세상에서 가장 뜨거운 바다는? 열바다! 🤣</p>", models.CategoryRooms, slug("humor-room"), 40),
		post("웃긴 썰 하나 풀어봄", "<p>얼마 전 있었던 웃긴 일입니다. 다들 공감하시려나?</p>", models.CategoryRooms, slug("humor-room"), 35),
		post("시험 기간 공부 팁 공유해요", "<p>다들 시험 공부 어떻게 하시나요? 저만의 꿀팁은 이겁니다!</p>", models.CategoryRooms, slug("school-room"), 20),
		post("졸업 후 뭐 할지 고민이에요", "<p>취업, 대학원, 유학... 다들 어떻게 결정하셨나요?</p>", models.CategoryRooms, slug("school-room"), 18),
		post("최근 출시된 대작 게임 리뷰", "<p>이 게임 해보셨나요? 정말 최고입니다!</p>", models.CategoryRooms, slug("game-room"), 50),
		post("같이 롤하실 분 구합니다!", "<p>실버 티어, 듀오 구해요! 잘 부탁드립니다~</p>", models.CategoryRooms, slug("game-room"), 25),
		post("오늘의 소확행 자랑합니다!", "<p>퇴근길에 예쁜 노을 봤어요. 작은 행복입니다.</p>", models.CategoryRooms, slug("daily-room"), 17),
		post("집에서 간단히 만들 수 있는 요리 추천?", "<p>자취생 요리 팁 부탁해요!</p>", models.CategoryRooms, slug("daily-room"), 10),
		post("코딩 질문 있습니다. 도와주세요!", "<p>자바스크립트 비동기 처리 이해가 어려워요. 설명해주실 분?</p>", models.CategoryRooms, slug("qna-room"), 14),
		post("이직 고민, 현직자분들 조언 부탁드립니다.", "<p>지금 회사에서 다른 회사로 이직 고민 중인데...</p>", models.CategoryRooms, slug("qna-room"), 11),
		post("다들 주말에 뭐 하시나요?", "<p>심심한데 다들 뭐하시는지 궁금하네요~ 수다 떨어요!</p>", models.CategoryRooms, slug("chat-room"), 7),
		post("MBTI별 특징 수다방", "<p>나는 INFP인데 다들 어떤 MBTI인가요? ㅋㅋㅋ</p>", models.CategoryRooms, slug("chat-room"), 5),
		post("사이트 업데이트 안내 (2024-05-23)", "<p>새로운 기능 추가 및 버그 수정이 완료되었습니다. <u>더 나은 서비스를 위해 계속 노력하겠습니다.</u></p>", models.CategoryNotice, nil, 5),
		post("이용 약관 변경 안내", "<p>2024년 6월 1일부터 새로운 이용 약관이 적용됩니다. 자세한 내용은 클릭하여 확인해주세요.</p>", models.CategoryNotice, nil, 3),
	}
}
