package service

import (
	"sync"
	"time"
)

// ContentSnapshot — запомненные множества идентификаторов контента на момент
// последней проверки. Экземпляр передаётся сервису явно, а не через глобальную
// переменную, чтобы тесты могли создавать изолированное состояние.
type ContentSnapshot struct {
	mu          sync.Mutex
	postIDs     map[string]struct{}
	guideIDs    map[string]struct{}
	lastChecked time.Time
}

func NewContentSnapshot() *ContentSnapshot {
	return &ContentSnapshot{
		postIDs:  make(map[string]struct{}),
		guideIDs: make(map[string]struct{}),
	}
}

// Swap атомарно заменяет запомненные множества и возвращает предыдущие.
// Чтение и перезапись выполняются под одной блокировкой, поэтому пересекающиеся
// проверки не теряют состояние друг друга.
func (s *ContentSnapshot) Swap(postIDs, guideIDs []string, checkedAt time.Time) (prevPosts, prevGuides map[string]struct{}) {
	newPosts := make(map[string]struct{}, len(postIDs))
	for _, id := range postIDs {
		newPosts[id] = struct{}{}
	}

	newGuides := make(map[string]struct{}, len(guideIDs))
	for _, id := range guideIDs {
		newGuides[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prevPosts = s.postIDs
	prevGuides = s.guideIDs

	s.postIDs = newPosts
	s.guideIDs = newGuides
	s.lastChecked = checkedAt

	return prevPosts, prevGuides
}

func (s *ContentSnapshot) LastChecked() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastChecked
}
