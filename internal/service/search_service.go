package service

import (
	"encoding/json"
	"log"

	"github.com/meilisearch/meilisearch-go"
	"vitacoin.app/rewardsplatform/internal/dto"
	"vitacoin.app/rewardsplatform/internal/model"
)

const tasksIndex = "tasks"

type SearchService interface {
	IndexTask(task *model.Task) error
	DeleteTask(id string) error
	SearchTasks(query, category, difficulty string, limit int) ([]dto.TaskSearchResult, error)
}

type searchService struct {
	client meilisearch.ServiceManager
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{client: client}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	filterableAttrs := []string{"category", "difficulty", "active"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	_, err := s.client.Index(tasksIndex).UpdateFilterableAttributes(&filterableInterface)
	if err != nil {
		log.Printf("Failed to update tasks filterable attributes: %v", err)
	}

	sortableAttrs := []string{"coins_reward", "created_at"}
	_, err = s.client.Index(tasksIndex).UpdateSortableAttributes(&sortableAttrs)
	if err != nil {
		log.Printf("Failed to update tasks sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

type meiliTaskDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	CoinsReward int    `json:"coins_reward"`
	Difficulty  string `json:"difficulty"`
	Active      bool   `json:"active"`
	CreatedAt   int64  `json:"created_at"`
}

func (s *searchService) IndexTask(task *model.Task) error {
	doc := meiliTaskDoc{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Category:    task.Category,
		CoinsReward: task.CoinsReward,
		Difficulty:  task.Difficulty,
		Active:      task.Active,
		CreatedAt:   task.CreatedAt.Unix(),
	}

	info, err := s.client.Index(tasksIndex).AddDocuments([]meiliTaskDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed task %s, task id: %d", task.ID, info.TaskUID)
	return nil
}

func (s *searchService) DeleteTask(id string) error {
	_, err := s.client.Index(tasksIndex).DeleteDocument(id)
	return err
}

func (s *searchService) SearchTasks(query, category, difficulty string, limit int) ([]dto.TaskSearchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	filter := []string{"active = true"}
	if category != "" {
		filter = append(filter, "category = "+category)
	}
	if difficulty != "" {
		filter = append(filter, "difficulty = "+difficulty)
	}

	res, err := s.client.Index(tasksIndex).Search(query, &meilisearch.SearchRequest{
		Limit:  int64(limit),
		Filter: filter,
	})
	if err != nil {
		return nil, err
	}

	// Round-trip through JSON so the hit shape stays decoupled from the
	// client's internal hit type.
	raw, err := json.Marshal(res.Hits)
	if err != nil {
		return nil, err
	}

	var results []dto.TaskSearchResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, err
	}

	return results, nil
}

func strPtr(s string) *string {
	return &s
}
