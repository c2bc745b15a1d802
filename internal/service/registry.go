package service

import (
	"context"
	"sync"

	"mrcog-admin/internal/domain"
	"mrcog-admin/internal/dto"
	"mrcog-admin/internal/logger"
	"mrcog-admin/internal/validation"

	"go.uber.org/zap"
)

// RegistryAPI is the slice of the REST client the question registry needs.
type RegistryAPI interface {
	ListQuestions(ctx context.Context, params dto.ListParams) (*dto.QuestionListResponse, error)
	GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error)
	CreateQuestion(ctx context.Context, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, id string, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, id string) error
	ToggleQuestion(ctx context.Context, id string, isActive bool) error
	DailyQuestions(ctx context.Context) (*dto.QuestionListResponse, error)
}

// RegistryService manages the question bank: listing with filters, CRUD and
// the active-flag toggle.
type RegistryService interface {
	List(ctx context.Context, topic domain.Topic, search string) ([]domain.Question, error)
	Get(ctx context.Context, id string) (*domain.Question, error)
	Create(ctx context.Context, req dto.CreateQuestionRequest) (*domain.Question, error)
	Update(ctx context.Context, id string, req dto.UpdateQuestionRequest) (*domain.Question, error)
	Delete(ctx context.Context, id string) error
	ToggleActive(ctx context.Context, id string) (*domain.Question, error)
	Daily(ctx context.Context) ([]domain.Question, error)
}

type registryService struct {
	api       RegistryAPI
	validator *validation.Validator

	mu        sync.Mutex
	questions []domain.Question
}

// NewRegistryService creates a RegistryService over the given API.
func NewRegistryService(api RegistryAPI, validator *validation.Validator) RegistryService {
	return &registryService{api: api, validator: validator}
}

// List fetches the question bank and applies the filters. The topic filter
// is pushed down to the server; the text search is additionally applied
// client-side, case-insensitively over question text and topic, so matching
// does not depend on the server's search semantics.
func (s *registryService) List(ctx context.Context, topic domain.Topic, search string) ([]domain.Question, error) {
	params := dto.AllItems()
	params.Topic = string(topic)
	params.Search = search

	resp, err := s.api.ListQuestions(ctx, params)
	if err != nil {
		return nil, err
	}
	all := resp.ToDomain()

	var out []domain.Question
	for _, q := range all {
		if search != "" && !q.MatchesSearch(search) {
			continue
		}
		out = append(out, q)
	}

	s.mu.Lock()
	s.questions = out
	s.mu.Unlock()
	return out, nil
}

// Get fetches a single question.
func (s *registryService) Get(ctx context.Context, id string) (*domain.Question, error) {
	resp, err := s.api.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	q := resp.ToDomain()
	return &q, nil
}

// Create validates and persists a new question.
func (s *registryService) Create(ctx context.Context, req dto.CreateQuestionRequest) (*domain.Question, error) {
	if errs := s.validator.ValidateQuestionRequest(req); len(errs) > 0 {
		return nil, errs
	}
	resp, err := s.api.CreateQuestion(ctx, req)
	if err != nil {
		return nil, err
	}
	q := resp.ToDomain()
	logger.Get().Info("question created", zap.String("questionID", q.ID), zap.String("topic", string(q.Topic)))
	return &q, nil
}

// Update patches an existing question.
func (s *registryService) Update(ctx context.Context, id string, req dto.UpdateQuestionRequest) (*domain.Question, error) {
	resp, err := s.api.UpdateQuestion(ctx, id, req)
	if err != nil {
		return nil, err
	}
	q := resp.ToDomain()
	s.replaceLocal(q)
	return &q, nil
}

// Delete removes a question from the bank.
func (s *registryService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteQuestion(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	for i := range s.questions {
		if s.questions[i].ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	logger.Get().Info("question deleted", zap.String("questionID", id))
	return nil
}

// ToggleActive flips a question's active flag optimistically: the cached
// copy changes immediately and is reverted when the call fails.
func (s *registryService) ToggleActive(ctx context.Context, id string) (*domain.Question, error) {
	s.mu.Lock()
	var current *domain.Question
	for i := range s.questions {
		if s.questions[i].ID == id {
			current = &s.questions[i]
			break
		}
	}
	if current == nil {
		s.mu.Unlock()
		resp, err := s.api.GetQuestion(ctx, id)
		if err != nil {
			return nil, err
		}
		q := resp.ToDomain()
		s.mu.Lock()
		s.questions = append(s.questions, q)
		current = &s.questions[len(s.questions)-1]
	}

	next := !current.IsActive
	current.IsActive = next
	s.mu.Unlock()

	if err := s.api.ToggleQuestion(ctx, id, next); err != nil {
		s.mu.Lock()
		for i := range s.questions {
			if s.questions[i].ID == id {
				s.questions[i].IsActive = !next
				break
			}
		}
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.questions {
		if s.questions[i].ID == id {
			q := s.questions[i]
			return &q, nil
		}
	}
	return nil, domain.NewQuestionNotFoundError(id)
}

// Daily fetches the questions scheduled for today's posting.
func (s *registryService) Daily(ctx context.Context) ([]domain.Question, error) {
	resp, err := s.api.DailyQuestions(ctx)
	if err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

func (s *registryService) replaceLocal(q domain.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.questions {
		if s.questions[i].ID == q.ID {
			s.questions[i] = q
			return
		}
	}
}
