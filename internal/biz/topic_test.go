package biz

import (
	"context"
	"errors"
	"testing"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/spectralens/commonground/pkg/generator"
	"github.com/spectralens/commonground/pkg/model"
)

type mockTopicGenerator struct {
	topic   *model.Topic
	failure *generator.Failure
}

func (m *mockTopicGenerator) Configured() bool { return true }

func (m *mockTopicGenerator) GenerateTopic(ctx context.Context, query string) (*model.Topic, *generator.Failure) {
	return m.topic, m.failure
}

type mockTopicRepo struct {
	saved []*model.Topic
}

func (m *mockTopicRepo) SaveTopic(ctx context.Context, topic *model.Topic) error {
	m.saved = append(m.saved, topic)
	return nil
}

func (m *mockTopicRepo) ListTopics(ctx context.Context) ([]*model.Topic, error) {
	return m.saved, nil
}

func (m *mockTopicRepo) GetTopic(ctx context.Context, id string) (*model.Topic, error) {
	for _, t := range m.saved {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, kerrors.NotFound("TOPIC_NOT_FOUND", "topic not found")
}

func TestGenerateRemoteSuccess(t *testing.T) {
	want := &model.Topic{ID: "nuclear-energy", Name: "Nuclear Energy", SubTopics: []model.SubTopic{{ID: "s1", Name: "Safety"}}}
	repo := &mockTopicRepo{}
	uc := NewTopicUseCase(&mockTopicGenerator{topic: want}, repo, nil, log.DefaultLogger)

	got, reason, err := uc.Generate(context.Background(), "nuclear energy")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if reason != "" {
		t.Errorf("reason = %q, want empty", reason)
	}
	if got.ID != "nuclear-energy" {
		t.Errorf("topic = %+v", got)
	}
	if len(repo.saved) != 1 {
		t.Errorf("saved %d topics, want 1", len(repo.saved))
	}
}

func TestGenerateFallsBackToMock(t *testing.T) {
	gen := &mockTopicGenerator{failure: &generator.Failure{Reason: generator.ReasonAPIError, Err: errors.New("boom")}}
	uc := NewTopicUseCase(gen, &mockTopicRepo{}, nil, log.DefaultLogger)

	got, reason, err := uc.Generate(context.Background(), "Nuclear Energy Policy!")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if reason != generator.ReasonAPIError {
		t.Errorf("reason = %q, want api-error", reason)
	}
	if got.ID != "nuclear-energy-policy" {
		t.Errorf("mock topic id = %q, want kebab-cased query", got.ID)
	}
	if got.Name != "Nuclear Energy Policy!" {
		t.Errorf("mock topic name = %q, want the original query", got.Name)
	}
	if len(got.SubTopics) != 2 {
		t.Fatalf("mock topic has %d sub-topics, want 2", len(got.SubTopics))
	}
	var left, right bool
	for _, st := range got.SubTopics {
		for _, a := range st.Articles {
			switch a.Leaning {
			case model.LeaningLeft, model.LeaningLeanLeft:
				left = true
			case model.LeaningRight, model.LeaningLeanRight:
				right = true
			}
		}
	}
	if !left || !right {
		t.Error("mock topic does not span the leaning spectrum")
	}
}

func TestGenerateStoresFallbackTopic(t *testing.T) {
	gen := &mockTopicGenerator{failure: &generator.Failure{Reason: generator.ReasonTimeout, Err: errors.New("deadline")}}
	repo := &mockTopicRepo{}
	uc := NewTopicUseCase(gen, repo, nil, log.DefaultLogger)

	got, _, err := uc.Generate(context.Background(), "carbon tax")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(repo.saved) != 1 || repo.saved[0].ID != got.ID {
		t.Errorf("saved = %v, want the fallback topic persisted", repo.saved)
	}

	stored, err := uc.Get(context.Background(), got.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.Name != got.Name {
		t.Errorf("Get() = %+v, want the stored fallback topic", stored)
	}
}

func TestGenerateRejectsBlankQuery(t *testing.T) {
	uc := NewTopicUseCase(&mockTopicGenerator{}, &mockTopicRepo{}, nil, log.DefaultLogger)
	for _, query := range []string{"", "   ", "\t\n"} {
		_, _, err := uc.Generate(context.Background(), query)
		if err == nil {
			t.Fatalf("Generate(%q) error = nil, want bad request", query)
		}
		if kerrors.Code(err) != 400 {
			t.Errorf("Generate(%q) code = %d, want 400", query, kerrors.Code(err))
		}
	}
}

func TestGetTopic(t *testing.T) {
	repo := &mockTopicRepo{saved: []*model.Topic{{ID: "t1", Name: "Stored"}}}
	uc := NewTopicUseCase(&mockTopicGenerator{}, repo, nil, log.DefaultLogger)

	got, err := uc.Get(context.Background(), "t1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Stored" {
		t.Errorf("Get() = %+v", got)
	}
	if _, err := uc.Get(context.Background(), "missing"); err == nil {
		t.Error("Get(missing) error = nil, want not found")
	}
}
