package data

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/spectralens/commonground/internal/biz"
	"github.com/spectralens/commonground/pkg/model"
)

type topicRepo struct {
	data *Data
	log  *log.Helper
}

func NewTopicRepo(data *Data, logger log.Logger) biz.TopicRepo {
	return &topicRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// SaveTopic replaces any stored topic with the same id. Sub-topics and
// articles are rewritten wholesale; regeneration for the same query
// should not leave stale children behind.
func (r *topicRepo) SaveTopic(ctx context.Context, topic *model.Topic) error {
	tx, err := r.data.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO topics (id, name, description) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = $2, description = $3
	`, topic.ID, topic.Name, topic.Description); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM sub_topics WHERE topic_id = $1`, topic.ID); err != nil {
		return err
	}

	for si, st := range topic.SubTopics {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO sub_topics (id, topic_id, name, description, position)
			VALUES ($1, $2, $3, $4, $5)
		`, st.ID, topic.ID, st.Name, st.Description, si); err != nil {
			return err
		}
		for ai, a := range st.Articles {
			summary, err := json.Marshal(a.Summary)
			if err != nil {
				return err
			}
			keyFacts, err := json.Marshal(a.KeyFacts)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO articles (id, sub_topic_id, title, source, leaning, summary, key_facts, url, position)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			`, a.ID, st.ID, a.Title, a.Source, string(a.Leaning), string(summary), string(keyFacts), a.URL, ai); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func (r *topicRepo) ListTopics(ctx context.Context) ([]*model.Topic, error) {
	rows, err := r.data.db.QueryContext(ctx, `
		SELECT id, name, description FROM topics ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []*model.Topic
	for rows.Next() {
		t := &model.Topic{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range topics {
		if err := r.loadSubTopics(ctx, t); err != nil {
			return nil, err
		}
	}
	return topics, nil
}

func (r *topicRepo) GetTopic(ctx context.Context, id string) (*model.Topic, error) {
	t := &model.Topic{}
	err := r.data.db.QueryRowContext(ctx, `
		SELECT id, name, description FROM topics WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.Description)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("TOPIC_NOT_FOUND", "topic not found")
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadSubTopics(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *topicRepo) loadSubTopics(ctx context.Context, topic *model.Topic) error {
	rows, err := r.data.db.QueryContext(ctx, `
		SELECT id, name, description FROM sub_topics
		WHERE topic_id = $1 ORDER BY position
	`, topic.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	topic.SubTopics = []model.SubTopic{}
	for rows.Next() {
		var st model.SubTopic
		if err := rows.Scan(&st.ID, &st.Name, &st.Description); err != nil {
			return err
		}
		topic.SubTopics = append(topic.SubTopics, st)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for i := range topic.SubTopics {
		if err := r.loadArticles(ctx, &topic.SubTopics[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *topicRepo) loadArticles(ctx context.Context, st *model.SubTopic) error {
	rows, err := r.data.db.QueryContext(ctx, `
		SELECT id, title, source, leaning, summary, key_facts, url FROM articles
		WHERE sub_topic_id = $1 ORDER BY position
	`, st.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	st.Articles = []model.Article{}
	for rows.Next() {
		var (
			a                 model.Article
			leaning           string
			summary, keyFacts string
		)
		if err := rows.Scan(&a.ID, &a.Title, &a.Source, &leaning, &summary, &keyFacts, &a.URL); err != nil {
			return err
		}
		a.Leaning = model.Leaning(leaning)
		if err := json.Unmarshal([]byte(summary), &a.Summary); err != nil {
			r.log.Warnf("bad summary payload for article %s: %v", a.ID, err)
		}
		if err := json.Unmarshal([]byte(keyFacts), &a.KeyFacts); err != nil {
			r.log.Warnf("bad key_facts payload for article %s: %v", a.ID, err)
		}
		st.Articles = append(st.Articles, a)
	}
	return rows.Err()
}
